package app

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/comics/pkg/app/screens"
	"github.com/kerbaras/comics/pkg/data"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
)

type App struct {
	name  string
	paths []string
	opts  providers.Options
	repo  *data.Repository
}

// NewApp builds a reader for the comics at paths. repo may be nil.
func NewApp(name string, paths []string, opts providers.Options, repo *data.Repository) *App {
	return &App{name: name, paths: paths, opts: opts, repo: repo}
}

func (a *App) Run() error {
	// Log lines would be drawn over the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	model := screens.NewRootScreen(a.name, a.paths, a.opts, a.repo)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	if closeErr := model.Close(); err == nil {
		err = closeErr
	}
	return err
}
