package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/comics/pkg/app/components"
	"github.com/kerbaras/comics/pkg/app/styles"
	"github.com/kerbaras/comics/pkg/providers"
)

// ShelfScreen lists the comics of the opened collection together with the
// paths that could not be opened.
type ShelfScreen struct {
	comicList *components.ComicList
	failures  []providers.Failure
	width     int
	height    int
}

func NewShelfScreen() *ShelfScreen {
	return &ShelfScreen{
		comicList: components.NewComicList(),
	}
}

func (s *ShelfScreen) SetCollection(items []components.ComicListItem, failures []providers.Failure) {
	s.comicList.SetItems(items)
	s.failures = failures
}

// SetLastPage updates the shelf card of comic after reading.
func (s *ShelfScreen) SetLastPage(comic *providers.Comic, page int) {
	for i := range s.comicList.Items {
		if s.comicList.Items[i].Comic == comic {
			s.comicList.Items[i].LastPage = page
		}
	}
}

func (s *ShelfScreen) Init() tea.Cmd {
	return nil
}

func (s *ShelfScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.comicList.Width = msg.Width - 4
		s.comicList.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.comicList.Prev()
		case "down", "j":
			s.comicList.Next()
		case "enter":
			if s.comicList.Selected() != nil {
				index := s.comicList.SelectedIndex
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: index}
				}
			}
		}
	}

	return s, nil
}

func (s *ShelfScreen) View() string {
	header := styles.TitleStyle.Render("📚 Comics")

	var failures strings.Builder
	for _, f := range s.failures {
		failures.WriteString(styles.StatusError.Render(fmt.Sprintf("✗ %s", f.Error())))
		failures.WriteString("\n")
	}
	if failures.Len() > 0 {
		failures.WriteString("\n")
	}

	help := styles.HelpStyle.Render("↑/k: up • ↓/j: down • enter: read • q: quit")

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, failures.String(), s.comicList.View(), help)
}
