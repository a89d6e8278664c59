package screens

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/comics/pkg/app/components"
	"github.com/kerbaras/comics/pkg/app/styles"
	"github.com/kerbaras/comics/pkg/data"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
	"github.com/kerbaras/comics/pkg/services"
)

type screenType int

const (
	shelfView screenType = iota
	readerView
)

const prefetchWorkers = 2

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type collectionOpenedMsg struct {
	collection *providers.Collection
	items      []components.ComicListItem
}

// RootScreen owns the collection being read. While the collection is being
// opened it only shows a spinner.
type RootScreen struct {
	name  string
	paths []string
	opts  providers.Options
	repo  *data.Repository

	decoder *services.Decoder

	opening    bool
	spinner    spinner.Model
	collection *providers.Collection

	openOnce sync.Once
	opened   chan struct{}
	result   collectionOpenedMsg

	currentView screenType
	shelf       *ShelfScreen
	reader      *ReaderScreen

	width  int
	height int
}

// NewRootScreen prepares a screen for paths; repo may be nil, in which case
// nothing is remembered between sessions.
func NewRootScreen(name string, paths []string, opts providers.Options, repo *data.Repository) *RootScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return &RootScreen{
		name:        name,
		paths:       paths,
		opts:        opts,
		repo:        repo,
		decoder:     services.NewDecoder(prefetchWorkers),
		opening:     true,
		spinner:     s,
		currentView: shelfView,
		shelf:       NewShelfScreen(),
	}
}

// Opening reports whether the collection is still being opened.
func (r *RootScreen) Opening() bool { return r.opening }

// Collection returns the opened collection, nil while opening.
func (r *RootScreen) Collection() *providers.Collection { return r.collection }

// Close releases every opened comic. A collection still being opened is
// waited for and closed as well, even if the program quit before it was
// delivered.
func (r *RootScreen) Close() error {
	// Once Close has run, Init no longer starts an open.
	r.openOnce.Do(func() {})
	if r.opened == nil {
		return nil
	}
	<-r.opened
	if r.result.collection == nil {
		return nil
	}
	return r.result.collection.Close()
}

func (r *RootScreen) Init() tea.Cmd {
	r.startOpening()
	return tea.Batch(r.spinner.Tick, r.waitForCollection)
}

// startOpening opens the collection on its own goroutine rather than as a
// program command, so Close can always wait for the result.
func (r *RootScreen) startOpening() {
	r.openOnce.Do(func() {
		r.opened = make(chan struct{})
		go func() {
			defer close(r.opened)
			r.result = r.openCollection()
		}()
	})
}

func (r *RootScreen) waitForCollection() tea.Msg {
	if r.opened == nil {
		return nil
	}
	<-r.opened
	return r.result
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		if r.opening {
			r.shelf.Update(msg)
			return r, nil
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		}
		if r.opening {
			return r, nil
		}

	case spinner.TickMsg:
		if !r.opening {
			return r, nil
		}
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case collectionOpenedMsg:
		r.opening = false
		r.collection = msg.collection
		r.shelf.SetCollection(msg.items, msg.collection.Failures())

	case SwitchScreenMsg:
		switch msg.Screen {
		case "shelf":
			if r.reader != nil {
				r.shelf.SetLastPage(r.reader.Comic(), r.reader.Current())
			}
			r.currentView = shelfView
			r.reader = nil
		case "reader":
			if index, ok := msg.Data.(int); ok && r.collection != nil {
				if comic, ok := r.collection.ComicAt(index); ok {
					r.reader = NewReaderScreen(comic, r.repo, r.decoder)
					r.reader.width, r.reader.height = r.width, r.height
					r.currentView = readerView
					cmd = r.reader.Init()
				}
			}
		}
		return r, cmd
	}

	if r.opening {
		return r, nil
	}

	// Forward message to active screen
	switch r.currentView {
	case shelfView:
		newModel, newCmd := r.shelf.Update(msg)
		r.shelf = newModel.(*ShelfScreen)
		return r, newCmd
	case readerView:
		if r.reader != nil {
			newModel, newCmd := r.reader.Update(msg)
			r.reader = newModel.(*ReaderScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	if r.opening {
		return fmt.Sprintf("\n  %s Opening %d file(s)...\n", r.spinner.View(), len(r.paths))
	}

	switch r.currentView {
	case readerView:
		if r.reader != nil {
			return r.reader.View()
		}
	}
	return r.shelf.View()
}

// openCollection runs off the event loop; opening extracts every archive
// and can take seconds.
func (r *RootScreen) openCollection() collectionOpenedMsg {
	log := logger.WithComponent("app")
	start := time.Now()

	collection := providers.NewCollection(r.name, r.paths, r.opts)
	items := make([]components.ComicListItem, 0, collection.Size())
	for _, comic := range collection.Comics() {
		item := components.ComicListItem{Comic: comic, LastPage: -1}
		if r.repo != nil {
			entry := &data.LibraryEntry{
				Path:   comic.Path(),
				Title:  comic.Title(),
				Format: comic.Format(),
				Pages:  comic.Length(),
			}
			if err := r.repo.RecordOpened(entry); err != nil {
				log.WithError(err).Warn("failed to record comic in library")
			}
			bookmark, err := r.repo.GetBookmark(comic.Path())
			if err != nil {
				log.WithError(err).Warn("failed to read bookmark")
			} else if bookmark != nil && bookmark.Page < comic.Length() {
				item.LastPage = bookmark.Page
			}
		}
		items = append(items, item)
	}

	log.WithField("comics", collection.Size()).
		WithField("failed", len(collection.Failures())).
		WithField("elapsed", time.Since(start)).
		Debug("opened collection")

	return collectionOpenedMsg{collection: collection, items: items}
}
