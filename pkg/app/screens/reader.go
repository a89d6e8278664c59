package screens

import (
	"context"
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/comics/pkg/app/components"
	"github.com/kerbaras/comics/pkg/app/styles"
	"github.com/kerbaras/comics/pkg/data"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
	"github.com/kerbaras/comics/pkg/services"
)

const (
	defaultPreviewWidth  = 40
	defaultPreviewHeight = 20
)

// ReaderScreen shows one page of a comic at a time. The current page is
// state of this screen only; the comic is never told which page is shown.
type ReaderScreen struct {
	comic   *providers.Comic
	repo    *data.Repository
	decoder *services.Decoder
	current int

	page   *pageView
	width  int
	height int
	err    error
}

type pageView struct {
	index   int
	name    string
	bounds  image.Rectangle
	format  string
	preview image.Image
	err     error
}

// NewReaderScreen opens a reader on comic. repo and decoder are optional;
// with a decoder the next pages are decoded in the background.
func NewReaderScreen(comic *providers.Comic, repo *data.Repository, decoder *services.Decoder) *ReaderScreen {
	return &ReaderScreen{
		comic:   comic,
		repo:    repo,
		decoder: decoder,
	}
}

func (s *ReaderScreen) Comic() *providers.Comic { return s.comic }

// Current returns the index of the page on screen.
func (s *ReaderScreen) Current() int { return s.current }

func (s *ReaderScreen) Init() tea.Cmd {
	if s.repo != nil {
		return s.loadBookmark
	}
	return s.loadPage(s.current)
}

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, s.loadPage(s.current)

	case tea.KeyMsg:
		key := msg.String()
		if s.rightToLeft() {
			key = mirrorKey(key)
		}
		switch key {
		case "right", "l", "n", " ":
			return s, s.goTo(s.current + 1)
		case "left", "h", "p":
			return s, s.goTo(s.current - 1)
		case "home", "g":
			return s, s.goTo(0)
		case "end", "G":
			return s, s.goTo(s.comic.Length() - 1)
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "shelf"}
			}
		}

	case bookmarkLoadedMsg:
		if msg.page >= 0 && msg.page < s.comic.Length() {
			s.current = msg.page
		}
		return s, s.loadPage(s.current)

	case pageLoadedMsg:
		// Drop results for pages the reader already moved away from.
		if msg.page.index == s.current {
			s.page = msg.page
			return s, s.prefetch(s.current)
		}

	case bookmarkSavedMsg:
		s.err = msg.err
	}

	return s, nil
}

// rightToLeft reports whether the comic's metadata asks for manga-style
// reading, in which case the arrow keys are mirrored.
func (s *ReaderScreen) rightToLeft() bool {
	info := s.comic.Info()
	return info != nil && info.RightToLeft()
}

func mirrorKey(key string) string {
	switch key {
	case "left":
		return "right"
	case "right":
		return "left"
	case "h":
		return "l"
	case "l":
		return "h"
	}
	return key
}

func (s *ReaderScreen) goTo(index int) tea.Cmd {
	if index < 0 || index >= s.comic.Length() || index == s.current {
		return nil
	}
	s.current = index
	return tea.Batch(s.loadPage(index), s.saveBookmark(index))
}

func (s *ReaderScreen) View() string {
	header := styles.TitleStyle.Render(s.comic.Title())

	if s.comic.Length() == 0 {
		return fmt.Sprintf("%s\n\n%s\n%s", header,
			styles.MutedStyle.Render("This comic has no pages"),
			styles.HelpStyle.Render("esc: back • q: quit"))
	}

	var body string
	switch {
	case s.page == nil || s.page.index != s.current:
		body = styles.MutedStyle.Render("Loading page...")
	case s.page.err != nil:
		body = styles.StatusError.Render(fmt.Sprintf("%s: %s", s.page.name, s.page.err))
	default:
		details := styles.MutedStyle.Render(fmt.Sprintf("%s • %dx%d %s",
			s.page.name, s.page.bounds.Dx(), s.page.bounds.Dy(), s.page.format))
		body = styles.PageStyle.Render(components.Preview(s.page.preview)) + "\n" + details
	}

	barWidth := s.width - 12
	if barWidth <= 0 {
		barWidth = defaultPreviewWidth
	}
	progress := components.PageProgress(s.current, s.comic.Length(), barWidth)

	var errorMsg string
	if s.err != nil {
		errorMsg = "\n" + styles.StatusWarning.Render(fmt.Sprintf("Bookmark not saved: %s", s.err))
	}

	helpText := "←/p: previous • →/n: next • g/G: first/last • esc: back • q: quit"
	if s.rightToLeft() {
		helpText = "→/p: previous • ←/n: next (right to left) • g/G: first/last • esc: back • q: quit"
	}
	help := styles.HelpStyle.Render(helpText)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n%s", header, body, progress, errorMsg, help)
}

// previewSize is the thumbnail bound in pixels: one column per cell and two
// rows per line.
func (s *ReaderScreen) previewSize() (int, int) {
	w, h := defaultPreviewWidth, defaultPreviewHeight
	if s.width > 4 {
		w = s.width - 4
	}
	if s.height > 10 {
		h = s.height - 10
	}
	return w, h * 2
}

// Messages
type pageLoadedMsg struct {
	page *pageView
}

type bookmarkLoadedMsg struct {
	page int
}

type bookmarkSavedMsg struct {
	err error
}

// Commands
func (s *ReaderScreen) loadPage(index int) tea.Cmd {
	page, ok := s.comic.PageAt(index)
	if !ok {
		return nil
	}
	maxW, maxH := s.previewSize()

	return func() tea.Msg {
		view := &pageView{index: index, name: page.FileName()}
		bounds, err := page.Bounds()
		if err != nil {
			view.err = err
			return pageLoadedMsg{page: view}
		}
		view.bounds = bounds
		view.format, _ = page.Format()
		view.preview, view.err = page.Thumbnail(maxW, maxH)
		return pageLoadedMsg{page: view}
	}
}

func (s *ReaderScreen) prefetch(index int) tea.Cmd {
	if s.decoder == nil {
		return nil
	}
	next := []int{index + 1, index + 2}
	return func() tea.Msg {
		s.decoder.Decode(context.Background(), s.comic, next)
		return nil
	}
}

func (s *ReaderScreen) loadBookmark() tea.Msg {
	bookmark, err := s.repo.GetBookmark(s.comic.Path())
	if err != nil {
		logger.WithComponent("app").WithError(err).Warn("failed to read bookmark")
		return bookmarkLoadedMsg{page: 0}
	}
	if bookmark == nil {
		return bookmarkLoadedMsg{page: 0}
	}
	return bookmarkLoadedMsg{page: bookmark.Page}
}

func (s *ReaderScreen) saveBookmark(index int) tea.Cmd {
	if s.repo == nil {
		return nil
	}
	path := s.comic.Path()
	return func() tea.Msg {
		return bookmarkSavedMsg{err: s.repo.SaveBookmark(path, index)}
	}
}
