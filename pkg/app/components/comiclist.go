package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/comics/pkg/app/styles"
	"github.com/kerbaras/comics/pkg/providers"
)

// ComicListItem is one opened comic on the shelf. LastPage is the
// bookmarked page, or -1 when there is none.
type ComicListItem struct {
	Comic    *providers.Comic
	LastPage int
}

type ComicList struct {
	Items         []ComicListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewComicList() *ComicList {
	return &ComicList{
		Items:         []ComicListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *ComicList) SetItems(items []ComicListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *ComicList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *ComicList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *ComicList) Selected() *ComicListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *ComicList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No comic loaded")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		comic := item.Comic
		title := styles.TitleStyle.Render(comic.Title())

		lines := []string{title}
		if info := comic.Info(); info != nil {
			if series := seriesLine(info); series != "" {
				lines = append(lines, styles.SubtitleStyle.Render(series))
			}
			if info.Summary != "" {
				lines = append(lines, styles.TextStyle.Render(truncate(info.Summary, 80)))
			}
		}
		lines = append(lines, "",
			styles.MutedStyle.Render(fmt.Sprintf("Pages: %d • Format: %s", comic.Length(), comic.Format())),
		)
		if item.LastPage >= 0 {
			lines = append(lines, styles.StatusOK.Render(fmt.Sprintf("Resume at page %d", item.LastPage+1)))
		}

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}

func seriesLine(info *providers.ComicInfo) string {
	switch {
	case info.Series != "" && info.Number != "":
		return fmt.Sprintf("%s #%s", info.Series, info.Number)
	case info.Series != "":
		return info.Series
	default:
		return info.Writer
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
