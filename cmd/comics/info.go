package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/comics/pkg/providers"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [paths...]",
	Short: "Summarize a set of comic archives",
	Long:  "Open every recognized archive among the given paths and list the comics and the paths that failed to open",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := providerOptions()
		if err != nil {
			return err
		}

		collection := providers.NewCollection(collectionName(args), args, opts)
		defer collection.Close()

		out := cmd.OutOrStdout()
		if collection.Size() == 0 && len(collection.Failures()) == 0 {
			fmt.Fprintln(out, "📚 No comic archives among the given paths.")
			return nil
		}

		columns := []table.Column{
			{Title: "#", Width: 4},
			{Title: "Title", Width: 40},
			{Title: "Format", Width: 8},
			{Title: "Pages", Width: 6},
			{Title: "Series", Width: 24},
		}

		rows := []table.Row{}
		for i, comic := range collection.Comics() {
			series := ""
			if info := comic.Info(); info != nil {
				series = info.Series
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i),
				truncateString(comic.Title(), 38),
				comic.Format(),
				fmt.Sprintf("%d", comic.Length()),
				truncateString(series, 22),
			})
			recordOpened(comic)
		}

		t := newTable(columns, rows)

		fmt.Fprintf(out, "\n📚 %s (%d comics)\n\n", collection.Name(), collection.Size())
		fmt.Fprintln(out, t.View())

		for _, f := range collection.Failures() {
			fmt.Fprintf(out, "❌ %s\n", f.Error())
		}
		return nil
	},
}

// newTable renders rows unfocused, with every row visible.
func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

func collectionName(paths []string) string {
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	return filepath.Base(filepath.Dir(paths[0]))
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
