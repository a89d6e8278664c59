package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/comics/pkg/imaging"
	"github.com/kerbaras/comics/pkg/providers"
	"github.com/kerbaras/comics/pkg/services"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages [archive]",
	Short: "List the pages of a comic in reading order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comic, err := openComic(args[0])
		if err != nil {
			return err
		}
		defer comic.Close()

		columns := []table.Column{
			{Title: "#", Width: 6},
			{Title: "Name", Width: 40},
			{Title: "Format", Width: 8},
			{Title: "Size", Width: 24},
		}

		rows := []table.Row{}
		for _, page := range comic.Pages() {
			format, size := describePage(page)
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", page.Index()),
				truncateString(page.FileName(), 38),
				format,
				truncateString(size, 22),
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n📖 %s (%d pages)\n\n", comic.Title(), comic.Length())
		fmt.Fprintln(out, newTable(columns, rows).View())

		verify, _ := cmd.Flags().GetBool("verify")
		if !verify {
			return nil
		}
		workers, _ := cmd.Flags().GetInt("workers")
		return verifyPages(cmd, comic, workers)
	},
}

func init() {
	pagesCmd.Flags().Bool("verify", false, "Decode every page and report the ones that fail")
	pagesCmd.Flags().Int("workers", 4, "Pages decoded concurrently with --verify")
}

func verifyPages(cmd *cobra.Command, comic *providers.Comic, workers int) error {
	out := cmd.OutOrStdout()
	decoder := services.NewDecoder(workers)

	// Listen for progress
	done := make(chan struct{})
	go func() {
		defer close(done)
		for progress := range decoder.Progress() {
			if progress.Error != nil {
				fmt.Fprintf(out, "  ✗ %d/%d %s\n", progress.Done, progress.Total, progress.Name)
			}
		}
	}()

	failures, err := decoder.Decode(cmd.Context(), comic, nil)
	decoder.Close()
	<-done
	if err != nil {
		return err
	}

	if len(failures) == 0 {
		fmt.Fprintf(out, "\n✅ All %d pages decoded\n", comic.Length())
		return nil
	}
	for _, f := range failures {
		fmt.Fprintf(out, "❌ %s\n", f.Error())
	}
	return fmt.Errorf("%d of %d pages failed to decode", len(failures), comic.Length())
}

// describePage reads only the image header of the extracted file.
func describePage(page *providers.Page) (string, string) {
	f, err := os.Open(page.Path())
	if err != nil {
		return "-", err.Error()
	}
	defer f.Close()

	config, format, err := imaging.DecodeConfig(f)
	if err != nil {
		return "-", err.Error()
	}
	return format, fmt.Sprintf("%dx%d", config.Width, config.Height)
}
