package cmd

import (
	"fmt"

	"github.com/kerbaras/comics/pkg/integrations"
	"github.com/spf13/cobra"
)

var epubCmd = &cobra.Command{
	Use:   "epub [archive]",
	Short: "Convert a comic archive to EPUB",
	Long:  "Write the pages of a comic, in reading order, to an EPUB file. Metadata comes from ComicInfo.xml when the archive has one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output-dir")
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")

		comic, err := openComic(args[0])
		if err != nil {
			return err
		}
		defer comic.Close()

		var exporter integrations.Exporter = integrations.NewEPubExporter(outputDir)
		path, err := exporter.Export(comic, integrations.ExportOptions{Title: title, Author: author})
		if err != nil {
			return fmt.Errorf("EPUB generation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "📖 EPUB created: %s\n", path)
		return nil
	},
}

func init() {
	epubCmd.Flags().StringP("output-dir", "o", ".", "Directory to write the EPUB to")
	epubCmd.Flags().String("title", "", "Override the book title")
	epubCmd.Flags().String("author", "", "Override the book author")
}
