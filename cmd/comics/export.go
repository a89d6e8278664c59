package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kerbaras/comics/pkg/imaging"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [archive] [index]",
	Short: "Write one page as a PNG file",
	Long: `Decode a page of a comic and write it as PNG, optionally scaled down to fit
--max-width and --max-height.

Examples:
  comics export saga.cbz 0 -o cover.png
  comics export saga.cbr 12 --max-width 800`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page index %q: %w", args[1], err)
		}
		output, _ := cmd.Flags().GetString("output")
		maxWidth, _ := cmd.Flags().GetInt("max-width")
		maxHeight, _ := cmd.Flags().GetInt("max-height")

		comic, err := openComic(args[0])
		if err != nil {
			return err
		}
		defer comic.Close()

		page, ok := comic.PageAt(index)
		if !ok {
			return fmt.Errorf("page %d out of range: %s has %d pages", index, comic.Title(), comic.Length())
		}

		var img image.Image
		if maxWidth > 0 || maxHeight > 0 {
			img, err = page.Thumbnail(maxWidth, maxHeight)
		} else {
			img, err = page.Image()
		}
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", page.FileName(), err)
		}

		encoded, err := imaging.EncodePNG(img)
		if err != nil {
			return err
		}

		if output == "" {
			base := strings.TrimSuffix(comic.Title(), filepath.Ext(comic.Title()))
			output = fmt.Sprintf("%s-%04d.png", base, index)
		}
		if err := os.WriteFile(output, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		b := img.Bounds()
		fmt.Fprintf(cmd.OutOrStdout(), "🖼️  %s (%dx%d) -> %s\n", page.FileName(), b.Dx(), b.Dy(), output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output PNG path (default: <title>-<index>.png)")
	exportCmd.Flags().Int("max-width", 0, "Scale the page down to at most this width")
	exportCmd.Flags().Int("max-height", 0, "Scale the page down to at most this height")
}
