package cmd

import (
	"path/filepath"

	"github.com/kerbaras/comics/pkg/app"
	"github.com/kerbaras/comics/pkg/data"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [paths...]",
	Short: "Read comics in the terminal",
	Long:  "Open the given archives and browse their pages. The last page read is remembered per archive.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := providerOptions()
		if err != nil {
			return err
		}

		var repo *data.Repository
		if r, err := openLibrary(); err != nil {
			logger.WithComponent("cmd").WithError(err).Warn("bookmarks disabled")
		} else {
			repo = r
			defer repo.Close()
		}

		// Bookmarks are keyed by absolute path.
		paths := make([]string, len(args))
		for i, arg := range args {
			if paths[i], err = filepath.Abs(arg); err != nil {
				paths[i] = arg
			}
		}

		return app.NewApp(collectionName(args), paths, opts, repo).Run()
	},
}
