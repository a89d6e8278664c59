package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kerbaras/comics/pkg/config"
	"github.com/kerbaras/comics/pkg/data"
	"github.com/kerbaras/comics/pkg/imaging"
	"github.com/kerbaras/comics/pkg/logger"
	"github.com/kerbaras/comics/pkg/providers"
	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "comics",
	Short: "A comic book archive reader",
	Long: `Open CBZ/ZIP and CBR/RAR comic archives, inspect their pages and read them
in the terminal.

Configuration is read from the environment (COMICS_TEMP_DIR, COMICS_EAGER_DECODE,
COMICS_THUMBNAIL_CACHE, COMICS_LIBRARY, LOG_LEVEL), optionally loaded from a .env
file, and can be overridden with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env", ".env", "Path to a .env file")
	flags.String("temp-dir", "", "Base directory for extracted archives")
	flags.Bool("eager", false, "Decode every page while opening")
	flags.Int("thumbnail-cache", 0, "Number of thumbnails kept in memory (0 disables)")
	flags.String("library", "", "Path to the reading library database")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(epubCmd)
	rootCmd.AddCommand(readCmd)
}

// loadConfig layers flags that were set explicitly over the environment.
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("temp-dir") {
		c.TempDir, _ = flags.GetString("temp-dir")
	}
	if flags.Changed("eager") {
		c.EagerDecode, _ = flags.GetBool("eager")
	}
	if flags.Changed("thumbnail-cache") {
		c.ThumbnailCacheSize, _ = flags.GetInt("thumbnail-cache")
	}
	if flags.Changed("library") {
		c.LibraryPath, _ = flags.GetString("library")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}

	logger.Init(c.LogLevel)
	cfg = c
	return nil
}

func providerOptions() (providers.Options, error) {
	opts := providers.Options{
		TempDir:     cfg.TempDir,
		EagerDecode: cfg.EagerDecode,
	}
	if cfg.ThumbnailCacheSize > 0 {
		thumbs, err := imaging.NewThumbnailCache(cfg.ThumbnailCacheSize)
		if err != nil {
			return opts, err
		}
		opts.Thumbnails = thumbs
	}
	return opts, nil
}

// openComic opens a single archive and records it in the reading library
// when one is available.
func openComic(path string) (*providers.Comic, error) {
	opts, err := providerOptions()
	if err != nil {
		return nil, err
	}
	comic, err := providers.OpenComic(path, opts)
	if err != nil {
		return nil, err
	}
	recordOpened(comic)
	return comic, nil
}

func recordOpened(comic *providers.Comic) {
	repo, err := openLibrary()
	if err != nil {
		logger.WithComponent("cmd").WithError(err).Debug("reading library unavailable")
		return
	}
	defer repo.Close()

	abs, err := filepath.Abs(comic.Path())
	if err != nil {
		abs = comic.Path()
	}
	entry := &data.LibraryEntry{
		Path:   abs,
		Title:  comic.Title(),
		Format: comic.Format(),
		Pages:  comic.Length(),
	}
	if err := repo.RecordOpened(entry); err != nil {
		logger.WithComponent("cmd").WithError(err).Warn("failed to record comic")
	}
}

func openLibrary() (*data.Repository, error) {
	if cfg.LibraryPath == "" {
		return nil, fmt.Errorf("no library path configured")
	}
	return data.NewDuckDBRepository(cfg.LibraryPath)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
