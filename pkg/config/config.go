// Package config gathers runtime settings from the environment, an optional
// .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	TempDirEnv        = "COMICS_TEMP_DIR"
	EagerDecodeEnv    = "COMICS_EAGER_DECODE"
	ThumbnailCacheEnv = "COMICS_THUMBNAIL_CACHE"
	LibraryEnv        = "COMICS_LIBRARY"
	LogLevelEnv       = "LOG_LEVEL"
)

const defaultThumbnailCacheSize = 64

type Config struct {
	TempDir            string
	EagerDecode        bool
	ThumbnailCacheSize int
	LibraryPath        string
	LogLevel           string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		TempDir:            os.TempDir(),
		ThumbnailCacheSize: defaultThumbnailCacheSize,
		LibraryPath:        defaultLibraryPath(),
		LogLevel:           "info",
	}
}

func defaultLibraryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "comics", "library.db")
	}
	return filepath.Join(homeDir, ".comics", "library.db")
}

// Load reads envFile (when it exists) into the environment without
// overriding variables already set, then builds a Config from it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment over Default.
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(TempDirEnv); v != "" {
		cfg.TempDir = v
	}
	if v := os.Getenv(EagerDecodeEnv); v != "" {
		eager, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EagerDecodeEnv, v, err)
		}
		cfg.EagerDecode = eager
	}
	if v := os.Getenv(ThumbnailCacheEnv); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a non-negative integer", ThumbnailCacheEnv, v)
		}
		cfg.ThumbnailCacheSize = size
	}
	if v := os.Getenv(LibraryEnv); v != "" {
		cfg.LibraryPath = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
