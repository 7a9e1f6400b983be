package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/repofinder/internal/application"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the GitHub REST API base used when REPOFINDER_API_URL is unset.
const DefaultAPIURL = "https://api.github.com/"

type Config struct {
	// APIURL is the REST API base. Always ends with a slash.
	APIURL string

	// DataDir holds the preferences database.
	DataDir string

	// LogLevel is the minimum slog level, Warn unless overridden.
	LogLevel slog.Level
}

// DatabasePath returns the location of the preferences database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, application.DatabaseFile)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:   os.Getenv("REPOFINDER_API_URL"),
		DataDir:  os.Getenv("REPOFINDER_DATA_DIR"),
		LogLevel: slog.LevelWarn,
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	// go-github requires the base URL to end with a slash
	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}

	if cfg.DataDir == "" {
		dir, err := application.GetApplicationDirectory()
		if err != nil {
			return nil, err
		}

		cfg.DataDir = dir
	}

	if lvl := os.Getenv("REPOFINDER_LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid REPOFINDER_LOG_LEVEL %q: %w", lvl, err)
		}
	}

	return cfg, nil
}
