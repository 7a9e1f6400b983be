package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/repofinder/internal/application"
	"github.com/inovacc/repofinder/internal/config"
	"github.com/inovacc/repofinder/internal/ghapi"
	"github.com/inovacc/repofinder/internal/store"
	"github.com/spf13/cobra"
)

// logFile is the log destination while the interactive screen owns the terminal.
const logFile = "repofinder.log"

// env holds the dependencies shared by every command.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Bolt
	client *ghapi.Client

	closers []io.Closer
}

func (e *env) Close() error {
	var firstErr error

	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// setupEnv loads the configuration and opens the store and the API client.
// When toFile is set logs go to a file in the data directory instead of stderr.
func setupEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := application.EnsureDirectory(cfg.DataDir); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	logOut := cmd.ErrOrStderr()

	if toFile {
		f, err := os.OpenFile(filepath.Join(cfg.DataDir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		e.closers = append(e.closers, f)
		logOut = f
	}

	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}

	e.logger = newLogger(logOut, level, jsonLogs)

	s, err := store.NewBolt(cfg.DatabasePath())
	if err != nil {
		_ = e.Close()

		return nil, err
	}

	e.closers = append(e.closers, s)
	e.store = s

	client, err := ghapi.NewClient(cfg.APIURL, nil, e.logger)
	if err != nil {
		_ = e.Close()

		return nil, err
	}

	e.client = client

	e.logger.Debug("environment ready",
		slog.String("api_url", cfg.APIURL),
		slog.String("database", cfg.DatabasePath()),
	)

	return e, nil
}

// newLogger creates a text or JSON slog logger writing to w.
func newLogger(w io.Writer, level slog.Level, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
