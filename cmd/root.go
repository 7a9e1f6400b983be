package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/repofinder/internal/application"
	"github.com/inovacc/repofinder/internal/core"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Browse the public repositories of a GitHub user",
	Long: `Repofinder looks up a GitHub user and lists their public repositories.

Run without a command to open the interactive search screen. The last
username you searched for is remembered and fetched again on the next start.

Configuration is read from the environment (and a .env file if present):
  REPOFINDER_API_URL     GitHub REST API base (default: https://api.github.com/)
  REPOFINDER_DATA_DIR    Directory for the preferences database
  REPOFINDER_LOG_LEVEL   debug, info, warn or error (default: warn)`,
	Version:       application.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSearch,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !alreadyReported(err) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	addSearchFlags(rootCmd)
}

// alreadyReported reports whether err was shown to the user as a notice.
func alreadyReported(err error) bool {
	var (
		validationErr *core.ValidationError
		fetchErr      *core.FetchError
	)

	return errors.As(err, &validationErr) || errors.As(err, &fetchErr)
}
