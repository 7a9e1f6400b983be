package cmd

import (
	"fmt"
	"io"

	"github.com/inovacc/repofinder/internal/cli"
	"github.com/inovacc/repofinder/internal/core"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved username",
	Long: `Remove the saved username so the next search starts empty.

Nothing is fetched. Run 'repofinder search <username>' to pick a new user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd, false)
		if err != nil {
			return err
		}

		defer func() { _ = e.Close() }()

		previous, err := e.store.Username()
		if err != nil {
			return err
		}

		// The empty list render is not interesting on the command line
		ctrl := core.NewController(e.client, e.store, cli.NewTextPresenter(io.Discard, cmd.ErrOrStderr(), false),
			core.WithLogger(e.logger))
		if err := ctrl.Reset(); err != nil {
			return err
		}

		if previous == "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No username was saved.")

			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Forgot username %q.\n", previous)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
