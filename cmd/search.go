package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/repofinder/internal/cli"
	"github.com/inovacc/repofinder/internal/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoUsername is returned by non-interactive searches with nothing to look up.
var errNoUsername = errors.New("no saved username; run 'repofinder search <username>'")

var searchCmd = &cobra.Command{
	Use:   "search [username]",
	Short: "List the public repositories of a GitHub user",
	Long: `Fetch and list the public repositories of a GitHub user.

The username is saved and reused by later runs when it is omitted. In a
terminal the interactive screen is opened, otherwise a table is printed.

Examples:
  repofinder search octocat                # Interactive screen, octocat preloaded
  repofinder search octocat --plain        # Print a table and exit
  repofinder search --json                 # Saved username, JSON output
  repofinder search octocat --allow-empty  # Users without repositories are not an error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addSearchFlags(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plain", false, "Print a table instead of opening the interactive screen")
	cmd.Flags().Bool("json", false, "Print the repositories as JSON (implies --plain)")
	cmd.Flags().Bool("allow-empty", false, "Show an empty list instead of an error for users without repositories")
}

// SearchFlags holds the flags of the search command.
type SearchFlags struct {
	Plain      bool
	JSON       bool
	AllowEmpty bool
}

func extractSearchFlags(cmd *cobra.Command) SearchFlags {
	plain, _ := cmd.Flags().GetBool("plain")
	jsonOut, _ := cmd.Flags().GetBool("json")
	allowEmpty, _ := cmd.Flags().GetBool("allow-empty")

	return SearchFlags{
		Plain:      plain || jsonOut,
		JSON:       jsonOut,
		AllowEmpty: allowEmpty,
	}
}

func (f SearchFlags) controllerOptions(e *env) []core.Option {
	opts := []core.Option{core.WithLogger(e.logger)}
	if f.AllowEmpty {
		opts = append(opts, core.WithEmptyAllowed())
	}

	return opts
}

func runSearch(cmd *cobra.Command, args []string) error {
	flags := extractSearchFlags(cmd)
	interactive := !flags.Plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)

	e, err := setupEnv(cmd, interactive)
	if err != nil {
		return err
	}

	defer func() { _ = e.Close() }()

	if interactive {
		return runInteractive(cmd.Context(), e, flags, args)
	}

	return runPlain(cmd, e, flags, args)
}

func runInteractive(ctx context.Context, e *env, flags SearchFlags, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	presenter := cli.NewProgramPresenter()

	opts := append(flags.controllerOptions(e), core.WithLauncher(core.NewBrowserLauncher(presenter)))
	ctrl := core.NewController(e.client, e.store, presenter, opts...)

	var initial string
	if len(args) > 0 {
		initial = args[0]
	}

	p := tea.NewProgram(cli.NewSearchModel(ctx, ctrl, initial), tea.WithContext(ctx))
	presenter.Attach(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run search screen: %w", err)
	}

	return nil
}

// runPlain performs a single search and waits for it. A username given as an
// argument is submitted even when blank, so it gets validated.
func runPlain(cmd *cobra.Command, e *env, flags SearchFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	presenter := cli.NewTextPresenter(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags.JSON)
	ctrl := core.NewController(e.client, e.store, presenter, flags.controllerOptions(e)...)

	var (
		fetch *core.Fetch
		err   error
	)

	if len(args) > 0 {
		fetch, err = ctrl.SubmitUsername(ctx, args[0])
	} else {
		fetch, err = ctrl.Restore(ctx)
		if err == nil && fetch == nil {
			err = errNoUsername
		}
	}

	if err != nil {
		return err
	}

	return fetch.Wait()
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
