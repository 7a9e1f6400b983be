package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	statusLabelStyle = lipgloss.NewStyle().Bold(true).Width(12)
	statusValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved username and where data is kept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd, false)
		if err != nil {
			return err
		}

		defer func() { _ = e.Close() }()

		if err := e.store.Ping(); err != nil {
			return err
		}

		username, err := e.store.Username()
		if err != nil {
			return err
		}

		if username == "" {
			username = statusDimStyle.Render("(none)")
		} else {
			username = statusValueStyle.Render(username)
		}

		out := cmd.OutOrStdout()
		printStatusLine(out, "Username", username)
		printStatusLine(out, "Database", statusValueStyle.Render(e.cfg.DatabasePath()))
		printStatusLine(out, "API", statusValueStyle.Render(e.cfg.APIURL))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatusLine(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", statusLabelStyle.Render(label+":"), value)
}
