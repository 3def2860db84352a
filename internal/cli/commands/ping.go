package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test a database connection",
		Long: `Open a throwaway connection to the target database, ping it, and
close it. The connection cache is not touched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			if err := app.Exec.TestConnection(cmd.Context(), engine, url); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: connection ok\n", engine)
			return nil
		},
	}
}
