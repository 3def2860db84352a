package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squill-labs/squill/pkg/executor"
)

// NewExecCommand creates the exec command.
func NewExecCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>",
		Short: "Run a raw SQL statement",
		Long: `Run an arbitrary SQL statement on the target connection and print
the result. The statement goes through the shared connection cache and is
recorded in the query log.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), res, app.JSON)
		},
	}
}
