package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squill-labs/squill/pkg/executor"
	"github.com/squill-labs/squill/pkg/result"
	"github.com/squill-labs/squill/pkg/statement"
)

// NewEnumsCommand creates the enums command.
func NewEnumsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enums",
		Short: "List enum types and their values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.Enums().For(engine, "list enums")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeEnums(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				name := r.Name
				if r.Table != "" {
					name = r.Table + "." + r.Column
				}
				rows[i] = map[string]any{
					"schema": r.Schema, "name": name,
					"values": strings.Join(r.Values, ", "),
				}
			}
			return renderRows(cmd.OutOrStdout(), []string{"schema", "name", "values"}, rows)
		},
	}
}
