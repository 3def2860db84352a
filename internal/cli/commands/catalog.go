package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squill-labs/squill/pkg/executor"
	"github.com/squill-labs/squill/pkg/result"
	"github.com/squill-labs/squill/pkg/statement"
)

// NewDatabasesCommand creates the databases command.
func NewDatabasesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.Databases().For(engine, "list databases")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeDatabases(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{"name": r.Name}
			}
			return renderRows(cmd.OutOrStdout(), []string{"name"}, rows)
		},
	}
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables and their schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.TablesAndSchemas().For(engine, "list tables")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeTables(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{"schema": r.Schema, "name": r.Name}
			}
			return renderRows(cmd.OutOrStdout(), []string{"schema", "name"}, rows)
		},
	}
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <schema.table>",
		Short: "List the columns of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			schema, tbl, err := splitTable(args[0])
			if err != nil {
				return err
			}
			stmt, err := statement.Columns(schema, tbl).For(engine, "list columns")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeColumns(res, schema, tbl)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{
					"name": r.Name, "type": r.DataType,
					"nullable": r.Nullable, "default": r.Default,
				}
			}
			return renderRows(cmd.OutOrStdout(), []string{"name", "type", "nullable", "default"}, rows)
		},
	}
}

// splitTable parses a schema-qualified table argument. A bare table name is
// rejected so the target is always explicit.
func splitTable(arg string) (schema, table string, err error) {
	parts := strings.SplitN(arg, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected <schema.table>, got %q", arg)
	}
	return parts[0], parts[1], nil
}
