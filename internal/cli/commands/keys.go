package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squill-labs/squill/pkg/executor"
	"github.com/squill-labs/squill/pkg/result"
	"github.com/squill-labs/squill/pkg/statement"
)

// NewKeysCommand creates the keys command.
func NewKeysCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List primary keys per table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.PrimaryKeys().For(engine, "list primary keys")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodePrimaryKeys(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{
					"schema": r.Schema, "table": r.Table,
					"columns": strings.Join(r.PrimaryKeys, ", "),
				}
			}
			return renderRows(cmd.OutOrStdout(), []string{"schema", "table", "columns"}, rows)
		},
	}
}

// NewConstraintsCommand creates the constraints command.
func NewConstraintsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "constraints",
		Short: "List key constraints per table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.Constraints().For(engine, "list constraints")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeConstraints(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{
					"schema": r.Schema, "table": r.Table, "name": r.Name,
					"kind": string(r.Kind), "column": r.Column,
					"references": referenceText(r.UsageSchema, r.UsageTable, r.UsageColumn),
				}
			}
			return renderRows(cmd.OutOrStdout(),
				[]string{"schema", "table", "name", "kind", "column", "references"}, rows)
		},
	}
}

// NewIndexesCommand creates the indexes command.
func NewIndexesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "List indexes per table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			stmt, err := statement.Indexes().For(engine, "list indexes")
			if err != nil {
				return err
			}
			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			records, err := result.DecodeIndexes(res)
			if err != nil {
				return err
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			rows := make([]map[string]any, len(records))
			for i, r := range records {
				rows[i] = map[string]any{
					"schema": r.Schema, "table": r.Table, "name": r.Name,
					"column": r.Column, "unique": r.Unique, "primary": r.Primary,
				}
			}
			return renderRows(cmd.OutOrStdout(),
				[]string{"schema", "table", "name", "column", "unique", "primary"}, rows)
		},
	}
}

func referenceText(schema, table, column string) string {
	if table == "" {
		return ""
	}
	parts := []string{}
	if schema != "" {
		parts = append(parts, schema)
	}
	parts = append(parts, table)
	ref := strings.Join(parts, ".")
	if column != "" {
		ref += "(" + column + ")"
	}
	return ref
}
