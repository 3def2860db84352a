package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// NewLogCommand creates the log command.
func NewLogCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show statements executed on this connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, url, err := app.Resolve()
			if err != nil {
				return err
			}

			entries := app.Log.Entries(url)
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if app.JSON {
				return renderJSON(cmd.OutOrStdout(), entries)
			}
			rows := make([]map[string]any, len(entries))
			for i, e := range entries {
				rows[i] = map[string]any{
					"at":       e.CreatedAt.Format(time.RFC3339),
					"duration": e.Duration.String(),
					"sql":      e.SQL,
					"error":    e.Err,
				}
			}
			return renderRows(cmd.OutOrStdout(), []string{"at", "duration", "sql", "error"}, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")
	return cmd
}
