// Package cli provides the command-line interface for squill.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/squill-labs/squill/internal/cli/commands"
	"github.com/squill-labs/squill/internal/config"
	"github.com/squill-labs/squill/internal/querylog"
	"github.com/squill-labs/squill/pkg/conncache"
	"github.com/squill-labs/squill/pkg/executor"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	app := &commands.App{}

	rootCmd := &cobra.Command{
		Use:   "squill",
		Short: "squill - multi-engine SQL workbench",
		Long: `squill inspects and queries PostgreSQL, MySQL, SQL Server, ClickHouse
and SQLite databases through one interface.

Connections are declared in squill.yaml and selected with --conn, or passed
directly with --url and --engine. Live connections are pooled and reused
across statements in a run.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			app.Cfg = cfg
			app.Logger = newLogger(cfg.LogLevel)
			app.Cache = conncache.New(conncache.Options{
				MaxClients:  cfg.Cache.MaxClients,
				IdleTimeout: cfg.Cache.IdleTimeout,
				Logger:      app.Logger,
			})
			app.Log = querylog.New()
			app.Exec = executor.New(app.Cache, app.Log, app.Logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if app.Cache != nil {
				_ = app.Cache.Shutdown(context.Background())
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./squill.yaml)")
	addConnectionFlags(rootCmd.PersistentFlags(), app)

	rootCmd.AddCommand(
		commands.NewPingCommand(app),
		commands.NewDatabasesCommand(app),
		commands.NewTablesCommand(app),
		commands.NewColumnsCommand(app),
		commands.NewRowsCommand(app),
		commands.NewKeysCommand(app),
		commands.NewConstraintsCommand(app),
		commands.NewIndexesCommand(app),
		commands.NewEnumsCommand(app),
		commands.NewExecCommand(app),
		commands.NewLogCommand(app),
	)

	return rootCmd
}

// addConnectionFlags registers the connection selection and output flags
// shared by every subcommand.
func addConnectionFlags(fs *pflag.FlagSet, app *commands.App) {
	fs.StringVarP(&app.Conn, "conn", "c", "", "Named connection from the config file")
	fs.StringVar(&app.URL, "url", "", "Connection URL (bypasses the config file)")
	fs.StringVar(&app.Engine, "engine", "", "Engine for --url: postgres, mysql, mssql, clickhouse, sqlite")
	fs.BoolVar(&app.JSON, "json", false, "Emit JSON instead of tables")
}

// newLogger builds the CLI logger writing to stderr at the configured level.
func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
