// Package commands implements the squill subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/squill-labs/squill/internal/config"
	"github.com/squill-labs/squill/internal/querylog"
	"github.com/squill-labs/squill/pkg/conncache"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/executor"
)

// App carries the shared state every subcommand needs. The root command
// populates it once configuration is loaded.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Cache  *conncache.Cache
	Exec   *executor.Executor
	Log    *querylog.Log

	// Connection selection flags.
	Conn   string
	URL    string
	Engine string

	// Output flags.
	JSON bool
}

// Resolve picks the target connection: an explicit --url/--engine pair wins,
// otherwise the named connection from configuration.
func (a *App) Resolve() (core.Engine, string, error) {
	if a.URL != "" {
		if a.Engine == "" {
			return "", "", fmt.Errorf("--engine is required with --url")
		}
		engine, err := core.ParseEngine(a.Engine)
		if err != nil {
			return "", "", err
		}
		return engine, a.URL, nil
	}
	if a.Conn == "" {
		return "", "", fmt.Errorf("no connection selected (use --conn or --url)")
	}
	return a.Cfg.Connection(a.Conn)
}
