// Package driver provides the engine driver registry.
//
// Concrete driver implementations live in pkg/drivers/ subdirectories and
// register themselves in their init() functions. Import them with a blank
// identifier:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/postgres"
package driver

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/squill-labs/squill/pkg/core"
)

// Opener opens a database handle for a parsed connection string. The handle
// is live: implementations ping before returning. A nil logger means discard.
type Opener func(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[core.Engine]Opener)
)

// Register adds a driver to the registry. Called by driver implementations
// in their init() functions.
func Register(engine core.Engine, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[engine] = open
}

// Get retrieves a driver by engine.
func Get(engine core.Engine) (Opener, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	open, ok := registry[engine]
	return open, ok
}

// Open connects to the database behind connString using the registered
// driver for engine.
func Open(ctx context.Context, engine core.Engine, connString string, logger *slog.Logger) (*sql.DB, error) {
	open, ok := Get(engine)
	if !ok {
		return nil, &UnknownEngineError{
			Engine:    engine,
			Available: ListEngines(),
		}
	}
	return open(ctx, connString, logger)
}

// ListEngines returns all registered engine names (sorted).
func ListEngines() []core.Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()
	engines := make([]core.Engine, 0, len(registry))
	for engine := range registry {
		engines = append(engines, engine)
	}
	sort.Slice(engines, func(i, j int) bool { return engines[i] < engines[j] })
	return engines
}

// IsRegistered checks if a driver is registered for the engine.
func IsRegistered(engine core.Engine) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[engine]
	return ok
}

// UnknownEngineError is returned when no driver is registered for an engine.
type UnknownEngineError struct {
	Engine    core.Engine
	Available []core.Engine
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("no driver registered for engine %q (available: %v)", e.Engine, e.Available)
}
