package dialect

import (
	"fmt"
	"sync"

	"github.com/squill-labs/squill/pkg/core"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[core.Engine]*Config)
)

// Register adds a dialect config to the registry.
// Called by dialect packages in their init() functions.
func Register(cfg *Config) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[cfg.Engine] = cfg
}

// ForEngine returns the dialect config for an engine. Every member of the
// closed engine set registers a dialect, so a miss means a missing import of
// the pkg/dialects subpackage.
func ForEngine(engine core.Engine) (*Config, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cfg, ok := registry[engine]
	if !ok {
		return nil, fmt.Errorf("no dialect registered for engine %q", engine)
	}
	return cfg, nil
}

// MustForEngine is ForEngine for statement builders, which only ever run
// against registered engines.
func MustForEngine(engine core.Engine) *Config {
	cfg, err := ForEngine(engine)
	if err != nil {
		panic(err)
	}
	return cfg
}
