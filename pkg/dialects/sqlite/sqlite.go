// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure data with no database driver dependency.
package sqlite

import (
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Config is the SQLite dialect configuration.
// SQLite has a single "main" schema per database file; attached databases
// appear as additional schema names.
var Config = &dialect.Config{
	Engine: core.SQLite,
	Identifiers: dialect.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},
	Placeholder:       dialect.PlaceholderQuestion,
	DefaultSchema:     "main",
	SupportsReturning: true,
}

func init() {
	dialect.Register(Config)
}
