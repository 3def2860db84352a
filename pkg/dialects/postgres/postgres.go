// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure data with no database driver dependency.
package postgres

import (
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Config is the PostgreSQL dialect configuration.
var Config = &dialect.Config{
	Engine: core.Postgres,
	Identifiers: dialect.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},
	Placeholder:       dialect.PlaceholderDollar,
	DefaultSchema:     "public",
	SystemSchemas:     []string{"pg_catalog", "pg_toast", "information_schema"},
	SupportsReturning: true,
	SupportsIlike:     true,
}

func init() {
	dialect.Register(Config)
}
