// Package clickhouse provides the ClickHouse SQL dialect definition.
// This package is pure data with no database driver dependency.
package clickhouse

import (
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Config is the ClickHouse dialect configuration.
// ClickHouse has no schemas; databases fill that role, so the database name
// is used wherever a schema is expected.
var Config = &dialect.Config{
	Engine: core.ClickHouse,
	Identifiers: dialect.IdentifierConfig{
		Quote:    "`",
		QuoteEnd: "`",
		Escape:   "``",
	},
	Placeholder:   dialect.PlaceholderQuestion,
	DefaultSchema: "default",
	SystemSchemas: []string{"system", "INFORMATION_SCHEMA", "information_schema"},
	SupportsIlike: true,
}

func init() {
	dialect.Register(Config)
}
