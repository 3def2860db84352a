// Package mysql provides the MySQL SQL dialect definition.
// This package is pure data with no database driver dependency.
package mysql

import (
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Config is the MySQL dialect configuration.
var Config = &dialect.Config{
	Engine: core.MySQL,
	Identifiers: dialect.IdentifierConfig{
		Quote:    "`",
		QuoteEnd: "`",
		Escape:   "``",
	},
	Placeholder:   dialect.PlaceholderQuestion,
	SystemSchemas: []string{"mysql", "information_schema", "performance_schema", "sys"},
}

func init() {
	dialect.Register(Config)
}
