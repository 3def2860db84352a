// Package mssql provides the SQL Server dialect definition.
// This package is pure data with no database driver dependency.
package mssql

import (
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Config is the SQL Server dialect configuration.
var Config = &dialect.Config{
	Engine: core.MSSQL,
	Identifiers: dialect.IdentifierConfig{
		Quote:    "[",
		QuoteEnd: "]",
		Escape:   "]]",
	},
	Placeholder:   dialect.PlaceholderAtP,
	DefaultSchema: "dbo",
	SystemSchemas: []string{"INFORMATION_SCHEMA", "sys", "guest"},
}

func init() {
	dialect.Register(Config)
}
