// Package dialect provides SQL dialect configuration for statement building.
//
// This package contains the public contract for dialect definitions used by
// the statement builders and the executor. Concrete dialect configs are
// registered from pkg/dialects/*/ packages.
package dialect

import (
	"strconv"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
)

// PlaceholderStyle selects how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion formats every parameter as "?".
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar formats parameters as "$1", "$2", ...
	PlaceholderDollar
	// PlaceholderAtP formats parameters as "@p1", "@p2", ... (SQL Server).
	PlaceholderAtP
)

// IdentifierConfig describes how a dialect quotes identifiers.
type IdentifierConfig struct {
	Quote    string // opening quote character
	QuoteEnd string // closing quote character
	Escape   string // replacement for QuoteEnd inside an identifier
}

// Config is the pure-data dialect definition for one engine. It carries no
// driver dependency so statement builders stay fully unit-testable.
type Config struct {
	Engine      core.Engine
	Identifiers IdentifierConfig
	Placeholder PlaceholderStyle

	// DefaultSchema is the schema unqualified tables resolve to
	// ("public" for Postgres, "main" for SQLite).
	DefaultSchema string

	// SystemSchemas are excluded from schema/table/enum introspection.
	SystemSchemas []string

	// SupportsReturning is true when UPDATE ... RETURNING is available.
	SupportsReturning bool

	// SupportsIlike is true for the case-insensitive LIKE operator.
	SupportsIlike bool
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters,
// escaping embedded closing quotes.
func (c *Config) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, c.Identifiers.QuoteEnd, c.Identifiers.Escape)
	return c.Identifiers.Quote + escaped + c.Identifiers.QuoteEnd
}

// QualifyTable returns the quoted schema.table reference. An empty schema
// falls back to the dialect's default schema; dialects with no schema
// concept return just the quoted table.
func (c *Config) QualifyTable(schema, table string) string {
	if schema == "" {
		schema = c.DefaultSchema
	}
	if schema == "" {
		return c.QuoteIdentifier(table)
	}
	return c.QuoteIdentifier(schema) + "." + c.QuoteIdentifier(table)
}

// FormatPlaceholder returns the placeholder for the given 1-based parameter
// index.
func (c *Config) FormatPlaceholder(index int) string {
	switch c.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case PlaceholderAtP:
		return "@p" + strconv.Itoa(index)
	default:
		return "?"
	}
}

// QuoteLiteral renders a string as a single-quoted SQL literal with embedded
// quotes doubled. Statement builders bind user values through placeholders;
// this exists for catalog queries filtering on fixed, builder-owned names.
func (c *Config) QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// SystemSchemaList renders the dialect's system schemas as a literal IN-list
// for catalog queries, e.g. `'mysql', 'sys'`.
func (c *Config) SystemSchemaList() string {
	parts := make([]string, len(c.SystemSchemas))
	for i, s := range c.SystemSchemas {
		parts[i] = c.QuoteLiteral(s)
	}
	return strings.Join(parts, ", ")
}
