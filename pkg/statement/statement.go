// Package statement builds ready-to-execute SQL text for every logical
// operation of the browsing layer: catalog introspection, row paging, cell
// updates, row deletion, and table DDL.
//
// Builders are pure functions of their parameters. Each returns a Set with
// one entry per engine that implements the operation; a missing entry means
// the operation is unsupported for that engine, which callers must check
// before executing. Identifiers are embedded using the target dialect's
// quoting convention; user-supplied values always travel as bound args.
package statement

import (
	"fmt"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"

	chdialect "github.com/squill-labs/squill/pkg/dialects/clickhouse"
	msdialect "github.com/squill-labs/squill/pkg/dialects/mssql"
	mydialect "github.com/squill-labs/squill/pkg/dialects/mysql"
	pgdialect "github.com/squill-labs/squill/pkg/dialects/postgres"
	ltdialect "github.com/squill-labs/squill/pkg/dialects/sqlite"
)

// Statement is one executable SQL string with its bound arguments in
// placeholder order.
type Statement struct {
	SQL  string
	Args []any
}

// Set maps each engine that supports an operation to its statement.
type Set map[core.Engine]Statement

// For selects the statement for an engine, reporting the unsupported-engine
// condition when the operation has no entry.
func (s Set) For(engine core.Engine, operation string) (Statement, error) {
	st, ok := s[engine]
	if !ok {
		return Statement{}, &core.UnsupportedEngineError{Engine: engine, Operation: operation}
	}
	return st, nil
}

// Supports reports whether the operation has an entry for the engine.
func (s Set) Supports(engine core.Engine) bool {
	_, ok := s[engine]
	return ok
}

// Order is one ORDER BY entry. Entries are kept in a slice so generated SQL
// follows the caller's order deterministically.
type Order struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// PKValue pairs one primary-key column with the value identifying a row.
type PKValue struct {
	Column string
	Value  any
}

func dialectFor(engine core.Engine) *dialect.Config {
	switch engine {
	case core.Postgres:
		return pgdialect.Config
	case core.MySQL:
		return mydialect.Config
	case core.MSSQL:
		return msdialect.Config
	case core.ClickHouse:
		return chdialect.Config
	case core.SQLite:
		return ltdialect.Config
	}
	panic(fmt.Sprintf("no dialect for engine %q", engine))
}

// orderByClause renders `ORDER BY "a" ASC, "b" DESC` or empty when no
// entries are given.
func orderByClause(d *dialect.Config, orderBy []Order) string {
	if len(orderBy) == 0 {
		return ""
	}
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		dir := strings.ToUpper(o.Direction)
		if dir != "DESC" {
			dir = "ASC"
		}
		parts[i] = d.QuoteIdentifier(o.Column) + " " + dir
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// columnList renders a projection, or * when none is requested.
func columnList(d *dialect.Config, columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = d.QuoteIdentifier(c)
	}
	return strings.Join(parts, ", ")
}
