package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/filter"
)

// RowsParams describes one page of a table fetch.
type RowsParams struct {
	Schema  string
	Table   string
	Limit   int
	Offset  int
	OrderBy []Order
	Filters []filter.Filter
	Concat  filter.Concat
	Select  []string
}

// Rows builds the paged SELECT for every engine. LIMIT/OFFSET are integers
// and rendered inline; filter values are bound. Engines whose dialect cannot
// express one of the filter operators (ILIKE outside the postgres family)
// have no entry.
func Rows(p RowsParams) (Set, error) {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)

		where, args, err := filter.Render(d, p.Filters, p.Concat, 1)
		if errors.Is(err, core.ErrUnsupportedEngine) {
			continue
		}
		if err != nil {
			return nil, err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "SELECT %s FROM %s", columnList(d, p.Select), d.QualifyTable(p.Schema, p.Table))
		if where != "" {
			b.WriteString(" WHERE ")
			b.WriteString(where)
		}

		order := orderByClause(d, p.OrderBy)
		if engine == core.MSSQL {
			// OFFSET/FETCH requires an ORDER BY; emit a constant one when
			// the caller did not order, matching the generated paging shape.
			if order == "" {
				order = "ORDER BY (SELECT NULL)"
			}
			fmt.Fprintf(&b, " %s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", order, p.Offset, p.Limit)
		} else {
			if order != "" {
				b.WriteString(" ")
				b.WriteString(order)
			}
			fmt.Fprintf(&b, " LIMIT %d OFFSET %d", p.Limit, p.Offset)
		}

		set[engine] = Statement{SQL: b.String(), Args: args}
	}
	return set, nil
}

// TotalParams describes a row-count request.
type TotalParams struct {
	Schema  string
	Table   string
	Filters []filter.Filter
	Concat  filter.Concat
}

// ExactTotal builds the COUNT(*) statement, honoring filters.
func ExactTotal(p TotalParams) (Set, error) {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)

		where, args, err := filter.Render(d, p.Filters, p.Concat, 1)
		if errors.Is(err, core.ErrUnsupportedEngine) {
			continue
		}
		if err != nil {
			return nil, err
		}

		sql := fmt.Sprintf("SELECT COUNT(*) AS total FROM %s", d.QualifyTable(p.Schema, p.Table))
		if where != "" {
			sql += " WHERE " + where
		}
		set[engine] = Statement{SQL: sql, Args: args}
	}
	return set, nil
}

// EstimatedTotal builds the fast row-count estimate from each engine's own
// statistics catalog. SQLite keeps no such statistics, so it has no entry
// and callers fall back to the exact count.
func EstimatedTotal(schema, table string) Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: "SELECT reltuples::bigint AS estimate" +
				" FROM pg_class c" +
				" JOIN pg_namespace n ON n.oid = c.relnamespace" +
				fmt.Sprintf(" WHERE n.nspname = %s AND c.relname = %s", pg.FormatPlaceholder(1), pg.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.MySQL: {
			SQL: "SELECT table_rows AS estimate FROM information_schema.tables" +
				fmt.Sprintf(" WHERE table_schema = %s AND table_name = %s", my.FormatPlaceholder(1), my.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.MSSQL: {
			SQL: "SELECT SUM(p.rows) AS estimate" +
				" FROM sys.tables t" +
				" INNER JOIN sys.partitions p ON t.object_id = p.object_id" +
				" INNER JOIN sys.schemas s ON t.schema_id = s.schema_id" +
				fmt.Sprintf(" WHERE s.name = %s AND t.name = %s AND p.index_id IN (0, 1)", ms.FormatPlaceholder(1), ms.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.ClickHouse: {
			SQL: "SELECT SUM(rows) AS estimate FROM system.parts" +
				fmt.Sprintf(" WHERE database = %s AND table = %s AND active = 1", ch.FormatPlaceholder(1), ch.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
	}
}
