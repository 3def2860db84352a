package statement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// UpdateCellParams describes a single-cell update addressed by the row's
// primary key values.
type UpdateCellParams struct {
	Schema      string
	Table       string
	Column      string
	Value       any
	PrimaryKeys []PKValue
}

// UpdateCell builds an UPDATE of one column on one row. Engines that support
// it return the updated row; on the rest the executor re-reads the row with
// a follow-up SELECT. ClickHouse updates are asynchronous mutations.
func UpdateCell(p UpdateCellParams) Set {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)
		table := d.QualifyTable(p.Schema, p.Table)
		args := []any{p.Value}

		where, whereArgs := pkPredicate(d, p.PrimaryKeys, 2)
		args = append(args, whereArgs...)

		var sql string
		switch {
		case engine == core.ClickHouse:
			sql = fmt.Sprintf("ALTER TABLE %s UPDATE %s = %s WHERE %s",
				table, d.QuoteIdentifier(p.Column), d.FormatPlaceholder(1), where)
		case engine == core.MSSQL:
			sql = fmt.Sprintf("UPDATE %s SET %s = %s OUTPUT INSERTED.* WHERE %s",
				table, d.QuoteIdentifier(p.Column), d.FormatPlaceholder(1), where)
		case d.SupportsReturning:
			sql = fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s RETURNING *",
				table, d.QuoteIdentifier(p.Column), d.FormatPlaceholder(1), where)
		default:
			sql = fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s",
				table, d.QuoteIdentifier(p.Column), d.FormatPlaceholder(1), where)
		}
		set[engine] = Statement{SQL: sql, Args: args}
	}
	return set
}

// InsertRowParams describes a row insert. Column order is normalized so the
// generated SQL is deterministic for a given value map.
type InsertRowParams struct {
	Schema string
	Table  string
	Values map[string]any
}

// InsertRow builds an INSERT of one row.
func InsertRow(p InsertRowParams) Set {
	cols := make([]string, 0, len(p.Values))
	for col := range p.Values {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)
		table := d.QualifyTable(p.Schema, p.Table)

		quoted := make([]string, len(cols))
		places := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			quoted[i] = d.QuoteIdentifier(col)
			places[i] = d.FormatPlaceholder(i + 1)
			args[i] = p.Values[col]
		}

		var sql string
		switch {
		case engine == core.MSSQL:
			sql = fmt.Sprintf("INSERT INTO %s (%s) OUTPUT INSERTED.* VALUES (%s)",
				table, strings.Join(quoted, ", "), strings.Join(places, ", "))
		case d.SupportsReturning:
			sql = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
				table, strings.Join(quoted, ", "), strings.Join(places, ", "))
		default:
			sql = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				table, strings.Join(quoted, ", "), strings.Join(places, ", "))
		}
		set[engine] = Statement{SQL: sql, Args: args}
	}
	return set
}

// DeleteRowsParams describes a delete of one or more rows, each addressed
// by its full primary key.
type DeleteRowsParams struct {
	Schema string
	Table  string
	Rows   [][]PKValue
}

// DeleteRows builds a DELETE matching each row by the conjunction of its key
// columns, with the per-row predicates joined by OR. ClickHouse deletes are
// asynchronous mutations.
func DeleteRows(p DeleteRowsParams) Set {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)
		table := d.QualifyTable(p.Schema, p.Table)

		var args []any
		groups := make([]string, 0, len(p.Rows))
		next := 1
		for _, row := range p.Rows {
			pred, rowArgs := pkPredicate(d, row, next)
			next += len(rowArgs)
			args = append(args, rowArgs...)
			groups = append(groups, "("+pred+")")
		}
		where := strings.Join(groups, " OR ")

		var sql string
		if engine == core.ClickHouse {
			sql = fmt.Sprintf("ALTER TABLE %s DELETE WHERE %s", table, where)
		} else {
			sql = fmt.Sprintf("DELETE FROM %s WHERE %s", table, where)
		}
		set[engine] = Statement{SQL: sql, Args: args}
	}
	return set
}

// DropTable builds a DROP TABLE for the given table.
func DropTable(schema, table string) Set {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)
		set[engine] = Statement{SQL: fmt.Sprintf("DROP TABLE %s", d.QualifyTable(schema, table))}
	}
	return set
}

// RenameTable builds a table rename. MySQL and MSSQL use their dedicated
// forms; the rest use ALTER TABLE RENAME TO.
func RenameTable(schema, table, newName string) Set {
	set := Set{}
	for _, engine := range core.Engines() {
		d := dialectFor(engine)
		qualified := d.QualifyTable(schema, table)

		var sql string
		switch engine {
		case core.MySQL:
			sql = fmt.Sprintf("RENAME TABLE %s TO %s", qualified, d.QualifyTable(schema, newName))
		case core.MSSQL:
			sql = fmt.Sprintf("EXEC sp_rename %s, %s",
				d.QuoteLiteral(schema+"."+table), d.QuoteLiteral(newName))
		default:
			sql = fmt.Sprintf("ALTER TABLE %s RENAME TO %s", qualified, d.QuoteIdentifier(newName))
		}
		set[engine] = Statement{SQL: sql}
	}
	return set
}

// pkPredicate renders an AND-joined equality predicate for a row's primary
// key values, numbering placeholders from start.
func pkPredicate(d *dialect.Config, pks []PKValue, start int) (string, []any) {
	parts := make([]string, len(pks))
	args := make([]any, len(pks))
	for i, pk := range pks {
		parts[i] = fmt.Sprintf("%s = %s", d.QuoteIdentifier(pk.Column), d.FormatPlaceholder(start+i))
		args[i] = pk.Value
	}
	return strings.Join(parts, " AND "), args
}
