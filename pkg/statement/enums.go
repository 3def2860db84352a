package statement

import (
	"fmt"

	"github.com/squill-labs/squill/pkg/core"
)

// Enums builds the enumerated-type listing. Postgres returns one row per
// enum label in sort order. MySQL and ClickHouse carry the whole value list
// inside the column type text, which the result decoder parses. MSSQL and
// SQLite have no enum types and are intentionally absent.
func Enums() Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: fmt.Sprintf("SELECT n.nspname AS %s, t.typname AS name, e.enumlabel AS value"+
				" FROM pg_type t"+
				" JOIN pg_enum e ON t.oid = e.enumtypid"+
				" JOIN pg_namespace n ON n.oid = t.typnamespace"+
				" WHERE n.nspname NOT IN (%s)"+
				" ORDER BY n.nspname, t.typname, e.enumsortorder",
				pg.QuoteIdentifier("schema"), pg.SystemSchemaList()),
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT TABLE_SCHEMA AS %s, TABLE_NAME AS %s, COLUMN_NAME AS %s,"+
				" COLUMN_TYPE AS column_type, DATA_TYPE AS data_type"+
				" FROM information_schema.COLUMNS"+
				" WHERE DATA_TYPE IN ('enum', 'set') AND TABLE_SCHEMA NOT IN (%s)",
				my.QuoteIdentifier("schema"), my.QuoteIdentifier("table"),
				my.QuoteIdentifier("column"), my.SystemSchemaList()),
		},
		core.ClickHouse: {
			SQL: fmt.Sprintf("SELECT database AS %s, table AS %s, name AS %s, type AS column_type"+
				" FROM system.columns"+
				" WHERE type ILIKE 'Enum%%' AND database NOT IN (%s)",
				ch.QuoteIdentifier("schema"), ch.QuoteIdentifier("table"),
				ch.QuoteIdentifier("column"), ch.SystemSchemaList()),
		},
	}
}
