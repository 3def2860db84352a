package statement

import (
	"fmt"

	"github.com/squill-labs/squill/pkg/core"
)

// Databases builds the database/catalog listing. Every engine aliases its
// name column to "name" so the decoder sees one shape.
func Databases() Set {
	my := dialectFor(core.MySQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: "SELECT datname AS name FROM pg_catalog.pg_database WHERE datistemplate = false ORDER BY datname",
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT SCHEMA_NAME AS name FROM information_schema.SCHEMATA WHERE SCHEMA_NAME NOT IN (%s) ORDER BY SCHEMA_NAME", my.SystemSchemaList()),
		},
		core.MSSQL: {
			SQL: "SELECT name FROM sys.databases WHERE name NOT IN ('master', 'model', 'msdb', 'tempdb') ORDER BY name",
		},
		core.ClickHouse: {
			SQL: fmt.Sprintf("SELECT name FROM system.databases WHERE name NOT IN (%s) ORDER BY name", ch.SystemSchemaList()),
		},
		core.SQLite: {
			SQL: "SELECT name FROM pragma_database_list ORDER BY name",
		},
	}
}

// TablesAndSchemas builds the schema+table listing, excluding each engine's
// system schemas. Result columns: schema, name.
func TablesAndSchemas() Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: fmt.Sprintf("SELECT table_schema AS %s, table_name AS name FROM information_schema.tables"+
				" WHERE table_type = 'BASE TABLE' AND table_schema NOT IN (%s)"+
				" ORDER BY table_schema, table_name",
				pg.QuoteIdentifier("schema"), pg.SystemSchemaList()),
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT TABLE_SCHEMA AS %s, TABLE_NAME AS name FROM information_schema.TABLES"+
				" WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA NOT IN (%s)"+
				" ORDER BY TABLE_SCHEMA, TABLE_NAME",
				my.QuoteIdentifier("schema"), my.SystemSchemaList()),
		},
		core.MSSQL: {
			SQL: fmt.Sprintf("SELECT TABLE_SCHEMA AS %s, TABLE_NAME AS name FROM INFORMATION_SCHEMA.TABLES"+
				" WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA NOT IN (%s)"+
				" ORDER BY TABLE_SCHEMA, TABLE_NAME",
				ms.QuoteIdentifier("schema"), ms.SystemSchemaList()),
		},
		core.ClickHouse: {
			SQL: fmt.Sprintf("SELECT database AS %s, name FROM system.tables"+
				" WHERE database NOT IN (%s) ORDER BY database, name",
				ch.QuoteIdentifier("schema"), ch.SystemSchemaList()),
		},
		core.SQLite: {
			SQL: `SELECT 'main' AS "schema", name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		},
	}
}

// Columns builds the column introspection for one table. Result columns:
// name, data_type, is_nullable ('YES'/'NO'), column_default.
func Columns(schema, table string) Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)
	ch := dialectFor(core.ClickHouse)

	infoSchema := func(ph1, ph2 string) string {
		return "SELECT column_name AS name, data_type, is_nullable, column_default" +
			" FROM information_schema.columns" +
			fmt.Sprintf(" WHERE table_schema = %s AND table_name = %s", ph1, ph2) +
			" ORDER BY ordinal_position"
	}

	return Set{
		core.Postgres: {
			SQL:  infoSchema(pg.FormatPlaceholder(1), pg.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.MySQL: {
			SQL: "SELECT COLUMN_NAME AS name, COLUMN_TYPE AS data_type, IS_NULLABLE AS is_nullable, COLUMN_DEFAULT AS column_default" +
				" FROM information_schema.COLUMNS" +
				fmt.Sprintf(" WHERE TABLE_SCHEMA = %s AND TABLE_NAME = %s", my.FormatPlaceholder(1), my.FormatPlaceholder(2)) +
				" ORDER BY ORDINAL_POSITION",
			Args: []any{schema, table},
		},
		core.MSSQL: {
			SQL:  infoSchema(ms.FormatPlaceholder(1), ms.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.ClickHouse: {
			SQL: "SELECT name, type AS data_type," +
				" if(startsWith(type, 'Nullable'), 'YES', 'NO') AS is_nullable," +
				" default_expression AS column_default" +
				" FROM system.columns" +
				fmt.Sprintf(" WHERE database = %s AND table = %s ORDER BY position", ch.FormatPlaceholder(1), ch.FormatPlaceholder(2)),
			Args: []any{schema, table},
		},
		core.SQLite: {
			SQL: `SELECT name, type AS data_type,` +
				` CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END AS is_nullable,` +
				` dflt_value AS column_default FROM pragma_table_info(?) ORDER BY cid`,
			Args: []any{table},
		},
	}
}
