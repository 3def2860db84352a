package statement

import (
	"fmt"

	"github.com/squill-labs/squill/pkg/core"
)

// PrimaryKeys builds the per-table primary-key listing. Each row carries the
// key columns comma-joined in one primary_keys aggregate, split on
// ingestion by the result decoder.
func PrimaryKeys() Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: fmt.Sprintf("SELECT tc.table_schema AS %s, tc.table_name AS %s,"+
				" string_agg(kcu.column_name, ', ' ORDER BY kcu.ordinal_position) AS primary_keys"+
				" FROM information_schema.table_constraints tc"+
				" JOIN information_schema.key_column_usage kcu"+
				" ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema"+
				" WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema NOT IN (%s)"+
				" GROUP BY tc.table_schema, tc.table_name",
				pg.QuoteIdentifier("schema"), pg.QuoteIdentifier("table"), pg.SystemSchemaList()),
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT TABLE_SCHEMA AS %s, TABLE_NAME AS %s,"+
				" GROUP_CONCAT(COLUMN_NAME ORDER BY ORDINAL_POSITION SEPARATOR ', ') AS primary_keys"+
				" FROM information_schema.KEY_COLUMN_USAGE"+
				" WHERE CONSTRAINT_NAME = 'PRIMARY' AND TABLE_SCHEMA NOT IN (%s)"+
				" GROUP BY TABLE_SCHEMA, TABLE_NAME",
				my.QuoteIdentifier("schema"), my.QuoteIdentifier("table"), my.SystemSchemaList()),
		},
		core.MSSQL: {
			SQL: fmt.Sprintf("SELECT tc.TABLE_SCHEMA AS %s, tc.TABLE_NAME AS %s,"+
				" STRING_AGG(kcu.COLUMN_NAME, ', ') WITHIN GROUP (ORDER BY kcu.ORDINAL_POSITION) AS primary_keys"+
				" FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc"+
				" JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu"+
				" ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA"+
				" WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'"+
				" GROUP BY tc.TABLE_SCHEMA, tc.TABLE_NAME",
				ms.QuoteIdentifier("schema"), ms.QuoteIdentifier("table")),
		},
		core.ClickHouse: {
			SQL: fmt.Sprintf("SELECT database AS %s, table AS %s,"+
				" arrayStringConcat(groupArray(name), ', ') AS primary_keys"+
				" FROM system.columns"+
				" WHERE is_in_primary_key = 1 AND database NOT IN (%s)"+
				" GROUP BY database, table",
				ch.QuoteIdentifier("schema"), ch.QuoteIdentifier("table"), ch.SystemSchemaList()),
		},
		core.SQLite: {
			SQL: `SELECT 'main' AS "schema", m.name AS "table",` +
				` group_concat(ti.name, ', ') AS primary_keys` +
				` FROM sqlite_master m JOIN pragma_table_info(m.name) ti` +
				` WHERE m.type = 'table' AND ti.pk > 0 GROUP BY m.name`,
		},
	}
}

// Constraints builds the constraint listing (primary key, unique, foreign
// key) with the referenced side populated for foreign keys. Result columns:
// schema, table, name, type, column, usage_schema, usage_table, usage_column.
func Constraints() Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)

	return Set{
		core.Postgres: {
			SQL: fmt.Sprintf("SELECT tc.table_schema AS %s, tc.table_name AS %s,"+
				" tc.constraint_name AS name, tc.constraint_type AS type, kcu.column_name AS %s,"+
				" ccu.table_schema AS usage_schema, ccu.table_name AS usage_table, ccu.column_name AS usage_column"+
				" FROM information_schema.table_constraints tc"+
				" LEFT JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name"+
				" LEFT JOIN information_schema.constraint_column_usage ccu ON tc.constraint_name = ccu.constraint_name"+
				" WHERE tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')"+
				" AND tc.table_schema NOT LIKE 'pg_%%' AND tc.table_schema != 'information_schema'",
				pg.QuoteIdentifier("schema"), pg.QuoteIdentifier("table"), pg.QuoteIdentifier("column")),
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT tc.TABLE_SCHEMA AS %s, tc.TABLE_NAME AS %s,"+
				" tc.CONSTRAINT_NAME AS name, tc.CONSTRAINT_TYPE AS type, kcu.COLUMN_NAME AS %s,"+
				" kcu.REFERENCED_TABLE_SCHEMA AS usage_schema, kcu.REFERENCED_TABLE_NAME AS usage_table,"+
				" kcu.REFERENCED_COLUMN_NAME AS usage_column"+
				" FROM information_schema.TABLE_CONSTRAINTS tc"+
				" LEFT JOIN information_schema.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME"+
				" WHERE tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')"+
				" AND tc.TABLE_SCHEMA NOT IN (%s)",
				my.QuoteIdentifier("schema"), my.QuoteIdentifier("table"), my.QuoteIdentifier("column"), my.SystemSchemaList()),
		},
		core.MSSQL: {
			SQL: fmt.Sprintf("SELECT tc.TABLE_SCHEMA AS %s, tc.TABLE_NAME AS %s,"+
				" tc.CONSTRAINT_NAME AS name, tc.CONSTRAINT_TYPE AS type, kcu.COLUMN_NAME AS %s,"+
				" kcu2.TABLE_SCHEMA AS usage_schema, kcu2.TABLE_NAME AS usage_table, kcu2.COLUMN_NAME AS usage_column"+
				" FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc"+
				" LEFT JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME"+
				" LEFT JOIN INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc ON tc.CONSTRAINT_NAME = rc.CONSTRAINT_NAME"+
				" LEFT JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu2 ON rc.UNIQUE_CONSTRAINT_NAME = kcu2.CONSTRAINT_NAME"+
				" AND kcu.ORDINAL_POSITION = kcu2.ORDINAL_POSITION"+
				" WHERE tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')",
				ms.QuoteIdentifier("schema"), ms.QuoteIdentifier("table"), ms.QuoteIdentifier("column")),
		},
		core.SQLite: {
			SQL: `SELECT 'main' AS "schema", m.name AS "table",` +
				` 'fk_' || m.name || '_' || fk.id AS name, 'FOREIGN KEY' AS type, fk."from" AS "column",` +
				` 'main' AS usage_schema, fk."table" AS usage_table, fk."to" AS usage_column` +
				` FROM sqlite_master m JOIN pragma_foreign_key_list(m.name) fk WHERE m.type = 'table'`,
		},
	}
}

// Indexes builds the index listing. Result columns: schema, table, name,
// column, is_unique, is_primary. ClickHouse exposes its ORDER BY key as the
// primary index, so those columns are reported as a synthetic primary key.
func Indexes() Set {
	pg := dialectFor(core.Postgres)
	my := dialectFor(core.MySQL)
	ms := dialectFor(core.MSSQL)
	ch := dialectFor(core.ClickHouse)

	return Set{
		core.Postgres: {
			SQL: fmt.Sprintf("SELECT n.nspname AS %s, t.relname AS %s, i.relname AS name, a.attname AS %s,"+
				" ix.indisunique AS is_unique, ix.indisprimary AS is_primary"+
				" FROM pg_class t"+
				" JOIN pg_index ix ON t.oid = ix.indrelid"+
				" JOIN pg_class i ON i.oid = ix.indexrelid"+
				" JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)"+
				" JOIN pg_namespace n ON n.oid = t.relnamespace"+
				" WHERE n.nspname NOT IN ('pg_catalog', 'information_schema') AND t.relkind = 'r'",
				pg.QuoteIdentifier("schema"), pg.QuoteIdentifier("table"), pg.QuoteIdentifier("column")),
		},
		core.MySQL: {
			SQL: fmt.Sprintf("SELECT TABLE_SCHEMA AS %s, TABLE_NAME AS %s, INDEX_NAME AS name, COLUMN_NAME AS %s,"+
				" NON_UNIQUE = 0 AS is_unique, INDEX_NAME = 'PRIMARY' AS is_primary"+
				" FROM information_schema.STATISTICS"+
				" WHERE TABLE_SCHEMA NOT IN (%s)",
				my.QuoteIdentifier("schema"), my.QuoteIdentifier("table"), my.QuoteIdentifier("column"), my.SystemSchemaList()),
		},
		core.MSSQL: {
			SQL: fmt.Sprintf("SELECT s.name AS %s, t.name AS %s, i.name AS name, c.name AS %s,"+
				" i.is_unique AS is_unique, i.is_primary_key AS is_primary"+
				" FROM sys.indexes i"+
				" INNER JOIN sys.tables t ON t.object_id = i.object_id"+
				" INNER JOIN sys.schemas s ON s.schema_id = t.schema_id"+
				" INNER JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id"+
				" INNER JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id",
				ms.QuoteIdentifier("schema"), ms.QuoteIdentifier("table"), ms.QuoteIdentifier("column")),
		},
		core.ClickHouse: {
			SQL: fmt.Sprintf("SELECT database AS %s, table AS %s, 'primary_key' AS name, name AS %s,"+
				" 1 AS is_unique, 1 AS is_primary"+
				" FROM system.columns"+
				" WHERE is_in_primary_key = 1 AND database NOT IN (%s)",
				ch.QuoteIdentifier("schema"), ch.QuoteIdentifier("table"), ch.QuoteIdentifier("column"), ch.SystemSchemaList()),
		},
		core.SQLite: {
			SQL: `SELECT 'main' AS "schema", m.name AS "table", il.name AS name, ii.name AS "column",` +
				` il."unique" AS is_unique, CASE WHEN il.origin = 'pk' THEN 1 ELSE 0 END AS is_primary` +
				` FROM sqlite_master m` +
				` JOIN pragma_index_list(m.name) il` +
				` JOIN pragma_index_info(il.name) ii` +
				` WHERE m.type = 'table'`,
		},
	}
}
