package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
)

func TestDatabasesCoversAllEngines(t *testing.T) {
	set := Databases()
	for _, engine := range core.Engines() {
		stmt, err := set.For(engine, "list databases")
		require.NoError(t, err, "engine %s", engine)
		assert.Contains(t, stmt.SQL, "name", "engine %s", engine)
	}
}

func TestTablesExcludeSystemSchemas(t *testing.T) {
	set := TablesAndSchemas()

	pg, err := set.For(core.Postgres, "list tables")
	require.NoError(t, err)
	assert.Contains(t, pg.SQL, "'pg_catalog'")
	assert.Contains(t, pg.SQL, "'information_schema'")

	my, err := set.For(core.MySQL, "list tables")
	require.NoError(t, err)
	assert.Contains(t, my.SQL, "'mysql'")
	assert.Contains(t, my.SQL, "'performance_schema'")

	lt, err := set.For(core.SQLite, "list tables")
	require.NoError(t, err)
	assert.Contains(t, lt.SQL, "NOT LIKE 'sqlite_%'")
}

func TestColumnsBindTableName(t *testing.T) {
	set := Columns("public", "users")

	pg, err := set.For(core.Postgres, "list columns")
	require.NoError(t, err)
	assert.Contains(t, pg.SQL, "$1")
	assert.Contains(t, pg.SQL, "$2")
	assert.Equal(t, []any{"public", "users"}, pg.Args)
	assert.NotContains(t, pg.SQL, "'users'")

	lt, err := set.For(core.SQLite, "list columns")
	require.NoError(t, err)
	assert.Contains(t, lt.SQL, "pragma_table_info(?)")
	assert.Equal(t, []any{"users"}, lt.Args)
}

func TestPrimaryKeysAggregate(t *testing.T) {
	set := PrimaryKeys()
	for _, engine := range core.Engines() {
		stmt, err := set.For(engine, "list primary keys")
		require.NoError(t, err, "engine %s", engine)
		assert.Contains(t, stmt.SQL, "primary_keys", "engine %s", engine)
	}

	pg, _ := set.For(core.Postgres, "list primary keys")
	assert.Contains(t, pg.SQL, "string_agg")
	my, _ := set.For(core.MySQL, "list primary keys")
	assert.Contains(t, my.SQL, "GROUP_CONCAT")
	ch, _ := set.For(core.ClickHouse, "list primary keys")
	assert.Contains(t, ch.SQL, "groupArray")
}

func TestEnumsSupport(t *testing.T) {
	set := Enums()

	pg, err := set.For(core.Postgres, "list enums")
	require.NoError(t, err)
	assert.Contains(t, pg.SQL, "pg_enum")
	assert.Contains(t, pg.SQL, "enumsortorder")
	assert.Contains(t, pg.SQL, "WHERE n.nspname NOT IN ('pg_catalog', 'pg_toast', 'information_schema')")

	my, err := set.For(core.MySQL, "list enums")
	require.NoError(t, err)
	assert.Contains(t, my.SQL, "'enum'")
	assert.Contains(t, my.SQL, "'set'")

	// No enum types on these engines.
	assert.False(t, set.Supports(core.MSSQL))
	assert.False(t, set.Supports(core.SQLite))
	_, err = set.For(core.SQLite, "list enums")
	assert.ErrorIs(t, err, core.ErrUnsupportedEngine)
}

func TestConstraintsAndIndexes(t *testing.T) {
	constraints := Constraints()
	for _, engine := range []core.Engine{core.Postgres, core.MySQL, core.MSSQL, core.SQLite} {
		stmt, err := constraints.For(engine, "list constraints")
		require.NoError(t, err, "engine %s", engine)
		assert.Contains(t, stmt.SQL, "usage_column", "engine %s", engine)
	}

	indexes := Indexes()
	for _, engine := range core.Engines() {
		stmt, err := indexes.For(engine, "list indexes")
		require.NoError(t, err, "engine %s", engine)
		assert.Contains(t, stmt.SQL, "is_unique", "engine %s", engine)
		assert.Contains(t, stmt.SQL, "is_primary", "engine %s", engine)
	}
}
