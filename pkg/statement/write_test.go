package statement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
)

func TestUpdateCell(t *testing.T) {
	set := UpdateCell(UpdateCellParams{
		Schema: "public",
		Table:  "users",
		Column: "email",
		Value:  "new@example.com",
		PrimaryKeys: []PKValue{
			{Column: "id", Value: 7},
			{Column: "tenant_id", Value: 3},
		},
	})

	tests := []struct {
		engine  core.Engine
		wantSQL string
	}{
		{
			engine:  core.Postgres,
			wantSQL: `UPDATE "public"."users" SET "email" = $1 WHERE "id" = $2 AND "tenant_id" = $3 RETURNING *`,
		},
		{
			engine:  core.MySQL,
			wantSQL: "UPDATE `public`.`users` SET `email` = ? WHERE `id` = ? AND `tenant_id` = ?",
		},
		{
			engine:  core.MSSQL,
			wantSQL: "UPDATE [public].[users] SET [email] = @p1 OUTPUT INSERTED.* WHERE [id] = @p2 AND [tenant_id] = @p3",
		},
		{
			engine:  core.ClickHouse,
			wantSQL: "ALTER TABLE `public`.`users` UPDATE `email` = ? WHERE `id` = ? AND `tenant_id` = ?",
		},
		{
			engine:  core.SQLite,
			wantSQL: `UPDATE "public"."users" SET "email" = $1 WHERE "id" = $2 AND "tenant_id" = $3 RETURNING *`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			stmt, err := set.For(tt.engine, "update cell")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, []any{"new@example.com", 7, 3}, stmt.Args)
		})
	}
}

func TestInsertRowSortsColumns(t *testing.T) {
	set := InsertRow(InsertRowParams{
		Schema: "public",
		Table:  "users",
		Values: map[string]any{"name": "alice", "age": 30, "email": "a@example.com"},
	})

	pg, err := set.For(core.Postgres, "insert row")
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "public"."users" ("age", "email", "name") VALUES ($1, $2, $3) RETURNING *`,
		pg.SQL)
	assert.Equal(t, []any{30, "a@example.com", "alice"}, pg.Args)

	ms, err := set.For(core.MSSQL, "insert row")
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO [public].[users] ([age], [email], [name]) OUTPUT INSERTED.* VALUES (@p1, @p2, @p3)",
		ms.SQL)
}

func TestDeleteRows(t *testing.T) {
	set := DeleteRows(DeleteRowsParams{
		Schema: "public",
		Table:  "users",
		Rows: [][]PKValue{
			{{Column: "id", Value: 1}, {Column: "tenant_id", Value: 10}},
			{{Column: "id", Value: 2}, {Column: "tenant_id", Value: 20}},
		},
	})

	pg, err := set.For(core.Postgres, "delete rows")
	require.NoError(t, err)
	assert.Equal(t,
		`DELETE FROM "public"."users" WHERE ("id" = $1 AND "tenant_id" = $2) OR ("id" = $3 AND "tenant_id" = $4)`,
		pg.SQL)
	assert.Equal(t, []any{1, 10, 2, 20}, pg.Args)

	ch, err := set.For(core.ClickHouse, "delete rows")
	require.NoError(t, err)
	assert.Equal(t,
		"ALTER TABLE `public`.`users` DELETE WHERE (`id` = ? AND `tenant_id` = ?) OR (`id` = ? AND `tenant_id` = ?)",
		ch.SQL)
}

func TestDeleteRowsArgCount(t *testing.T) {
	for rows := 1; rows <= 4; rows++ {
		for keys := 1; keys <= 3; keys++ {
			var rowSpecs [][]PKValue
			for r := 0; r < rows; r++ {
				var pk []PKValue
				for k := 0; k < keys; k++ {
					pk = append(pk, PKValue{Column: fmt.Sprintf("k%d", k), Value: r*10 + k})
				}
				rowSpecs = append(rowSpecs, pk)
			}

			set := DeleteRows(DeleteRowsParams{Schema: "s", Table: "t", Rows: rowSpecs})
			pg, err := set.For(core.Postgres, "delete rows")
			require.NoError(t, err)
			assert.Len(t, pg.Args, rows*keys, "rows=%d keys=%d", rows, keys)
			assert.Contains(t, pg.SQL, fmt.Sprintf("$%d", rows*keys))
			assert.NotContains(t, pg.SQL, fmt.Sprintf("$%d", rows*keys+1))
		}
	}
}

func TestDropTable(t *testing.T) {
	set := DropTable("public", "users")

	pg, err := set.For(core.Postgres, "drop table")
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE "public"."users"`, pg.SQL)

	ms, err := set.For(core.MSSQL, "drop table")
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE [public].[users]", ms.SQL)
}

func TestRenameTable(t *testing.T) {
	set := RenameTable("public", "users", "members")

	pg, err := set.For(core.Postgres, "rename table")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "public"."users" RENAME TO "members"`, pg.SQL)

	my, err := set.For(core.MySQL, "rename table")
	require.NoError(t, err)
	assert.Equal(t, "RENAME TABLE `public`.`users` TO `public`.`members`", my.SQL)

	ms, err := set.For(core.MSSQL, "rename table")
	require.NoError(t, err)
	assert.Equal(t, "EXEC sp_rename 'public.users', 'members'", ms.SQL)
}
