package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
)

func TestDecodePrimaryKeys(t *testing.T) {
	res := rowsResult(
		map[string]any{"schema": "public", "table": "users", "primary_keys": "id, tenant_id"},
		map[string]any{"schema": "public", "table": "events", "primary_keys": "id"},
	)

	records, err := DecodePrimaryKeys(res)
	require.NoError(t, err)
	assert.Equal(t, []core.PrimaryKeyRecord{
		{Schema: "public", Table: "users", PrimaryKeys: []string{"id", "tenant_id"}},
		{Schema: "public", Table: "events", PrimaryKeys: []string{"id"}},
	}, records)
}

func TestDecodePrimaryKeysTrimsParts(t *testing.T) {
	res := rowsResult(map[string]any{"schema": "s", "table": "t", "primary_keys": " a ,b,  c "})

	records, err := DecodePrimaryKeys(res)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, records[0].PrimaryKeys)
}

func TestDecodePrimaryKeysRejectsEmptyAggregate(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]any
	}{
		{name: "missing column", row: map[string]any{"schema": "s", "table": "t"}},
		{name: "empty string", row: map[string]any{"schema": "s", "table": "t", "primary_keys": ""}},
		{name: "only commas", row: map[string]any{"schema": "s", "table": "t", "primary_keys": " , ,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePrimaryKeys(rowsResult(tt.row))
			var validation *core.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestDecodeConstraints(t *testing.T) {
	res := rowsResult(
		map[string]any{
			"schema": "public", "table": "users", "name": "users_pkey",
			"type": "PRIMARY KEY", "column": "id",
		},
		map[string]any{
			"schema": "public", "table": "orders", "name": "orders_user_fk",
			"type": "FOREIGN KEY", "column": "user_id",
			"usage_schema": "public", "usage_table": "users", "usage_column": "id",
		},
		map[string]any{
			"schema": "public", "table": "users", "name": "users_email_key",
			"type": "unique", "column": "email",
		},
	)

	records, err := DecodeConstraints(res)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, core.ConstraintPrimaryKey, records[0].Kind)
	assert.Equal(t, core.ConstraintForeignKey, records[1].Kind)
	assert.Equal(t, "users", records[1].UsageTable)
	assert.Equal(t, "id", records[1].UsageColumn)
	assert.Equal(t, core.ConstraintUnique, records[2].Kind, "type label matching is case-insensitive")
}

func TestDecodeConstraintsUnknownType(t *testing.T) {
	res := rowsResult(map[string]any{
		"schema": "s", "table": "t", "name": "c", "type": "CHECK", "column": "x",
	})

	_, err := DecodeConstraints(res)
	var validation *core.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "type", validation.Field)
}

func TestDecodeIndexes(t *testing.T) {
	res := rowsResult(
		map[string]any{
			"schema": "public", "table": "users", "name": "users_pkey",
			"column": "id", "is_unique": true, "is_primary": true,
		},
		map[string]any{
			"schema": "public", "table": "users", "name": "users_email_idx",
			"column": "email", "is_unique": int64(1), "is_primary": int64(0),
		},
	)

	records, err := DecodeIndexes(res)
	require.NoError(t, err)
	assert.Equal(t, []core.IndexRecord{
		{Schema: "public", Table: "users", Name: "users_pkey", Column: "id", Unique: true, Primary: true},
		{Schema: "public", Table: "users", Name: "users_email_idx", Column: "email", Unique: true, Primary: false},
	}, records)
}
