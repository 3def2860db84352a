package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
)

func rowsResult(rows ...map[string]any) *core.Result {
	return &core.Result{Rows: rows}
}

func TestDecodeDatabases(t *testing.T) {
	res := rowsResult(
		map[string]any{"name": "app"},
		map[string]any{"name": "analytics"},
	)

	records, err := DecodeDatabases(res)
	require.NoError(t, err)
	assert.Equal(t, []core.DatabaseRecord{{Name: "app"}, {Name: "analytics"}}, records)
}

func TestDecodeDatabasesMissingField(t *testing.T) {
	_, err := DecodeDatabases(rowsResult(map[string]any{"label": "app"}))
	var validation *core.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)
}

func TestDecodeTables(t *testing.T) {
	res := rowsResult(
		map[string]any{"schema": "public", "name": "users"},
		map[string]any{"schema": "sales", "name": "orders"},
	)

	records, err := DecodeTables(res)
	require.NoError(t, err)
	assert.Equal(t, []core.TableRecord{
		{Schema: "public", Name: "users"},
		{Schema: "sales", Name: "orders"},
	}, records)
}

func TestDecodeTablesMistypedField(t *testing.T) {
	_, err := DecodeTables(rowsResult(map[string]any{"schema": 42, "name": "users"}))
	var validation *core.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "schema", validation.Field)
}

func TestDecodeColumns(t *testing.T) {
	res := rowsResult(
		map[string]any{"name": "id", "data_type": "bigint", "is_nullable": "NO", "column_default": "nextval('users_id_seq')"},
		map[string]any{"name": "bio", "data_type": "text", "is_nullable": "YES", "column_default": nil},
	)

	records, err := DecodeColumns(res, "public", "users")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, core.ColumnDescriptor{
		Schema: "public", Table: "users", Name: "id",
		DataType: "bigint", Nullable: false, Default: "nextval('users_id_seq')",
	}, records[0])
	assert.True(t, records[1].Nullable)
	assert.Empty(t, records[1].Default)
}

func TestDecodeWholeCallFailsOnBadRow(t *testing.T) {
	res := rowsResult(
		map[string]any{"name": "good"},
		map[string]any{"name": ""},
	)

	records, err := DecodeDatabases(res)
	assert.Error(t, err)
	assert.Nil(t, records, "partial results are never returned")
}

func TestBoolField(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "native true", value: true, want: true},
		{name: "native false", value: false, want: false},
		{name: "int64 one", value: int64(1), want: true},
		{name: "int64 zero", value: int64(0), want: false},
		{name: "string one", value: "1", want: true},
		{name: "string zero", value: "0", want: false},
		{name: "uint8 one", value: uint8(1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := boolField(map[string]any{"flag": tt.value}, "flag", 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := boolField(map[string]any{"flag": []string{"no"}}, "flag", 0)
	assert.Error(t, err)
	_, err = boolField(map[string]any{}, "flag", 0)
	assert.Error(t, err)
}
