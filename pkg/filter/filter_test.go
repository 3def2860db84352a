package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

var pgDialect = &dialect.Config{
	Engine:        core.Postgres,
	Identifiers:   dialect.IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
	Placeholder:   dialect.PlaceholderDollar,
	SupportsIlike: true,
}

var myDialect = &dialect.Config{
	Engine:      core.MySQL,
	Identifiers: dialect.IdentifierConfig{Quote: "`", QuoteEnd: "`", Escape: "``"},
	Placeholder: dialect.PlaceholderQuestion,
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Operator
		wantErr bool
	}{
		{name: "equals", input: "=", want: Eq},
		{name: "lowercase like", input: "like", want: Like},
		{name: "padded in", input: " in ", want: In},
		{name: "is null", input: "IS NULL", want: IsNull},
		{name: "unknown operator", input: "between", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Lookup(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var malformed *core.MalformedFilterError
				assert.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Operator)
		})
	}
}

func TestOperatorsCoversVocabulary(t *testing.T) {
	ops := Operators()
	assert.Len(t, ops, 13)
	for _, op := range ops {
		def, err := Lookup(string(op))
		require.NoError(t, err)
		assert.Equal(t, op, def.Operator)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		filters  []Filter
		concat   Concat
		start    int
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "single equality",
			filters: []Filter{{Column: "name", Operator: Eq, Values: []string{"alice"}}},
			concat:  And,
			start:   1,
			wantSQL: `"name" = $1`,
			wantArgs: []any{"alice"},
		},
		{
			name: "two filters joined with AND",
			filters: []Filter{
				{Column: "age", Operator: Gte, Values: []string{"30"}},
				{Column: "city", Operator: NotEq, Values: []string{"Berlin"}},
			},
			concat:   And,
			start:    1,
			wantSQL:  `"age" >= $1 AND "city" != $2`,
			wantArgs: []any{"30", "Berlin"},
		},
		{
			name: "OR concat",
			filters: []Filter{
				{Column: "status", Operator: Eq, Values: []string{"active"}},
				{Column: "status", Operator: Eq, Values: []string{"trial"}},
			},
			concat:   Or,
			start:    1,
			wantSQL:  `"status" = $1 OR "status" = $2`,
			wantArgs: []any{"active", "trial"},
		},
		{
			name:     "IN binds one placeholder per value",
			filters:  []Filter{{Column: "status", Operator: In, Values: []string{"active", " trial", "churned "}}},
			concat:   And,
			start:    1,
			wantSQL:  `"status" IN ($1, $2, $3)`,
			wantArgs: []any{"active", "trial", "churned"},
		},
		{
			name:     "valueless operator binds nothing",
			filters:  []Filter{{Column: "deleted_at", Operator: IsNull}},
			concat:   And,
			start:    1,
			wantSQL:  `"deleted_at" IS NULL`,
			wantArgs: nil,
		},
		{
			name: "numbering continues from start",
			filters: []Filter{
				{Column: "a", Operator: Eq, Values: []string{"1"}},
				{Column: "b", Operator: In, Values: []string{"x", "y"}},
			},
			concat:   And,
			start:    4,
			wantSQL:  `"a" = $4 AND "b" IN ($5, $6)`,
			wantArgs: []any{"1", "x", "y"},
		},
		{
			name:     "scalar operator binds only the first value",
			filters:  []Filter{{Column: "name", Operator: Eq, Values: []string{"first", "ignored"}}},
			concat:   And,
			start:    1,
			wantSQL:  `"name" = $1`,
			wantArgs: []any{"first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := Render(pgDialect, tt.filters, tt.concat, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRenderIlikePerDialect(t *testing.T) {
	filters := []Filter{{Column: "name", Operator: ILike, Values: []string{"%ann%"}}}

	sql, args, err := Render(pgDialect, filters, And, 1)
	require.NoError(t, err)
	assert.Equal(t, `"name" ILIKE $1`, sql)
	assert.Equal(t, []any{"%ann%"}, args)

	_, _, err = Render(myDialect, filters, And, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedEngine)
	var unsupported *core.UnsupportedEngineError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, core.MySQL, unsupported.Engine)
}

func TestRenderEmptyInList(t *testing.T) {
	for _, op := range []Operator{In, NotIn} {
		_, _, err := Render(pgDialect, []Filter{{Column: "status", Operator: op}}, And, 1)
		require.Error(t, err)
		var malformed *core.MalformedFilterError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, string(op), malformed.Operator)
	}
}

func TestRenderUnknownOperator(t *testing.T) {
	_, _, err := Render(pgDialect, []Filter{{Column: "x", Operator: "BETWEEN"}}, And, 1)
	require.Error(t, err)
	var malformed *core.MalformedFilterError
	assert.ErrorAs(t, err, &malformed)
}

func TestRenderPlaceholderCountMatchesArgs(t *testing.T) {
	for n := 1; n <= 6; n++ {
		values := make([]string, n)
		for i := range values {
			values[i] = fmt.Sprintf("v%d", i)
		}
		sql, args, err := Render(pgDialect, []Filter{{Column: "k", Operator: In, Values: values}}, And, 1)
		require.NoError(t, err)
		assert.Len(t, args, n)
		for i := 1; i <= n; i++ {
			assert.Contains(t, sql, fmt.Sprintf("$%d", i))
		}
	}
}
