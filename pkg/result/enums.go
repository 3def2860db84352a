package result

import (
	"fmt"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
)

// DecodeEnums folds raw enum rows into one record per enum type, preserving
// the first-seen order of both types and labels.
//
// Two row shapes are accepted. Postgres-style rows carry one label per row
// in a "value" column and fold by (schema, name). Column-type rows carry the
// whole value list inside a "column_type" text like mysql's "enum('a','b')"
// or clickhouse's "Enum8('a' = 1)" and produce one record per column.
func DecodeEnums(res *core.Result) ([]core.EnumRecord, error) {
	var out []core.EnumRecord
	index := make(map[string]int)

	for i, row := range res.Rows {
		if _, ok := row["value"]; ok {
			schema, err := stringField(row, "schema", i)
			if err != nil {
				return nil, err
			}
			name, err := stringField(row, "name", i)
			if err != nil {
				return nil, err
			}
			value, err := stringField(row, "value", i)
			if err != nil {
				return nil, err
			}

			key := schema + "." + name
			at, ok := index[key]
			if !ok {
				at = len(out)
				index[key] = at
				out = append(out, core.EnumRecord{Schema: schema, Name: name})
			}
			out[at].Values = append(out[at].Values, value)
			continue
		}

		schema, err := stringField(row, "schema", i)
		if err != nil {
			return nil, err
		}
		table, err := stringField(row, "table", i)
		if err != nil {
			return nil, err
		}
		column, err := stringField(row, "column", i)
		if err != nil {
			return nil, err
		}
		columnType, err := stringField(row, "column_type", i)
		if err != nil {
			return nil, err
		}

		values := parseTypeValues(columnType)
		if len(values) == 0 {
			return nil, &core.ValidationError{Field: "column_type", Reason: fmt.Sprintf("no values in %q (row %d)", columnType, i)}
		}

		out = append(out, core.EnumRecord{
			Schema: schema,
			Name:   column,
			Values: values,
			Table:  table,
			Column: column,
			IsSet:  strings.HasPrefix(strings.ToLower(columnType), "set("),
		})
	}
	return out, nil
}

// parseTypeValues extracts the quoted labels from an enum-ish column type
// text. It understands both quote-doubling ("enum('it''s')") and backslash
// escapes ("Enum8('it\'s' = 1)").
func parseTypeValues(typeText string) []string {
	var values []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(typeText); i++ {
		ch := typeText[i]
		switch {
		case !inQuote:
			if ch == '\'' {
				inQuote = true
				current.Reset()
			}
		case ch == '\\' && i+1 < len(typeText):
			i++
			current.WriteByte(typeText[i])
		case ch == '\'':
			if i+1 < len(typeText) && typeText[i+1] == '\'' {
				current.WriteByte('\'')
				i++
				continue
			}
			inQuote = false
			values = append(values, current.String())
		default:
			current.WriteByte(ch)
		}
	}
	return values
}
