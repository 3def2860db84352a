package result

import (
	"fmt"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
)

// DecodePrimaryKeys splits the comma-joined primary_keys aggregate of each
// row into ordered column lists. An empty aggregate is invalid: a table with
// no key never appears in the source rows.
func DecodePrimaryKeys(res *core.Result) ([]core.PrimaryKeyRecord, error) {
	out := make([]core.PrimaryKeyRecord, 0, len(res.Rows))
	for i, row := range res.Rows {
		schema, err := stringField(row, "schema", i)
		if err != nil {
			return nil, err
		}
		table, err := stringField(row, "table", i)
		if err != nil {
			return nil, err
		}
		joined, err := stringField(row, "primary_keys", i)
		if err != nil {
			return nil, err
		}

		var keys []string
		for _, part := range strings.Split(joined, ",") {
			if col := strings.TrimSpace(part); col != "" {
				keys = append(keys, col)
			}
		}
		if len(keys) == 0 {
			return nil, &core.ValidationError{Field: "primary_keys", Reason: fmt.Sprintf("no columns in row %d", i)}
		}

		out = append(out, core.PrimaryKeyRecord{Schema: schema, Table: table, PrimaryKeys: keys})
	}
	return out, nil
}

// constraintKinds maps the SQL-standard constraint type labels onto the
// record kinds.
var constraintKinds = map[string]core.ConstraintKind{
	"PRIMARY KEY": core.ConstraintPrimaryKey,
	"UNIQUE":      core.ConstraintUnique,
	"FOREIGN KEY": core.ConstraintForeignKey,
}

// DecodeConstraints maps constraint rows into records. Rows with an unknown
// constraint type fail the call.
func DecodeConstraints(res *core.Result) ([]core.ConstraintRecord, error) {
	out := make([]core.ConstraintRecord, 0, len(res.Rows))
	for i, row := range res.Rows {
		schema, err := stringField(row, "schema", i)
		if err != nil {
			return nil, err
		}
		table, err := stringField(row, "table", i)
		if err != nil {
			return nil, err
		}
		name, err := stringField(row, "name", i)
		if err != nil {
			return nil, err
		}
		label, err := stringField(row, "type", i)
		if err != nil {
			return nil, err
		}
		kind, ok := constraintKinds[strings.ToUpper(label)]
		if !ok {
			return nil, &core.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown constraint type %q in row %d", label, i)}
		}

		out = append(out, core.ConstraintRecord{
			Schema:      schema,
			Table:       table,
			Name:        name,
			Kind:        kind,
			Column:      optionalString(row, "column"),
			UsageSchema: optionalString(row, "usage_schema"),
			UsageTable:  optionalString(row, "usage_table"),
			UsageColumn: optionalString(row, "usage_column"),
		})
	}
	return out, nil
}

// DecodeIndexes maps index rows into records. The unique and primary flags
// arrive as native bools or numeric 0/1 depending on the engine.
func DecodeIndexes(res *core.Result) ([]core.IndexRecord, error) {
	out := make([]core.IndexRecord, 0, len(res.Rows))
	for i, row := range res.Rows {
		schema, err := stringField(row, "schema", i)
		if err != nil {
			return nil, err
		}
		table, err := stringField(row, "table", i)
		if err != nil {
			return nil, err
		}
		name, err := stringField(row, "name", i)
		if err != nil {
			return nil, err
		}
		column, err := stringField(row, "column", i)
		if err != nil {
			return nil, err
		}
		unique, err := boolField(row, "is_unique", i)
		if err != nil {
			return nil, err
		}
		primary, err := boolField(row, "is_primary", i)
		if err != nil {
			return nil, err
		}

		out = append(out, core.IndexRecord{
			Schema:  schema,
			Table:   table,
			Name:    name,
			Column:  column,
			Unique:  unique,
			Primary: primary,
		})
	}
	return out, nil
}
