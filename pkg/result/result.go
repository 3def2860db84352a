// Package result validates raw query results into typed catalog records.
//
// Decoders are strict: a missing or mistyped required field fails the whole
// call with *core.ValidationError rather than producing a partial listing.
package result

import (
	"fmt"

	"github.com/squill-labs/squill/pkg/core"
)

// DecodeDatabases maps a database listing into records.
func DecodeDatabases(res *core.Result) ([]core.DatabaseRecord, error) {
	out := make([]core.DatabaseRecord, 0, len(res.Rows))
	for i, row := range res.Rows {
		name, err := stringField(row, "name", i)
		if err != nil {
			return nil, err
		}
		out = append(out, core.DatabaseRecord{Name: name})
	}
	return out, nil
}

// DecodeTables maps a schema/table listing into records.
func DecodeTables(res *core.Result) ([]core.TableRecord, error) {
	out := make([]core.TableRecord, 0, len(res.Rows))
	for i, row := range res.Rows {
		schema, err := stringField(row, "schema", i)
		if err != nil {
			return nil, err
		}
		name, err := stringField(row, "name", i)
		if err != nil {
			return nil, err
		}
		out = append(out, core.TableRecord{Schema: schema, Name: name})
	}
	return out, nil
}

// DecodeColumns maps a column listing into descriptors for the given table.
// Nullability arrives as the information_schema 'YES'/'NO' convention.
func DecodeColumns(res *core.Result, schema, table string) ([]core.ColumnDescriptor, error) {
	out := make([]core.ColumnDescriptor, 0, len(res.Rows))
	for i, row := range res.Rows {
		name, err := stringField(row, "name", i)
		if err != nil {
			return nil, err
		}
		dataType, err := stringField(row, "data_type", i)
		if err != nil {
			return nil, err
		}
		nullable, err := stringField(row, "is_nullable", i)
		if err != nil {
			return nil, err
		}
		out = append(out, core.ColumnDescriptor{
			Schema:   schema,
			Table:    table,
			Name:     name,
			DataType: dataType,
			Nullable: nullable == "YES",
			Default:  optionalString(row, "column_default"),
		})
	}
	return out, nil
}

// stringField extracts a required non-empty string.
func stringField(row map[string]any, field string, idx int) (string, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return "", &core.ValidationError{Field: field, Reason: fmt.Sprintf("missing in row %d", idx)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &core.ValidationError{Field: field, Reason: fmt.Sprintf("expected string, got %T in row %d", v, idx)}
	}
	if s == "" {
		return "", &core.ValidationError{Field: field, Reason: fmt.Sprintf("empty in row %d", idx)}
	}
	return s, nil
}

// optionalString extracts a string field, tolerating absence and NULL.
func optionalString(row map[string]any, field string) string {
	if v, ok := row[field]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// boolField extracts a flag across driver representations: native bools,
// numeric 0/1 and their string forms all count.
func boolField(row map[string]any, field string, idx int) (bool, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return false, &core.ValidationError{Field: field, Reason: fmt.Sprintf("missing in row %d", idx)}
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int32:
		return b != 0, nil
	case int:
		return b != 0, nil
	case uint64:
		return b != 0, nil
	case uint8:
		return b != 0, nil
	case float64:
		return b != 0, nil
	case string:
		return b == "1" || b == "true" || b == "YES", nil
	default:
		return false, &core.ValidationError{Field: field, Reason: fmt.Sprintf("expected bool, got %T in row %d", v, idx)}
	}
}
