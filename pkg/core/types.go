package core

// ColumnMeta describes one column of a query result, as reported by the
// driver. It is rebuilt on every execution and never cached.
type ColumnMeta struct {
	Name     string
	Type     string
	Nullable bool
}

// Result is the normalized shape every engine's rows are mapped into.
// Rows and column descriptors travel together so callers can render a
// result without a second metadata round trip.
type Result struct {
	Rows    []map[string]any
	Columns []ColumnMeta
}

// ColumnDescriptor is an introspected table column. Produced by the columns
// statement and decoded in pkg/result; freshness wins over caching, so it is
// recomputed per fetch.
type ColumnDescriptor struct {
	Schema   string
	Table    string
	Name     string
	DataType string
	Nullable bool
	Default  string // default expression, empty when none
}

// TableRecord is one entry of the schema/table listing.
type TableRecord struct {
	Schema string
	Name   string
}

// DatabaseRecord is one entry of the database listing.
type DatabaseRecord struct {
	Name string
}

// PrimaryKeyRecord holds the ordered primary-key columns of one table.
// PrimaryKeys is never empty when the record exists: the source row carries
// the key columns as a comma-joined aggregate that is split on ingestion.
type PrimaryKeyRecord struct {
	Schema      string
	Table       string
	PrimaryKeys []string
}

// ConstraintKind classifies a constraint row.
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "primaryKey"
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreignKey"
)

// ConstraintRecord is one constraint/column pair, with the referenced side
// populated for foreign keys.
type ConstraintRecord struct {
	Schema      string
	Table       string
	Name        string
	Kind        ConstraintKind
	Column      string
	UsageSchema string
	UsageTable  string
	UsageColumn string
}

// IndexRecord is one index/column pair.
type IndexRecord struct {
	Schema  string
	Table   string
	Name    string
	Column  string
	Unique  bool
	Primary bool
}

// EnumRecord is a folded enum type: identity is (Schema, Name), Values keeps
// the first-seen label order of the source rows. Table and Column are set for
// engines where enums are column types rather than named types.
type EnumRecord struct {
	Schema string
	Name   string
	Values []string
	Table  string
	Column string
	IsSet  bool
}
