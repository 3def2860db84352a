// Package filter defines the fixed WHERE-operator vocabulary and renders
// filter lists into SQL fragments.
//
// Values are never spliced into the SQL text: rendering emits dialect
// placeholders and returns the values as an ordered args slice for the
// executor to bind.
package filter

import (
	"strings"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/dialect"
)

// Operator is a member of the fixed operator vocabulary.
type Operator string

const (
	Eq        Operator = "="
	NotEq     Operator = "!="
	Lt        Operator = "<"
	Lte       Operator = "<="
	Gt        Operator = ">"
	Gte       Operator = ">="
	Like      Operator = "LIKE"
	NotLike   Operator = "NOT LIKE"
	ILike     Operator = "ILIKE"
	In        Operator = "IN"
	NotIn     Operator = "NOT IN"
	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"
)

// Def describes how an operator consumes values.
type Def struct {
	Operator Operator
	// HasValue is false for operators that never bind a value (IS NULL).
	HasValue bool
	// IsList is true for operators binding a parenthesized value list (IN).
	IsList bool
}

// operators is the closed vocabulary. A filter naming anything else is
// malformed input.
var operators = map[Operator]Def{
	Eq:        {Operator: Eq, HasValue: true},
	NotEq:     {Operator: NotEq, HasValue: true},
	Lt:        {Operator: Lt, HasValue: true},
	Lte:       {Operator: Lte, HasValue: true},
	Gt:        {Operator: Gt, HasValue: true},
	Gte:       {Operator: Gte, HasValue: true},
	Like:      {Operator: Like, HasValue: true},
	NotLike:   {Operator: NotLike, HasValue: true},
	ILike:     {Operator: ILike, HasValue: true},
	In:        {Operator: In, HasValue: true, IsList: true},
	NotIn:     {Operator: NotIn, HasValue: true, IsList: true},
	IsNull:    {Operator: IsNull},
	IsNotNull: {Operator: IsNotNull},
}

// Operators returns the vocabulary, e.g. for tool contracts that enumerate
// the allowed operators.
func Operators() []Operator {
	return []Operator{Eq, NotEq, Lt, Lte, Gt, Gte, Like, NotLike, ILike, In, NotIn, IsNull, IsNotNull}
}

// Lookup resolves an operator against the vocabulary.
func Lookup(op string) (Def, error) {
	def, ok := operators[Operator(strings.ToUpper(strings.TrimSpace(op)))]
	if !ok {
		return Def{}, &core.MalformedFilterError{Operator: op}
	}
	return def, nil
}

// Filter is one WHERE condition. Column names originate from prior
// introspection calls, never raw user free text; Values are end-user input
// and are always parameter-bound.
type Filter struct {
	Column   string
	Operator Operator
	Values   []string
}

// Concat selects how multiple filters combine.
type Concat string

const (
	And Concat = "AND"
	Or  Concat = "OR"
)

// Render produces the WHERE fragment (without the WHERE keyword) for the
// given filters, joined by concat, with placeholders numbered from start.
// List operators bind every value inside one parenthesized group; scalar
// operators bind at most the first value; valueless operators bind none.
func Render(d *dialect.Config, filters []Filter, concat Concat, start int) (string, []any, error) {
	if concat != Or {
		concat = And
	}

	var (
		parts []string
		args  []any
		next  = start
	)
	for _, f := range filters {
		def, err := Lookup(string(f.Operator))
		if err != nil {
			return "", nil, err
		}
		if def.Operator == ILike && !d.SupportsIlike {
			return "", nil, &core.UnsupportedEngineError{Engine: d.Engine, Operation: "ILIKE filter"}
		}
		if def.IsList && len(f.Values) == 0 {
			return "", nil, &core.MalformedFilterError{
				Operator: string(def.Operator), Reason: "requires at least one value",
			}
		}

		var b strings.Builder
		b.WriteString(d.QuoteIdentifier(f.Column))
		b.WriteString(" ")
		b.WriteString(string(def.Operator))

		switch {
		case !def.HasValue:
			// nothing to bind
		case def.IsList:
			holes := make([]string, len(f.Values))
			for i, v := range f.Values {
				holes[i] = d.FormatPlaceholder(next)
				args = append(args, strings.TrimSpace(v))
				next++
			}
			b.WriteString(" (")
			b.WriteString(strings.Join(holes, ", "))
			b.WriteString(")")
		default:
			if len(f.Values) > 0 {
				b.WriteString(" ")
				b.WriteString(d.FormatPlaceholder(next))
				args = append(args, f.Values[0])
				next++
			}
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, " "+string(concat)+" "), args, nil
}
