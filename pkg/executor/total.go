package executor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/statement"
)

// Total returns the row count for a table. Unfiltered counts consult the
// engine's cheap estimate first and skip the exact COUNT(*) when the
// estimate is large, unless exactness is enforced. The second return value
// reports whether the count is an estimate.
func (e *Executor) Total(ctx context.Context, engine core.Engine, connString string, p statement.TotalParams, enforceExact bool) (int64, bool, error) {
	if len(p.Filters) == 0 && !enforceExact {
		if est, ok := e.estimate(ctx, engine, connString, p.Schema, p.Table); ok && est > estimateThreshold {
			return est, true, nil
		}
	}

	set, err := statement.ExactTotal(p)
	if err != nil {
		return 0, false, err
	}
	stmt, err := set.For(engine, "exact total")
	if err != nil {
		return 0, false, err
	}

	res, err := e.Execute(ctx, Request{Engine: engine, ConnString: connString, SQL: stmt.SQL, Args: stmt.Args})
	if err != nil {
		return 0, false, err
	}

	total, err := firstValue(res, "total")
	if err != nil {
		return 0, false, err
	}
	return total, false, nil
}

// estimate runs the engine's statistics-based count. A missing statement,
// query failure, or unusable value all report !ok and leave the exact path
// to decide.
func (e *Executor) estimate(ctx context.Context, engine core.Engine, connString, schema, table string) (int64, bool) {
	stmt, err := statement.EstimatedTotal(schema, table).For(engine, "estimated total")
	if err != nil {
		return 0, false
	}

	res, err := e.Execute(ctx, Request{Engine: engine, ConnString: connString, SQL: stmt.SQL, Args: stmt.Args})
	if err != nil {
		e.logger.Debug("row estimate failed", "engine", string(engine), "error", err.Error())
		return 0, false
	}

	est, err := firstValue(res, "estimate")
	if err != nil || est < 0 {
		return 0, false
	}
	return est, true
}

// firstValue extracts an integer column from the first result row.
func firstValue(res *core.Result, column string) (int64, error) {
	if len(res.Rows) == 0 {
		return 0, &core.ValidationError{Field: column, Reason: "no rows returned"}
	}
	v, ok := res.Rows[0][column]
	if !ok {
		return 0, &core.ValidationError{Field: column, Reason: "column missing from result"}
	}
	return toInt64(v)
}

// toInt64 coerces the count value across driver representations.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(n, 64)
			if ferr != nil {
				return 0, &core.ValidationError{Field: "count", Reason: fmt.Sprintf("unparseable value %q", n)}
			}
			return int64(f), nil
		}
		return parsed, nil
	case nil:
		return 0, &core.ValidationError{Field: "count", Reason: "null value"}
	default:
		return 0, &core.ValidationError{Field: "count", Reason: fmt.Sprintf("unexpected type %T", v)}
	}
}
