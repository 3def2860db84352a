// Package executor runs statements against live connections and normalizes
// the results.
//
// Rows come back as []map[string]any alongside the driver's column metadata.
// Failures are classified: network and handshake problems surface as
// *core.ConnError and are retried with constant backoff, while statements
// the engine rejects surface as *core.QueryError with the native message and
// are never retried.
package executor

import (
	"context"
	"database/sql"
	sqldriver "database/sql/driver"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/squill-labs/squill/internal/querylog"
	"github.com/squill-labs/squill/pkg/conncache"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

const (
	// maxAttempts and retryDelay bound the reconnection loop for
	// connection-class failures.
	maxAttempts = 5
	retryDelay  = 3 * time.Second

	// estimateThreshold is the row-count estimate above which Total skips
	// the exact COUNT(*).
	estimateThreshold = 50_000
)

// Request is one statement to run on one connection.
type Request struct {
	Engine     core.Engine
	ConnString string
	SQL        string
	Args       []any
}

// Executor runs requests through the connection cache.
type Executor struct {
	cache  *conncache.Cache
	log    *querylog.Log
	logger *slog.Logger
}

// New creates an Executor. A nil querylog disables history; a nil logger
// discards.
func New(cache *conncache.Cache, log *querylog.Log, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{cache: cache, log: log, logger: logger}
}

// Execute runs the request and returns the normalized result. Connection
// failures are retried up to maxAttempts with a constant delay; anything
// else fails immediately.
func (e *Executor) Execute(ctx context.Context, req Request) (*core.Result, error) {
	var result *core.Result

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewConstant(retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := e.executeOnce(ctx, req)
		if err != nil {
			var connErr *core.ConnError
			if errors.As(err, &connErr) {
				e.logger.Warn("connection failure, retrying",
					slog.String("engine", string(req.Engine)), slog.String("error", err.Error()))
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// executeOnce performs a single attempt: acquire, query, normalize, record.
func (e *Executor) executeOnce(ctx context.Context, req Request) (*core.Result, error) {
	client, err := e.cache.Acquire(ctx, req.Engine, req.ConnString)
	if err != nil {
		return nil, classify(req.Engine, err)
	}
	defer client.Release()

	start := time.Now()
	rows, err := client.DB().QueryContext(ctx, req.SQL, req.Args...)
	e.record(req, time.Since(start), err)
	if err != nil {
		return nil, classify(req.Engine, err)
	}
	defer rows.Close()

	result, err := normalize(rows)
	if err != nil {
		return nil, classify(req.Engine, err)
	}
	return result, nil
}

// record appends the execution to the query log under the connection key.
func (e *Executor) record(req Request, d time.Duration, err error) {
	if e.log == nil {
		return
	}
	entry := querylog.Entry{SQL: req.SQL, Args: req.Args, Duration: d}
	if err != nil {
		entry.Err = err.Error()
	}
	e.log.Record(req.ConnString, entry)
}

// TestConnection opens a throwaway connection, pings it, and closes it. The
// cache is never touched, so a bad URL cannot poison it.
func (e *Executor) TestConnection(ctx context.Context, engine core.Engine, connString string) error {
	db, err := driver.Open(ctx, engine, connString, e.logger)
	if err != nil {
		return classify(engine, err)
	}
	return db.Close()
}

// normalize converts driver rows into the uniform result shape. Byte slices
// become strings so engine-specific text columns stay readable.
func normalize(rows *sql.Rows) (*core.Result, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]core.ColumnMeta, len(types))
	names := make([]string, len(types))
	for i, ct := range types {
		nullable, _ := ct.Nullable()
		columns[i] = core.ColumnMeta{
			Name:     ct.Name(),
			Type:     ct.DatabaseTypeName(),
			Nullable: nullable,
		}
		names[i] = ct.Name()
	}

	out := []map[string]any{}
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(names))
		for i, name := range names {
			switch v := values[i].(type) {
			case []byte:
				row[name] = string(v)
			default:
				row[name] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &core.Result{Rows: out, Columns: columns}, nil
}

// classify wraps a raw driver error into the taxonomy. Errors that already
// carry a classification pass through, cancellation passes through, network
// and handshake failures become ConnError, everything else QueryError.
func classify(engine core.Engine, err error) error {
	var connErr *core.ConnError
	var queryErr *core.QueryError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connErr), errors.As(err, &queryErr):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, conncache.ErrCacheFull), errors.Is(err, conncache.ErrClosed):
		return err
	case isConnFailure(err):
		return &core.ConnError{Engine: engine, Err: err}
	default:
		return &core.QueryError{Engine: engine, Err: err}
	}
}

// connFailureMarkers are the substrings that identify a network-level
// failure across the five drivers.
var connFailureMarkers = []string{
	"connection refused",
	"connection reset",
	"connection lost",
	"broken pipe",
	"econnreset",
	"i/o timeout",
	"no such host",
	"bad connection",
	"server has gone away",
}

func isConnFailure(err error) bool {
	if errors.Is(err, sqldriver.ErrBadConn) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range connFailureMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
