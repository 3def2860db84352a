package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEngine is wrapped by UnsupportedEngineError and usable with
// errors.Is for callers that only care about the category.
var ErrUnsupportedEngine = errors.New("engine not supported for this operation")

// MalformedConnStringError reports a connection string that does not parse.
// Surfaced immediately, never retried.
type MalformedConnStringError struct {
	Reason string
	Err    error
}

func (e *MalformedConnStringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed connection string: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed connection string: %s", e.Reason)
}

func (e *MalformedConnStringError) Unwrap() error { return e.Err }

// MalformedFilterError reports a WHERE filter using an operator outside the
// fixed vocabulary, or using a known operator with invalid operands.
type MalformedFilterError struct {
	Operator string
	Reason   string
}

func (e *MalformedFilterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid filter: %s %s", e.Operator, e.Reason)
	}
	return fmt.Sprintf("unknown filter operator %q", e.Operator)
}

// ConnError reports a handshake, auth, or network failure while acquiring or
// using a client. Distinct from QueryError so callers can suggest checking
// credentials and connectivity instead of the query text.
type ConnError struct {
	Engine Engine
	Err    error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Engine, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// QueryError reports a SQL statement the engine rejected. The native engine
// message is preserved; retrying is never useful.
type QueryError struct {
	Engine Engine
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Engine, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError reports a row that does not match the shape its
// introspection purpose requires. The whole call fails; partial metadata is
// never returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid row: field %q %s", e.Field, e.Reason)
}

// UnsupportedEngineError reports a builder with no entry for the requested
// engine. It is a support-matrix condition, checked before execution.
type UnsupportedEngineError struct {
	Engine    Engine
	Operation string
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("operation %q has no %s implementation", e.Operation, e.Engine)
}

func (e *UnsupportedEngineError) Unwrap() error { return ErrUnsupportedEngine }
