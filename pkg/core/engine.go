// Package core defines the shared types of the SQL generation and execution
// layer: the supported engine set, normalized result shapes, and the error
// taxonomy every component reports through.
package core

import "fmt"

// Engine identifies a supported database product.
// The set is closed: adding an engine means adding a dialect config,
// a driver opener, and builder entries for every operation.
type Engine string

const (
	Postgres   Engine = "postgres"
	MySQL      Engine = "mysql"
	MSSQL      Engine = "mssql"
	ClickHouse Engine = "clickhouse"
	SQLite     Engine = "sqlite"
)

// Engines returns all supported engines in a stable order.
func Engines() []Engine {
	return []Engine{Postgres, MySQL, MSSQL, ClickHouse, SQLite}
}

// ParseEngine validates a string against the closed engine set.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case Postgres, MySQL, MSSQL, ClickHouse, SQLite:
		return Engine(s), nil
	}
	return "", fmt.Errorf("unknown engine %q (supported: %v)", s, Engines())
}

// String returns the engine tag as used in configuration and dispatch maps.
func (e Engine) String() string { return string(e) }
