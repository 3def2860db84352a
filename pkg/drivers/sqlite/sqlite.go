// Package sqlite provides the SQLite driver.
//
// Import this package with a blank identifier to register the driver:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/sqlite"
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

func init() {
	driver.Register(core.SQLite, Open)
}

// Open opens a SQLite database file and verifies it with a ping. The
// connection string is a filesystem path, optionally prefixed with
// sqlite:// or file:.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path := dbPath(connString)
	if path == "" {
		return nil, &core.MalformedConnStringError{Reason: "empty sqlite path"}
	}

	logger.Debug("opening sqlite database", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &core.ConnError{Engine: core.SQLite, Err: err}
	}

	// The sqlite driver serializes writes itself but a single connection
	// avoids SQLITE_BUSY on mixed read/write workloads.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &core.ConnError{Engine: core.SQLite, Err: err}
	}
	return db, nil
}

// dbPath strips the optional scheme prefix and returns the file path.
func dbPath(connString string) string {
	s := strings.TrimSpace(connString)
	for _, prefix := range []string{"sqlite3://", "sqlite://", "file:"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}
