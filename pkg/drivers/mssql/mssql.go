// Package mssql provides the SQL Server driver.
//
// Import this package with a blank identifier to register the driver:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/mssql"
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/squill-labs/squill/pkg/connstring"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

func init() {
	driver.Register(core.MSSQL, Open)
}

// Open connects to SQL Server and verifies the connection with a ping.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := connstring.Parse(connString)
	if err != nil {
		return nil, err
	}

	logger.Debug("connecting to mssql",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("sqlserver", buildDSN(cfg))
	if err != nil {
		return nil, &core.ConnError{Engine: core.MSSQL, Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &core.ConnError{Engine: core.MSSQL, Err: err}
	}
	return db, nil
}

// buildDSN constructs a sqlserver:// URL from the parsed parts.
func buildDSN(cfg *connstring.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	q := url.Values{}
	if cfg.Database != "" {
		q.Set("database", cfg.Database)
	}
	if !cfg.SSLEnabled() {
		q.Set("encrypt", "disable")
	}

	u := url.URL{
		Scheme:   "sqlserver",
		Host:     fmt.Sprintf("%s:%d", host, port),
		RawQuery: q.Encode(),
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	return u.String()
}
