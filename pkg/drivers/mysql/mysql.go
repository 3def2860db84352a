// Package mysql provides the MySQL driver.
//
// Import this package with a blank identifier to register the driver:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/mysql"
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/squill-labs/squill/pkg/connstring"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

func init() {
	driver.Register(core.MySQL, Open)
}

// Open connects to MySQL and verifies the connection with a ping.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := connstring.Parse(connString)
	if err != nil {
		return nil, err
	}

	logger.Debug("connecting to mysql",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, &core.ConnError{Engine: core.MySQL, Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &core.ConnError{Engine: core.MySQL, Err: err}
	}
	return db, nil
}

// buildDSN constructs a go-sql-driver DSN from the parsed parts.
func buildDSN(cfg *connstring.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", host, port)
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if cfg.SSLEnabled() && cfg.Options["ssl"] != "" {
		mc.TLSConfig = "preferred"
	}

	return mc.FormatDSN()
}
