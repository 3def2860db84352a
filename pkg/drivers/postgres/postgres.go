// Package postgres provides the PostgreSQL driver.
//
// Import this package with a blank identifier to register the driver:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/postgres"
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/squill-labs/squill/pkg/connstring"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

func init() {
	driver.Register(core.Postgres, Open)
}

// Open connects to PostgreSQL and verifies the connection with a ping.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := connstring.Parse(connString)
	if err != nil {
		return nil, err
	}

	logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", buildDSN(cfg))
	if err != nil {
		return nil, &core.ConnError{Engine: core.Postgres, Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &core.ConnError{Engine: core.Postgres, Err: err}
	}
	return db, nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg *connstring.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := cfg.SSLMode()
	if sslmode == "" {
		if cfg.SSLEnabled() {
			sslmode = "prefer"
		} else {
			sslmode = "disable"
		}
	}

	parts := []string{
		fmt.Sprintf("host=%s", quoteDSNValue(host)),
		fmt.Sprintf("port=%d", port),
		fmt.Sprintf("sslmode=%s", sslmode),
	}
	if cfg.Database != "" {
		parts = append(parts, fmt.Sprintf("dbname=%s", quoteDSNValue(cfg.Database)))
	}
	if cfg.User != "" {
		parts = append(parts, fmt.Sprintf("user=%s", quoteDSNValue(cfg.User)))
	}
	if cfg.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", quoteDSNValue(cfg.Password)))
	}

	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes a key=value DSN value containing spaces,
// quotes, or backslashes, per the libpq connection string rules.
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
