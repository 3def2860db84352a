// Package clickhouse provides the ClickHouse driver.
//
// Import this package with a blank identifier to register the driver:
//
//	import _ "github.com/squill-labs/squill/pkg/drivers/clickhouse"
package clickhouse

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-viper/mapstructure/v2"

	"github.com/squill-labs/squill/pkg/connstring"
	"github.com/squill-labs/squill/pkg/core"
	"github.com/squill-labs/squill/pkg/driver"
)

func init() {
	driver.Register(core.ClickHouse, Open)
}

// params holds the driver tunables accepted as connection string options.
// Values arrive as strings and are weakly decoded.
type params struct {
	Secure      bool          `mapstructure:"secure"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Open connects to ClickHouse through its database/sql facade and verifies
// the connection with a ping.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := connstring.Parse(connString)
	if err != nil {
		return nil, err
	}

	var p params
	if err := mapstructure.WeakDecode(cfg.Options, &p); err != nil {
		return nil, &core.MalformedConnStringError{Reason: "invalid clickhouse options", Err: err}
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 9000
	}

	database := cfg.Database
	if database == "" {
		database = "default"
	}

	logger.Debug("connecting to clickhouse",
		slog.String("host", host), slog.String("database", database))

	opts := &ch.Options{
		Addr: []string{fmt.Sprintf("%s:%d", host, port)},
		Auth: ch.Auth{
			Database: database,
			Username: cfg.User,
			Password: cfg.Password,
		},
	}
	if p.Secure {
		opts.TLS = &tls.Config{}
	}
	if p.DialTimeout > 0 {
		opts.DialTimeout = p.DialTimeout
	}

	db := ch.OpenDB(opts)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &core.ConnError{Engine: core.ClickHouse, Err: err}
	}
	return db, nil
}
