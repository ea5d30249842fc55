// Package database manages the platform's SQL connection. Both the
// Postgres and SQLite dialects are supported so a single-binary install
// needs no external services.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Registered for driver side effects
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quantbox/quantbox/log"
)

// Connect opens and verifies a connection for the configured driver
func Connect(cfg *Config) (*Instance, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if !cfg.Enabled {
		return nil, ErrDatabaseSupportDisabled
	}

	switch cfg.Driver {
	case DBSQLite3, DBPostgres:
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DBPostgres {
		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(time.Hour)
	} else {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if cfg.Driver == DBSQLite3 {
		// off by default in sqlite; required for ON DELETE CASCADE
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, err
		}
	}

	log.Debugf(log.DatabaseMgr, "Connected to %s database", cfg.Driver)
	return &Instance{SQL: db, config: cfg, connected: true}, nil
}

// Driver returns the dialect the instance was opened with
func (i *Instance) Driver() string {
	i.m.RLock()
	defer i.m.RUnlock()
	if i.config == nil {
		return ""
	}
	return i.config.Driver
}

// IsConnected safely checks the SQL connection status
func (i *Instance) IsConnected() bool {
	if i == nil {
		return false
	}
	i.m.RLock()
	defer i.m.RUnlock()
	return i.connected
}

// CloseConnection safely disconnects the instance
func (i *Instance) CloseConnection() error {
	i.m.Lock()
	defer i.m.Unlock()
	i.connected = false
	return i.SQL.Close()
}

// Rebind translates ? placeholders to the dialect's positional form, so
// repositories can write one query for both drivers
func (i *Instance) Rebind(query string) string {
	if i.Driver() != DBPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for x := 0; x < len(query); x++ {
		if query[x] != '?' {
			b.WriteByte(query[x])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// Setup creates the platform schema when it does not already exist
func (i *Instance) Setup(ctx context.Context) error {
	if !i.IsConnected() {
		return ErrNilInstance
	}
	statements := postgresSchema
	if i.Driver() == DBSQLite3 {
		statements = sqliteSchema
	}
	for x := range statements {
		if _, err := i.SQL.ExecContext(ctx, statements[x]); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	log.Infoln(log.DatabaseMgr, "Database schema verified")
	return nil
}

// Tables lists the tables Setup manages, in creation order
func Tables() []string {
	return []string{"strategies", "backtests", "backtest_trades", "market_data"}
}
