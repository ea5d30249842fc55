package database

import (
	"database/sql"
	"errors"
	"sync"
)

// Supported SQL drivers
const (
	DBSQLite3  = "sqlite3"
	DBPostgres = "postgres"
)

var (
	// ErrDatabaseSupportDisabled is returned when a repository is used
	// with persistence switched off
	ErrDatabaseSupportDisabled = errors.New("database support is disabled")
	// ErrNilInstance is returned when a repository is created without a
	// connected instance
	ErrNilInstance = errors.New("database instance is nil")

	errNilConfig         = errors.New("database config is nil")
	errUnsupportedDriver = errors.New("unsupported database driver")
)

// Config holds user configurable database connection settings
type Config struct {
	Enabled bool   `json:"enabled"`
	Driver  string `json:"driver"`
	DSN     string `json:"dsn"`
}

// Instance wraps an open SQL connection with its configured dialect
type Instance struct {
	m         sync.RWMutex
	SQL       *sql.DB
	config    *Config
	connected bool
}
