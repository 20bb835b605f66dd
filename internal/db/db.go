package db

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"strings"

	"climate-api/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Open returns a pooled handle to the climate database. The SQLite file is opened
// read-only; a missing file is an error rather than a fresh empty database.
func Open(cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		drv, err := driverFor(cfg.Driver)
		if err != nil {
			return nil, err
		}
		db = sql.OpenDB(NewLoggingConnector(drv, dsn, logger))
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func driverFor(name string) (driver.Driver, error) {
	switch name {
	case config.DriverSQLite:
		return &sqlite3.SQLiteDriver{}, nil
	case config.DriverPostgres:
		return &pq.Driver{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", name)
	}
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.Driver != config.DriverSQLite {
		return "", fmt.Errorf("driver %q needs an explicit DSN", cfg.Driver)
	}
	if cfg.Path == "" {
		return "", fmt.Errorf("sqlite path is empty")
	}

	// - mode=ro: the database is never written by this service
	// - _query_only: reject writes even if the file is writable
	// - busy_timeout: tolerate an external loader holding a write lock
	params := []string{
		"mode=ro",
		"_query_only=true",
		"_busy_timeout=5000",
	}

	path := cfg.Path
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}

	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}

// Rebind rewrites '?' placeholders into the bind style of driverName:
// unchanged for sqlite3, $1, $2, ... for postgres.
func Rebind(driverName, query string) string {
	return sqlx.Rebind(sqlx.BindType(driverName), query)
}
