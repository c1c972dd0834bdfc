package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/kv/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported drivers for Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations to db using the dialect's goose name.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect.GooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to migrate kv store: %w", err)
	}
	return nil
}

// Open returns a ready Store for driver and a function releasing it.
// SQL backends are migrated before use.
func Open(ctx context.Context, driver, dsn string) (Store, func() error, error) {
	var (
		sqlDriver string
		dialect   Dialect
	)

	switch driver {
	case DriverMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case DriverSQLite:
		sqlDriver, dialect = "sqlite", DialectSQLite
	case DriverPostgres:
		sqlDriver, dialect = "pgx", DialectPostgres
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}

	// Each connection to an in-memory SQLite database sees its own database.
	if driver == DriverSQLite && isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLStore(db, dialect), db.Close, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
