package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/dbx"
)

// Dialect holds the statements that differ between SQL backends.
type Dialect struct {
	Name         string
	GooseDialect string

	get          string
	getForUpdate string
	upsert       string
	remove       string
	keys         string
}

var (
	DialectSQLite = Dialect{
		Name:         "sqlite",
		GooseDialect: "sqlite3",
		get:          `SELECT value FROM kv WHERE key = ?`,
		getForUpdate: `SELECT value FROM kv WHERE key = ?`,
		upsert: `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		remove: `DELETE FROM kv WHERE key = ?`,
		keys:   `SELECT key FROM kv ORDER BY key`,
	}

	DialectPostgres = Dialect{
		Name:         "postgres",
		GooseDialect: "postgres",
		get:          `SELECT value FROM kv WHERE key = $1`,
		getForUpdate: `SELECT value FROM kv WHERE key = $1 FOR UPDATE`,
		upsert: `INSERT INTO kv (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		remove: `DELETE FROM kv WHERE key = $1`,
		keys:   `SELECT key FROM kv ORDER BY key`,
	}
)

// SQLStore keeps keys in the kv table of a SQLite or PostgreSQL database.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, s.db, s.dialect.get, key)
}

func (s *SQLStore) get(ctx context.Context, db dbx.DBTX, query, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.set(ctx, s.db, key, value)
}

func (s *SQLStore) set(ctx context.Context, db dbx.DBTX, key, value string) error {
	if _, err := db.ExecContext(ctx, s.dialect.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.remove, key); err != nil {
		return fmt.Errorf("failed to remove kv[%s]: %w", key, err)
	}
	return nil
}

// Update reads and rewrites key inside one transaction. On PostgreSQL the
// row is locked with FOR UPDATE.
func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		value, ok, err := s.get(ctx, tx, s.dialect.getForUpdate, key)
		if err != nil {
			return err
		}
		next, err := fn(value, ok)
		if err != nil {
			return err
		}
		return s.set(ctx, tx, key, next)
	})
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	return err
}

// Keys returns the sorted keys starting with prefix. Filtering happens in Go
// because LIKE treats the '_' of "saved_" as a wildcard.
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return keys, nil
}
