// Package sqlkv implements store.KVStore on a single kv_store table over
// database/sql. SQLite (github.com/mattn/go-sqlite3) and PostgreSQL
// (github.com/jackc/pgx/v5/stdlib) are supported; the schema is managed by
// embedded goose migrations applied on Open.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" driver
	"github.com/pressly/goose/v3"
)

// Dialect selects the SQL database behind a Store.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite3", nil
	case DialectPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("%w: unsupported dialect %q", store.ErrNotInitialized, d)
	}
}

func (d Dialect) gooseDialect() (goose.Dialect, error) {
	switch d {
	case DialectSQLite:
		return goose.DialectSQLite3, nil
	case DialectPostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: unsupported dialect %q", store.ErrNotInitialized, d)
	}
}

type queries struct {
	get string
	set string
}

var dialectQueries = map[Dialect]queries{
	DialectSQLite: {
		get: `SELECT value FROM kv_store WHERE key_name = ?`,
		set: `INSERT INTO kv_store (key_name, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (key_name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	DialectPostgres: {
		get: `SELECT value FROM kv_store WHERE key_name = $1`,
		set: `INSERT INTO kv_store (key_name, value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (key_name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	},
}

// Store is a store.KVStore backed by a SQL table.
type Store struct {
	db      store.DBTX
	sqlDB   *sql.DB
	dialect Dialect
	queries queries
	logger  *slog.Logger
	now     func() time.Time
}

var _ store.KVStore = (*Store)(nil)

// Open connects to the database described by dsn, applies migrations, and
// returns a ready Store. For SQLite dsn is a file path or URI.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "sqlkv"), slog.String("dialect", string(dialect)))

	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, store.NewStoreError(string(dialect), "open", "", "failed to open database connection", err)
	}

	configurePool(db, dialect)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, store.NewStoreError(string(dialect), "open", "", "failed to ping database", MapError(err))
	}

	if err := Migrate(ctx, db, dialect, logger); err != nil {
		_ = db.Close()
		return nil, store.NewStoreError(string(dialect), "migrate", "", "failed to migrate database", err)
	}

	logger.InfoContext(ctx, "Database connection established")
	return newStore(db, db, dialect, logger), nil
}

func configurePool(db *sql.DB, dialect Dialect) {
	if dialect == DialectSQLite {
		// one writer at a time avoids SQLITE_BUSY under concurrent Sets
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func newStore(db store.DBTX, sqlDB *sql.DB, dialect Dialect, logger *slog.Logger) *Store {
	return &Store{
		db:      db,
		sqlDB:   sqlDB,
		dialect: dialect,
		queries: dialectQueries[dialect],
		logger:  logger,
		now:     time.Now,
	}
}

// Get implements store.KVStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.NewStoreError(string(s.dialect), "get", key, "key cannot be empty", store.ErrInvalidKey)
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.NewStoreError(string(s.dialect), "get", key, "query failed", MapError(err))
	}
	return value, true, nil
}

// Set implements store.KVStore with a single upsert.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.NewStoreError(string(s.dialect), "set", key, "key cannot be empty", store.ErrInvalidKey)
	}

	if _, err := s.db.ExecContext(ctx, s.queries.set, key, value, s.now().UnixMilli()); err != nil {
		return store.NewStoreError(string(s.dialect), "set", key, "upsert failed", MapError(err))
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
