package sqlkv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// PostgreSQL error codes
const (
	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidByteSequenceCode is raised for text containing a NUL byte
	invalidByteSequenceCode = "22021"

	// undefinedTableCode is raised when kv_store has not been migrated
	undefinedTableCode = "42P01"

	// tooManyConnectionsCode is raised when the server refuses new sessions
	tooManyConnectionsCode = "53300"

	// adminShutdownCode is raised when the server is shutting down
	adminShutdownCode = "57P01"

	// connectionExceptionClass prefixes every connection failure code
	connectionExceptionClass = "08"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
// Context cancellation is returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	// Handle PostgreSQL-specific errors
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == undefinedTableCode:
			return fmt.Errorf("%w: %v", store.ErrNotInitialized, err)
		case pgErr.Code == notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidValue, pgErr.ColumnName, err)
		case pgErr.Code == invalidByteSequenceCode:
			return fmt.Errorf("%w: %v", store.ErrInvalidValue, err)
		case pgErr.Code == tooManyConnectionsCode,
			pgErr.Code == adminShutdownCode,
			strings.HasPrefix(pgErr.Code, connectionExceptionClass):
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
	}

	// Handle SQLite-specific errors
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrReadonly, sqlite3.ErrFull:
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %v", store.ErrInvalidValue, err)
		}
		if strings.Contains(err.Error(), "no such table") {
			return fmt.Errorf("%w: %v", store.ErrNotInitialized, err)
		}
	}

	// Return the original error for errors that don't have specific mappings
	return err
}
