// Package store persists clients, estimates, priced line items and schedule
// entries in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const timeLayout = "2006-01-02 15:04:05.000000"

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wraps the application database.
type Store struct {
	db   dbtx
	root *sql.DB
	now  func() time.Time
}

// New returns a Store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db, root: db, now: time.Now}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.root
}

// WithTx runs fn against a Store bound to one transaction, committing when fn
// returns nil. Calls do not nest.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.db.(*sql.Tx); ok {
		return fmt.Errorf("store: nested transaction")
	}

	tx, err := s.root.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Store{db: tx, root: s.root, now: s.now}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func newID() string {
	return uuid.NewString()
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

// ValidID reports whether id looks like an identifier this store issued.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
