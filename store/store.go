// Package store is the sqlite record store of clients and transactions.
//
// Every query is parameterized. A Store owns its connection pool: it is
// opened by the command or server that needs it and closed by them.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrClientExists = errors.New("client already exists")
)

// Store is the record store.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open opens (and creates if needed) the sqlite database at path, and
// applies the schema.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", buildConnectionString(absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", absPath, err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", absPath, err)
	}

	s := &Store{db: db, path: absPath, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.log.Debug().Str("path", absPath).Msg("record store opened")
	return s, nil
}

// buildConnectionString creates SQLite connection string with the PRAGMAs
// every connection needs.
func buildConnectionString(path string) string {
	connStr := "file:" + path + "?_pragma=journal_mode(WAL)"
	connStr += "&_pragma=synchronous(NORMAL)"
	connStr += "&_pragma=foreign_keys(1)" // deleting a client deletes its transactions
	connStr += "&_pragma=busy_timeout(5000)"
	return connStr
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path
func (s *Store) Path() string { return s.path }

// withTx executes fn within a database transaction, committed if fn
// succeeds and rolled back otherwise.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a foreign key constraint failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
