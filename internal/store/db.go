// Package store implements the StashVault persistence core: a single-file
// SQLite store shared by the UI thread and background workers of one
// process. All access is serialized through one connection guarded by one
// lock; repositories are built exclusively on the execution primitive in
// this file.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"
)

// DB is the execution primitive guarding the one physical connection.
// Every statement, fetch, and transaction scope holds mu for its entire
// duration. The store only allows one writer at a time regardless, so the
// coarse lock trades no real throughput for a much simpler model.
type DB struct {
	mu     sync.Mutex
	conn   *sql.DB
	logger *slog.Logger
}

func newDB(conn *sql.DB, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{conn: conn, logger: logger}
}

// Exec runs one statement under the connection lock and returns the number
// of affected rows and the last inserted row id.
func (d *DB) Exec(query string, args ...any) (affected, lastID int64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return execOn(d.conn, query, args...)
}

// QueryRow runs a single-row query and invokes scan on the result while the
// lock is held. sql.ErrNoRows passes through unchanged so callers can map
// it to an explicit absent result.
func (d *DB) QueryRow(query string, scan func(*sql.Row) error, args ...any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return scan(d.conn.QueryRow(query, args...))
}

// Query runs a multi-row query and invokes scan on the rows while the lock
// is held. The rows are closed when scan returns.
func (d *DB) Query(query string, scan func(*sql.Rows) error, args ...any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		return err
	}
	return rows.Err()
}

// WithTx runs fn inside a transaction while holding the connection lock for
// the whole scope. The transaction commits when fn returns nil and rolls
// back otherwise, returning fn's original error. Repository helpers called
// inside the scope receive the *sql.Tx rather than re-acquiring the lock.
func (d *DB) WithTx(fn func(*sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.logger.Error("transaction rollback failed",
				"error", err, "rollback_error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases the physical connection.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// execer abstracts *sql.DB and *sql.Tx so repository write helpers can run
// both standalone and inside a transaction scope.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func execOn(e execer, query string, args ...any) (affected, lastID int64, err error) {
	res, err := e.Exec(query, args...)
	if err != nil {
		return 0, 0, err
	}
	// modernc sqlite supports both; errors here are not actionable.
	affected, _ = res.RowsAffected()
	lastID, _ = res.LastInsertId()
	return affected, lastID, nil
}
