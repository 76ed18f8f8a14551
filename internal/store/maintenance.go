package store

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// MaintenanceRepo exposes the bulk operations: wiping all data, compacting
// the store file, and row counting.
type MaintenanceRepo struct {
	db     *DB
	logger *slog.Logger
}

// WipeAllData deletes every row from every entity table in one
// transaction, preserving the schema and the version log, then compacts
// the file.
func (r *MaintenanceRepo) WipeAllData() error {
	err := r.db.WithTx(func(tx *sql.Tx) error {
		// Reverse dependency order so child tables empty before their
		// parents even without the cascade.
		for i := len(entityTables) - 1; i >= 0; i-- {
			if _, err := tx.Exec("DELETE FROM " + entityTables[i]); err != nil {
				return fmt.Errorf("wiping %s: %w", entityTables[i], err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Info("all data wiped")
	return r.Compact()
}

// Compact reclaims free pages in the store file.
func (r *MaintenanceRepo) Compact() error {
	// VACUUM cannot run inside a transaction.
	if _, _, err := r.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("compacting store: %w", err)
	}
	return nil
}

// Counts returns the row count of every entity table.
func (r *MaintenanceRepo) Counts() (map[string]int64, error) {
	counts := make(map[string]int64, len(entityTables))
	for _, table := range entityTables {
		var n int64
		err := r.db.QueryRow(
			"SELECT COUNT(*) FROM "+table,
			func(row *sql.Row) error { return row.Scan(&n) },
		)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
