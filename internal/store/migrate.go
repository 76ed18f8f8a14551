package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// currentSchemaVersion is the schema version this build writes and expects.
const currentSchemaVersion = 7

// migrationStep brings a store from version-1 to version. Steps must be
// idempotent against re-application: a prior partial run, or a store
// created by a different historical path, must not abort startup.
type migrationStep struct {
	version int
	apply   func(tx *sql.Tx) error
}

// migrationSteps is the ordered version-to-version chain. Version 1 is the
// original base schema and is only ever created by bootstrap.
var migrationSteps = []migrationStep{
	{2, func(tx *sql.Tx) error {
		return execAll(tx, createPriceChecks, createPriceQuotes, idxQuotesCheck)
	}},
	{3, func(tx *sql.Tx) error {
		return execAll(tx, createPluginState)
	}},
	{4, func(tx *sql.Tx) error {
		if err := execAll(tx, createCurrencyRates); err != nil {
			return err
		}
		return addColumn(tx, "checked_items", "base_type")
	}},
	{5, func(tx *sql.Tx) error {
		if err := execAll(tx, createEconomySnapshots, createEconomyTopUniques,
			idxEconomyLeague, idxTopUniquesSnapshot); err != nil {
			return err
		}
		return addColumn(tx, "sales", "source")
	}},
	{6, func(tx *sql.Tx) error {
		return execAll(tx, createAdviceCache, createAdviceHistory,
			createVerdictStats, idxAdviceHistoryKey)
	}},
	{7, func(tx *sql.Tx) error {
		if err := execAll(tx, createPriceAlerts, idxAlertsEnabled); err != nil {
			return err
		}
		if err := addColumn(tx, "price_quotes", "lister_account"); err != nil {
			return err
		}
		return addColumn(tx, "price_quotes", "indexed_age_hours")
	}},
}

// allowedColumns is the fixed allow-list of columns that migration steps
// may add. ALTER TABLE ... ADD COLUMN cannot be parameterized, so names are
// validated here before any SQL text is assembled.
var allowedColumns = map[string]map[string]string{
	"checked_items": {
		"base_type": "TEXT NOT NULL DEFAULT ''",
	},
	"sales": {
		"source": "TEXT NOT NULL DEFAULT ''",
	},
	"price_quotes": {
		"lister_account":    "TEXT NOT NULL DEFAULT ''",
		"indexed_age_hours": "REAL NOT NULL DEFAULT 0",
	},
}

// migrate brings the store to currentSchemaVersion. A fresh store (version
// 0) is bootstrapped in one transaction; an old store walks the step chain,
// each step in its own transaction together with its version-log append.
// Any failure rolls the step back and is fatal to startup.
func (d *DB) migrate() error {
	version, err := d.schemaVersion()
	if err != nil {
		return fmt.Errorf("detecting schema version: %w", err)
	}

	switch {
	case version == currentSchemaVersion:
		d.logger.Debug("schema is up to date", "version", version)
		return nil
	case version > currentSchemaVersion:
		return fmt.Errorf("store is at schema version %d, newer than supported version %d", version, currentSchemaVersion)
	case version == 0:
		d.logger.Info("bootstrapping schema", "version", currentSchemaVersion)
		return d.WithTx(bootstrap)
	}

	d.logger.Info("migrating schema", "from", version, "to", currentSchemaVersion)
	for _, step := range migrationSteps {
		if step.version <= version {
			continue
		}
		step := step
		err := d.WithTx(func(tx *sql.Tx) error {
			if err := step.apply(tx); err != nil {
				return err
			}
			return recordVersion(tx, step.version)
		})
		if err != nil {
			return fmt.Errorf("migration step %d: %w", step.version, err)
		}
		d.logger.Info("applied migration step", "version", step.version)
	}
	return nil
}

// bootstrap creates the full current schema from scratch and records the
// version. The resulting schema is identical to a version-1 store that
// walked every migration step.
func bootstrap(tx *sql.Tx) error {
	ddl := []string{
		createSchemaVersion,
		createCheckedItems,
		createSales,
		createPriceSnapshots,
		createPriceChecks,
		createPriceQuotes,
		createPluginState,
		createCurrencyRates,
		createEconomySnapshots,
		createEconomyTopUniques,
		createAdviceCache,
		createAdviceHistory,
		createVerdictStats,
		createPriceAlerts,
		idxCheckedItemsChecked,
		idxCheckedItemsLeague,
		idxSalesStatus,
		idxSalesListed,
		idxSnapshotsItem,
		idxQuotesCheck,
		idxEconomyLeague,
		idxTopUniquesSnapshot,
		idxAdviceHistoryKey,
		idxAlertsEnabled,
	}
	if err := execAll(tx, ddl...); err != nil {
		return err
	}
	return recordVersion(tx, currentSchemaVersion)
}

// schemaVersion reads the highest recorded version. A store without a
// version log is version 0; that is a fresh store, not an error.
func (d *DB) schemaVersion() (int, error) {
	var name string
	err := d.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`,
		func(row *sql.Row) error { return row.Scan(&name) },
	)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = d.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`,
		func(row *sql.Row) error { return row.Scan(&version) },
	)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// recordVersion appends to the version log. The log is append-only; the
// store's current version is the maximum recorded value.
func recordVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec(
		`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		version, types.FormatTimestamp(time.Now()),
	)
	return err
}

// addColumn adds an allow-listed column to a table. A duplicate column is
// skipped: the step was already applied by a prior run. Every other error
// aborts the migration; a broad catch here would mask genuine failures.
func addColumn(tx *sql.Tx, table, column string) error {
	colType, ok := allowedColumns[table][column]
	if !ok {
		return fmt.Errorf("%w: %s.%s", types.ErrColumnNotAllowed, table, column)
	}

	_, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, colType))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate column name") {
			return nil
		}
		return fmt.Errorf("adding column %s.%s: %w", table, column, err)
	}
	return nil
}

func execAll(tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
