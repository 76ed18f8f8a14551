package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/exiletools/stashvault/pkg/types"
)

// Vault is the persistence core. It exclusively owns the physical
// connection and the lock; every repository holds a shared, non-owning
// reference to both and lives exactly as long as the Vault. External
// collaborators (UI, scrapers) hold a *Vault and nothing else.
type Vault struct {
	db     *DB
	logger *slog.Logger

	checkedItems *CheckedItemRepo
	sales        *SaleRepo
	prices       *PriceHistoryRepo
	plugins      *PluginStateRepo
	economy      *EconomyRepo
	advice       *AdviceRepo
	verdicts     *VerdictRepo
	alerts       *AlertRepo
	maintenance  *MaintenanceRepo
}

// Open creates or opens the store file under cfg.DataDir, enables foreign
// key enforcement, runs pending migrations, and constructs every
// repository. Open failures and migration failures are fatal: the caller
// must not operate on a store it cannot bring to a known version.
func Open(cfg types.Config, logger *slog.Logger) (*Vault, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(cfg.DataDir, types.StoreFileName)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	db := newDB(conn, logger)
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	v := &Vault{
		db:           db,
		logger:       logger,
		checkedItems: &CheckedItemRepo{db: db},
		sales:        &SaleRepo{db: db},
		prices:       &PriceHistoryRepo{db: db},
		plugins:      &PluginStateRepo{db: db},
		economy:      &EconomyRepo{db: db},
		advice:       &AdviceRepo{db: db, historyLimit: DefaultAdviceHistoryLimit},
		verdicts:     &VerdictRepo{db: db},
		alerts:       &AlertRepo{db: db},
		maintenance:  &MaintenanceRepo{db: db, logger: logger},
	}
	logger.Debug("store opened", "path", dbPath)
	return v, nil
}

// Close releases the physical connection. The Vault must not be used after
// Close.
func (v *Vault) Close() error {
	return v.db.Close()
}

// CheckedItems returns the checked-items repository.
func (v *Vault) CheckedItems() *CheckedItemRepo { return v.checkedItems }

// Sales returns the sales repository.
func (v *Vault) Sales() *SaleRepo { return v.sales }

// Prices returns the price history repository (snapshots, checks, quotes).
func (v *Vault) Prices() *PriceHistoryRepo { return v.prices }

// Plugins returns the plugin-state repository.
func (v *Vault) Plugins() *PluginStateRepo { return v.plugins }

// Economy returns the currency-rate and league-economy repository.
func (v *Vault) Economy() *EconomyRepo { return v.economy }

// Advice returns the upgrade-advice cache/history repository.
func (v *Vault) Advice() *AdviceRepo { return v.advice }

// Verdicts returns the verdict-statistics repository.
func (v *Vault) Verdicts() *VerdictRepo { return v.verdicts }

// Alerts returns the price-alert repository.
func (v *Vault) Alerts() *AlertRepo { return v.alerts }

// Maintenance returns the wipe/compact/export repository.
func (v *Vault) Maintenance() *MaintenanceRepo { return v.maintenance }
