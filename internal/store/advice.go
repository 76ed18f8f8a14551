package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// DefaultAdviceHistoryLimit is the number of history entries retained per
// (profile, slot) pair.
const DefaultAdviceHistoryLimit = 20

// AdviceRepo persists the upgrade-advice cache and its bounded history.
type AdviceRepo struct {
	db           *DB
	historyLimit int
}

// PutAdvice upserts the cached advice for a (profile, slot) pair.
func (r *AdviceRepo) PutAdvice(advice types.UpgradeAdvice) error {
	if advice.Profile == "" || advice.Slot == "" {
		return types.ErrInvalidName
	}
	if advice.CreatedAt.IsZero() {
		advice.CreatedAt = time.Now()
	}
	_, _, err := r.db.Exec(
		`INSERT INTO upgrade_advice_cache (profile, slot, advice, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(profile, slot) DO UPDATE SET
		    advice = excluded.advice, created_at = excluded.created_at`,
		advice.Profile, advice.Slot, advice.Advice,
		types.FormatTimestamp(advice.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("caching advice for %s/%s: %w", advice.Profile, advice.Slot, err)
	}
	return nil
}

// Advice returns the cached advice for a (profile, slot) pair, provided it
// is younger than maxAge. maxAge <= 0 accepts any age. A stale or missing
// entry is ok=false, never an error.
func (r *AdviceRepo) Advice(profile, slot string, maxAge time.Duration) (types.UpgradeAdvice, bool, error) {
	var advice types.UpgradeAdvice
	var createdAt string
	err := r.db.QueryRow(
		`SELECT profile, slot, advice, created_at FROM upgrade_advice_cache
		 WHERE profile = ? AND slot = ?`,
		func(row *sql.Row) error {
			return row.Scan(&advice.Profile, &advice.Slot, &advice.Advice, &createdAt)
		}, profile, slot)
	if err == sql.ErrNoRows {
		return types.UpgradeAdvice{}, false, nil
	}
	if err != nil {
		return types.UpgradeAdvice{}, false, fmt.Errorf("getting advice for %s/%s: %w", profile, slot, err)
	}

	created, ok := types.ParseTimestamp(createdAt)
	if !ok {
		// A row with an unreadable timestamp is useless as a cache
		// entry; report it absent.
		r.db.logger.Warn("advice cache entry has malformed timestamp",
			"profile", profile, "slot", slot, "created_at", createdAt)
		return types.UpgradeAdvice{}, false, nil
	}
	advice.CreatedAt = created

	if maxAge > 0 && time.Since(created) > maxAge {
		return types.UpgradeAdvice{}, false, nil
	}
	return advice, true, nil
}

// AddHistoryEntry appends an advice history entry and deletes the overflow
// beyond the retention limit for that (profile, slot) pair, both in one
// transaction.
func (r *AdviceRepo) AddHistoryEntry(entry types.UpgradeAdviceEntry) (int64, error) {
	if entry.Profile == "" || entry.Slot == "" {
		return 0, types.ErrInvalidName
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var entryID int64
	err := r.db.WithTx(func(tx *sql.Tx) error {
		_, id, err := execOn(tx,
			`INSERT INTO upgrade_advice_history (profile, slot, advice, created_at)
			 VALUES (?, ?, ?, ?)`,
			entry.Profile, entry.Slot, entry.Advice,
			types.FormatTimestamp(entry.CreatedAt),
		)
		if err != nil {
			return err
		}
		entryID = id

		_, err = tx.Exec(
			`DELETE FROM upgrade_advice_history
			 WHERE profile = ? AND slot = ? AND id NOT IN (
			    SELECT id FROM upgrade_advice_history
			    WHERE profile = ? AND slot = ?
			    ORDER BY id DESC LIMIT ?)`,
			entry.Profile, entry.Slot, entry.Profile, entry.Slot, r.historyLimit,
		)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("recording advice history for %s/%s: %w", entry.Profile, entry.Slot, err)
	}
	return entryID, nil
}

// History returns the retained entries for a (profile, slot) pair, newest
// first.
func (r *AdviceRepo) History(profile, slot string) ([]types.UpgradeAdviceEntry, error) {
	var entries []types.UpgradeAdviceEntry
	err := r.db.Query(
		`SELECT id, profile, slot, advice, created_at FROM upgrade_advice_history
		 WHERE profile = ? AND slot = ? ORDER BY id DESC`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var e types.UpgradeAdviceEntry
				var createdAt string
				if err := rows.Scan(&e.ID, &e.Profile, &e.Slot, &e.Advice, &createdAt); err != nil {
					return fmt.Errorf("scanning advice entry: %w", err)
				}
				e.CreatedAt, _ = types.ParseTimestamp(createdAt)
				entries = append(entries, e)
			}
			return nil
		}, profile, slot)
	if err != nil {
		return nil, fmt.Errorf("listing advice history for %s/%s: %w", profile, slot, err)
	}
	return entries, nil
}
