package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// EconomyRepo persists currency exchange rates and league economy
// snapshots with their top-valued uniques.
type EconomyRepo struct {
	db *DB
}

// UpsertRate writes the chaos-equivalent rate for one (league, currency)
// pair, replacing any previous observation.
func (r *EconomyRepo) UpsertRate(rate types.CurrencyRate) error {
	if rate.League == "" {
		return types.ErrInvalidLeague
	}
	if rate.FetchedAt.IsZero() {
		rate.FetchedAt = time.Now()
	}
	_, _, err := r.db.Exec(
		`INSERT INTO currency_rates (league, currency, chaos_equivalent, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(league, currency) DO UPDATE SET
		    chaos_equivalent = excluded.chaos_equivalent, fetched_at = excluded.fetched_at`,
		rate.League, rate.Currency, rate.ChaosEquivalent,
		types.FormatTimestamp(rate.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting rate %s/%s: %w", rate.League, rate.Currency, err)
	}
	return nil
}

// Rate returns the chaos equivalent of a currency in a league, or ok=false
// when no rate has been recorded.
func (r *EconomyRepo) Rate(league, currency string) (float64, bool, error) {
	var rate float64
	err := r.db.QueryRow(
		`SELECT chaos_equivalent FROM currency_rates WHERE league = ? AND currency = ?`,
		func(row *sql.Row) error { return row.Scan(&rate) },
		league, currency)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("getting rate %s/%s: %w", league, currency, err)
	}
	return rate, true, nil
}

// Rates returns every recorded rate for a league.
func (r *EconomyRepo) Rates(league string) ([]types.CurrencyRate, error) {
	var rates []types.CurrencyRate
	err := r.db.Query(
		`SELECT league, currency, chaos_equivalent, fetched_at
		 FROM currency_rates WHERE league = ? ORDER BY currency`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var rate types.CurrencyRate
				var fetchedAt string
				if err := rows.Scan(&rate.League, &rate.Currency,
					&rate.ChaosEquivalent, &fetchedAt); err != nil {
					return fmt.Errorf("scanning rate: %w", err)
				}
				rate.FetchedAt, _ = types.ParseTimestamp(fetchedAt)
				rates = append(rates, rate)
			}
			return nil
		}, league)
	if err != nil {
		return nil, fmt.Errorf("listing rates for %s: %w", league, err)
	}
	return rates, nil
}

// AddSnapshot records a league economy snapshot together with its top
// uniques in one transaction and returns the snapshot id.
func (r *EconomyRepo) AddSnapshot(snapshot types.EconomySnapshot, topUniques []types.EconomyTopUnique) (int64, error) {
	if snapshot.League == "" {
		return 0, types.ErrInvalidLeague
	}
	if snapshot.RecordedAt.IsZero() {
		snapshot.RecordedAt = time.Now()
	}

	var snapshotID int64
	err := r.db.WithTx(func(tx *sql.Tx) error {
		_, id, err := execOn(tx,
			`INSERT INTO league_economy_snapshots (league, divine_chaos, recorded_at)
			 VALUES (?, ?, ?)`,
			snapshot.League, snapshot.DivineChaos,
			types.FormatTimestamp(snapshot.RecordedAt),
		)
		if err != nil {
			return err
		}
		snapshotID = id

		for _, u := range topUniques {
			if _, err := tx.Exec(
				`INSERT INTO league_economy_top_uniques (snapshot_id, name, chaos_value, rank)
				 VALUES (?, ?, ?, ?)`,
				snapshotID, u.Name, u.ChaosValue, u.Rank,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("adding economy snapshot for %s: %w", snapshot.League, err)
	}
	return snapshotID, nil
}

// LatestSnapshot returns the most recent economy snapshot of a league and
// its top uniques, or ok=false when the league has no snapshots.
func (r *EconomyRepo) LatestSnapshot(league string) (types.EconomySnapshot, []types.EconomyTopUnique, bool, error) {
	var snapshot types.EconomySnapshot
	var recordedAt string
	err := r.db.QueryRow(
		`SELECT id, league, divine_chaos, recorded_at FROM league_economy_snapshots
		 WHERE league = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		func(row *sql.Row) error {
			return row.Scan(&snapshot.ID, &snapshot.League, &snapshot.DivineChaos, &recordedAt)
		}, league)
	if err == sql.ErrNoRows {
		return types.EconomySnapshot{}, nil, false, nil
	}
	if err != nil {
		return types.EconomySnapshot{}, nil, false, fmt.Errorf("getting latest snapshot for %s: %w", league, err)
	}
	snapshot.RecordedAt, _ = types.ParseTimestamp(recordedAt)

	var uniques []types.EconomyTopUnique
	err = r.db.Query(
		`SELECT id, snapshot_id, name, chaos_value, rank
		 FROM league_economy_top_uniques WHERE snapshot_id = ? ORDER BY rank ASC`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var u types.EconomyTopUnique
				if err := rows.Scan(&u.ID, &u.SnapshotID, &u.Name, &u.ChaosValue, &u.Rank); err != nil {
					return fmt.Errorf("scanning top unique: %w", err)
				}
				uniques = append(uniques, u)
			}
			return nil
		}, snapshot.ID)
	if err != nil {
		return types.EconomySnapshot{}, nil, false, fmt.Errorf("listing top uniques: %w", err)
	}
	return snapshot, uniques, true, nil
}

// DeleteSnapshot removes a snapshot and, through the cascade, its top
// uniques. Returns false when the snapshot does not exist.
func (r *EconomyRepo) DeleteSnapshot(id int64) (bool, error) {
	affected, _, err := r.db.Exec(`DELETE FROM league_economy_snapshots WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting economy snapshot %d: %w", id, err)
	}
	return affected > 0, nil
}
