package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/exiletools/stashvault/pkg/pricestats"
	"github.com/exiletools/stashvault/pkg/types"
)

// PriceHistoryRepo persists point-in-time price snapshots and the
// check/quote pairs produced by the scrapers. One PriceCheck groups the raw
// quotes of one lookup; quotes cascade-delete with their check.
type PriceHistoryRepo struct {
	db *DB
}

// AddSnapshot records one value observation for an item.
func (r *PriceHistoryRepo) AddSnapshot(s types.PriceSnapshot) (int64, error) {
	if s.ItemName == "" {
		return 0, types.ErrInvalidName
	}
	if s.Game == "" {
		s.Game = types.GamePoE1
	}
	if s.Currency == "" {
		s.Currency = "chaos"
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now()
	}

	_, id, err := r.db.Exec(
		`INSERT INTO price_snapshots (game, league, item_name, value, currency, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.Game, s.League, s.ItemName, s.Value, s.Currency,
		types.FormatTimestamp(s.RecordedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("adding price snapshot: %w", err)
	}
	return id, nil
}

// History returns the snapshots for an item since the given time, oldest
// first. A zero since returns the full history.
func (r *PriceHistoryRepo) History(game, league, itemName string, since time.Time) ([]types.PriceSnapshot, error) {
	query := `SELECT id, game, league, item_name, value, currency, recorded_at
		FROM price_snapshots
		WHERE game = ? AND league = ? AND item_name = ?`
	args := []any{game, league, itemName}
	if !since.IsZero() {
		query += " AND recorded_at >= ?"
		args = append(args, types.FormatTimestamp(since))
	}
	query += " ORDER BY recorded_at ASC, id ASC"

	var snapshots []types.PriceSnapshot
	err := r.db.Query(query, func(rows *sql.Rows) error {
		for rows.Next() {
			var s types.PriceSnapshot
			var recordedAt string
			if err := rows.Scan(&s.ID, &s.Game, &s.League, &s.ItemName,
				&s.Value, &s.Currency, &recordedAt); err != nil {
				return fmt.Errorf("scanning price snapshot: %w", err)
			}
			s.RecordedAt, _ = types.ParseTimestamp(recordedAt)
			snapshots = append(snapshots, s)
		}
		return nil
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("listing price history: %w", err)
	}
	return snapshots, nil
}

// CreateCheck opens a new price check and returns its row id. An empty
// sessionID gets a generated UUID v7 so a scraper run can be correlated
// across its checks.
func (r *PriceHistoryRepo) CreateCheck(game, league, itemName, sessionID string) (int64, error) {
	if itemName == "" {
		return 0, types.ErrInvalidName
	}
	if league == "" {
		return 0, types.ErrInvalidLeague
	}
	if game == "" {
		game = types.GamePoE1
	}
	if sessionID == "" {
		sessionID = uuid.Must(uuid.NewV7()).String()
	}

	_, id, err := r.db.Exec(
		`INSERT INTO price_checks (game, league, item_name, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		game, league, itemName, sessionID, types.FormatTimestamp(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("creating price check: %w", err)
	}
	return id, nil
}

// AddQuotes appends raw quotes to a check in one transaction: either every
// quote lands or none do.
func (r *PriceHistoryRepo) AddQuotes(checkID int64, quotes []types.PriceQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	err := r.db.WithTx(func(tx *sql.Tx) error {
		for _, q := range quotes {
			fetchedAt := q.FetchedAt
			if fetchedAt.IsZero() {
				fetchedAt = time.Now()
			}
			currency := q.Currency
			if currency == "" {
				currency = "chaos"
			}
			if _, err := tx.Exec(
				`INSERT INTO price_quotes (check_id, source, price, currency,
				    lister_account, indexed_age_hours, fetched_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				checkID, q.Source, q.Price, currency,
				q.ListerAccount, q.IndexedAgeHours, types.FormatTimestamp(fetchedAt),
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("adding quotes to check %d: %w", checkID, err)
	}
	return nil
}

// Quotes returns the quotes of a check, in insertion order.
func (r *PriceHistoryRepo) Quotes(checkID int64) ([]types.PriceQuote, error) {
	var quotes []types.PriceQuote
	err := r.db.Query(
		`SELECT id, check_id, source, price, currency, lister_account, indexed_age_hours, fetched_at
		 FROM price_quotes WHERE check_id = ? ORDER BY id ASC`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var q types.PriceQuote
				var fetchedAt string
				if err := rows.Scan(&q.ID, &q.CheckID, &q.Source, &q.Price,
					&q.Currency, &q.ListerAccount, &q.IndexedAgeHours, &fetchedAt); err != nil {
					return fmt.Errorf("scanning quote: %w", err)
				}
				q.FetchedAt, _ = types.ParseTimestamp(fetchedAt)
				quotes = append(quotes, q)
			}
			return nil
		}, checkID)
	if err != nil {
		return nil, fmt.Errorf("listing quotes for check %d: %w", checkID, err)
	}
	return quotes, nil
}

// GetCheck returns a price check by id, or ok=false when absent.
func (r *PriceHistoryRepo) GetCheck(id int64) (types.PriceCheck, bool, error) {
	var check types.PriceCheck
	var createdAt string
	err := r.db.QueryRow(
		`SELECT id, game, league, item_name, session_id, created_at
		 FROM price_checks WHERE id = ?`,
		func(row *sql.Row) error {
			return row.Scan(&check.ID, &check.Game, &check.League,
				&check.ItemName, &check.SessionID, &createdAt)
		}, id)
	if err == sql.ErrNoRows {
		return types.PriceCheck{}, false, nil
	}
	if err != nil {
		return types.PriceCheck{}, false, fmt.Errorf("getting price check %d: %w", id, err)
	}
	check.CreatedAt, _ = types.ParseTimestamp(createdAt)
	return check, true, nil
}

// DeleteCheck removes a check and, through the foreign key cascade, all of
// its quotes. Returns false when the check does not exist.
func (r *PriceHistoryRepo) DeleteCheck(id int64) (bool, error) {
	affected, _, err := r.db.Exec(`DELETE FROM price_checks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting price check %d: %w", id, err)
	}
	return affected > 0, nil
}

// CheckStatistics computes the price aggregates over a check's quotes.
// ok=false means the check has no quotes; that is different from
// statistics whose value is zero.
func (r *PriceHistoryRepo) CheckStatistics(checkID int64) (pricestats.Stats, bool, error) {
	var prices []float64
	err := r.db.Query(
		`SELECT price FROM price_quotes WHERE check_id = ? ORDER BY id ASC`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var p float64
				if err := rows.Scan(&p); err != nil {
					return fmt.Errorf("scanning quote price: %w", err)
				}
				prices = append(prices, p)
			}
			return nil
		}, checkID)
	if err != nil {
		return pricestats.Stats{}, false, fmt.Errorf("loading quote prices for check %d: %w", checkID, err)
	}

	stats, ok := pricestats.Compute(prices)
	return stats, ok, nil
}
