package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// CheckedItemRepo persists the immutable records of past price lookups.
type CheckedItemRepo struct {
	db *DB
}

// Add inserts a checked item and returns its row id. A zero CheckedAt is
// stamped with the current time.
func (r *CheckedItemRepo) Add(item types.CheckedItem) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if item.Game == "" {
		item.Game = types.GamePoE1
	}
	if item.Currency == "" {
		item.Currency = "chaos"
	}
	if item.CheckedAt.IsZero() {
		item.CheckedAt = time.Now()
	}

	_, id, err := r.db.Exec(
		`INSERT INTO checked_items (game, league, name, base_type, value, currency, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Game, item.League, item.Name, item.BaseType,
		item.Value, item.Currency, types.FormatTimestamp(item.CheckedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("adding checked item: %w", err)
	}
	return id, nil
}

// Recent returns the most recent checked items, newest first. Game, league
// and name filters are optional; the name filter matches substrings
// case-insensitively. limit <= 0 means no limit.
func (r *CheckedItemRepo) Recent(limit int, game, league, nameFilter string) ([]types.CheckedItem, error) {
	query := `SELECT id, game, league, name, base_type, value, currency, checked_at
		FROM checked_items`
	var conditions []string
	var args []any

	if game != "" {
		conditions = append(conditions, "game = ?")
		args = append(args, game)
	}
	if league != "" {
		conditions = append(conditions, "league = ?")
		args = append(args, league)
	}
	if nameFilter != "" {
		conditions = append(conditions, "name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+nameFilter+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY checked_at DESC, id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var items []types.CheckedItem
	err := r.db.Query(query, func(rows *sql.Rows) error {
		for rows.Next() {
			item, err := scanCheckedItem(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("listing checked items: %w", err)
	}
	return items, nil
}

func scanCheckedItem(rows *sql.Rows) (types.CheckedItem, error) {
	var item types.CheckedItem
	var checkedAt string
	if err := rows.Scan(&item.ID, &item.Game, &item.League, &item.Name,
		&item.BaseType, &item.Value, &item.Currency, &checkedAt); err != nil {
		return types.CheckedItem{}, fmt.Errorf("scanning checked item: %w", err)
	}
	item.CheckedAt, _ = types.ParseTimestamp(checkedAt)
	return item, nil
}
