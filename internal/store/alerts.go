package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// AlertRepo persists price alerts.
type AlertRepo struct {
	db *DB
}

// Add inserts an alert and returns its row id.
func (r *AlertRepo) Add(alert types.PriceAlert) (int64, error) {
	if err := alert.Validate(); err != nil {
		return 0, err
	}
	if alert.Game == "" {
		alert.Game = types.GamePoE1
	}
	if alert.Direction == "" {
		alert.Direction = types.AlertBelow
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	_, id, err := r.db.Exec(
		`INSERT INTO price_alerts (game, league, item_name, threshold_chaos,
		    direction, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alert.Game, alert.League, alert.ItemName, alert.ThresholdChaos,
		alert.Direction, boolToInt(alert.Enabled),
		types.FormatTimestamp(alert.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("adding price alert: %w", err)
	}
	return id, nil
}

// List returns alerts, newest first. onlyEnabled restricts the result to
// alerts that are currently switched on.
func (r *AlertRepo) List(onlyEnabled bool) ([]types.PriceAlert, error) {
	query := `SELECT id, game, league, item_name, threshold_chaos, direction,
		enabled, created_at, triggered_at FROM price_alerts`
	if onlyEnabled {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY id DESC"

	var alerts []types.PriceAlert
	err := r.db.Query(query, func(rows *sql.Rows) error {
		for rows.Next() {
			var a types.PriceAlert
			var enabled int
			var createdAt string
			var triggeredAt sql.NullString
			if err := rows.Scan(&a.ID, &a.Game, &a.League, &a.ItemName,
				&a.ThresholdChaos, &a.Direction, &enabled, &createdAt, &triggeredAt); err != nil {
				return fmt.Errorf("scanning alert: %w", err)
			}
			a.Enabled = enabled != 0
			a.CreatedAt, _ = types.ParseTimestamp(createdAt)
			if triggeredAt.Valid {
				a.TriggeredAt, _ = types.ParseTimestamp(triggeredAt.String)
			}
			alerts = append(alerts, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	return alerts, nil
}

// SetEnabled switches an alert on or off. Returns false when the alert
// does not exist.
func (r *AlertRepo) SetEnabled(id int64, enabled bool) (bool, error) {
	affected, _, err := r.db.Exec(
		`UPDATE price_alerts SET enabled = ? WHERE id = ?`, boolToInt(enabled), id,
	)
	if err != nil {
		return false, fmt.Errorf("toggling alert %d: %w", id, err)
	}
	return affected > 0, nil
}

// MarkTriggered stamps the time an alert first fired. Returns false when
// the alert does not exist.
func (r *AlertRepo) MarkTriggered(id int64, at time.Time) (bool, error) {
	if at.IsZero() {
		at = time.Now()
	}
	affected, _, err := r.db.Exec(
		`UPDATE price_alerts SET triggered_at = ? WHERE id = ?`,
		types.FormatTimestamp(at), id,
	)
	if err != nil {
		return false, fmt.Errorf("marking alert %d triggered: %w", id, err)
	}
	return affected > 0, nil
}

// Delete removes an alert. Returns false when the alert does not exist.
func (r *AlertRepo) Delete(id int64) (bool, error) {
	affected, _, err := r.db.Exec(`DELETE FROM price_alerts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting alert %d: %w", id, err)
	}
	return affected > 0, nil
}
