package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// PluginStateRepo persists per-plugin enabled flags and opaque
// configuration blobs. One row per plugin id, upsert semantics.
type PluginStateRepo struct {
	db *DB
}

// SetEnabled upserts the enabled flag for a plugin. Re-applying the same
// flag leaves exactly one row.
func (r *PluginStateRepo) SetEnabled(pluginID string, enabled bool) error {
	if pluginID == "" {
		return types.ErrInvalidPlugin
	}
	_, _, err := r.db.Exec(
		`INSERT INTO plugin_state (plugin_id, enabled, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(plugin_id) DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at`,
		pluginID, boolToInt(enabled), types.FormatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("setting plugin %s enabled: %w", pluginID, err)
	}
	return nil
}

// SetConfig upserts the configuration blob for a plugin. The blob is
// opaque to the store.
func (r *PluginStateRepo) SetConfig(pluginID, config string) error {
	if pluginID == "" {
		return types.ErrInvalidPlugin
	}
	_, _, err := r.db.Exec(
		`INSERT INTO plugin_state (plugin_id, config, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(plugin_id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		pluginID, config, types.FormatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("setting plugin %s config: %w", pluginID, err)
	}
	return nil
}

// Get returns the state of a plugin, or ok=false when the plugin has never
// been written.
func (r *PluginStateRepo) Get(pluginID string) (types.PluginState, bool, error) {
	if pluginID == "" {
		return types.PluginState{}, false, types.ErrInvalidPlugin
	}
	var state types.PluginState
	var enabled int
	var updatedAt string
	err := r.db.QueryRow(
		`SELECT plugin_id, enabled, config, updated_at FROM plugin_state WHERE plugin_id = ?`,
		func(row *sql.Row) error {
			return row.Scan(&state.PluginID, &enabled, &state.Config, &updatedAt)
		}, pluginID)
	if err == sql.ErrNoRows {
		return types.PluginState{}, false, nil
	}
	if err != nil {
		return types.PluginState{}, false, fmt.Errorf("getting plugin %s: %w", pluginID, err)
	}
	state.Enabled = enabled != 0
	state.UpdatedAt, _ = types.ParseTimestamp(updatedAt)
	return state, true, nil
}

// All returns the state of every known plugin.
func (r *PluginStateRepo) All() ([]types.PluginState, error) {
	var states []types.PluginState
	err := r.db.Query(
		`SELECT plugin_id, enabled, config, updated_at FROM plugin_state ORDER BY plugin_id`,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var state types.PluginState
				var enabled int
				var updatedAt string
				if err := rows.Scan(&state.PluginID, &enabled, &state.Config, &updatedAt); err != nil {
					return fmt.Errorf("scanning plugin state: %w", err)
				}
				state.Enabled = enabled != 0
				state.UpdatedAt, _ = types.ParseTimestamp(updatedAt)
				states = append(states, state)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("listing plugin state: %w", err)
	}
	return states, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
