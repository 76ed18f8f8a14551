package store

import (
	"database/sql"
	"testing"

	"github.com/exiletools/stashvault/pkg/types"
)

func TestPluginState_UpsertKeepsOneRow(t *testing.T) {
	v := newTestVault(t)

	for i := 0; i < 3; i++ {
		if err := v.Plugins().SetEnabled("loot-filter", i%2 == 0); err != nil {
			t.Fatalf("SetEnabled failed: %v", err)
		}
	}

	var rows int
	err := v.db.QueryRow(
		"SELECT COUNT(*) FROM plugin_state",
		func(row *sql.Row) error { return row.Scan(&rows) },
	)
	if err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected one row after repeated upserts, got %d", rows)
	}

	state, ok, err := v.Plugins().Get("loot-filter")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if !state.Enabled {
		t.Error("last SetEnabled(true) not reflected")
	}
}

func TestPluginState_ConfigSurvivesToggle(t *testing.T) {
	v := newTestVault(t)

	if err := v.Plugins().SetConfig("overlay", `{"opacity":0.8}`); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	if err := v.Plugins().SetEnabled("overlay", true); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}

	state, ok, err := v.Plugins().Get("overlay")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if state.Config != `{"opacity":0.8}` {
		t.Errorf("config overwritten by enable toggle: %q", state.Config)
	}
	if !state.Enabled {
		t.Error("enabled flag not set")
	}
}

func TestPluginState_Validation(t *testing.T) {
	v := newTestVault(t)

	if err := v.Plugins().SetEnabled("", true); err != types.ErrInvalidPlugin {
		t.Errorf("SetEnabled: expected ErrInvalidPlugin, got %v", err)
	}
	if err := v.Plugins().SetConfig("", "{}"); err != types.ErrInvalidPlugin {
		t.Errorf("SetConfig: expected ErrInvalidPlugin, got %v", err)
	}
	if _, _, err := v.Plugins().Get(""); err != types.ErrInvalidPlugin {
		t.Errorf("Get: expected ErrInvalidPlugin, got %v", err)
	}
}

func TestPluginState_GetMissingAndAll(t *testing.T) {
	v := newTestVault(t)

	_, ok, err := v.Plugins().Get("ghost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get reported an unknown plugin as present")
	}

	for _, id := range []string{"b-plugin", "a-plugin"} {
		if err := v.Plugins().SetEnabled(id, true); err != nil {
			t.Fatalf("SetEnabled failed: %v", err)
		}
	}
	states, err := v.Plugins().All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(states) != 2 || states[0].PluginID != "a-plugin" {
		t.Errorf("All not sorted by plugin id: %+v", states)
	}
}
