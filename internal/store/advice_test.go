package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

func TestAdvice_CacheRoundTrip(t *testing.T) {
	v := newTestVault(t)

	err := v.Advice().PutAdvice(types.UpgradeAdvice{
		Profile: "juggernaut", Slot: "helmet", Advice: "look for +1 endurance charge",
	})
	if err != nil {
		t.Fatalf("PutAdvice failed: %v", err)
	}

	advice, ok, err := v.Advice().Advice("juggernaut", "helmet", 0)
	if err != nil || !ok {
		t.Fatalf("Advice failed: ok=%v err=%v", ok, err)
	}
	if advice.Advice != "look for +1 endurance charge" {
		t.Errorf("advice = %q", advice.Advice)
	}

	// The upsert replaces, it never duplicates.
	err = v.Advice().PutAdvice(types.UpgradeAdvice{
		Profile: "juggernaut", Slot: "helmet", Advice: "updated",
	})
	if err != nil {
		t.Fatalf("second PutAdvice failed: %v", err)
	}
	advice, ok, err = v.Advice().Advice("juggernaut", "helmet", 0)
	if err != nil || !ok {
		t.Fatalf("Advice after upsert: ok=%v err=%v", ok, err)
	}
	if advice.Advice != "updated" {
		t.Errorf("advice not replaced: %q", advice.Advice)
	}
}

func TestAdvice_StaleCacheAbsent(t *testing.T) {
	v := newTestVault(t)

	err := v.Advice().PutAdvice(types.UpgradeAdvice{
		Profile: "trickster", Slot: "boots", Advice: "old advice",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("PutAdvice failed: %v", err)
	}

	_, ok, err := v.Advice().Advice("trickster", "boots", 24*time.Hour)
	if err != nil {
		t.Fatalf("Advice failed: %v", err)
	}
	if ok {
		t.Error("stale entry reported as fresh")
	}

	// maxAge <= 0 accepts any age.
	_, ok, err = v.Advice().Advice("trickster", "boots", 0)
	if err != nil {
		t.Fatalf("Advice failed: %v", err)
	}
	if !ok {
		t.Error("entry absent with unbounded max age")
	}
}

func TestAdvice_MissingAbsent(t *testing.T) {
	v := newTestVault(t)

	_, ok, err := v.Advice().Advice("nobody", "gloves", 0)
	if err != nil {
		t.Fatalf("Advice failed: %v", err)
	}
	if ok {
		t.Error("missing entry reported as present")
	}
}

func TestAdvice_HistoryRetention(t *testing.T) {
	v := newTestVault(t)

	const total = DefaultAdviceHistoryLimit + 5
	for i := 0; i < total; i++ {
		_, err := v.Advice().AddHistoryEntry(types.UpgradeAdviceEntry{
			Profile: "juggernaut", Slot: "helmet",
			Advice: fmt.Sprintf("advice %d", i),
		})
		if err != nil {
			t.Fatalf("AddHistoryEntry %d failed: %v", i, err)
		}
	}
	// A second key must not count against the first key's budget.
	if _, err := v.Advice().AddHistoryEntry(types.UpgradeAdviceEntry{
		Profile: "juggernaut", Slot: "boots", Advice: "other slot",
	}); err != nil {
		t.Fatalf("AddHistoryEntry failed: %v", err)
	}

	entries, err := v.Advice().History("juggernaut", "helmet")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != DefaultAdviceHistoryLimit {
		t.Fatalf("retained %d entries, want %d", len(entries), DefaultAdviceHistoryLimit)
	}
	// Newest first, and the oldest five evicted.
	if entries[0].Advice != fmt.Sprintf("advice %d", total-1) {
		t.Errorf("newest entry = %q", entries[0].Advice)
	}
	if entries[len(entries)-1].Advice != "advice 5" {
		t.Errorf("oldest retained entry = %q", entries[len(entries)-1].Advice)
	}

	other, err := v.Advice().History("juggernaut", "boots")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("other key has %d entries, want 1", len(other))
	}
}

func TestAdvice_Validation(t *testing.T) {
	v := newTestVault(t)

	if err := v.Advice().PutAdvice(types.UpgradeAdvice{Slot: "helmet"}); err != types.ErrInvalidName {
		t.Errorf("PutAdvice: expected ErrInvalidName, got %v", err)
	}
	if _, err := v.Advice().AddHistoryEntry(types.UpgradeAdviceEntry{Profile: "x"}); err != types.ErrInvalidName {
		t.Errorf("AddHistoryEntry: expected ErrInvalidName, got %v", err)
	}
}
