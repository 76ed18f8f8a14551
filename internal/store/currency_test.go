package store

import (
	"testing"

	"github.com/exiletools/stashvault/pkg/types"
)

func TestEconomy_RateUpsert(t *testing.T) {
	v := newTestVault(t)

	if err := v.Economy().UpsertRate(types.CurrencyRate{
		League: "Standard", Currency: "divine", ChaosEquivalent: 180,
	}); err != nil {
		t.Fatalf("UpsertRate failed: %v", err)
	}
	if err := v.Economy().UpsertRate(types.CurrencyRate{
		League: "Standard", Currency: "divine", ChaosEquivalent: 195,
	}); err != nil {
		t.Fatalf("second UpsertRate failed: %v", err)
	}

	rate, ok, err := v.Economy().Rate("Standard", "divine")
	if err != nil || !ok {
		t.Fatalf("Rate failed: ok=%v err=%v", ok, err)
	}
	if rate != 195 {
		t.Errorf("rate = %v, want 195", rate)
	}

	rates, err := v.Economy().Rates("Standard")
	if err != nil {
		t.Fatalf("Rates failed: %v", err)
	}
	if len(rates) != 1 {
		t.Errorf("expected one rate row after upsert, got %d", len(rates))
	}
}

func TestEconomy_RateMissing(t *testing.T) {
	v := newTestVault(t)

	_, ok, err := v.Economy().Rate("Standard", "mirror")
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if ok {
		t.Error("missing rate reported as present")
	}
}

func TestEconomy_SnapshotWithTopUniques(t *testing.T) {
	v := newTestVault(t)

	uniques := []types.EconomyTopUnique{
		{Name: "Mageblood", ChaosValue: 90000, Rank: 1},
		{Name: "Headhunter", ChaosValue: 21000, Rank: 2},
	}
	first, err := v.Economy().AddSnapshot(types.EconomySnapshot{
		League: "Standard", DivineChaos: 180,
	}, uniques)
	if err != nil {
		t.Fatalf("AddSnapshot failed: %v", err)
	}

	// A later snapshot becomes the latest one.
	_, err = v.Economy().AddSnapshot(types.EconomySnapshot{
		League: "Standard", DivineChaos: 185,
	}, nil)
	if err != nil {
		t.Fatalf("second AddSnapshot failed: %v", err)
	}

	snapshot, topUniques, ok, err := v.Economy().LatestSnapshot("Standard")
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot failed: ok=%v err=%v", ok, err)
	}
	if snapshot.DivineChaos != 185 {
		t.Errorf("latest divine rate = %v, want 185", snapshot.DivineChaos)
	}
	if len(topUniques) != 0 {
		t.Errorf("latest snapshot has %d uniques, want 0", len(topUniques))
	}

	// Deleting the older snapshot cascades to its uniques.
	found, err := v.Economy().DeleteSnapshot(first)
	if err != nil || !found {
		t.Fatalf("DeleteSnapshot: found=%v err=%v", found, err)
	}
	counts, err := v.Maintenance().Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts["league_economy_top_uniques"] != 0 {
		t.Errorf("cascade left %d top uniques", counts["league_economy_top_uniques"])
	}
}

func TestEconomy_LatestSnapshotMissing(t *testing.T) {
	v := newTestVault(t)

	_, _, ok, err := v.Economy().LatestSnapshot("Hardcore")
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}
	if ok {
		t.Error("expected absent snapshot for an unrecorded league")
	}
}
