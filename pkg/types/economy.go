package types

import "time"

// CurrencyRate is the chaos-equivalent exchange rate of one currency in one
// league, refreshed by the economy scraper. One row per (league, currency).
type CurrencyRate struct {
	League          string
	Currency        string
	ChaosEquivalent float64
	FetchedAt       time.Time
}

// EconomySnapshot is a point-in-time summary of a league's economy.
type EconomySnapshot struct {
	ID          int64
	League      string
	DivineChaos float64 // Divine orb value in chaos at snapshot time.
	RecordedAt  time.Time
}

// EconomyTopUnique is one of the highest-valued unique items observed in an
// economy snapshot. Rows cascade-delete with their snapshot.
type EconomyTopUnique struct {
	ID         int64
	SnapshotID int64
	Name       string
	ChaosValue float64
	Rank       int
}
