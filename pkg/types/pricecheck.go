package types

import "time"

// PriceCheck groups the raw quotes gathered during one price lookup.
// Quotes are owned by their check and cascade-deleted with it.
type PriceCheck struct {
	ID        int64
	Game      string
	League    string
	ItemName  string
	SessionID string // Scraper session correlation id (UUID v7).
	CreatedAt time.Time
}

// PriceQuote is one raw, per-source observed price belonging to a check.
// Quotes are append-only.
type PriceQuote struct {
	ID              int64
	CheckID         int64
	Source          string // Which scraper or API produced the quote.
	Price           float64
	Currency        string
	ListerAccount   string  // Account name of the lister, may be empty.
	IndexedAgeHours float64 // Age of the listing when observed, hours.
	FetchedAt       time.Time
}

// PriceSnapshot is an immutable point-in-time value observation for an
// item, used for trend history.
type PriceSnapshot struct {
	ID         int64
	Game       string
	League     string
	ItemName   string
	Value      float64
	Currency   string
	RecordedAt time.Time
}
