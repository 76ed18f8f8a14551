package types

import "time"

// Supported game variants.
const (
	GamePoE1 = "poe1"
	GamePoE2 = "poe2"
)

// CheckedItem is an immutable record of one price lookup. Rows are created
// once and never mutated; the UI queries them by recency and filters.
type CheckedItem struct {
	ID        int64     // Row identity, assigned by the store.
	Game      string    // Game variant (one of the Game constants).
	League    string    // League the lookup was made in.
	Name      string    // Item name as shown to the user.
	BaseType  string    // Base type, empty when not resolved.
	Value     float64   // Resolved value in Currency units.
	Currency  string    // Currency unit, e.g. "chaos" or "divine".
	CheckedAt time.Time // When the lookup happened (UTC).
}

// Validate checks the fields required before persisting a checked item.
func (c CheckedItem) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if c.League == "" {
		return ErrInvalidLeague
	}
	return nil
}
