package types

import "time"

// Alert directions.
const (
	AlertBelow = "below"
	AlertAbove = "above"
)

// PriceAlert asks to be notified when an item's value crosses a chaos
// threshold in the given direction.
type PriceAlert struct {
	ID             int64
	Game           string
	League         string
	ItemName       string
	ThresholdChaos float64
	Direction      string // AlertBelow or AlertAbove.
	Enabled        bool
	CreatedAt      time.Time
	TriggeredAt    time.Time // Zero until the alert first fires.
}

// Validate checks the fields required before persisting an alert.
func (a PriceAlert) Validate() error {
	if a.ItemName == "" {
		return ErrInvalidName
	}
	if a.League == "" {
		return ErrInvalidLeague
	}
	return nil
}
