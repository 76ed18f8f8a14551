package types

import "time"

// Sale lifecycle states.
const (
	SaleStatusListed = "listed"
	SaleStatusSold   = "sold"
	SaleStatusUnsold = "unsold"
)

// Sale is the mutable lifecycle record of one listed item: created when the
// item is listed, later completed with the actual price or marked unsold.
type Sale struct {
	ID          int64
	Game        string
	League      string
	ItemName    string
	Source      string  // Where the listing was made, e.g. "trade-site".
	ListedPrice float64 // Asking price in chaos.
	Currency    string
	ListedAt    time.Time
	Status      string
	SoldPrice   float64       // Actual price, zero until completed.
	SoldAt      time.Time     // Zero until completed.
	TimeToSale  time.Duration // Never negative; clamped against clock skew.
}

// SaleInput is the write-side record supplied by callers when listing an
// item or recording an instant sale. Exactly one value is persisted: the
// chaos price when given, otherwise the divine price converted by the
// caller's rate. Zero and negative prices count as absent.
type SaleInput struct {
	Game        string
	League      string
	ItemName    string
	Source      string
	PriceChaos  float64
	PriceDivine float64
}

// Validate checks that the input names an item and carries at least one of
// the two accepted value fields. It returns ErrMissingPrice when neither
// price is supplied.
func (s SaleInput) Validate() error {
	if s.ItemName == "" {
		return ErrInvalidName
	}
	if s.PriceChaos <= 0 && s.PriceDivine <= 0 {
		return ErrMissingPrice
	}
	return nil
}

// Price returns the effective listing price and its currency unit.
func (s SaleInput) Price() (float64, string) {
	if s.PriceChaos > 0 {
		return s.PriceChaos, "chaos"
	}
	return s.PriceDivine, "divine"
}
