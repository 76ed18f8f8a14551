package types

import "time"

// UpgradeAdvice is the cached upgrade recommendation for one (profile,
// slot) pair. One row per pair, upsert semantics; readers decide how stale
// a cached row they will accept.
type UpgradeAdvice struct {
	Profile   string
	Slot      string
	Advice    string // Opaque advice payload, typically JSON.
	CreatedAt time.Time
}

// UpgradeAdviceEntry is one historical advice record for a (profile, slot)
// pair. The store retains only the most recent entries per pair; overflow
// is deleted at write time.
type UpgradeAdviceEntry struct {
	ID        int64
	Profile   string
	Slot      string
	Advice    string
	CreatedAt time.Time
}

// Verdict labels recorded against price-check outcomes.
const (
	VerdictUnderpriced = "underpriced"
	VerdictFair        = "fair"
	VerdictOverpriced  = "overpriced"
)

// VerdictCounts aggregates verdict outcomes for one (game, league) pair.
type VerdictCounts struct {
	Game        string
	League      string
	Underpriced int64
	Fair        int64
	Overpriced  int64
}
