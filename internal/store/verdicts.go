package store

import (
	"database/sql"
	"fmt"

	"github.com/exiletools/stashvault/pkg/types"
)

// VerdictRepo aggregates price-check verdict outcomes per (game, league).
type VerdictRepo struct {
	db *DB
}

// Record increments the counter for a verdict, creating the (game, league)
// row on first use. Unknown verdict labels are a validation failure.
func (r *VerdictRepo) Record(game, league, verdict string) error {
	if league == "" {
		return types.ErrInvalidLeague
	}
	if game == "" {
		game = types.GamePoE1
	}

	var column string
	switch verdict {
	case types.VerdictUnderpriced:
		column = "underpriced"
	case types.VerdictFair:
		column = "fair"
	case types.VerdictOverpriced:
		column = "overpriced"
	default:
		return fmt.Errorf("unknown verdict %q", verdict)
	}

	// column comes from the switch above, never from the caller.
	_, _, err := r.db.Exec(fmt.Sprintf(
		`INSERT INTO verdict_stats (game, league, %s) VALUES (?, ?, 1)
		 ON CONFLICT(game, league) DO UPDATE SET %s = %s + 1`,
		column, column, column),
		game, league,
	)
	if err != nil {
		return fmt.Errorf("recording %s verdict: %w", verdict, err)
	}
	return nil
}

// Counts returns the verdict counters for a (game, league) pair, or
// ok=false when nothing has been recorded yet.
func (r *VerdictRepo) Counts(game, league string) (types.VerdictCounts, bool, error) {
	var counts types.VerdictCounts
	err := r.db.QueryRow(
		`SELECT game, league, underpriced, fair, overpriced
		 FROM verdict_stats WHERE game = ? AND league = ?`,
		func(row *sql.Row) error {
			return row.Scan(&counts.Game, &counts.League,
				&counts.Underpriced, &counts.Fair, &counts.Overpriced)
		}, game, league)
	if err == sql.ErrNoRows {
		return types.VerdictCounts{}, false, nil
	}
	if err != nil {
		return types.VerdictCounts{}, false, fmt.Errorf("getting verdict counts: %w", err)
	}
	return counts, true, nil
}
