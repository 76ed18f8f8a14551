// Integration tests for the full price-check flow: create a check, attach
// quotes, compute statistics, record the verdict, and clean up.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exiletools/stashvault/pkg/types"
)

func TestPriceCheckFlow_EndToEnd(t *testing.T) {
	v, _ := newOpenVault(t)

	checkID, err := v.Prices().CreateCheck(types.GamePoE1, "Standard", "The Doctor", "")
	require.NoError(t, err)

	check, ok, err := v.Prices().GetCheck(checkID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, check.SessionID, "a session id must be generated")

	quotes := []types.PriceQuote{
		{Source: "trade-site", Price: 1, ListerAccount: "a"},
		{Source: "trade-site", Price: 2, ListerAccount: "b"},
		{Source: "trade-site", Price: 3, ListerAccount: "c"},
		{Source: "trade-site", Price: 4, ListerAccount: "d"},
		{Source: "trade-site", Price: 10, ListerAccount: "e", IndexedAgeHours: 6},
	}
	require.NoError(t, v.Prices().AddQuotes(checkID, quotes))

	stats, ok, err := v.Prices().CheckStatistics(checkID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 10.0, stats.Max)
	assert.Equal(t, 3.0, stats.Median)
	assert.InDelta(t, 4.0, stats.Mean, 1e-9)
	assert.InDelta(t, 1.75, stats.P25, 1e-9)
	assert.InDelta(t, 5.5, stats.P75, 1e-9)
	assert.InDelta(t, 2.5, stats.TrimmedMean, 1e-9)

	// The listing at 1 chaos sits well under the trimmed mean.
	require.NoError(t, v.Verdicts().Record(types.GamePoE1, "Standard", types.VerdictUnderpriced))
	counts, ok, err := v.Verdicts().Counts(types.GamePoE1, "Standard")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), counts.Underpriced)

	// Deleting the check cascades to its quotes.
	found, err := v.Prices().DeleteCheck(checkID)
	require.NoError(t, err)
	require.True(t, found)

	orphans, err := v.Prices().Quotes(checkID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestPriceCheckFlow_SnapshotHistory(t *testing.T) {
	v, _ := newOpenVault(t)

	for _, value := range []float64{100, 110, 105} {
		_, err := v.Prices().AddSnapshot(types.PriceSnapshot{
			League: "Standard", ItemName: "Ashes of the Stars", Value: value,
		})
		require.NoError(t, err)
	}

	history, err := v.Prices().History(types.GamePoE1, "Standard", "Ashes of the Stars", time.Time{})
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
