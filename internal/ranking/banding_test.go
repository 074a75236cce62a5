package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/contracts"
)

// orderedUniverse builds a pre-ranked universe T01..Tnn in rank order
func orderedUniverse(n int) []contracts.RankingResult {
	out := make([]contracts.RankingResult, n)
	for i := range out {
		out[i] = contracts.RankingResult{
			Ticker: fmt.Sprintf("T%02d", i+1),
			Rank:   i + 1,
			Score:  float64(n - i),
		}
	}
	return out
}

func tickers(results []contracts.RankingResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Ticker
	}
	return out
}

func TestSelect_NoBandingTruncates(t *testing.T) {
	universe := orderedUniverse(20)

	selected := Select(universe, nil, 10, 0)

	require.Len(t, selected, 10)
	assert.Equal(t, "T01", selected[0].Ticker)
	assert.Equal(t, "T10", selected[9].Ticker)
}

func TestSelect_BandingRetainsWithinBuffer(t *testing.T) {
	// 20 stocks, N=10, buffer 20% -> threshold 14. A held ticker ranked
	// 13 stays; one ranked 15 is dropped.
	universe := orderedUniverse(20)
	prevHeld := []string{
		"T01", "T02", "T03", "T04", "T05", "T06", "T07", "T08", "T13", "T15",
	}

	selected := Select(universe, prevHeld, 10, 0.20)

	require.Len(t, selected, 10)
	got := tickers(selected)
	assert.Contains(t, got, "T13", "held ticker inside the buffer is retained")
	assert.NotContains(t, got, "T15", "held ticker outside the buffer is dropped")
	// The best unheld ticker fills the freed slot
	assert.Contains(t, got, "T09")

	// Dense re-rank 1..N in score order
	for i, res := range selected {
		assert.Equal(t, i+1, res.Rank)
	}
}

func TestSelect_RetainedKeepsOutNewcomer(t *testing.T) {
	// With every slot either retained or filled, a newcomer ranked above
	// a retained ticker still stays out.
	universe := orderedUniverse(20)
	prevHeld := []string{
		"T01", "T02", "T03", "T04", "T05", "T06", "T07", "T08", "T09", "T12",
	}

	selected := Select(universe, prevHeld, 10, 0.20)

	require.Len(t, selected, 10)
	got := tickers(selected)
	assert.Contains(t, got, "T12")
	assert.NotContains(t, got, "T10", "newcomer stays out while holds fill the book")
	assert.NotContains(t, got, "T11")
}

func TestSelect_NoPreviousHoldingsIgnoresBuffer(t *testing.T) {
	universe := orderedUniverse(20)

	selected := Select(universe, nil, 10, 0.20)

	require.Len(t, selected, 10)
	assert.Equal(t, tickers(universe[:10]), tickers(selected))
}

func TestSelect_UniverseSmallerThanPortfolio(t *testing.T) {
	universe := orderedUniverse(4)

	selected := Select(universe, nil, 10, 0)

	require.Len(t, selected, 4)
	for i, res := range selected {
		assert.Equal(t, i+1, res.Rank)
	}
}

func TestSelect_EmptyUniverse(t *testing.T) {
	selected := Select(nil, []string{"T01"}, 10, 0.20)
	assert.Empty(t, selected)
}

func TestSelect_ScoresNeverAltered(t *testing.T) {
	universe := orderedUniverse(20)
	byTicker := make(map[string]float64, len(universe))
	for _, r := range universe {
		byTicker[r.Ticker] = r.Score
	}

	selected := Select(universe, []string{"T13"}, 10, 0.20)

	for _, res := range selected {
		assert.Equal(t, byTicker[res.Ticker], res.Score)
	}
}
