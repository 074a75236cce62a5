package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/scoring"
	"github.com/nordquant/screener/pkg/logger"
)

var testDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestRanker_DescendingOrder(t *testing.T) {
	scores := map[string]float64{"A": 10, "B": 30, "C": 20}

	r := NewRanker(logger.NewNop())
	ranked := r.Rank("momentum-12m", testDate, scores, scoring.Descending)

	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Ticker)
	assert.Equal(t, "C", ranked[1].Ticker)
	assert.Equal(t, "A", ranked[2].Ticker)

	for i, res := range ranked {
		assert.Equal(t, i+1, res.Rank)
		assert.Equal(t, "momentum-12m", res.Strategy)
		assert.Equal(t, testDate, res.CalculatedDate)
	}
}

func TestRanker_AscendingOrder(t *testing.T) {
	scores := map[string]float64{"A": 2.5, "B": 1.0, "C": 3.0}

	r := NewRanker(logger.NewNop())
	ranked := r.Rank("deep-value", testDate, scores, scoring.Ascending)

	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Ticker)
	assert.Equal(t, "A", ranked[1].Ticker)
	assert.Equal(t, "C", ranked[2].Ticker)
}

func TestRanker_TieBrokenByTicker(t *testing.T) {
	scores := map[string]float64{"ZZZ": 10, "AAA": 10, "MMM": 10}

	r := NewRanker(logger.NewNop())
	ranked := r.Rank("s", testDate, scores, scoring.Descending)

	require.Len(t, ranked, 3)
	assert.Equal(t, "AAA", ranked[0].Ticker)
	assert.Equal(t, "MMM", ranked[1].Ticker)
	assert.Equal(t, "ZZZ", ranked[2].Ticker)
}

func TestRanker_Deterministic(t *testing.T) {
	// Map iteration order must not leak into the ranking
	scores := map[string]float64{
		"A": 5, "B": 5, "C": 3, "D": 9, "E": 9, "F": 1,
	}

	r := NewRanker(logger.NewNop())
	first := r.Rank("s", testDate, scores, scoring.Descending)
	for i := 0; i < 20; i++ {
		again := r.Rank("s", testDate, scores, scoring.Descending)
		assert.Equal(t, first, again)
	}
}

func TestRanker_EmptyScores(t *testing.T) {
	r := NewRanker(logger.NewNop())
	ranked := r.Rank("s", testDate, map[string]float64{}, scoring.Descending)
	assert.Empty(t, ranked)
}
