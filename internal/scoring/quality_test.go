package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

func TestQualityScorer_HigherProfitabilityWins(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "GOOD", ROE: fptr(25), ROA: fptr(15), ROIC: fptr(20), FCFROE: fptr(22)},
		{Ticker: "MID", ROE: fptr(12), ROA: fptr(8), ROIC: fptr(10), FCFROE: fptr(11)},
		{Ticker: "POOR", ROE: fptr(2), ROA: fptr(1), ROIC: fptr(1), FCFROE: fptr(0.5)},
	}

	s := NewQualityScorer(logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, scores["GOOD"], 1e-9)
	assert.InDelta(t, 2.0, scores["MID"], 1e-9)
	assert.InDelta(t, 3.0, scores["POOR"], 1e-9)
	assert.Equal(t, Ascending, s.Order())
}

func TestQualityScorer_MissingFactorPenalized(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "FULL", ROE: fptr(10), ROA: fptr(5), ROIC: fptr(8), FCFROE: fptr(9)},
		{Ticker: "HOLE", ROE: fptr(10), ROA: nil, ROIC: fptr(8), FCFROE: fptr(9)},
	}

	s := NewQualityScorer(logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.Less(t, scores["FULL"], scores["HOLE"])
}

func TestDividendScorer_YieldOrdering(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "HI", DividendYield: fptr(6.5)},
		{Ticker: "LO", DividendYield: fptr(1.2)},
		{Ticker: "NONE"},
	}

	s := NewDividendScorer(logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.Equal(t, 6.5, scores["HI"])
	assert.Equal(t, 1.2, scores["LO"])
	// No yield means no ordering, not an implicit zero
	assert.NotContains(t, scores, "NONE")
	assert.Equal(t, Descending, s.Order())
}
