package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

func TestValueScorer_LowerMultiplesWin(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "CHEAP", PE: fptr(5), PB: fptr(0.8), PS: fptr(0.5), EVEBITDA: fptr(4), PFCF: fptr(6)},
		{Ticker: "FAIR", PE: fptr(15), PB: fptr(2), PS: fptr(1.5), EVEBITDA: fptr(10), PFCF: fptr(18)},
		{Ticker: "RICH", PE: fptr(40), PB: fptr(8), PS: fptr(6), EVEBITDA: fptr(25), PFCF: fptr(50)},
	}

	s := NewValueScorer(logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	// Mean of per-factor ranks; rank 1 on every factor for CHEAP
	assert.InDelta(t, 1.0, scores["CHEAP"], 1e-9)
	assert.InDelta(t, 2.0, scores["FAIR"], 1e-9)
	assert.InDelta(t, 3.0, scores["RICH"], 1e-9)
	assert.Equal(t, Ascending, s.Order())
}

func TestValueScorer_MissingFactorPenalized(t *testing.T) {
	// Two tickers identical except for pe: the pe=missing one must rank
	// strictly worse on the composite.
	rows := []contracts.FeatureRow{
		{Ticker: "HASPE", PE: fptr(10), PB: fptr(1), PS: fptr(1), EVEBITDA: fptr(8), PFCF: fptr(12)},
		{Ticker: "NOPE", PE: nil, PB: fptr(1), PS: fptr(1), EVEBITDA: fptr(8), PFCF: fptr(12)},
	}

	s := NewValueScorer(logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.Less(t, scores["HASPE"], scores["NOPE"],
		"missing pe must produce a strictly worse (higher) composite")
}

func TestFactorRanks_MissingWorstRank(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "A", PE: fptr(10)},
		{Ticker: "B", PE: nil},
		{Ticker: "C", PE: fptr(5)},
		{Ticker: "D", PE: nil},
	}

	ranks := factorRanks(rows, contracts.FactorPE, true, MissingWorstRank)

	assert.Equal(t, 1.0, ranks["C"])
	assert.Equal(t, 2.0, ranks["A"])
	// Missing values take the worst rank, equal to the universe size
	assert.Equal(t, 4.0, ranks["B"])
	assert.Equal(t, 4.0, ranks["D"])
}

func TestFactorRanks_MissingExcluded(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "A", PE: fptr(10)},
		{Ticker: "B", PE: nil},
	}

	ranks := factorRanks(rows, contracts.FactorPE, true, MissingExcluded)

	assert.Contains(t, ranks, "A")
	assert.NotContains(t, ranks, "B")
}

func TestFactorRanks_TieBrokenByTicker(t *testing.T) {
	rows := []contracts.FeatureRow{
		{Ticker: "ZZZ", PE: fptr(10)},
		{Ticker: "AAA", PE: fptr(10)},
	}

	ranks := factorRanks(rows, contracts.FactorPE, true, MissingWorstRank)

	assert.Equal(t, 1.0, ranks["AAA"])
	assert.Equal(t, 2.0, ranks["ZZZ"])
}
