package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

func TestCustomScorer_WeightedBlend(t *testing.T) {
	factors := []strategyconfig.FactorWeight{
		{Factor: contracts.FactorPE, Weight: 0.6, Direction: strategyconfig.DirectionLowerBetter},
		{Factor: contracts.FactorROE, Weight: 0.4, Direction: strategyconfig.DirectionHigherBetter},
	}

	rows := []contracts.FeatureRow{
		{Ticker: "A", PE: fptr(5), ROE: fptr(20)},  // pe rank 1, roe rank 1
		{Ticker: "B", PE: fptr(10), ROE: fptr(10)}, // pe rank 2, roe rank 2
		{Ticker: "C", PE: fptr(20), ROE: fptr(5)},  // pe rank 3, roe rank 3
	}

	s := NewCustomScorer(factors, logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.InDelta(t, 0.6*1+0.4*1, scores["A"], 1e-9)
	assert.InDelta(t, 0.6*2+0.4*2, scores["B"], 1e-9)
	assert.InDelta(t, 0.6*3+0.4*3, scores["C"], 1e-9)
	assert.Equal(t, Ascending, s.Order())
}

func TestCustomScorer_DirectionOverride(t *testing.T) {
	// Declaring pe higher_better inverts its contribution
	factors := []strategyconfig.FactorWeight{
		{Factor: contracts.FactorPE, Weight: 1.0, Direction: strategyconfig.DirectionHigherBetter},
	}

	rows := []contracts.FeatureRow{
		{Ticker: "LOWPE", PE: fptr(5)},
		{Ticker: "HIGHPE", PE: fptr(50)},
	}

	s := NewCustomScorer(factors, logger.NewNop())
	scores, err := s.Score(rows)
	require.NoError(t, err)

	assert.Less(t, scores["HIGHPE"], scores["LOWPE"])
}

func TestForStrategy_CategoryDispatch(t *testing.T) {
	tests := []struct {
		category strategyconfig.Category
		wantName string
	}{
		{strategyconfig.CategoryMomentum, "momentum"},
		{strategyconfig.CategoryValue, "value"},
		{strategyconfig.CategoryQuality, "quality"},
		{strategyconfig.CategoryDividend, "dividend"},
		{strategyconfig.CategoryCustom, "custom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			s, err := ForStrategy(strategyconfig.Strategy{Category: tt.category}, nil, logger.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}

	_, err := ForStrategy(strategyconfig.Strategy{Category: "bogus"}, nil, logger.NewNop())
	assert.Error(t, err)
}
