package scoring

import (
	"fmt"
	"math"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

// Order declares how a scorer's composite orders the universe
type Order int

const (
	// Descending: higher score is better (momentum, dividend yield)
	Descending Order = iota
	// Ascending: lower score is better (rank composites)
	Ascending
)

// Scorer turns an eligible universe into a ticker -> score mapping.
// Tickers absent from the map are excluded from ranking entirely.
type Scorer interface {
	Name() string
	Order() Order
	Score(rows []contracts.FeatureRow) (map[string]float64, error)
}

// ForStrategy builds the scorer matching a strategy's category. The price
// series is only consulted by momentum when pre-computed returns are
// absent; other categories ignore it.
func ForStrategy(s strategyconfig.Strategy, prices contracts.PriceSeries, log *logger.Logger) (Scorer, error) {
	switch s.Category {
	case strategyconfig.CategoryMomentum:
		return NewMomentumScorer(prices, log), nil
	case strategyconfig.CategoryValue:
		return NewValueScorer(log), nil
	case strategyconfig.CategoryQuality:
		return NewQualityScorer(log), nil
	case strategyconfig.CategoryDividend:
		return NewDividendScorer(log), nil
	case strategyconfig.CategoryCustom:
		return NewCustomScorer(s.Factors, log), nil
	default:
		return nil, fmt.Errorf("no scorer for category %q", s.Category)
	}
}

// dropNonFinite removes tickers whose computed score is NaN or Inf.
// A non-finite score is a scorer defect, not expected data, so it is
// logged at error level before the ticker is dropped.
func dropNonFinite(scores map[string]float64, scorer string, log *logger.Logger) {
	for ticker, score := range scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			log.WithFields(map[string]interface{}{
				"scorer": scorer,
				"ticker": ticker,
				"score":  score,
			}).Error("Non-finite score computed, ticker excluded")
			delete(scores, ticker)
		}
	}
}
