package scoring

import (
	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// DividendScorer is a single-factor ranking by dividend yield, higher is
// better. Tickers without a yield cannot be ordered and are excluded.
// The payout-ratio sanity check lives in the filter pipeline, not here.
type DividendScorer struct {
	logger *logger.Logger
}

// NewDividendScorer creates a dividend scorer
func NewDividendScorer(log *logger.Logger) *DividendScorer {
	return &DividendScorer{logger: log}
}

func (s *DividendScorer) Name() string { return "dividend" }
func (s *DividendScorer) Order() Order { return Descending }

// Score maps each ticker to its dividend yield
func (s *DividendScorer) Score(rows []contracts.FeatureRow) (map[string]float64, error) {
	scores := make(map[string]float64, len(rows))
	for i := range rows {
		if rows[i].DividendYield == nil {
			continue
		}
		scores[rows[i].Ticker] = *rows[i].DividendYield
	}

	dropNonFinite(scores, s.Name(), s.logger)
	return scores, nil
}
