package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// valueFactors are the valuation multiples, all lower-is-better
var valueFactors = []string{
	contracts.FactorPE,
	contracts.FactorPB,
	contracts.FactorPS,
	contracts.FactorEVEBITDA,
	contracts.FactorPFCF,
}

// ValueScorer ranks each valuation multiple ascending across the eligible
// universe and averages the per-factor ranks. Missing values take the
// worst rank, so a stock with partial value data is penalized rather than
// removed. Lower composite is better.
type ValueScorer struct {
	logger *logger.Logger
}

// NewValueScorer creates a value scorer
func NewValueScorer(log *logger.Logger) *ValueScorer {
	return &ValueScorer{logger: log}
}

func (s *ValueScorer) Name() string { return "value" }
func (s *ValueScorer) Order() Order { return Ascending }

// Score computes the mean-of-ranks composite per ticker
func (s *ValueScorer) Score(rows []contracts.FeatureRow) (map[string]float64, error) {
	perFactor := make([]map[string]float64, len(valueFactors))
	for i, factor := range valueFactors {
		perFactor[i] = factorRanks(rows, factor, true, MissingWorstRank)
	}

	scores := make(map[string]float64, len(rows))
	ranks := make([]float64, 0, len(valueFactors))
	for i := range rows {
		ticker := rows[i].Ticker
		ranks = ranks[:0]
		for _, fr := range perFactor {
			ranks = append(ranks, fr[ticker])
		}
		scores[ticker] = stat.Mean(ranks, nil)
	}

	dropNonFinite(scores, s.Name(), s.logger)
	return scores, nil
}
