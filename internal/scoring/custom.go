package scoring

import (
	"github.com/nordquant/screener/internal/strategyconfig"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// CustomScorer combines per-factor ranks via a weighted sum, one rank per
// configured {factor, weight, direction} entry. Weights arrive already
// normalized to sum to 1 by the config loader; unknown factors were
// dropped there too. Lower composite is better.
type CustomScorer struct {
	factors []strategyconfig.FactorWeight
	logger  *logger.Logger
}

// NewCustomScorer creates a custom weighted blend scorer
func NewCustomScorer(factors []strategyconfig.FactorWeight, log *logger.Logger) *CustomScorer {
	return &CustomScorer{factors: factors, logger: log}
}

func (s *CustomScorer) Name() string { return "custom" }
func (s *CustomScorer) Order() Order { return Ascending }

// Score computes the weighted rank composite per ticker
func (s *CustomScorer) Score(rows []contracts.FeatureRow) (map[string]float64, error) {
	type weighted struct {
		ranks  map[string]float64
		weight float64
	}

	perFactor := make([]weighted, 0, len(s.factors))
	for _, f := range s.factors {
		lowerBetter := f.Direction == strategyconfig.DirectionLowerBetter
		perFactor = append(perFactor, weighted{
			ranks:  factorRanks(rows, f.Factor, lowerBetter, MissingWorstRank),
			weight: f.Weight,
		})
	}

	scores := make(map[string]float64, len(rows))
	for i := range rows {
		ticker := rows[i].Ticker
		var composite float64
		for _, wf := range perFactor {
			composite += wf.ranks[ticker] * wf.weight
		}
		scores[ticker] = composite
	}

	dropNonFinite(scores, s.Name(), s.logger)
	return scores, nil
}
