package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// qualityFactors are the profitability measures, all higher-is-better
var qualityFactors = []string{
	contracts.FactorROE,
	contracts.FactorROA,
	contracts.FactorROIC,
	contracts.FactorFCFROE,
}

// QualityScorer follows the same rank-and-average pattern as value, with
// descending per-factor ranks and missing values at the worst rank.
// Lower composite is better.
type QualityScorer struct {
	logger *logger.Logger
}

// NewQualityScorer creates a quality scorer
func NewQualityScorer(log *logger.Logger) *QualityScorer {
	return &QualityScorer{logger: log}
}

func (s *QualityScorer) Name() string { return "quality" }
func (s *QualityScorer) Order() Order { return Ascending }

// Score computes the mean-of-ranks composite per ticker
func (s *QualityScorer) Score(rows []contracts.FeatureRow) (map[string]float64, error) {
	perFactor := make([]map[string]float64, len(qualityFactors))
	for i, factor := range qualityFactors {
		perFactor[i] = factorRanks(rows, factor, false, MissingWorstRank)
	}

	scores := make(map[string]float64, len(rows))
	ranks := make([]float64, 0, len(qualityFactors))
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
