package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// Trading days per month, used when deriving returns from price series
const tradingDaysPerMonth = 21

// Momentum horizons in months
var momentumHorizons = []int{3, 6, 12}

// MomentumScorer scores by the unweighted mean of the available subset of
// {3m, 6m, 12m} percentage returns. A ticker with no component at all is
// excluded from ranking, not scored as zero. Higher score is better.
type MomentumScorer struct {
	prices contracts.PriceSeries
	logger *logger.Logger
}

// NewMomentumScorer creates a momentum scorer. prices may be nil when the
// feed supplies pre-computed returns for every ticker.
func NewMomentumScorer(prices contracts.PriceSeries, log *logger.Logger) *MomentumScorer {
	return &MomentumScorer{prices: prices, logger: log}
}

func (s *MomentumScorer) Name() string { return "momentum" }
func (s *MomentumScorer) Order() Order { return Descending }

// Score computes the momentum composite per ticker
func (s *MomentumScorer) Score(rows []contracts.FeatureRow) (map[string]float64, error) {
	scores := make(map[string]float64, len(rows))

	for i := range rows {
		row := &rows[i]
		components := make([]float64, 0, len(momentumHorizons))

		supplied := []*float64{row.Perf3M, row.Perf6M, row.Perf12M}
		for j, horizon := range momentumHorizons {
			if supplied[j] != nil {
				components = append(components, *supplied[j])
				continue
			}
			if ret, ok := s.derivedReturn(row.Ticker, horizon); ok {
				components = append(components, ret)
			}
		}

		if len(components) == 0 {
			continue
		}
		scores[row.Ticker] = stat.Mean(components, nil)
	}

	dropNonFinite(scores, s.Name(), s.logger)
	return scores, nil
}

// derivedReturn computes the h-month return from the price series:
// (latest close / close ~h*21 trading days earlier) - 1, expressed in
// percent to stay commensurate with the supplied perf_* fields. Horizons
// with insufficient history are treated as missing.
func (s *MomentumScorer) derivedReturn(ticker string, months int) (float64, bool) {
	series, ok := s.prices[ticker]
	if !ok {
		return 0, false
	}

	offset := months * tradingDaysPerMonth
	if len(series) <= offset {
		return 0, false
	}

	latest := series[len(series)-1].Close
	past := series[len(series)-1-offset].Close
	if past == 0 {
		return 0, false
	}

	return (latest/past - 1) * 100, true
}
