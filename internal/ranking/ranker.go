package ranking

import (
	"sort"
	"time"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/scoring"
	"github.com/nordquant/screener/pkg/logger"
)

// Ranker converts a ticker -> score mapping into dense ranks. Ties are
// broken by ascending ticker; a ranking must never be ambiguous.
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(log *logger.Logger) *Ranker {
	return &Ranker{logger: log}
}

// Rank orders the full scored universe and assigns dense ranks 1..M,
// M = number of scored tickers. Truncation to the portfolio size happens
// in Select, after banding had a chance to look beyond the cutoff.
func (r *Ranker) Rank(strategy string, date time.Time, scores map[string]float64, order scoring.Order) []contracts.RankingResult {
	ranked := make([]contracts.RankingResult, 0, len(scores))
	for ticker, score := range scores {
		ranked = append(ranked, contracts.RankingResult{
			Strategy:       strategy,
			Ticker:         ticker,
			Score:          score,
			CalculatedDate: date,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			if order == scoring.Ascending {
				return ranked[i].Score < ranked[j].Score
			}
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if len(ranked) > 0 {
		r.logger.WithFields(map[string]interface{}{
			"strategy":   strategy,
			"scored":     len(ranked),
			"top_ticker": ranked[0].Ticker,
			"top_score":  ranked[0].Score,
		}).Debug("Universe ranked")
	}

	return ranked
}
