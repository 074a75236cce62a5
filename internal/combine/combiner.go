package combine

import (
	"fmt"
	"sort"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/logger"
)

// Combiner merges independent strategy rankings into one weighted
// portfolio. Overlap accumulates by design: a ticker held by several
// strategies sums its per-strategy position weights, reflecting
// conviction.
type Combiner struct {
	logger *logger.Logger
}

// NewCombiner creates a new strategy combiner
func NewCombiner(log *logger.Logger) *Combiner {
	return &Combiner{logger: log}
}

// Combine derives holdings from named ranking sets. allocations maps
// strategy name to its allocation share; nil means equal weighting of
// 1/k over all k configured strategies. Each strategy's share is divided
// evenly across its own positions. Empty results contribute zero weight
// and do not error the combination.
func (c *Combiner) Combine(results map[string][]contracts.RankingResult, allocations map[string]float64) ([]contracts.CombinedHolding, error) {
	if len(results) == 0 {
		return []contracts.CombinedHolding{}, nil
	}

	if allocations == nil {
		share := 1.0 / float64(len(results))
		allocations = make(map[string]float64, len(results))
		for name := range results {
			allocations[name] = share
		}
	}

	weights := make(map[string]float64)
	contributors := make(map[string][]string)

	// Deterministic iteration over strategies
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		positions := results[name]
		if len(positions) == 0 {
			continue
		}

		allocation, ok := allocations[name]
		if !ok {
			return nil, fmt.Errorf("no allocation share for strategy %q", name)
		}
		if allocation < 0 {
			return nil, fmt.Errorf("negative allocation share for strategy %q", name)
		}

		positionWeight := allocation / float64(len(positions))
		for _, pos := range positions {
			weights[pos.Ticker] += positionWeight
			contributors[pos.Ticker] = append(contributors[pos.Ticker], name)
		}
	}

	holdings := make([]contracts.CombinedHolding, 0, len(weights))
	for ticker, weight := range weights {
		holdings = append(holdings, contracts.CombinedHolding{
			Ticker:     ticker,
			Weight:     weight,
			Strategies: contributors[ticker],
		})
	}

	// Heaviest first, ticker as the deterministic tie-break
	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].Weight != holdings[j].Weight {
			return holdings[i].Weight > holdings[j].Weight
		}
		return holdings[i].Ticker < holdings[j].Ticker
	})

	c.logger.WithFields(map[string]interface{}{
		"strategies": len(results),
		"holdings":   len(holdings),
	}).Debug("Strategies combined")

	return holdings, nil
}
