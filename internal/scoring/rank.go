package scoring

import (
	"sort"

	"github.com/nordquant/screener/internal/contracts"
)

// MissingPolicy is the explicit, named policy for tickers that lack a
// factor value. It materially affects outcomes, so it is a parameter of
// the rank primitive rather than a hidden default.
type MissingPolicy int

const (
	// MissingWorstRank places every missing ticker at the worst rank,
	// equal to the universe size. Partial data is penalized, not removed.
	MissingWorstRank MissingPolicy = iota
	// MissingExcluded leaves missing tickers out of the result entirely
	MissingExcluded
)

// factorRanks computes per-ticker ordinal ranks for one factor across the
// universe. Rank 1 is best. lowerBetter selects the sort direction. Ties
// are broken by ascending ticker so equal inputs always rank identically.
func factorRanks(rows []contracts.FeatureRow, factor string, lowerBetter bool, missing MissingPolicy) map[string]float64 {
	type entry struct {
		ticker string
		value  float64
	}

	present := make([]entry, 0, len(rows))
	absent := make([]string, 0)
	for i := range rows {
		v := rows[i].Factor(factor)
		if v == nil {
			absent = append(absent, rows[i].Ticker)
			continue
		}
		present = append(present, entry{ticker: rows[i].Ticker, value: *v})
	}

	sort.Slice(present, func(i, j int) bool {
		if present[i].value != present[j].value {
			if lowerBetter {
				return present[i].value < present[j].value
			}
			return present[i].value > present[j].value
		}
		return present[i].ticker < present[j].ticker
	})

	ranks := make(map[string]float64, len(rows))
	for i, e := range present {
		ranks[e.ticker] = float64(i + 1)
	}

	if missing == MissingWorstRank {
		worst := float64(len(rows))
		for _, ticker := range absent {
			ranks[ticker] = worst
		}
	}

	return ranks
}
