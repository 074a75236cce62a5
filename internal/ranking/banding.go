package ranking

import "github.com/nordquant/screener/internal/contracts"

// Select truncates a full ordered ranking to the top N positions,
// applying hysteresis for turnover-sensitive strategies when buffer > 0.
//
// A previously held ticker is retained as long as its current rank stays
// within N + floor(buffer * M), M = size of the scored universe, even
// when that keeps a newly ranked stock out this period. A held ticker
// outside the buffer is dropped (sell signal) and the next unheld
// highest-ranked ticker enters. Scores are never altered; the final set
// is re-ranked densely 1..N in score order.
func Select(ordered []contracts.RankingResult, prevHeld []string, portfolioSize int, buffer float64) []contracts.RankingResult {
	n := portfolioSize
	if len(ordered) < n {
		n = len(ordered)
	}
	if n == 0 {
		return []contracts.RankingResult{}
	}

	held := make(map[string]bool, len(prevHeld))
	for _, ticker := range prevHeld {
		held[ticker] = true
	}

	selected := make([]contracts.RankingResult, 0, n)
	if buffer > 0 && len(held) > 0 {
		threshold := n + int(buffer*float64(len(ordered)))

		// First pass: held tickers surviving inside the buffer
		retained := make(map[string]bool, len(held))
		for _, res := range ordered {
			if held[res.Ticker] && res.Rank <= threshold {
				retained[res.Ticker] = true
			}
		}
		if len(retained) > n {
			// Cannot happen when prevHeld came from a top-N snapshot of
			// the same strategy, but guard against oversized input.
			retained = trimToBest(ordered, retained, n)
		}

		// Second pass: fill remaining slots with the best unheld tickers
		free := n - len(retained)
		for _, res := range ordered {
			if retained[res.Ticker] {
				selected = append(selected, res)
				continue
			}
			if held[res.Ticker] {
				continue // outside the buffer: dropped
			}
			if free > 0 {
				selected = append(selected, res)
				free--
			}
			if free == 0 && len(selected) == n {
				break
			}
		}
	} else {
		selected = append(selected, ordered[:n]...)
	}

	// Re-rank densely; selection order already follows score order
	for i := range selected {
		selected[i].Rank = i + 1
	}

	return selected
}

// trimToBest keeps only the n best-ranked tickers of the given set
func trimToBest(ordered []contracts.RankingResult, set map[string]bool, n int) map[string]bool {
	out := make(map[string]bool, n)
	for _, res := range ordered {
		if len(out) == n {
			break
		}
		if set[res.Ticker] {
			out[res.Ticker] = true
		}
	}
	return out
}
