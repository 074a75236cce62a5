package contracts

// CombinedHolding is one position in a multi-strategy merge. Weights are
// non-negative; a ticker held by several strategies accumulates the sum of
// its per-strategy position weights.
type CombinedHolding struct {
	Ticker     string   `json:"ticker"`
	Weight     float64  `json:"weight"`
	Strategies []string `json:"strategies"`
}
