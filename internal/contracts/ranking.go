package contracts

import "time"

// RankingResult is one ranked position inside a strategy snapshot.
// For a fixed (Strategy, CalculatedDate) the ranks form a dense
// permutation 1..N with no duplicate ticker and no duplicate rank.
type RankingResult struct {
	Strategy       string    `json:"strategy"`
	Ticker         string    `json:"ticker"`
	Rank           int       `json:"rank"`
	Score          float64   `json:"score"`
	CalculatedDate time.Time `json:"calculated_date"`
}

// Outcome is the per-strategy result of a batch computation: either a
// count of ranked stocks or an error string. One strategy's failure never
// aborts its siblings.
type Outcome struct {
	Ranked int    `json:"ranked"`
	Err    string `json:"error,omitempty"`
}

// Failed reports whether the strategy computation failed
func (o Outcome) Failed() bool {
	return o.Err != ""
}
