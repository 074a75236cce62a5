package contracts

import "time"

// FeatureRow is one ticker's fully joined scorer input. Unknown columns
// stay nil; dropping rows is the filter pipeline's job, not the builder's.
type FeatureRow struct {
	Ticker    string
	Name      string
	Sector    *string
	StockType StockType
	MarketCap *float64

	PE       *float64
	PB       *float64
	PS       *float64
	EVEBITDA *float64
	PFCF     *float64

	ROE    *float64
	ROA    *float64
	ROIC   *float64
	FCFROE *float64

	DividendYield *float64
	PayoutRatio   *float64

	FScore *int

	Perf3M  *float64
	Perf6M  *float64
	Perf12M *float64
}

// FeatureTable is the immutable per-snapshot scorer input, one row per
// ticker, sorted ascending by ticker for deterministic iteration.
type FeatureTable struct {
	Date time.Time
	Rows []FeatureRow
}

// Tickers returns the tickers of all rows, in table order
func (t *FeatureTable) Tickers() []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Ticker
	}
	return out
}

// Len returns the number of rows
func (t *FeatureTable) Len() int {
	return len(t.Rows)
}

// Factor names accepted in custom strategy definitions. Direction here is
// the natural "better" direction; custom blends may override it.
const (
	FactorPE            = "pe"
	FactorPB            = "pb"
	FactorPS            = "ps"
	FactorEVEBITDA      = "ev_ebitda"
	FactorPFCF          = "p_fcf"
	FactorROE           = "roe"
	FactorROA           = "roa"
	FactorROIC          = "roic"
	FactorFCFROE        = "fcf_roe"
	FactorDividendYield = "dividend_yield"
	FactorPayoutRatio   = "payout_ratio"
	FactorFScore        = "f_score"
	FactorPerf3M        = "perf_3m"
	FactorPerf6M        = "perf_6m"
	FactorPerf12M       = "perf_12m"
	FactorMarketCap     = "market_cap"
)

// KnownFactor reports whether name is a recognized factor column
func KnownFactor(name string) bool {
	switch name {
	case FactorPE, FactorPB, FactorPS, FactorEVEBITDA, FactorPFCF,
		FactorROE, FactorROA, FactorROIC, FactorFCFROE,
		FactorDividendYield, FactorPayoutRatio, FactorFScore,
		FactorPerf3M, FactorPerf6M, FactorPerf12M, FactorMarketCap:
		return true
	}
	return false
}

// Factor returns the named factor value for the row, nil when absent or
// when the name is unknown.
func (r *FeatureRow) Factor(name string) *float64 {
	switch name {
	case FactorPE:
		return r.PE
	case FactorPB:
		return r.PB
	case FactorPS:
		return r.PS
	case FactorEVEBITDA:
		return r.EVEBITDA
	case FactorPFCF:
		return r.PFCF
	case FactorROE:
		return r.ROE
	case FactorROA:
		return r.ROA
	case FactorROIC:
		return r.ROIC
	case FactorFCFROE:
		return r.FCFROE
	case FactorDividendYield:
		return r.DividendYield
	case FactorPayoutRatio:
		return r.PayoutRatio
	case FactorFScore:
		if r.FScore == nil {
			return nil
		}
		v := float64(*r.FScore)
		return &v
	case FactorPerf3M:
		return r.Perf3M
	case FactorPerf6M:
		return r.Perf6M
	case FactorPerf12M:
		return r.Perf12M
	case FactorMarketCap:
		return r.MarketCap
	default:
		return nil
	}
}
