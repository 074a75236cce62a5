package scoring

import "github.com/nordquant/screener/internal/contracts"

// ApproximateFScore derives a Piotroski-style 0-9 quality score from the
// available financial deltas when the feed supplies none. Each satisfied
// criterion adds one point; a criterion whose inputs are missing adds
// zero instead of vetoing the score. Returns ok=false when no criterion
// had usable inputs, so callers can keep the field nil.
func ApproximateFScore(rec contracts.FundamentalRecord) (int, bool) {
	score := 0
	usable := false

	// Profitability positive
	if rec.NetIncome != nil {
		usable = true
		if *rec.NetIncome > 0 {
			score++
		}
	}

	// Operating cash flow positive
	if rec.OperatingCashFlow != nil {
		usable = true
		if *rec.OperatingCashFlow > 0 {
			score++
		}
	}

	// Cash flow exceeds earnings (accrual check)
	if rec.OperatingCashFlow != nil && rec.NetIncome != nil {
		usable = true
		if *rec.OperatingCashFlow > *rec.NetIncome {
			score++
		}
	}

	// Leverage not increasing
	if rec.LeverageRatio != nil && rec.PriorLeverageRatio != nil {
		usable = true
		if *rec.LeverageRatio <= *rec.PriorLeverageRatio {
			score++
		}
	}

	// Liquidity not deteriorating
	if rec.CurrentRatio != nil && rec.PriorCurrentRatio != nil {
		usable = true
		if *rec.CurrentRatio >= *rec.PriorCurrentRatio {
			score++
		}
	}

	// Margin growth
	if rec.GrossMargin != nil && rec.PriorGrossMargin != nil {
		usable = true
		if *rec.GrossMargin > *rec.PriorGrossMargin {
			score++
		}
	}

	// Asset turnover improving
	if rec.AssetTurnover != nil && rec.PriorAssetTurnover != nil {
		usable = true
		if *rec.AssetTurnover > *rec.PriorAssetTurnover {
			score++
		}
	}

	return score, usable
}
