package filters

import (
	"strings"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

// Exclusion reason labels, also used as per-reason counters
const (
	ReasonStockType         = "stock_type"
	ReasonFinancialSector   = "financial_sector"
	ReasonInvestmentCompany = "investment_company"
	ReasonPrefTicker        = "pref_ticker"
	ReasonMarketCap         = "market_cap"
	ReasonFScore            = "f_score"
	ReasonPayoutRatio       = "payout_ratio"
)

// financialSectors is the closed list of finance-like sector names that
// are never rankable, compared case-insensitively.
var financialSectors = map[string]bool{
	"banks":                true,
	"banking":              true,
	"insurance":            true,
	"insurers":             true,
	"investment & holding": true,
	"investment companies": true,
	"holding companies":    true,
	"asset management":     true,
	"asset managers":       true,
	"consumer credit":      true,
}

// investmentNameMarkers flags holding/investment vehicles by display name,
// catching entities the sector feed mis-tagged.
var investmentNameMarkers = []string{"investment ab", "invest ab"}

// Config holds the per-strategy filter thresholds
type Config struct {
	AllowPreferenceShares bool
	MinMarketCap          float64
	MinFScore             *int
	MaxPayoutRatio        *float64
}

// FromStrategy derives the filter config from a strategy definition
func FromStrategy(s strategyconfig.Strategy) Config {
	return Config{
		AllowPreferenceShares: s.AllowPreferenceShares,
		MinMarketCap:          s.MinMarketCap,
		MinFScore:             s.MinFScore,
		MaxPayoutRatio:        s.MaxPayoutRatio,
	}
}

// Result is the outcome of one pipeline run: the eligible universe plus
// excluded tickers with their reason and per-reason counts for audit.
type Result struct {
	Eligible []contracts.FeatureRow
	Excluded map[string]string
	Reasons  map[string]int
}

// Pipeline applies the ordered exclusion predicates to a feature table.
// Every predicate is a pure mask over the same row set; the fixed order
// exists for auditability, with the cheap classification checks before
// the quality gate.
type Pipeline struct {
	config Config
	logger *logger.Logger
}

// New creates a filter pipeline for one strategy's thresholds
func New(config Config, log *logger.Logger) *Pipeline {
	return &Pipeline{config: config, logger: log}
}

// Apply shrinks the feature table to the eligible universe
func (p *Pipeline) Apply(table *contracts.FeatureTable) *Result {
	result := &Result{
		Eligible: make([]contracts.FeatureRow, 0, len(table.Rows)),
		Excluded: make(map[string]string),
		Reasons:  make(map[string]int),
	}

	for _, row := range table.Rows {
		reason := p.checkExclusion(row)
		if reason != "" {
			result.Excluded[row.Ticker] = reason
			result.Reasons[reason]++
			continue
		}
		result.Eligible = append(result.Eligible, row)
	}

	p.logger.WithFields(map[string]interface{}{
		"input":    len(table.Rows),
		"eligible": len(result.Eligible),
		"excluded": result.Reasons,
	}).Debug("Filter pipeline applied")

	return result
}

// checkExclusion returns the first matching exclusion reason, or "" when
// the row passes every filter. Checked in the documented fixed order.
func (p *Pipeline) checkExclusion(row contracts.FeatureRow) string {
	// 1. Stock type: only ordinary stocks and depository receipts, unless
	// the strategy opted into preference shares.
	switch row.StockType {
	case contracts.StockTypeOrdinary, contracts.StockTypeDepository:
	case contracts.StockTypePreference:
		if !p.config.AllowPreferenceShares {
			return ReasonStockType
		}
	default:
		return ReasonStockType
	}

	// 2. Financial sector closed list. Missing sector is not excluded.
	if row.Sector != nil {
		if financialSectors[strings.ToLower(strings.TrimSpace(*row.Sector))] {
			return ReasonFinancialSector
		}
	}

	// 3. Investment-company name heuristic, independent of sector tags
	if isInvestmentCompany(row.Name) {
		return ReasonInvestmentCompany
	}

	// 4. Preference-share ticker marker, for rows the type feed missed
	if !p.config.AllowPreferenceShares && strings.Contains(strings.ToUpper(row.Ticker), "PREF") {
		return ReasonPrefTicker
	}

	// 5. Minimum market-cap floor. A row of unknown size cannot clear a
	// configured floor.
	if p.config.MinMarketCap > 0 {
		if row.MarketCap == nil || *row.MarketCap < p.config.MinMarketCap {
			return ReasonMarketCap
		}
	}

	// 6. Quality gate. Missing f_score fails the gate, it does not pass.
	if p.config.MinFScore != nil {
		if row.FScore == nil || *row.FScore < *p.config.MinFScore {
			return ReasonFScore
		}
	}

	// 7. Payout-ratio sanity gate for dividend strategies. Missing payout
	// passes; this is a sustainability check, not a data requirement.
	if p.config.MaxPayoutRatio != nil && row.PayoutRatio != nil {
		if *row.PayoutRatio > *p.config.MaxPayoutRatio {
			return ReasonPayoutRatio
		}
	}

	return ""
}

// isInvestmentCompany matches display names of holding/investment vehicles
func isInvestmentCompany(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, marker := range investmentNameMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return strings.HasSuffix(lower, "capital ab")
}
