package contracts

import (
	"strings"
	"time"
)

// StockType classifies the instrument behind a ticker
type StockType string

const (
	StockTypeOrdinary   StockType = "ordinary-stock"
	StockTypeDepository StockType = "depository-receipt"
	StockTypePreference StockType = "preference-share"
	StockTypeFund       StockType = "fund-certificate"
)

// ParseStockType normalizes a raw stock type string, case-insensitive.
// Unknown values map to StockTypeFund so they never pass the type filter.
func ParseStockType(raw string) StockType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ordinary-stock", "ordinary", "stock", "aktie":
		return StockTypeOrdinary
	case "depository-receipt", "adr", "sdb", "depositary-receipt":
		return StockTypeDepository
	case "preference-share", "preference", "pref":
		return StockTypePreference
	default:
		return StockTypeFund
	}
}

// FundamentalRecord is one row per ticker per snapshot date, produced by
// external ingestion. Numeric fields are either a finite value or nil,
// never NaN/Inf.
type FundamentalRecord struct {
	Ticker    string
	Date      time.Time
	Sector    *string
	StockType StockType
	MarketCap *float64

	// Valuation multiples, lower is better
	PE       *float64
	PB       *float64
	PS       *float64
	EVEBITDA *float64
	PFCF     *float64

	// Profitability, higher is better
	ROE    *float64
	ROA    *float64
	ROIC   *float64
	FCFROE *float64

	// Dividend
	DividendYield *float64
	PayoutRatio   *float64

	// Piotroski-style quality score, 0-9
	FScore *int

	// Pre-computed momentum, percentage returns
	Perf3M  *float64
	Perf6M  *float64
	Perf12M *float64

	// Inputs for the F-score approximation when FScore is absent.
	// Prior* fields hold the previous period's value.
	NetIncome          *float64
	OperatingCashFlow  *float64
	LeverageRatio      *float64
	PriorLeverageRatio *float64
	CurrentRatio       *float64
	PriorCurrentRatio  *float64
	GrossMargin        *float64
	PriorGrossMargin   *float64
	AssetTurnover      *float64
	PriorAssetTurnover *float64
}

// SecurityMeta is the per-ticker metadata lookup joined into the feature
// table: display name, market cap, sector and instrument classification.
type SecurityMeta struct {
	Ticker    string
	Name      string
	Sector    *string
	StockType StockType
	MarketCap *float64
}
