package strategyconfig

import "time"

// Category is the closed set of scorer archetypes
type Category string

const (
	CategoryMomentum Category = "momentum"
	CategoryValue    Category = "value"
	CategoryQuality  Category = "quality"
	CategoryDividend Category = "dividend"
	CategoryCustom   Category = "custom"
)

// Valid reports whether the category is one of the known archetypes
func (c Category) Valid() bool {
	switch c {
	case CategoryMomentum, CategoryValue, CategoryQuality, CategoryDividend, CategoryCustom:
		return true
	}
	return false
}

// Direction declares which end of a factor is "better" in a custom blend
type Direction string

const (
	DirectionLowerBetter  Direction = "lower_better"
	DirectionHigherBetter Direction = "higher_better"
)

// Valid reports whether the direction is recognized
func (d Direction) Valid() bool {
	return d == DirectionLowerBetter || d == DirectionHigherBetter
}

// File is the root of the YAML strategy definitions
type File struct {
	Strategies []Strategy `yaml:"strategies" json:"strategies"`

	// Warnings collected during Normalize, excluded from the config
	// hash so a dropped unknown factor does not change identity.
	Warnings []Warning `yaml:"-" json:"-"`
}

// Strategy configures one ranking strategy
type Strategy struct {
	Name               string   `yaml:"name" json:"name"`
	Category           Category `yaml:"category" json:"category"`
	PortfolioSize      int      `yaml:"portfolio_size" json:"portfolio_size"`
	RebalanceFrequency string   `yaml:"rebalance_frequency,omitempty" json:"rebalance_frequency,omitempty"` // metadata only

	// Universe filters
	MinMarketCap          float64 `yaml:"min_market_cap,omitempty" json:"min_market_cap,omitempty"`
	MinFScore             *int    `yaml:"min_f_score,omitempty" json:"min_f_score,omitempty"`
	AllowPreferenceShares bool    `yaml:"allow_preference_shares,omitempty" json:"allow_preference_shares,omitempty"`

	// Dividend sustainability gate, fraction (e.g. 1.0 = 100% payout)
	MaxPayoutRatio *float64 `yaml:"max_payout_ratio,omitempty" json:"max_payout_ratio,omitempty"`

	// Turnover-reducing hysteresis
	Banding Banding `yaml:"banding,omitempty" json:"banding,omitempty"`

	// Custom blends only
	Factors []FactorWeight `yaml:"factors,omitempty" json:"factors,omitempty"`
}

// Banding configures rank hysteresis for turnover-sensitive strategies
type Banding struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Buffer  float64 `yaml:"buffer,omitempty" json:"buffer,omitempty"` // fraction of the eligible universe
}

// FactorWeight is one {factor, weight, direction} entry of a custom blend
type FactorWeight struct {
	Factor    string    `yaml:"factor" json:"factor"`
	Weight    float64   `yaml:"weight" json:"weight"`
	Direction Direction `yaml:"direction" json:"direction"`
}

// Defaults applied during Normalize
const (
	DefaultMinFScore     = 5
	DefaultBandingBuffer = 0.20
)

// DecisionSnapshot records the exact configuration a ranking run used,
// for reproducibility audits.
type DecisionSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	Strategies []string  `json:"strategies"`
	CreatedAt  time.Time `json:"created_at"`
}
