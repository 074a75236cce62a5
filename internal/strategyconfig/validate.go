package strategyconfig

import (
	"fmt"
	"math"

	"github.com/nordquant/screener/internal/contracts"
)

// ValidationError marks a config constraint violation, fatal at load
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning is a non-fatal normalization note
type Warning struct {
	Strategy string
	Message  string
}

// Normalize applies defaults and drops unknown custom factors. Unknown
// factors are tolerated for forward compatibility with schema evolution;
// they are removed here, once, instead of being silently skipped at score
// time. Surviving custom weights are re-normalized to sum to 1.
func Normalize(cfg *File) []Warning {
	var warnings []Warning

	for i := range cfg.Strategies {
		s := &cfg.Strategies[i]

		// Momentum strategies carry a quality gate and banding by default
		if s.Category == CategoryMomentum {
			if s.MinFScore == nil {
				floor := DefaultMinFScore
				s.MinFScore = &floor
			}
			if !s.Banding.Enabled && s.Banding.Buffer == 0 {
				s.Banding.Enabled = true
			}
		}
		if s.Banding.Enabled && s.Banding.Buffer == 0 {
			s.Banding.Buffer = DefaultBandingBuffer
		}

		if s.Category != CategoryCustom {
			continue
		}

		kept := s.Factors[:0]
		for _, f := range s.Factors {
			if !contracts.KnownFactor(f.Factor) {
				warnings = append(warnings, Warning{
					Strategy: s.Name,
					Message:  fmt.Sprintf("unknown factor %q dropped", f.Factor),
				})
				continue
			}
			kept = append(kept, f)
		}
		s.Factors = kept

		var sum float64
		for _, f := range s.Factors {
			sum += f.Weight
		}
		if sum > 0 {
			for j := range s.Factors {
				s.Factors[j].Weight /= sum
			}
		}
	}

	return warnings
}

// Validate checks all required constraints. Run after Normalize.
func Validate(cfg *File) error {
	if len(cfg.Strategies) == 0 {
		return ValidationError{"strategies", "at least one strategy is required"}
	}

	seen := make(map[string]bool)
	for i, s := range cfg.Strategies {
		field := fmt.Sprintf("strategies[%d]", i)

		if s.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if seen[s.Name] {
			return ValidationError{field + ".name", fmt.Sprintf("duplicate strategy name %q", s.Name)}
		}
		seen[s.Name] = true

		if !s.Category.Valid() {
			return ValidationError{field + ".category", fmt.Sprintf("unknown category %q", s.Category)}
		}
		if s.PortfolioSize <= 0 {
			return ValidationError{field + ".portfolio_size", "must be > 0"}
		}
		if s.MinMarketCap < 0 {
			return ValidationError{field + ".min_market_cap", "must be >= 0"}
		}
		if s.MinFScore != nil && (*s.MinFScore < 0 || *s.MinFScore > 9) {
			return ValidationError{field + ".min_f_score", "must be in [0, 9]"}
		}
		if s.MaxPayoutRatio != nil && *s.MaxPayoutRatio <= 0 {
			return ValidationError{field + ".max_payout_ratio", "must be > 0"}
		}
		if s.Banding.Enabled && (s.Banding.Buffer <= 0 || s.Banding.Buffer >= 1) {
			return ValidationError{field + ".banding.buffer", "must be in (0, 1)"}
		}

		if s.Category == CategoryCustom {
			if len(s.Factors) == 0 {
				return ValidationError{field + ".factors", "custom strategy needs at least one known factor"}
			}
			var sum float64
			for j, f := range s.Factors {
				ff := fmt.Sprintf("%s.factors[%d]", field, j)
				if f.Weight <= 0 {
					return ValidationError{ff + ".weight", "must be > 0"}
				}
				if !f.Direction.Valid() {
					return ValidationError{ff + ".direction", "must be lower_better or higher_better"}
				}
				sum += f.Weight
			}
			if math.Abs(sum-1.0) > 1e-6 {
				return ValidationError{field + ".factors", fmt.Sprintf("weights must sum to 1.0 after normalization, got %.4f", sum)}
			}
		} else if len(s.Factors) > 0 {
			return ValidationError{field + ".factors", "only custom strategies take a factor list"}
		}
	}

	return nil
}
