package features

import (
	"errors"
	"sort"
	"time"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/scoring"
	"github.com/nordquant/screener/pkg/logger"
)

// ErrNoFundamentals signals that the snapshot has no fundamentals at all.
// Callers must distinguish "nothing to rank" from "ranked zero stocks".
var ErrNoFundamentals = errors.New("no fundamentals for snapshot date")

// Builder assembles the per-ticker feature table from fundamentals plus
// the security metadata lookup. Pure transform: no row is dropped here,
// dropping is the filter pipeline's job.
type Builder struct {
	logger *logger.Logger
}

// NewBuilder creates a new feature table builder
func NewBuilder(log *logger.Logger) *Builder {
	return &Builder{logger: log}
}

// Build joins fundamentals with metadata into one row per ticker.
// Unknown columns stay nil. Rows come out sorted ascending by ticker so
// identical input always produces identical output.
func (b *Builder) Build(date time.Time, records []contracts.FundamentalRecord, meta map[string]contracts.SecurityMeta) (*contracts.FeatureTable, error) {
	if len(records) == 0 {
		return nil, ErrNoFundamentals
	}

	rows := make([]contracts.FeatureRow, 0, len(records))
	for _, rec := range records {
		row := contracts.FeatureRow{
			Ticker:    rec.Ticker,
			Sector:    rec.Sector,
			StockType: rec.StockType,
			MarketCap: rec.MarketCap,

			PE:       rec.PE,
			PB:       rec.PB,
			PS:       rec.PS,
			EVEBITDA: rec.EVEBITDA,
			PFCF:     rec.PFCF,

			ROE:    rec.ROE,
			ROA:    rec.ROA,
			ROIC:   rec.ROIC,
			FCFROE: rec.FCFROE,

			DividendYield: rec.DividendYield,
			PayoutRatio:   rec.PayoutRatio,
			FScore:        rec.FScore,

			Perf3M:  rec.Perf3M,
			Perf6M:  rec.Perf6M,
			Perf12M: rec.Perf12M,
		}

		// F-score fallback: approximate from financial deltas when the
		// feed supplies none and at least one criterion has inputs.
		if row.FScore == nil {
			if approx, ok := scoring.ApproximateFScore(rec); ok {
				row.FScore = &approx
			}
		}

		// Metadata wins for classification columns; the metadata feed is
		// fresher than the fundamentals snapshot.
		if m, ok := meta[rec.Ticker]; ok {
			row.Name = m.Name
			if m.Sector != nil {
				row.Sector = m.Sector
			}
			if m.StockType != "" {
				row.StockType = m.StockType
			}
			if m.MarketCap != nil {
				row.MarketCap = m.MarketCap
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Ticker < rows[j].Ticker
	})

	b.logger.WithFields(map[string]interface{}{
		"date": date.Format("2006-01-02"),
		"rows": len(rows),
	}).Debug("Feature table built")

	return &contracts.FeatureTable{Date: date, Rows: rows}, nil
}
