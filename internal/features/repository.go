package features

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nordquant/screener/internal/contracts"
)

// Repository loads the normalized fundamentals, metadata and price feeds
// from PostgreSQL. The engine never talks to external data sources; the
// ingestion service owns those tables and this repository only reads them.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new feed repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LatestFundamentals returns the fundamentals snapshot for the most
// recent snapshot date at or before the given date.
func (r *Repository) LatestFundamentals(ctx context.Context, date time.Time) ([]contracts.FundamentalRecord, error) {
	query := `
		SELECT
			ticker, snapshot_date, sector, stock_type, market_cap,
			pe, pb, ps, ev_ebitda, p_fcf,
			roe, roa, roic, fcf_roe,
			dividend_yield, payout_ratio, f_score,
			perf_3m, perf_6m, perf_12m,
			net_income, operating_cash_flow,
			leverage_ratio, prior_leverage_ratio,
			current_ratio, prior_current_ratio,
			gross_margin, prior_gross_margin,
			asset_turnover, prior_asset_turnover
		FROM data.fundamentals
		WHERE snapshot_date = (
			SELECT MAX(snapshot_date) FROM data.fundamentals WHERE snapshot_date <= $1
		)
		ORDER BY ticker
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query fundamentals: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.FundamentalRecord, 0)
	for rows.Next() {
		var rec contracts.FundamentalRecord
		var rawType *string
		err := rows.Scan(
			&rec.Ticker, &rec.Date, &rec.Sector, &rawType, &rec.MarketCap,
			&rec.PE, &rec.PB, &rec.PS, &rec.EVEBITDA, &rec.PFCF,
			&rec.ROE, &rec.ROA, &rec.ROIC, &rec.FCFROE,
			&rec.DividendYield, &rec.PayoutRatio, &rec.FScore,
			&rec.Perf3M, &rec.Perf6M, &rec.Perf12M,
			&rec.NetIncome, &rec.OperatingCashFlow,
			&rec.LeverageRatio, &rec.PriorLeverageRatio,
			&rec.CurrentRatio, &rec.PriorCurrentRatio,
			&rec.GrossMargin, &rec.PriorGrossMargin,
			&rec.AssetTurnover, &rec.PriorAssetTurnover,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fundamental record: %w", err)
		}
		if rawType != nil {
			rec.StockType = contracts.ParseStockType(*rawType)
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate fundamentals: %w", rows.Err())
	}

	return records, nil
}

// SecurityMeta returns the per-ticker metadata lookup. Market cap comes
// from the most recent row per ticker; it does not change much day to day.
func (r *Repository) SecurityMeta(ctx context.Context) (map[string]contracts.SecurityMeta, error) {
	query := `
		SELECT s.ticker, s.name, s.sector, s.stock_type, mc.market_cap
		FROM data.securities s
		LEFT JOIN LATERAL (
			SELECT market_cap FROM data.market_cap
			WHERE ticker = s.ticker
			ORDER BY trade_date DESC LIMIT 1
		) mc ON TRUE
		WHERE s.status = 'active'
		ORDER BY s.ticker
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query securities: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]contracts.SecurityMeta)
	for rows.Next() {
		var m contracts.SecurityMeta
		var rawType *string
		if err := rows.Scan(&m.Ticker, &m.Name, &m.Sector, &rawType, &m.MarketCap); err != nil {
			return nil, fmt.Errorf("scan security: %w", err)
		}
		if rawType != nil {
			m.StockType = contracts.ParseStockType(*rawType)
		}
		meta[m.Ticker] = m
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate securities: %w", rows.Err())
	}

	return meta, nil
}

// PriceHistory returns ascending close series per ticker covering the
// lookback window, used only when momentum must be derived from prices.
func (r *Repository) PriceHistory(ctx context.Context, date time.Time, lookbackDays int) (contracts.PriceSeries, error) {
	query := `
		SELECT ticker, trade_date, close, open, high, low, volume
		FROM data.daily_prices
		WHERE trade_date BETWEEN $1 AND $2
		ORDER BY ticker, trade_date
	`

	from := date.AddDate(0, 0, -lookbackDays)
	rows, err := r.pool.Query(ctx, query, from, date)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	series := make(contracts.PriceSeries)
	for rows.Next() {
		var p contracts.PricePoint
		if err := rows.Scan(&p.Ticker, &p.Date, &p.Close, &p.Open, &p.High, &p.Low, &p.Volume); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		series[p.Ticker] = append(series[p.Ticker], p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate prices: %w", rows.Err())
	}

	return series, nil
}
