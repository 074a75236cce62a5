package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/features"
	"github.com/nordquant/screener/internal/snapshot"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

// Calendar days of price history loaded to cover the 12-month momentum
// horizon (~252 trading days) with margin for holidays.
const priceLookbackDays = 420

// Service wires the feed repository, feature table builder and ranking
// engine into the one pipeline the scheduler, API and CLI all trigger.
type Service struct {
	feeds      *features.Repository
	builder    *features.Builder
	engine     *snapshot.Engine
	strategies []strategyconfig.Strategy
	logger     *logger.Logger
}

// NewService creates the pipeline service
func NewService(feeds *features.Repository, builder *features.Builder, engine *snapshot.Engine, strategies []strategyconfig.Strategy, log *logger.Logger) *Service {
	return &Service{
		feeds:      feeds,
		builder:    builder,
		engine:     engine,
		strategies: strategies,
		logger:     log,
	}
}

// Strategies returns the configured strategy definitions
func (s *Service) Strategies() []strategyconfig.Strategy {
	return s.strategies
}

// Run executes one full ranking cycle for the given calculated date:
// load feeds, build the feature table, compute and persist all strategy
// snapshots. Per-strategy failures land in the outcome map; only batch
// conditions (no input, all universes empty) return an error.
func (s *Service) Run(ctx context.Context, date time.Time) (map[string]contracts.Outcome, error) {
	records, err := s.feeds.LatestFundamentals(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load fundamentals: %w", err)
	}

	meta, err := s.feeds.SecurityMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("load security metadata: %w", err)
	}

	table, err := s.builder.Build(date, records, meta)
	if err != nil {
		return nil, err
	}

	// Prices are only needed when momentum inputs must be derived; a
	// missing series degrades those tickers to "momentum missing".
	prices, err := s.feeds.PriceHistory(ctx, date, priceLookbackDays)
	if err != nil {
		s.logger.WithError(err).Warn("Price history unavailable, derived momentum disabled")
		prices = contracts.PriceSeries{}
	}

	return s.engine.ComputeAll(ctx, s.strategies, table, prices, date)
}
