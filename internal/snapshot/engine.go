package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/filters"
	"github.com/nordquant/screener/internal/ranking"
	"github.com/nordquant/screener/internal/scoring"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

// errUniverseEmpty marks a single strategy whose filters removed every
// candidate. Siblings proceed; only the all-empty case aborts the batch.
var errUniverseEmpty = errors.New("eligible universe is empty")

// Engine runs the full ranking pipeline for a set of strategies against
// one immutable feature table and commits the results through the
// snapshot store. Single-pass batch computation; strategies are isolated
// from each other's failures.
type Engine struct {
	store  Store
	ranker *ranking.Ranker
	logger *logger.Logger
}

// NewEngine creates a ranking engine on top of a snapshot store
func NewEngine(store Store, log *logger.Logger) *Engine {
	return &Engine{
		store:  store,
		ranker: ranking.NewRanker(log),
		logger: log,
	}
}

// ComputeAll is the batch entry point: filter, score, rank and persist
// one snapshot per strategy for the given calculated date. The returned
// map holds one Outcome per strategy. Computation happens fully in memory
// before any write, so an all-empty batch aborts without touching the
// store and a prior snapshot stays intact when its recomputation fails.
func (e *Engine) ComputeAll(ctx context.Context, strategies []strategyconfig.Strategy, table *contracts.FeatureTable, prices contracts.PriceSeries, date time.Time) (map[string]contracts.Outcome, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrNoInput
	}

	outcomes := make(map[string]contracts.Outcome, len(strategies))
	computed := make(map[string][]contracts.RankingResult, len(strategies))
	emptyUniverses := 0

	for _, s := range strategies {
		results, err := e.computeStrategy(ctx, s, table, prices, date)
		if err != nil {
			if errors.Is(err, errUniverseEmpty) {
				emptyUniverses++
			}
			e.logger.WithError(err).WithField("strategy", s.Name).Warn("Strategy computation failed")
			outcomes[s.Name] = contracts.Outcome{Err: err.Error()}
			continue
		}
		computed[s.Name] = results
	}

	if emptyUniverses == len(strategies) {
		return nil, ErrAllUniversesEmpty
	}

	for _, s := range strategies {
		results, ok := computed[s.Name]
		if !ok {
			continue
		}
		if err := e.store.Replace(ctx, s.Name, date, results); err != nil {
			e.logger.WithError(err).WithField("strategy", s.Name).Error("Snapshot write failed")
			outcomes[s.Name] = contracts.Outcome{Err: fmt.Sprintf("snapshot write: %v", err)}
			continue
		}
		outcomes[s.Name] = contracts.Outcome{Ranked: len(results)}
	}

	e.logger.WithFields(map[string]interface{}{
		"date":       date.Format("2006-01-02"),
		"strategies": len(strategies),
		"outcomes":   outcomes,
	}).Info("Ranking batch computed")

	return outcomes, nil
}

// computeStrategy runs filter -> score -> rank -> band for one strategy.
// A panic inside a scorer is caught and recorded as that strategy's
// failure without aborting siblings.
func (e *Engine) computeStrategy(ctx context.Context, s strategyconfig.Strategy, table *contracts.FeatureTable, prices contracts.PriceSeries, date time.Time) (results []contracts.RankingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy panicked: %v", r)
		}
	}()

	pipeline := filters.New(filters.FromStrategy(s), e.logger)
	filtered := pipeline.Apply(table)
	if len(filtered.Eligible) == 0 {
		return nil, errUniverseEmpty
	}

	scorer, err := scoring.ForStrategy(s, prices, e.logger)
	if err != nil {
		return nil, err
	}

	scores, err := scorer.Score(filtered.Eligible)
	if err != nil {
		return nil, fmt.Errorf("score universe: %w", err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("no scorable tickers in eligible universe")
	}

	ordered := e.ranker.Rank(s.Name, date, scores, scorer.Order())

	var prevHeld []string
	buffer := 0.0
	if s.Banding.Enabled {
		buffer = s.Banding.Buffer
		prevHeld, err = e.store.PreviousHoldings(ctx, s.Name, date, s.PortfolioSize)
		if err != nil {
			return nil, fmt.Errorf("load previous holdings: %w", err)
		}
	}

	return ranking.Select(ordered, prevHeld, s.PortfolioSize, buffer), nil
}
