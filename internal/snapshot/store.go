package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/nordquant/screener/internal/contracts"
)

// Batch-level failure conditions. Per-strategy failures are reported as
// Outcome values instead and never abort siblings.
var (
	// ErrNoInput: no feature table at all, nothing can be ranked
	ErrNoInput = errors.New("no feature table input")
	// ErrAllUniversesEmpty: every strategy filtered down to nothing; the
	// batch aborts instead of silently persisting an empty snapshot
	ErrAllUniversesEmpty = errors.New("eligible universe empty for all strategies")
	// ErrSnapshotNotFound: no ranking rows for the requested key
	ErrSnapshotNotFound = errors.New("ranking snapshot not found")
)

// Store is the single source of truth for ranking snapshots, keyed by
// (strategy, calculated_date). Replace is atomic: the prior snapshot for
// the key is deleted and the fresh complete set inserted in one step, so
// readers never observe a mixed old/new ranking set.
type Store interface {
	Replace(ctx context.Context, strategy string, date time.Time, results []contracts.RankingResult) error
	GetRankings(ctx context.Context, strategy string, date time.Time) ([]contracts.RankingResult, error)
	// PreviousHoldings returns the tickers of the most recent snapshot
	// strictly before the given date, ordered by rank, at most limit.
	PreviousHoldings(ctx context.Context, strategy string, before time.Time, limit int) ([]string, error)
}
