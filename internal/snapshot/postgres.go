package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/pkg/redis"
)

// PostgresStore persists ranking snapshots in PostgreSQL with an optional
// Redis read cache. Replaces run inside one transaction and are
// additionally serialized by a store-level mutex, so two writers hitting
// the same (strategy, date) can never interleave a partial overwrite.
type PostgresStore struct {
	pool  *pgxpool.Pool
	cache *redis.Cache
	mu    sync.Mutex
}

// NewPostgresStore creates a snapshot store. cache may be nil.
func NewPostgresStore(pool *pgxpool.Pool, cache *redis.Cache) *PostgresStore {
	return &PostgresStore{pool: pool, cache: cache}
}

// Replace deletes all prior rows for (strategy, date) and inserts the
// fresh complete set. Partial or append writes are forbidden.
func (s *PostgresStore) Replace(ctx context.Context, strategy string, date time.Time, results []contracts.RankingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"DELETE FROM ranking.results WHERE strategy = $1 AND calculated_date = $2",
		strategy, date,
	)
	if err != nil {
		return fmt.Errorf("delete old snapshot: %w", err)
	}

	query := `
		INSERT INTO ranking.results (strategy, ticker, rank, score, calculated_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, r := range results {
		if _, err := tx.Exec(ctx, query, r.Strategy, r.Ticker, r.Rank, r.Score, r.CalculatedDate); err != nil {
			return fmt.Errorf("insert ranking result: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if s.cache != nil {
		key := redis.RankingKey(strategy, date.Format("2006-01-02"))
		_ = s.cache.Delete(ctx, key)
	}

	return nil
}

// GetRankings returns the snapshot for (strategy, date) ordered by rank
func (s *PostgresStore) GetRankings(ctx context.Context, strategy string, date time.Time) ([]contracts.RankingResult, error) {
	key := redis.RankingKey(strategy, date.Format("2006-01-02"))
	if s.cache != nil {
		var cached []contracts.RankingResult
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	query := `
		SELECT strategy, ticker, rank, score, calculated_date
		FROM ranking.results
		WHERE strategy = $1 AND calculated_date = $2
		ORDER BY rank ASC
	`

	rows, err := s.pool.Query(ctx, query, strategy, date)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	results := make([]contracts.RankingResult, 0)
	for rows.Next() {
		var r contracts.RankingResult
		if err := rows.Scan(&r.Strategy, &r.Ticker, &r.Rank, &r.Score, &r.CalculatedDate); err != nil {
			return nil, fmt.Errorf("scan ranking result: %w", err)
		}
		results = append(results, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rankings: %w", rows.Err())
	}

	if len(results) == 0 {
		return nil, ErrSnapshotNotFound
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, results, redis.TTLDaily)
	}

	return results, nil
}

// PreviousHoldings returns the top tickers of the latest snapshot before
// the given date, used by the banding logic.
func (s *PostgresStore) PreviousHoldings(ctx context.Context, strategy string, before time.Time, limit int) ([]string, error) {
	query := `
		SELECT ticker
		FROM ranking.results
		WHERE strategy = $1 AND calculated_date = (
			SELECT MAX(calculated_date) FROM ranking.results
			WHERE strategy = $1 AND calculated_date < $2
		)
		ORDER BY rank ASC
		LIMIT $3
	`

	rows, err := s.pool.Query(ctx, query, strategy, before, limit)
	if err != nil {
		return nil, fmt.Errorf("query previous holdings: %w", err)
	}
	defer rows.Close()

	tickers := make([]string, 0, limit)
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate previous holdings: %w", rows.Err())
	}

	return tickers, nil
}
