package snapshot

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nordquant/screener/internal/contracts"
)

// MemoryStore is an in-memory Store used by tests and by the combine CLI
// when it operates on freshly computed, unpersisted rankings. It honors
// the same atomic replace contract as the Postgres store.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]contracts.RankingResult // key: strategy|date
}

// NewMemoryStore creates an empty in-memory snapshot store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]contracts.RankingResult)}
}

func snapshotKey(strategy string, date time.Time) string {
	return strategy + "|" + date.Format("2006-01-02")
}

// Replace swaps the complete snapshot for (strategy, date)
func (s *MemoryStore) Replace(_ context.Context, strategy string, date time.Time, results []contracts.RankingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]contracts.RankingResult, len(results))
	copy(copied, results)
	s.snapshots[snapshotKey(strategy, date)] = copied
	return nil
}

// GetRankings returns the snapshot for (strategy, date) ordered by rank
func (s *MemoryStore) GetRankings(_ context.Context, strategy string, date time.Time) ([]contracts.RankingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results, ok := s.snapshots[snapshotKey(strategy, date)]
	if !ok || len(results) == 0 {
		return nil, ErrSnapshotNotFound
	}

	out := make([]contracts.RankingResult, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

// PreviousHoldings returns the top tickers of the latest snapshot before
// the given date.
func (s *MemoryStore) PreviousHoldings(_ context.Context, strategy string, before time.Time, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest time.Time
	var latestResults []contracts.RankingResult
	for key, results := range s.snapshots {
		if len(results) == 0 || results[0].Strategy != strategy {
			continue
		}
		date, err := time.Parse("2006-01-02", key[len(strategy)+1:])
		if err != nil || !date.Before(before) {
			continue
		}
		if date.After(latest) {
			latest = date
			latestResults = results
		}
	}

	if latestResults == nil {
		return []string{}, nil
	}

	sorted := make([]contracts.RankingResult, len(latestResults))
	copy(sorted, latestResults)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	if limit > len(sorted) {
		limit = len(sorted)
	}
	tickers := make([]string, 0, limit)
	for _, r := range sorted[:limit] {
		tickers = append(tickers, r.Ticker)
	}
	return tickers, nil
}
