package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordquant/screener/internal/contracts"
)

func seed(strategy string, date time.Time, tickers ...string) []contracts.RankingResult {
	out := make([]contracts.RankingResult, len(tickers))
	for i, ticker := range tickers {
		out[i] = contracts.RankingResult{
			Strategy:       strategy,
			Ticker:         ticker,
			Rank:           i + 1,
			Score:          float64(len(tickers) - i),
			CalculatedDate: date,
		}
	}
	return out
}

func TestMemoryStore_ReplaceAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Replace(ctx, "alpha", date, seed("alpha", date, "A", "B", "C")))

	got, err := store.GetRankings(ctx, "alpha", date)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Ticker)
	assert.Equal(t, 1, got[0].Rank)

	// Replace swaps the whole snapshot
	require.NoError(t, store.Replace(ctx, "alpha", date, seed("alpha", date, "X")))
	got, err = store.GetRankings(ctx, "alpha", date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Ticker)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.GetRankings(ctx, "alpha", date)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	// A wrong date misses too
	require.NoError(t, store.Replace(ctx, "alpha", date, seed("alpha", date, "A")))
	_, err = store.GetRankings(ctx, "alpha", date.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryStore_PreviousHoldings(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	jan10 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	jan15 := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Replace(ctx, "alpha", jan10, seed("alpha", jan10, "OLD1", "OLD2")))
	require.NoError(t, store.Replace(ctx, "alpha", jan12, seed("alpha", jan12, "NEW1", "NEW2", "NEW3")))
	require.NoError(t, store.Replace(ctx, "beta", jan12, seed("beta", jan12, "OTHER")))

	// Latest snapshot strictly before the given date, same strategy only
	held, err := store.PreviousHoldings(ctx, "alpha", jan15, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW1", "NEW2"}, held)

	// The jan12 snapshot is not before jan12
	held, err = store.PreviousHoldings(ctx, "alpha", jan12, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"OLD1", "OLD2"}, held)

	// No prior snapshot means no holdings, not an error
	held, err = store.PreviousHoldings(ctx, "gamma", jan15, 5)
	require.NoError(t, err)
	assert.Empty(t, held)
}
