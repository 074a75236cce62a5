package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nordquant/screener/internal/combine"
	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/snapshot"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/logger"
)

// RankingsHandler serves the ranking snapshot read path
type RankingsHandler struct {
	store      snapshot.Store
	combiner   *combine.Combiner
	strategies []strategyconfig.Strategy
	logger     *logger.Logger
}

// NewRankingsHandler creates a rankings handler
func NewRankingsHandler(store snapshot.Store, combiner *combine.Combiner, strategies []strategyconfig.Strategy, log *logger.Logger) *RankingsHandler {
	return &RankingsHandler{
		store:      store,
		combiner:   combiner,
		strategies: strategies,
		logger:     log,
	}
}

// GetRankings returns one strategy's snapshot ordered by rank.
// GET /api/rankings/{strategy}?date=2026-01-15 (date defaults to today)
func (h *RankingsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	strategy := mux.Vars(r)["strategy"]

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	results, err := h.store.GetRankings(ctx, strategy, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "no ranking snapshot for strategy and date")
			return
		}
		h.logger.WithError(err).Error("Failed to read ranking snapshot")
		writeError(w, http.StatusInternalServerError, "failed to read rankings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"date":     date.Format("2006-01-02"),
		"count":    len(results),
		"rankings": results,
	})
}

// GetCombined merges every configured strategy's snapshot for the date
// into one weighted portfolio. Strategies without a snapshot contribute
// zero weight; they are listed under "missing" so the caller can tell
// stale from empty.
// GET /api/combined?date=2026-01-15
func (h *RankingsHandler) GetCombined(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	results := make(map[string][]contracts.RankingResult, len(h.strategies))
	missing := make([]string, 0)
	for _, s := range h.strategies {
		ranked, err := h.store.GetRankings(ctx, s.Name, date)
		if err != nil {
			if errors.Is(err, snapshot.ErrSnapshotNotFound) {
				results[s.Name] = nil
				missing = append(missing, s.Name)
				continue
			}
			h.logger.WithError(err).Error("Failed to read ranking snapshot")
			writeError(w, http.StatusInternalServerError, "failed to read rankings")
			return
		}
		results[s.Name] = ranked
	}

	holdings, err := h.combiner.Combine(results, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to combine strategies")
		writeError(w, http.StatusInternalServerError, "failed to combine strategies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"missing":  missing,
		"holdings": holdings,
	})
}

// parseDate parses YYYY-MM-DD, defaulting to today's UTC date
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

// writeJSON writes a JSON response with status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
