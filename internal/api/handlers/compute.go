package handlers

import (
	"errors"
	"net/http"

	"github.com/nordquant/screener/internal/features"
	"github.com/nordquant/screener/internal/pipeline"
	"github.com/nordquant/screener/internal/snapshot"
	"github.com/nordquant/screener/pkg/logger"
)

// ComputeHandler triggers a full ranking batch over HTTP
type ComputeHandler struct {
	service *pipeline.Service
	logger  *logger.Logger
}

// NewComputeHandler creates a compute handler
func NewComputeHandler(service *pipeline.Service, log *logger.Logger) *ComputeHandler {
	return &ComputeHandler{service: service, logger: log}
}

// Compute runs the ranking pipeline for the given calculated date.
// POST /api/compute?date=2026-01-15 (date defaults to today)
func (h *ComputeHandler) Compute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	outcomes, err := h.service.Run(ctx, date)
	if err != nil {
		switch {
		case errors.Is(err, features.ErrNoFundamentals), errors.Is(err, snapshot.ErrNoInput):
			writeError(w, http.StatusConflict, "no fundamentals for snapshot date")
		case errors.Is(err, snapshot.ErrAllUniversesEmpty):
			writeError(w, http.StatusConflict, "eligible universe empty for all strategies")
		default:
			h.logger.WithError(err).Error("Ranking batch failed")
			writeError(w, http.StatusInternalServerError, "ranking batch failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"outcomes": outcomes,
	})
}
