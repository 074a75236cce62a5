package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nordquant/screener/internal/scheduler"
	"github.com/nordquant/screener/pkg/logger"
)

// JobsHandler exposes scheduler job history and manual triggering
type JobsHandler struct {
	sched  *scheduler.Scheduler
	logger *logger.Logger
}

// NewJobsHandler creates a jobs handler
func NewJobsHandler(sched *scheduler.Scheduler, log *logger.Logger) *JobsHandler {
	return &JobsHandler{sched: sched, logger: log}
}

// GetHistory returns the recent executions of one job.
// GET /api/jobs/{name}/history
func (h *JobsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	history, err := h.sched.History(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown job")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"results": history.Latest(20),
	})
}

// Run triggers a job immediately, outside its schedule.
// POST /api/jobs/{name}/run
func (h *JobsHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.sched.RunJob(name); err != nil {
		writeError(w, http.StatusNotFound, "unknown job")
		return
	}

	h.logger.WithField("job", name).Info("Job triggered manually")
	writeJSON(w, http.StatusAccepted, map[string]string{
		"job":    name,
		"status": "started",
	})
}
