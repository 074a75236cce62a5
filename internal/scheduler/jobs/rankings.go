package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/nordquant/screener/internal/pipeline"
	"github.com/nordquant/screener/internal/snapshot"
	"github.com/nordquant/screener/pkg/logger"
)

// RankingsJob recomputes every strategy's ranking snapshot for today
type RankingsJob struct {
	service  *pipeline.Service
	schedule string
	logger   *logger.Logger
}

// NewRankingsJob creates the daily ranking job
func NewRankingsJob(service *pipeline.Service, schedule string, log *logger.Logger) *RankingsJob {
	return &RankingsJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *RankingsJob) Name() string {
	return "daily-rankings"
}

// Schedule returns the cron schedule expression
func (j *RankingsJob) Schedule() string {
	return j.schedule
}

// Run executes one full ranking batch for today's date. An empty
// universe across all strategies is logged but not retried, since
// re-running on the same inputs cannot change the outcome.
func (j *RankingsJob) Run(ctx context.Context) error {
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	outcomes, err := j.service.Run(ctx, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrAllUniversesEmpty) || errors.Is(err, snapshot.ErrNoInput) {
			j.logger.WithError(err).Warn("Ranking batch skipped, nothing to rank")
			return nil
		}
		return err
	}

	for strategy, outcome := range outcomes {
		if outcome.Failed() {
			j.logger.WithFields(map[string]interface{}{
				"strategy": strategy,
				"error":    outcome.Err,
			}).Error("Strategy ranking failed")
			continue
		}
		j.logger.WithFields(map[string]interface{}{
			"strategy": strategy,
			"ranked":   outcome.Ranked,
		}).Info("Strategy ranking stored")
	}

	return nil
}
