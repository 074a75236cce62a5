package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nordquant/screener/internal/api"
	"github.com/nordquant/screener/internal/api/handlers"
	"github.com/nordquant/screener/internal/scheduler"
	"github.com/nordquant/screener/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the ranking API server",
	Long: `Starts the REST API server and the daily ranking scheduler.

Endpoints:
  GET  /health                   - Health check
  GET  /api/rankings/{strategy}  - Strategy ranking snapshot
  GET  /api/combined             - Combined multi-strategy portfolio
  POST /api/compute              - Trigger a ranking batch
  GET  /api/jobs/{name}/history  - Scheduled job history
  POST /api/jobs/{name}/run      - Trigger a job now

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewRankingsJob(a.service, a.cfg.RankingSchedule, a.log)); err != nil {
		return fmt.Errorf("register ranking job: %w", err)
	}

	rankingsHandler := handlers.NewRankingsHandler(a.store, a.combiner, a.strategies, a.log)
	computeHandler := handlers.NewComputeHandler(a.service, a.log)
	jobsHandler := handlers.NewJobsHandler(sched, a.log)

	router := api.NewRouter(rankingsHandler, computeHandler, jobsHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
