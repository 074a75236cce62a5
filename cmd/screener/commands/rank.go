package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Run one ranking batch",
	Long: `Computes and persists ranking snapshots for every configured
strategy on the given date.

Example:
  go run ./cmd/screener rank
  go run ./cmd/screener rank --date 2026-01-15`,
	RunE: runRank,
}

var rankDate string

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankDate, "date", "", "snapshot date YYYY-MM-DD (default today)")
}

func runRank(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(rankDate)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	outcomes, err := a.service.Run(ctx, date)
	if err != nil {
		return fmt.Errorf("ranking batch: %w", err)
	}

	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Ranking batch for %s\n", date.Format("2006-01-02"))
	for _, name := range names {
		outcome := outcomes[name]
		if outcome.Failed() {
			fmt.Printf("  %-20s FAILED: %s\n", name, outcome.Err)
			continue
		}
		fmt.Printf("  %-20s %d ranked\n", name, outcome.Ranked)
	}

	return nil
}

// resolveDate parses YYYY-MM-DD, defaulting to today's UTC date
func resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return date, nil
}
