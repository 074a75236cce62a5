package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nordquant/screener/internal/contracts"
	"github.com/nordquant/screener/internal/snapshot"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Print the combined multi-strategy portfolio",
	Long: `Merges every configured strategy's ranking snapshot for the
given date into one weighted portfolio and prints it.

Example:
  go run ./cmd/screener combine --date 2026-01-15`,
	RunE: runCombine,
}

var combineDate string

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVar(&combineDate, "date", "", "snapshot date YYYY-MM-DD (default today)")
}

func runCombine(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(combineDate)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := make(map[string][]contracts.RankingResult, len(a.strategies))
	missing := make([]string, 0)
	for _, s := range a.strategies {
		ranked, err := a.store.GetRankings(ctx, s.Name, date)
		if err != nil {
			if errors.Is(err, snapshot.ErrSnapshotNotFound) {
				results[s.Name] = nil
				missing = append(missing, s.Name)
				continue
			}
			return fmt.Errorf("read rankings for %s: %w", s.Name, err)
		}
		results[s.Name] = ranked
	}

	holdings, err := a.combiner.Combine(results, nil)
	if err != nil {
		return fmt.Errorf("combine strategies: %w", err)
	}

	fmt.Printf("Combined portfolio for %s (%d holdings)\n", date.Format("2006-01-02"), len(holdings))
	if len(missing) > 0 {
		fmt.Printf("  missing snapshots: %s\n", strings.Join(missing, ", "))
	}
	fmt.Printf("  %-12s %8s  %s\n", "TICKER", "WEIGHT", "STRATEGIES")
	for _, h := range holdings {
		fmt.Printf("  %-12s %7.2f%%  %s\n", h.Ticker, h.Weight*100, strings.Join(h.Strategies, ","))
	}

	return nil
}
