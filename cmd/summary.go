package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate counts over every stored dataset: deliveries, matches,
seasons, venues and players, followed by a per-season breakdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Datasets == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored yet. Run 'cricmetrics import <file.csv>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Datasets      : %d\n", ov.Datasets)
	fmt.Fprintf(os.Stdout, "  Deliveries    : %d\n", ov.Deliveries)
	fmt.Fprintf(os.Stdout, "  Matches       : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Seasons       : %d\n", ov.Seasons)
	fmt.Fprintf(os.Stdout, "  Venues        : %d\n", ov.Venues)
	fmt.Fprintf(os.Stdout, "  Players seen  : %d\n", ov.Players)

	seasons, err := db.GetSeasonBreakdown()
	if err != nil {
		return fmt.Errorf("get season breakdown: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Seasons ---\n\n")
	report.PrintSeasons(os.Stdout, seasons)
	return nil
}
