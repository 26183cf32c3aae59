package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/export"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var sqlCSV bool

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the dataset database",
	Long: `Run an arbitrary SQL query against the dataset database and print results as a table.

Schema overview:
  datasets(id, source, hash, imported_at, deliveries)
  deliveries(dataset_id, seq, match_id, season, batting_team, bowling_team, venue,
    striker, bowler, ball REAL, runs_off_bat, extras, wicket_type, player_dismissed)

Note: season is stored as TEXT ("2007/08", "2023"). Quote it: WHERE season = '2023'

Example:
  cricmetrics sql "SELECT venue, COUNT(DISTINCT match_id) FROM deliveries GROUP BY venue"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().BoolVar(&sqlCSV, "csv", false, "print the result set as CSV")
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	log.Debug("sql", "columns", len(cols), "rows", len(rows))

	out := cmd.OutOrStdout()
	if sqlCSV {
		return export.WriteRowsCSV(out, cols, rows)
	}
	report.PrintRows(out, cols, rows)
	return nil
}
