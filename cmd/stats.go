package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/export"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

// stats command flags.
var (
	statsSeasons    []string
	statsPhases     []string
	statsDimensions []string
	statsFormat     string
	statsOut        string
	statsTop        int
)

var statsCmd = &cobra.Command{
	Use:   "stats <file|dataset-id-prefix>",
	Short: "Compute batting, bowling, team and venue stats",
	Long: `Compute the stats tables for a delivery file or a stored dataset.

Seasons and phases default to everything in the dataset. Pass --season none or
--phase none to select nothing (every table comes back empty).

Examples:
  cricmetrics stats all_matches.csv --season 2023 --phase death
  cricmetrics stats 3f2a --dimension bowler --format csv --out bowling.csv
  cricmetrics stats all_matches.csv --format xlsx --out ipl.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	addFilterFlags(statsCmd, &statsSeasons, &statsPhases)
	statsCmd.Flags().StringSliceVar(&statsDimensions, "dimension", nil, "striker, bowler, team or venue (repeatable; default all)")
	statsCmd.Flags().StringVar(&statsFormat, "format", "", "output format: table, json, csv, xlsx (default from config)")
	statsCmd.Flags().StringVarP(&statsOut, "out", "o", "", "write output to this file instead of stdout")
	statsCmd.Flags().IntVar(&statsTop, "top", -1, "rows per table in table output, 0 for all (default from config)")
}

// addFilterFlags registers the shared --season/--phase flags.
func addFilterFlags(c *cobra.Command, seasons, phases *[]string) {
	c.Flags().StringArrayVar(seasons, "season", nil, "season to include (repeatable; 'all' or 'none')")
	c.Flags().StringArrayVar(phases, "phase", nil, "phase to include: powerplay|pp, middle, death (repeatable; 'all' or 'none')")
}

func runStats(cmd *cobra.Command, args []string) error {
	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = statsFormat
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX && statsOut == "" {
		return fmt.Errorf("xlsx output needs --out <file.xlsx>")
	}
	top := cfg.Top
	if statsTop >= 0 {
		top = statsTop
	}

	dims, err := parseDimensions(statsDimensions)
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}
	filter, err := buildFilter(ds, statsSeasons, statsPhases)
	if err != nil {
		return err
	}
	r, err := ds.Stats(filter, dims...)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if statsOut != "" {
		f, err := os.Create(statsOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeReport(w, format, r, top); err != nil {
		return err
	}
	if statsOut != "" {
		log.Info("wrote report", "path", statsOut, "format", format)
	}
	return nil
}

// writeReport renders r as tables or hands it to the exporter. Table and file
// outputs share the display order: primary metric, highest first.
func writeReport(w io.Writer, format export.Format, r dataset.Report, top int) error {
	if format == export.FormatTable {
		report.PrintReport(w, r, top)
		return nil
	}
	sorted := r
	sorted.Tables = make([]model.Table, len(r.Tables))
	for i, t := range r.Tables {
		sorted.Tables[i] = report.SortByPrimary(t)
	}
	return export.Write(w, format, sorted)
}
