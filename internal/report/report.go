package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// FormatValue renders a cell: counts as integers, ratios with two decimals.
func FormatValue(c model.Column, v float64) string {
	if c.Ratio {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatInt(int64(v), 10)
}

// SortByPrimary returns a copy of t with rows ordered by the primary metric,
// highest first. Ties keep key order.
func SortByPrimary(t model.Table) model.Table {
	idx := t.ColumnIndex(t.Primary)
	rows := append([]model.Row(nil), t.Rows...)
	if idx >= 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Values[idx], rows[j].Values[idx]
			if a != b {
				return a > b
			}
			return rows[i].Key < rows[j].Key
		})
	}
	t.Rows = rows
	return t
}

// Top truncates t to its first n rows. n <= 0 keeps every row.
func Top(t model.Table, n int) model.Table {
	if n > 0 && len(t.Rows) > n {
		t.Rows = t.Rows[:n]
	}
	return t
}

// PrintFilterSummary prints the active season and phase selection.
func PrintFilterSummary(w io.Writer, f model.Filter) {
	seasons := f.SeasonList()
	phases := f.PhaseList()

	seasonStr := "(none)"
	if len(seasons) > 0 {
		seasonStr = strings.Join(seasons, ", ")
	}
	phaseStr := "(none)"
	if len(phases) > 0 {
		names := make([]string, len(phases))
		for i, p := range phases {
			names[i] = p.String()
		}
		phaseStr = strings.Join(names, ", ")
	}
	fmt.Fprintf(w, "Seasons: %s  |  Phases: %s\n", seasonStr, phaseStr)
}

// PrintTable renders one stats table under its dimension title.
func PrintTable(w io.Writer, t model.Table) {
	fmt.Fprintf(w, "\n--- %s ---\n\n", t.Dimension.Title())
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(no rows for the current selection)")
		return
	}

	table := newTable(w)
	header := make([]any, 0, len(t.Columns)+1)
	header = append(header, strings.ToUpper(t.KeyColumn))
	for _, c := range t.Columns {
		header = append(header, strings.ToUpper(c.Name))
	}
	table.Header(header...)

	for _, r := range t.Rows {
		cells := make([]any, 0, len(r.Values)+1)
		cells = append(cells, r.Key)
		for i, v := range r.Values {
			cells = append(cells, FormatValue(t.Columns[i], v))
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintReport prints the source header, the filter and every table, each
// sorted by its primary metric and cut to top rows when top > 0.
func PrintReport(w io.Writer, r dataset.Report, top int) {
	fmt.Fprintf(w, "\nDataset: %s  |  ID: %s\n", r.Source, shortID(r.DatasetID))
	PrintFilterSummary(w, r.Filter)
	for _, t := range r.Tables {
		PrintTable(w, Top(SortByPrimary(t), top))
	}
}

// PrintDatasets lists stored datasets.
func PrintDatasets(w io.Writer, list []model.DatasetInfo) {
	table := newTable(w)
	table.Header("ID", "SOURCE", "IMPORTED", "DELIVERIES")
	for _, d := range list {
		table.Append(shortID(d.ID), d.Source, d.ImportedAt, strconv.Itoa(d.Deliveries))
	}
	table.Render()
}

// PrintSeasons renders the per-season breakdown of the summary command.
func PrintSeasons(w io.Writer, seasons []model.SeasonCount) {
	table := newTable(w)
	table.Header("SEASON", "MATCHES", "DELIVERIES", "BALLS/MATCH")
	for _, s := range seasons {
		perMatch := 0.0
		if s.Matches > 0 {
			perMatch = float64(s.Deliveries) / float64(s.Matches)
		}
		table.Append(s.Season, strconv.Itoa(s.Matches), strconv.Itoa(s.Deliveries), fmt.Sprintf("%.1f", perMatch))
	}
	table.Render()
}

// PrintRows renders an ad-hoc result set, such as a raw SQL query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
