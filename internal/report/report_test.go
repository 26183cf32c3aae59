package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
)

func battingTable() model.Table {
	return model.BattingTable([]model.BattingStats{
		{Striker: "Amy", Innings: 1, Runs: 12, Balls: 10, Boundaries: 1},
		{Striker: "Bob", Innings: 2, Runs: 40, Balls: 30, Dismissals: 1, Boundaries: 4},
		{Striker: "Cat", Innings: 1, Runs: 12, Balls: 8},
	})
}

func keys(t model.Table) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Key
	}
	return out
}

func TestSortByPrimary(t *testing.T) {
	in := battingTable()
	got := SortByPrimary(in)
	assert.Equal(t, []string{"Bob", "Amy", "Cat"}, keys(got))
	// Input is left untouched.
	assert.Equal(t, []string{"Amy", "Bob", "Cat"}, keys(in))
}

func TestTop(t *testing.T) {
	got := Top(SortByPrimary(battingTable()), 2)
	assert.Equal(t, []string{"Bob", "Amy"}, keys(got))
	assert.Len(t, Top(battingTable(), 0).Rows, 3)
	assert.Len(t, Top(battingTable(), 10).Rows, 3)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "12", FormatValue(model.Column{Name: "Runs"}, 12))
	assert.Equal(t, "333.33", FormatValue(model.Column{Name: "SR", Ratio: true}, 333.33))
	assert.Equal(t, "10.00", FormatValue(model.Column{Name: "Avg", Ratio: true}, 10))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, battingTable())
	out := buf.String()

	assert.Contains(t, out, "--- Batting ---")
	assert.Contains(t, out, "STRIKER")
	assert.Contains(t, out, "BALLSPERBOUNDARY")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "133.33")
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, model.BowlingTable(nil))
	assert.Contains(t, buf.String(), "--- Bowling ---")
	assert.Contains(t, buf.String(), "no rows")
}

func TestPrintFilterSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterSummary(&buf, model.NewFilter([]string{"2024", "2023"}, []model.Phase{model.PhaseDeath, model.PhasePowerplay}))
	assert.Equal(t, "Seasons: 2023, 2024  |  Phases: Powerplay, Death Overs\n", buf.String())

	buf.Reset()
	PrintFilterSummary(&buf, model.NewFilter(nil, nil))
	assert.Equal(t, "Seasons: (none)  |  Phases: (none)\n", buf.String())
}

func TestPrintReport(t *testing.T) {
	ds := dataset.FromStore("0123456789abcdef", "ipl.csv", []model.Delivery{
		{MatchID: "m1", Season: "2023", BattingTeam: "Lions", BowlingTeam: "Tigers", Venue: "Eden Park",
			Striker: "A", Bowler: "X", Ball: 0.1, RunsOffBat: 4},
	})
	r, err := ds.Stats(ds.AllFilter())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintReport(&buf, r, 0)
	out := buf.String()
	assert.Contains(t, out, "Dataset: ipl.csv  |  ID: 01234567")
	for _, title := range []string{"Batting", "Bowling", "Team", "Venue"} {
		assert.Contains(t, out, "--- "+title+" ---")
	}
	assert.Contains(t, out, "Eden Park")
}

func TestPrintDatasets(t *testing.T) {
	var buf bytes.Buffer
	PrintDatasets(&buf, []model.DatasetInfo{
		{ID: "deadbeef-0000", Source: "ipl.csv", ImportedAt: "2025-01-01T00:00:00Z", Deliveries: 260920},
	})
	out := buf.String()
	assert.Contains(t, out, "deadbeef")
	assert.NotContains(t, out, "deadbeef-0000")
	assert.Contains(t, out, "260920")
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"venue", "matches"}, [][]string{{"Eden Gardens", "7"}, {"Wankhede", "NULL"}})
	out := buf.String()
	assert.Contains(t, out, "Eden Gardens")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")

	buf.Reset()
	PrintRows(&buf, []string{"venue"}, nil)
	assert.Equal(t, "(no rows)\n", buf.String())
}

func TestPrintSeasons(t *testing.T) {
	var buf bytes.Buffer
	PrintSeasons(&buf, []model.SeasonCount{{Season: "2023", Matches: 2, Deliveries: 480}, {Season: "2024"}})
	out := buf.String()
	assert.Contains(t, out, "240.0")
	assert.Contains(t, out, "0.0")
}
