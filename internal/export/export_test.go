package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// threeBallReport is the A/X/Y scenario: 4 off the bat, a one-run extra, then
// a six in the death overs.
func threeBallReport(t *testing.T) dataset.Report {
	t.Helper()
	mk := func(bowler string, over float64, bat, extras int) model.Delivery {
		return model.Delivery{
			MatchID: "m1", Season: "2023", BattingTeam: "Lions", BowlingTeam: "Tigers",
			Venue: "Eden Park", Striker: "A", Bowler: bowler, Ball: over, RunsOffBat: bat, Extras: extras,
		}
	}
	ds := dataset.FromStore("d-1", "ipl.csv", []model.Delivery{
		mk("X", 0.1, 4, 0),
		mk("X", 0.2, 0, 1),
		mk("Y", 16.1, 6, 0),
	})
	r, err := ds.Stats(ds.AllFilter())
	require.NoError(t, err)
	return r
}

func TestWriteJSON_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, threeBallReport(t)))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report", buf.Bytes())
}

func TestWriteJSON_EmptySelection(t *testing.T) {
	ds := dataset.FromStore("d-1", "ipl.csv", nil)
	r, err := ds.Stats(model.NewFilter(nil, nil), model.DimStriker)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))
	out := buf.String()
	assert.Contains(t, out, `"seasons": []`)
	assert.Contains(t, out, `"rows": []`)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, threeBallReport(t)))

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	require.NoError(t, err)

	// csv.Reader skips the blank separator lines.
	require.Len(t, recs, 2+3+3+2)
	assert.Equal(t, []string{"Dimension", "Striker", "Innings", "Runs", "Balls", "Dismissals",
		"Dots", "Boundaries", "SR", "Avg", "Dot%", "BallsPerBoundary"}, recs[0])
	assert.Equal(t, []string{"striker", "A", "1", "10", "3", "0", "0", "2",
		"333.33", "10.00", "0.00", "1.50"}, recs[1])
	assert.Equal(t, "Bowler", recs[2][1])
	assert.Equal(t, []string{"venue", "Eden Park", "11", "0", "3", "0", "2", "11.00", "0.00", "1.50"}, recs[len(recs)-1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, threeBallReport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Selection", "Batting", "Bowling", "Team", "Venue"}, f.GetSheetList())

	rows, err := f.GetRows("Bowling")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Bowler", rows[0][0])
	assert.Equal(t, "X", rows[1][0])
	assert.Equal(t, "15", rows[1][9])

	sel, err := f.GetRows("Selection")
	require.NoError(t, err)
	assert.Equal(t, []string{"Seasons", "2023"}, sel[2])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, " CSV ": FormatCSV, "xlsx": FormatXLSX, "table": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("parquet")
	assert.Error(t, err)
}

func TestWriteRejectsTableFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, FormatTable, threeBallReport(t)))
}

func TestWriteRowsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRowsCSV(&buf, []string{"venue", "runs"}, [][]string{{"Lord's, London", "312"}})
	require.NoError(t, err)
	assert.Equal(t, "venue,runs\n\"Lord's, London\",312\n", buf.String())
}
