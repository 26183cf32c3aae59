package dataset

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/model"
)

func deliveries() []model.Delivery {
	mk := func(season, striker string, over float64, bat int) model.Delivery {
		return model.Delivery{
			MatchID: "m-" + season, Season: season,
			BattingTeam: "Lions", BowlingTeam: "Tigers", Venue: "Eden Park",
			Striker: striker, Bowler: "X", Ball: over, RunsOffBat: bat,
		}
	}
	return []model.Delivery{
		mk("2024", "A", 0.1, 4),
		mk("2023", "A", 0.2, 0),
		mk("2024", "B", 16.1, 6),
		mk("2023", "B", 7.3, 1),
	}
}

func TestNewAssignsUUID(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	_, err := uuid.Parse(ds.ID)
	require.NoError(t, err)
	assert.NotEqual(t, ds.ID, New("ipl.csv", nil).ID)
}

func TestSeasonsSortedAndDistinct(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	assert.Equal(t, []string{"2023", "2024"}, ds.Seasons())

	// The returned slice is a copy.
	s := ds.Seasons()
	s[0] = "mutated"
	assert.Equal(t, "2023", ds.Seasons()[0])
}

func TestDerivedIsMemoized(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	a := ds.Derived()
	b := ds.Derived()
	require.Len(t, a, 4)
	assert.Same(t, &a[0], &b[0])
	assert.Equal(t, model.PhaseDeath, a[2].Phase)
}

func TestStatsAllFilterComputesFourTables(t *testing.T) {
	ds := FromStore("d-1", "ipl.csv", deliveries())
	r, err := ds.Stats(ds.AllFilter())
	require.NoError(t, err)
	require.Len(t, r.Tables, 4)
	assert.Equal(t, "d-1", r.DatasetID)

	bat, ok := r.Table(model.DimStriker)
	require.True(t, ok)
	row, ok := bat.Find("B")
	require.True(t, ok)
	runs, _ := bat.Value(row, "Runs")
	assert.Equal(t, 7.0, runs)
}

func TestStatsSubsetAndFilter(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	r, err := ds.Stats(model.NewFilter([]string{"2024"}, model.AllPhases), model.DimStriker)
	require.NoError(t, err)
	require.Len(t, r.Tables, 1)

	_, ok := r.Table(model.DimBowler)
	assert.False(t, ok)

	bat := r.Tables[0]
	row, _ := bat.Find("B")
	runs, _ := bat.Value(row, "Runs")
	assert.Equal(t, 6.0, runs)
}

func TestStatsEmptySelection(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	r, err := ds.Stats(model.NewFilter(nil, model.AllPhases))
	require.NoError(t, err)
	for _, tbl := range r.Tables {
		assert.Empty(t, tbl.Rows)
	}
}

func TestStatsUnknownDimension(t *testing.T) {
	ds := New("ipl.csv", deliveries())
	_, err := ds.Stats(ds.AllFilter(), model.Dimension("umpire"))
	assert.True(t, errors.Is(err, aggregator.ErrUnknownDimension))
}
