package aggregator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// ball builds a delivery with the fields most tests care about; the rest
// default to a single match in season 2023 at one venue.
func ball(striker, bowler string, over float64, bat, extras int) model.Delivery {
	return model.Delivery{
		MatchID:     "m1",
		Season:      "2023",
		BattingTeam: "Lions",
		BowlingTeam: "Tigers",
		Venue:       "Eden Park",
		Striker:     striker,
		Bowler:      bowler,
		Ball:        over,
		RunsOffBat:  bat,
		Extras:      extras,
	}
}

func wicket(d model.Delivery, kind, dismissed string) model.Delivery {
	d.WicketType = kind
	d.PlayerDismissed = dismissed
	return d
}

func allOf(seasons ...string) model.Filter {
	return model.NewFilter(seasons, model.AllPhases)
}

func TestBatting_EndToEndScenario(t *testing.T) {
	derived := features.Derive([]model.Delivery{
		ball("A", "X", 0.1, 4, 0),
		ball("A", "X", 0.2, 0, 1),
		ball("A", "Y", 16.1, 6, 0),
	})

	tbl, err := Aggregate(derived, model.DimStriker, allOf("2023"))
	require.NoError(t, err)
	row, ok := tbl.Find("A")
	require.True(t, ok)

	want := map[string]float64{
		"Innings":          1,
		"Runs":             10,
		"Balls":            3,
		"Dismissals":       0,
		"Dots":             0,
		"Boundaries":       2,
		"SR":               333.33,
		"Avg":              10.0,
		"Dot%":             0.0,
		"BallsPerBoundary": 1.5,
	}
	for col, v := range want {
		got, ok := tbl.Value(row, col)
		require.True(t, ok, col)
		assert.Equal(t, v, got, col)
	}
}

func TestBatting_NotOutAverageIsRuns(t *testing.T) {
	var in []model.Delivery
	for i := 0; i < 37; i++ {
		in = append(in, ball("B", "X", 1.1, 1, 0))
	}
	stats := Batting(features.Derive(in), allOf("2023"))
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Dismissals)
	assert.Equal(t, 37.0, stats[0].Average())
}

func TestBatting_BallsPartitionFilteredRows(t *testing.T) {
	in := []model.Delivery{
		ball("A", "X", 0.1, 1, 0),
		ball("B", "X", 0.2, 0, 0),
		ball("A", "X", 7.1, 2, 0),
		ball("C", "Y", 16.3, 4, 0),
		ball("B", "Y", 17.2, 0, 1),
	}
	in[4].Season = "2024"
	derived := features.Derive(in)

	filters := []model.Filter{
		allOf("2023", "2024"),
		allOf("2023"),
		model.NewFilter([]string{"2023", "2024"}, []model.Phase{model.PhaseDeath}),
	}
	for _, f := range filters {
		want := 0
		for i := range derived {
			if f.Match(&derived[i]) {
				want++
			}
		}
		got := 0
		for _, s := range Batting(derived, f) {
			got += s.Balls
		}
		assert.Equal(t, want, got)
	}
}

func TestBatting_InningsCountsDistinctMatches(t *testing.T) {
	a := ball("A", "X", 0.1, 1, 0)
	b := ball("A", "X", 0.2, 1, 0)
	c := ball("A", "X", 0.1, 1, 0)
	c.MatchID = "m2"
	stats := Batting(features.Derive([]model.Delivery{a, b, c}), allOf("2023"))
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Innings)
	assert.Equal(t, 3, stats[0].Balls)
}

func TestBowling_OnlyCreditedWicketsCount(t *testing.T) {
	derived := features.Derive([]model.Delivery{
		wicket(ball("A", "X", 2.1, 0, 0), "bowled", "A"),
		wicket(ball("B", "X", 2.2, 1, 0), "run out", "B"),
		ball("C", "X", 2.3, 4, 0),
		ball("C", "X", 2.4, 0, 1),
		wicket(ball("C", "X", 2.5, 0, 0), "caught and bowled", "C"),
		ball("D", "X", 2.6, 6, 0),
	})
	stats := Bowling(derived, allOf("2023"))
	require.Len(t, stats, 1)
	s := stats[0]

	assert.Equal(t, "X", s.Bowler)
	assert.Equal(t, 1, s.Innings)
	assert.Equal(t, 2, s.Wickets)
	assert.Equal(t, 11, s.RunsConceded)
	assert.Equal(t, 1, s.Extras)
	assert.Equal(t, 12, s.TotalRuns())
	assert.Equal(t, 6, s.BallsBowled)
	assert.Equal(t, 2, s.Dots)
	assert.Equal(t, 2, s.BoundariesConceded)
	assert.Equal(t, 12.0, s.Economy())
	assert.Equal(t, 6.0, s.Average())
	assert.Equal(t, 3.0, s.StrikeRate())
	assert.Equal(t, 33.33, s.DotPct())
	assert.Equal(t, 3.0, s.BallsPerBoundary())
}

func TestBowling_NoBallsNoWicketsIsFinite(t *testing.T) {
	derived := features.Derive([]model.Delivery{ball("A", "Z", 1.1, 0, 5)})
	s := Bowling(derived, allOf("2023"))[0]
	assert.Equal(t, 5.0, s.Average())
	assert.Equal(t, 1.0, s.StrikeRate())
	assert.Equal(t, 1.0, s.BallsPerBoundary())
}

func TestTeams_OuterJoinZeroFillsMissingSide(t *testing.T) {
	// Only Lions bat and only Tigers bowl in this subset.
	derived := features.Derive([]model.Delivery{
		ball("A", "X", 0.1, 4, 0),
		wicket(ball("A", "X", 0.2, 0, 0), "caught", "A"),
		ball("B", "X", 0.3, 1, 1),
	})
	stats := Teams(derived, allOf("2023"))
	require.Len(t, stats, 2)

	lions, tigers := stats[0], stats[1]
	require.Equal(t, "Lions", lions.Team)
	require.Equal(t, "Tigers", tigers.Team)

	assert.Equal(t, 6, lions.RunsScored)
	assert.Equal(t, 0, lions.RunsConceded)
	assert.Equal(t, 0, lions.WicketsTaken)
	assert.Equal(t, 0, lions.BallsBowled)
	assert.Equal(t, 0.0, lions.RunsPerWicket())
	assert.Equal(t, 0.0, lions.DotPct())
	assert.Equal(t, 0.0, lions.BallsPerBoundary())

	assert.Equal(t, 0, tigers.RunsScored)
	assert.Equal(t, 6, tigers.RunsConceded)
	assert.Equal(t, 1, tigers.WicketsTaken)
	assert.Equal(t, 3, tigers.BallsBowled)
	assert.Equal(t, 1, tigers.Dots)
	assert.Equal(t, 1, tigers.Boundaries)
	assert.Equal(t, 6.0, tigers.RunsPerWicket())
	assert.Equal(t, 33.33, tigers.DotPct())
	assert.Equal(t, 3.0, tigers.BallsPerBoundary())
}

func TestTeams_BothRolesJoined(t *testing.T) {
	first := ball("A", "X", 0.1, 2, 0)
	second := ball("X", "A", 0.1, 3, 0)
	second.BattingTeam, second.BowlingTeam = "Tigers", "Lions"
	stats := Teams(features.Derive([]model.Delivery{first, second}), allOf("2023"))
	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, 1, s.BallsBowled, s.Team)
	}
	assert.Equal(t, 2, stats[0].RunsScored)
	assert.Equal(t, 3, stats[0].RunsConceded)
}

func TestVenues(t *testing.T) {
	in := []model.Delivery{
		ball("A", "X", 0.1, 4, 0),
		wicket(ball("A", "X", 0.2, 0, 0), "run out", "A"),
		ball("B", "X", 0.3, 0, 2),
	}
	in[2].Venue = "Lord's"
	stats := Venues(features.Derive(in), allOf("2023"))
	require.Len(t, stats, 2)

	assert.Equal(t, "Eden Park", stats[0].Venue)
	assert.Equal(t, 4, stats[0].RunsScored)
	assert.Equal(t, 1, stats[0].WicketsLost)
	assert.Equal(t, 2, stats[0].BallsPlayed)
	assert.Equal(t, 50.0, stats[0].DotPct())
	assert.Equal(t, 4.0, stats[0].RunsPerWicket())
	assert.Equal(t, 2.0, stats[0].BallsPerBoundary())

	assert.Equal(t, "Lord's", stats[1].Venue)
	assert.Equal(t, 2.0, stats[1].RunsPerWicket())
}

func TestAggregate_EmptySelectionYieldsNoRows(t *testing.T) {
	derived := features.Derive([]model.Delivery{
		ball("A", "X", 0.1, 4, 0),
		ball("B", "Y", 10.1, 1, 0),
	})
	for _, f := range []model.Filter{
		model.NewFilter(nil, model.AllPhases),
		model.NewFilter([]string{"2023"}, nil),
		model.NewFilter(nil, nil),
	} {
		for _, tbl := range AggregateAll(derived, f) {
			assert.Empty(t, tbl.Rows, tbl.Dimension)
		}
	}
}

func TestAggregate_PhaseFilter(t *testing.T) {
	derived := features.Derive([]model.Delivery{
		ball("A", "X", 6.0, 1, 0),
		ball("A", "X", 6.1, 2, 0),
		ball("A", "X", 15.0, 3, 0),
		ball("A", "X", 15.1, 4, 0),
	})
	pp := Batting(derived, model.NewFilter([]string{"2023"}, []model.Phase{model.PhasePowerplay}))
	require.Len(t, pp, 1)
	assert.Equal(t, 1, pp[0].Runs)

	mid := Batting(derived, model.NewFilter([]string{"2023"}, []model.Phase{model.PhaseMiddle}))
	assert.Equal(t, 5, mid[0].Runs)

	death := Batting(derived, model.NewFilter([]string{"2023"}, []model.Phase{model.PhaseDeath}))
	assert.Equal(t, 4, death[0].Runs)
}

func TestAggregate_RowsOrderedByKey(t *testing.T) {
	derived := features.Derive([]model.Delivery{
		ball("Zed", "X", 0.1, 0, 0),
		ball("Amy", "X", 0.2, 0, 0),
		ball("Moe", "X", 0.3, 0, 0),
	})
	tbl, err := Aggregate(derived, model.DimStriker, allOf("2023"))
	require.NoError(t, err)
	keys := make([]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{"Amy", "Moe", "Zed"}, keys)
}

func TestAggregate_UnknownDimension(t *testing.T) {
	_, err := Aggregate(nil, model.Dimension("umpire"), allOf("2023"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDimension))
}
