package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ErrUnknownDimension is returned by Aggregate for a dimension it cannot group by.
var ErrUnknownDimension = errors.New("unknown dimension")

// Aggregate groups the filtered deliveries by dim and returns the dimension's
// stats table. Rows come back ordered by key; display sorting is left to the caller.
func Aggregate(derived []model.DerivedDelivery, dim model.Dimension, filter model.Filter) (model.Table, error) {
	switch dim {
	case model.DimStriker:
		return model.BattingTable(Batting(derived, filter)), nil
	case model.DimBowler:
		return model.BowlingTable(Bowling(derived, filter)), nil
	case model.DimTeam:
		return model.TeamTable(Teams(derived, filter)), nil
	case model.DimVenue:
		return model.VenueTable(Venues(derived, filter)), nil
	}
	return model.Table{}, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
}

// AggregateAll computes one table per dimension in model.AllDimensions order.
func AggregateAll(derived []model.DerivedDelivery, filter model.Filter) []model.Table {
	out := make([]model.Table, 0, len(model.AllDimensions))
	for _, dim := range model.AllDimensions {
		t, _ := Aggregate(derived, dim, filter)
		out = append(out, t)
	}
	return out
}

// groups accumulates per-key values of type A while remembering every key seen.
type groups[A any] struct {
	rows  map[string]*A
	fresh func(key string) *A
}

func newGroups[A any](fresh func(key string) *A) *groups[A] {
	return &groups[A]{rows: make(map[string]*A), fresh: fresh}
}

func (g *groups[A]) get(key string) *A {
	a, ok := g.rows[key]
	if !ok {
		a = g.fresh(key)
		g.rows[key] = a
	}
	return a
}

// sorted returns the accumulators ordered by key.
func (g *groups[A]) sorted() []*A {
	keys := make([]string, 0, len(g.rows))
	for k := range g.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*A, len(keys))
	for i, k := range keys {
		out[i] = g.rows[k]
	}
	return out
}

// each calls fn for every delivery that passes filter.
func each(derived []model.DerivedDelivery, filter model.Filter, fn func(d *model.DerivedDelivery)) {
	if filter.Empty() {
		return
	}
	for i := range derived {
		d := &derived[i]
		if filter.Match(d) {
			fn(d)
		}
	}
}

// matchSet counts distinct match IDs for the Innings column.
type matchSet map[string]struct{}

func (m matchSet) add(id string) { m[id] = struct{}{} }

type battingAcc struct {
	model.BattingStats
	matches matchSet
}

// Batting groups by striker. Balls counts every delivery faced, wides included.
func Batting(derived []model.DerivedDelivery, filter model.Filter) []model.BattingStats {
	g := newGroups(func(key string) *battingAcc {
		return &battingAcc{BattingStats: model.BattingStats{Striker: key}, matches: matchSet{}}
	})
	each(derived, filter, func(d *model.DerivedDelivery) {
		a := g.get(d.Striker)
		a.matches.add(d.MatchID)
		a.Runs += d.RunsOffBat
		a.Balls++
		a.Dismissals += d.Dismissal()
		a.Dots += d.Dot()
		a.Boundaries += d.Boundary()
	})

	accs := g.sorted()
	out := make([]model.BattingStats, len(accs))
	for i, a := range accs {
		a.Innings = len(a.matches)
		out[i] = a.BattingStats
	}
	return out
}

type bowlingAcc struct {
	model.BowlingStats
	matches matchSet
}

// Bowling groups by bowler. Only bowler-credited dismissals count as wickets.
func Bowling(derived []model.DerivedDelivery, filter model.Filter) []model.BowlingStats {
	g := newGroups(func(key string) *bowlingAcc {
		return &bowlingAcc{BowlingStats: model.BowlingStats{Bowler: key}, matches: matchSet{}}
	})
	each(derived, filter, func(d *model.DerivedDelivery) {
		a := g.get(d.Bowler)
		a.matches.add(d.MatchID)
		a.Wickets += d.BowlerWicket()
		a.RunsConceded += d.RunsOffBat
		a.Extras += d.Extras
		a.BallsBowled++
		a.Dots += d.Dot()
		a.BoundariesConceded += d.Boundary()
	})

	accs := g.sorted()
	out := make([]model.BowlingStats, len(accs))
	for i, a := range accs {
		a.Innings = len(a.matches)
		out[i] = a.BowlingStats
	}
	return out
}

// Teams outer-joins runs scored (grouped by batting team) with the fielding
// figures (grouped by bowling team). A team seen in only one role still gets a
// row, zero-filled on the side it never played.
func Teams(derived []model.DerivedDelivery, filter model.Filter) []model.TeamStats {
	g := newGroups(func(key string) *model.TeamStats {
		return &model.TeamStats{Team: key}
	})
	each(derived, filter, func(d *model.DerivedDelivery) {
		g.get(d.BattingTeam).RunsScored += d.TotalRuns

		bowl := g.get(d.BowlingTeam)
		bowl.RunsConceded += d.TotalRuns
		bowl.WicketsTaken += d.Dismissal()
		bowl.BallsBowled++
		bowl.Dots += d.Dot()
		bowl.Boundaries += d.Boundary()
	})

	accs := g.sorted()
	out := make([]model.TeamStats, len(accs))
	for i, a := range accs {
		out[i] = *a
	}
	return out
}

// Venues groups by ground.
func Venues(derived []model.DerivedDelivery, filter model.Filter) []model.VenueStats {
	g := newGroups(func(key string) *model.VenueStats {
		return &model.VenueStats{Venue: key}
	})
	each(derived, filter, func(d *model.DerivedDelivery) {
		a := g.get(d.Venue)
		a.RunsScored += d.TotalRuns
		a.WicketsLost += d.Dismissal()
		a.BallsPlayed++
		a.Dots += d.Dot()
		a.Boundaries += d.Boundary()
	})

	accs := g.sorted()
	out := make([]model.VenueStats, len(accs))
	for i, a := range accs {
		out[i] = *a
	}
	return out
}
