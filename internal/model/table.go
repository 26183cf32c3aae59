package model

import (
	"fmt"
	"strings"
)

// Dimension selects the grouping key and the metric set of a stats table.
type Dimension string

const (
	DimStriker Dimension = "striker"
	DimBowler  Dimension = "bowler"
	DimTeam    Dimension = "team"
	DimVenue   Dimension = "venue"
)

// AllDimensions lists the dimensions in display order.
var AllDimensions = []Dimension{DimStriker, DimBowler, DimTeam, DimVenue}

func (d Dimension) String() string { return string(d) }

// Title is the tab label used when rendering.
func (d Dimension) Title() string {
	switch d {
	case DimStriker:
		return "Batting"
	case DimBowler:
		return "Bowling"
	case DimTeam:
		return "Team"
	case DimVenue:
		return "Venue"
	default:
		return string(d)
	}
}

// ParseDimension accepts the dimension name or its tab label.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "striker", "batter", "batting":
		return DimStriker, nil
	case "bowler", "bowling":
		return DimBowler, nil
	case "team":
		return DimTeam, nil
	case "venue":
		return DimVenue, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Column describes one numeric output column. Ratio columns carry 2 dp.
type Column struct {
	Name  string
	Ratio bool
}

func count(name string) Column { return Column{Name: name} }
func ratio(name string) Column { return Column{Name: name, Ratio: true} }

// Column sets per dimension, in output order. Names are part of the output contract.
var (
	BattingColumns = []Column{
		count("Innings"), count("Runs"), count("Balls"), count("Dismissals"),
		count("Dots"), count("Boundaries"),
		ratio("SR"), ratio("Avg"), ratio("Dot%"), ratio("BallsPerBoundary"),
	}
	BowlingColumns = []Column{
		count("Innings"), count("Wickets"), count("RunsConceded"), count("Extras"),
		count("BallsBowled"), count("Dots"), count("BoundariesConceded"), count("TotalRuns"),
		ratio("Economy"), ratio("Avg"), ratio("SR"), ratio("Dot%"), ratio("BallsPerBoundary"),
	}
	TeamColumns = []Column{
		count("RunsScored"), count("RunsConceded"), count("WicketsTaken"),
		count("BallsBowled"), count("Dots"), count("Boundaries"),
		ratio("RunsPerWicket"), ratio("Dot%"), ratio("BallsPerBoundary"),
	}
	VenueColumns = []Column{
		count("RunsScored"), count("WicketsLost"), count("BallsPlayed"),
		count("Dots"), count("Boundaries"),
		ratio("RunsPerWicket"), ratio("Dot%"), ratio("BallsPerBoundary"),
	}
)

// Row is one group: its key and one value per table column.
type Row struct {
	Key    string
	Values []float64
}

// Table is the dimension-agnostic form of a stats table, used by renderers
// and exporters.
type Table struct {
	Dimension Dimension
	KeyColumn string
	Columns   []Column
	Rows      []Row

	// Primary is the column the display sorts by, descending.
	Primary string
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Value looks up a row's value by column name.
func (t *Table) Value(r Row, name string) (float64, bool) {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(r.Values) {
		return 0, false
	}
	return r.Values[i], true
}

// Find returns the row with the given key.
func (t *Table) Find(key string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// BattingTable converts typed rows into a Table.
func BattingTable(stats []BattingStats) Table {
	t := Table{Dimension: DimStriker, KeyColumn: "Striker", Columns: BattingColumns, Primary: "Runs"}
	t.Rows = make([]Row, 0, len(stats))
	for i := range stats {
		s := &stats[i]
		t.Rows = append(t.Rows, Row{Key: s.Striker, Values: []float64{
			float64(s.Innings), float64(s.Runs), float64(s.Balls), float64(s.Dismissals),
			float64(s.Dots), float64(s.Boundaries),
			s.StrikeRate(), s.Average(), s.DotPct(), s.BallsPerBoundary(),
		}})
	}
	return t
}

// BowlingTable converts typed rows into a Table.
func BowlingTable(stats []BowlingStats) Table {
	t := Table{Dimension: DimBowler, KeyColumn: "Bowler", Columns: BowlingColumns, Primary: "Wickets"}
	t.Rows = make([]Row, 0, len(stats))
	for i := range stats {
		s := &stats[i]
		t.Rows = append(t.Rows, Row{Key: s.Bowler, Values: []float64{
			float64(s.Innings), float64(s.Wickets), float64(s.RunsConceded), float64(s.Extras),
			float64(s.BallsBowled), float64(s.Dots), float64(s.BoundariesConceded), float64(s.TotalRuns()),
			s.Economy(), s.Average(), s.StrikeRate(), s.DotPct(), s.BallsPerBoundary(),
		}})
	}
	return t
}

// TeamTable converts typed rows into a Table.
func TeamTable(stats []TeamStats) Table {
	t := Table{Dimension: DimTeam, KeyColumn: "Team", Columns: TeamColumns, Primary: "RunsScored"}
	t.Rows = make([]Row, 0, len(stats))
	for i := range stats {
		s := &stats[i]
		t.Rows = append(t.Rows, Row{Key: s.Team, Values: []float64{
			float64(s.RunsScored), float64(s.RunsConceded), float64(s.WicketsTaken),
			float64(s.BallsBowled), float64(s.Dots), float64(s.Boundaries),
			s.RunsPerWicket(), s.DotPct(), s.BallsPerBoundary(),
		}})
	}
	return t
}

// VenueTable converts typed rows into a Table.
func VenueTable(stats []VenueStats) Table {
	t := Table{Dimension: DimVenue, KeyColumn: "Venue", Columns: VenueColumns, Primary: "RunsScored"}
	t.Rows = make([]Row, 0, len(stats))
	for i := range stats {
		s := &stats[i]
		t.Rows = append(t.Rows, Row{Key: s.Venue, Values: []float64{
			float64(s.RunsScored), float64(s.WicketsLost), float64(s.BallsPlayed),
			float64(s.Dots), float64(s.Boundaries),
			s.RunsPerWicket(), s.DotPct(), s.BallsPerBoundary(),
		}})
	}
	return t
}
