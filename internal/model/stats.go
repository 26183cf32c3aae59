package model

import "math"

// Round2 rounds to 2 decimal places, half to even on the scaled value.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Ratio returns num/den*scale rounded to 2 dp. A zero denominator is replaced
// by 1, so degenerate groups yield a finite number rather than NaN or Inf.
func Ratio(num, den int, scale float64) float64 {
	if den == 0 {
		den = 1
	}
	return Round2(float64(num) / float64(den) * scale)
}

// BattingStats is one striker's row.
type BattingStats struct {
	Striker    string
	Innings    int
	Runs       int
	Balls      int
	Dismissals int
	Dots       int
	Boundaries int
}

// StrikeRate is runs per 100 balls faced.
func (s *BattingStats) StrikeRate() float64 { return Ratio(s.Runs, s.Balls, 100) }

// Average is runs per dismissal; a not-out batter's average is their runs.
func (s *BattingStats) Average() float64 { return Ratio(s.Runs, s.Dismissals, 1) }

func (s *BattingStats) DotPct() float64 { return Ratio(s.Dots, s.Balls, 100) }

func (s *BattingStats) BallsPerBoundary() float64 { return Ratio(s.Balls, s.Boundaries, 1) }

// BowlingStats is one bowler's row. RunsConceded counts runs off the bat only;
// TotalRuns adds extras.
type BowlingStats struct {
	Bowler             string
	Innings            int
	Wickets            int
	RunsConceded       int
	Extras             int
	BallsBowled        int
	Dots               int
	BoundariesConceded int
}

func (s *BowlingStats) TotalRuns() int { return s.RunsConceded + s.Extras }

// Economy is runs conceded per six balls.
func (s *BowlingStats) Economy() float64 { return Ratio(s.TotalRuns(), s.BallsBowled, 6) }

func (s *BowlingStats) Average() float64 { return Ratio(s.TotalRuns(), s.Wickets, 1) }

// StrikeRate is balls bowled per wicket.
func (s *BowlingStats) StrikeRate() float64 { return Ratio(s.BallsBowled, s.Wickets, 1) }

func (s *BowlingStats) DotPct() float64 { return Ratio(s.Dots, s.BallsBowled, 100) }

func (s *BowlingStats) BallsPerBoundary() float64 {
	return Ratio(s.BallsBowled, s.BoundariesConceded, 1)
}

// TeamStats joins a team's batting output with its bowling-side figures.
// A team seen in only one role has zeros on the other side.
type TeamStats struct {
	Team         string
	RunsScored   int
	RunsConceded int
	WicketsTaken int
	BallsBowled  int
	Dots         int
	Boundaries   int
}

func (s *TeamStats) RunsPerWicket() float64 { return Ratio(s.RunsConceded, s.WicketsTaken, 1) }

func (s *TeamStats) DotPct() float64 { return Ratio(s.Dots, s.BallsBowled, 100) }

func (s *TeamStats) BallsPerBoundary() float64 { return Ratio(s.BallsBowled, s.Boundaries, 1) }

// VenueStats is one ground's row.
type VenueStats struct {
	Venue       string
	RunsScored  int
	WicketsLost int
	BallsPlayed int
	Dots        int
	Boundaries  int
}

func (s *VenueStats) RunsPerWicket() float64 { return Ratio(s.RunsScored, s.WicketsLost, 1) }

func (s *VenueStats) DotPct() float64 { return Ratio(s.Dots, s.BallsPlayed, 100) }

func (s *VenueStats) BallsPerBoundary() float64 { return Ratio(s.BallsPlayed, s.Boundaries, 1) }
