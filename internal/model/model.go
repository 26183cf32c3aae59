package model

import (
	"fmt"
	"strings"
)

// Phase is a named segment of an innings by over range.
type Phase string

const (
	PhasePowerplay Phase = "Powerplay"
	PhaseMiddle    Phase = "Middle Overs"
	PhaseDeath     Phase = "Death Overs"
)

// AllPhases lists the phases in innings order.
var AllPhases = []Phase{PhasePowerplay, PhaseMiddle, PhaseDeath}

func (p Phase) String() string { return string(p) }

// ParsePhase accepts the display name or a short alias ("pp", "middle", "death").
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "powerplay", "pp":
		return PhasePowerplay, nil
	case "middle overs", "middle", "mid":
		return PhaseMiddle, nil
	case "death overs", "death":
		return PhaseDeath, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// ---- Raw input ----

// Delivery is one ball bowled in one match, as read from the dataset.
// Optional categorical fields use "" for absent.
type Delivery struct {
	MatchID     string
	Season      string
	BattingTeam string
	BowlingTeam string
	Venue       string
	Striker     string
	Bowler      string

	// Ball is over notation: 12.3 is the 3rd ball of over 12 (0-based overs).
	Ball float64

	RunsOffBat int
	Extras     int

	WicketType      string
	PlayerDismissed string
}

// ---- Derived ----

// DerivedDelivery is a Delivery plus the per-ball features used for aggregation.
type DerivedDelivery struct {
	Delivery

	Phase          Phase
	TotalRuns      int
	IsDot          bool
	IsBoundary     bool
	IsBowlerWicket bool
	IsDismissal    bool
}

// b2i converts a flag to the 0/1 count it contributes to a sum.
func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Dot, Boundary, BowlerWicket and Dismissal return the flag as a 0/1 count.
func (d *DerivedDelivery) Dot() int          { return b2i(d.IsDot) }
func (d *DerivedDelivery) Boundary() int     { return b2i(d.IsBoundary) }
func (d *DerivedDelivery) BowlerWicket() int { return b2i(d.IsBowlerWicket) }
func (d *DerivedDelivery) Dismissal() int    { return b2i(d.IsDismissal) }
