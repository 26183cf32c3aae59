// Package features derives per-delivery fields (phase, total runs, dot,
// boundary and wicket flags) from raw delivery records.
package features

import (
	"strings"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// Phase thresholds in over notation. Both bounds belong to the lower phase,
// so 6.0 is Powerplay and 15.0 is Middle Overs.
const (
	PowerplayEnd = 6.0
	MiddleEnd    = 15.0
)

// bowlerDismissals are the wicket kinds credited to the bowler. Run outs,
// retirements and obstructing the field are not.
var bowlerDismissals = map[string]struct{}{
	"bowled":            {},
	"caught":            {},
	"caught and bowled": {},
	"lbw":               {},
	"stumped":           {},
	"hit wicket":        {},
}

// PhaseOf classifies a ball by over notation. Every float maps to exactly one
// phase; NaN compares false everywhere and lands in Death Overs.
func PhaseOf(ball float64) model.Phase {
	switch {
	case ball <= PowerplayEnd:
		return model.PhasePowerplay
	case ball <= MiddleEnd:
		return model.PhaseMiddle
	default:
		return model.PhaseDeath
	}
}

// IsBoundary reports a four or six off the bat. Any other value, including
// negative or out-of-range ones, is not a boundary.
func IsBoundary(runsOffBat int) bool {
	return runsOffBat == 4 || runsOffBat == 6
}

// IsBowlerWicket reports whether a dismissal kind is credited to the bowler.
// Case, hyphens and underscores are ignored: "Caught-and-Bowled" matches.
func IsBowlerWicket(kind string) bool {
	_, ok := bowlerDismissals[normalizeKind(kind)]
	return ok
}

func normalizeKind(kind string) string {
	kind = strings.ToLower(kind)
	kind = strings.NewReplacer("-", " ", "_", " ").Replace(kind)
	return strings.Join(strings.Fields(kind), " ")
}

// DeriveOne computes the derived fields of a single delivery.
func DeriveOne(d model.Delivery) model.DerivedDelivery {
	total := d.RunsOffBat + d.Extras
	return model.DerivedDelivery{
		Delivery:       d,
		Phase:          PhaseOf(d.Ball),
		TotalRuns:      total,
		IsDot:          total == 0,
		IsBoundary:     IsBoundary(d.RunsOffBat),
		IsBowlerWicket: IsBowlerWicket(d.WicketType),
		IsDismissal:    strings.TrimSpace(d.PlayerDismissed) != "",
	}
}

// Derive projects deliveries one-to-one, preserving order. It never fails.
func Derive(deliveries []model.Delivery) []model.DerivedDelivery {
	out := make([]model.DerivedDelivery, len(deliveries))
	for i, d := range deliveries {
		out[i] = DeriveOne(d)
	}
	return out
}
