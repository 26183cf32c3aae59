package model

import "sort"

// Filter selects deliveries by season and phase. A delivery passes only when
// both its season and its phase are selected, so an empty set selects nothing.
type Filter struct {
	Seasons map[string]struct{}
	Phases  map[Phase]struct{}
}

// NewFilter builds a Filter from explicit selections.
func NewFilter(seasons []string, phases []Phase) Filter {
	f := Filter{
		Seasons: make(map[string]struct{}, len(seasons)),
		Phases:  make(map[Phase]struct{}, len(phases)),
	}
	for _, s := range seasons {
		f.Seasons[s] = struct{}{}
	}
	for _, p := range phases {
		f.Phases[p] = struct{}{}
	}
	return f
}

// Match reports whether d passes the filter.
func (f Filter) Match(d *DerivedDelivery) bool {
	if _, ok := f.Seasons[d.Season]; !ok {
		return false
	}
	_, ok := f.Phases[d.Phase]
	return ok
}

// Empty reports whether the filter can never match.
func (f Filter) Empty() bool {
	return len(f.Seasons) == 0 || len(f.Phases) == 0
}

// SeasonList returns the selected seasons sorted ascending.
func (f Filter) SeasonList() []string {
	out := make([]string, 0, len(f.Seasons))
	for s := range f.Seasons {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// PhaseList returns the selected phases in innings order.
func (f Filter) PhaseList() []Phase {
	out := make([]Phase, 0, len(f.Phases))
	for _, p := range AllPhases {
		if _, ok := f.Phases[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
