// Package dataset holds a loaded delivery table together with its derived
// features, and computes filtered stats reports from it.
package dataset

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Dataset is an immutable set of deliveries loaded from one source. Derived
// features are computed on first use and reused by every later query.
type Dataset struct {
	ID         string
	Source     string
	Deliveries []model.Delivery

	once    sync.Once
	derived []model.DerivedDelivery
	seasons []string
}

// New wraps freshly ingested deliveries under a new random ID.
func New(source string, deliveries []model.Delivery) *Dataset {
	return FromStore(uuid.NewString(), source, deliveries)
}

// FromStore wraps deliveries that already have an ID, e.g. loaded from storage.
func FromStore(id, source string, deliveries []model.Delivery) *Dataset {
	return &Dataset{ID: id, Source: source, Deliveries: deliveries}
}

func (d *Dataset) derive() {
	d.once.Do(func() {
		d.derived = features.Derive(d.Deliveries)
		seen := make(map[string]struct{})
		for _, dd := range d.Deliveries {
			if _, ok := seen[dd.Season]; !ok {
				seen[dd.Season] = struct{}{}
				d.seasons = append(d.seasons, dd.Season)
			}
		}
		sort.Strings(d.seasons)
	})
}

// Derived returns the per-delivery features, in input order.
func (d *Dataset) Derived() []model.DerivedDelivery {
	d.derive()
	return d.derived
}

// Seasons returns the distinct seasons present, sorted.
func (d *Dataset) Seasons() []string {
	d.derive()
	return append([]string(nil), d.seasons...)
}

// AllFilter selects every season in the dataset and every phase.
func (d *Dataset) AllFilter() model.Filter {
	return model.NewFilter(d.Seasons(), model.AllPhases)
}

// Report is the result of one stats query.
type Report struct {
	DatasetID string
	Source    string
	Filter    model.Filter
	Tables    []model.Table
}

// Table returns the report's table for dim, if it was computed.
func (r *Report) Table(dim model.Dimension) (model.Table, bool) {
	for _, t := range r.Tables {
		if t.Dimension == dim {
			return t, true
		}
	}
	return model.Table{}, false
}

// Stats aggregates the filtered deliveries for each requested dimension, or for
// all four when dims is empty. Tables keep the engine's key order.
func (d *Dataset) Stats(filter model.Filter, dims ...model.Dimension) (Report, error) {
	if len(dims) == 0 {
		dims = model.AllDimensions
	}
	r := Report{DatasetID: d.ID, Source: d.Source, Filter: filter}
	derived := d.Derived()
	for _, dim := range dims {
		t, err := aggregator.Aggregate(derived, dim, filter)
		if err != nil {
			return Report{}, err
		}
		r.Tables = append(r.Tables, t)
	}
	return r, nil
}
