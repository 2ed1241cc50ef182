package stats

import (
	"time"

	"github.com/creel/creel/internal/model"
)

// EffectiveFilter is the fully-resolved filter state returned alongside the
// report so callers can distinguish "no data for these filters" from
// "filters could not be resolved".
type EffectiveFilter struct {
	Interval              Interval `json:"interval"`
	OutingID              string   `json:"outing_id,omitempty"`
	Venue                 string   `json:"venue,omitempty"`
	LastOutingUnavailable bool     `json:"last_outing_unavailable,omitempty"`
}

// Result bundles the aggregated report with its display strings and the
// effective filter state.
type Result struct {
	Report  *Report         `json:"report"`
	Display Presentation    `json:"display"`
	Filter  EffectiveFilter `json:"filter"`
}

// BuildReport runs the full pipeline: resolve the time scope, filter the
// catch collection down to the working set, and aggregate it. Pure: no I/O,
// no retained state, inputs are never mutated. Day-boundary arithmetic uses
// loc, defaulting to UTC when nil.
func BuildReport(catches []*model.Catch, outings []*model.Outing, f Filter, now time.Time, loc *time.Location) *Result {
	if loc == nil {
		loc = time.UTC
	}

	interval, unavailable := ResolveScope(f.Scope, now, loc, catches, outings)
	working := applyFilters(catches, interval, f.OutingID, f.Venue)
	report := aggregate(working, outings)

	return &Result{
		Report:  report,
		Display: Present(report),
		Filter: EffectiveFilter{
			Interval:              interval,
			OutingID:              f.OutingID,
			Venue:                 f.Venue,
			LastOutingUnavailable: unavailable,
		},
	}
}
