package stats

import (
	"time"

	"github.com/creel/creel/internal/model"
)

// ScopeKind identifies a time-range preset.
type ScopeKind string

const (
	ScopeAll          ScopeKind = "all"
	ScopeLast30Days   ScopeKind = "last30"
	ScopeSeasonToDate ScopeKind = "season"
	ScopeLastOuting   ScopeKind = "last_outing"
	ScopeCustom       ScopeKind = "custom"
)

// ValidScopeKind reports whether k names a known preset.
func ValidScopeKind(k ScopeKind) bool {
	switch k {
	case ScopeAll, ScopeLast30Days, ScopeSeasonToDate, ScopeLastOuting, ScopeCustom:
		return true
	}
	return false
}

// TimeScope is the abstract time-range selection. Start/End are only
// consulted for ScopeCustom.
type TimeScope struct {
	Kind  ScopeKind  `json:"kind"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Interval is a concrete, possibly half- or fully-open instant interval.
// A nil bound means unrestricted on that side.
type Interval struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Open reports whether neither bound is set.
func (iv Interval) Open() bool {
	return iv.Start == nil && iv.End == nil
}

// Contains reports whether t falls within the interval, bounds inclusive.
func (iv Interval) Contains(t time.Time) bool {
	if iv.Start != nil && t.Before(*iv.Start) {
		return false
	}
	if iv.End != nil && t.After(*iv.End) {
		return false
	}
	return true
}

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// endOfDay returns the last instant of t's calendar day in loc.
func endOfDay(t time.Time, loc *time.Location) time.Time {
	return startOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ResolveScope turns a TimeScope into a concrete interval. Calendar-day
// boundaries are computed in loc (the service uses its configured stats
// timezone, defaulting to UTC). The second return is true when
// ScopeLastOuting was requested but no outings exist; the scope then
// degrades to an open interval and the caller surfaces the flag.
func ResolveScope(scope TimeScope, now time.Time, loc *time.Location, catches []*model.Catch, outings []*model.Outing) (Interval, bool) {
	if loc == nil {
		loc = time.UTC
	}

	switch scope.Kind {
	case ScopeLast30Days:
		start := startOfDay(now.In(loc).AddDate(0, 0, -29), loc)
		end := endOfDay(now, loc)
		return Interval{Start: &start, End: &end}, false

	case ScopeSeasonToDate:
		start := time.Date(now.In(loc).Year(), time.January, 1, 0, 0, 0, 0, loc)
		end := endOfDay(now, loc)
		return Interval{Start: &start, End: &end}, false

	case ScopeLastOuting:
		return resolveLastOuting(loc, catches, outings)

	case ScopeCustom:
		return resolveCustom(scope, loc), false

	default: // ScopeAll and anything unrecognized
		return Interval{}, false
	}
}

// resolveCustom normalizes custom bounds to day boundaries. When only a
// start is supplied, the end defaults to the end of the start day.
func resolveCustom(scope TimeScope, loc *time.Location) Interval {
	var iv Interval
	if scope.Start != nil {
		start := startOfDay(*scope.Start, loc)
		iv.Start = &start
		end := endOfDay(*scope.Start, loc)
		iv.End = &end
	}
	if scope.End != nil {
		end := endOfDay(*scope.End, loc)
		iv.End = &end
	}
	return iv
}

// resolveLastOuting finds the most recently active outing and brackets its
// catches. Selection order: the outing referenced by the catch with the
// latest primary timestamp, then the outing with the latest date (creation
// timestamp when no date). No outings at all degrades to an open interval
// with the unavailable flag set.
func resolveLastOuting(loc *time.Location, catches []*model.Catch, outings []*model.Outing) (Interval, bool) {
	if len(outings) == 0 {
		return Interval{}, true
	}

	byID := make(map[string]*model.Outing, len(outings))
	for _, o := range outings {
		byID[o.ID] = o
	}

	var latestID string
	var latestTS time.Time
	for _, c := range catches {
		if c.OutingID == "" {
			continue
		}
		ts, ok := c.PrimaryTime()
		if !ok {
			continue
		}
		if latestID == "" || ts.After(latestTS) {
			latestID = c.OutingID
			latestTS = ts
		}
	}

	var outing *model.Outing
	if latestID != "" {
		outing = byID[latestID]
	} else {
		for _, o := range outings {
			if outing == nil || o.EffectiveDate().After(outing.EffectiveDate()) {
				outing = o
			}
		}
		latestID = outing.ID
	}

	// Bracket the outing's catches by primary timestamp.
	var min, max *time.Time
	for _, c := range catches {
		if c.OutingID != latestID {
			continue
		}
		ts, ok := c.PrimaryTime()
		if !ok {
			continue
		}
		t := ts
		if min == nil || t.Before(*min) {
			min = &t
		}
		if max == nil || t.After(*max) {
			max = &t
		}
	}
	if min != nil {
		return Interval{Start: min, End: max}, false
	}

	// No timestamped catches: a single-day interval from the outing date.
	if outing != nil {
		start := startOfDay(outing.EffectiveDate(), loc)
		end := endOfDay(outing.EffectiveDate(), loc)
		return Interval{Start: &start, End: &end}, false
	}

	// Referenced outing is missing from the collection and carried no
	// timestamped catches; nothing to bracket with.
	return Interval{}, false
}
