package stats

import (
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"

	"github.com/creel/creel/internal/model"
)

// Display caps for ranked sequences.
const (
	maxTechniqueEntries = 6
	maxBaitEntries      = 6
	maxVenueEntries     = 5
	maxTopOutings       = 3
	maxTrendMonths      = 12
)

// FacetCount pairs a display label with its occurrence count.
type FacetCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendPoint is one calendar-month bucket of the monthly trend.
type TrendPoint struct {
	Key   string `json:"key"`   // "2006-01", sorts chronologically
	Label string `json:"label"` // "Jan 2006"
	Count int    `json:"count"`
}

// OutingSummary is a per-outing roll-up joined against the outing
// collection for display metadata.
type OutingSummary struct {
	OutingID string     `json:"outing_id"`
	Title    string     `json:"title"`
	Date     *time.Time `json:"date,omitempty"`
	Count    int        `json:"count"`
}

// Report is the aggregated output for one filter selection. An empty
// working set yields a fully-defined zero report, not an absent one.
type Report struct {
	TotalCatches int `json:"total_catches"`

	PersonalBest   *model.Catch `json:"personal_best,omitempty"`
	PersonalBestKg float64      `json:"personal_best_kg"`
	TotalWeightKg  float64      `json:"total_weight_kg"`
	AvgWeightKg    float64      `json:"avg_weight_kg"`
	WeighedCount   int          `json:"weighed_count"`
	AvgAirTempC    *float64     `json:"avg_air_temp_c,omitempty"`

	Species        []FacetCount `json:"species"`
	Techniques     []FacetCount `json:"techniques"`
	Baits          []FacetCount `json:"baits"`
	TimesOfDay     []FacetCount `json:"times_of_day"`
	Weather        []FacetCount `json:"weather"`
	WaterClarity   []FacetCount `json:"water_clarity"`
	WindDirections []FacetCount `json:"wind_directions"`
	Venues         []FacetCount `json:"venues"`

	MostVisitedVenue string `json:"most_visited_venue,omitempty"`

	MonthlyTrend []TrendPoint    `json:"monthly_trend"`
	Outings      []OutingSummary `json:"outings"`
	TopOutings   []OutingSummary `json:"top_outings"`
}

// tally accumulates one facet's frequency table while remembering
// first-encounter order for stable tie-breaking.
type tally struct {
	counts map[string]int
	labels []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

// add increments the label's count. Empty labels are skipped: a record
// missing a facet's value contributes to no bucket for that facet.
func (t *tally) add(label string) {
	if label == "" {
		return
	}
	if _, seen := t.counts[label]; !seen {
		t.labels = append(t.labels, label)
	}
	t.counts[label]++
}

// top returns entries sorted descending by count, ties broken by
// first-encounter order. limit <= 0 keeps the full table.
func (t *tally) top(limit int) []FacetCount {
	entries := make([]FacetCount, 0, len(t.labels))
	for _, label := range t.labels {
		entries = append(entries, FacetCount{Label: label, Count: t.counts[label]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// aggregate performs the single linear pass over the working set and shapes
// the accumulators into a Report. The outing collection is joined (not the
// filtered catches) to attach display metadata to per-outing counts.
func aggregate(working []*model.Catch, outings []*model.Outing) *Report {
	species := newTally()
	techniques := newTally()
	baits := newTally()
	timesOfDay := newTally()
	weather := newTally()
	clarity := newTally()
	wind := newTally()
	venues := newTally()

	trend := make(map[string]int)
	outingCounts := newTally() // labels are outing IDs here

	var best *model.Catch
	var bestKg float64
	weights := make([]float64, 0, len(working))
	temps := make([]float64, 0, len(working))

	for _, c := range working {
		species.add(SpeciesLabel(c))
		techniques.add(TechniqueLabel(c))
		baits.add(BaitLabel(c))
		timesOfDay.add(TimeOfDayLabel(c))
		weather.add(WeatherLabel(c))
		clarity.add(WaterClarityLabel(c))
		wind.add(WindDirectionLabel(c))
		venues.add(c.Venue)

		if kg, ok := WeightKg(c); ok {
			weights = append(weights, kg)
			// Strict greater-than: on exact ties the earliest catch wins.
			if best == nil || kg > bestKg {
				best = c
				bestKg = kg
			}
		}

		if temp, ok := AirTemperature(c); ok {
			temps = append(temps, temp)
		}

		if ts, ok := c.PrimaryTime(); ok {
			trend[ts.Format("2006-01")]++
		}

		outingCounts.add(c.OutingID)
	}

	report := &Report{
		TotalCatches:   len(working),
		PersonalBest:   best,
		PersonalBestKg: bestKg,
		Species:        species.top(0),
		Techniques:     techniques.top(maxTechniqueEntries),
		Baits:          baits.top(maxBaitEntries),
		TimesOfDay:     timesOfDay.top(0),
		Weather:        weather.top(0),
		WaterClarity:   clarity.top(0),
		WindDirections: wind.top(0),
		Venues:         venues.top(maxVenueEntries),
		MonthlyTrend:   trendPoints(trend),
	}

	if len(weights) > 0 {
		report.WeighedCount = len(weights)
		report.TotalWeightKg, _ = mstats.Sum(weights)
		report.AvgWeightKg, _ = mstats.Mean(weights)
	}
	if len(temps) > 0 {
		avg, err := mstats.Mean(temps)
		if err == nil {
			report.AvgAirTempC = &avg
		}
	}

	// The full venue table backs the single most-visited value even though
	// the displayed leaderboard is capped.
	if full := venues.top(0); len(full) > 0 {
		report.MostVisitedVenue = full[0].Label
	}

	report.Outings, report.TopOutings = outingSummaries(outingCounts, outings)

	return report
}

// trendPoints sorts the month buckets chronologically ascending and trims to
// the most recent populated months.
func trendPoints(buckets map[string]int) []TrendPoint {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // "2006-01" keys sort chronologically

	if len(keys) > maxTrendMonths {
		keys = keys[len(keys)-maxTrendMonths:]
	}

	points := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		label := k
		if month, err := time.Parse("2006-01", k); err == nil {
			label = month.Format("Jan 2006")
		}
		points = append(points, TrendPoint{Key: k, Label: label, Count: buckets[k]})
	}
	return points
}

// outingSummaries joins per-outing counts against the outing collection and
// picks the top outings by count (ties by first-encounter order).
func outingSummaries(counts *tally, outings []*model.Outing) (all, top []OutingSummary) {
	byID := make(map[string]*model.Outing, len(outings))
	for _, o := range outings {
		byID[o.ID] = o
	}

	all = make([]OutingSummary, 0, len(counts.labels))
	for _, id := range counts.labels {
		summary := OutingSummary{OutingID: id, Count: counts.counts[id]}
		if o, ok := byID[id]; ok {
			summary.Title = o.DisplayTitle()
			summary.Date = o.Date
		} else {
			prefix := id
			if len(prefix) > 8 {
				prefix = prefix[:8]
			}
			summary.Title = "Outing " + prefix
		}
		all = append(all, summary)
	}

	top = make([]OutingSummary, len(all))
	copy(top, all)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > maxTopOutings {
		top = top[:maxTopOutings]
	}
	return all, top
}
