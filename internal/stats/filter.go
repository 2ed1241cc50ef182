package stats

import "github.com/creel/creel/internal/model"

// Filter is the user-selectable filter tuple applied before aggregation.
// Zero values mean "no filter" for OutingID and Venue.
type Filter struct {
	Scope    TimeScope `json:"scope"`
	OutingID string    `json:"outing_id,omitempty"`
	Venue    string    `json:"venue,omitempty"`
}

// applyFilters produces the working set: catches surviving the outing,
// venue, and interval predicates. Input order is preserved; an empty result
// is a first-class outcome, never an error.
func applyFilters(catches []*model.Catch, iv Interval, outingID, venue string) []*model.Catch {
	working := make([]*model.Catch, 0, len(catches))
	bounded := !iv.Open()

	for _, c := range catches {
		if outingID != "" && c.OutingID != outingID {
			continue
		}
		if venue != "" && c.Venue != venue {
			continue
		}
		if bounded {
			ts, ok := c.PrimaryTime()
			if !ok || !iv.Contains(ts) {
				continue
			}
		}
		working = append(working, c)
	}
	return working
}
