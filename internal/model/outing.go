// Package model defines domain entities for the application.
package model

import "time"

// Outing represents a named grouping of catches from one trip ("session").
type Outing struct {
	ID       string     `json:"id"`
	AnglerID string     `json:"angler_id"`
	Title    string     `json:"title,omitempty"`
	Venue    string     `json:"venue,omitempty"`
	Date     *time.Time `json:"date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle returns the outing title, or a label synthesized from the
// identifier prefix when no title was set.
func (o *Outing) DisplayTitle() string {
	if o.Title != "" {
		return o.Title
	}
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "Outing " + id
}

// EffectiveDate returns the outing date, falling back to the creation
// timestamp when no date was set.
func (o *Outing) EffectiveDate() time.Time {
	if o.Date != nil {
		return *o.Date
	}
	return o.CreatedAt
}
