// Package model defines domain entities for the application.
package model

import "time"

// ActivityEvent represents one entry in the social activity feed. Events are
// published to a Redis stream when a catch is logged and persisted to
// Postgres by the feed worker.
type ActivityEvent struct {
	ID      string `json:"id"`       // ULID (time-sortable)
	EventID string `json:"event_id"` // Idempotency key (Redis stream ID)

	CatchID  string `json:"catch_id"`
	AnglerID string `json:"angler_id"`

	// Denormalized display snapshot so the feed can render without joining
	// back to the catch row.
	SpeciesLabel string   `json:"species_label,omitempty"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	Venue        string   `json:"venue,omitempty"`

	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"` // DB insertion time
}
