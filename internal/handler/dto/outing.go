package dto

import (
	"time"

	"github.com/creel/creel/internal/model"
)

// CreateOutingRequest represents the request body for creating an outing.
type CreateOutingRequest struct {
	Title string     `json:"title,omitempty"`
	Venue string     `json:"venue,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// UpdateOutingRequest represents the request body for updating an outing.
type UpdateOutingRequest struct {
	Title     *string    `json:"title,omitempty"`
	Venue     *string    `json:"venue,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	ClearDate bool       `json:"clear_date,omitempty"`
}

// OutingResponse represents an outing in API responses.
type OutingResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OutingListResponse represents a list of outings.
type OutingListResponse struct {
	Data []OutingResponse `json:"data"`
}

// ToOutingResponse converts an Outing model to OutingResponse DTO.
func ToOutingResponse(o *model.Outing) *OutingResponse {
	return &OutingResponse{
		ID:        o.ID,
		Title:     o.Title,
		Venue:     o.Venue,
		Date:      o.Date,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOutingListResponse converts a slice of Outing models to OutingListResponse.
func ToOutingListResponse(outings []*model.Outing) *OutingListResponse {
	responses := make([]OutingResponse, len(outings))
	for i, o := range outings {
		responses[i] = *ToOutingResponse(o)
	}
	return &OutingListResponse{Data: responses}
}

// ActivityEventResponse represents one feed entry in API responses.
type ActivityEventResponse struct {
	ID           string    `json:"id"`
	CatchID      string    `json:"catch_id"`
	AnglerID     string    `json:"angler_id"`
	SpeciesLabel string    `json:"species_label,omitempty"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	LoggedAt     time.Time `json:"logged_at"`
}

// ActivityListResponse represents the activity feed.
type ActivityListResponse struct {
	Data []ActivityEventResponse `json:"data"`
}

// ToActivityListResponse converts feed entries to ActivityListResponse.
func ToActivityListResponse(events []*model.ActivityEvent) *ActivityListResponse {
	responses := make([]ActivityEventResponse, len(events))
	for i, e := range events {
		responses[i] = ActivityEventResponse{
			ID:           e.ID,
			CatchID:      e.CatchID,
			AnglerID:     e.AnglerID,
			SpeciesLabel: e.SpeciesLabel,
			WeightKg:     e.WeightKg,
			Venue:        e.Venue,
			LoggedAt:     e.LoggedAt,
		}
	}
	return &ActivityListResponse{Data: responses}
}
