// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/creel/creel/internal/model"
)

// CreateCatchRequest represents the request body for logging a catch.
type CreateCatchRequest struct {
	OutingID      string             `json:"outing_id,omitempty"`
	CaughtAt      *time.Time         `json:"caught_at,omitempty"`
	Venue         string             `json:"venue,omitempty"`
	SpeciesCode   string             `json:"species_code,omitempty"`
	TechniqueCode string             `json:"technique_code,omitempty"`
	BaitCode      string             `json:"bait_code,omitempty"`
	Weight        *float64           `json:"weight,omitempty"`
	WeightUnit    string             `json:"weight_unit,omitempty"`
	TimeOfDayCode string             `json:"time_of_day,omitempty"`
	Conditions    model.Conditions   `json:"conditions"`
	Custom        model.CustomFields `json:"custom_fields"`
}

// UpdateCatchRequest represents the request body for updating a catch.
// Nil fields are left unchanged; the Clear* flags reset optional fields.
type UpdateCatchRequest struct {
	OutingID      *string             `json:"outing_id,omitempty"`
	ClearOuting   bool                `json:"clear_outing,omitempty"`
	CaughtAt      *time.Time          `json:"caught_at,omitempty"`
	ClearCaughtAt bool                `json:"clear_caught_at,omitempty"`
	Venue         *string             `json:"venue,omitempty"`
	SpeciesCode   *string             `json:"species_code,omitempty"`
	TechniqueCode *string             `json:"technique_code,omitempty"`
	BaitCode      *string             `json:"bait_code,omitempty"`
	Weight        *float64            `json:"weight,omitempty"`
	ClearWeight   bool                `json:"clear_weight,omitempty"`
	WeightUnit    *string             `json:"weight_unit,omitempty"`
	TimeOfDayCode *string             `json:"time_of_day,omitempty"`
	Conditions    *model.Conditions   `json:"conditions,omitempty"`
	Custom        *model.CustomFields `json:"custom_fields,omitempty"`
}

// CatchResponse represents a catch in API responses.
type CatchResponse struct {
	ID            string             `json:"id"`
	OutingID      string             `json:"outing_id,omitempty"`
	CaughtAt      *time.Time         `json:"caught_at,omitempty"`
	LoggedAt      *time.Time         `json:"logged_at,omitempty"`
	Venue         string             `json:"venue,omitempty"`
	SpeciesCode   string             `json:"species_code,omitempty"`
	TechniqueCode string             `json:"technique_code,omitempty"`
	BaitCode      string             `json:"bait_code,omitempty"`
	Weight        *float64           `json:"weight,omitempty"`
	WeightUnit    string             `json:"weight_unit,omitempty"`
	TimeOfDayCode string             `json:"time_of_day,omitempty"`
	Conditions    model.Conditions   `json:"conditions"`
	Custom        model.CustomFields `json:"custom_fields"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CatchListResponse represents a list of catches.
type CatchListResponse struct {
	Data []CatchResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToCatchResponse converts a Catch model to CatchResponse DTO.
func ToCatchResponse(c *model.Catch) *CatchResponse {
	return &CatchResponse{
		ID:            c.ID,
		OutingID:      c.OutingID,
		CaughtAt:      c.CaughtAt,
		LoggedAt:      c.LoggedAt,
		Venue:         c.Venue,
		SpeciesCode:   c.SpeciesCode,
		TechniqueCode: c.TechniqueCode,
		BaitCode:      c.BaitCode,
		Weight:        c.Weight,
		WeightUnit:    string(c.WeightUnit),
		TimeOfDayCode: c.TimeOfDayCode,
		Conditions:    c.Conditions,
		Custom:        c.Custom,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCatchListResponse converts a slice of Catch models to CatchListResponse.
func ToCatchListResponse(catches []*model.Catch) *CatchListResponse {
	responses := make([]CatchResponse, len(catches))
	for i, c := range catches {
		responses[i] = *ToCatchResponse(c)
	}
	return &CatchListResponse{Data: responses}
}
