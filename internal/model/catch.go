// Package model defines domain entities for the application.
package model

import "time"

// WeightUnit tags the unit a catch weight was logged in.
type WeightUnit string

const (
	UnitKilograms WeightUnit = "kg"
	UnitPounds    WeightUnit = "lb"
	// UnitPoundsOunces is a legacy tag from early mobile clients. Despite the
	// name it always holds a single decimal pound value; no ounces component
	// is ever stored separately.
	UnitPoundsOunces WeightUnit = "lb_oz"
)

// CodeOther is the sentinel for species/technique/bait codes meaning the
// angler picked "other" and (usually) typed a custom value instead.
const CodeOther = "other"

// Conditions holds optional free-text condition values logged with a catch.
// Empty string means the angler did not record that condition.
type Conditions struct {
	Weather string `json:"weather,omitempty"`
	// AirTemperature is kept as the raw string the client sent; it may be a
	// plain number ("18"), a decimal ("18.5"), or junk. Coercion happens at
	// aggregation time and junk is simply ignored there.
	AirTemperature string `json:"air_temperature,omitempty"`
	WaterClarity   string `json:"water_clarity,omitempty"`
	WindDirection  string `json:"wind_direction,omitempty"`
}

// CustomFields holds free-text overrides used when a controlled-vocabulary
// code is "other" or absent.
type CustomFields struct {
	Species   string `json:"species,omitempty"`
	Technique string `json:"technique,omitempty"`
	Bait      string `json:"bait,omitempty"`
	WaterType string `json:"water_type,omitempty"`
}

// Catch represents a single logged catch.
type Catch struct {
	ID       string `json:"id"`
	AnglerID string `json:"angler_id"`
	OutingID string `json:"outing_id,omitempty"` // empty when not part of an outing

	// CaughtAt is when the fish was actually caught; LoggedAt is when the
	// entry was created. CaughtAt is preferred everywhere, falling back to
	// LoggedAt (see PrimaryTime).
	CaughtAt *time.Time `json:"caught_at,omitempty"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`

	Venue string `json:"venue,omitempty"` // free text, matched exactly

	SpeciesCode   string `json:"species_code,omitempty"`
	TechniqueCode string `json:"technique_code,omitempty"`
	BaitCode      string `json:"bait_code,omitempty"`

	Weight     *float64   `json:"weight,omitempty"`
	WeightUnit WeightUnit `json:"weight_unit,omitempty"`

	TimeOfDayCode string `json:"time_of_day,omitempty"`

	Conditions Conditions   `json:"conditions"`
	Custom     CustomFields `json:"custom_fields"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryTime returns the catch's primary timestamp: CaughtAt when present,
// otherwise LoggedAt. The second return is false when neither is set.
func (c *Catch) PrimaryTime() (time.Time, bool) {
	if c.CaughtAt != nil {
		return *c.CaughtAt, true
	}
	if c.LoggedAt != nil {
		return *c.LoggedAt, true
	}
	return time.Time{}, false
}

// HasWeight reports whether the catch carries a usable weight value.
func (c *Catch) HasWeight() bool {
	return c.Weight != nil
}
