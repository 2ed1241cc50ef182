package feed

import "fmt"

const (
	ulidLength  = 26
	maxWeightKg = 1000
)

// ValidateCatchLoggedPayload validates catch event payload fields before
// they are persisted. Malformed events are dead-lettered by the worker.
func ValidateCatchLoggedPayload(payload CatchLoggedPayload) error {
	if payload.CatchID == "" {
		return fmt.Errorf("catch_id is required")
	}
	if len(payload.CatchID) != ulidLength {
		return fmt.Errorf("catch_id must be %d chars", ulidLength)
	}
	if payload.AnglerID == "" {
		return fmt.Errorf("angler_id is required")
	}
	if payload.LoggedAt <= 0 {
		return fmt.Errorf("logged_at must be set")
	}
	if payload.WeightKg != nil && (*payload.WeightKg <= 0 || *payload.WeightKg > maxWeightKg) {
		return fmt.Errorf("weight_kg out of bounds")
	}
	if len(payload.SpeciesLabel) > maxLabelLength {
		return fmt.Errorf("species_label too long")
	}
	if len(payload.Venue) > maxLabelLength {
		return fmt.Errorf("venue too long")
	}
	return nil
}
