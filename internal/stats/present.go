package stats

import (
	"fmt"
	"strconv"

	"github.com/creel/creel/internal/model"
)

// Presentation carries the display strings derived from a report. Purely a
// formatting step: no filtering, sorting, or mutation beyond what
// aggregation already produced.
type Presentation struct {
	TotalWeight   string `json:"total_weight"`
	AverageWeight string `json:"average_weight"`
	PersonalBest  string `json:"personal_best,omitempty"`
	AvgAirTemp    string `json:"avg_air_temp,omitempty"`
}

// Present formats a report for display.
func Present(r *Report) Presentation {
	p := Presentation{
		TotalWeight:   FormatWeightKg(r.TotalWeightKg),
		AverageWeight: FormatWeightKg(r.AvgWeightKg),
	}
	if r.PersonalBest != nil {
		p.PersonalBest = FormatPersonalBest(r.PersonalBest)
	}
	if r.AvgAirTempC != nil {
		p.AvgAirTemp = fmt.Sprintf("%.1f°C", *r.AvgAirTempC)
	}
	return p
}

// FormatWeightKg renders a kilogram value with its pound equivalent,
// e.g. "5.25 kg (11.57 lb)".
func FormatWeightKg(kg float64) string {
	return fmt.Sprintf("%.2f kg (%.2f lb)", kg, kg/kgPerPound)
}

// FormatPersonalBest renders the personal-best label from the catch's raw
// weight/unit pair, e.g. "11 lb" or "5.2 kg".
func FormatPersonalBest(c *model.Catch) string {
	if c.Weight == nil {
		return ""
	}
	value := strconv.FormatFloat(*c.Weight, 'f', -1, 64)
	switch c.WeightUnit {
	case model.UnitPounds, model.UnitPoundsOunces:
		return value + " lb"
	default:
		return value + " kg"
	}
}
