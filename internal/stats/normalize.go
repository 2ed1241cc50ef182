package stats

import (
	"strconv"
	"strings"

	"github.com/creel/creel/internal/model"
)

// Fallback labels for the "other" sentinel when no custom text was entered.
const (
	labelOtherSpecies = "Other species"
	labelOtherMethod  = "Other method"
	labelOtherBait    = "Other bait"
	labelUnknown      = "Unknown"
)

// kgPerPound converts pounds to the canonical kilogram unit.
const kgPerPound = 0.453592

// codeLabel resolves a controlled-vocabulary code plus its free-text custom
// override into a display label. Precedence:
//   - code present and not "other": vocabulary label, or a humanized form of
//     the code when the vocabulary does not know it
//   - code "other": custom text, or the literal otherLabel
//   - code absent: custom text, or empty (facet contribution skipped)
func codeLabel(code, custom string, vocab map[string]string, otherLabel string) string {
	switch code {
	case "":
		return custom
	case model.CodeOther:
		if custom != "" {
			return custom
		}
		return otherLabel
	default:
		if label, ok := vocab[code]; ok {
			return label
		}
		return Humanize(code)
	}
}

// SpeciesLabel derives the display species of a catch.
func SpeciesLabel(c *model.Catch) string {
	return codeLabel(c.SpeciesCode, c.Custom.Species, speciesLabels, labelOtherSpecies)
}

// TechniqueLabel derives the display technique of a catch.
func TechniqueLabel(c *model.Catch) string {
	return codeLabel(c.TechniqueCode, c.Custom.Technique, techniqueLabels, labelOtherMethod)
}

// BaitLabel derives the display bait of a catch.
func BaitLabel(c *model.Catch) string {
	return codeLabel(c.BaitCode, c.Custom.Bait, baitLabels, labelOtherBait)
}

// TimeOfDayLabel derives the time-of-day bucket of a catch. An explicit code
// wins; otherwise the bucket comes from the hour of the primary timestamp.
// This is the only facet with an explicit fallback label, so it always
// produces a tally entry.
func TimeOfDayLabel(c *model.Catch) string {
	if c.TimeOfDayCode != "" {
		return Humanize(c.TimeOfDayCode)
	}
	ts, ok := c.PrimaryTime()
	if !ok {
		return labelUnknown
	}
	switch hour := ts.Hour(); {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// WeatherLabel derives the display weather condition; empty when unset.
func WeatherLabel(c *model.Catch) string {
	if c.Conditions.Weather == "" {
		return ""
	}
	return Humanize(c.Conditions.Weather)
}

// WaterClarityLabel derives the display water clarity; empty when unset.
func WaterClarityLabel(c *model.Catch) string {
	if c.Conditions.WaterClarity == "" {
		return ""
	}
	return Humanize(c.Conditions.WaterClarity)
}

// WindDirectionLabel derives the display wind direction. Short values are
// treated as compass abbreviations ("sw" -> "SW"); longer ones are humanized.
func WindDirectionLabel(c *model.Catch) string {
	raw := c.Conditions.WindDirection
	if raw == "" {
		return ""
	}
	if len(raw) <= 4 {
		return strings.ToUpper(raw)
	}
	return Humanize(raw)
}

// AirTemperature coerces the recorded air temperature into a float. Returns
// false for absent or non-numeric values, which are excluded from averages
// rather than treated as zero.
func AirTemperature(c *model.Catch) (float64, bool) {
	raw := strings.TrimSpace(c.Conditions.AirTemperature)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WeightKg returns the catch weight converted to the canonical kilogram
// unit. Returns false when no weight was logged.
func WeightKg(c *model.Catch) (float64, bool) {
	if c.Weight == nil {
		return 0, false
	}
	return toKg(*c.Weight, c.WeightUnit), true
}

// toKg converts a raw weight value to kilograms. The lb_oz tag only ever
// holds a plain decimal pound value, so it shares the pound factor.
// Unrecognized tags pass the value through as already-kilograms.
func toKg(w float64, unit model.WeightUnit) float64 {
	switch unit {
	case model.UnitPounds, model.UnitPoundsOunces:
		return w * kgPerPound
	default:
		return w
	}
}
