package stats

import (
	"math"
	"testing"
	"time"

	"github.com/creel/creel/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestSpeciesLabel_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		code   string
		custom string
		want   string
	}{
		{"known code", "carp", "", "Carp"},
		{"known code ignores custom", "pike", "Big pike", "Pike"},
		{"unknown code humanized", "ghost_carp", "", "Ghost Carp"},
		{"other with custom", "other", "Wels catfish", "Wels catfish"},
		{"other without custom", "other", "", "Other species"},
		{"absent with custom", "", "Ide", "Ide"},
		{"absent without custom", "", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &model.Catch{SpeciesCode: tt.code}
			c.Custom.Species = tt.custom
			if got := SpeciesLabel(c); got != tt.want {
				t.Errorf("SpeciesLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTechniqueLabel_OtherFallback(t *testing.T) {
	t.Parallel()

	c := &model.Catch{TechniqueCode: "other"}
	if got := TechniqueLabel(c); got != "Other method" {
		t.Errorf("TechniqueLabel() = %q, want Other method", got)
	}

	c.Custom.Technique = "Freelining"
	if got := TechniqueLabel(c); got != "Freelining" {
		t.Errorf("TechniqueLabel() = %q, want Freelining", got)
	}
}

func TestBaitLabel_OtherFallback(t *testing.T) {
	t.Parallel()

	c := &model.Catch{BaitCode: "other"}
	if got := BaitLabel(c); got != "Other bait" {
		t.Errorf("BaitLabel() = %q, want Other bait", got)
	}
}

func TestTimeOfDayLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		hour int
		want string
	}{
		{"explicit code wins", "early_morning", 14, "Early Morning"},
		{"morning lower bound", "", 5, "Morning"},
		{"morning upper bound", "", 11, "Morning"},
		{"afternoon lower bound", "", 12, "Afternoon"},
		{"afternoon upper bound", "", 16, "Afternoon"},
		{"evening lower bound", "", 17, "Evening"},
		{"evening upper bound", "", 20, "Evening"},
		{"night late", "", 21, "Night"},
		{"night early", "", 4, "Night"},
		{"midnight", "", 0, "Night"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := time.Date(2023, 6, 15, tt.hour, 30, 0, 0, time.UTC)
			c := &model.Catch{TimeOfDayCode: tt.code, CaughtAt: timePtr(ts)}
			if got := TimeOfDayLabel(c); got != tt.want {
				t.Errorf("TimeOfDayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeOfDayLabel_NoTimestamp(t *testing.T) {
	t.Parallel()

	c := &model.Catch{}
	if got := TimeOfDayLabel(c); got != "Unknown" {
		t.Errorf("TimeOfDayLabel() = %q, want Unknown", got)
	}
}

func TestTimeOfDayLabel_LoggedAtFallback(t *testing.T) {
	t.Parallel()

	logged := time.Date(2023, 6, 15, 18, 0, 0, 0, time.UTC)
	c := &model.Catch{LoggedAt: timePtr(logged)}
	if got := TimeOfDayLabel(c); got != "Evening" {
		t.Errorf("TimeOfDayLabel() = %q, want Evening", got)
	}
}

func TestWindDirectionLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absent", "", ""},
		{"abbreviation uppercased", "sw", "SW"},
		{"four chars uppercased", "wsw", "WSW"},
		{"longer humanized", "south_west", "South West"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &model.Catch{}
			c.Conditions.WindDirection = tt.raw
			if got := WindDirectionLabel(c); got != tt.want {
				t.Errorf("WindDirectionLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAirTemperature_Coercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{"integer", "18", 18, true},
		{"decimal", "18.5", 18.5, true},
		{"negative", "-2.5", -2.5, true},
		{"padded", " 21 ", 21, true},
		{"absent", "", 0, false},
		{"junk", "warm", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &model.Catch{}
			c.Conditions.AirTemperature = tt.raw
			got, ok := AirTemperature(c)
			if ok != tt.wantOK {
				t.Fatalf("AirTemperature(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("AirTemperature(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestToKg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    float64
		unit model.WeightUnit
		want float64
	}{
		{"kilograms pass through", 5, model.UnitKilograms, 5},
		{"pounds converted", 11, model.UnitPounds, 11 * 0.453592},
		{"lb_oz uses pound factor", 11, model.UnitPoundsOunces, 11 * 0.453592},
		{"unrecognized passes through", 3.4, model.WeightUnit("stone"), 3.4},
		{"empty unit passes through", 2, model.WeightUnit(""), 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := toKg(tt.w, tt.unit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("toKg(%v, %q) = %v, want %v", tt.w, tt.unit, got, tt.want)
			}
		})
	}
}

func TestWeightKg_Absent(t *testing.T) {
	t.Parallel()

	c := &model.Catch{}
	if _, ok := WeightKg(c); ok {
		t.Error("WeightKg() should report absent for nil weight")
	}
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"method_feeder", "Method Feeder"},
		{"partly-cloudy", "Partly Cloudy"},
		{"clear", "Clear"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Humanize(tt.in); got != tt.want {
			t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
