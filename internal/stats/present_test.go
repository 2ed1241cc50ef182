package stats

import (
	"strings"
	"testing"

	"github.com/creel/creel/internal/model"
)

func TestFormatWeightKg(t *testing.T) {
	t.Parallel()

	got := FormatWeightKg(1)
	if got != "1.00 kg (2.20 lb)" {
		t.Errorf("FormatWeightKg(1) = %q, want 1.00 kg (2.20 lb)", got)
	}

	if got := FormatWeightKg(0); got != "0.00 kg (0.00 lb)" {
		t.Errorf("FormatWeightKg(0) = %q", got)
	}
}

func TestFormatPersonalBest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    float64
		unit model.WeightUnit
		want string
	}{
		{"kilograms", 5.2, model.UnitKilograms, "5.2 kg"},
		{"pounds", 11, model.UnitPounds, "11 lb"},
		{"lb_oz rendered as pounds", 11.5, model.UnitPoundsOunces, "11.5 lb"},
		{"unknown unit rendered as kg", 3, model.WeightUnit("stone"), "3 kg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &model.Catch{Weight: &tt.w, WeightUnit: tt.unit}
			if got := FormatPersonalBest(c); got != tt.want {
				t.Errorf("FormatPersonalBest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPresent(t *testing.T) {
	t.Parallel()

	w := 6.0
	temp := 17.25
	r := &Report{
		TotalWeightKg: 12.5,
		AvgWeightKg:   6.25,
		PersonalBest:  &model.Catch{Weight: &w, WeightUnit: model.UnitKilograms},
		AvgAirTempC:   &temp,
	}

	p := Present(r)
	if !strings.HasPrefix(p.TotalWeight, "12.50 kg") {
		t.Errorf("TotalWeight = %q", p.TotalWeight)
	}
	if p.PersonalBest != "6 kg" {
		t.Errorf("PersonalBest = %q, want 6 kg", p.PersonalBest)
	}
	if p.AvgAirTemp != "17.2°C" {
		t.Errorf("AvgAirTemp = %q, want 17.2°C", p.AvgAirTemp)
	}
}

func TestPresent_EmptyReport(t *testing.T) {
	t.Parallel()

	p := Present(&Report{})
	if p.PersonalBest != "" || p.AvgAirTemp != "" {
		t.Errorf("empty report should leave optional strings empty, got %+v", p)
	}
}
