package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/creel/creel/internal/model"
)

func TestValidateCatchInput(t *testing.T) {
	svc := &CatchService{}

	negative := -2.5
	zero := 0.0
	valid := 1.8
	future := time.Now().Add(24 * time.Hour)
	longField := strings.Repeat("a", maxFieldLength+1)

	tests := []struct {
		name    string
		input   CreateCatchInput
		wantErr error
	}{
		{
			name:    "valid_minimal",
			input:   CreateCatchInput{AnglerID: "angler-1"},
			wantErr: nil,
		},
		{
			name:    "valid_with_weight",
			input:   CreateCatchInput{AnglerID: "angler-1", Weight: &valid, WeightUnit: "lb"},
			wantErr: nil,
		},
		{
			name:    "negative_weight",
			input:   CreateCatchInput{AnglerID: "angler-1", Weight: &negative},
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "zero_weight",
			input:   CreateCatchInput{AnglerID: "angler-1", Weight: &zero},
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "unknown_weight_unit",
			input:   CreateCatchInput{AnglerID: "angler-1", Weight: &valid, WeightUnit: "stone"},
			wantErr: ErrInvalidWeightUnit,
		},
		{
			name:    "caught_at_in_future",
			input:   CreateCatchInput{AnglerID: "angler-1", CaughtAt: &future},
			wantErr: ErrTimestampInFuture,
		},
		{
			name:    "venue_too_long",
			input:   CreateCatchInput{AnglerID: "angler-1", Venue: longField},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := svc.validateCatchInput(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestValidWeightUnit(t *testing.T) {
	tests := []struct {
		unit string
		want bool
	}{
		{"", true},
		{"kg", true},
		{"lb", true},
		{"lb_oz", true},
		{"stone", false},
		{"KG", false},
	}

	for _, test := range tests {
		if got := validWeightUnit(model.WeightUnit(test.unit)); got != test.want {
			t.Errorf("validWeightUnit(%q) = %v, want %v", test.unit, got, test.want)
		}
	}
}
