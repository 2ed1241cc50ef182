package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/creel/creel/internal/model"
)

func TestNewCatchLoggedPayload(t *testing.T) {
	t.Parallel()

	weight := 3.2
	loggedAt := time.Date(2026, 4, 12, 7, 30, 0, 0, time.UTC)
	c := &model.Catch{
		ID:       "01HQZX3M8N9P0Q1R2S3T4V5W6X",
		AnglerID: "angler-1",
		Venue:    "Chew Valley Lake",
	}

	payload := NewCatchLoggedPayload(c, "Rainbow Trout", &weight, loggedAt)

	if payload.CatchID != c.ID {
		t.Errorf("CatchID = %q, want %q", payload.CatchID, c.ID)
	}
	if payload.AnglerID != c.AnglerID {
		t.Errorf("AnglerID = %q, want %q", payload.AnglerID, c.AnglerID)
	}
	if payload.SpeciesLabel != "Rainbow Trout" {
		t.Errorf("SpeciesLabel = %q", payload.SpeciesLabel)
	}
	if payload.WeightKg == nil || *payload.WeightKg != weight {
		t.Errorf("WeightKg = %v, want %v", payload.WeightKg, weight)
	}
	if payload.Venue != "Chew Valley Lake" {
		t.Errorf("Venue = %q", payload.Venue)
	}
	if payload.LoggedAt != loggedAt.UnixMilli() {
		t.Errorf("LoggedAt = %d, want %d", payload.LoggedAt, loggedAt.UnixMilli())
	}
}

func TestNewCatchLoggedPayload_NoWeight(t *testing.T) {
	t.Parallel()

	c := &model.Catch{
		ID:       "01HQZX3M8N9P0Q1R2S3T4V5W6X",
		AnglerID: "angler-1",
	}

	payload := NewCatchLoggedPayload(c, "Perch", nil, time.Now())

	if payload.WeightKg != nil {
		t.Errorf("WeightKg = %v, want nil", payload.WeightKg)
	}
	if payload.Venue != "" {
		t.Errorf("Venue = %q, want empty", payload.Venue)
	}
}

func TestTruncateLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{"short label", "River Test", 10},
		{"exact 200", strings.Repeat("x", 200), 200},
		{"over 200", strings.Repeat("x", 300), 200},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := TruncateLabel(tt.input)
			if len(result) != tt.wantLen {
				t.Errorf("TruncateLabel length = %d, want %d", len(result), tt.wantLen)
			}
		})
	}
}

func TestTruncateLabel_PreservesContent(t *testing.T) {
	t.Parallel()

	label := "Llyn Brenig (north shore)"
	if result := TruncateLabel(label); result != label {
		t.Errorf("short label should be preserved, got %q", result)
	}
}
