package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creel/creel/internal/stats"
)

func TestParseStatsFilter_Defaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/stats", nil)

	f, err := parseStatsFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Scope.Kind != stats.ScopeAll {
		t.Errorf("Scope.Kind = %q, want %q", f.Scope.Kind, stats.ScopeAll)
	}
	if f.OutingID != "" || f.Venue != "" {
		t.Errorf("expected empty outing/venue filters, got %q / %q", f.OutingID, f.Venue)
	}
}

func TestParseStatsFilter_ScopeKinds(t *testing.T) {
	tests := []struct {
		scope string
		want  stats.ScopeKind
	}{
		{"all", stats.ScopeAll},
		{"last30", stats.ScopeLast30Days},
		{"season", stats.ScopeSeasonToDate},
		{"last_outing", stats.ScopeLastOuting},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/stats?scope="+tt.scope, nil)

			f, err := parseStatsFilter(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Scope.Kind != tt.want {
				t.Errorf("Scope.Kind = %q, want %q", f.Scope.Kind, tt.want)
			}
		})
	}
}

func TestParseStatsFilter_Custom(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/stats?scope=custom&from=2026-04-01&to=2026-04-30", nil)

	f, err := parseStatsFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Scope.Kind != stats.ScopeCustom {
		t.Fatalf("Scope.Kind = %q, want custom", f.Scope.Kind)
	}
	wantFrom := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if f.Scope.Start == nil || !f.Scope.Start.Equal(wantFrom) {
		t.Errorf("Scope.Start = %v, want %v", f.Scope.Start, wantFrom)
	}
	wantTo := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	if f.Scope.End == nil || !f.Scope.End.Equal(wantTo) {
		t.Errorf("Scope.End = %v, want %v", f.Scope.End, wantTo)
	}
}

func TestParseStatsFilter_CustomRFC3339(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/stats?scope=custom&from=2026-04-01T08%3A30%3A00Z", nil)

	f, err := parseStatsFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)
	if f.Scope.Start == nil || !f.Scope.Start.Equal(want) {
		t.Errorf("Scope.Start = %v, want %v", f.Scope.Start, want)
	}
}

func TestParseStatsFilter_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"unknown_scope", "/api/v1/stats?scope=fortnight"},
		{"custom_without_bounds", "/api/v1/stats?scope=custom"},
		{"bad_from", "/api/v1/stats?scope=custom&from=yesterday"},
		{"inverted_range", "/api/v1/stats?scope=custom&from=2026-05-01&to=2026-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if _, err := parseStatsFilter(req); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseStatsFilter_OutingAndVenue(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/stats?outing_id=out-1&venue=River+Wye", nil)

	f, err := parseStatsFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.OutingID != "out-1" {
		t.Errorf("OutingID = %q, want out-1", f.OutingID)
	}
	if f.Venue != "River Wye" {
		t.Errorf("Venue = %q, want River Wye", f.Venue)
	}
}
