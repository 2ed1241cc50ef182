package stats

import (
	"testing"
	"time"

	"github.com/creel/creel/internal/model"
)

func TestBuildReport_SeasonToDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 6, 20, 10, 0, 0, 0, time.UTC)
	catches := []*model.Catch{
		{ID: "old", SpeciesCode: "carp", CaughtAt: timePtr(time.Date(2022, 1, 1, 9, 0, 0, 0, time.UTC))},
		{ID: "recent", SpeciesCode: "pike", CaughtAt: timePtr(time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC))},
	}

	result := BuildReport(catches, nil, Filter{Scope: TimeScope{Kind: ScopeSeasonToDate}}, now, time.UTC)

	if result.Report.TotalCatches != 1 {
		t.Fatalf("TotalCatches = %d, want 1", result.Report.TotalCatches)
	}
	if result.Report.Species[0].Label != "Pike" {
		t.Errorf("surviving record should be the 2023-06-15 pike, got %v", result.Report.Species)
	}
	if result.Filter.Interval.Start == nil || result.Filter.Interval.Start.Year() != 2023 {
		t.Errorf("effective interval start = %v, want Jan 1 2023", result.Filter.Interval.Start)
	}
}

func TestBuildReport_LastOutingUnavailable(t *testing.T) {
	t.Parallel()

	catches := []*model.Catch{
		{ID: "c1", CaughtAt: timePtr(time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC))},
	}

	result := BuildReport(catches, nil, Filter{Scope: TimeScope{Kind: ScopeLastOuting}}, time.Now(), time.UTC)

	if !result.Filter.LastOutingUnavailable {
		t.Error("unavailable flag should be surfaced to the caller")
	}
	// Degraded to All: every record is in the working set.
	if result.Report.TotalCatches != 1 {
		t.Errorf("TotalCatches = %d, want 1 (scope degraded to All)", result.Report.TotalCatches)
	}
}

func TestBuildReport_EmptyInputs(t *testing.T) {
	t.Parallel()

	result := BuildReport(nil, nil, Filter{Scope: TimeScope{Kind: ScopeAll}}, time.Now(), nil)
	if result.Report == nil {
		t.Fatal("empty input still yields a report")
	}
	if result.Report.TotalCatches != 0 || result.Report.PersonalBest != nil {
		t.Errorf("want the fully-defined empty report, got %+v", result.Report)
	}
	if result.Display.TotalWeight != "0.00 kg (0.00 lb)" {
		t.Errorf("Display.TotalWeight = %q, want zero formatting", result.Display.TotalWeight)
	}
}

func TestBuildReport_EffectiveFilterEcho(t *testing.T) {
	t.Parallel()

	f := Filter{Scope: TimeScope{Kind: ScopeAll}, OutingID: "out-1", Venue: "Willow Lake"}
	result := BuildReport(nil, nil, f, time.Now(), time.UTC)

	if result.Filter.OutingID != "out-1" || result.Filter.Venue != "Willow Lake" {
		t.Errorf("effective filter = %+v, want the applied outing/venue", result.Filter)
	}
}
