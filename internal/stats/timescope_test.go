package stats

import (
	"testing"
	"time"

	"github.com/creel/creel/internal/model"
)

func TestResolveScope_All(t *testing.T) {
	t.Parallel()

	iv, unavailable := ResolveScope(TimeScope{Kind: ScopeAll}, time.Now(), time.UTC, nil, nil)
	if !iv.Open() {
		t.Errorf("All scope should be unbounded, got %+v", iv)
	}
	if unavailable {
		t.Error("All scope should not set the unavailable flag")
	}
}

func TestResolveScope_Last30Days(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 6, 20, 15, 45, 0, 0, time.UTC)
	iv, _ := ResolveScope(TimeScope{Kind: ScopeLast30Days}, now, time.UTC, nil, nil)

	wantStart := time.Date(2023, 5, 22, 0, 0, 0, 0, time.UTC)
	if iv.Start == nil || !iv.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", iv.Start, wantStart)
	}
	if iv.End == nil || iv.End.Before(time.Date(2023, 6, 20, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end = %v, want end of June 20", iv.End)
	}
	// Inclusive 30-day window: the start day itself is in range.
	if !iv.Contains(time.Date(2023, 5, 22, 6, 0, 0, 0, time.UTC)) {
		t.Error("start day should be inside the window")
	}
	if iv.Contains(time.Date(2023, 5, 21, 23, 0, 0, 0, time.UTC)) {
		t.Error("day 31 should be outside the window")
	}
}

func TestResolveScope_SeasonToDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 6, 20, 12, 0, 0, 0, time.UTC)
	iv, _ := ResolveScope(TimeScope{Kind: ScopeSeasonToDate}, now, time.UTC, nil, nil)

	wantStart := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if iv.Start == nil || !iv.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", iv.Start, wantStart)
	}
	if !iv.Contains(time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC)) {
		t.Error("mid-season instant should be in range")
	}
	if iv.Contains(time.Date(2022, 12, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("previous year should be out of range")
	}
}

// The season starts at midnight on January 1, and that first instant is part
// of the season. A catch logged exactly at the boundary counts.
func TestResolveScope_SeasonToDate_InclusiveAtSeasonStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 6, 20, 12, 0, 0, 0, time.UTC)
	iv, _ := ResolveScope(TimeScope{Kind: ScopeSeasonToDate}, now, time.UTC, nil, nil)

	if !iv.Contains(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("midnight on January 1 is the first instant of the season and must be in range")
	}

	catches := []*model.Catch{
		{ID: "new-year", CaughtAt: timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "mid-season", CaughtAt: timePtr(time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC))},
		{ID: "last-year", CaughtAt: timePtr(time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC))},
	}

	got := applyFilters(catches, iv, "", "")
	if len(got) != 2 || got[0].ID != "new-year" || got[1].ID != "mid-season" {
		t.Errorf("season filter kept %v, want [new-year mid-season]", ids(got))
	}
}

func TestResolveScope_Custom(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 3, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 20, 9, 0, 0, 0, time.UTC)

	t.Run("both bounds normalized to day boundaries", func(t *testing.T) {
		t.Parallel()

		iv, _ := ResolveScope(TimeScope{Kind: ScopeCustom, Start: &start, End: &end}, time.Now(), time.UTC, nil, nil)
		if iv.Start == nil || !iv.Start.Equal(time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v, want start of March 10", iv.Start)
		}
		if !iv.Contains(time.Date(2023, 3, 20, 23, 30, 0, 0, time.UTC)) {
			t.Error("late on the end day should still be in range")
		}
	})

	t.Run("start only defaults end to same day", func(t *testing.T) {
		t.Parallel()

		iv, _ := ResolveScope(TimeScope{Kind: ScopeCustom, Start: &start}, time.Now(), time.UTC, nil, nil)
		if iv.End == nil {
			t.Fatal("end should default to end of the start day")
		}
		if !iv.Contains(time.Date(2023, 3, 10, 22, 0, 0, 0, time.UTC)) {
			t.Error("same day should be in range")
		}
		if iv.Contains(time.Date(2023, 3, 11, 1, 0, 0, 0, time.UTC)) {
			t.Error("next day should be out of range")
		}
	})

	t.Run("end only leaves start open", func(t *testing.T) {
		t.Parallel()

		iv, _ := ResolveScope(TimeScope{Kind: ScopeCustom, End: &end}, time.Now(), time.UTC, nil, nil)
		if iv.Start != nil {
			t.Errorf("start should stay open, got %v", iv.Start)
		}
		if !iv.Contains(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("distant past should be in range with an open start")
		}
	})
}

func TestResolveScope_LastOuting_NoOutings(t *testing.T) {
	t.Parallel()

	iv, unavailable := ResolveScope(TimeScope{Kind: ScopeLastOuting}, time.Now(), time.UTC, nil, nil)
	if !unavailable {
		t.Error("unavailable flag should be set with zero outings")
	}
	if !iv.Open() {
		t.Errorf("scope should degrade to unbounded, got %+v", iv)
	}
}

func TestResolveScope_LastOuting_FromCatches(t *testing.T) {
	t.Parallel()

	outings := []*model.Outing{
		{ID: "out-1", Title: "Spring session"},
		{ID: "out-2", Title: "Summer session"},
	}
	catches := []*model.Catch{
		{ID: "c1", OutingID: "out-1", CaughtAt: timePtr(time.Date(2023, 4, 1, 8, 0, 0, 0, time.UTC))},
		{ID: "c2", OutingID: "out-2", CaughtAt: timePtr(time.Date(2023, 6, 10, 7, 0, 0, 0, time.UTC))},
		{ID: "c3", OutingID: "out-2", CaughtAt: timePtr(time.Date(2023, 6, 10, 19, 30, 0, 0, time.UTC))},
		{ID: "c4"}, // no outing, ignored for selection
	}

	iv, unavailable := ResolveScope(TimeScope{Kind: ScopeLastOuting}, time.Now(), time.UTC, catches, outings)
	if unavailable {
		t.Fatal("unavailable flag should not be set")
	}
	if iv.Start == nil || !iv.Start.Equal(time.Date(2023, 6, 10, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want first catch of out-2", iv.Start)
	}
	if iv.End == nil || !iv.End.Equal(time.Date(2023, 6, 10, 19, 30, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want last catch of out-2", iv.End)
	}
}

func TestResolveScope_LastOuting_FallbackToOutingDate(t *testing.T) {
	t.Parallel()

	date := time.Date(2023, 5, 5, 0, 0, 0, 0, time.UTC)
	outings := []*model.Outing{
		{ID: "out-1", Date: timePtr(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "out-2", Date: &date},
	}

	// No catch references any outing: latest outing by date wins, and with
	// no timestamped catches the interval is that outing's single day.
	iv, unavailable := ResolveScope(TimeScope{Kind: ScopeLastOuting}, time.Now(), time.UTC, nil, outings)
	if unavailable {
		t.Fatal("unavailable flag should not be set")
	}
	if iv.Start == nil || !iv.Start.Equal(date) {
		t.Errorf("start = %v, want %v", iv.Start, date)
	}
	if !iv.Contains(date.Add(20 * time.Hour)) {
		t.Error("the outing day should be fully covered")
	}
	if iv.Contains(date.AddDate(0, 0, 1).Add(time.Hour)) {
		t.Error("the following day should be out of range")
	}
}

func TestResolveScope_LastOuting_CreatedAtFallback(t *testing.T) {
	t.Parallel()

	outings := []*model.Outing{
		{ID: "out-1", CreatedAt: time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "out-2", CreatedAt: time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	catches := []*model.Catch{
		{ID: "c1", OutingID: "out-2", CaughtAt: timePtr(time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC))},
	}

	iv, _ := ResolveScope(TimeScope{Kind: ScopeLastOuting}, time.Now(), time.UTC, catches, outings)
	if iv.Start == nil || iv.Start.Day() != 1 || iv.Start.Month() != time.March {
		t.Errorf("interval should bracket out-2's catches, got start %v", iv.Start)
	}
}
