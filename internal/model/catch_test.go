package model

import (
	"testing"
	"time"
)

func TestCatch_PrimaryTime(t *testing.T) {
	caught := time.Date(2023, 6, 10, 7, 30, 0, 0, time.UTC)
	logged := time.Date(2023, 6, 10, 21, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		caughtAt *time.Time
		loggedAt *time.Time
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "caught_at preferred",
			caughtAt: &caught,
			loggedAt: &logged,
			want:     caught,
			wantOK:   true,
		},
		{
			name:     "falls back to logged_at",
			loggedAt: &logged,
			want:     logged,
			wantOK:   true,
		},
		{
			name:   "neither set",
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Catch{CaughtAt: tc.caughtAt, LoggedAt: tc.loggedAt}
			got, ok := c.PrimaryTime()
			if ok != tc.wantOK {
				t.Fatalf("PrimaryTime() ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("PrimaryTime() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCatch_HasWeight(t *testing.T) {
	w := 2.5
	if (&Catch{Weight: &w}).HasWeight() != true {
		t.Error("catch with weight should report HasWeight")
	}
	if (&Catch{}).HasWeight() != false {
		t.Error("catch without weight should not report HasWeight")
	}
}
