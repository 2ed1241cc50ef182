package model

import (
	"testing"
	"time"
)

func TestOuting_DisplayTitle(t *testing.T) {
	testCases := []struct {
		name   string
		outing Outing
		want   string
	}{
		{
			name:   "explicit title",
			outing: Outing{ID: "01HQZX3M8N9P0Q1R2S3T4V5W6X", Title: "Dawn session"},
			want:   "Dawn session",
		},
		{
			name:   "synthesized from long id",
			outing: Outing{ID: "01HQZX3M8N9P0Q1R2S3T4V5W6X"},
			want:   "Outing 01HQZX3M",
		},
		{
			name:   "short id kept whole",
			outing: Outing{ID: "abc"},
			want:   "Outing abc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outing.DisplayTitle(); got != tc.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOuting_EffectiveDate(t *testing.T) {
	date := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2023, 5, 3, 18, 0, 0, 0, time.UTC)

	withDate := Outing{Date: &date, CreatedAt: created}
	if !withDate.EffectiveDate().Equal(date) {
		t.Errorf("EffectiveDate() = %v, want the explicit date", withDate.EffectiveDate())
	}

	withoutDate := Outing{CreatedAt: created}
	if !withoutDate.EffectiveDate().Equal(created) {
		t.Errorf("EffectiveDate() = %v, want the creation timestamp", withoutDate.EffectiveDate())
	}
}
