package model

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
}

func TestReservationOverlaps(t *testing.T) {
	// existing slot [10:00, 11:00)
	r := Reservation{StartTime: at(10, 0), EndTime: at(11, 0)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"adjacent after", at(11, 0), at(12, 0), false},
		{"adjacent before", at(9, 0), at(10, 0), false},
		{"fully contained", at(10, 30), at(10, 45), true},
		{"partial overlap at start", at(9, 0), at(10, 1), true},
		{"partial overlap at end", at(10, 59), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), true},
		{"covering", at(9, 0), at(12, 0), true},
		{"disjoint after", at(12, 0), at(13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Overlaps(tc.start, tc.end); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
