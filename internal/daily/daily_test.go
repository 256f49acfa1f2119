package daily

import (
	"testing"
	"time"
)

func TestDateKeyNoZeroPadding(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "single digit month and day", in: time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC), want: "2024-3-9"},
		{name: "double digits", in: time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), want: "2023-12-25"},
		{name: "first of january", in: time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC), want: "2025-1-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.in); got != tt.want {
				t.Fatalf("DateKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeedStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 2, 22, 30, 0, 0, time.UTC)
	if Seed(morning) != Seed(evening) {
		t.Fatal("seed changed within the same day")
	}
	nextDay := time.Date(2024, 6, 3, 0, 0, 1, 0, time.UTC)
	if Seed(morning) == Seed(nextDay) {
		t.Fatal("adjacent days produced the same seed")
	}
}

func TestSeedUsesLocalDate(t *testing.T) {
	// Same instant, different zones, different calendar dates.
	east := time.FixedZone("east", 12*3600)
	west := time.FixedZone("west", -12*3600)
	instant := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	if Seed(instant.In(east)) == Seed(instant.In(west)) {
		t.Fatal("expected different seeds across the date line")
	}
}

func TestPuzzleNumber(t *testing.T) {
	epoch := time.Date(2022, 6, 19, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{name: "launch day", at: epoch, want: 1},
		{name: "next day", at: epoch.AddDate(0, 0, 1), want: 2},
		{name: "hundred days in", at: epoch.AddDate(0, 0, 99), want: 100},
		{name: "late in the day", at: time.Date(2022, 6, 20, 23, 59, 0, 0, time.UTC), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PuzzleNumber(epoch, tt.at); got != tt.want {
				t.Fatalf("PuzzleNumber = %d, want %d", got, tt.want)
			}
		})
	}
}
