// internal/daily/daily.go
//
// Derives the deterministic seed for daily puzzles from the calendar
// date. The date key uses the player's local time zone on purpose: two
// players in different zones may see different puzzles at the same
// instant, and that is accepted behavior, not a defect. Do not switch
// this to UTC.
package daily

import (
	"fmt"
	"time"

	"github.com/playable/dailygames/internal/rng"
)

// DateKey returns "{year}-{month}-{day}" with no zero padding, in the
// location carried by t. "2024-3-9", not "2024-03-09": padding would
// change every derived seed.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// Seed returns the rolling-hash seed for the date of t.
func Seed(t time.Time) int32 {
	return rng.StringSeed(DateKey(t))
}

// PuzzleNumber returns how many whole days have elapsed between epoch
// and the date of t, plus one, so a game's launch day is puzzle #1.
// Drives the "#N" in share strings.
func PuzzleNumber(epoch, t time.Time) int {
	e := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(e).Hours()/24) + 1
}
