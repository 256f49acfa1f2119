// internal/stats/stats.go
//
// Aggregate statistics per (game, mode): games played/won, streaks,
// best score, and a score histogram. Records are mutated only when a
// session reaches a terminal state, and only once per unique puzzle:
// the LastRecorded marker holds the identity of the most recently
// counted puzzle so that reloading a finished game never double-counts.

package stats

import (
	"context"

	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/persist"
)

const schemaVersion = 1

// Record is the persisted aggregate for one (game, mode).
type Record struct {
	GamesPlayed   int            `json:"gamesPlayed"`
	GamesWon      int            `json:"gamesWon"`
	CurrentStreak int            `json:"currentStreak"`
	MaxStreak     int            `json:"maxStreak"`
	BestScore     *int           `json:"bestScore"`
	LastRecorded  string         `json:"lastGameCompleted"`
	Distribution  map[string]int `json:"distribution,omitempty"`
}

// WinRate returns wins/played in [0,1], 0 when nothing played.
func (r Record) WinRate() float64 {
	if r.GamesPlayed == 0 {
		return 0
	}
	return float64(r.GamesWon) / float64(r.GamesPlayed)
}

// Result describes one finished session.
type Result struct {
	PuzzleID string // identity of the puzzle, e.g. "daily:2024-3-9" or a session id
	Won      bool
	Score    int    // game-specific: guesses used, moves taken, pairs turned
	HasScore bool   // false for games with no meaningful score on loss
	Bucket   string // histogram bucket, e.g. "4" for a four-guess win; "" to skip
}

// Aggregator reads and mutates Records through a KV store.
type Aggregator struct {
	kv persist.KV
}

// New constructs an Aggregator over kv.
func New(kv persist.KV) *Aggregator {
	return &Aggregator{kv: kv}
}

// Get returns the current record for (gameName, mode), zero-valued if
// none exists yet. Malformed stored records read as fresh ones.
func (a *Aggregator) Get(ctx context.Context, gameName string, mode game.Mode) Record {
	rec, _ := persist.Load[Record](ctx, a.kv, persist.StatsKey(gameName, mode, schemaVersion))
	return rec
}

// RecordResult folds one terminal result into the aggregate and
// persists it. Returns the updated record and whether it was actually
// recorded; a result whose PuzzleID matches the dedup marker is a
// no-op, which is what makes reload-after-finish safe.
//
// Lower scores are better: best score only moves down.
func (a *Aggregator) RecordResult(ctx context.Context, gameName string, mode game.Mode, res Result) (Record, bool, error) {
	key := persist.StatsKey(gameName, mode, schemaVersion)
	rec, _ := persist.Load[Record](ctx, a.kv, key)

	if res.PuzzleID != "" && rec.LastRecorded == res.PuzzleID {
		return rec, false, nil
	}

	rec.GamesPlayed++
	if res.Won {
		rec.GamesWon++
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.MaxStreak {
			rec.MaxStreak = rec.CurrentStreak
		}
		if res.HasScore && (rec.BestScore == nil || res.Score < *rec.BestScore) {
			s := res.Score
			rec.BestScore = &s
		}
	} else {
		rec.CurrentStreak = 0
	}
	if res.Bucket != "" {
		if rec.Distribution == nil {
			rec.Distribution = make(map[string]int)
		}
		rec.Distribution[res.Bucket]++
	}
	rec.LastRecorded = res.PuzzleID

	if err := persist.Save(ctx, a.kv, key, rec); err != nil {
		return rec, false, err
	}
	return rec, true, nil
}
