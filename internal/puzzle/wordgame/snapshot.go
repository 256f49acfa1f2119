// internal/puzzle/wordgame/snapshot.go
//
// Save/restore and the shareable summary. Snapshots carry primitive
// types only so the persistence format stays stable.

package wordgame

import (
	"fmt"
	"strings"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/words"
)

// Snapshot is the persisted form of a Game.
type Snapshot struct {
	ID      string      `json:"id"`
	Target  string      `json:"target"`
	Mode    game.Mode   `json:"mode"`
	Guesses []string    `json:"guesses"`
	Marks   [][]int     `json:"marks"`
	Status  game.Status `json:"status"`
	DateKey string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:      g.ID,
		Target:  g.Target,
		Mode:    g.Mode,
		Guesses: g.Guesses,
		Marks:   g.Marks,
		Status:  g.Status,
		DateKey: g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. For daily games the
// saved target is compared against today's freshly derived word; a
// stale save (yesterday's puzzle, or a changed answer list) reports
// ok=false and must be discarded by the caller.
func Restore(s Snapshot, list *words.List, now time.Time) (*Game, bool) {
	if s.Target == "" || !s.Mode.Valid() || len(s.Guesses) != len(s.Marks) {
		return nil, false
	}
	if s.Mode == game.ModeDaily {
		fresh := NewDaily(list, now)
		if s.Target != fresh.Target || s.DateKey != fresh.DateKey {
			return nil, false
		}
	}
	return &Game{
		ID:      s.ID,
		Target:  s.Target,
		Mode:    s.Mode,
		Guesses: s.Guesses,
		Marks:   s.Marks,
		Status:  s.Status,
		DateKey: s.DateKey,
		list:    list,
	}, true
}

// Share renders the deterministic human-shareable summary for a
// finished game: puzzle number, score line, emoji grid. Pure function
// of the final state; empty while the game is active.
func (g *Game) Share(now time.Time) string {
	if !g.Status.Terminal() {
		return ""
	}
	score := "X"
	if g.Status == game.StatusWon {
		score = fmt.Sprintf("%d", len(g.Guesses))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Daily Word #%d %s/%d\n", daily.PuzzleNumber(Epoch, now), score, MaxGuesses)
	for _, row := range g.Marks {
		for _, m := range row {
			switch m {
			case MarkHit:
				b.WriteString("🟩")
			case MarkPresent:
				b.WriteString("🟨")
			default:
				b.WriteString("⬜")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
