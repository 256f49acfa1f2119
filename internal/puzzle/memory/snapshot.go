// internal/puzzle/memory/snapshot.go

package memory

import (
	"fmt"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
)

// Snapshot is the persisted form of a Game. FaceUp is transient turn
// state and round-trips too, so a restore lands mid-turn correctly.
type Snapshot struct {
	ID      string      `json:"id"`
	Cards   []int       `json:"cards"`
	Matched []bool      `json:"matched"`
	FaceUp  []int       `json:"faceUp"`
	Turns   int         `json:"turns"`
	Pairs   int         `json:"pairs"`
	Mode    game.Mode   `json:"mode"`
	Status  game.Status `json:"status"`
	DateKey string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:      g.ID,
		Cards:   append([]int{}, g.Cards...),
		Matched: append([]bool{}, g.Matched...),
		FaceUp:  append([]int{}, g.FaceUp...),
		Turns:   g.Turns,
		Pairs:   g.Pairs,
		Mode:    g.Mode,
		Status:  g.Status,
		DateKey: g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. The deck must hold every
// value exactly twice and a daily save must belong to today.
func Restore(s Snapshot, now time.Time) (*Game, bool) {
	if s.Pairs <= 0 || len(s.Cards) != s.Pairs*2 || len(s.Matched) != len(s.Cards) ||
		len(s.FaceUp) > 2 || !s.Mode.Valid() {
		return nil, false
	}
	counts := make([]int, s.Pairs)
	for _, v := range s.Cards {
		if v < 0 || v >= s.Pairs {
			return nil, false
		}
		counts[v]++
	}
	for _, c := range counts {
		if c != 2 {
			return nil, false
		}
	}
	if s.Mode == game.ModeDaily && s.DateKey != daily.DateKey(now) {
		return nil, false
	}
	return &Game{
		ID:      s.ID,
		Cards:   append([]int{}, s.Cards...),
		Matched: append([]bool{}, s.Matched...),
		FaceUp:  append([]int{}, s.FaceUp...),
		Turns:   s.Turns,
		Pairs:   s.Pairs,
		Mode:    s.Mode,
		Status:  s.Status,
		DateKey: s.DateKey,
	}, true
}

// Share renders the shareable summary for a finished game.
func (g *Game) Share(now time.Time) string {
	if g.Status != game.StatusWon {
		return ""
	}
	return fmt.Sprintf("Pairs #%d %d pairs in %d turns 🃏", daily.PuzzleNumber(Epoch, now), g.Pairs, g.Turns)
}
