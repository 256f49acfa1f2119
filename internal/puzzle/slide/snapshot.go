// internal/puzzle/slide/snapshot.go

package slide

import (
	"fmt"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
)

// Snapshot is the persisted form of a Game.
type Snapshot struct {
	ID      string      `json:"id"`
	Board   []int       `json:"board"`
	Moves   int         `json:"moves"`
	Mode    game.Mode   `json:"mode"`
	Status  game.Status `json:"status"`
	DateKey string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	board := make([]int, len(g.Board))
	copy(board, g.Board)
	return Snapshot{
		ID:      g.ID,
		Board:   board,
		Moves:   g.Moves,
		Mode:    g.Mode,
		Status:  g.Status,
		DateKey: g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. The board must be a
// permutation of 0..15; a daily save must belong to today.
func Restore(s Snapshot, now time.Time) (*Game, bool) {
	if len(s.Board) != Cells || !s.Mode.Valid() {
		return nil, false
	}
	var seen [Cells]bool
	for _, v := range s.Board {
		if v < 0 || v >= Cells || seen[v] {
			return nil, false
		}
		seen[v] = true
	}
	if s.Mode == game.ModeDaily && s.DateKey != daily.DateKey(now) {
		return nil, false
	}
	board := make([]int, len(s.Board))
	copy(board, s.Board)
	return &Game{
		ID:      s.ID,
		Board:   board,
		Moves:   s.Moves,
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
	return fmt.Sprintf("Slider #%d solved in %d moves 🧩", daily.PuzzleNumber(Epoch, now), g.Moves)
}
