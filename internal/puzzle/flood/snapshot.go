// internal/puzzle/flood/snapshot.go

package flood

import (
	"fmt"
	"strings"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
)

// Snapshot is the persisted form of a Game.
type Snapshot struct {
	ID       string      `json:"id"`
	Size     int         `json:"size"`
	Colors   int         `json:"colors"`
	MaxMoves int         `json:"maxMoves"`
	Board    []int       `json:"board"`
	Moves    int         `json:"moves"`
	Mode     game.Mode   `json:"mode"`
	Status   game.Status `json:"status"`
	DateKey  string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	board := make([]int, len(g.Board))
	copy(board, g.Board)
	return Snapshot{
		ID:       g.ID,
		Size:     g.Size,
		Colors:   g.Colors,
		MaxMoves: g.MaxMoves,
		Board:    board,
		Moves:    g.Moves,
		Mode:     g.Mode,
		Status:   g.Status,
		DateKey:  g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. A daily save is only
// valid if it belongs to today's date key; dimension or content checks
// against a regenerated board are pointless once moves have been made,
// so staleness is judged by the date the board was generated for.
func Restore(s Snapshot, now time.Time) (*Game, bool) {
	if s.Size <= 0 || len(s.Board) != s.Size*s.Size || !s.Mode.Valid() {
		return nil, false
	}
	for _, v := range s.Board {
		if v < 0 || v >= s.Colors {
			return nil, false
		}
	}
	if s.Mode == game.ModeDaily && s.DateKey != daily.DateKey(now) {
		return nil, false
	}
	board := make([]int, len(s.Board))
	copy(board, s.Board)
	return &Game{
		ID:       s.ID,
		Size:     s.Size,
		Colors:   s.Colors,
		MaxMoves: s.MaxMoves,
		Board:    board,
		Moves:    s.Moves,
		Mode:     s.Mode,
		Status:   s.Status,
		DateKey:  s.DateKey,
	}, true
}

// Share renders the shareable summary for a finished game.
func (g *Game) Share(now time.Time) string {
	if !g.Status.Terminal() {
		return ""
	}
	var b strings.Builder
	if g.Status == game.StatusWon {
		fmt.Fprintf(&b, "Flood #%d %d/%d 🎨", daily.PuzzleNumber(Epoch, now), g.Moves, g.MaxMoves)
	} else {
		fmt.Fprintf(&b, "Flood #%d X/%d 🎨", daily.PuzzleNumber(Epoch, now), g.MaxMoves)
	}
	return b.String()
}
