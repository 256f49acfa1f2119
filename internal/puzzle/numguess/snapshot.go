// internal/puzzle/numguess/snapshot.go

package numguess

import (
	"fmt"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
)

// Snapshot is the persisted form of a Game.
type Snapshot struct {
	ID      string      `json:"id"`
	Secret  int         `json:"secret"`
	Guesses []int       `json:"guesses"`
	Mode    game.Mode   `json:"mode"`
	Status  game.Status `json:"status"`
	DateKey string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:      g.ID,
		Secret:  g.Secret,
		Guesses: append([]int{}, g.Guesses...),
		Mode:    g.Mode,
		Status:  g.Status,
		DateKey: g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. A daily save must hold
// today's secret, so yesterday's half-played game is discarded.
func Restore(s Snapshot, now time.Time) (*Game, bool) {
	if s.Secret < Min || s.Secret > Max || len(s.Guesses) > MaxGuesses || !s.Mode.Valid() {
		return nil, false
	}
	for _, n := range s.Guesses {
		if n < Min || n > Max {
			return nil, false
		}
	}
	if s.Mode == game.ModeDaily {
		if s.DateKey != daily.DateKey(now) || s.Secret != NewDaily(now).Secret {
			return nil, false
		}
	}
	return &Game{
		ID:      s.ID,
		Secret:  s.Secret,
		Guesses: append([]int{}, s.Guesses...),
		Mode:    s.Mode,
		Status:  s.Status,
		DateKey: s.DateKey,
	}, true
}

// Share renders the shareable summary for a finished game.
func (g *Game) Share(now time.Time) string {
	if !g.Status.Terminal() {
		return ""
	}
	if g.Status == game.StatusWon {
		return fmt.Sprintf("Number #%d %d/%d 🔢", daily.PuzzleNumber(Epoch, now), len(g.Guesses), MaxGuesses)
	}
	return fmt.Sprintf("Number #%d X/%d 🔢", daily.PuzzleNumber(Epoch, now), MaxGuesses)
}
