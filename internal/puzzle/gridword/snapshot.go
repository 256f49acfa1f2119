// internal/puzzle/gridword/snapshot.go

package gridword

import (
	"fmt"
	"time"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
)

// Snapshot is the persisted form of a Game. Cell arrays are stored as
// strings ('.' for empty) to keep the JSON compact and stable.
type Snapshot struct {
	ID         string      `json:"id"`
	Solution   string      `json:"solution"`
	Tiles      string      `json:"tiles"`
	Locked     []bool      `json:"locked"`
	Placements []Placement `json:"placements"`
	Swaps      int         `json:"swaps"`
	MaxSwaps   int         `json:"maxSwaps"`
	Mode       game.Mode   `json:"mode"`
	Status     game.Status `json:"status"`
	DateKey    string      `json:"dateKey,omitempty"`
}

// Snapshot captures the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:         g.ID,
		Solution:   string(g.Solution),
		Tiles:      string(g.Tiles),
		Locked:     append([]bool{}, g.Locked...),
		Placements: append([]Placement{}, g.Placements...),
		Swaps:      g.Swaps,
		MaxSwaps:   g.MaxSwaps,
		Mode:       g.Mode,
		Status:     g.Status,
		DateKey:    g.DateKey,
	}
}

// Restore rebuilds a session from a snapshot. The tile multiset must
// match the solution's and a daily save must belong to today.
func Restore(s Snapshot, now time.Time) (*Game, bool) {
	if len(s.Solution) != Size*Size || len(s.Tiles) != len(s.Solution) ||
		len(s.Locked) != len(s.Solution) || !s.Mode.Valid() {
		return nil, false
	}
	var have, want [256]int
	for i := 0; i < len(s.Solution); i++ {
		want[s.Solution[i]]++
		have[s.Tiles[i]]++
	}
	if have != want {
		return nil, false
	}
	if s.Mode == game.ModeDaily && s.DateKey != daily.DateKey(now) {
		return nil, false
	}
	return &Game{
		ID:         s.ID,
		Solution:   []byte(s.Solution),
		Tiles:      []byte(s.Tiles),
		Locked:     append([]bool{}, s.Locked...),
		Placements: append([]Placement{}, s.Placements...),
		Swaps:      s.Swaps,
		MaxSwaps:   s.MaxSwaps,
		Mode:       s.Mode,
		Status:     s.Status,
		DateKey:    s.DateKey,
	}, true
}

// Share renders the shareable summary for a finished game.
func (g *Game) Share(now time.Time) string {
	if !g.Status.Terminal() {
		return ""
	}
	if g.Status == game.StatusWon {
		return fmt.Sprintf("Gridword #%d %d/%d swaps 🔠", daily.PuzzleNumber(Epoch, now), g.Swaps, g.MaxSwaps)
	}
	return fmt.Sprintf("Gridword #%d X/%d swaps 🔠", daily.PuzzleNumber(Epoch, now), g.MaxSwaps)
}
