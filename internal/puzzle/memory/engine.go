// internal/puzzle/memory/engine.go
//
// Memory pair-matching game. A deck of value pairs is shuffled face
// down; the player reveals two cards per turn. Matches stay revealed,
// mismatches flip back when the next turn starts. The reveal delay in
// a UI is cosmetic: the engine resolves each pair immediately, so win
// detection never waits on animation timers.
//
// There is no loss state; the score is the number of turns taken and
// lower is better. This game is committed to the Lehmer generator.

package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
)

const (
	Name = "memory"

	SchemaVersion = 1
)

// Epoch is the launch date for the daily deck.
var Epoch = time.Date(2023, 3, 12, 0, 0, 0, 0, time.UTC)

// PairsFor maps a mode to the deck size in pairs.
func PairsFor(mode game.Mode) int {
	switch mode {
	case game.ModeEasy:
		return 6
	case game.ModeHard:
		return 10
	default: // daily, random, medium
		return 8
	}
}

// Game is one memory session.
type Game struct {
	ID      string
	Cards   []int  // card values, two of each
	Matched []bool // per card
	FaceUp  []int  // indices revealed in the current turn (0..2)
	Turns   int    // completed two-card turns
	Pairs   int
	Mode    game.Mode
	Status  game.Status
	DateKey string
}

// NewDaily creates today's deterministic deck.
func NewDaily(now time.Time) *Game {
	g := newGame(rng.NewLehmer(daily.Seed(now)), game.ModeDaily, PairsFor(game.ModeDaily))
	g.DateKey = daily.DateKey(now)
	return g
}

// New creates a free-play deck for the given mode.
func New(mode game.Mode) *Game {
	return newGame(rng.System(), mode, PairsFor(mode))
}

func newGame(src rng.Source, mode game.Mode, pairs int) *Game {
	cards := make([]int, pairs*2)
	for i := range cards {
		cards[i] = i / 2
	}
	rng.Shuffle(src, len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Game{
		ID:      uuid.NewString(),
		Cards:   cards,
		Matched: make([]bool, len(cards)),
		Pairs:   pairs,
		Mode:    mode,
		Status:  game.StatusActive,
	}
}

// Flip reveals the card at index i and returns its value.
//
// Rejected without consuming a turn: terminal session, out-of-range
// index, already-matched card, card already face up this turn.
//
// The second reveal of a turn increments the turn counter and either
// locks a match in place or leaves the mismatch to be cleared when the
// next turn's first flip arrives.
func (g *Game) Flip(i int) (int, error) {
	if g.Status.Terminal() {
		return 0, game.ErrFinished
	}
	if i < 0 || i >= len(g.Cards) || g.Matched[i] {
		return 0, game.ErrInvalidMove
	}
	for _, f := range g.FaceUp {
		if f == i {
			return 0, game.ErrInvalidMove
		}
	}

	// A resolved mismatch flips back as the next turn begins.
	if len(g.FaceUp) == 2 {
		g.FaceUp = g.FaceUp[:0]
	}

	g.FaceUp = append(g.FaceUp, i)
	if len(g.FaceUp) == 2 {
		g.Turns++
		a, b := g.FaceUp[0], g.FaceUp[1]
		if g.Cards[a] == g.Cards[b] {
			g.Matched[a], g.Matched[b] = true, true
			g.FaceUp = g.FaceUp[:0]
			if g.allMatched() {
				g.Status = game.StatusWon
			}
		}
	}
	return g.Cards[i], nil
}

func (g *Game) allMatched() bool {
	for _, m := range g.Matched {
		if !m {
			return false
		}
	}
	return true
}

// MatchedPairs returns how many pairs are locked in.
func (g *Game) MatchedPairs() int {
	n := 0
	for _, m := range g.Matched {
		if m {
			n++
		}
	}
	return n / 2
}

// PuzzleID identifies this puzzle for stats dedup.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}
