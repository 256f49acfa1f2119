// internal/puzzle/numguess/engine.go
//
// Number-guessing game. A secret in [1,100] is drawn per puzzle and
// the player has ten guesses; every wrong guess answers with a
// direction hint. Out-of-range guesses are rejected without costing an
// attempt. This game is committed to the Lehmer generator.

package numguess

import (
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
)

const (
	Name = "numguess"

	Min        = 1
	Max        = 100
	MaxGuesses = 10

	SchemaVersion = 1
)

// Epoch is the launch date for the daily secret.
var Epoch = time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC)

// Hint is the response to a wrong guess.
type Hint string

const (
	HintHigher  Hint = "higher"
	HintLower   Hint = "lower"
	HintCorrect Hint = "correct"
)

// Game is one number-guessing session.
type Game struct {
	ID      string
	Secret  int
	Guesses []int
	Mode    game.Mode
	Status  game.Status
	DateKey string
}

// NewDaily creates today's deterministic puzzle.
func NewDaily(now time.Time) *Game {
	g := newGame(rng.NewLehmer(daily.Seed(now)), game.ModeDaily)
	g.DateKey = daily.DateKey(now)
	return g
}

// NewRandom creates a free-play puzzle.
func NewRandom() *Game {
	return newGame(rng.System(), game.ModeRandom)
}

func newGame(src rng.Source, mode game.Mode) *Game {
	return &Game{
		ID:     uuid.NewString(),
		Secret: Min + rng.Intn(src, Max-Min+1),
		Mode:   mode,
		Status: game.StatusActive,
	}
}

// Guess submits a number and returns a direction hint.
//
// A guess outside [Min, Max] is rejected with ErrInvalidMove and does
// not consume an attempt. A wrong in-range guess consumes one; the
// tenth wrong guess loses the game.
func (g *Game) Guess(n int) (Hint, error) {
	if g.Status.Terminal() {
		return "", game.ErrFinished
	}
	if n < Min || n > Max {
		return "", game.ErrInvalidMove
	}
	g.Guesses = append(g.Guesses, n)
	switch {
	case n == g.Secret:
		g.Status = game.StatusWon
		return HintCorrect, nil
	case n < g.Secret:
		if len(g.Guesses) >= MaxGuesses {
			g.Status = game.StatusLost
		}
		return HintHigher, nil
	default:
		if len(g.Guesses) >= MaxGuesses {
			g.Status = game.StatusLost
		}
		return HintLower, nil
	}
}

// GuessesLeft returns the remaining attempt budget.
func (g *Game) GuessesLeft() int {
	return MaxGuesses - len(g.Guesses)
}

// PuzzleID identifies this puzzle for stats dedup.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}
