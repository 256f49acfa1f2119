// internal/puzzle/flood/engine.go
//
// Flood-fill color game. The board is an N×N grid of color indices;
// each move picks a color and floods the connected region at the
// top-left corner. Win when the whole board is one color inside the
// move budget; picking the region's current color is a no-op and does
// not consume a move.
//
// This game is committed to the Lehmer generator.

package flood

import (
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
)

const (
	Name = "flood"

	SchemaVersion = 1
)

// Epoch is the launch date for the daily board.
var Epoch = time.Date(2022, 9, 4, 0, 0, 0, 0, time.UTC)

// Params sizes a board per mode.
type Params struct {
	Size     int
	Colors   int
	MaxMoves int
}

// ParamsFor maps a mode to board parameters. Daily boards use the
// medium configuration.
func ParamsFor(mode game.Mode) Params {
	switch mode {
	case game.ModeEasy:
		return Params{Size: 10, Colors: 5, MaxMoves: 25}
	case game.ModeHard:
		return Params{Size: 18, Colors: 7, MaxMoves: 25}
	default: // daily, random, medium
		return Params{Size: 14, Colors: 6, MaxMoves: 25}
	}
}

// Game is one flood-fill session. Board is row-major.
type Game struct {
	ID       string
	Size     int
	Colors   int
	MaxMoves int
	Board    []int
	Moves    int
	Mode     game.Mode
	Status   game.Status
	DateKey  string
}

// NewDaily creates today's deterministic board.
func NewDaily(now time.Time) *Game {
	p := ParamsFor(game.ModeDaily)
	g := newGame(rng.NewLehmer(daily.Seed(now)), p, game.ModeDaily)
	g.DateKey = daily.DateKey(now)
	return g
}

// New creates a free-play board for the given mode.
func New(mode game.Mode) *Game {
	return newGame(rng.System(), ParamsFor(mode), mode)
}

func newGame(src rng.Source, p Params, mode game.Mode) *Game {
	g := &Game{
		ID:       uuid.NewString(),
		Size:     p.Size,
		Colors:   p.Colors,
		MaxMoves: p.MaxMoves,
		Board:    fill(src, p.Size, p.Colors),
		Mode:     mode,
		Status:   game.StatusActive,
	}
	// A board that generates uniform is already won at zero moves.
	if g.Uniform() {
		g.Status = game.StatusWon
	}
	return g
}

// fill produces a row-major Size×Size grid of uniform-random color
// indices in [0, colors).
func fill(src rng.Source, size, colors int) []int {
	b := make([]int, size*size)
	for i := range b {
		b[i] = rng.Intn(src, colors)
	}
	return b
}

// Pick floods the top-left region with color.
//
//   - terminal session: ErrFinished
//   - color out of [0, Colors): ErrInvalidMove
//   - color equal to the current region color: no-op, no move consumed
//
// After a real move the win condition (uniform board) is checked, then
// the loss condition (move budget exhausted). Loss triggers exactly
// when Moves reaches MaxMoves without a uniform board.
func (g *Game) Pick(color int) error {
	if g.Status.Terminal() {
		return game.ErrFinished
	}
	if color < 0 || color >= g.Colors {
		return game.ErrInvalidMove
	}
	if color == g.Board[0] {
		return nil
	}

	g.flood(color)
	g.Moves++

	if g.Uniform() {
		g.Status = game.StatusWon
	} else if g.Moves >= g.MaxMoves {
		g.Status = game.StatusLost
	}
	return nil
}

// flood replaces the connected component at index 0 with color using an
// explicit stack (boards are small, recursion is pointless).
func (g *Game) flood(color int) {
	from := g.Board[0]
	stack := []int{0}
	g.Board[0] = color
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := i/g.Size, i%g.Size
		for _, n := range [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
			nr, nc := n[0], n[1]
			if nr < 0 || nr >= g.Size || nc < 0 || nc >= g.Size {
				continue
			}
			j := nr*g.Size + nc
			if g.Board[j] == from {
				g.Board[j] = color
				stack = append(stack, j)
			}
		}
	}
}

// Uniform reports whether the whole board is one color.
func (g *Game) Uniform() bool {
	for _, v := range g.Board[1:] {
		if v != g.Board[0] {
			return false
		}
	}
	return true
}

// MovesLeft returns the remaining move budget.
func (g *Game) MovesLeft() int { return g.MaxMoves - g.Moves }

// PuzzleID identifies this puzzle for stats dedup.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}
