// internal/puzzle/slide/engine.go
//
// Sliding-tile 15-puzzle. The board is a flat 16-cell permutation of
// 1..15 plus 0 for the blank; a move slides a tile orthogonally
// adjacent to the blank into the blank's cell.
//
// Generation keeps the blank in the last cell and shuffles the fifteen
// tiles, rejecting any permutation with an odd inversion count:
// with the blank on the bottom row, odd-inversion permutations are
// unsolvable by legal slides. Already-solved shuffles are rejected too.
//
// This game is committed to the Lehmer generator.

package slide

import (
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
)

const (
	Name = "slide"

	// Side is the board edge length; Cells the flat board size.
	Side  = 4
	Cells = Side * Side

	SchemaVersion = 1

	// maxShuffleAttempts bounds the parity-rejection loop. Roughly
	// half of all shuffles have even parity, so exhaustion means the
	// random source is broken, not bad luck.
	maxShuffleAttempts = 100
)

// Epoch is the launch date for the daily board.
var Epoch = time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC)

// Game is one sliding-puzzle session.
type Game struct {
	ID      string
	Board   []int // flat row-major, 0 is the blank
	Moves   int
	Mode    game.Mode
	Status  game.Status
	DateKey string
}

// NewDaily creates today's deterministic board.
func NewDaily(now time.Time) (*Game, error) {
	board, err := generate(rng.NewLehmer(daily.Seed(now)))
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:      uuid.NewString(),
		Board:   board,
		Mode:    game.ModeDaily,
		Status:  game.StatusActive,
		DateKey: daily.DateKey(now),
	}, nil
}

// NewRandom creates a free-play board from system entropy.
func NewRandom() (*Game, error) {
	board, err := generate(rng.System())
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:     uuid.NewString(),
		Board:  board,
		Mode:   game.ModeRandom,
		Status: game.StatusActive,
	}, nil
}

// generate shuffles tiles 1..15 (blank fixed in the last cell) until
// the permutation is solvable and not already solved.
func generate(src rng.Source) ([]int, error) {
	board := make([]int, Cells)
	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		for i := 0; i < Cells-1; i++ {
			board[i] = i + 1
		}
		board[Cells-1] = 0
		rng.Shuffle(src, Cells-1, func(i, j int) {
			board[i], board[j] = board[j], board[i]
		})
		if Inversions(board)%2 == 0 && !solved(board) {
			return board, nil
		}
	}
	return nil, game.ErrGeneration
}

// Inversions counts out-of-order tile pairs, ignoring the blank.
// Parity determines solvability when the blank sits on the bottom row.
func Inversions(board []int) int {
	n := 0
	for i := 0; i < len(board); i++ {
		if board[i] == 0 {
			continue
		}
		for j := i + 1; j < len(board); j++ {
			if board[j] != 0 && board[i] > board[j] {
				n++
			}
		}
	}
	return n
}

// Slide moves the tile at cell pos into the blank. The tile must be
// orthogonally adjacent to the blank; anything else is ErrInvalidMove
// and consumes no move.
func (g *Game) Slide(pos int) error {
	if g.Status.Terminal() {
		return game.ErrFinished
	}
	if pos < 0 || pos >= Cells || g.Board[pos] == 0 {
		return game.ErrInvalidMove
	}
	blank := g.blank()
	if !adjacent(pos, blank) {
		return game.ErrInvalidMove
	}

	g.Board[blank], g.Board[pos] = g.Board[pos], 0
	g.Moves++
	if solved(g.Board) {
		g.Status = game.StatusWon
	}
	return nil
}

func (g *Game) blank() int {
	for i, v := range g.Board {
		if v == 0 {
			return i
		}
	}
	return -1
}

func adjacent(a, b int) bool {
	ar, ac := a/Side, a%Side
	br, bc := b/Side, b%Side
	dr, dc := ar-br, ac-bc
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Solved reports whether the board is back in order with the blank
// in the last cell.
func (g *Game) Solved() bool { return solved(g.Board) }

func solved(board []int) bool {
	for i := 0; i < Cells-1; i++ {
		if board[i] != i+1 {
			return false
		}
	}
	return board[Cells-1] == 0
}

// PuzzleID identifies this puzzle for stats dedup.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}
