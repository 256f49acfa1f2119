// internal/puzzle/gridword/engine.go
//
// Grid-word game: a crossword-style layout of interlocking words is
// generated, then the letters of every non-intersection cell are
// scrambled; the player swaps tiles until the grid matches the
// solution again.
//
// Generation places a center word and iteratively branches new words
// off shared letters of already-placed words, rejecting placements
// that collide with non-matching letters or create accidental adjacent
// words. A layout with fewer than MinWords placed words is thrown away
// and regenerated; both loops are hard-capped and exhaustion surfaces
// ErrGeneration instead of spinning.
//
// This game is committed to the Lehmer generator.

package gridword

import (
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
	"github.com/playable/dailygames/internal/words"
)

const (
	Name = "gridword"

	// Size is the square grid edge length.
	Size = 9

	// MinWords is the minimum accepted layout size; TargetWords stops
	// branching once reached.
	MinWords    = 4
	TargetWords = 7

	SchemaVersion = 1

	// Loop caps. Placement attempts bound one layout's growth;
	// generation attempts bound whole-layout retries; scramble
	// attempts bound the derangement search.
	maxPlacementAttempts  = 80
	maxGenerationAttempts = 20
	maxScrambleAttempts   = 100
)

// Empty marks an unused grid cell.
const Empty = byte('.')

// Epoch is the launch date for the daily grid.
var Epoch = time.Date(2023, 5, 21, 0, 0, 0, 0, time.UTC)

// Placement records one word laid into the grid.
type Placement struct {
	Word   string `json:"word"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Across bool   `json:"across"`
}

// Game is one grid-word session.
type Game struct {
	ID         string
	Solution   []byte // Size*Size cells, Empty where unused
	Tiles      []byte // current display state, same layout
	Locked     []bool // true for intersection cells (never scrambled or swapped)
	Placements []Placement
	Swaps      int
	MaxSwaps   int
	Mode       game.Mode
	Status     game.Status
	DateKey    string
}

// NewDaily creates today's deterministic grid from the answer list.
func NewDaily(list *words.List, now time.Time) (*Game, error) {
	g, err := newGame(rng.NewLehmer(daily.Seed(now)), list, game.ModeDaily)
	if err != nil {
		return nil, err
	}
	g.DateKey = daily.DateKey(now)
	return g, nil
}

// NewRandom creates a free-play grid from system entropy.
func NewRandom(list *words.List) (*Game, error) {
	return newGame(rng.System(), list, game.ModeRandom)
}

func newGame(src rng.Source, list *words.List, mode game.Mode) (*Game, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		layout := buildLayout(src, list)
		if len(layout.placements) < MinWords {
			continue
		}
		g := &Game{
			ID:         uuid.NewString(),
			Solution:   layout.cells,
			Locked:     lockedCells(layout),
			Placements: layout.placements,
			Mode:       mode,
			Status:     game.StatusActive,
		}
		g.Tiles = scramble(src, g.Solution, g.Locked)
		g.MaxSwaps = 2 * countScrambled(g.Solution, g.Locked)
		return g, nil
	}
	return nil, game.ErrGeneration
}

type layout struct {
	cells      []byte
	usage      []int // how many words cover each cell
	placements []Placement
}

// buildLayout grows one candidate layout: a random center word, then
// bounded attempts to branch intersecting words off placed ones.
func buildLayout(src rng.Source, list *words.List) *layout {
	l := &layout{
		cells: make([]byte, Size*Size),
		usage: make([]int, Size*Size),
	}
	for i := range l.cells {
		l.cells[i] = Empty
	}

	first := list.AnswerAt(rng.Intn(src, list.AnswerCount()))
	row := Size / 2
	col := rng.Intn(src, Size-len(first)+1)
	l.place(first, row, col, true)

	for attempt := 0; attempt < maxPlacementAttempts && len(l.placements) < TargetWords; attempt++ {
		base := l.placements[rng.Intn(src, len(l.placements))]
		li := rng.Intn(src, len(base.Word))
		cand := list.AnswerAt(rng.Intn(src, list.AnswerCount()))

		// The candidate must share the chosen letter somewhere.
		shared := base.Word[li]
		ci := -1
		for i := 0; i < len(cand); i++ {
			if cand[i] == shared {
				ci = i
				break
			}
		}
		if ci < 0 {
			continue
		}

		// Cross perpendicular to the base word through the shared cell.
		var r, c int
		if base.Across {
			r, c = base.Row-ci, base.Col+li
		} else {
			r, c = base.Row+li, base.Col-ci
		}
		if l.fits(cand, r, c, !base.Across) {
			l.place(cand, r, c, !base.Across)
		}
	}
	return l
}

func (l *layout) place(w string, row, col int, across bool) {
	for i := 0; i < len(w); i++ {
		idx := cellIndex(row, col, i, across)
		l.cells[idx] = w[i]
		l.usage[idx]++
	}
	l.placements = append(l.placements, Placement{Word: w, Row: row, Col: col, Across: across})
}

// fits checks bounds, letter collisions, endpoint separation, and side
// adjacency for a candidate placement.
func (l *layout) fits(w string, row, col int, across bool) bool {
	endRow, endCol := row, col
	if across {
		endCol = col + len(w) - 1
	} else {
		endRow = row + len(w) - 1
	}
	if row < 0 || col < 0 || endRow >= Size || endCol >= Size {
		return false
	}

	// Cells immediately before and after the word must be empty so two
	// words never fuse into an accidental longer one.
	if across {
		if col > 0 && l.cells[row*Size+col-1] != Empty {
			return false
		}
		if endCol < Size-1 && l.cells[row*Size+endCol+1] != Empty {
			return false
		}
	} else {
		if row > 0 && l.cells[(row-1)*Size+col] != Empty {
			return false
		}
		if endRow < Size-1 && l.cells[(endRow+1)*Size+col] != Empty {
			return false
		}
	}

	crossed := false
	for i := 0; i < len(w); i++ {
		idx := cellIndex(row, col, i, across)
		cur := l.cells[idx]
		if cur != Empty {
			if cur != w[i] {
				return false
			}
			crossed = true
			continue
		}
		// A fresh cell must not touch existing letters sideways, or it
		// would spell accidental adjacent words.
		r, c := idx/Size, idx%Size
		if across {
			if r > 0 && l.cells[(r-1)*Size+c] != Empty {
				return false
			}
			if r < Size-1 && l.cells[(r+1)*Size+c] != Empty {
				return false
			}
		} else {
			if c > 0 && l.cells[r*Size+c-1] != Empty {
				return false
			}
			if c < Size-1 && l.cells[r*Size+c+1] != Empty {
				return false
			}
		}
	}
	return crossed
}

func cellIndex(row, col, i int, across bool) int {
	if across {
		return row*Size + col + i
	}
	return (row+i)*Size + col
}

// lockedCells marks intersection cells: covered by two or more words.
func lockedCells(l *layout) []bool {
	locked := make([]bool, len(l.cells))
	for i, n := range l.usage {
		locked[i] = n >= 2
	}
	return locked
}

// scramble shuffles the letters of all unlocked cells among themselves
// until no cell shows its solution letter, retrying a bounded number
// of times with a pairwise repair pass in between. If the letter
// multiset admits no derangement (a single free cell, or one letter in
// the majority) the best attempt is kept.
func scramble(src rng.Source, solution []byte, locked []bool) []byte {
	tiles := make([]byte, len(solution))
	copy(tiles, solution)

	var idxs []int
	for i, b := range solution {
		if b != Empty && !locked[i] {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) < 2 {
		return tiles
	}

	letters := make([]byte, len(idxs))
	for attempt := 0; attempt < maxScrambleAttempts; attempt++ {
		for k, i := range idxs {
			letters[k] = solution[i]
		}
		rng.Shuffle(src, len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})

		// Repair fixed points by swapping with a compatible partner.
		for k := range letters {
			if letters[k] != solution[idxs[k]] {
				continue
			}
			for m := range letters {
				if m == k {
					continue
				}
				if letters[m] != solution[idxs[k]] && letters[k] != solution[idxs[m]] {
					letters[k], letters[m] = letters[m], letters[k]
					break
				}
			}
		}

		if fixedPoints(letters, solution, idxs) == 0 {
			break
		}
	}
	for k, i := range idxs {
		tiles[i] = letters[k]
	}
	return tiles
}

func fixedPoints(letters []byte, solution []byte, idxs []int) int {
	n := 0
	for k, i := range idxs {
		if letters[k] == solution[i] {
			n++
		}
	}
	return n
}

func countScrambled(solution []byte, locked []bool) int {
	n := 0
	for i, b := range solution {
		if b != Empty && !locked[i] {
			n++
		}
	}
	return n
}

// Swap exchanges the tiles at cells a and b.
//
// Rejected without consuming a swap: terminal session, out-of-range or
// empty cells, locked (intersection) cells, and a == b.
func (g *Game) Swap(a, b int) error {
	if g.Status.Terminal() {
		return game.ErrFinished
	}
	if a == b || !g.swappable(a) || !g.swappable(b) {
		return game.ErrInvalidMove
	}

	g.Tiles[a], g.Tiles[b] = g.Tiles[b], g.Tiles[a]
	g.Swaps++

	if g.Solved() {
		g.Status = game.StatusWon
	} else if g.Swaps >= g.MaxSwaps {
		g.Status = game.StatusLost
	}
	return nil
}

func (g *Game) swappable(i int) bool {
	return i >= 0 && i < len(g.Tiles) && g.Tiles[i] != Empty && !g.Locked[i]
}

// Solved reports whether the display matches the solution everywhere.
func (g *Game) Solved() bool {
	for i := range g.Tiles {
		if g.Tiles[i] != g.Solution[i] {
			return false
		}
	}
	return true
}

// WordCount returns the number of placed words.
func (g *Game) WordCount() int { return len(g.Placements) }

// PuzzleID identifies this puzzle for stats dedup.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}
