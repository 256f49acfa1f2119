// internal/httpserver/registry.go
//
// Uniform HTTP surface over the six game engines. Each engine keeps its
// own typed API; the adapters here translate a generic move payload
// into the engine's move, expose a JSON-safe view of the session, and
// carry save/restore through the KV store so a daily game survives a
// reconnect.

package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/persist"
	"github.com/playable/dailygames/internal/puzzle/flood"
	"github.com/playable/dailygames/internal/puzzle/gridword"
	"github.com/playable/dailygames/internal/puzzle/memory"
	"github.com/playable/dailygames/internal/puzzle/numguess"
	"github.com/playable/dailygames/internal/puzzle/slide"
	"github.com/playable/dailygames/internal/puzzle/wordgame"
	"github.com/playable/dailygames/internal/stats"
	"github.com/playable/dailygames/internal/words"
)

// moveReq is the shared move payload. Each game reads its own field;
// the rest stay nil/empty.
type moveReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess,omitempty"`  // wordgame
	Color  *int   `json:"color,omitempty"`  // flood
	Pos    *int   `json:"pos,omitempty"`    // slide
	A      *int   `json:"a,omitempty"`      // gridword
	B      *int   `json:"b,omitempty"`      // gridword
	Card   *int   `json:"card,omitempty"`   // memory
	Number *int   `json:"n,omitempty"`      // numguess
}

// session is what the HTTP handlers drive, independent of the game.
type session interface {
	PuzzleID() string
	Status() game.Status
	Move(req moveReq) (map[string]any, error)
	View() map[string]any
	ShareText(now time.Time) string
	Result() stats.Result
	Persist(ctx context.Context, kv persist.KV) error
}

// gameDef wires one engine into the registry. resume only applies to
// daily mode: a saved daily session is revived if it still matches
// today's puzzle, otherwise the stale save is discarded by Restore.
type gameDef struct {
	name   string
	create func(list *words.List, mode game.Mode, now time.Time) (session, error)
	resume func(ctx context.Context, kv persist.KV, list *words.List, now time.Time) (session, bool)
}

var registry = map[string]gameDef{
	wordgame.Name: {
		name: wordgame.Name,
		create: func(list *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				return wordSession{wordgame.NewDaily(list, now)}, nil
			}
			return wordSession{wordgame.NewRandom(list)}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, list *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(wordgame.Name, game.ModeDaily, wordgame.SchemaVersion)
			snap, ok := persist.Load[wordgame.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := wordgame.Restore(snap, list, now)
			if !ok {
				return nil, false
			}
			return wordSession{g}, true
		},
	},
	flood.Name: {
		name: flood.Name,
		create: func(_ *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				return floodSession{flood.NewDaily(now)}, nil
			}
			return floodSession{flood.New(mode)}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, _ *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(flood.Name, game.ModeDaily, flood.SchemaVersion)
			snap, ok := persist.Load[flood.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := flood.Restore(snap, now)
			if !ok {
				return nil, false
			}
			return floodSession{g}, true
		},
	},
	slide.Name: {
		name: slide.Name,
		create: func(_ *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				g, err := slide.NewDaily(now)
				if err != nil {
					return nil, err
				}
				return slideSession{g}, nil
			}
			g, err := slide.NewRandom()
			if err != nil {
				return nil, err
			}
			return slideSession{g}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, _ *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(slide.Name, game.ModeDaily, slide.SchemaVersion)
			snap, ok := persist.Load[slide.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := slide.Restore(snap, now)
			if !ok {
				return nil, false
			}
			return slideSession{g}, true
		},
	},
	gridword.Name: {
		name: gridword.Name,
		create: func(list *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				g, err := gridword.NewDaily(list, now)
				if err != nil {
					return nil, err
				}
				return gridSession{g}, nil
			}
			g, err := gridword.NewRandom(list)
			if err != nil {
				return nil, err
			}
			return gridSession{g}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, _ *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(gridword.Name, game.ModeDaily, gridword.SchemaVersion)
			snap, ok := persist.Load[gridword.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := gridword.Restore(snap, now)
			if !ok {
				return nil, false
			}
			return gridSession{g}, true
		},
	},
	memory.Name: {
		name: memory.Name,
		create: func(_ *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				return memorySession{memory.NewDaily(now)}, nil
			}
			return memorySession{memory.New(mode)}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, _ *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(memory.Name, game.ModeDaily, memory.SchemaVersion)
			snap, ok := persist.Load[memory.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := memory.Restore(snap, now)
			if !ok {
				return nil, false
			}
			return memorySession{g}, true
		},
	},
	numguess.Name: {
		name: numguess.Name,
		create: func(_ *words.List, mode game.Mode, now time.Time) (session, error) {
			if mode == game.ModeDaily {
				return numSession{numguess.NewDaily(now)}, nil
			}
			return numSession{numguess.NewRandom()}, nil
		},
		resume: func(ctx context.Context, kv persist.KV, _ *words.List, now time.Time) (session, bool) {
			key := persist.StateKey(numguess.Name, game.ModeDaily, numguess.SchemaVersion)
			snap, ok := persist.Load[numguess.Snapshot](ctx, kv, key)
			if !ok {
				return nil, false
			}
			g, ok := numguess.Restore(snap, now)
			if !ok {
				return nil, false
			}
			return numSession{g}, true
		},
	},
}

// winResult fills the shared Result fields for a terminal session.
// Lower scores are better across all games.
func winResult(puzzleID string, st game.Status, score int) stats.Result {
	res := stats.Result{PuzzleID: puzzleID, Won: st == game.StatusWon}
	if res.Won {
		res.Score = score
		res.HasScore = true
		res.Bucket = strconv.Itoa(score)
	} else {
		res.Bucket = "fail"
	}
	return res
}

// ------------------------------ wordgame -----------------------------------

type wordSession struct{ g *wordgame.Game }

func (s wordSession) PuzzleID() string    { return s.g.PuzzleID() }
func (s wordSession) Status() game.Status { return s.g.Status }

func (s wordSession) Move(req moveReq) (map[string]any, error) {
	marks, err := s.g.Guess(req.Guess)
	if err != nil {
		return nil, err
	}
	return map[string]any{"marks": marks, "guesses": len(s.g.Guesses)}, nil
}

func (s wordSession) View() map[string]any {
	v := map[string]any{
		"guesses":    s.g.Guesses,
		"marks":      s.g.Marks,
		"maxGuesses": wordgame.MaxGuesses,
		"mode":       s.g.Mode,
		"status":     s.g.Status,
	}
	// The answer leaves the server only once the game is over.
	if s.g.Status.Terminal() {
		v["target"] = s.g.Target
	}
	return v
}

func (s wordSession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s wordSession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, len(s.g.Guesses))
}

func (s wordSession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(wordgame.Name, s.g.Mode, wordgame.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}

// ------------------------------- flood -------------------------------------

type floodSession struct{ g *flood.Game }

func (s floodSession) PuzzleID() string    { return s.g.PuzzleID() }
func (s floodSession) Status() game.Status { return s.g.Status }

func (s floodSession) Move(req moveReq) (map[string]any, error) {
	if req.Color == nil {
		return nil, game.ErrInvalidMove
	}
	if err := s.g.Pick(*req.Color); err != nil {
		return nil, err
	}
	return map[string]any{"board": s.g.Board, "moves": s.g.Moves, "movesLeft": s.g.MovesLeft()}, nil
}

func (s floodSession) View() map[string]any {
	return map[string]any{
		"board":    s.g.Board,
		"size":     s.g.Size,
		"colors":   s.g.Colors,
		"moves":    s.g.Moves,
		"maxMoves": s.g.MaxMoves,
		"mode":     s.g.Mode,
		"status":   s.g.Status,
	}
}

func (s floodSession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s floodSession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, s.g.Moves)
}

func (s floodSession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(flood.Name, s.g.Mode, flood.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}

// ------------------------------- slide -------------------------------------

type slideSession struct{ g *slide.Game }

func (s slideSession) PuzzleID() string    { return s.g.PuzzleID() }
func (s slideSession) Status() game.Status { return s.g.Status }

func (s slideSession) Move(req moveReq) (map[string]any, error) {
	if req.Pos == nil {
		return nil, game.ErrInvalidMove
	}
	if err := s.g.Slide(*req.Pos); err != nil {
		return nil, err
	}
	return map[string]any{"board": s.g.Board, "moves": s.g.Moves}, nil
}

func (s slideSession) View() map[string]any {
	return map[string]any{
		"board":  s.g.Board,
		"side":   slide.Side,
		"moves":  s.g.Moves,
		"mode":   s.g.Mode,
		"status": s.g.Status,
	}
}

func (s slideSession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s slideSession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, s.g.Moves)
}

func (s slideSession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(slide.Name, s.g.Mode, slide.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}

// ------------------------------ gridword -----------------------------------

type gridSession struct{ g *gridword.Game }

func (s gridSession) PuzzleID() string    { return s.g.PuzzleID() }
func (s gridSession) Status() game.Status { return s.g.Status }

func (s gridSession) Move(req moveReq) (map[string]any, error) {
	if req.A == nil || req.B == nil {
		return nil, game.ErrInvalidMove
	}
	if err := s.g.Swap(*req.A, *req.B); err != nil {
		return nil, err
	}
	return map[string]any{"tiles": string(s.g.Tiles), "swaps": s.g.Swaps, "maxSwaps": s.g.MaxSwaps}, nil
}

func (s gridSession) View() map[string]any {
	v := map[string]any{
		"tiles":    string(s.g.Tiles),
		"locked":   s.g.Locked,
		"size":     gridword.Size,
		"words":    s.g.WordCount(),
		"swaps":    s.g.Swaps,
		"maxSwaps": s.g.MaxSwaps,
		"mode":     s.g.Mode,
		"status":   s.g.Status,
	}
	if s.g.Status.Terminal() {
		v["solution"] = string(s.g.Solution)
	}
	return v
}

func (s gridSession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s gridSession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, s.g.Swaps)
}

func (s gridSession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(gridword.Name, s.g.Mode, gridword.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}

// ------------------------------- memory ------------------------------------

type memorySession struct{ g *memory.Game }

func (s memorySession) PuzzleID() string    { return s.g.PuzzleID() }
func (s memorySession) Status() game.Status { return s.g.Status }

func (s memorySession) Move(req moveReq) (map[string]any, error) {
	if req.Card == nil {
		return nil, game.ErrInvalidMove
	}
	value, err := s.g.Flip(*req.Card)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"value":   value,
		"faceUp":  s.g.FaceUp,
		"matched": s.g.Matched,
		"turns":   s.g.Turns,
	}, nil
}

func (s memorySession) View() map[string]any {
	// Card values stay server-side while face down; only matched or
	// currently revealed cards are disclosed.
	revealed := make([]int, len(s.g.Cards))
	for i := range revealed {
		revealed[i] = -1
	}
	for i, m := range s.g.Matched {
		if m {
			revealed[i] = s.g.Cards[i]
		}
	}
	for _, i := range s.g.FaceUp {
		revealed[i] = s.g.Cards[i]
	}
	return map[string]any{
		"cards":   revealed,
		"matched": s.g.Matched,
		"faceUp":  s.g.FaceUp,
		"turns":   s.g.Turns,
		"pairs":   s.g.Pairs,
		"mode":    s.g.Mode,
		"status":  s.g.Status,
	}
}

func (s memorySession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s memorySession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, s.g.Turns)
}

func (s memorySession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(memory.Name, s.g.Mode, memory.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}

// ------------------------------ numguess -----------------------------------

type numSession struct{ g *numguess.Game }

func (s numSession) PuzzleID() string    { return s.g.PuzzleID() }
func (s numSession) Status() game.Status { return s.g.Status }

func (s numSession) Move(req moveReq) (map[string]any, error) {
	if req.Number == nil {
		return nil, game.ErrInvalidMove
	}
	hint, err := s.g.Guess(*req.Number)
	if err != nil {
		return nil, err
	}
	return map[string]any{"hint": hint, "guessesLeft": s.g.GuessesLeft()}, nil
}

func (s numSession) View() map[string]any {
	v := map[string]any{
		"guesses":     s.g.Guesses,
		"guessesLeft": s.g.GuessesLeft(),
		"min":         numguess.Min,
		"max":         numguess.Max,
		"mode":        s.g.Mode,
		"status":      s.g.Status,
	}
	if s.g.Status.Terminal() {
		v["secret"] = s.g.Secret
	}
	return v
}

func (s numSession) ShareText(now time.Time) string { return s.g.Share(now) }

func (s numSession) Result() stats.Result {
	return winResult(s.g.PuzzleID(), s.g.Status, len(s.g.Guesses))
}

func (s numSession) Persist(ctx context.Context, kv persist.KV) error {
	key := persist.StateKey(numguess.Name, s.g.Mode, numguess.SchemaVersion)
	return persist.Save(ctx, kv, key, s.g.Snapshot())
}
