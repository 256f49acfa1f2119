// internal/puzzle/wordgame/engine.go
//
// Word-guess engine.
// Responsibilities:
//   - Pick the target word: daily mode derives it deterministically
//     from the calendar date, random mode from system entropy. Targets
//     are only ever drawn from the answers list, never from the larger
//     allowed-guesses list.
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses using the classic two-pass algorithm.
//   - Track state transitions: active → won/lost.
//
// This game is committed to the Mulberry generator. Switching
// algorithms would silently change everyone's daily word.

package wordgame

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/rng"
	"github.com/playable/dailygames/internal/words"
)

const (
	// Name is the registry/persistence namespace for this game.
	Name = "wordgame"

	// MaxGuesses is the attempt budget.
	MaxGuesses = 6

	// SchemaVersion suffixes persistence keys; bump to invalidate
	// old saves on format changes.
	SchemaVersion = 1
)

// Epoch is the launch date; drives the share string's puzzle number.
var Epoch = time.Date(2022, 6, 19, 0, 0, 0, 0, time.UTC)

// Per-letter marks, matching the classic 0/1/2 convention.
const (
	MarkMiss    = 0
	MarkPresent = 1
	MarkHit     = 2
)

// ErrNotInList rejects guesses missing from the allowed list. Such
// guesses are free: they never consume an attempt.
var ErrNotInList = errors.New("not in word list")

// Game is one word-guess session.
type Game struct {
	ID      string
	Target  string
	Mode    game.Mode
	Guesses []string
	Marks   [][]int
	Status  game.Status
	DateKey string // set for daily games; identifies the puzzle

	list *words.List
}

// NewDaily creates today's deterministic game: the seed is derived from
// the local date, so every player with the same answer list gets the
// same target on the same day.
func NewDaily(list *words.List, now time.Time) *Game {
	src := rng.NewMulberry(daily.Seed(now))
	return &Game{
		ID:      uuid.NewString(),
		Target:  list.AnswerAt(rng.Intn(src, list.AnswerCount())),
		Mode:    game.ModeDaily,
		Status:  game.StatusActive,
		DateKey: daily.DateKey(now),
		list:    list,
	}
}

// NewRandom creates a free-play game with a system-random target.
func NewRandom(list *words.List) *Game {
	src := rng.System()
	return &Game{
		ID:     uuid.NewString(),
		Target: list.AnswerAt(rng.Intn(src, list.AnswerCount())),
		Mode:   game.ModeRandom,
		Status: game.StatusActive,
		list:   list,
	}
}

// Guess validates and scores one guess, mutating the session.
//
// Validation:
//   - session must be active
//   - guess must be exactly words.Length letters a–z (ErrInvalidMove)
//   - guess must be in the allowed list (ErrNotInList, attempt is free)
//
// Transitions: all-hit → won; attempt budget exhausted → lost.
func (g *Game) Guess(guess string) ([]int, error) {
	if g.Status.Terminal() {
		return nil, game.ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != words.Length || !isAlpha(guess) {
		return nil, game.ErrInvalidMove
	}
	if !g.list.IsAllowed(guess) {
		return nil, ErrNotInList
	}

	marks := Score(guess, g.Target)
	g.Guesses = append(g.Guesses, guess)
	g.Marks = append(g.Marks, marks)

	if allHit(marks) {
		g.Status = game.StatusWon
	} else if len(g.Guesses) >= MaxGuesses {
		g.Status = game.StatusLost
	}
	return marks, nil
}

// PuzzleID identifies this puzzle for stats dedup: the date for daily
// games (one result per day), the session id otherwise.
func (g *Game) PuzzleID() string {
	if g.Mode == game.ModeDaily {
		return "daily:" + g.DateKey
	}
	return "session:" + g.ID
}

// Score compares guess against answer and returns per-letter marks.
//
// Pass 1: mark exact matches as hits and count the remaining answer
// letters. Pass 2: for each non-hit guess letter, mark present while
// unused count remains, otherwise miss. This handles repeated letters
// in both answer and guess correctly.
func Score(guess, answer string) []int {
	n := len(answer)
	out := make([]int, n)
	if len(guess) != n {
		return out
	}

	freq := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			out[i] = MarkHit
		} else {
			freq[answer[i]]++
		}
	}
	for i := 0; i < n; i++ {
		if out[i] == MarkHit {
			continue
		}
		if c := guess[i]; freq[c] > 0 {
			out[i] = MarkPresent
			freq[c]--
		}
	}
	return out
}

func allHit(marks []int) bool {
	for _, m := range marks {
		if m != MarkHit {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
