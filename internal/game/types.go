// internal/game/types.go
//
// Shared vocabulary for all game engines.
// Defines:
//   - Status: active → won | lost, terminal states absorbing.
//   - Mode:   daily (date-seeded) vs random (free play) vs tiers.
//   - Sentinel errors reused by every engine.

package game

import "errors"

// Status is the lifecycle state of a session.
// Terminal states are absorbing: engines reject actions once a session
// is won or lost.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// Terminal reports whether s is won or lost.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Mode selects how a puzzle is generated. Daily puzzles are seeded from
// the calendar date so every player sees the same board; random mode
// uses system entropy. Difficulty tiers behave like random with
// game-specific parameters (board size, color count).
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeRandom Mode = "random"
	ModeEasy   Mode = "easy"
	ModeMedium Mode = "medium"
	ModeHard   Mode = "hard"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeDaily, ModeRandom, ModeEasy, ModeMedium, ModeHard:
		return true
	}
	return false
}

var (
	// ErrFinished is returned when an action arrives after a session
	// reached a terminal state.
	ErrFinished = errors.New("game finished")

	// ErrInvalidMove is returned for out-of-range or otherwise
	// malformed player actions. Invalid moves never consume a turn.
	ErrInvalidMove = errors.New("invalid move")

	// ErrGeneration is returned when bounded puzzle generation retries
	// are exhausted. Surfaced to the player as a "try again" state.
	ErrGeneration = errors.New("puzzle generation failed")
)
