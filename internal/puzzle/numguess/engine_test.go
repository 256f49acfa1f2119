package numguess

import (
	"errors"
	"testing"
	"time"

	"github.com/playable/dailygames/internal/game"
)

func TestHintWalkthrough(t *testing.T) {
	g := &Game{ID: "t", Secret: 42, Mode: game.ModeRandom, Status: game.StatusActive}

	steps := []struct {
		guess int
		hint  Hint
	}{
		{10, HintHigher},
		{70, HintLower},
		{50, HintLower},
		{42, HintCorrect},
	}
	for i, s := range steps {
		hint, err := g.Guess(s.guess)
		if err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
		if hint != s.hint {
			t.Fatalf("guess %d (%d): hint %q, want %q", i+1, s.guess, hint, s.hint)
		}
	}
	if g.Status != game.StatusWon {
		t.Fatalf("status = %s, want won", g.Status)
	}
	if left := g.GuessesLeft(); left != 6 {
		t.Fatalf("guessesLeft = %d, want 6", left)
	}
	if _, err := g.Guess(42); !errors.Is(err, game.ErrFinished) {
		t.Fatalf("terminal game accepted a guess: %v", err)
	}
}

func TestOutOfRangeGuessIsFree(t *testing.T) {
	g := &Game{ID: "t", Secret: 42, Mode: game.ModeRandom, Status: game.StatusActive}
	for _, n := range []int{0, -5, 101, 1000} {
		if _, err := g.Guess(n); !errors.Is(err, game.ErrInvalidMove) {
			t.Fatalf("guess %d: %v", n, err)
		}
	}
	if g.GuessesLeft() != MaxGuesses {
		t.Fatalf("invalid guesses consumed attempts: %d left", g.GuessesLeft())
	}
}

func TestLossOnTenthWrongGuess(t *testing.T) {
	g := &Game{ID: "t", Secret: 42, Mode: game.ModeRandom, Status: game.StatusActive}
	for i := 0; i < MaxGuesses-1; i++ {
		if _, err := g.Guess(1 + i); err != nil {
			t.Fatal(err)
		}
		if g.Status != game.StatusActive {
			t.Fatalf("lost early after %d guesses", i+1)
		}
	}
	hint, err := g.Guess(99)
	if err != nil {
		t.Fatal(err)
	}
	if hint != HintLower || g.Status != game.StatusLost {
		t.Fatalf("hint=%q status=%s, want lower/lost", hint, g.Status)
	}
}

func TestDailySecretDeterministic(t *testing.T) {
	at := time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)
	a, b := NewDaily(at), NewDaily(at.Add(11*time.Hour))
	if a.Secret != b.Secret {
		t.Fatalf("daily secrets diverge: %d vs %d", a.Secret, b.Secret)
	}
	for i := 0; i < 365; i++ {
		s := NewDaily(at.AddDate(0, 0, i)).Secret
		if s < Min || s > Max {
			t.Fatalf("day %d: secret %d out of range", i, s)
		}
	}
}

func TestSnapshotRoundTripAndStaleness(t *testing.T) {
	at := time.Date(2024, 7, 3, 9, 0, 0, 0, time.UTC)
	g := NewDaily(at)
	wrong := g.Secret%Max + 1
	if wrong == g.Secret {
		wrong = g.Secret - 1
	}
	_, _ = g.Guess(wrong)

	restored, ok := Restore(g.Snapshot(), at)
	if !ok {
		t.Fatal("restore failed")
	}
	if restored.Secret != g.Secret || len(restored.Guesses) != 1 {
		t.Fatal("round trip mismatch")
	}

	if _, ok := Restore(g.Snapshot(), at.AddDate(0, 0, 1)); ok {
		t.Fatal("stale daily save accepted")
	}

	bad := g.Snapshot()
	bad.Secret = 0
	if _, ok := Restore(bad, at); ok {
		t.Fatal("out-of-range secret accepted")
	}
}
