package slide

import (
	"errors"
	"testing"
	"time"

	"github.com/playable/dailygames/internal/game"
)

func TestGeneratedBoardsSolvableAndUnsolved(t *testing.T) {
	day := time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		g, err := NewDaily(day.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("daily generation failed on day %d: %v", i, err)
		}
		if inv := Inversions(g.Board); inv%2 != 0 {
			t.Fatalf("daily board day %d has odd inversions (%d): %v", i, inv, g.Board)
		}
		if g.Solved() {
			t.Fatalf("daily board day %d generated already solved", i)
		}
	}
	for i := 0; i < 500; i++ {
		g, err := NewRandom()
		if err != nil {
			t.Fatalf("random generation failed: %v", err)
		}
		if inv := Inversions(g.Board); inv%2 != 0 {
			t.Fatalf("random board has odd inversions (%d): %v", inv, g.Board)
		}
		if g.Solved() {
			t.Fatal("random board generated already solved")
		}
	}
}

func TestDailyBoardDeterministic(t *testing.T) {
	at := time.Date(2024, 2, 2, 7, 0, 0, 0, time.UTC)
	a, _ := NewDaily(at)
	b, _ := NewDaily(at.Add(12 * time.Hour))
	for i := range a.Board {
		if a.Board[i] != b.Board[i] {
			t.Fatalf("daily boards diverge at cell %d", i)
		}
	}
}

func TestInversions(t *testing.T) {
	tests := []struct {
		name  string
		board []int
		want  int
	}{
		{"solved", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}, 0},
		{"one swap", []int{2, 1, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}, 1},
		{"blank ignored", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 15, 14}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inversions(tt.board); got != tt.want {
				t.Fatalf("Inversions = %d, want %d", got, tt.want)
			}
		})
	}
}

func nearlySolved() *Game {
	// Blank at cell 14, tile 15 at cell 15: one slide from solved.
	return &Game{
		ID:     "t",
		Board:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15},
		Mode:   game.ModeRandom,
		Status: game.StatusActive,
	}
}

func TestSlideValidation(t *testing.T) {
	g := nearlySolved()
	tests := []struct {
		name string
		pos  int
	}{
		{"out of range", 16},
		{"negative", -1},
		{"blank itself", 14},
		{"not adjacent", 0},
		{"diagonal", 9}, // cell 9 is diagonal to blank at 14
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Slide(tt.pos); !errors.Is(err, game.ErrInvalidMove) {
				t.Fatalf("Slide(%d) = %v, want ErrInvalidMove", tt.pos, err)
			}
		})
	}
	if g.Moves != 0 {
		t.Fatalf("invalid slides consumed moves: %d", g.Moves)
	}
}

func TestSlideToWin(t *testing.T) {
	g := nearlySolved()
	if err := g.Slide(15); err != nil {
		t.Fatal(err)
	}
	if g.Status != game.StatusWon || g.Moves != 1 {
		t.Fatalf("status=%s moves=%d, want won/1", g.Status, g.Moves)
	}
	if err := g.Slide(14); !errors.Is(err, game.ErrFinished) {
		t.Fatalf("terminal board accepted a slide: %v", err)
	}
}

func TestSlideMovesTile(t *testing.T) {
	g := nearlySolved()
	// Slide tile 14 (cell 13) right into the blank at 14.
	if err := g.Slide(13); err != nil {
		t.Fatal(err)
	}
	if g.Board[14] != 14 || g.Board[13] != 0 {
		t.Fatalf("slide wrong: %v", g.Board)
	}
	if g.Status != game.StatusActive {
		t.Fatalf("unexpected terminal state: %s", g.Status)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	at := time.Date(2024, 2, 2, 7, 0, 0, 0, time.UTC)
	g, _ := NewDaily(at)
	restored, ok := Restore(g.Snapshot(), at)
	if !ok {
		t.Fatal("restore failed")
	}
	for i := range g.Board {
		if restored.Board[i] != g.Board[i] {
			t.Fatal("board mismatch after round trip")
		}
	}
}

func TestRestoreRejectsBadBoards(t *testing.T) {
	at := time.Date(2024, 2, 2, 7, 0, 0, 0, time.UTC)
	g, _ := NewDaily(at)
	snap := g.Snapshot()

	dup := snap
	dup.Board = append([]int{}, snap.Board...)
	dup.Board[0] = dup.Board[1] // duplicate tile
	if _, ok := Restore(dup, at); ok {
		t.Fatal("duplicate tiles accepted")
	}

	if _, ok := Restore(snap, at.AddDate(0, 0, 1)); ok {
		t.Fatal("stale daily save accepted")
	}
}
