package gridword

import (
	"errors"
	"testing"
	"time"

	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/words"
)

func testList(t *testing.T) *words.List {
	t.Helper()
	l, err := words.NewList([]string{
		"crane", "slate", "audio", "house", "plant", "brick", "shine",
		"grove", "lemon", "spark", "trace", "amber", "cedar", "eagle",
		"ocean", "piano", "raven", "sugar", "tulip", "whale", "bloom",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestGenerationProperties(t *testing.T) {
	l := testList(t)
	day := time.Date(2023, 5, 21, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		g, err := NewDaily(l, day.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("day %d: generation failed: %v", i, err)
		}
		if g.WordCount() < MinWords {
			t.Fatalf("day %d: only %d words placed", i, g.WordCount())
		}
		assertLayoutConsistent(t, g)
		assertScrambleProperty(t, g)
	}
}

// assertLayoutConsistent re-reads each placement out of the solution
// grid and checks it spells its word.
func assertLayoutConsistent(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.Placements {
		for i := 0; i < len(p.Word); i++ {
			var idx int
			if p.Across {
				idx = p.Row*Size + p.Col + i
			} else {
				idx = (p.Row+i)*Size + p.Col
			}
			if g.Solution[idx] != p.Word[i] {
				t.Fatalf("placement %+v disagrees with grid at letter %d", p, i)
			}
		}
	}
}

// assertScrambleProperty checks that every unlocked cell was scrambled
// away from its solution letter whenever that is possible at all.
func assertScrambleProperty(t *testing.T, g *Game) {
	t.Helper()
	var bucket []int
	for i := range g.Solution {
		if g.Solution[i] != Empty && !g.Locked[i] {
			bucket = append(bucket, i)
		}
	}
	if len(bucket) <= 1 {
		return // single-cell bucket cannot differ, accepted as-is
	}
	if !derangeable(g, bucket) {
		return
	}
	for _, i := range bucket {
		if g.Tiles[i] == g.Solution[i] {
			t.Fatalf("unlocked cell %d still shows its solution letter %q", i, g.Solution[i])
		}
	}
}

// derangeable reports whether the bucket's letter multiset admits a
// permutation with no fixed letters: no letter may hold a strict
// majority of the positions.
func derangeable(g *Game, bucket []int) bool {
	counts := map[byte]int{}
	for _, i := range bucket {
		counts[g.Solution[i]]++
	}
	for _, c := range counts {
		if 2*c > len(bucket) {
			return false
		}
	}
	return true
}

func TestDailyGridDeterministic(t *testing.T) {
	l := testList(t)
	at := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	a, err := NewDaily(l, at)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewDaily(l, at.Add(10*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Solution) != string(b.Solution) || string(a.Tiles) != string(b.Tiles) {
		t.Fatal("daily grids diverge within the same day")
	}
}

func TestSwapRules(t *testing.T) {
	l := testList(t)
	g, err := NewDaily(l, time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	var free, lockedCell, emptyCell int
	free, lockedCell, emptyCell = -1, -1, -1
	for i := range g.Solution {
		switch {
		case g.Solution[i] == Empty && emptyCell < 0:
			emptyCell = i
		case g.Solution[i] != Empty && g.Locked[i] && lockedCell < 0:
			lockedCell = i
		case g.Solution[i] != Empty && !g.Locked[i] && free < 0:
			free = i
		}
	}
	if free < 0 || emptyCell < 0 {
		t.Fatal("degenerate grid in test setup")
	}

	if err := g.Swap(free, free); !errors.Is(err, game.ErrInvalidMove) {
		t.Fatalf("self-swap: %v", err)
	}
	if err := g.Swap(free, emptyCell); !errors.Is(err, game.ErrInvalidMove) {
		t.Fatalf("swap with empty cell: %v", err)
	}
	if lockedCell >= 0 {
		if err := g.Swap(free, lockedCell); !errors.Is(err, game.ErrInvalidMove) {
			t.Fatalf("swap with locked cell: %v", err)
		}
	}
	if g.Swaps != 0 {
		t.Fatalf("rejected swaps consumed budget: %d", g.Swaps)
	}

	// Find a second free cell and do a legal swap.
	second := -1
	for i := free + 1; i < len(g.Solution); i++ {
		if g.Solution[i] != Empty && !g.Locked[i] {
			second = i
			break
		}
	}
	if second < 0 {
		t.Fatal("no second free cell")
	}
	if err := g.Swap(free, second); err != nil {
		t.Fatalf("legal swap rejected: %v", err)
	}
	if g.Swaps != 1 {
		t.Fatalf("swap count = %d, want 1", g.Swaps)
	}
}

func TestSolveByReversingScramble(t *testing.T) {
	l := testList(t)
	g, err := NewDaily(l, time.Date(2023, 6, 2, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	// Greedily fix one cell per pass; each pass needs at most one swap
	// per wrong cell, so the budget of 2×scrambled is sufficient.
	for !g.Solved() && g.Status == game.StatusActive {
		moved := false
		for i := range g.Tiles {
			if g.Locked[i] || g.Tiles[i] == Empty || g.Tiles[i] == g.Solution[i] {
				continue
			}
			for j := range g.Tiles {
				if j == i || g.Locked[j] || g.Tiles[j] == Empty {
					continue
				}
				if g.Tiles[j] == g.Solution[i] && g.Tiles[j] != g.Solution[j] {
					if err := g.Swap(i, j); err != nil {
						t.Fatalf("solver swap failed: %v", err)
					}
					moved = true
					break
				}
			}
			if moved {
				break
			}
		}
		if !moved {
			t.Fatalf("solver stuck; tiles=%q solution=%q", g.Tiles, g.Solution)
		}
	}
	if g.Status != game.StatusWon {
		t.Fatalf("status = %s after solving, want won", g.Status)
	}
}

func TestSnapshotRoundTripAndStaleness(t *testing.T) {
	l := testList(t)
	at := time.Date(2023, 6, 3, 8, 0, 0, 0, time.UTC)
	g, err := NewDaily(l, at)
	if err != nil {
		t.Fatal(err)
	}
	restored, ok := Restore(g.Snapshot(), at)
	if !ok {
		t.Fatal("restore failed")
	}
	if string(restored.Tiles) != string(g.Tiles) || restored.MaxSwaps != g.MaxSwaps {
		t.Fatal("round trip mismatch")
	}

	if _, ok := Restore(g.Snapshot(), at.AddDate(0, 0, 1)); ok {
		t.Fatal("stale daily save accepted")
	}

	bad := g.Snapshot()
	bad.Tiles = bad.Solution[:len(bad.Solution)-1] + "z"
	if _, ok := Restore(bad, at); ok {
		t.Fatal("tile multiset mismatch accepted")
	}
}
