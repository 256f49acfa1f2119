// internal/rng/rng.go
//
// Deterministic random number sources for daily puzzle generation.
// Two generators are provided:
//   - Lehmer: Park-Miller multiplicative LCG, state*16807 mod (2^31-1).
//   - Mulberry: mulberry32 mixing generator over a 32-bit state.
//
// Each game commits to exactly one generator and keeps it fixed; the
// daily puzzle contract ("same seed, same puzzle, for everyone") breaks
// silently for that game if the algorithm changes between releases.
//
// Both implement Source, which the generators consume; System() returns
// a crypto-backed Source for free-play modes.
package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields a stream of floats in [0,1). Implementations are
// mutable streams: the only way to restart a deterministic source is to
// reconstruct it with the same seed.
type Source interface {
	Next() float64
}

const lehmerModulus = 2147483647 // 2^31 - 1, prime

// Lehmer is a Park-Miller multiplicative congruential generator.
// State is always kept in [1, 2^31-2]; zero is a fixed point of the
// multiplication step and would collapse the whole sequence.
type Lehmer struct {
	state int64
}

// NewLehmer seeds a Lehmer generator. Any integer seed is accepted;
// non-positive residues are bumped into the valid state range.
func NewLehmer(seed int32) *Lehmer {
	s := int64(seed) % lehmerModulus
	if s <= 0 {
		s += lehmerModulus - 1
	}
	return &Lehmer{state: s}
}

// Next advances the state and returns a float in [0,1).
func (l *Lehmer) Next() float64 {
	l.state = l.state * 16807 % lehmerModulus
	return float64(l.state-1) / float64(lehmerModulus-1)
}

// Mulberry is a mulberry32-style generator: a 32-bit counter stepped by
// a Weyl increment, mixed into the output. Used by the word game.
type Mulberry struct {
	state uint32
}

// NewMulberry seeds a Mulberry generator.
func NewMulberry(seed int32) *Mulberry {
	return &Mulberry{state: uint32(seed)}
}

// Next advances the state and returns a float in [0,1).
func (m *Mulberry) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// StringSeed hashes an arbitrary string to a 32-bit seed using the
// polynomial rolling hash hash = hash*31 + codepoint, wrapping in
// int32. Same string always yields the same seed.
func StringSeed(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// system is a crypto/rand backed Source for free-play modes.
type system struct{}

// System returns a non-deterministic Source.
func System() Source { return system{} }

func (system) Next() float64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	// 53 uniform bits, same construction as math/rand.Float64.
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// Intn maps the next float from src onto [0, n). n must be positive.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Next() * float64(n))
	if v >= n { // guard against float rounding at the top edge
		v = n - 1
	}
	return v
}

// Shuffle performs an in-place Fisher-Yates shuffle driven by src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := Intn(src, i+1)
		swap(i, j)
	}
}
