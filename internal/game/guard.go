// internal/game/guard.go
//
// Epoch guard for delayed effects. Every timer scheduled against a
// session captures the session's epoch at scheduling time; starting a
// new session bumps the epoch, turning any still-pending timer from the
// old session into a no-op. This is how stale reveal/cleanup callbacks
// are prevented from mutating a newer session's state.

package game

import (
	"sync"
	"time"
)

// Guard tracks the current epoch for one session slot.
// The zero value is ready to use.
type Guard struct {
	mu    sync.Mutex
	epoch uint64
}

// Bump invalidates all previously scheduled effects and returns the new
// epoch. Call it whenever a new session replaces the old one.
func (g *Guard) Bump() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.epoch++
	return g.epoch
}

// Current returns the live epoch.
func (g *Guard) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}

// After schedules fn to run after d, but only if the guard's epoch is
// still the one observed now. The returned timer may be stopped early;
// stopping is an optimization, not a correctness requirement.
func (g *Guard) After(d time.Duration, fn func()) *time.Timer {
	at := g.Current()
	return time.AfterFunc(d, func() {
		if g.Current() != at {
			return
		}
		fn()
	})
}
