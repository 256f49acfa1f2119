// internal/analytics/analytics.go
//
// Fire-and-forget gameplay event notifications. The tracker is a
// side-effecting collaborator: calls must never block, never fail the
// caller, and game logic must behave identically when the tracker is
// absent (use Noop).

package analytics

import (
	"github.com/rs/zerolog"

	"github.com/playable/dailygames/internal/game"
)

// Tracker receives gameplay events.
type Tracker interface {
	GameStart(gameName string, mode game.Mode)
	GameComplete(gameName string, mode game.Mode, won bool, score int)
	ButtonClick(name string)
}

// logTracker emits events as structured log lines.
type logTracker struct {
	log zerolog.Logger
}

// NewLog returns a Tracker that writes events through l.
func NewLog(l zerolog.Logger) Tracker {
	return &logTracker{log: l}
}

func (t *logTracker) GameStart(gameName string, mode game.Mode) {
	t.log.Info().Str("event", "game_start").Str("game", gameName).Str("mode", string(mode)).Send()
}

func (t *logTracker) GameComplete(gameName string, mode game.Mode, won bool, score int) {
	t.log.Info().Str("event", "game_complete").Str("game", gameName).
		Str("mode", string(mode)).Bool("won", won).Int("score", score).Send()
}

func (t *logTracker) ButtonClick(name string) {
	t.log.Info().Str("event", "button_click").Str("button", name).Send()
}

// noop discards all events.
type noop struct{}

// Noop returns a Tracker that does nothing.
func Noop() Tracker { return noop{} }

func (noop) GameStart(string, game.Mode)               {}
func (noop) GameComplete(string, game.Mode, bool, int) {}
func (noop) ButtonClick(string)                        {}
