// internal/persist/persist.go
//
// Typed key-value persistence for game sessions and aggregate stats.
//
// Keys are namespaced per game and per mode and carry a schema version
// suffix ("<game>-gameState-<mode>-v<version>") so that switching modes
// or games never cross-contaminates state, and a save-format change can
// invalidate old saves by bumping the version instead of crashing on
// deserialization.
//
// Malformed stored values are treated as absent state, never as fatal
// errors: the offending key is cleared and the caller regenerates.

package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/playable/dailygames/internal/game"
)

// KV is the narrow storage interface the core depends on. Backings are
// injected collaborators: in-memory for tests, SQLite for the server.
// Writes are last-write-wins; writing the same value twice is harmless.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StateKey names the saved in-progress session for one (game, mode).
func StateKey(gameName string, mode game.Mode, version int) string {
	return fmt.Sprintf("%s-gameState-%s-v%d", gameName, mode, version)
}

// StatsKey names the aggregate stats record for one (game, mode).
func StatsKey(gameName string, mode game.Mode, version int) string {
	return fmt.Sprintf("%s-stats-%s-v%d", gameName, mode, version)
}

// Save serializes v as JSON under key.
func Save(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.Set(ctx, key, b)
}

// Load deserializes the value at key into a T. A missing key, a read
// error, or malformed JSON all report ok=false; malformed values are
// cleared so the next load is clean.
func Load[T any](ctx context.Context, kv KV, key string) (T, bool) {
	var out T
	b, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv read failed")
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed saved state")
		_ = kv.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return out, true
}

// Clear removes the value at key.
func Clear(ctx context.Context, kv KV, key string) error {
	return kv.Delete(ctx, key)
}
