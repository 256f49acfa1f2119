// internal/daily/store.go
//
// Durable record of finished daily puzzles. One row per (user, game,
// date); the unique index makes a replayed result a no-op, which backs
// the play-once-per-day rule and the per-date leaderboard.

package daily

import (
	"context"
	"database/sql"
)

// Result is one user's finished daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	Game      string `json:"game"`
	Date      string `json:"date"`
	Score     int    `json:"score"` // game-specific, lower is better
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the user has a recorded result for the
// given game and date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, gameName, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND game=? AND date=?`,
		userID, gameName, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished daily puzzle. Duplicate rows are
// silently ignored under the unique index.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, game, date, score, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Game, r.Date, r.Score, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the top results for a game and date, best score
// first with elapsed time as the tiebreaker.
func (s *Store) Leaderboard(ctx context.Context, gameName, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, elapsed_ms
		 FROM daily_results
		 WHERE game=? AND date=?
		 ORDER BY score ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, gameName, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
