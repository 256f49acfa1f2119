// internal/httpserver/server.go
//
// HTTP wiring for the daily-games backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /{game}/new, POST /{game}/move,
//     GET /{game}/state, GET /{game}/share, GET /{game}/leaderboard.
//   - Stats endpoint: GET /stats/{game}/{mode}, scoped to the caller.
//   - Auth + profile endpoints: /auth/*, /stats/me, /games/mine.
//
// Live sessions are held in memory for active play and snapshotted to
// the KV store on every move, so a daily game survives a reconnect.
// Each session carries an epoch guard: the idle-expiry timer captures
// the epoch at scheduling time, and a move bumps it, so a stale timer
// never evicts a session that has seen activity since.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/playable/dailygames/internal/analytics"
	"github.com/playable/dailygames/internal/daily"
	"github.com/playable/dailygames/internal/game"
	"github.com/playable/dailygames/internal/persist"
	"github.com/playable/dailygames/internal/puzzle/wordgame"
	"github.com/playable/dailygames/internal/stats"
	"github.com/playable/dailygames/internal/words"
)

// sessionTTL is how long an idle live session stays in memory. The
// KV snapshot outlives eviction, so a daily game can still be resumed.
const sessionTTL = 30 * time.Minute

// liveSession is one in-memory game in progress.
type liveSession struct {
	id    string
	owner string
	def   gameDef
	mode  game.Mode
	sess  session
	guard *game.Guard
}

// Server bundles router, KV store, DB handle, and the word lists.
type Server struct {
	r       *chi.Mux
	kv      persist.KV
	db      *sql.DB
	daily   *daily.Store
	list    *words.List
	tracker analytics.Tracker

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil; durable history, leaderboards, and auth then degrade
// to no-ops while in-memory play keeps working.
func New(kv persist.KV, db *sql.DB, list *words.List, tracker analytics.Tracker) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		kv:       kv,
		db:       db,
		list:     list,
		tracker:  tracker,
		sessions: make(map[string]*liveSession),
	}
	if db != nil {
		s.daily = daily.NewStore(db)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"dailygames","endpoints":["/health","POST /{game}/new","POST /{game}/move","GET /{game}/state","GET /{game}/share","GET /stats/{game}/{mode}","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.list.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/{game}/new", s.handleNew)
		r.Post("/{game}/move", s.handleMove)
		r.Get("/{game}/state", s.handleState)
		r.Get("/{game}/share", s.handleShare)
		r.Get("/{game}/leaderboard", s.handleLeaderboard)
		r.Get("/stats/{game}/{mode}", s.handleStats)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------- session table --------------------------------

func (s *Server) putSession(ls *liveSession) {
	s.mu.Lock()
	s.sessions[ls.id] = ls
	s.mu.Unlock()
	s.touch(ls)
}

func (s *Server) getSession(id string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	return ls, ok
}

// touch resets the idle clock: the guard epoch is bumped so any timer
// scheduled before this activity becomes a no-op, then a fresh expiry
// is scheduled against the new epoch.
func (s *Server) touch(ls *liveSession) {
	ls.guard.Bump()
	ls.guard.After(sessionTTL, func() {
		s.mu.Lock()
		delete(s.sessions, ls.id)
		s.mu.Unlock()
	})
}

// ownerID returns a stable identity for the caller: the account id for
// authenticated users, the anonymous cookie otherwise. The prefixes
// keep the two id spaces from colliding in KV keys.
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return "u:" + me.ID
	}
	return "a:" + s.ensureAnonID(w, r)
}

// ownerKV namespaces the shared KV store per caller.
func (s *Server) ownerKV(owner string) persist.KV {
	return prefixKV{kv: s.kv, prefix: owner + "|"}
}

type prefixKV struct {
	kv     persist.KV
	prefix string
}

func (p prefixKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}
func (p prefixKV) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}
func (p prefixKV) Delete(ctx context.Context, key string) error {
	return p.kv.Delete(ctx, p.prefix+key)
}

// ------------------------------ handlers -----------------------------------

type newGameReq struct {
	Mode string `json:"mode"`
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	mode := game.Mode(req.Mode)
	if req.Mode == "" {
		mode = game.ModeRandom
	}
	if !mode.Valid() {
		http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
		return
	}

	owner := s.ownerID(w, r)
	okv := s.ownerKV(owner)
	now := time.Now()

	// One finished daily per user per date.
	if mode == game.ModeDaily && s.daily != nil {
		if played, err := s.daily.AlreadyPlayed(r.Context(), owner, def.name, daily.DateKey(now)); err == nil && played {
			_ = json.NewEncoder(w).Encode(map[string]any{"played": true, "date": daily.DateKey(now)})
			return
		}
	}

	var (
		sess    session
		resumed bool
	)
	if mode == game.ModeDaily {
		sess, resumed = def.resume(r.Context(), okv, s.list, now)
	}
	if sess == nil {
		var err error
		sess, err = def.create(s.list, mode, now)
		if err != nil {
			log.Error().Err(err).Str("game", def.name).Msg("puzzle generation failed")
			http.Error(w, `{"error":"generation_failed"}`, http.StatusServiceUnavailable)
			return
		}
	}

	if err := sess.Persist(r.Context(), okv); err != nil {
		log.Warn().Err(err).Str("game", def.name).Msg("persist session")
	}

	ls := &liveSession{
		id:    genID(),
		owner: owner,
		def:   def,
		mode:  mode,
		sess:  sess,
		guard: &game.Guard{},
	}
	s.putSession(ls)

	s.insertGameRow(r, ls)
	if !resumed {
		s.tracker.GameStart(def.name, mode)
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"gameId":  ls.id,
		"resumed": resumed,
		"state":   sess.View(),
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	ls, ok := s.getSession(req.GameID)
	if !ok || ls.def.name != def.name {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}

	res, err := ls.sess.Move(req)
	if err != nil {
		writeMoveError(w, err)
		return
	}
	s.touch(ls)

	okv := s.ownerKV(ls.owner)
	if err := ls.sess.Persist(r.Context(), okv); err != nil {
		log.Warn().Err(err).Str("game", def.name).Msg("persist session")
	}
	if s.db != nil {
		if _, err := s.db.Exec(`UPDATE games SET moves = moves + 1 WHERE id=?`, ls.id); err != nil {
			log.Warn().Err(err).Msg("update moves")
		}
	}

	st := ls.sess.Status()
	if st.Terminal() {
		s.finishSession(r, ls)
	}

	res["status"] = st
	_ = json.NewEncoder(w).Encode(res)
}

// finishSession folds a terminal result into the caller's aggregates
// and durable history. All writes are best effort; the move response
// never fails because bookkeeping did.
func (s *Server) finishSession(r *http.Request, ls *liveSession) {
	result := ls.sess.Result()
	agg := stats.New(s.ownerKV(ls.owner))
	if _, recorded, err := agg.RecordResult(r.Context(), ls.def.name, ls.mode, result); err != nil {
		log.Warn().Err(err).Str("game", ls.def.name).Msg("record stats")
	} else if recorded {
		s.tracker.GameComplete(ls.def.name, ls.mode, result.Won, result.Score)
	}

	if ls.mode == game.ModeDaily && s.daily != nil && result.Won {
		err := s.daily.InsertResult(r.Context(), daily.Result{
			UserID: ls.owner,
			Game:   ls.def.name,
			Date:   daily.DateKey(time.Now()),
			Score:  result.Score,
		})
		if err != nil {
			log.Warn().Err(err).Str("game", ls.def.name).Msg("insert daily result")
		}
	}

	s.finishGameRow(r, ls)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	ls, ok := s.getSession(r.URL.Query().Get("gameId"))
	if !ok || ls.def.name != def.name {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"gameId": ls.id, "state": ls.sess.View()})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	ls, ok := s.getSession(r.URL.Query().Get("gameId"))
	if !ok || ls.def.name != def.name {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	text := ls.sess.ShareText(time.Now())
	if text == "" {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	s.tracker.ButtonClick("share")
	_ = json.NewEncoder(w).Encode(map[string]string{"share": text})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	mode := game.Mode(chi.URLParam(r, "mode"))
	if !mode.Valid() {
		http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
		return
	}
	agg := stats.New(s.ownerKV(s.ownerID(w, r)))
	_ = json.NewEncoder(w).Encode(agg.Get(r.Context(), def.name, mode))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	def, ok := registry[chi.URLParam(r, "game")]
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	if s.daily == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"date": "", "top": []daily.LBRow{}})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := s.daily.Leaderboard(r.Context(), def.name, date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "top": rows})
}

// writeMoveError maps engine errors onto HTTP statuses.
func writeMoveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrFinished):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
	case errors.Is(err, wordgame.ErrNotInList):
		http.Error(w, `{"error":"not_in_word_list"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrInvalidMove):
		http.Error(w, `{"error":"invalid_move"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	}
}

// ------------------------- durable game history ----------------------------

// insertGameRow persists a history row for the new session (best effort).
func (s *Server) insertGameRow(r *http.Request, ls *liveSession) {
	if s.db == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var err error
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err = s.db.Exec(`INSERT INTO games (id, user_id, game, mode, started_at, status, moves)
		                    VALUES (?,?,?,?,?,?,0)`, ls.id, me.ID, ls.def.name, string(ls.mode), now, "playing")
	} else {
		anon := ls.owner // "a:<cookie>" prefix keeps the id spaces apart
		_, err = s.db.Exec(`INSERT INTO games (id, anonymous_id, game, mode, started_at, status, moves)
		                    VALUES (?,?,?,?,?,?,0)`, ls.id, anon, ls.def.name, string(ls.mode), now, "playing")
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", ls.id).Msg("insert game row")
	}
}

// finishGameRow marks the history row terminal and bumps account
// counters inside one transaction (best effort).
func (s *Server) finishGameRow(r *http.Request, ls *liveSession) {
	if s.db == nil {
		return
	}
	st := ls.sess.Status()
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin finish tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=?`,
		string(st), time.Now().UTC().Format(time.RFC3339), ls.id); err != nil {
		log.Warn().Err(err).Msg("finish game row")
	}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		if err := s.bumpStats(tx, me.ID, st == game.StatusWon); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	_ = tx.Commit()
}
