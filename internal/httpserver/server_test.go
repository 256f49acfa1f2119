package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playable/dailygames/internal/analytics"
	"github.com/playable/dailygames/internal/persist"
	"github.com/playable/dailygames/internal/words"
)

// testServer builds a Server on the in-memory KV with no database:
// durable history and auth degrade to no-ops, gameplay stays intact.
func testServer(t *testing.T) *Server {
	t.Helper()
	list, err := words.NewList(
		[]string{"crane", "slate", "audio", "house", "plant"},
		[]string{"adieu", "roate"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return New(persist.NewMemory(), nil, list, analytics.Noop())
}

// do runs one request through the router and decodes the JSON body.
func do(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	rec, out := do(t, s, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK || out["ok"] != true {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUnknownGame(t *testing.T) {
	s := testServer(t)
	rec, _ := do(t, s, http.MethodPost, "/chess/new", map[string]string{"mode": "random"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code=%d, want 404", rec.Code)
	}
}

func TestNumguessBinarySearchWins(t *testing.T) {
	s := testServer(t)
	rec, res := do(t, s, http.MethodPost, "/numguess/new", map[string]string{"mode": "random"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new: code=%d body=%s", rec.Code, rec.Body.String())
	}
	id, _ := res["gameId"].(string)
	if id == "" {
		t.Fatal("no gameId in response")
	}
	cookies := rec.Result().Cookies()

	// The hints drive a binary search over [1,100]; seven probes always
	// reach the secret, well inside the ten-guess budget.
	lo, hi := 1, 100
	status := ""
	for i := 0; i < 10; i++ {
		mid := (lo + hi) / 2
		rec, res = do(t, s, http.MethodPost, "/numguess/move",
			map[string]any{"gameId": id, "n": mid}, cookies)
		if rec.Code != http.StatusOK {
			t.Fatalf("move %d: code=%d body=%s", i+1, rec.Code, rec.Body.String())
		}
		status, _ = res["status"].(string)
		if status == "won" {
			break
		}
		switch res["hint"] {
		case "higher":
			lo = mid + 1
		case "lower":
			hi = mid - 1
		default:
			t.Fatalf("move %d: unexpected hint %v", i+1, res["hint"])
		}
	}
	if status != "won" {
		t.Fatalf("binary search did not win: status=%q", status)
	}

	rec, res = do(t, s, http.MethodGet, "/numguess/share?gameId="+id, nil, cookies)
	if rec.Code != http.StatusOK || res["share"] == "" {
		t.Fatalf("share: code=%d body=%s", rec.Code, rec.Body.String())
	}

	rec, res = do(t, s, http.MethodGet, "/stats/numguess/random", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: code=%d", rec.Code)
	}
	if played, _ := res["gamesPlayed"].(float64); played != 1 {
		t.Fatalf("gamesPlayed = %v, want 1", res["gamesPlayed"])
	}
	if won, _ := res["gamesWon"].(float64); won != 1 {
		t.Fatalf("gamesWon = %v, want 1", res["gamesWon"])
	}
}

func TestDailyResumeSameCaller(t *testing.T) {
	s := testServer(t)
	rec, res := do(t, s, http.MethodPost, "/flood/new", map[string]string{"mode": "daily"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new: code=%d body=%s", rec.Code, rec.Body.String())
	}
	if res["resumed"] != false {
		t.Fatalf("first daily reported resumed=%v", res["resumed"])
	}
	cookies := rec.Result().Cookies()

	rec, res = do(t, s, http.MethodPost, "/flood/new", map[string]string{"mode": "daily"}, cookies)
	if rec.Code != http.StatusOK || res["resumed"] != true {
		t.Fatalf("second daily: code=%d resumed=%v", rec.Code, res["resumed"])
	}

	// A different caller (no cookie) gets a fresh session, not a resume.
	rec, res = do(t, s, http.MethodPost, "/flood/new", map[string]string{"mode": "daily"}, nil)
	if rec.Code != http.StatusOK || res["resumed"] != false {
		t.Fatalf("other caller: code=%d resumed=%v", rec.Code, res["resumed"])
	}
}

func TestStateEndpoint(t *testing.T) {
	s := testServer(t)
	rec, res := do(t, s, http.MethodPost, "/slide/new", map[string]string{"mode": "random"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new: code=%d", rec.Code)
	}
	id, _ := res["gameId"].(string)
	cookies := rec.Result().Cookies()

	rec, res = do(t, s, http.MethodGet, "/slide/state?gameId="+id, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: code=%d", rec.Code)
	}
	state, _ := res["state"].(map[string]any)
	board, _ := state["board"].([]any)
	if len(board) != 16 {
		t.Fatalf("board has %d cells, want 16", len(board))
	}
}

func TestMoveValidation(t *testing.T) {
	s := testServer(t)
	rec, res := do(t, s, http.MethodPost, "/wordgame/new", map[string]string{"mode": "random"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new: code=%d", rec.Code)
	}
	id, _ := res["gameId"].(string)
	cookies := rec.Result().Cookies()

	rec, res = do(t, s, http.MethodPost, "/wordgame/move",
		map[string]any{"gameId": "missing", "guess": "crane"}, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session: code=%d", rec.Code)
	}

	rec, res = do(t, s, http.MethodPost, "/wordgame/move",
		map[string]any{"gameId": id, "guess": "zzzzz"}, cookies)
	if rec.Code != http.StatusBadRequest || res["error"] != "not_in_word_list" {
		t.Fatalf("off-list guess: code=%d body=%s", rec.Code, rec.Body.String())
	}

	rec, _ = do(t, s, http.MethodPost, "/wordgame/move",
		map[string]any{"gameId": id, "guess": "ab"}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short guess: code=%d", rec.Code)
	}

	// An unfinished game has no share string.
	rec, _ = do(t, s, http.MethodGet, "/wordgame/share?gameId="+id, nil, cookies)
	if rec.Code != http.StatusConflict {
		t.Fatalf("share before finish: code=%d", rec.Code)
	}
}

func TestStatsModeValidation(t *testing.T) {
	s := testServer(t)
	rec, _ := do(t, s, http.MethodGet, "/stats/flood/impossible", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code=%d, want 400", rec.Code)
	}
}
