package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
)

var testWords = []string{"herencia", "compilar"}

func newTestServer(t *testing.T, hist *history.Store) *Server {
	t.Helper()
	return New(store.NewMemoryStore(), Options{
		Picker:       game.Fixed("compilar"),
		Words:        testWords,
		DailySalt:    "salt",
		ClientOrigin: "http://localhost:5173",
		History:      hist,
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func newGame(t *testing.T, s *Server, path string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		GameID string `json:"gameId"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotEmpty(t, res.GameID)
	return res.GameID
}

func guess(t *testing.T, s *Server, id, letter string) (*httptest.ResponseRecorder, gameView) {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+id+`","letter":"`+letter+`"}`)
	var v gameView
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	}
	return rec, v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestDebugWords(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/debug/words", "")
	assert.JSONEq(t, `{"words":2}`, rec.Body.String())
}

func TestGuessFlow_Win(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, "/game/new")

	rec, v := guess(t, s, id, "C")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.OutcomeCorrect, v.Outcome)
	assert.Equal(t, game.StateInProgress, v.State)
	assert.Equal(t, "c _ _ _ _ _ _ _ ", v.Masked)
	assert.Empty(t, v.Word, "word hidden while in progress")

	_, v = guess(t, s, id, "c")
	assert.Equal(t, game.OutcomeAlreadyGuessed, v.Outcome)
	assert.Equal(t, "c", v.Guessed)

	_, v = guess(t, s, id, "z")
	assert.Equal(t, game.OutcomeIncorrect, v.Outcome)
	assert.Equal(t, 1, v.Mistakes)
	assert.Equal(t, 6, v.Remaining)

	for _, l := range []string{"o", "m", "p", "i", "l", "a"} {
		rec, v = guess(t, s, id, l)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, v = guess(t, s, id, "r")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StateWon, v.State)
	assert.Equal(t, "compilar", v.Word)

	rec, _ = guess(t, s, id, "x")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "round_over")
}

func TestGuessFlow_Loss(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, "/game/new")

	var v gameView
	for _, l := range []string{"z", "x", "q", "w", "y", "k", "j"} {
		var rec *httptest.ResponseRecorder
		rec, v = guess(t, s, id, l)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, game.StateLost, v.State)
	assert.Equal(t, game.FigureTemplate, v.Figure)
	assert.Equal(t, "compilar", v.Word)
}

func TestGuess_Errors(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, "/game/new")

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "bad json", body: `{`, wantCode: http.StatusBadRequest, wantErr: "bad_json"},
		{name: "two letters", body: `{"gameId":"` + id + `","letter":"ab"}`, wantCode: http.StatusBadRequest, wantErr: "invalid_letter"},
		{name: "digit", body: `{"gameId":"` + id + `","letter":"4"}`, wantCode: http.StatusBadRequest, wantErr: "invalid_letter"},
		{name: "unknown game", body: `{"gameId":"nope","letter":"a"}`, wantCode: http.StatusNotFound, wantErr: "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/game/guess", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, "/game/new")
	guess(t, s, id, "p")

	rec := do(t, s, http.MethodGet, "/game/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v gameView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	assert.Equal(t, id, v.GameID)
	assert.Empty(t, v.Outcome)
	assert.Equal(t, "_ _ _ p _ _ _ _ ", v.Masked)

	rec = do(t, s, http.MethodGet, "/game/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/daily/new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res dailyNewRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, s.daily.Date(), res.Date)

	g, err := s.store.Get(context.Background(), res.GameID)
	require.NoError(t, err)
	assert.Equal(t, s.daily.Pick(), g.Word)
	assert.Contains(t, testWords, g.Word)

	rec = do(t, s, http.MethodGet, "/daily", "")
	assert.Contains(t, rec.Body.String(), res.Date)
}

func TestStats(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := do(t, s, http.MethodGet, "/stats", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "history_disabled")
	})

	t.Run("records finished rounds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hangman.db")
		require.NoError(t, history.Migrate(path))
		db, err := history.Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		s := newTestServer(t, history.NewStore(db))
		id := newGame(t, s, "/game/new")
		for _, l := range []string{"z", "x", "q", "w", "y", "k", "j"} {
			guess(t, s, id, l)
		}

		rec := do(t, s, http.MethodGet, "/stats", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var res statsRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, history.Summary{Played: 1, Losses: 1}, res.Summary)
		require.Len(t, res.Recent, 1)
		assert.Equal(t, id, res.Recent[0].ID)
		assert.Equal(t, "zxqwykj", res.Recent[0].Guessed)
	})
}

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
