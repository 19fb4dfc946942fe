// internal/httpserver/server.go
//
// HTTP server wiring for `hangman serve`.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily word endpoints: mounted under /daily.
//   - History summary: GET /stats (only when a history DB is configured).
//
// Notes:
//   - Rounds live in a store.Store; guesses run inside Store.Update so one
//     round is never mutated by two requests at once.
//   - The secret word is only revealed once a round is won or lost.
//   - Finished rounds are recorded best effort; failures are logged, not returned.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
)

// Options configures a Server.
type Options struct {
	Picker       game.Picker    // word source for /game/new
	Words        []string       // list the daily word is drawn from
	DailySalt    string         // HMAC salt for the daily word
	ClientOrigin string         // single allowed CORS origin
	History      *history.Store // nil disables recording and /stats
}

// Server bundles router, round store and optional history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *history.Store
	picker  game.Picker
	words   []string
	daily   *daily.Picker
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		history: opts.History,
		picker:  opts.Picker,
		words:   opts.Words,
		daily:   daily.NewPicker(opts.Words, opts.DailySalt),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","POST /daily/new","/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": len(s.words)})
	})

	// --- rounds ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleGetGame)

	s.mountDaily(s.r)

	s.r.Get("/stats", s.handleStats)

	// JSON 404 for easier debugging
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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ ROUNDS -------------------------------------

type newGameRes struct {
	GameID string `json:"gameId"`
}

// gameView is the public shape of a round. Word is set only when finished.
type gameView struct {
	GameID    string       `json:"gameId"`
	Outcome   game.Outcome `json:"outcome,omitempty"`
	State     game.State   `json:"state"`
	Masked    string       `json:"masked"`
	Figure    string       `json:"figure"`
	Guessed   string       `json:"guessed"`
	Mistakes  int          `json:"mistakes"`
	Remaining int          `json:"remaining"`
	Word      string       `json:"word,omitempty"`
}

func viewOf(g *game.Game, o game.Outcome) gameView {
	v := gameView{
		GameID:    g.ID,
		Outcome:   o,
		State:     g.State(),
		Masked:    g.Masked(),
		Figure:    g.Figure(),
		Guessed:   g.History(),
		Mistakes:  g.Mistakes,
		Remaining: g.Remaining(),
	}
	if v.State.Terminal() {
		v.Word = g.Word
	}
	return v
}

// handleNewGame creates a round with a random word.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.New(s.picker)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Debug().Str("gameId", g.ID).Msg("round started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies one letter to a stored round and records it when it ends.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	letter, err := game.ParseLetter(req.Letter)
	if err != nil {
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	}

	var (
		view     gameView
		finished *history.Round
	)
	err = s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		o, st, err := g.Guess(letter)
		if err != nil {
			return err
		}
		view = viewOf(g, o)
		if st.Terminal() {
			rd := history.FromGame(g, s.now())
			finished = &rd
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	case errors.Is(err, game.ErrRoundOver):
		http.Error(w, `{"error":"round_over"}`, http.StatusConflict)
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", req.GameID).Msg("apply guess")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	if finished != nil {
		s.record(r.Context(), *finished)
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleGetGame returns the current view of a round.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(g, ""))
}

// record persists a finished round (best effort).
func (s *Server) record(ctx context.Context, rd history.Round) {
	log.Debug().Str("gameId", rd.ID).Str("state", string(rd.State)).Msg("round finished")
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, rd); err != nil {
		log.Warn().Err(err).Str("gameId", rd.ID).Msg("record round")
	}
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	Summary history.Summary `json:"summary"`
	Recent  []history.Round `json:"recent"`
}

// handleStats returns the history summary and the latest rounds.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, `{"error":"history_disabled"}`, http.StatusNotFound)
		return
	}
	sum, err := s.history.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history summary")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	recent, err := s.history.Recent(r.Context(), 10)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{Summary: sum, Recent: recent})
}
