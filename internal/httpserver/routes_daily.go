// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
//   - POST /daily/new → start a round whose word is today's daily word.
//   - GET  /daily     → today's date key (the word itself stays secret).
//
// The daily word is HMAC(salt, YYYY-MM-DD) over the fixed list, so every
// round started on the same UTC date gets the same word. Guesses go through
// the regular POST /game/guess.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{"date": s.daily.Date()})
}

// handleDailyNew creates a round with today's word.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	if len(s.words) == 0 {
		http.Error(w, `{"error":"no_words"}`, http.StatusServiceUnavailable)
		return
	}
	g := game.New(s.daily)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save daily game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	date := s.daily.Date()
	log.Debug().Str("gameId", g.ID).Str("date", date).Msg("daily round started")
	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: g.ID, Date: date})
}
