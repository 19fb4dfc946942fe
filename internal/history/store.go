package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFinished is returned when recording a round that is still in progress.
var ErrNotFinished = errors.New("history: round not finished")

// timeLayout is fixed width so finished_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Round is one finished round as stored in the rounds table.
type Round struct {
	ID         string     `json:"id"`
	Word       string     `json:"word"`
	State      game.State `json:"state"`
	Mistakes   int        `json:"mistakes"`
	Guessed    string     `json:"guessed"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// FromGame snapshots a finished round.
func FromGame(g *game.Game, finishedAt time.Time) Round {
	return Round{
		ID:         g.ID,
		Word:       g.Word,
		State:      g.State(),
		Mistakes:   g.Mistakes,
		Guessed:    g.History(),
		StartedAt:  g.StartedAt,
		FinishedAt: finishedAt.UTC(),
	}
}

// Summary aggregates every recorded round.
type Summary struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Streak int `json:"streak"` // consecutive wins ending at the latest round
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts a round. Recording the same round twice is a no-op.
func (s *Store) Record(ctx context.Context, r Round) error {
	if !r.State.Terminal() {
		return ErrNotFinished
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO rounds(id, word, state, mistakes, guessed, started_at, finished_at)
		 VALUES(?,?,?,?,?,?,?)`,
		r.ID, r.Word, string(r.State), r.Mistakes, r.Guessed,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns up to limit rounds, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, word, state, mistakes, guessed, started_at, finished_at
		 FROM rounds
		 ORDER BY finished_at DESC, rowid DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Round, 0, limit)
	for rows.Next() {
		var (
			r                 Round
			state             string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Word, &state, &r.Mistakes, &r.Guessed, &started, &finished); err != nil {
			return nil, err
		}
		r.State = game.State(state)
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary counts wins and losses and the current win streak.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
		        COALESCE(SUM(CASE WHEN state='won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN state='lost' THEN 1 ELSE 0 END), 0)
		 FROM rounds`,
	).Scan(&sum.Played, &sum.Wins, &sum.Losses)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT state FROM rounds ORDER BY finished_at DESC, rowid DESC`)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return Summary{}, err
		}
		if game.State(state) != game.StateWon {
			break
		}
		sum.Streak++
	}
	return sum, rows.Err()
}

// parseTime parses stored timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
