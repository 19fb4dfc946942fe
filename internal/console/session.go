// internal/console/session.go
//
// Interactive console session: the game loop and the replay controller.
// Responsibilities:
//   - Read one whitespace-delimited token per prompt.
//   - Re-prompt on invalid letters or replay answers without touching state.
//   - Print the masked word, figure and used letters every turn.
//   - Hand finished rounds to an optional Recorder.
//
// Notes:
//   - The loop is strictly sequential; the only blocking call is the token read.
//   - End of input ends the session cleanly.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
)

// Recorder persists finished rounds. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, r history.Round) error
}

// errEndOfInput marks a clean EOF on the input stream.
var errEndOfInput = errors.New("end of input")

// Session drives rounds of one Game against a reader/writer pair.
type Session struct {
	in   *bufio.Scanner
	out  io.Writer
	game *game.Game
	rec  Recorder // may be nil
	now  func() time.Time
}

// NewSession wires a session. rec may be nil to skip recording.
func NewSession(in io.Reader, out io.Writer, g *game.Game, rec Recorder) *Session {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Session{in: sc, out: out, game: g, rec: rec, now: time.Now}
}

// Run plays rounds until the player declines a replay or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.welcome()
	for {
		st, err := s.play()
		if err != nil {
			return endOrErr(err)
		}
		s.finish(ctx, st)

		again, err := s.askReplay()
		if err != nil {
			return endOrErr(err)
		}
		if !again {
			s.printf("\n> Thanks for playing! <\n")
			return nil
		}
		s.printf("\n> Great! Let's play again <\n")
		s.game.Reset()
	}
}

func (s *Session) welcome() {
	s.printf("--------------------------------------\n")
	s.printf(">     Welcome to the hangman game!   <\n")
	s.printf("--------------------------------------\n")
	s.printf("> You have %d attempts to guess the word\n", s.game.MaxMistakes)
}

// play runs one round to a terminal state.
func (s *Session) play() (game.State, error) {
	log.Debug().Str("round", s.game.ID).Int("letters", len(s.game.Word)).Msg("round started")
	for {
		s.printf("\n%s\t%s\tUsed letters: %s\n", s.game.Masked(), s.game.Figure(), s.game.History())

		letter, err := s.readLetter()
		if err != nil {
			return "", err
		}

		outcome, st, err := s.game.Guess(letter)
		if err != nil {
			return st, err
		}
		switch outcome {
		case game.OutcomeCorrect:
			s.printf("Correct letter\n")
		case game.OutcomeAlreadyGuessed:
			s.printf("Letter already guessed\n")
		case game.OutcomeIncorrect:
			s.printf("Incorrect letter. You have %d attempts left\n", s.game.Remaining())
		}

		if st.Terminal() {
			return st, nil
		}
	}
}

// readLetter prompts until a valid letter arrives.
func (s *Session) readLetter() (rune, error) {
	for {
		s.printf("Enter a letter\n> ")
		tok, err := s.next()
		if err != nil {
			return 0, err
		}
		r, err := game.ParseLetter(tok)
		switch {
		case err == nil:
			return r, nil
		case errors.Is(err, game.ErrNotSingleChar):
			s.printf("Type a single character\n\n")
		default:
			s.printf("Invalid input. Only letters are allowed\n\n")
		}
	}
}

// finish announces the result and records the round.
func (s *Session) finish(ctx context.Context, st game.State) {
	if st == game.StateLost {
		s.printf("\n> You lost! The word was: %s <\n", s.game.Word)
	} else {
		s.printf("\n> You won! The word is: %s <\n", s.game.Word)
	}
	log.Debug().
		Str("round", s.game.ID).
		Str("state", string(st)).
		Int("mistakes", s.game.Mistakes).
		Msg("round finished")

	if s.rec == nil {
		return
	}
	if err := s.rec.Record(ctx, history.FromGame(s.game, s.now())); err != nil {
		log.Warn().Err(err).Str("round", s.game.ID).Msg("record round")
	}
}

// askReplay prompts until the player answers y or n.
func (s *Session) askReplay() (bool, error) {
	s.printf("\nPlay again? (%c/%c)\n> ", game.Affirmative, game.Negative)
	for {
		tok, err := s.next()
		if err != nil {
			return false, err
		}
		again, err := game.ParseChoice(tok)
		if err == nil {
			return again, nil
		}
		s.printf("Choose a valid option (%c/%c)\n> ", game.Affirmative, game.Negative)
	}
}

func (s *Session) next() (string, error) {
	if s.in.Scan() {
		return s.in.Text(), nil
	}
	if err := s.in.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", errEndOfInput
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func endOrErr(err error) error {
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}
