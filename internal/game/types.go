// internal/game/types.go
//
// Core type definitions for the hangman engine.
// Defines:
//   - Outcome: classification of a single guessed letter.
//   - State:   round status (in progress / won / lost).
//   - Game:    mutable state record for one round.
//   - Picker:  injectable source of secret words.

package game

import "time"

// Outcome is the classification of one guessed letter.
// Possible values:
//   - "already_guessed": the letter was submitted earlier this round.
//   - "correct":         new letter that occurs in the secret word.
//   - "incorrect":       new letter that does not occur in the secret word.
type Outcome string

const (
	OutcomeAlreadyGuessed Outcome = "already_guessed"
	OutcomeCorrect        Outcome = "correct"
	OutcomeIncorrect      Outcome = "incorrect"
)

// State is the round status. Won and Lost are terminal.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Picker supplies secret words. *words.Picker satisfies it.
type Picker interface {
	Pick() string
}

// PickerFunc adapts a plain function to Picker.
type PickerFunc func() string

func (f PickerFunc) Pick() string { return f() }

// Fixed returns a Picker that always yields word.
func Fixed(word string) Picker {
	return PickerFunc(func() string { return word })
}

// Game holds the state of a single hangman round.
type Game struct {
	ID          string    // Round identifier (uuid), renewed on Reset.
	Word        string    // The secret word (always lowercase).
	Guessed     []rune    // Distinct letters in guess order, correct and incorrect.
	Mistakes    int       // Incorrect guesses so far (0..MaxMistakes).
	MaxMistakes int       // Mistakes that end the round.
	StartedAt   time.Time // When the round began (UTC).

	picker Picker
}
