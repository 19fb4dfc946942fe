// internal/game/engine.go
//
// Core engine for a single hangman round.
// Responsibilities:
//   - Create and reset rounds with a word drawn from an injected Picker.
//   - Classify guesses without touching state (Classify) and apply the
//     result as a separate step (Apply).
//   - Render the masked word and the figure prefix.
//   - Evaluate the round: in_progress → won/lost.
//   - Validate raw player tokens (ParseLetter / ParseChoice).
//
// Notes:
//   - Loss is checked before win; an incorrect guess never completes the word.
//   - The figure prefix uses integer truncation, so short templates can stay
//     empty for the first few mistakes.
package game

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxMistakes is the number of incorrect guesses that loses a round.
	MaxMistakes = 7
	// FigureTemplate is revealed prefix by prefix as mistakes accumulate.
	FigureTemplate = "q(x_x)p"

	// Affirmative and Negative are the only accepted replay answers.
	Affirmative = 'y'
	Negative    = 'n'
)

var (
	ErrRoundOver     = errors.New("round finished")
	ErrNotSingleChar = errors.New("not a single character")
	ErrNotLetter     = errors.New("not a letter")
	ErrInvalidChoice = errors.New("invalid choice")
)

// New starts a round with a word from p. p must not be nil.
func New(p Picker) *Game {
	g := &Game{MaxMistakes: MaxMistakes, picker: p}
	g.Reset()
	return g
}

// Reset draws a new word and clears guesses and mistakes.
func (g *Game) Reset() {
	g.ID = uuid.NewString()
	g.Word = strings.ToLower(g.picker.Pick())
	g.Guessed = nil
	g.Mistakes = 0
	g.StartedAt = time.Now().UTC()
}

// Classify reports how letter relates to the current round. It never mutates g.
// A letter guessed before is AlreadyGuessed even when it is in the word.
func (g *Game) Classify(letter rune) Outcome {
	if containsRune(g.Guessed, letter) {
		return OutcomeAlreadyGuessed
	}
	if strings.ContainsRune(g.Word, letter) {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// Apply records a classified letter: appended on Correct/Incorrect,
// Mistakes++ on Incorrect, nothing on AlreadyGuessed.
func (g *Game) Apply(letter rune, o Outcome) {
	switch o {
	case OutcomeCorrect:
		g.Guessed = append(g.Guessed, letter)
	case OutcomeIncorrect:
		g.Guessed = append(g.Guessed, letter)
		g.Mistakes++
	}
}

// Guess classifies and applies letter, then evaluates the round.
// Returns ErrRoundOver once the round is won or lost.
func (g *Game) Guess(letter rune) (Outcome, State, error) {
	if st := g.State(); st.Terminal() {
		return "", st, ErrRoundOver
	}
	o := g.Classify(letter)
	g.Apply(letter, o)
	return o, g.State(), nil
}

// State evaluates the round. Loss is checked before win.
func (g *Game) State() State {
	if g.Mistakes >= g.MaxMistakes {
		return StateLost
	}
	if strings.ReplaceAll(g.Masked(), " ", "") == g.Word {
		return StateWon
	}
	return StateInProgress
}

// Masked renders the word as the player sees it.
func (g *Game) Masked() string { return MaskWord(g.Word, g.Guessed) }

// Figure renders the current figure prefix.
func (g *Game) Figure() string { return Figure(g.Mistakes, g.MaxMistakes, FigureTemplate) }

// Remaining is the number of incorrect guesses left before losing.
func (g *Game) Remaining() int { return g.MaxMistakes - g.Mistakes }

// History returns the guessed letters in guess order.
func (g *Game) History() string { return string(g.Guessed) }

// MaskWord shows each letter of word that is in guessed and "_" otherwise,
// every position followed by a space. Letters in guessed that are not in
// word have no effect.
func MaskWord(word string, guessed []rune) string {
	var b strings.Builder
	b.Grow(len(word) * 2)
	for _, r := range word {
		if containsRune(guessed, r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// Figure returns the prefix of template of length mistakes*len/maxMistakes,
// truncated. Empty at 0 mistakes, the whole template at maxMistakes.
func Figure(mistakes, maxMistakes int, template string) string {
	if maxMistakes <= 0 {
		return ""
	}
	if mistakes < 0 {
		mistakes = 0
	}
	if mistakes > maxMistakes {
		mistakes = maxMistakes
	}
	rs := []rune(template)
	return string(rs[:mistakes*len(rs)/maxMistakes])
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// ParseLetter validates a raw guess token and folds it to lowercase.
func ParseLetter(token string) (rune, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if utf8.RuneCountInString(t) != 1 {
		return 0, ErrNotSingleChar
	}
	r, _ := utf8.DecodeRuneInString(t)
	if !unicode.IsLetter(r) {
		return 0, ErrNotLetter
	}
	return r, nil
}

// ParseChoice validates a replay answer: true for Affirmative, false for Negative.
func ParseChoice(token string) (bool, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if utf8.RuneCountInString(t) != 1 {
		return false, ErrInvalidChoice
	}
	switch r, _ := utf8.DecodeRuneInString(t); r {
	case Affirmative:
		return true, nil
	case Negative:
		return false, nil
	}
	return false, ErrInvalidChoice
}
