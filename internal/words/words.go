// internal/words/words.go
//
// Provides the secret-word list for the game engine.
//
// Responsibilities:
//   - Load the fixed word list embedded in assets/words.txt.
//   - Validate it once (non-empty, lowercase a–z only).
//   - Supply a Picker that draws words uniformly through an injectable Source.
//
// Word list:
//   - Fixed at build time; there is no runtime override.
//   - Lines starting with '#' and blank lines are ignored by the assets loader.
//
// Constraints:
//   • Words must be non-empty and alphabetic (a–z).
//   • Initialization is run once (sync.Once).

package words

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/robalobadob/hangman/assets"
)

// fallbackWord is returned by a Picker with nothing to pick from.
const fallbackWord = "herencia"

var (
	initOnce   sync.Once
	list       []string
	initialErr error
)

// Init loads and validates the embedded word list exactly once.
// Returns an error if the list is empty or contains an invalid entry.
func Init() error {
	initOnce.Do(func() {
		ws, err := assets.WordList()
		if err != nil {
			initialErr = fmt.Errorf("words: read embedded list: %w", err)
			return
		}
		if err := Validate(ws); err != nil {
			initialErr = err
			return
		}
		list = ws
	})
	return initialErr
}

// Validate reports the first problem with a candidate word list.
func Validate(ws []string) error {
	if len(ws) == 0 {
		return fmt.Errorf("words: list is empty")
	}
	for i, w := range ws {
		if w == "" || !isAlpha(w) {
			return fmt.Errorf("words: entry %d (%q) is not lowercase letters", i, w)
		}
	}
	return nil
}

// List returns a copy of the loaded words. Empty until Init succeeds.
func List() []string {
	return append([]string(nil), list...)
}

// Len returns the number of loaded words.
func Len() int { return len(list) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Source yields an index in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// cryptoSource draws indexes from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// Picker draws secret words uniformly from a fixed list.
type Picker struct {
	words []string
	src   Source
}

// NewPicker returns a Picker over the loaded list.
// A nil src uses crypto/rand.
func NewPicker(src Source) *Picker {
	return NewPickerFrom(List(), src)
}

// NewPickerFrom returns a Picker over ws. Used by tests and the daily mode.
func NewPickerFrom(ws []string, src Source) *Picker {
	if src == nil {
		src = cryptoSource{}
	}
	return &Picker{words: ws, src: src}
}

// Pick returns one word from the list.
func (p *Picker) Pick() string {
	if len(p.words) == 0 {
		return fallbackWord
	}
	return p.words[p.src.Intn(len(p.words))]
}
