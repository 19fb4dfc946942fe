package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker yields the word of the day. It satisfies game.Picker, so a daily
// round that is reset on the same day gets the same word.
type Picker struct {
	words []string
	salt  string
	now   func() time.Time
}

func NewPicker(words []string, salt string) *Picker {
	return &Picker{words: words, salt: salt, now: time.Now}
}

// Date returns today's key.
func (p *Picker) Date() string { return DateKey(p.now()) }

func (p *Picker) Pick() string {
	if len(p.words) == 0 {
		return ""
	}
	return p.words[WordIndex(p.now(), p.salt, len(p.words))]
}
