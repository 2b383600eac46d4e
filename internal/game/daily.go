package game

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

// DailyIndex returns a deterministic index for a date using
// HMAC-SHA256(salt, YYYY-MM-DD) mod n.
func DailyIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Daily constructs the game for date. Every caller using the same salt gets
// the same answer for the same UTC day.
func (e *Engine) Daily(date time.Time, salt string) (*Game, error) {
	if len(e.vocab.Answers) == 0 {
		return e.New("")
	}
	return e.New(e.vocab.Answers[DailyIndex(date, salt, len(e.vocab.Answers))])
}
