// Package daily derives the calendar-based values of a daily puzzle:
// the day index shown in share summaries and the deterministic answer index.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DefaultEpoch is the first day of the puzzle calendar.
var DefaultEpoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

const layout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(layout)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: parse date %q: %w", s, err)
	}
	return t, nil
}

// DayIndex returns the absolute number of calendar days between today and
// epoch. Both are truncated to their UTC date.
func DayIndex(today, epoch time.Time) int {
	d := midnight(today).Sub(midnight(epoch))
	days := int(d.Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}
