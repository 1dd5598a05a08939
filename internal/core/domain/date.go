package domain

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical on-disk date format.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or ISO-8601")

// CanonicalDate normalizes an input date to YYYY-MM-DD. Full ISO-8601
// timestamps are accepted; the time component is discarded. The returned
// value is always a valid calendar date.
func CanonicalDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}
