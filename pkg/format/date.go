package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultDatePattern is the fallback applied when a configured pattern is
// invalid ("August 29, 2026").
const DefaultDatePattern = "MMMM d, yyyy"

// dateTokens maps date-fns style pattern tokens to Go reference layout
// fragments. Longest tokens must be tried first.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dd", "02"},
	{"d", "2"},
	{"EEEE", "Monday"},
	{"EEE", "Mon"},
	{"HH", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"ss", "05"},
	{"a", "PM"},
}

// DateLayout translates a date-fns style pattern into a Go time layout. An
// unrecognized letter run makes the whole pattern invalid; callers are
// expected to fall back to DefaultDatePattern and warn.
//
// Month and weekday names come from Go's time package and always render in
// English; only the en-US locale is honored. Like the currency separator
// table, other locales are accepted in configuration but fall back.
func DateLayout(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", fmt.Errorf("empty date pattern")
	}
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		c := rune(pattern[i])
		if !unicode.IsLetter(c) {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			return "", fmt.Errorf("unsupported date pattern token at %q", pattern[i:])
		}
	}
	return b.String(), nil
}

// Date formats t using the configured pattern, silently substituting the
// default pattern when the configured one is invalid. The renderer uses
// DateLayout directly so it can log the fallback.
func Date(t time.Time, pattern string) string {
	layout, err := DateLayout(pattern)
	if err != nil {
		layout, _ = DateLayout(DefaultDatePattern)
	}
	return t.Format(layout)
}
