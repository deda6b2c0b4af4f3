package args

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Converter parses a raw argument into a typed value.
type Converter[T any] func(s string) (T, error)

// Int parses a decimal integer.
func Int(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Int64 parses a decimal 64-bit integer.
func Int64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Float parses a floating point number.
func Float(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Bool parses common boolean spellings: 1/0, true/false, yes/no, on/off.
func Bool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean: %q", s)
}

// Duration parses a Go duration string such as "1h30m".
func Duration(s string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(s))
}

// String trims surrounding whitespace and returns the argument as-is.
func String(s string) (string, error) {
	return strings.TrimSpace(s), nil
}

var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-1-2 15:04",
	"2006-01-02",
	"2006-1-2",
	"02.01.2006 15:04",
	"2.1.2006 15:04",
	"02.01.2006",
	"2.1.2006",
}

// Date parses several common date formats used in chat flows, in the local
// timezone.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// Atom returns a converter that accepts only the listed choices,
// case-insensitively, and yields the canonical spelling.
func Atom(choices ...string) Converter[string] {
	return func(s string) (string, error) {
		s = strings.TrimSpace(s)
		for _, choice := range choices {
			if strings.EqualFold(s, choice) {
				return choice, nil
			}
		}
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrBadChoice, s, strings.Join(choices, "|"))
	}
}
