package args

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Separator builds a greedy delimited-list parser around a scalar converter.
// It scans the remaining input for the delimiter regardless of word
// boundaries, so "1 | 2 | 3" and "1|2|3" parse the same. Each segment is
// converted after trimming surrounding whitespace. When no delimiter
// remains, the next word closes the list; anything after it stays in the
// scanner for later parameters.
//
// A delimiter with nothing following it fails with ErrExpectedArgument.
// The delimiter must be a single non-space rune.
func Separator[T any](conv Converter[T], delim rune) func(s *Scanner) ([]T, error) {
	return func(s *Scanner) ([]T, error) {
		if delim == utf8.RuneError || unicode.IsSpace(delim) {
			return nil, ErrBadDelimiter
		}

		var out []T
		for {
			s.SkipWS()
			seg, found := s.ReadUntil(delim)
			if !found {
				word, err := s.Word()
				if err != nil {
					if len(out) == 0 {
						return nil, err
					}
					// A delimiter promised another element but input ran out.
					return nil, fmt.Errorf("%w after %q", ErrExpectedArgument, string(delim))
				}
				v, err := conv(word)
				if err != nil {
					return nil, err
				}
				return append(out, v), nil
			}

			if seg == "" {
				return nil, fmt.Errorf("%w before %q", ErrExpectedArgument, string(delim))
			}
			v, err := conv(seg)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
}
