package args

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner is a cursor over a raw argument payload. Words are separated by
// whitespace; double quotes group a word containing spaces.
type Scanner struct {
	buf string
	pos int
}

// NewScanner returns a scanner positioned at the start of s.
func NewScanner(s string) *Scanner {
	return &Scanner{buf: s}
}

// Done reports whether the scanner has consumed all input.
func (s *Scanner) Done() bool {
	s.SkipWS()
	return s.pos >= len(s.buf)
}

// SkipWS advances past leading whitespace.
func (s *Scanner) SkipWS() {
	for s.pos < len(s.buf) {
		r := rune(s.buf[s.pos])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos++
	}
}

// Word consumes and returns the next whitespace-delimited word. A word
// starting with a double quote runs to the closing quote and may contain
// spaces. Returns ErrExpectedArgument at end of input.
func (s *Scanner) Word() (string, error) {
	s.SkipWS()
	if s.pos >= len(s.buf) {
		return "", ErrExpectedArgument
	}

	if s.buf[s.pos] == '"' {
		end := strings.IndexByte(s.buf[s.pos+1:], '"')
		if end < 0 {
			return "", ErrUnexpectedQuote
		}
		word := s.buf[s.pos+1 : s.pos+1+end]
		s.pos += end + 2
		return word, nil
	}

	start := s.pos
	for s.pos < len(s.buf) && !unicode.IsSpace(rune(s.buf[s.pos])) {
		s.pos++
	}
	return s.buf[start:s.pos], nil
}

// Peek returns the next word without consuming it.
func (s *Scanner) Peek() (string, error) {
	saved := s.pos
	word, err := s.Word()
	s.pos = saved
	return word, err
}

// Rest consumes and returns everything remaining, trimmed.
func (s *Scanner) Rest() string {
	rest := strings.TrimSpace(s.buf[s.pos:])
	s.pos = len(s.buf)
	return rest
}

// ReadUntil scans the remaining input for delim, ignoring word boundaries.
// On a hit it returns everything before the delimiter with trailing
// whitespace trimmed and moves the cursor past the delimiter. When the
// delimiter does not occur it reports false and leaves the cursor alone.
func (s *Scanner) ReadUntil(delim rune) (string, bool) {
	idx := strings.IndexRune(s.buf[s.pos:], delim)
	if idx < 0 {
		return "", false
	}
	seg := strings.TrimRightFunc(s.buf[s.pos:s.pos+idx], unicode.IsSpace)
	s.pos += idx + utf8.RuneLen(delim)
	return seg, true
}

// Pos returns the current cursor offset, for rollback via SetPos.
func (s *Scanner) Pos() int { return s.pos }

// SetPos rewinds or advances the cursor to a previously captured offset.
func (s *Scanner) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	s.pos = pos
}
