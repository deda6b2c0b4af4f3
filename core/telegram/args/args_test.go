package args

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/velrin/telekit/core/telegram/commands"
)

func TestScannerWords(t *testing.T) {
	s := NewScanner(`  one "two words" three`)
	w, err := s.Word()
	require.NoError(t, err)
	require.Equal(t, "one", w)

	w, err = s.Word()
	require.NoError(t, err)
	require.Equal(t, "two words", w)

	require.Equal(t, "three", s.Rest())
	require.True(t, s.Done())
}

func TestScannerWordAtEnd(t *testing.T) {
	s := NewScanner("   ")
	_, err := s.Word()
	require.ErrorIs(t, err, ErrExpectedArgument)
}

func TestScannerUnterminatedQuote(t *testing.T) {
	s := NewScanner(`"oops`)
	_, err := s.Word()
	require.ErrorIs(t, err, ErrUnexpectedQuote)
}

func TestScannerPeekDoesNotConsume(t *testing.T) {
	s := NewScanner("alpha beta")
	w, err := s.Peek()
	require.NoError(t, err)
	require.Equal(t, "alpha", w)
	w, err = s.Word()
	require.NoError(t, err)
	require.Equal(t, "alpha", w)
}

func TestScannerReadUntil(t *testing.T) {
	s := NewScanner("foo bar | rest")
	seg, ok := s.ReadUntil('|')
	require.True(t, ok)
	require.Equal(t, "foo bar", seg)
	require.Equal(t, "rest", s.Rest())

	s = NewScanner("no delimiter here")
	_, ok = s.ReadUntil('|')
	require.False(t, ok)
	w, err := s.Word()
	require.NoError(t, err)
	require.Equal(t, "no", w)
}

func TestSeparatorSpacedList(t *testing.T) {
	s := NewScanner("1, 2, 3 remainder")
	got, err := Separator(Int, ',')(s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, "remainder", s.Rest())
}

func TestSeparatorCompactList(t *testing.T) {
	s := NewScanner("4,5,6")
	got, err := Separator(Int, ',')(s)
	require.NoError(t, err)
	require.Equal(t, []int{4, 5, 6}, got)
	require.True(t, s.Done())
}

func TestSeparatorSingleValue(t *testing.T) {
	s := NewScanner("lonely next")
	got, err := Separator(String, ';')(s)
	require.NoError(t, err)
	require.Equal(t, []string{"lonely"}, got)
	require.Equal(t, "next", s.Rest())
}

func TestSeparatorStandaloneDelimiters(t *testing.T) {
	s := NewScanner("1 | 2 | 3 | 4 hello")
	got, err := Separator(Int, '|')(s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, got)
	require.Equal(t, "hello", s.Rest())
}

func TestSeparatorDelimiterPrefixesWord(t *testing.T) {
	s := NewScanner("1 ,2 ,3 done")
	got, err := Separator(Int, ',')(s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, "done", s.Rest())
}

func TestSeparatorMultiWordSegments(t *testing.T) {
	s := NewScanner("red apple; green pear; plum next")
	got, err := Separator(String, ';')(s)
	require.NoError(t, err)
	require.Equal(t, []string{"red apple", "green pear", "plum"}, got)
	require.Equal(t, "next", s.Rest())
}

func TestSeparatorTrailingDelimiter(t *testing.T) {
	s := NewScanner("1, 2,")
	_, err := Separator(Int, ',')(s)
	require.ErrorIs(t, err, ErrExpectedArgument)
}

func TestSeparatorEmptyInput(t *testing.T) {
	s := NewScanner("")
	_, err := Separator(Int, ',')(s)
	require.ErrorIs(t, err, ErrExpectedArgument)
}

func TestSeparatorSpaceDelimiterRejected(t *testing.T) {
	s := NewScanner("1 2 3")
	_, err := Separator(Int, ' ')(s)
	require.ErrorIs(t, err, ErrBadDelimiter)
}

func TestSeparatorConversionError(t *testing.T) {
	s := NewScanner("1, x, 3")
	_, err := Separator(Int, ',')(s)
	require.Error(t, err)
}

func TestConverters(t *testing.T) {
	n, err := Int(" 42 ")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	f, err := Float("3.5")
	require.NoError(t, err)
	require.InDelta(t, 3.5, f, 1e-9)

	b, err := Bool("yes")
	require.NoError(t, err)
	require.True(t, b)
	_, err = Bool("maybe")
	require.Error(t, err)

	d, err := Duration("90s")
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, d)
}

func TestDateConverter(t *testing.T) {
	got, err := Date("2026-08-24")
	require.NoError(t, err)
	require.Equal(t, 2026, got.Year())
	require.Equal(t, time.August, got.Month())

	_, err = Date("not-a-date")
	require.Error(t, err)
}

func TestAtomConverter(t *testing.T) {
	conv := Atom("red", "green", "blue")
	got, err := conv("GREEN")
	require.NoError(t, err)
	require.Equal(t, "green", got)

	_, err = conv("magenta")
	require.ErrorIs(t, err, ErrBadChoice)
}

func TestSignature(t *testing.T) {
	params := []commands.Param{
		{Name: "target", Required: true},
		{Name: "count", Default: "1"},
		{Name: "verbose"},
		{Name: "mode", Choices: []string{"fast", "slow"}, Required: true},
		{Name: "tags", Variadic: true},
	}
	got := Signature(params)
	require.Equal(t, `<target> [count=1] [verbose] <"fast"|"slow"> [tags...]`, got)
}

func TestSignatureSkipsUnnamed(t *testing.T) {
	require.Equal(t, "", Signature([]commands.Param{{Name: "  "}}))
}
