// Package args parses command arguments: scalar converters, greedy
// delimited lists, and usage signature rendering.
package args

import "errors"

var (
	// ErrExpectedArgument is returned when input ends where a value was
	// still required, e.g. after a trailing list delimiter.
	ErrExpectedArgument = errors.New("expected argument")
	// ErrBadChoice is returned by Atom when the value is not one of the
	// allowed choices.
	ErrBadChoice = errors.New("value is not an allowed choice")
	// ErrBadDelimiter is returned when a list delimiter is not a single
	// non-space character.
	ErrBadDelimiter = errors.New("delimiter must be a single non-space character")
	// ErrUnexpectedQuote is returned when a quoted word is not terminated.
	ErrUnexpectedQuote = errors.New("unterminated quoted argument")
)
