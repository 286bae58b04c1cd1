// Package domain defines domain-level errors for the challenge feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for frame preparation and result lookup.
var (
	// ErrResultNotFound indicates that no result has been stored for the challenge.
	ErrResultNotFound = errors.New("challenge result not found")

	// ErrColumnNotFound is returned when a frame operation names a column the frame does not have.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns of a frame share a name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrRaggedRow is returned when a record's width differs from the header.
	ErrRaggedRow = errors.New("row length does not match header")

	// ErrUnparsableDatetime is returned when a value cannot be converted to a timestamp.
	ErrUnparsableDatetime = errors.New("unparsable datetime")

	// ErrMissingDateColumn is returned when a prepared frame has no 'date' column to index by.
	ErrMissingDateColumn = errors.New("frame has no 'date' column")

	// ErrEmptyChallenge is returned when a challenge name is blank.
	ErrEmptyChallenge = errors.New("challenge name is empty")

	// ErrChallengeTooLong is returned when a challenge name exceeds MaxChallengeLength.
	ErrChallengeTooLong = errors.New("challenge name is too long")
)

// MaxChallengeLength is the longest challenge name storage accepts, in characters.
const MaxChallengeLength = 64

// AssertionFailure is raised by a check when the expected value does not match.
type AssertionFailure struct {
	Check    string // Name of the failing check
	Expected any
	Actual   any
	Msg      string // Optional hint shown to the user
}

func (e *AssertionFailure) Error() string {
	s := fmt.Sprintf("%s: %s != %s", e.Check, repr(e.Actual), repr(e.Expected))
	if e.Msg != "" {
		s += " : " + e.Msg
	}
	return s
}

// repr quotes strings so empty and whitespace values stay visible.
func repr(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return fmt.Sprintf("%q", x.String())
	default:
		return fmt.Sprintf("%v", x)
	}
}
