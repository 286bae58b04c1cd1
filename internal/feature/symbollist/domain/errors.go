// Package domain defines domain-level errors for the symbollist feature.
package domain

import "errors"

// MaxCodeLength is the longest ticker code the catalogue stores.
const MaxCodeLength = 20

var (
	// ErrEmptyCode is returned when a ticker code is blank.
	ErrEmptyCode = errors.New("symbol code is empty")

	// ErrCodeTooLong is returned when a ticker code exceeds MaxCodeLength.
	ErrCodeTooLong = errors.New("symbol code is too long")

	// ErrSymbolNotFound indicates that the catalogue has no such code.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoActiveSymbols is returned when bulk preparation finds an empty catalogue.
	ErrNoActiveSymbols = errors.New("no active symbols")
)
