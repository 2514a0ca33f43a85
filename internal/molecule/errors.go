package molecule

import (
	"errors"
	"fmt"
)

// Domain errors for structure reading.
var (
	// ErrNoAtoms indicates the input parsed cleanly but held no atoms.
	ErrNoAtoms = errors.New("molecule: structure contains no atoms")

	// ErrUnknownFormat indicates the file extension maps to no reader.
	ErrUnknownFormat = errors.New("molecule: unknown structure format")

	// ErrTruncated indicates a block ended before its declared length.
	ErrTruncated = errors.New("molecule: truncated input")
)

// ParseError wraps an error with the input line it came from.
type ParseError struct {
	Format  string
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Format, e.Line, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
