package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRole is returned when input names a kind outside the closed set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrMalformedRecord matches every *MalformedRecordError via errors.Is.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIOFailure wraps file and database access failures.
	ErrIOFailure = errors.New("roster storage unavailable")
)

// MalformedRecordError reports a roster line that could not be turned into a
// record. Line is 1-based.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }
