package vcfld

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks problems that prevent a run from starting at all: an
	// unreadable input, a missing or malformed header, or invalid options.
	ErrConfig = errors.New("configuration error")

	// ErrMalformedRecord marks a data line that does not have the expected
	// layout. These may be skipped if the reader is configured to do so.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnsorted marks input that is not sorted by chromosome and then by
	// strictly ascending position. Window scanning depends on that order, so
	// this is never skippable.
	ErrUnsorted = errors.New("input is not sorted by position")

	// ErrSampleMismatch is returned when two variants do not share a sample
	// count.
	ErrSampleMismatch = errors.New("variants have different sample counts")
)

// RecordError describes a problem with one input line.
type RecordError struct {
	Line   int    // 1-based line number within the stream
	Field  string // offending field, if any
	Text   string // the full line
	Reason string
	Kind   error // ErrMalformedRecord or ErrUnsorted
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v at line %d: %s (field %q)\n\tline = %s", e.Kind, e.Line, e.Reason, e.Field, e.Text)
	}
	return fmt.Sprintf("%v at line %d: %s\n\tline = %s", e.Kind, e.Line, e.Reason, e.Text)
}

func (e *RecordError) Unwrap() error { return e.Kind }
