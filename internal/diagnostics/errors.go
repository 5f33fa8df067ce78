// Package diagnostics carries the single error kind the decoder raises,
// plus the bookkeeping that lets the library decoder skip a bad blueprint
// instead of aborting the whole file.
package diagnostics

import "fmt"

// ParseError is the one error kind every stream-level assertion raises.
// It always carries the byte offset at which the expectation failed.
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d (0x%X): %s", e.Offset, e.Offset, e.Message)
}

// New builds a ParseError at the given offset.
func New(offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// AsParseError reports whether err is (or wraps) a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	if re, ok := err.(*RecoverableError); ok {
		return re.ParseError, true
	}
	pe, ok := err.(*ParseError)
	return pe, ok
}

// RecoverableError wraps a ParseError raised inside a blueprint body after
// the decoder has already repositioned the stream past the blueprint's
// declared content (and local index, if any). Callers with skip-bad
// enabled may record it and continue the outer slot loop without any
// further seeking; callers without skip-bad still treat it as fatal.
type RecoverableError struct {
	*ParseError
}

// AsRecoverable reports whether err is a *RecoverableError, meaning the
// stream position is already safe to resume from.
func AsRecoverable(err error) (*RecoverableError, bool) {
	re, ok := err.(*RecoverableError)
	return re, ok
}

// SkippedSlot records one library slot that failed to decode while
// skip-bad recovery was enabled.
type SkippedSlot struct {
	Index int
	Err   *ParseError
}

// SkipReport accumulates skipped slots across a library decode.
type SkipReport struct {
	Skipped []SkippedSlot
}

// Add records a skip for the given slot index.
func (r *SkipReport) Add(slotIndex int, err *ParseError) {
	r.Skipped = append(r.Skipped, SkippedSlot{Index: slotIndex, Err: err})
}

// Count returns the number of skipped slots.
func (r *SkipReport) Count() int {
	return len(r.Skipped)
}
