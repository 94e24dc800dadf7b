package jsonh

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, one per spec.md §7 error kind. Wrap with
// *SyntaxError to carry position; compare with errors.Is against these.
var (
	ErrUnexpectedEOF         = errors.New("jsonh: unexpected end of input")
	ErrUnexpectedChar        = errors.New("jsonh: unexpected character")
	ErrDepthExceeded         = errors.New("jsonh: maximum nesting depth exceeded")
	ErrMalformedEscape       = errors.New("jsonh: malformed escape sequence")
	ErrMalformedNumber       = errors.New("jsonh: malformed number")
	ErrExpectedSingleElement = errors.New("jsonh: expected a single element")
	ErrNestedBracelessObject = errors.New("jsonh: braceless object is only allowed at the document root")
	ErrNumberConversion      = errors.New("jsonh: number conversion error")
	ErrWrongKind             = errors.New("jsonh: value has the wrong kind")
)

// SyntaxError is the concrete error type returned by the tokenizer (the
// builder passes these through unchanged). It wraps one of the sentinels
// above with a position and a human-readable detail; the exact message
// format is not guaranteed stable (spec.md §1 Non-goals). Errors raised
// by the builder itself and by ParseNumber wrap a sentinel with
// fmt.Errorf and carry no position.
type SyntaxError struct {
	Line, Col int
	Pos       int
	Detail    string
	Err       error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Err, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (t *Tokenizer) syntaxError(sentinel error, format string, args ...any) error {
	line, col := t.cur.LineCol()
	return &SyntaxError{
		Line:   line,
		Col:    col,
		Pos:    t.cur.Pos(),
		Detail: fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}
