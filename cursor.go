package jsonh

import (
	"iter"
	"unicode"
)

// Cursor wraps a sequence of Unicode code points as a peekable stream with
// a monotonically increasing read counter. All other components consume
// input only through a Cursor.
//
// buf holds every code point pulled from the underlying iterator that
// hasn't yet been released; off is the index of the next unread code
// point within buf. Read never shrinks buf, it only advances off, so a
// Mark/Reset pair can rewind the cursor without re-pulling (and without
// ever losing) code points the underlying iter.Pull iterator already
// produced: iter.Pull's next function is a one-shot, non-replayable
// consumer of the source sequence, so anything it has already yielded
// must live somewhere replayable, which is what buf is for.
type Cursor struct {
	next func() (rune, bool)
	stop func()
	buf  []rune
	off  int

	pos  int
	line int
	col  int
}

// NewCursor adapts a forward character iterator into a Cursor. The
// character-source adapters that produce seq (strings, readers, byte
// streams with encoding detection) live outside this package; see
// jsonhsource.
func NewCursor(seq iter.Seq[rune]) *Cursor {
	next, stop := iter.Pull(seq)
	return &Cursor{next: next, stop: stop, line: 1, col: 1}
}

// Close releases the underlying iterator. Safe to call more than once.
func (c *Cursor) Close() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *Cursor) fill(n int) {
	for len(c.buf)-c.off <= n {
		if c.next == nil {
			return
		}
		r, ok := c.next()
		if !ok {
			c.next = nil
			return
		}
		c.buf = append(c.buf, r)
	}
}

// PeekN returns the code point n positions ahead of the cursor (0 is the
// next unread code point) without consuming it.
func (c *Cursor) PeekN(n int) (rune, bool) {
	c.fill(n)
	if c.off+n >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.off+n], true
}

// Peek returns the next code point without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	return c.PeekN(0)
}

// Read consumes and returns the next code point.
func (c *Cursor) Read() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.off++
	c.pos++
	if r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r, true
}

// CursorMark is an opaque checkpoint produced by Cursor.Mark, to be passed
// to Cursor.Reset to rewind the cursor to that point.
type CursorMark struct {
	off, pos, line, col int
}

// Mark returns a checkpoint of the cursor's current position. Pass it to
// Reset to rewind after a speculative read that turned out not to apply.
func (c *Cursor) Mark() CursorMark {
	return CursorMark{off: c.off, pos: c.pos, line: c.line, col: c.col}
}

// Reset rewinds the cursor to a checkpoint returned by an earlier call to
// Mark on the same Cursor.
func (c *Cursor) Reset(m CursorMark) {
	c.off = m.off
	c.pos = m.pos
	c.line = m.line
	c.col = m.col
}

// ReadIf consumes the next code point iff it equals want.
func (c *Cursor) ReadIf(want rune) bool {
	r, ok := c.Peek()
	if !ok || r != want {
		return false
	}
	c.Read()
	return true
}

// ReadAny consumes the next code point iff it is a member of set.
func (c *Cursor) ReadAny(set ...rune) (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	for _, s := range set {
		if r == s {
			c.Read()
			return r, true
		}
	}
	return 0, false
}

// Pos returns the count of code points consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// LineCol returns the 1-indexed line and column of the next unread code
// point, for diagnostics. Exact values are not part of this package's
// compatibility surface.
func (c *Cursor) LineCol() (line, col int) { return c.line, c.col }

// IsNewline reports whether r is one of the newline code points this
// system recognizes: LF, CR, U+2028 (LINE SEPARATOR), U+2029 (PARAGRAPH
// SEPARATOR).
func IsNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsWhitespace reports whether r is whitespace per the host Unicode
// tables, including the BOM (U+FEFF).
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// isIndentWhitespace reports whether r counts as indentation whitespace
// for multi-quoted string stripping: whitespace that is not itself a
// newline.
func isIndentWhitespace(r rune) bool {
	return !IsNewline(r) && IsWhitespace(r)
}
