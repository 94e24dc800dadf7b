// Package jsonh implements JSONH, a human-friendly superset of JSON:
// quoteless identifiers and strings, braceless root objects, multi-quoted
// (heredoc-style) strings, comments, and non-decimal numbers with digit
// separators. The package is organized in the three layers spec.md
// describes: a Cursor over a rune stream, a Tokenizer producing a lazy
// token stream from a Cursor, and an ElementBuilder that drains a token
// stream into a Node value tree. Byte/encoding-level input adapters live
// in the jsonhsource subpackage so this package never imports io.
package jsonh

import (
	"fmt"
	"iter"
)

// Tokenize lazily tokenizes src according to opts. The returned sequence
// yields a terminal (Token{}, err) pair and stops if a syntax error is
// encountered; callers that range over it without checking the error
// will simply see iteration end early.
func Tokenize(src iter.Seq[rune], opts Options) iter.Seq2[Token, error] {
	cur := NewCursor(src)
	t := NewTokenizer(cur, opts)
	if opts.ParseSingleElement {
		return chainTokenSeqs(t.ReadElement(), t.ReadEndOfElements())
	}
	return t.ReadElement()
}

func chainTokenSeqs(first, second iter.Seq2[Token, error]) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for tok, err := range first {
			if !yield(tok, err) {
				return
			}
			if err != nil {
				return
			}
		}
		for tok, err := range second {
			if !yield(tok, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// ParseNode parses src into a single Node tree.
func ParseNode(src iter.Seq[rune], opts Options) (*Node, error) {
	cur := NewCursor(src)
	defer cur.Close()
	t := NewTokenizer(cur, opts)
	b := NewElementBuilder(opts)
	return b.Build(t)
}

// ParseElement parses src into a Node and then converts it to a T via
// convert, the generic element-parsing entry point of spec.md's public
// API.
func ParseElement[T any](src iter.Seq[rune], opts Options, convert func(*Node) (T, error)) (T, error) {
	var zero T
	node, err := ParseNode(src, opts)
	if err != nil {
		return zero, err
	}
	return convert(node)
}

// HasProperty reports whether src's top-level object contains a property
// named name, without materializing the rest of the document.
func HasProperty(src iter.Seq[rune], name string, opts Options) (bool, error) {
	cur := NewCursor(src)
	defer cur.Close()
	t := NewTokenizer(cur, opts)
	return FindPropertyValue(t, name)
}

// invalidElementError is a convenience for convert functions passed to
// ParseElement, wrapping ErrWrongKind with the expected and actual kind.
func invalidElementError(want string, n *Node) error {
	return fmt.Errorf("%w: expected %s, got %v", ErrWrongKind, want, n.Kind())
}
