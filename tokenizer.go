package jsonh

import (
	"iter"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Tokenizer lazily produces a sequence of tokens (or an error) from a
// Cursor. It implements nearly all of JSONH's lexical rules: comments,
// the four string forms, numbers, quoteless strings, named literals,
// structural punctuation, and the quoteless-string / braceless-object /
// number ambiguity resolver (spec.md §4.2).
type Tokenizer struct {
	cur   *Cursor
	opts  Options
	depth int
}

// NewTokenizer constructs a Tokenizer over cur using opts.
func NewTokenizer(cur *Cursor, opts Options) *Tokenizer {
	return &Tokenizer{cur: cur, opts: opts}
}

// reservedChars are the characters that terminate quoteless strings and
// property names (spec.md §4.2.1). V2 adds '@'.
func (t *Tokenizer) reservedChars() string {
	if t.opts.Version.Supports(V2) {
		return "\\,:[]{}/#\"'@"
	}
	return "\\,:[]{}/#\"'"
}

func (t *Tokenizer) isReserved(r rune) bool {
	return strings.ContainsRune(t.reservedChars(), r)
}

// HasToken skips whitespace (but not comments) and reports whether any
// non-whitespace remains in the input.
func (t *Tokenizer) HasToken() bool {
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return false
		}
		if !IsWhitespace(r) {
			return true
		}
		t.cur.Read()
	}
}

// ReadElement is the top-level entry point: a lazy sequence of tokens (or
// a terminal error) describing one JSONH document.
func (t *Tokenizer) ReadElement() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		if !t.skipCommentsAndWhitespace(yield) {
			return
		}
		if _, ok := t.cur.Peek(); !ok {
			return
		}
		t.readRootValue(yield)
	}
}

// ReadEndOfElements drains trailing comments/whitespace after the root
// element and yields ErrExpectedSingleElement if anything else remains.
// Used when Options.ParseSingleElement is set.
func (t *Tokenizer) ReadEndOfElements() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		if !t.skipCommentsAndWhitespace(yield) {
			return
		}
		if _, ok := t.cur.Peek(); ok {
			yield(Token{}, t.syntaxError(ErrExpectedSingleElement, "unexpected trailing content"))
		}
	}
}

// skipCommentsAndWhitespace consumes whitespace and emits Comment tokens
// until a non-whitespace, non-comment code point is found or EOF is
// reached. Returns false if the consumer stopped iteration or an error
// was yielded.
func (t *Tokenizer) skipCommentsAndWhitespace(yield func(Token, error) bool) bool {
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return true
		}
		if IsWhitespace(r) {
			t.cur.Read()
			continue
		}
		if r == '#' {
			pos := t.cur.Pos()
			t.cur.Read()
			text := t.collectUntilNewlineOrEOF()
			if !yield(Token{Kind: CommentToken, Value: text, Pos: pos}, nil) {
				return false
			}
			continue
		}
		if r == '/' {
			pos := t.cur.Pos()
			ok2, cont := t.readCommentAt(pos, yield)
			if !ok2 {
				return false
			}
			if cont {
				continue
			}
		}
		return true
	}
}

// readCommentAt is called with the cursor positioned at a leading '/'. It
// dispatches to line, block, or nestable-block comment forms. Returns
// (continueIterating, wasComment). A '/' that does not start a comment
// form is an error: ErrUnexpectedChar is yielded and (false, true) is
// returned, so wasComment is always true.
func (t *Tokenizer) readCommentAt(pos int, yield func(Token, error) bool) (ok bool, wasComment bool) {
	t.cur.Read() // consume '/'
	r2, ok2 := t.cur.Peek()
	switch {
	case ok2 && r2 == '/':
		t.cur.Read()
		text := t.collectUntilNewlineOrEOF()
		if !yield(Token{Kind: CommentToken, Value: text, Pos: pos}, nil) {
			return false, true
		}
		return true, true
	case ok2 && r2 == '*':
		t.cur.Read()
		text, err := t.collectBlockComment()
		if err != nil {
			yield(Token{}, err)
			return false, true
		}
		if !yield(Token{Kind: CommentToken, Value: text, Pos: pos}, nil) {
			return false, true
		}
		return true, true
	case ok2 && r2 == '=' && t.opts.Version.Supports(V2):
		eqCount := 0
		for {
			rr, okk := t.cur.Peek()
			if okk && rr == '=' {
				t.cur.Read()
				eqCount++
				continue
			}
			break
		}
		if !t.cur.ReadIf('*') {
			yield(Token{}, t.syntaxError(ErrUnexpectedChar, "expected '*' to open nestable block comment"))
			return false, true
		}
		text, err := t.collectNestableBlockComment(eqCount)
		if err != nil {
			yield(Token{}, err)
			return false, true
		}
		if !yield(Token{Kind: CommentToken, Value: text, Pos: pos}, nil) {
			return false, true
		}
		return true, true
	default:
		yield(Token{}, t.syntaxError(ErrUnexpectedChar, "'/' does not start a comment"))
		return false, true
	}
}

func (t *Tokenizer) collectUntilNewlineOrEOF() string {
	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok || IsNewline(r) {
			return sb.String()
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

func (t *Tokenizer) collectBlockComment() (string, error) {
	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return "", t.syntaxError(ErrUnexpectedEOF, "unterminated block comment")
		}
		if r == '*' {
			r2, ok2 := t.cur.PeekN(1)
			if ok2 && r2 == '/' {
				t.cur.Read()
				t.cur.Read()
				return sb.String(), nil
			}
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

// collectNestableBlockComment reads the body of a V2 nestable block
// comment opened as "/" + "="*eqCount + "*", closing on the first
// "*" + "="*eqCount + "/" run (spec.md §4.2.2).
func (t *Tokenizer) collectNestableBlockComment(eqCount int) (string, error) {
	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return "", t.syntaxError(ErrUnexpectedEOF, "unterminated nestable block comment")
		}
		if r == '*' {
			matched := true
			for i := 1; i <= eqCount; i++ {
				rr, okk := t.cur.PeekN(i)
				if !okk || rr != '=' {
					matched = false
					break
				}
			}
			if matched {
				rr, okk := t.cur.PeekN(eqCount + 1)
				if okk && rr == '/' {
					for i := 0; i < eqCount+2; i++ {
						t.cur.Read()
					}
					return sb.String(), nil
				}
			}
			t.cur.Read()
			sb.WriteRune(r)
			continue
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

// readRootValue reads the single top-level element, handling the
// braceless-object upgrade that is only legal at the document root.
func (t *Tokenizer) readRootValue(yield func(Token, error) bool) {
	t.readValue(yield, true)
}

// readValue reads one value (object, array, string, number, or named
// literal) and emits its token(s). atRoot enables the braceless-object
// upgrade path for primitive tokens.
func (t *Tokenizer) readValue(yield func(Token, error) bool, atRoot bool) {
	r, ok := t.cur.Peek()
	if !ok {
		yield(Token{}, t.syntaxError(ErrUnexpectedEOF, "expected a value"))
		return
	}

	switch r {
	case '{':
		t.readObject(yield)
		return
	case '[':
		t.readArray(yield)
		return
	}

	tok, err := t.readPrimitiveToken()
	if err != nil {
		yield(Token{}, err)
		return
	}

	if !atRoot {
		if !yield(tok, nil) {
			return
		}
		return
	}

	// Braceless-object upgrade: look past comments/whitespace for ':'.
	t.maybeUpgradeToBracelessObject(tok, yield)
}

// maybeUpgradeToBracelessObject is called with the first primitive token
// of the document already read. If it is followed (across
// comments/whitespace) by ':', it becomes the first property name of a
// synthetic root object (spec.md §4.2.5).
func (t *Tokenizer) maybeUpgradeToBracelessObject(first Token, yield func(Token, error) bool) {
	// Buffer comments seen while probing for ':' so they can be replayed
	// in order if this turns out not to be a braceless object.
	var buffered []Token
	var probeErr error
	foundColon := func() bool {
		for {
			r, ok := t.cur.Peek()
			if !ok {
				return false
			}
			if IsWhitespace(r) {
				t.cur.Read()
				continue
			}
			if r == '#' || r == '/' {
				pos := t.cur.Pos()
				if r == '#' {
					t.cur.Read()
					text := t.collectUntilNewlineOrEOF()
					buffered = append(buffered, Token{Kind: CommentToken, Value: text, Pos: pos})
				} else {
					sub := func(tok Token, err error) bool {
						if err != nil {
							probeErr = err
							return false
						}
						buffered = append(buffered, tok)
						return true
					}
					if ok2, _ := t.readCommentAt(pos, sub); !ok2 {
						return false
					}
				}
				continue
			}
			return r == ':'
		}
	}()

	if probeErr != nil {
		yield(Token{}, probeErr)
		return
	}

	if !foundColon {
		if !yield(first, nil) {
			return
		}
		for _, c := range buffered {
			if !yield(c, nil) {
				return
			}
		}
		return
	}

	// It is a braceless object: emit a synthetic StartObject, the
	// buffered comments, the first property name/value pair, then keep
	// reading properties until EOF.
	if !yield(Token{Kind: StartObject, Pos: first.Pos}, nil) {
		return
	}
	for _, c := range buffered {
		if !yield(c, nil) {
			return
		}
	}
	if !yield(Token{Kind: PropertyName, Value: first.Value, Pos: first.Pos}, nil) {
		return
	}
	t.cur.Read() // consume ':'
	if !t.skipCommentsAndWhitespace(yield) {
		return
	}
	t.readValue(yield, false)
	if !t.readTrailingComma(yield) {
		return
	}

	for {
		if !t.skipCommentsAndWhitespace(yield) {
			return
		}
		if _, ok := t.cur.Peek(); !ok {
			break
		}
		if !t.readProperty(yield) {
			return
		}
	}
	yield(Token{Kind: EndObject}, nil)
}

// readObject reads a braced object: '{' properties '}'.
func (t *Tokenizer) readObject(yield func(Token, error) bool) {
	pos := t.cur.Pos()
	t.cur.Read() // consume '{'
	t.depth++
	if t.depth > t.opts.MaxDepth {
		yield(Token{}, t.syntaxError(ErrDepthExceeded, "max depth %d exceeded", t.opts.MaxDepth))
		return
	}
	if !yield(Token{Kind: StartObject, Pos: pos}, nil) {
		return
	}
	for {
		if !t.skipCommentsAndWhitespace(yield) {
			return
		}
		r, ok := t.cur.Peek()
		if !ok {
			if t.opts.IncompleteInputs {
				t.depth--
				yield(Token{Kind: EndObject}, nil)
				return
			}
			yield(Token{}, t.syntaxError(ErrUnexpectedEOF, "unterminated object"))
			return
		}
		if r == '}' {
			t.cur.Read()
			t.depth--
			yield(Token{Kind: EndObject, Pos: t.cur.Pos()}, nil)
			return
		}
		if !t.readProperty(yield) {
			return
		}
	}
}

// readProperty reads one "name : value" (or "name { ... }") pair inside
// an object, followed by an optional trailing comma.
func (t *Tokenizer) readProperty(yield func(Token, error) bool) bool {
	name, err := t.readPropertyName()
	if err != nil {
		yield(Token{}, err)
		return false
	}
	if !yield(Token{Kind: PropertyName, Value: name.Value, Pos: name.Pos}, nil) {
		return false
	}
	if !t.skipCommentsAndWhitespace(yield) {
		return false
	}
	r, ok := t.cur.Peek()
	switch {
	case ok && r == ':':
		t.cur.Read()
		if !t.skipCommentsAndWhitespace(yield) {
			return false
		}
		if _, ok := t.cur.Peek(); !ok {
			if t.opts.IncompleteInputs {
				return true
			}
			yield(Token{}, t.syntaxError(ErrUnexpectedEOF, "expected a value after ':'"))
			return false
		}
		t.readValue(yield, false)
	case ok && r == '{':
		// "key { ... }" — colon is optional when the value is
		// syntactically a message (spec.md §4.2.5).
		t.readObject(yield)
	default:
		if !ok && t.opts.IncompleteInputs {
			return true
		}
		yield(Token{}, t.syntaxError(ErrUnexpectedChar, "expected ':' after property name"))
		return false
	}
	return t.readTrailingComma(yield)
}

func (t *Tokenizer) readTrailingComma(yield func(Token, error) bool) bool {
	if !t.skipCommentsAndWhitespace(yield) {
		return false
	}
	t.cur.ReadIf(',')
	return true
}

// readPropertyName reads a quoted or quoteless string used as a property
// name; named-literal upgrade never applies to property names.
func (t *Tokenizer) readPropertyName() (Token, error) {
	pos := t.cur.Pos()
	r, ok := t.cur.Peek()
	if !ok {
		return Token{}, t.syntaxError(ErrUnexpectedEOF, "expected a property name")
	}
	var value string
	var err error
	switch {
	case r == '\'' || r == '"':
		value, err = t.readQuoted(false)
	case r == '@' && t.opts.Version.Supports(V2):
		t.cur.Read()
		r2, _ := t.cur.Peek()
		if r2 == '\'' || r2 == '"' {
			value, err = t.readQuoted(true)
		} else {
			value, _, err = t.readQuotelessRaw(true)
		}
	default:
		value, _, err = t.readQuotelessRaw(false)
	}
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: PropertyName, Value: value, Pos: pos}, nil
}

// readArray reads a bracketed array: '[' items ']'.
func (t *Tokenizer) readArray(yield func(Token, error) bool) {
	pos := t.cur.Pos()
	t.cur.Read() // consume '['
	t.depth++
	if t.depth > t.opts.MaxDepth {
		yield(Token{}, t.syntaxError(ErrDepthExceeded, "max depth %d exceeded", t.opts.MaxDepth))
		return
	}
	if !yield(Token{Kind: StartArray, Pos: pos}, nil) {
		return
	}
	for {
		if !t.skipCommentsAndWhitespace(yield) {
			return
		}
		r, ok := t.cur.Peek()
		if !ok {
			if t.opts.IncompleteInputs {
				t.depth--
				yield(Token{Kind: EndArray}, nil)
				return
			}
			yield(Token{}, t.syntaxError(ErrUnexpectedEOF, "unterminated array"))
			return
		}
		if r == ']' {
			t.cur.Read()
			t.depth--
			yield(Token{Kind: EndArray, Pos: t.cur.Pos()}, nil)
			return
		}
		if t.looksLikeBracelessStart(r) {
			yield(Token{}, t.syntaxError(ErrNestedBracelessObject, "braceless objects are only allowed at the document root"))
			return
		}
		t.readValue(yield, false)
		if !t.readTrailingComma(yield) {
			return
		}
	}
}

// looksLikeBracelessStart is a cheap pre-check used only to produce a
// clearer error: a bare quoteless/quoted primitive followed by ':' is
// never legal inside an array, since arrays have no property names.
// Detecting this exactly would require the same lookahead as the root
// upgrade; in practice readValue's own primitive reading combined with
// the grammar (no ':' handling inside readArray) already rejects it, so
// this hook intentionally always returns false and is kept only as an
// extension point named in spec.md's braceless-object discussion.
func (t *Tokenizer) looksLikeBracelessStart(r rune) bool {
	return false
}

// readPrimitiveToken reads one String/Number/True/False/Null token,
// applying the number/quoteless-string ambiguity resolution of
// spec.md §4.2.4.
func (t *Tokenizer) readPrimitiveToken() (Token, error) {
	pos := t.cur.Pos()
	r, ok := t.cur.Peek()
	if !ok {
		return Token{}, t.syntaxError(ErrUnexpectedEOF, "expected a value")
	}

	switch {
	case r == '\'' || r == '"':
		value, err := t.readQuoted(false)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: StringToken, Value: value, Pos: pos}, nil
	case r == '@' && t.opts.Version.Supports(V2):
		t.cur.Read()
		r2, _ := t.cur.Peek()
		if r2 == '\'' || r2 == '"' {
			value, err := t.readQuoted(true)
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: StringToken, Value: value, Pos: pos}, nil
		}
		value, _, err := t.readQuotelessRaw(true)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: StringToken, Value: value, Pos: pos}, nil
	case isNumberStart(r):
		return t.readNumberOrQuoteless(pos)
	default:
		value, sawEscape, err := t.readQuotelessRaw(false)
		if err != nil {
			return Token{}, err
		}
		if sawEscape {
			return Token{Kind: StringToken, Value: value, Pos: pos}, nil
		}
		return namedLiteralOrString(value, pos), nil
	}
}

func isNumberStart(r rune) bool {
	return r == '-' || r == '+' || r == '.' || (r >= '0' && r <= '9')
}

func namedLiteralOrString(value string, pos int) Token {
	switch value {
	case "null":
		return Token{Kind: Null, Pos: pos}
	case "true":
		return Token{Kind: True, Pos: pos}
	case "false":
		return Token{Kind: False, Pos: pos}
	default:
		return Token{Kind: StringToken, Value: value, Pos: pos}
	}
}

// readQuotelessRaw collects a quoteless string: everything up to a
// reserved character or newline, with leading/trailing whitespace
// trimmed after collection, backslash escapes processed unless verbatim.
// An empty result is an error. The second return value reports whether
// an escape sequence was used during collection; callers use it to
// suppress the named-literal upgrade (spec.md §4.2.3: an escaped
// spelling such as \x74rue stays the string "true", it does not become
// the True token).
func (t *Tokenizer) readQuotelessRaw(verbatim bool) (string, bool, error) {
	var sb strings.Builder
	sawEscape := false
	for {
		r, ok := t.cur.Peek()
		if !ok || IsNewline(r) || t.isReserved(r) {
			break
		}
		if r == '\\' {
			t.cur.Read()
			if verbatim {
				sb.WriteByte('\\')
				continue
			}
			sawEscape = true
			s, err := t.readEscape()
			if err != nil {
				return "", sawEscape, err
			}
			sb.WriteString(s)
			continue
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
	value := strings.TrimFunc(sb.String(), IsWhitespace)
	if value == "" {
		return "", sawEscape, t.syntaxError(ErrUnexpectedChar, "empty quoteless string")
	}
	return value, sawEscape, nil
}

// readQuoted reads a single-, double-, or multi-quoted string starting
// at the cursor's current quote character (spec.md §4.2.3).
func (t *Tokenizer) readQuoted(verbatim bool) (string, error) {
	q, _ := t.cur.Read()
	runLen := 1
	for {
		r, ok := t.cur.Peek()
		if ok && r == q {
			t.cur.Read()
			runLen++
			continue
		}
		break
	}
	switch {
	case runLen == 2:
		return "", nil
	case runLen == 1:
		return t.readSingleQuotedBody(q, verbatim)
	default:
		raw, err := t.collectMultiQuotedRaw(q, runLen)
		if err != nil {
			return "", err
		}
		stripped := stripMultiQuoteIndentation(raw)
		if verbatim {
			return stripped, nil
		}
		return t.unescapeText(stripped)
	}
}

func (t *Tokenizer) readSingleQuotedBody(q rune, verbatim bool) (string, error) {
	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return "", t.syntaxError(ErrUnexpectedEOF, "unterminated string")
		}
		if r == q {
			t.cur.Read()
			return sb.String(), nil
		}
		if r == '\\' {
			t.cur.Read()
			if verbatim {
				sb.WriteByte('\\')
				continue
			}
			s, err := t.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			continue
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

// collectMultiQuotedRaw reads the raw (not-yet-unescaped,
// not-yet-stripped) body of a multi-quoted string, closing on the first
// run of at least openCount copies of q; shorter runs belong to the body
// (spec.md §4.2.3, §4.6).
func (t *Tokenizer) collectMultiQuotedRaw(q rune, openCount int) (string, error) {
	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return "", t.syntaxError(ErrUnexpectedEOF, "unterminated multi-quoted string")
		}
		if r == q {
			count := 1
			for {
				rr, okk := t.cur.PeekN(count)
				if okk && rr == q {
					count++
					continue
				}
				break
			}
			if count >= openCount {
				for i := 0; i < openCount; i++ {
					t.cur.Read()
				}
				return sb.String(), nil
			}
			for i := 0; i < count; i++ {
				rr, _ := t.cur.Read()
				sb.WriteRune(rr)
			}
			continue
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

// unescapeText runs the shared backslash-escape alphabet over already
// stripped string body text (used by multi-quoted strings, whose
// indentation stripping must happen before escapes are expanded so that
// literal newlines, not escape sequences, drive the stripping passes).
func (t *Tokenizer) unescapeText(s string) (string, error) {
	runes := []rune(s)
	saved := t.cur
	sub := NewCursor(runeSeq(runes))
	t.cur = sub
	defer func() { t.cur = saved }()

	var sb strings.Builder
	for {
		r, ok := t.cur.Peek()
		if !ok {
			return sb.String(), nil
		}
		if r == '\\' {
			t.cur.Read()
			es, err := t.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteString(es)
			continue
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
}

func runeSeq(rs []rune) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range rs {
			if !yield(r) {
				return
			}
		}
	}
}

// readEscape consumes the character(s) following a backslash and returns
// the decoded text, per the escape alphabet in spec.md §4.2.3.
func (t *Tokenizer) readEscape() (string, error) {
	r, ok := t.cur.Read()
	if !ok {
		return "", t.syntaxError(ErrUnexpectedEOF, "unterminated escape sequence")
	}
	switch r {
	case '\\':
		return "\\", nil
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	case 'v':
		return "\v", nil
	case '0':
		return "\x00", nil
	case 'a':
		return "\a", nil
	case 'e':
		return "\x1b", nil
	case 'x':
		return t.readHexEscape(2)
	case 'u':
		return t.readUnicodeEscapeBMP()
	case 'U':
		return t.readHexEscape(8)
	case '\r':
		t.cur.ReadIf('\n')
		return "", nil
	case '\n':
		return "", nil
	default:
		return string(r), nil
	}
}

func (t *Tokenizer) readHexDigits(n int) (uint32, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, ok := t.cur.Peek()
		if !ok || !isHexDigit(r) {
			return 0, t.syntaxError(ErrMalformedEscape, "expected %d hex digits", n)
		}
		t.cur.Read()
		sb.WriteRune(r)
	}
	v, err := strconv.ParseUint(sb.String(), 16, 32)
	if err != nil {
		return 0, t.syntaxError(ErrMalformedEscape, "invalid hex digits")
	}
	return uint32(v), nil
}

func (t *Tokenizer) readHexEscape(n int) (string, error) {
	v, err := t.readHexDigits(n)
	if err != nil {
		return "", err
	}
	return string(rune(v)), nil
}

// readUnicodeEscapeBMP reads a \u escape, combining with an immediately
// following \u low-surrogate escape into one code point when the first
// value is a high surrogate (spec.md's \U law: \U0001F47D ==
// \uD83D\uDC7D).
func (t *Tokenizer) readUnicodeEscapeBMP() (string, error) {
	hi, err := t.readHexDigits(4)
	if err != nil {
		return "", err
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		if lo, ok := t.tryPeekLowSurrogateEscape(); ok {
			t.consumeLowSurrogateEscape()
			combined := utf16.DecodeRune(rune(hi), rune(lo))
			return string(combined), nil
		}
	}
	return string(rune(hi)), nil
}

func (t *Tokenizer) tryPeekLowSurrogateEscape() (uint32, bool) {
	if r0, ok := t.cur.PeekN(0); !ok || r0 != '\\' {
		return 0, false
	}
	if r1, ok := t.cur.PeekN(1); !ok || r1 != 'u' {
		return 0, false
	}
	var hex strings.Builder
	for i := 0; i < 4; i++ {
		r, ok := t.cur.PeekN(2 + i)
		if !ok || !isHexDigit(r) {
			return 0, false
		}
		hex.WriteRune(r)
	}
	v, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil {
		return 0, false
	}
	if v < 0xDC00 || v > 0xDFFF {
		return 0, false
	}
	return uint32(v), true
}

func (t *Tokenizer) consumeLowSurrogateEscape() {
	for i := 0; i < 6; i++ {
		t.cur.Read()
	}
}

// stripMultiQuoteIndentation implements the five-pass indentation
// stripping algorithm of spec.md §4.2.3. Both preconditions (a leading
// whitespace-then-newline, and a trailing newline-then-whitespace) must
// hold for any stripping to occur; otherwise raw is returned unchanged.
func stripMultiQuoteIndentation(raw string) string {
	runes := []rune(raw)
	n := len(runes)

	i := 0
	for i < n && isIndentWhitespace(runes[i]) {
		i++
	}
	leadingOK := i < n && IsNewline(runes[i])
	var leadLen int
	if leadingOK {
		leadLen = i + 1
		if runes[i] == '\r' && i+1 < n && runes[i+1] == '\n' {
			leadLen++
		}
	}

	lastNewline := -1
	for j := n - 1; j >= 0; j-- {
		if IsNewline(runes[j]) {
			lastNewline = j
			break
		}
	}
	trailingOK := false
	var trailW int
	if lastNewline >= 0 {
		allWS := true
		for j := lastNewline + 1; j < n; j++ {
			if !isIndentWhitespace(runes[j]) {
				allWS = false
				break
			}
		}
		if allWS {
			trailingOK = true
			trailW = n - (lastNewline + 1)
		}
	}

	if !leadingOK || !trailingOK {
		return string(runes)
	}

	body := runes[:lastNewline]
	if leadLen <= len(body) {
		body = body[leadLen:]
	} else {
		body = nil
	}
	return stripCommonIndent(body, trailW)
}

// stripCommonIndent removes up to w leading whitespace code points from
// each line of body, stopping early at the first non-whitespace code
// point on that line.
func stripCommonIndent(body []rune, w int) string {
	var out strings.Builder
	i, n := 0, len(body)
	for i < n {
		stripped := 0
		for stripped < w && i < n && isIndentWhitespace(body[i]) {
			i++
			stripped++
		}
		for i < n && !IsNewline(body[i]) {
			out.WriteRune(body[i])
			i++
		}
		if i < n {
			nl := body[i]
			out.WriteRune(nl)
			i++
			if nl == '\r' && i < n && body[i] == '\n' {
				out.WriteRune(body[i])
				i++
			}
		}
	}
	return out.String()
}

// readNumberOrQuoteless attempts to lex a number literal (spec.md
// §4.2.4). If the grammar fails partway, or if a number parses but is
// followed (directly or after same-line whitespace) by a '\' or a
// non-reserved character, the token is demoted/upgraded to a quoteless
// string per the disambiguation rule.
func (t *Tokenizer) readNumberOrQuoteless(pos int) (Token, error) {
	var sb strings.Builder
	ok := t.lexNumberGrammar(&sb)
	numText := sb.String()

	if !ok || !isSyntacticNumber(numText) {
		return t.continueAsQuoteless(numText, pos)
	}

	// Disambiguation: a number followed by optional same-line whitespace
	// and then a backslash or non-reserved character becomes a quoteless
	// string whose prefix is the number text plus the intervening
	// whitespace.
	mark := t.cur.Mark()
	var wsBuf strings.Builder
	crossedNewline := false
	for {
		r, ok := t.cur.Peek()
		if !ok {
			break
		}
		if r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' {
			crossedNewline = true
			break
		}
		if IsWhitespace(r) {
			t.cur.Read()
			wsBuf.WriteRune(r)
			continue
		}
		break
	}
	if !crossedNewline {
		if r, ok := t.cur.Peek(); ok && (r == '\\' || !t.isReserved(r)) {
			rest, _, err := t.readQuotelessRaw(false)
			if err != nil {
				return Token{}, err
			}
			value := strings.TrimFunc(numText+wsBuf.String()+rest, IsWhitespace)
			return Token{Kind: StringToken, Value: value, Pos: pos}, nil
		}
	}
	t.cur.Reset(mark)

	return Token{Kind: NumberToken, Value: numText, Pos: pos}, nil
}

// continueAsQuoteless seeds a quoteless-string parse with whatever
// number-grammar text was already accumulated (spec.md §4.2.4: "If the
// number parse fails partway, whatever was already accumulated seeds a
// quoteless-string parse").
func (t *Tokenizer) continueAsQuoteless(seed string, pos int) (Token, error) {
	rest, sawEscape, err := t.readQuotelessRaw(false)
	if err != nil {
		if seed == "" {
			return Token{}, err
		}
		rest = ""
		sawEscape = false
	}
	value := strings.TrimFunc(seed+rest, IsWhitespace)
	if value == "" {
		return Token{}, t.syntaxError(ErrUnexpectedChar, "empty quoteless string")
	}
	if sawEscape {
		return Token{Kind: StringToken, Value: value, Pos: pos}, nil
	}
	return namedLiteralOrString(value, pos), nil
}

// isSyntacticNumber rejects shapes the grammar admits lexically but
// spec.md explicitly demotes to quoteless strings: a bare '.'/'-.', and
// an exponent marker with no digits ("0e", "0xe+2", ...).
func isSyntacticNumber(text string) bool {
	if text == "" || text == "." || text == "-" || text == "+" ||
		text == "-." || text == "+." {
		return false
	}
	stripped := strings.TrimPrefix(strings.TrimPrefix(text, "-"), "+")
	if stripped == "" || stripped == "." {
		return false
	}
	lower := strings.ToLower(stripped)
	base := 10
	body := lower
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
		body = lower[2:]
	case strings.HasPrefix(lower, "0b"):
		base = 2
		body = lower[2:]
	case strings.HasPrefix(lower, "0o"):
		base = 8
		body = lower[2:]
	}
	if body == "" {
		return false
	}
	mantissa, exponent, has := splitExponent(body, base)
	if mantissa == "" || mantissa == "." {
		return false
	}
	if has {
		exponent = strings.TrimPrefix(strings.TrimPrefix(exponent, "-"), "+")
		if exponent == "" {
			return false
		}
	}
	return true
}

// lexNumberGrammar consumes the longest prefix matching the number
// grammar in spec.md §4.2.4 into sb, applying the underscore placement
// rules. Returns false if a required digit run has no digit (e.g. "0x"
// with no hex digit after it), in which case sb still holds whatever was
// validly consumed. A trailing '_' is left unconsumed rather than
// reported.
func (t *Tokenizer) lexNumberGrammar(sb *strings.Builder) bool {
	if r, ok := t.cur.ReadAny('-', '+'); ok {
		sb.WriteRune(r)
	}

	base := 10
	if r0, ok := t.cur.Peek(); ok && r0 == '0' {
		if r1, ok1 := t.cur.PeekN(1); ok1 {
			switch r1 {
			case 'x', 'X':
				sb.WriteRune(r0)
				sb.WriteRune(r1)
				t.cur.Read()
				t.cur.Read()
				base = 16
			case 'b', 'B':
				sb.WriteRune(r0)
				sb.WriteRune(r1)
				t.cur.Read()
				t.cur.Read()
				base = 2
			case 'o', 'O':
				sb.WriteRune(r0)
				sb.WriteRune(r1)
				t.cur.Read()
				t.cur.Read()
				base = 8
			}
		}
	}

	if !t.lexDigitRun(sb, base, base != 10) {
		return false
	}

	if r, ok := t.cur.Peek(); ok && r == '.' {
		if r1, ok1 := t.cur.PeekN(1); !ok1 || !isDigitInBase(r1, base) {
			// A lone '.' with no following digit: not part of the number.
		} else {
			t.cur.Read()
			sb.WriteByte('.')
			if !t.lexDigitRun(sb, base, false) {
				return false
			}
		}
	}

	if r, ok := t.cur.Peek(); ok && (r == 'e' || r == 'E') {
		if base == 16 {
			r1, ok1 := t.cur.PeekN(1)
			if ok1 && (r1 == '+' || r1 == '-') {
				t.cur.Read()
				sb.WriteRune(r)
				sb.WriteRune(r1)
				t.cur.Read()
				if !t.lexDigitRun(sb, 10, false) {
					return false
				}
			}
		} else {
			mark := t.cur.Mark()
			t.cur.Read()
			var expBuf strings.Builder
			expBuf.WriteRune(r)
			if rs, ok := t.cur.ReadAny('+', '-'); ok {
				expBuf.WriteRune(rs)
			}
			var digits strings.Builder
			if !t.lexDigitRun(&digits, 10, false) || digits.Len() == 0 {
				t.cur.Reset(mark)
			} else {
				sb.WriteString(expBuf.String())
				sb.WriteString(digits.String())
			}
		}
	}

	return true
}

// lexDigitRun consumes a run of digits (in base) with JSONH's underscore
// placement: underscores may repeat between digits, and may also lead the
// run when allowLeadingUnderscore is set (true only for the integer part
// immediately after a base prefix like "0x"/"0b"/"0o" — spec.md §4.2.4),
// but never trail the run. Returns false (with sb holding the valid
// prefix already consumed) if no digit at all was found.
//
// For base 16, a bare 'e'/'E' is an ordinary hex digit, but when it is
// immediately followed by a literal '+' or '-' it is instead the
// hex-exponent marker (spec.md §4.2.4) and must stop the digit run
// unconsumed so the caller's exponent branch can see it.
func (t *Tokenizer) lexDigitRun(sb *strings.Builder, base int, allowLeadingUnderscore bool) bool {
	count := 0
	leadingUnderscoreUsed := false
	for {
		r, ok := t.cur.Peek()
		if !ok {
			break
		}
		if base == 16 && (r == 'e' || r == 'E') {
			if r1, ok1 := t.cur.PeekN(1); ok1 && (r1 == '+' || r1 == '-') {
				break
			}
		}
		if isDigitInBase(r, base) {
			t.cur.Read()
			sb.WriteRune(r)
			count++
			continue
		}
		if r == '_' {
			canLead := count == 0 && allowLeadingUnderscore && !leadingUnderscoreUsed
			if count > 0 || canLead {
				r1, ok1 := t.cur.PeekN(1)
				if ok1 && isDigitInBase(r1, base) {
					t.cur.Read()
					sb.WriteRune(r)
					if canLead {
						leadingUnderscoreUsed = true
					}
					continue
				}
			}
		}
		break
	}
	return count > 0
}
