package jsonh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, text string, opts Options) []Token {
	t.Helper()
	cur := NewCursor(runeSeq([]rune(text)))
	tok := NewTokenizer(cur, opts)
	var out []Token
	for token, err := range tok.ReadElement() {
		require.NoError(t, err, "text=%q", text)
		token.Pos = 0
		out = append(out, token)
	}
	return out
}

func kindsOf(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenizerBracedObject(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `{a: 1, b: "two"}`, opts)
	want := []Token{
		{Kind: StartObject},
		{Kind: PropertyName, Value: "a"},
		{Kind: NumberToken, Value: "1"},
		{Kind: PropertyName, Value: "b"},
		{Kind: StringToken, Value: "two"},
		{Kind: EndObject},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerBracelessRootObject(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "a: 1\nb: 2", opts)
	want := []TokenKind{StartObject, PropertyName, NumberToken, PropertyName, NumberToken, EndObject}
	require.Equal(t, want, kindsOf(toks))
	require.Equal(t, "a", toks[1].Value)
	require.Equal(t, "b", toks[3].Value)
}

func TestTokenizerArray(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `[1, 2, 3]`, opts)
	want := []TokenKind{StartArray, NumberToken, NumberToken, NumberToken, EndArray}
	require.Equal(t, want, kindsOf(toks))
}

func TestTokenizerQuotelessString(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "hello world", opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Value)
}

func TestTokenizerNamedLiterals(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "[true, false, null]", opts)
	want := []TokenKind{StartArray, True, False, Null, EndArray}
	require.Equal(t, want, kindsOf(toks))
}

func TestTokenizerLineComment(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "1 # trailing comment", opts)
	require.Len(t, toks, 2)
	require.Equal(t, NumberToken, toks[0].Kind)
	require.Equal(t, CommentToken, toks[1].Kind)
	require.Equal(t, " trailing comment", toks[1].Value)
}

func TestTokenizerSlashSlashComment(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "1 // c++ style\n", opts)
	require.Equal(t, NumberToken, toks[0].Kind)
	require.Equal(t, CommentToken, toks[1].Kind)
}

func TestTokenizerBlockComment(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "/* block */ 1", opts)
	require.Equal(t, []TokenKind{CommentToken, NumberToken}, kindsOf(toks))
	require.Equal(t, " block ", toks[0].Value)
}

func TestTokenizerNestableBlockComment(t *testing.T) {
	opts := NewOptions(WithVersion(V2))
	toks := collectTokens(t, "/=* outer /* inner */ still outer *=/ 1", opts)
	require.Equal(t, []TokenKind{CommentToken, NumberToken}, kindsOf(toks))
}

func TestTokenizerSingleQuotedString(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `'hi\nthere'`, opts)
	require.Len(t, toks, 1)
	require.Equal(t, "hi\nthere", toks[0].Value)
}

func TestTokenizerDoubleEmptyQuote(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `""`, opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "", toks[0].Value)
}

func TestTokenizerMultiQuotedStringStripsIndentation(t *testing.T) {
	opts := NewOptions()
	text := "\"\"\"\n    line one\n    line two\n    \"\"\""
	toks := collectTokens(t, text, opts)
	require.Len(t, toks, 1)
	require.Equal(t, "line one\nline two", toks[0].Value)
}

func TestTokenizerUnicodeEscape(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "'\\u0041'", opts)
	require.Equal(t, "A", toks[0].Value)
}

func TestTokenizerSurrogatePairEscape(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "'\\uD83D\\uDC7D'", opts)
	require.Equal(t, "👽", toks[0].Value)
}

func TestTokenizerLongUnicodeEscape(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `'\U0001F47D'`, opts)
	require.Equal(t, "👽", toks[0].Value)
}

func TestTokenizerNegativeAndFloatNumbers(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "[-1, 3.14, 1e10]", opts)
	require.Equal(t, []TokenKind{StartArray, NumberToken, NumberToken, NumberToken, EndArray}, kindsOf(toks))
	require.Equal(t, "-1", toks[1].Value)
	require.Equal(t, "3.14", toks[2].Value)
	require.Equal(t, "1e10", toks[3].Value)
}

func TestTokenizerHexNumber(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "0xFF", opts)
	require.Equal(t, NumberToken, toks[0].Kind)
	require.Equal(t, "0xFF", toks[0].Value)
}

func TestTokenizerNumberLikeQuotelessString(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "123abc", opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "123abc", toks[0].Value)
}

func TestTokenizerHexExponent(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "0x5e+3", opts)
	require.Len(t, toks, 1)
	require.Equal(t, NumberToken, toks[0].Kind)
	require.Equal(t, "0x5e+3", toks[0].Value)
}

func TestTokenizerHexBareEIsNotExponent(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "0xe+2", opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "0xe+2", toks[0].Value)
}

func TestTokenizerBinaryLeadingUnderscore(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "0b_100", opts)
	require.Len(t, toks, 1)
	require.Equal(t, NumberToken, toks[0].Kind)
	require.Equal(t, "0b_100", toks[0].Value)
}

func TestTokenizerLeadingUnderscoreWithoutPrefixDemotes(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, "_100", opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "_100", toks[0].Value)
}

func TestTokenizerTrailingSpaceBeforeCloserIsNotQuoteless(t *testing.T) {
	opts := NewOptions()
	toks := collectTokens(t, `[1 ]`, opts)
	require.Equal(t, []TokenKind{StartArray, NumberToken, EndArray}, kindsOf(toks))

	toks = collectTokens(t, `{a: 1 }`, opts)
	require.Equal(t, []TokenKind{StartObject, PropertyName, NumberToken, EndObject}, kindsOf(toks))

	toks = collectTokens(t, `[1, 2 ]`, opts)
	require.Equal(t, []TokenKind{StartArray, NumberToken, NumberToken, EndArray}, kindsOf(toks))
}

func TestTokenizerEscapedLetterSuppressesNamedLiteralUpgrade(t *testing.T) {
	opts := NewOptions()
	input := "\\u0074rue"
	toks := collectTokens(t, input, opts)
	require.Len(t, toks, 1)
	require.Equal(t, StringToken, toks[0].Kind)
	require.Equal(t, "true", toks[0].Value)
}

func TestTokenizerV2AtQuotedVerbatimString(t *testing.T) {
	opts := NewOptions(WithVersion(V2))
	toks := collectTokens(t, `@'no \n escapes'`, opts)
	require.Equal(t, `no \n escapes`, toks[0].Value)
}

func TestTokenizerDepthExceeded(t *testing.T) {
	opts := NewOptions(WithMaxDepth(2))
	cur := NewCursor(runeSeq([]rune("[[[1]]]")))
	tok := NewTokenizer(cur, opts)
	var gotErr error
	for _, err := range tok.ReadElement() {
		if err != nil {
			gotErr = err
			break
		}
	}
	require.Error(t, gotErr)
	require.ErrorIs(t, gotErr, ErrDepthExceeded)
}

func TestTokenizerIncompleteInputsTolerated(t *testing.T) {
	opts := NewOptions(WithIncompleteInputs(true))
	toks := collectTokens(t, `{a: 1`, opts)
	require.Equal(t, []TokenKind{StartObject, PropertyName, NumberToken, EndObject}, kindsOf(toks))
}

func TestTokenizerUnterminatedObjectIsError(t *testing.T) {
	opts := NewOptions()
	cur := NewCursor(runeSeq([]rune(`{a: 1`)))
	tok := NewTokenizer(cur, opts)
	var gotErr error
	for _, err := range tok.ReadElement() {
		if err != nil {
			gotErr = err
		}
	}
	require.ErrorIs(t, gotErr, ErrUnexpectedEOF)
}

func TestTokenizerHasToken(t *testing.T) {
	cur := NewCursor(runeSeq([]rune("   \n\t")))
	tok := NewTokenizer(cur, NewOptions())
	require.False(t, tok.HasToken())

	cur2 := NewCursor(runeSeq([]rune("  1")))
	tok2 := NewTokenizer(cur2, NewOptions())
	require.True(t, tok2.HasToken())
}
