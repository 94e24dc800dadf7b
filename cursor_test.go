package jsonh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorPeekAndRead(t *testing.T) {
	c := NewCursor(runeSeq([]rune("ab\ncd")))
	defer c.Close()

	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'a', r)

	r, ok = c.PeekN(1)
	require.True(t, ok)
	require.Equal(t, 'b', r)

	r, ok = c.Read()
	require.True(t, ok)
	require.Equal(t, 'a', r)
	require.Equal(t, 1, c.Pos())

	line, col := c.LineCol()
	require.Equal(t, 1, line)
	require.Equal(t, 2, col)

	c.Read() // 'b'
	c.Read() // '\n'
	line, col = c.LineCol()
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}

func TestCursorReadIfAndReadAny(t *testing.T) {
	c := NewCursor(runeSeq([]rune("+-3")))
	defer c.Close()

	require.False(t, c.ReadIf('-'))
	r, ok := c.ReadAny('-', '+')
	require.True(t, ok)
	require.Equal(t, '+', r)
	require.True(t, c.ReadIf('-'))

	r, ok = c.Peek()
	require.True(t, ok)
	require.Equal(t, '3', r)
}

func TestCursorEOF(t *testing.T) {
	c := NewCursor(runeSeq(nil))
	defer c.Close()

	_, ok := c.Peek()
	require.False(t, ok)
	_, ok = c.Read()
	require.False(t, ok)
}

func TestIsNewlineAndWhitespace(t *testing.T) {
	for _, r := range []rune{'\n', '\r', ' ', ' '} {
		require.True(t, IsNewline(r))
	}
	require.False(t, IsNewline('a'))

	require.True(t, IsWhitespace(' '))
	require.True(t, IsWhitespace('\uFEFF'))
	require.False(t, IsWhitespace('a'))
}
