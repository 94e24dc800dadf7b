package jsonh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindPropertyValueFound(t *testing.T) {
	cur := NewCursor(runeSeq([]rune(`{a: 1, b: 2, c: 3}`)))
	tok := NewTokenizer(cur, NewOptions())
	found, err := FindPropertyValue(tok, "b")
	require.NoError(t, err)
	require.True(t, found)
}

func TestFindPropertyValueNotFound(t *testing.T) {
	cur := NewCursor(runeSeq([]rune(`{a: 1, b: 2}`)))
	tok := NewTokenizer(cur, NewOptions())
	found, err := FindPropertyValue(tok, "z")
	require.NoError(t, err)
	require.False(t, found)
}

func TestFindPropertyValueIgnoresNestedNames(t *testing.T) {
	cur := NewCursor(runeSeq([]rune(`{a: {z: 1}, b: 2}`)))
	tok := NewTokenizer(cur, NewOptions())
	found, err := FindPropertyValue(tok, "z")
	require.NoError(t, err)
	require.False(t, found)
}

func TestHasPropertyTopLevel(t *testing.T) {
	found, err := HasProperty(runeSeq([]rune(`{a: 1}`)), "a", NewOptions())
	require.NoError(t, err)
	require.True(t, found)
}
