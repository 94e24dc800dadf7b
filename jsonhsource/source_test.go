package jsonhsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectRunes(seq func(func(rune) bool)) []rune {
	var out []rune
	seq(func(r rune) bool {
		out = append(out, r)
		return true
	})
	return out
}

func TestFromString(t *testing.T) {
	got := collectRunes(FromString("hé😀"))
	require.Equal(t, []rune("hé😀"), got)
}

func TestFromReader(t *testing.T) {
	got := collectRunes(FromReader(strings.NewReader("hello")))
	require.Equal(t, []rune("hello"), got)
}

func TestFromBytesUTF8BOM(t *testing.T) {
	b := append([]byte{0xEF, 0xBB, 0xBF}, []byte("abc")...)
	seq, err := FromBytes(b, AutoDetect)
	require.NoError(t, err)
	require.Equal(t, []rune("abc"), collectRunes(seq))
}

func TestFromBytesUTF32LE(t *testing.T) {
	// "AB" in UTF-32LE with BOM.
	b := []byte{0xFF, 0xFE, 0x00, 0x00, 'A', 0, 0, 0, 'B', 0, 0, 0}
	seq, err := FromBytes(b, AutoDetect)
	require.NoError(t, err)
	require.Equal(t, []rune("AB"), collectRunes(seq))
}

func TestFromBytesUTF16LE(t *testing.T) {
	b := []byte{0xFF, 0xFE, 'A', 0x00, 'B', 0x00}
	seq, err := FromBytes(b, AutoDetect)
	require.NoError(t, err)
	require.Equal(t, []rune("AB"), collectRunes(seq))
}

func TestFromBytesExplicitUTF8NoBOM(t *testing.T) {
	seq, err := FromBytes([]byte("plain"), UTF8)
	require.NoError(t, err)
	require.Equal(t, []rune("plain"), collectRunes(seq))
}

func TestFromBytesUTF32InvalidLength(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3}, UTF32LE)
	require.Error(t, err)
}
