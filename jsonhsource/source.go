// Package jsonhsource adapts strings, io.Readers, and encoded byte slices
// into the iter.Seq[rune] streams the jsonh package's Cursor consumes.
// Keeping these adapters in their own package lets the core tokenizer
// stay free of io and encoding dependencies (spec.md §4.7).
package jsonhsource

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a byte-level text encoding a []byte source may be in.
type Encoding int

const (
	// AutoDetect sniffs a leading byte-order mark, defaulting to UTF-8
	// when none is present.
	AutoDetect Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

// FromString adapts a string into a rune sequence.
func FromString(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// FromReader adapts an io.Reader of UTF-8 text into a rune sequence,
// substituting utf8.RuneError for any malformed byte sequence it
// encounters rather than stopping.
func FromReader(r io.Reader) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		br := bufio.NewReader(r)
		for {
			ru, _, err := br.ReadRune()
			if err != nil {
				return
			}
			if !yield(ru) {
				return
			}
		}
	}
}

// FromBytes decodes b according to enc (sniffing a BOM when enc is
// AutoDetect) into a rune sequence. UTF-16 variants are decoded via
// golang.org/x/text/encoding/unicode; UTF-32 is decoded directly since
// x/text does not provide a UTF-32 transformer.
func FromBytes(b []byte, enc Encoding) (iter.Seq[rune], error) {
	if enc == AutoDetect {
		enc, b = sniffBOM(b)
	}

	switch enc {
	case UTF8:
		return FromString(string(b)), nil
	case UTF16LE:
		return decodeViaTextEncoding(b, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
	case UTF16BE:
		return decodeViaTextEncoding(b, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
	case UTF32LE:
		return decodeUTF32(b, false)
	case UTF32BE:
		return decodeUTF32(b, true)
	default:
		return nil, fmt.Errorf("jsonhsource: unknown encoding %d", enc)
	}
}

func sniffBOM(b []byte) (Encoding, []byte) {
	switch {
	case len(b) >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return UTF32LE, b[4:]
	case len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return UTF32BE, b[4:]
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, b[2:]
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, b[2:]
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, b[3:]
	default:
		return UTF8, b
	}
}

func decodeViaTextEncoding(b []byte, enc encoding.Encoding) (iter.Seq[rune], error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("jsonhsource: decode: %w", err)
	}
	return FromString(string(out)), nil
}

func decodeUTF32(b []byte, bigEndian bool) (iter.Seq[rune], error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("jsonhsource: utf-32 input length %d is not a multiple of 4", len(b))
	}
	runes := make([]rune, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		var v uint32
		if bigEndian {
			v = uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		} else {
			v = uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		runes = append(runes, r)
	}
	return func(yield func(rune) bool) {
		for _, r := range runes {
			if !yield(r) {
				return
			}
		}
	}, nil
}
