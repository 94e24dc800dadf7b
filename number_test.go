package jsonh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumberDecimal(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"123", "123"},
		{"-123", "-123"},
		{"+123", "123"},
		{"1_000_000", "1000000"},
		{"3.14", "3.14"},
		{"1e3", "1000"},
		{"1E+3", "1000"},
		{"1e-2", "0.01"},
		{".5", "0.5"},
		{"-.5", "-0.5"},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			d, err := ParseNumber(c.text, DefaultDecimals)
			require.NoError(t, err)
			f, _ := d.Float64()
			want, _ := ParseNumber(c.want, DefaultDecimals)
			wf, _ := want.Float64()
			require.InDelta(t, wf, f, 1e-9)
		})
	}
}

func TestParseNumberNonDecimalBases(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"0xFF", 255},
		{"0b1010", 10},
		{"0o17", 15},
		{"0x10", 16},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			d, err := ParseNumber(c.text, DefaultDecimals)
			require.NoError(t, err)
			f, _ := d.Float64()
			require.InDelta(t, c.want, f, 1e-9)
		})
	}
}

func TestParseNumberHexExponent(t *testing.T) {
	d, err := ParseNumber("0x10e+2", DefaultDecimals)
	require.NoError(t, err)
	f, _ := d.Float64()
	require.InDelta(t, 1600, f, 1e-9)
}

func TestParseNumberFractionalExponent(t *testing.T) {
	d, err := ParseNumber("1e0.5", 6)
	require.NoError(t, err)
	f, _ := d.Float64()
	require.InDelta(t, 3.1622776, f, 1e-5)
}

func TestParseNumberUnderscoresStripped(t *testing.T) {
	d, err := ParseNumber("1_234.5_6", DefaultDecimals)
	require.NoError(t, err)
	f, _ := d.Float64()
	require.InDelta(t, 1234.56, f, 1e-9)
}

func TestParseNumberEmptyIsError(t *testing.T) {
	_, err := ParseNumber("", DefaultDecimals)
	require.Error(t, err)
}

func TestIsDigitInBase(t *testing.T) {
	require.True(t, isDigitInBase('7', 8))
	require.False(t, isDigitInBase('8', 8))
	require.True(t, isDigitInBase('f', 16))
	require.True(t, isDigitInBase('F', 16))
	require.False(t, isDigitInBase('g', 16))
	require.True(t, isDigitInBase('1', 2))
	require.False(t, isDigitInBase('2', 2))
}
