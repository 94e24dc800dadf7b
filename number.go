package jsonh

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ParseNumber is the Number Parser of spec.md §4.3: a pure function that
// turns a normalized JSONH number literal (as produced in a NumberToken's
// Value) into an exact base-10 real. decimals bounds the precision used
// to expand a fractional exponent; zero or negative selects
// DefaultDecimals.
//
// The base-radix arithmetic (arbitrary integer/fractional literals in
// base 2, 8, 10, or 16) is done exactly with math/big.Rat, which
// represents any finite-radix fraction exactly; the result is only
// handed to cockroachdb/apd/v3 — the arbitrary-precision decimal library
// cue-lang/cue wires in for the same purpose (see DESIGN.md) — at the
// final step, via its decimal-string constructor, so the value callers
// receive is an apd.Decimal throughout the rest of this module.
func ParseNumber(text string, decimals int) (*apd.Decimal, error) {
	if decimals <= 0 {
		decimals = DefaultDecimals
	}

	text = strings.ReplaceAll(text, "_", "")
	if text == "" {
		return nil, fmt.Errorf("%w: empty number", ErrNumberConversion)
	}

	negative := false
	switch text[0] {
	case '-':
		negative = true
		text = text[1:]
	case '+':
		text = text[1:]
	}

	base := 10
	switch {
	case len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X'):
		base = 16
		text = text[2:]
	case len(text) >= 2 && text[0] == '0' && (text[1] == 'b' || text[1] == 'B'):
		base = 2
		text = text[2:]
	case len(text) >= 2 && text[0] == '0' && (text[1] == 'o' || text[1] == 'O'):
		base = 8
		text = text[2:]
	}

	mantissaText, exponentText, hasExponent := splitExponent(text, base)

	mantissa, err := parseFractionalRat(mantissaText, base)
	if err != nil {
		return nil, err
	}

	result := mantissa
	approximated := false
	if hasExponent {
		expNeg := false
		et := exponentText
		if et == "" {
			return nil, fmt.Errorf("%w: empty exponent", ErrNumberConversion)
		}
		switch et[0] {
		case '-':
			expNeg = true
			et = et[1:]
		case '+':
			et = et[1:]
		}
		exponent, exact, err := parseExponentRat(et)
		if err != nil {
			return nil, err
		}
		if expNeg {
			exponent.Neg(exponent)
		}
		var pow *big.Rat
		if exact {
			pow, err = exactPowerOfTen(exponent)
		}
		if !exact || err != nil {
			// Fractional exponent: 10^exponent is generally irrational,
			// so fall back to a float64 approximation bounded by decimals.
			expFloat, _ := exponent.Float64()
			pow = new(big.Rat).SetFloat64(math.Pow(10, expFloat))
			if pow == nil {
				return nil, fmt.Errorf("%w: exponent out of range", ErrNumberConversion)
			}
			approximated = true
		}
		result = new(big.Rat).Mul(mantissa, pow)
	}

	if negative {
		result.Neg(result)
	}

	places := decimals
	if !approximated {
		// An exact result has a terminating decimal expansion (its
		// denominator divides a power of ten); render all of it.
		places = 0
		for p := big.NewInt(1); new(big.Int).Rem(p, result.Denom()).Sign() != 0; places++ {
			p.Mul(p, big.NewInt(10))
		}
	}
	d, _, err := apd.NewFromString(result.FloatString(places))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumberConversion, err)
	}
	return d, nil
}

// splitExponent locates the exponent marker in a number body already
// stripped of sign and base prefix. For base 16, the marker is only
// recognized when 'e'/'E' is immediately followed by a literal '+' or
// '-' (spec.md §4.2.4); for every other base, the decimal exponent
// marker is always recognized.
func splitExponent(text string, base int) (mantissa, exponent string, has bool) {
	if base == 16 {
		for i := 0; i+1 < len(text); i++ {
			if (text[i] == 'e' || text[i] == 'E') && (text[i+1] == '+' || text[i+1] == '-') {
				return text[:i], text[i+1:], true
			}
		}
		return text, "", false
	}
	for i, r := range text {
		if r == 'e' || r == 'E' {
			return text[:i], text[i+1:], true
		}
	}
	return text, "", false
}

// parseFractionalRat parses a "whole[.frac]" literal in base, returning
// the exact rational whole + frac/base^len(frac).
func parseFractionalRat(s string, base int) (*big.Rat, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	combined := whole + frac
	if combined == "" {
		return nil, fmt.Errorf("%w: number has no digits", ErrNumberConversion)
	}

	intVal := new(big.Int)
	if _, ok := intVal.SetString(combined, base); !ok {
		return nil, fmt.Errorf("%w: invalid digits %q in base %d", ErrNumberConversion, combined, base)
	}

	if !hasFrac || len(frac) == 0 {
		return new(big.Rat).SetInt(intVal), nil
	}

	denom := new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(len(frac))), nil)
	return new(big.Rat).SetFrac(intVal, denom), nil
}

// parseExponentRat parses a decimal (always base 10) exponent body,
// which may itself be fractional (e.g. the "3.4" of "1.2e3.4"). exact is
// false when the exponent has a fractional part, since 10^(a/b) is
// generally irrational and must be approximated.
func parseExponentRat(s string) (value *big.Rat, exact bool, err error) {
	_, frac, hasFrac := strings.Cut(s, ".")
	rat, err := parseFractionalRat(s, 10)
	if err != nil {
		return nil, false, err
	}
	return rat, !hasFrac || len(frac) == 0, nil
}

// exactPowerOfTen returns 10^n exactly as a big.Rat for an integral n.
func exactPowerOfTen(n *big.Rat) (*big.Rat, error) {
	if !n.IsInt() {
		return nil, fmt.Errorf("%w: exponent is not an integer", ErrNumberConversion)
	}
	exp := n.Num()
	if !exp.IsInt64() {
		return nil, fmt.Errorf("%w: exponent too large", ErrNumberConversion)
	}
	e := exp.Int64()
	neg := e < 0
	if neg {
		e = -e
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(e), nil)
	result := new(big.Rat).SetInt(pow)
	if neg {
		result.Inv(result)
	}
	return result, nil
}

// isHexDigit reports whether r is a hex digit (case-insensitive).
func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isDigitInBase reports whether r is a valid digit in base (2, 8, 10, or
// 16), case-insensitively for hex.
func isDigitInBase(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 16:
		return isHexDigit(r)
	default:
		return r >= '0' && r <= '9'
	}
}
