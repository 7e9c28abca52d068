package calc

import (
	"math"
	"strconv"
	"strings"
)

// Bounds outside which Format switches to exponential notation.
const (
	SmallLimit = 1e-6
	LargeLimit = 1e12
)

// Format renders a result for display. Infinities and NaN render as
// "Infinity", "-Infinity", and "NaN". Nonzero magnitudes below SmallLimit or
// above LargeLimit use exponential notation with nine fraction digits, like
// "1.000000000e-7". Everything else is rounded to twelve decimal places with
// trailing zeros removed.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if a := math.Abs(v); v != 0 && (a < SmallLimit || a > LargeLimit) {
		return exponential(v)
	}
	s := strconv.FormatFloat(v, 'f', 12, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// exponential formats v with nine fraction digits and an exponent without
// leading zeros.
func exponential(v float64) string {
	s := strconv.FormatFloat(v, 'e', 9, 64)
	k := strings.IndexByte(s, 'e')
	mant, sign, exp := s[:k], s[k+1], strings.TrimLeft(s[k+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + string(sign) + exp
}
