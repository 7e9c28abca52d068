package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// symbols maps decorative calculator symbols to their canonical forms.
var symbols = strings.NewReplacer(
	"π", "pi",
	"×", "*",
	"÷", "/",
	"−", "-",
)

var (
	percentRE  = regexp.MustCompile(`(\d+(?:\.\d+)?|\.\d+)%`)
	rootOpenRE = regexp.MustCompile(`√\s*\(`)
	rootNumRE  = regexp.MustCompile(`√\s*([0-9.]+)`)
	// A digit before a name, constant, or bracket.
	implicitLeftRE = regexp.MustCompile(`(\d)(pi|e|[a-zA-Z(])`)
	// A close bracket or constant before a digit, bracket, or constant.
	implicitRightRE = regexp.MustCompile(`(pi|e|\))(\d|\(|pi|e)`)
	answerRE        = regexp.MustCompile(`(?i)\bans\b`)
)

// Normalize rewrites calculator input into the canonical form accepted by
// Tokenize. It does not substitute a previous answer; see Context.Normalize.
func Normalize(raw string) (string, error) {
	return normalize(raw, nil)
}

// Normalize rewrites calculator input into canonical form, replacing the
// name Ans with the context's previous answer if it is finite.
func (ctx *Context) Normalize(raw string) (string, error) {
	if !ctx.hasAns || math.IsInf(ctx.ans, 0) || math.IsNaN(ctx.ans) {
		return normalize(raw, nil)
	}
	return normalize(raw, &ctx.ans)
}

func normalize(s string, ans *float64) (string, error) {
	s = symbols.Replace(s)
	s = percentRE.ReplaceAllString(s, "($1/100)")
	// Products must be explicit before expanding factorials so that pi(3)!
	// applies to (3) alone.
	s = implicitMul(s)
	s = expandFactorial(s)
	s = rootOpenRE.ReplaceAllString(s, "sqrt(")
	s = rootNumRE.ReplaceAllString(s, "sqrt($1)")
	s = implicitMul(s)
	s = strings.ReplaceAll(s, "^", PowerOp)
	if ans != nil {
		v := "(" + strconv.FormatFloat(*ans, 'f', -1, 64) + ")"
		s = answerRE.ReplaceAllLiteralString(s, v)
	}
	if err := validate(s); err != nil {
		return "", err
	}
	return s, nil
}

// implicitMul inserts * between adjacent operands.
func implicitMul(s string) string {
	s = fixpoint(s, implicitLeftRE, "$1*$2")
	return fixpoint(s, implicitRightRE, "$1*$2")
}

// fixpoint applies a replacement until it no longer changes s. Matches of
// implicit multiplication can overlap, e.g. in "pipipi".
func fixpoint(s string, re *regexp.Regexp, repl string) string {
	for {
		t := re.ReplaceAllString(s, repl)
		if t == s {
			return s
		}
		s = t
	}
}

// expandFactorial rewrites each postfix ! into a call to fact. The operand is
// the number or bracketed group immediately before the !, including the name
// of a function called with that group. Any other name before the group is
// not part of the operand. A ! with no such operand is kept and
// later rejected by validation.
func expandFactorial(s string) string {
	if !strings.Contains(s, "!") {
		return s
	}
	out := make([]byte, 0, len(s)+8)
	for i := 0; i < len(s); i++ {
		if s[i] != '!' {
			out = append(out, s[i])
			continue
		}
		k := operandStart(out)
		if k < 0 {
			out = append(out, '!')
			continue
		}
		x := string(out[k:])
		out = append(out[:k], "fact("...)
		out = append(out, x...)
		out = append(out, ')')
	}
	return string(out)
}

// operandStart finds the start of the operand ending at the end of b, or -1
// if there is none.
func operandStart(b []byte) int {
	k := len(b)
	if k == 0 {
		return -1
	}
	switch c := b[k-1]; {
	case isDigit(c) || c == '.':
		for k > 0 && (isDigit(b[k-1]) || b[k-1] == '.') {
			k--
		}
		return k
	case c == ')':
		depth := 0
	scan:
		for k > 0 {
			k--
			switch b[k] {
			case ')':
				depth++
			case '(':
				depth--
				if depth == 0 {
					break scan
				}
			}
		}
		if depth != 0 {
			return -1
		}
		j := k
		for j > 0 && isLetter(b[j-1]) {
			j--
		}
		if globalfuncs[string(b[j:k])] != nil {
			return j
		}
		return k
	default:
		return -1
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// validate checks that every rune of s is allowed in canonical text.
func validate(s string) error {
	col := 0
	for len(s) > 0 {
		r, sz := utf8.DecodeRuneInString(s)
		s = s[sz:]
		col++
		if r < utf8.RuneSelf && allowed(byte(r)) {
			continue
		}
		return &CharError{Col: col, Char: r}
	}
	return nil
}

func allowed(c byte) bool {
	if isDigit(c) || isLetter(c) {
		return true
	}
	return strings.IndexByte("().+-*/%^, \t\r\n", c) >= 0
}
