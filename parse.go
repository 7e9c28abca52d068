package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | const | Ans | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '**' Expr | Expr '^' Expr
//
// Unary operators bind tighter than exponentiation, so -2^2 is (-2)^2.

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// scanner walks a token slice for the parser. Like a lexer, it produces an
// EOF token once the tokens run out, and it can take back one token.
type scanner struct {
	toks []Token
	i    int
	end  int
	p    Token
}

func scan(toks []Token) *scanner {
	end := 1
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		end = last.Pos + utf8.RuneCountInString(last.Text)
	}
	return &scanner{toks: toks, end: end}
}

// next returns the pushed token if there is one, otherwise the next token.
func (s *scanner) next() Token {
	if s.p.Kind != TokenNone {
		tok := s.p
		s.p = Token{}
		return tok
	}
	if s.i >= len(s.toks) {
		return Token{Kind: TokenEOF, Pos: s.end}
	}
	tok := s.toks[s.i]
	s.i++
	return tok
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (s *scanner) push(tok Token) {
	if s.p.Kind != TokenNone {
		panic("calc: double push")
	}
	s.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (s *scanner) must() Token {
	tok := s.p
	if tok.Kind == TokenNone {
		panic("calc: no pushed token")
	}
	s.p = Token{}
	return tok
}

// Parse parses a token sequence into an expression. The entire sequence must
// form a single expression.
func Parse(toks []Token) (*Expr, error) {
	s := scan(toks)
	n, err := parseterm(s, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := s.must(); tok.Kind != TokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// ParseString tokenizes and parses already normalized text.
func ParseString(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parseterm parses a term whose operators all bind more tightly than until.
// If there is no error, then parseterm pushes the last token it scans,
// including EOF.
func parseterm(s *scanner, until operator) (*node, error) {
	n, err := parselhs(s)
	if err != nil {
		return nil, err
	}
	for {
		tok := s.next()
		switch tok.Kind {
		case TokenOp:
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
			}
			if !prec.moreBinding(until) {
				s.push(tok)
				return n, nil
			}
			rhs, err := parseterm(s, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenClose, TokenSep, TokenEOF:
			// End of expression.
			s.push(tok)
			return n, nil
		case TokenNum, TokenIdent, TokenOpen:
			// Implicit multiplication is normalization's job. Here, two
			// adjacent operands are an error.
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of a subexpression.
func parselhs(s *scanner) (*node, error) {
	tok := s.next()
	switch tok.Kind {
	case TokenNum:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !isRange(err) {
			return nil, &LexError{Text: tok.Text, Kind: "number", Col: tok.Pos}
		}
		return &node{kind: nodeNum, name: tok.Text, num: v}, nil
	case TokenIdent:
		if strings.EqualFold(tok.Text, "ans") {
			return &node{kind: nodeAns}, nil
		}
		if v, ok := globalconsts[tok.Text]; ok {
			return &node{kind: nodeConst, name: tok.Text, num: v}, nil
		}
		fn := globalfuncs[tok.Text]
		if fn == nil {
			return nil, &NameError{Col: tok.Pos, Name: tok.Text}
		}
		args, err := parsecall(s, fn, tok.Text)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.Text, fn: fn, args: args}, nil
	case TokenOp:
		prec, ok := unop(tok.Text)
		if !ok {
			return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
		}
		rhs, err := parseterm(s, prec)
		if err != nil {
			return nil, err
		}
		if prec.op == nodeNone {
			// Unary plus.
			return rhs, nil
		}
		return &node{kind: prec.op, left: rhs}, nil
	case TokenOpen:
		rhs, err := parseterm(s, exprprec)
		if err != nil {
			return nil, err
		}
		if end := s.must(); end.Kind != TokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		return rhs, nil
	case TokenClose:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case TokenSep:
		return nil, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	case TokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsecall parses the bracketed argument list of a call of a given Func.
func parsecall(s *scanner, fn Func, name string) ([]*node, error) {
	open := s.next()
	if open.Kind != TokenOpen {
		return nil, &CallError{Col: open.Pos, Func: name, Len: -1}
	}
	tok := s.next()
	if tok.Kind == TokenClose {
		// Every function takes arguments, but report it in terms of arity.
		return nil, &CallError{Col: open.Pos, Func: name, Len: 0}
	}
	s.push(tok)
	var args []*node
	for {
		arg, err := parseterm(s, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more
			// helpful than empty expression at the end of input.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.Text}
			}
			return nil, err
		}
		args = append(args, arg)
		end := s.must()
		switch end.Kind {
		case TokenClose:
			if !fn.CanCall(len(args)) {
				return nil, &CallError{Col: open.Pos, Func: name, Len: len(args)}
			}
			return args, nil
		case TokenSep:
			// Another argument follows.
		case TokenEOF:
			return nil, &BracketError{Col: end.Pos, Left: open.Text, Right: ""}
		default:
			panic("calc: argument ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression began
// with an open bracket.
func itShouldNotHaveEndedThisWay(tok Token, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.Kind {
	case TokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.Pos, Left: left, Right: ""}
	case TokenClose:
		// A close bracket at the end of input has nothing to close.
		return &BracketError{Col: tok.Pos, Left: left, Right: tok.Text}
	case TokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// isRange reports whether err is a strconv range error. Such numbers parse to
// an infinity or zero, which are legitimate values.
func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false, true)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case PowerOp, "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. Unary plus has an op of
// nodeNone.
func unop(text string) (operator, bool) {
	switch text {
	case "+":
		return operator{20, true, nodeNone}, true
	case "-":
		return operator{20, true, nodeNeg}, true
	default:
		return operator{}, false
	}
}

var (
	// powprec is the precedence of exponentiation.
	powprec = binop(PowerOp)
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
