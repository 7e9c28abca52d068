package calc

import (
	"errors"
	"strconv"
)

// Every error resulting from invalid input unwraps to exactly one of these.
var (
	// ErrInvalidCharacter is the kind of error for input containing
	// characters that are never part of an expression.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrSyntax is the kind of error for malformed expressions.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownIdentifier is the kind of error for names that are not
	// functions or constants.
	ErrUnknownIdentifier = errors.New("unknown identifier")
)

// CharError is an error indicating a character that normalization does not
// allow. It implements InputError and unwraps to ErrInvalidCharacter.
type CharError struct {
	// Col is the position of the character in the normalized text.
	Col int
	// Char is the disallowed character.
	Char rune
}

func (err *CharError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

func (err *CharError) Unwrap() error {
	return ErrInvalidCharacter
}

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the bracket or of the end of input.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// SeparatorError is an error indicating an illegal use of a comma. It
// implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrSyntax
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the call's argument list, or of the token
	// following the function name if there is no argument list.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the function call tried to imply. It is
	// -1 if the function name was not followed by an argument list.
	Len int
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return errpos(err.Col, "function "+err.Func+" needs an argument list")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// TokenError is an error indicating a token following a complete operand
// where an operator or the end of the expression belongs.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the unexpected token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after operand")
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrSyntax
}

// NameError is an error for a name that is neither a function nor a constant,
// or for a reference to the previous answer when there is none. It unwraps
// to ErrUnknownIdentifier.
type NameError struct {
	// Col is the position of the name. It is 0 if the error arose during
	// evaluation.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	msg := "unknown identifier " + strconv.Quote(err.Name)
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnknownIdentifier
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of
	// the start of the token that caused the error, in normalized text.
	Pos() int
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*LexError)(nil)
)
