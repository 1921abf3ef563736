package parser

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/midbel/climb/lex"
)

var (
	ErrLex        = errors.New("unknown token")
	ErrUnexpected = errors.New("unexpected token")
	ErrTrailing   = errors.New("trailing input")
	ErrDepth      = errors.New("expression nested too deeply")
)

// SyntaxError reports the first fault of a parse. Err is one of ErrLex,
// ErrUnexpected, ErrTrailing or ErrDepth.
type SyntaxError struct {
	Err      error
	Expected string
	Actual   string
	lex.Position
}

func (e SyntaxError) Error() string {
	switch {
	case e.Expected != "":
		return fmt.Sprintf("%s: %s: expected %s, got %s", e.Position, e.Err, e.Expected, e.Actual)
	case e.Actual != "":
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Err, e.Actual)
	default:
		return fmt.Sprintf("%s: %s", e.Position, e.Err)
	}
}

func (e SyntaxError) Unwrap() error {
	return e.Err
}

const (
	endOfInput = "end of input"
	anyExpr    = "expression"
)

func describe(tok lex.Token) string {
	switch tok.Kind {
	case lex.EOF:
		return endOfInput
	case lex.Terminator:
		return strconv.Quote(tok.Literal)
	default:
		return tok.Literal
	}
}

func lexError(src string, tok lex.Token) error {
	var actual string
	if tok.Offset < len(src) {
		r, _ := utf8.DecodeRuneInString(src[tok.Offset:])
		actual = strconv.QuoteRune(r)
	}
	return SyntaxError{
		Err:      ErrLex,
		Actual:   actual,
		Position: tok.Position,
	}
}

func unexpected(want string, tok lex.Token) error {
	return SyntaxError{
		Err:      ErrUnexpected,
		Expected: want,
		Actual:   describe(tok),
		Position: tok.Position,
	}
}
