package parser

import (
	"fmt"
	"math"
)

// Context is the binding context in force while an operand is parsed. Every
// rule is a Context: a rule passes itself as the outer context of the
// operands it parses.
type Context interface {
	Precedence() int
	// CapturedBy reports whether the rule can bind while outer is the
	// enclosing context.
	CapturedBy(outer Context) bool
	String() string
}

type everything struct{}

// Everything is the weakest context. Top level expressions and the content
// of blocks are parsed under it so no enclosing operator reaches across.
var Everything Context = everything{}

func (everything) Precedence() int           { return 0 }
func (everything) CapturedBy(_ Context) bool { return false }
func (everything) String() string            { return "everything" }

const PrecHighest = math.MaxInt32

type Assoc int

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

func ParseAssoc(str string) (Assoc, error) {
	switch str {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("%s: unknown associativity", str)
	}
}

// PrefixRule is implemented by the rules applying to a token starting an
// expression: BlockRule, UnaryRule, TerminatorRule and LiteralRule.
type PrefixRule interface {
	Context
	prefix()
}

// SuffixRule is implemented by the rules applying to a token following an
// expression: InfixRule, PostfixRule and PostfixBlockRule.
type SuffixRule interface {
	Context
	suffix()
}

type BlockRule struct {
	Prec  int
	Open  string
	Close string
}

func (r BlockRule) Precedence() int           { return r.Prec }
func (r BlockRule) CapturedBy(_ Context) bool { return true }

func (r BlockRule) String() string {
	return fmt.Sprintf("block(%d, %s, %s)", r.Prec, r.Open, r.Close)
}

type UnaryRule struct {
	Prec int
	Op   string
}

func (r UnaryRule) Precedence() int           { return r.Prec }
func (r UnaryRule) CapturedBy(_ Context) bool { return true }

func (r UnaryRule) String() string {
	return fmt.Sprintf("prefix(%d, %s)", r.Prec, r.Op)
}

// TerminatorRule ends an expression without consuming anything.
type TerminatorRule struct {
	Prec int
}

func (r TerminatorRule) Precedence() int { return r.Prec }

func (r TerminatorRule) CapturedBy(outer Context) bool {
	return outer.Precedence() < r.Prec
}

func (r TerminatorRule) String() string {
	return fmt.Sprintf("terminator(%d)", r.Prec)
}

// LiteralRule turns a literal token into a leaf.
type LiteralRule struct{}

func (LiteralRule) Precedence() int           { return PrecHighest }
func (LiteralRule) CapturedBy(_ Context) bool { return true }
func (LiteralRule) String() string            { return "literal" }

type InfixRule struct {
	Prec  int
	Op    string
	Assoc Assoc
}

func (r InfixRule) Precedence() int { return r.Prec }

// CapturedBy is strict for left associative operators so that 1+2+3
// leaves the second "+" to the enclosing loop. A right associative
// operator binds under another application of itself.
func (r InfixRule) CapturedBy(outer Context) bool {
	if r.Assoc == Right {
		return outer.Precedence() <= r.Prec
	}
	return outer.Precedence() < r.Prec
}

func (r InfixRule) String() string {
	return fmt.Sprintf("infix(%d, %s, %s)", r.Prec, r.Op, r.Assoc)
}

type PostfixRule struct {
	Prec int
	Op   string
}

func (r PostfixRule) Precedence() int { return r.Prec }

func (r PostfixRule) CapturedBy(outer Context) bool {
	return outer.Precedence() < r.Prec
}

func (r PostfixRule) String() string {
	return fmt.Sprintf("postfix(%d, %s)", r.Prec, r.Op)
}

type PostfixBlockRule struct {
	Prec  int
	Open  string
	Close string
}

func (r PostfixBlockRule) Precedence() int { return r.Prec }

func (r PostfixBlockRule) CapturedBy(outer Context) bool {
	return outer.Precedence() < r.Prec
}

func (r PostfixBlockRule) String() string {
	return fmt.Sprintf("postfix-block(%d, %s, %s)", r.Prec, r.Open, r.Close)
}

func (BlockRule) prefix()      {}
func (UnaryRule) prefix()      {}
func (TerminatorRule) prefix() {}
func (LiteralRule) prefix()    {}

func (InfixRule) suffix()        {}
func (PostfixRule) suffix()      {}
func (PostfixBlockRule) suffix() {}
