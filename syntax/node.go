// Package syntax defines the expression trees built by the parser.
//
// Trees are immutable once built and every node is owned by its parent.
// Op nodes keep the position of their operator token, Pos returns the
// position where the whole expression starts.
package syntax

import (
	"strings"

	"github.com/midbel/climb/lex"
)

type Node interface {
	String() string
	Pos() lex.Position
	node()
}

// Atom is a literal or identifier leaf.
type Atom struct {
	Literal string
	Kind    lex.Kind
	lex.Position
}

func AtomFrom(tok lex.Token) Atom {
	return Atom{
		Literal:  tok.Literal,
		Kind:     tok.Kind,
		Position: tok.Position,
	}
}

func (a Atom) String() string {
	return a.Literal
}

func (a Atom) Pos() lex.Position {
	return a.Position
}

// Block is a grouping construct such as (...). Item is nil for an empty
// block.
type Block struct {
	Op    string
	Item  Node
	Close string
	lex.Position
}

func (b Block) String() string {
	var str strings.Builder
	str.WriteString(b.Op)
	if b.Item != nil {
		str.WriteString(b.Item.String())
	}
	str.WriteString(b.Close)
	return str.String()
}

func (b Block) Pos() lex.Position {
	return b.Position
}

type Prefix struct {
	Op    string
	Right Node
	lex.Position
}

func (p Prefix) String() string {
	return "(" + p.Op + " " + p.Right.String() + ")"
}

func (p Prefix) Pos() lex.Position {
	return p.Position
}

type Infix struct {
	Op    string
	Left  Node
	Right Node
	lex.Position
}

func (i Infix) String() string {
	return "(" + i.Left.String() + " " + i.Op + " " + i.Right.String() + ")"
}

func (i Infix) Pos() lex.Position {
	return i.Left.Pos()
}

// Postfix never has a right operand.
type Postfix struct {
	Op   string
	Left Node
	lex.Position
}

func (p Postfix) String() string {
	return "(" + p.Left.String() + " " + p.Op + ")"
}

func (p Postfix) Pos() lex.Position {
	return p.Left.Pos()
}

// PostfixBlock is a call or an index: Left Op Right Close. Right is nil
// when nothing is written between the delimiters.
type PostfixBlock struct {
	Op    string
	Left  Node
	Right Node
	Close string
	lex.Position
}

func (p PostfixBlock) String() string {
	var str strings.Builder
	str.WriteString(p.Left.String())
	str.WriteString(p.Op)
	if p.Right != nil {
		str.WriteString(p.Right.String())
	}
	str.WriteString(p.Close)
	return str.String()
}

func (p PostfixBlock) Pos() lex.Position {
	return p.Left.Pos()
}

func (Atom) node()         {}
func (Block) node()        {}
func (Prefix) node()       {}
func (Infix) node()        {}
func (Postfix) node()      {}
func (PostfixBlock) node() {}
