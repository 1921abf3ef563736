package lex

import "sync"

// Lexer is an immutable view of the source at a given position. The token
// found at that position and the Lexer positioned after it are computed on
// first use and cached, so a Lexer can be shared and queried concurrently.
type Lexer struct {
	scheme *Scheme
	src    string
	pos    Position

	once sync.Once
	tok  Token
	end  Position

	nextOnce sync.Once
	next     *Lexer
}

func New(scheme *Scheme, src string) *Lexer {
	return at(scheme, src, Start())
}

func at(scheme *Scheme, src string, pos Position) *Lexer {
	return &Lexer{
		scheme: scheme,
		src:    src,
		pos:    pos,
	}
}

func (x *Lexer) Current() Token {
	x.match()
	return x.tok
}

// Next returns the Lexer positioned after the current token. At the end of
// the input, or on an invalid token, Next returns x itself.
func (x *Lexer) Next() *Lexer {
	x.nextOnce.Do(func() {
		x.match()
		if x.tok.Kind == EOF || x.tok.Kind == Invalid {
			x.next = x
			return
		}
		x.next = at(x.scheme, x.src, x.end)
	})
	return x.next
}

func (x *Lexer) Position() Position {
	return x.pos
}

func (x *Lexer) Done() bool {
	return x.Current().Kind == EOF
}

func (x *Lexer) match() {
	x.once.Do(func() {
		x.tok, x.end = x.scheme.Match(x.src, x.pos)
	})
}

// All returns every token up to the end of the input or the first invalid
// token, which is included.
func (x *Lexer) All() []Token {
	var list []Token
	for {
		tok := x.Current()
		list = append(list, tok)
		if tok.Kind == EOF || tok.Kind == Invalid {
			break
		}
		x = x.Next()
	}
	return list
}
