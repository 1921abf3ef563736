package lex

import "fmt"

// Position locates a byte offset in a source text. Line and Column are
// 1-based, Column counts bytes from the start of the current line.
type Position struct {
	Offset    int
	LineStart int
	Line      int
	Column    int
}

func Start() Position {
	return Position{
		Line:   1,
		Column: 1,
	}
}

// Advance computes the position of offset by scanning the newlines found in
// src[p.Offset:offset]. A "\r\n" pair is counted once even when the range
// starts between the two characters.
func (p Position) Advance(src string, offset int) Position {
	if offset <= p.Offset {
		return p
	}
	offset = min(offset, len(src))
	next := p
	for i := p.Offset; i < offset; i++ {
		switch src[i] {
		case cr:
			next.Line++
			next.LineStart = i + 1
		case nl:
			if i == 0 || src[i-1] != cr {
				next.Line++
			}
			next.LineStart = i + 1
		default:
		}
	}
	next.Offset = offset
	next.Column = offset - next.LineStart + 1
	return next
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

const (
	nl = '\n'
	cr = '\r'
)
