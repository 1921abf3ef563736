package lex

// Filter hides the tokens whose kind is in its ignore set.
type Filter struct {
	lexer  *Lexer
	ignore uint
}

func NewFilter(x *Lexer, ignore ...Kind) Filter {
	f := Filter{
		lexer: x,
	}
	for _, k := range ignore {
		f.ignore |= 1 << uint(k)
	}
	return f
}

func (f Filter) Current() Token {
	return f.settle().Current()
}

func (f Filter) Next() Filter {
	return Filter{
		lexer:  f.settle().Next(),
		ignore: f.ignore,
	}
}

// Position is the position of the first token that is not ignored.
func (f Filter) Position() Position {
	return f.settle().Position()
}

func (f Filter) Done() bool {
	return f.Current().Kind == EOF
}

func (f Filter) All() []Token {
	var list []Token
	for {
		tok := f.Current()
		list = append(list, tok)
		if tok.Kind == EOF || tok.Kind == Invalid {
			break
		}
		f = f.Next()
	}
	return list
}

func (f Filter) settle() *Lexer {
	x := f.lexer
	for f.ignored(x.Current().Kind) {
		next := x.Next()
		if next == x {
			break
		}
		x = next
	}
	return x
}

func (f Filter) ignored(k Kind) bool {
	return f.ignore&(1<<uint(k)) != 0
}
