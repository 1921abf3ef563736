package lex

import "fmt"

type Kind int

const (
	Invalid Kind = iota
	EOF
	Operator
	Terminator
	Whitespace
	Number
	Ident
	Keyword
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Operator:
		return "operator"
	case Terminator:
		return "terminator"
	case Whitespace:
		return "whitespace"
	case Number:
		return "number"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// IsLiteral reports whether tokens of kind k become leaves of the tree
// when no explicit rule is registered for their text.
func (k Kind) IsLiteral() bool {
	return k == Number || k == Ident || k == Keyword
}

// ParseKind maps the name of a literal class to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "number":
		return Number, nil
	case "identifier", "ident", "name":
		return Ident, nil
	case "keyword":
		return Keyword, nil
	default:
		return Invalid, fmt.Errorf("%s: not a literal kind", name)
	}
}

// UnknownText is the text carried by invalid tokens.
const UnknownText = "unknown"

type Token struct {
	Kind    Kind
	Literal string
	Position
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case Invalid:
		return "<invalid>"
	case Whitespace:
		return "<blank>"
	case Terminator:
		return fmt.Sprintf("terminator(%q)", t.Literal)
	case Operator:
		return fmt.Sprintf("operator(%s)", t.Literal)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Literal)
	}
}
