package syntax

import (
	"io"
	"strconv"
	"strings"
)

// Debug writes the tree as a typed s-expression, eg:
//
//	infix(+, number(1), infix(*, number(2), identifier(x)))
func Debug(node Node) string {
	var str strings.Builder
	debugNode(&str, node)
	return str.String()
}

func debugNode(w io.Writer, node Node) {
	switch v := node.(type) {
	case nil:
		io.WriteString(w, "empty")
	case Atom:
		io.WriteString(w, v.Kind.String())
		io.WriteString(w, "(")
		io.WriteString(w, v.Literal)
		io.WriteString(w, ")")
	case Block:
		io.WriteString(w, "block")
		io.WriteString(w, "(")
		io.WriteString(w, strconv.Quote(v.Op+v.Close))
		io.WriteString(w, ", ")
		debugNode(w, v.Item)
		io.WriteString(w, ")")
	case Prefix:
		io.WriteString(w, "prefix")
		io.WriteString(w, "(")
		io.WriteString(w, v.Op)
		io.WriteString(w, ", ")
		debugNode(w, v.Right)
		io.WriteString(w, ")")
	case Infix:
		io.WriteString(w, "infix")
		io.WriteString(w, "(")
		io.WriteString(w, v.Op)
		io.WriteString(w, ", ")
		debugNode(w, v.Left)
		io.WriteString(w, ", ")
		debugNode(w, v.Right)
		io.WriteString(w, ")")
	case Postfix:
		io.WriteString(w, "postfix")
		io.WriteString(w, "(")
		io.WriteString(w, v.Op)
		io.WriteString(w, ", ")
		debugNode(w, v.Left)
		io.WriteString(w, ")")
	case PostfixBlock:
		io.WriteString(w, "postfix-block")
		io.WriteString(w, "(")
		io.WriteString(w, strconv.Quote(v.Op+v.Close))
		io.WriteString(w, ", ")
		debugNode(w, v.Left)
		io.WriteString(w, ", ")
		debugNode(w, v.Right)
		io.WriteString(w, ")")
	default:
		io.WriteString(w, "unknown")
	}
}
