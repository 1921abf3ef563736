package syntax

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/tree"
)

type Styles struct {
	Operator   lipgloss.Style
	Literal    lipgloss.Style
	Enumerator lipgloss.Style
}

func PlainStyles() Styles {
	return Styles{
		Operator:   lipgloss.NewStyle(),
		Literal:    lipgloss.NewStyle(),
		Enumerator: lipgloss.NewStyle(),
	}
}

func DefaultStyles() Styles {
	return Styles{
		Operator:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Literal:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Enumerator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1),
	}
}

// Render draws node as a tree, one operand per branch.
func Render(node Node, styles Styles) string {
	var root *tree.Tree
	switch n := renderNode(node, styles).(type) {
	case *tree.Tree:
		root = n
	default:
		root = tree.Root(n)
	}
	return root.
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styles.Enumerator).
		String()
}

func renderNode(node Node, styles Styles) any {
	op := func(label string, children ...Node) *tree.Tree {
		t := tree.Root(styles.Operator.Render(label))
		for _, c := range children {
			if c == nil {
				continue
			}
			t.Child(renderNode(c, styles))
		}
		return t
	}
	switch v := node.(type) {
	case Atom:
		return styles.Literal.Render(v.Literal)
	case Block:
		return op(v.Op+v.Close, v.Item)
	case Prefix:
		return op(v.Op+" (prefix)", v.Right)
	case Infix:
		return op(v.Op, v.Left, v.Right)
	case Postfix:
		return op(v.Op+" (postfix)", v.Left)
	case PostfixBlock:
		return op(v.Op+v.Close+" (postfix)", v.Left, v.Right)
	default:
		return styles.Literal.Render("<empty>")
	}
}
