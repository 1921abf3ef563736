package syntax

import (
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Tree is the serializable form of a Node.
type Tree struct {
	Type   string `json:"type" cbor:"type"`
	Op     string `json:"op,omitempty" cbor:"op,omitempty"`
	Close  string `json:"close,omitempty" cbor:"close,omitempty"`
	Text   string `json:"text,omitempty" cbor:"text,omitempty"`
	Kind   string `json:"kind,omitempty" cbor:"kind,omitempty"`
	Line   int    `json:"line" cbor:"line"`
	Column int    `json:"column" cbor:"column"`
	Left   *Tree  `json:"left,omitempty" cbor:"left,omitempty"`
	Right  *Tree  `json:"right,omitempty" cbor:"right,omitempty"`
	Item   *Tree  `json:"item,omitempty" cbor:"item,omitempty"`
}

const (
	TypeAtom         = "atom"
	TypeBlock        = "block"
	TypePrefix       = "prefix"
	TypeInfix        = "infix"
	TypePostfix      = "postfix"
	TypePostfixBlock = "postfix-block"
)

func Convert(node Node) *Tree {
	if node == nil {
		return nil
	}
	var t Tree
	switch v := node.(type) {
	case Atom:
		t.Type = TypeAtom
		t.Text = v.Literal
		t.Kind = v.Kind.String()
		t.Line, t.Column = v.Line, v.Column
	case Block:
		t.Type = TypeBlock
		t.Op, t.Close = v.Op, v.Close
		t.Item = Convert(v.Item)
		t.Line, t.Column = v.Line, v.Column
	case Prefix:
		t.Type = TypePrefix
		t.Op = v.Op
		t.Right = Convert(v.Right)
		t.Line, t.Column = v.Line, v.Column
	case Infix:
		t.Type = TypeInfix
		t.Op = v.Op
		t.Left = Convert(v.Left)
		t.Right = Convert(v.Right)
		t.Line, t.Column = v.Line, v.Column
	case Postfix:
		t.Type = TypePostfix
		t.Op = v.Op
		t.Left = Convert(v.Left)
		t.Line, t.Column = v.Line, v.Column
	case PostfixBlock:
		t.Type = TypePostfixBlock
		t.Op, t.Close = v.Op, v.Close
		t.Left = Convert(v.Left)
		t.Right = Convert(v.Right)
		t.Line, t.Column = v.Line, v.Column
	default:
		return nil
	}
	return &t
}

func convertAll(nodes []Node) []*Tree {
	list := make([]*Tree, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, Convert(n))
	}
	return list
}

func EncodeJSON(w io.Writer, nodes []Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(convertAll(nodes))
}

func MarshalCBOR(nodes []Node) ([]byte, error) {
	return cbor.Marshal(convertAll(nodes))
}

func UnmarshalCBOR(data []byte) ([]*Tree, error) {
	var list []*Tree
	if err := cbor.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
