package parser

import (
	"github.com/midbel/climb/lex"
	"github.com/midbel/climb/syntax"
)

// Cursor is a parse checkpoint. Its methods never modify it, they return
// the cursor positioned after what they consumed, so a Cursor can be kept
// and replayed freely.
type Cursor struct {
	lang   *Language
	src    string
	tokens lex.Filter

	Tracer
	depth int
	limit int
}

type Option func(*Cursor)

func WithTracer(t Tracer) Option {
	return func(c *Cursor) {
		if t != nil {
			c.Tracer = t
		}
	}
}

// WithMaxDepth bounds the nesting of expressions. Zero means no bound.
func WithMaxDepth(n int) Option {
	return func(c *Cursor) {
		c.limit = max(n, 0)
	}
}

func (l *Language) Cursor(src string, options ...Option) (Cursor, error) {
	scheme, err := l.Scheme()
	if err != nil {
		return Cursor{}, err
	}
	c := Cursor{
		lang:   l,
		src:    src,
		tokens: lex.NewFilter(lex.New(scheme, src), lex.Whitespace),
		Tracer: discardTracer{},
	}
	for _, o := range options {
		o(&c)
	}
	return c, nil
}

// Parse parses the statements of src. On error, the statements completed
// before the fault are returned with it.
func (l *Language) Parse(src string, options ...Option) ([]syntax.Node, error) {
	c, err := l.Cursor(src, options...)
	if err != nil {
		return nil, err
	}
	list, c, err := c.ParseStatements()
	if err != nil {
		return list, err
	}
	if !c.Done() {
		return list, c.trailing()
	}
	return list, nil
}

// ParseExpr parses src as a single expression, optionally surrounded by
// terminators.
func (l *Language) ParseExpr(src string, options ...Option) (syntax.Node, error) {
	c, err := l.Cursor(src, options...)
	if err != nil {
		return nil, err
	}
	item, c, err := c.skipTerminators().ParseExpr(Everything)
	if err != nil {
		return nil, err
	}
	if item == nil {
		if tok := c.Peek(); tok.Kind == lex.Invalid {
			return nil, lexError(c.src, tok)
		}
		return nil, unexpected(anyExpr, c.Peek())
	}
	if c = c.skipTerminators(); !c.Done() {
		return item, c.trailing()
	}
	return item, nil
}

func (c Cursor) Peek() lex.Token {
	return c.tokens.Current()
}

func (c Cursor) Pop() (lex.Token, Cursor) {
	tok := c.tokens.Current()
	c.tokens = c.tokens.Next()
	return tok, c
}

// Accept consumes the current token if its text is want.
func (c Cursor) Accept(want string) (Cursor, error) {
	tok := c.Peek()
	switch {
	case tok.Kind == lex.Invalid:
		return c, lexError(c.src, tok)
	case tok.Kind == lex.EOF || tok.Literal != want:
		return c, unexpected(want, tok)
	default:
		_, c = c.Pop()
		return c, nil
	}
}

func (c Cursor) Done() bool {
	return c.tokens.Done()
}

func (c Cursor) Offset() int {
	return c.tokens.Position().Offset
}

// ParseExpr parses one expression under outer. A nil node with a nil error
// means that the current token cannot start an expression under outer.
func (c Cursor) ParseExpr(outer Context) (syntax.Node, Cursor, error) {
	c.Enter("expr", c.Peek())
	defer c.Leave("expr")

	if c.limit > 0 && c.depth >= c.limit {
		err := SyntaxError{
			Err:      ErrDepth,
			Position: c.Peek().Position,
		}
		return nil, c, c.fail("expr", err)
	}
	tok := c.Peek()
	if tok.Kind == lex.Invalid {
		return nil, c, c.fail("expr", lexError(c.src, tok))
	}
	rule, ok := c.lang.PrefixRuleFor(tok)
	if !ok || !rule.CapturedBy(outer) {
		return nil, c, nil
	}
	inner := c
	inner.depth++

	item, next, err := inner.parsePrefix(rule)
	if err != nil {
		return nil, next, c.fail("expr", err)
	}
	// Left recursion without recursion: keep applying suffix rules to the
	// item as long as the cursor moves.
	for last := -1; item != nil && next.Offset() != last; {
		last = next.Offset()
		rule, ok := c.lang.SuffixRuleFor(next.Peek())
		if !ok || !rule.CapturedBy(outer) {
			break
		}
		item, next, err = next.parseSuffix(rule, item)
		if err != nil {
			return nil, next, c.fail("expr", err)
		}
	}
	next.depth = c.depth
	return item, next, nil
}

// ParseStatements parses expressions separated by terminators until the
// input is exhausted or nothing more can be parsed.
func (c Cursor) ParseStatements() ([]syntax.Node, Cursor, error) {
	c.Enter("statements", c.Peek())
	defer c.Leave("statements")

	var list []syntax.Node
	for !c.Done() {
		item, next, err := c.ParseExpr(Everything)
		if err != nil {
			return list, next, err
		}
		if item != nil {
			list = append(list, item)
		}
		next = next.skipTerminators()
		if next.Offset() == c.Offset() {
			break
		}
		c = next
	}
	return list, c, nil
}

func (c Cursor) parsePrefix(rule PrefixRule) (syntax.Node, Cursor, error) {
	switch r := rule.(type) {
	case BlockRule:
		return c.parseBlock(r)
	case UnaryRule:
		return c.parseUnary(r)
	case LiteralRule:
		c.Enter("literal", c.Peek())
		defer c.Leave("literal")
		tok, next := c.Pop()
		return syntax.AtomFrom(tok), next, nil
	case TerminatorRule:
		return nil, c, nil
	default:
		return nil, c, unexpected(anyExpr, c.Peek())
	}
}

func (c Cursor) parseSuffix(rule SuffixRule, left syntax.Node) (syntax.Node, Cursor, error) {
	switch r := rule.(type) {
	case InfixRule:
		return c.parseInfix(r, left)
	case PostfixRule:
		return c.parsePostfix(r, left)
	case PostfixBlockRule:
		return c.parsePostfixBlock(r, left)
	default:
		return nil, c, unexpected(anyExpr, c.Peek())
	}
}

func (c Cursor) parseBlock(rule BlockRule) (syntax.Node, Cursor, error) {
	c.Enter("block", c.Peek())
	defer c.Leave("block")

	pos := c.Peek().Position
	next, err := c.Accept(rule.Open)
	if err != nil {
		return nil, next, err
	}
	item, next, err := next.ParseExpr(Everything)
	if err != nil {
		return nil, next, err
	}
	if next, err = next.Accept(rule.Close); err != nil {
		return nil, next, err
	}
	b := syntax.Block{
		Op:       rule.Open,
		Item:     item,
		Close:    rule.Close,
		Position: pos,
	}
	return b, next, nil
}

func (c Cursor) parseUnary(rule UnaryRule) (syntax.Node, Cursor, error) {
	c.Enter("prefix", c.Peek())
	defer c.Leave("prefix")

	pos := c.Peek().Position
	next, err := c.Accept(rule.Op)
	if err != nil {
		return nil, next, err
	}
	right, next, err := next.operand(rule)
	if err != nil {
		return nil, next, err
	}
	p := syntax.Prefix{
		Op:       rule.Op,
		Right:    right,
		Position: pos,
	}
	return p, next, nil
}

func (c Cursor) parseInfix(rule InfixRule, left syntax.Node) (syntax.Node, Cursor, error) {
	c.Enter("infix", c.Peek())
	defer c.Leave("infix")

	pos := c.Peek().Position
	next, err := c.Accept(rule.Op)
	if err != nil {
		return nil, next, err
	}
	right, next, err := next.operand(rule)
	if err != nil {
		return nil, next, err
	}
	i := syntax.Infix{
		Op:       rule.Op,
		Left:     left,
		Right:    right,
		Position: pos,
	}
	return i, next, nil
}

func (c Cursor) parsePostfix(rule PostfixRule, left syntax.Node) (syntax.Node, Cursor, error) {
	c.Enter("postfix", c.Peek())
	defer c.Leave("postfix")

	pos := c.Peek().Position
	next, err := c.Accept(rule.Op)
	if err != nil {
		return nil, next, err
	}
	p := syntax.Postfix{
		Op:       rule.Op,
		Left:     left,
		Position: pos,
	}
	return p, next, nil
}

func (c Cursor) parsePostfixBlock(rule PostfixBlockRule, left syntax.Node) (syntax.Node, Cursor, error) {
	c.Enter("postfix-block", c.Peek())
	defer c.Leave("postfix-block")

	pos := c.Peek().Position
	next, err := c.Accept(rule.Open)
	if err != nil {
		return nil, next, err
	}
	right, next, err := next.ParseExpr(Everything)
	if err != nil {
		return nil, next, err
	}
	if next, err = next.Accept(rule.Close); err != nil {
		return nil, next, err
	}
	p := syntax.PostfixBlock{
		Op:       rule.Open,
		Left:     left,
		Right:    right,
		Close:    rule.Close,
		Position: pos,
	}
	return p, next, nil
}

// operand parses the mandatory right operand of a prefix or infix
// operator.
func (c Cursor) operand(outer Context) (syntax.Node, Cursor, error) {
	item, next, err := c.ParseExpr(outer)
	if err != nil {
		return nil, next, err
	}
	if item == nil {
		return nil, next, unexpected(anyExpr, next.Peek())
	}
	return item, next, nil
}

func (c Cursor) skipTerminators() Cursor {
	for c.Peek().Kind == lex.Terminator {
		_, c = c.Pop()
	}
	return c
}

func (c Cursor) trailing() error {
	tok := c.Peek()
	if tok.Kind == lex.Invalid {
		return lexError(c.src, tok)
	}
	return SyntaxError{
		Err:      ErrTrailing,
		Actual:   c.src[tok.Offset:],
		Position: tok.Position,
	}
}

func (c Cursor) fail(rule string, err error) error {
	c.Error(rule, err)
	return err
}
