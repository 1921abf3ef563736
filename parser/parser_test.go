package parser_test

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/midbel/climb/grammar"
	"github.com/midbel/climb/lex"
	"github.com/midbel/climb/parser"
	"github.com/midbel/climb/syntax"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "1 * 2 + 3", Want: "((1 * 2) + 3)"},
		{Expr: "1 + 2 * 3", Want: "(1 + (2 * 3))"},
		{Expr: "1 + 2 + 3", Want: "((1 + 2) + 3)"},
		{Expr: "1 + 2 + 3 * 4 * 5 * 6", Want: "((1 + 2) + (((3 * 4) * 5) * 6))"},
		{Expr: "2 ** 3 ** 4", Want: "(2 ** (3 ** 4))"},
		{Expr: "3 + 1 ** 2 ** 3 + 4", Want: "((3 + (1 ** (2 ** 3))) + 4)"},
		{Expr: "(1 + 2) * 3", Want: "(((1 + 2)) * 3)"},
		{Expr: "(1 + 2 * 3)", Want: "((1 + (2 * 3)))"},
		{Expr: "2 * (1 + 2 * 3)", Want: "(2 * ((1 + (2 * 3))))"},
		{Expr: "-2 ** 3 ** 4 * 8", Want: "((- (2 ** (3 ** 4))) * 8)"},
		{Expr: "+1 * 2", Want: "((+ 1) * 2)"},
		{Expr: "+(1 * 2)", Want: "(+ ((1 * 2)))"},
		{Expr: "- - 1", Want: "(- (- 1))"},
		{Expr: "x[0]", Want: "x[0]"},
		{Expr: "x[0][1]", Want: "x[0][1]"},
		{Expr: "f(a + b)", Want: "f((a + b))"},
		{Expr: "f()", Want: "f()"},
		{Expr: "-f(x)", Want: "(- f(x))"},
		{Expr: "{}", Want: "{}"},
		{Expr: "[1 + 2]", Want: "[(1 + 2)]"},
		{Expr: "a = b = c", Want: "(a = (b = c))"},
		{Expr: "a = 1 + 2", Want: "(a = (1 + 2))"},
		{Expr: "1 << 2 + 3", Want: "(1 << (2 + 3))"},
		{Expr: "a & b | c ^ d", Want: "((a & b) | (c ^ d))"},
		{Expr: "a // b % c", Want: "((a // b) % c)"},
		{Expr: "not a == b and c", Want: "((not (a == b)) and c)"},
		{Expr: "a not in b or c is not d", Want: "((a not in b) or (c is not d))"},
		{Expr: "a <> b and c <= d", Want: "((a <> b) and (c <= d))"},
		{Expr: "order or notice", Want: "(order or notice)"},
		{Expr: "true and nil", Want: "(true and nil)"},
		{Expr: "1 + 2 # comment", Want: "(1 + 2)"},
		{Expr: "1.5e3 * 2\n", Want: "(1.5e3 * 2)"},
	}
	lang := grammar.Default()
	for _, c := range tests {
		node, err := lang.ParseExpr(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse expression: %s", c.Expr, err)
			continue
		}
		if got := node.String(); got != c.Want {
			t.Errorf("%s: tree mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{
			Expr: "x[0]",
			Want: `postfix-block("[]", identifier(x), number(0))`,
		},
		{
			Expr: "x[0][1]",
			Want: `postfix-block("[]", postfix-block("[]", identifier(x), number(0)), number(1))`,
		},
		{
			Expr: "-2 ** 3 ** 4 * 8",
			Want: `infix(*, prefix(-, infix(**, number(2), infix(**, number(3), number(4)))), number(8))`,
		},
		{
			Expr: "(1 + 2) * 3",
			Want: `infix(*, block("()", infix(+, number(1), number(2))), number(3))`,
		},
		{
			Expr: "f()",
			Want: `postfix-block("()", identifier(f), empty)`,
		},
		{
			Expr: "ok = true",
			Want: `infix(=, identifier(ok), keyword(true))`,
		},
	}
	lang := grammar.Default()
	for _, c := range tests {
		node, err := lang.ParseExpr(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse expression: %s", c.Expr, err)
			continue
		}
		if got := syntax.Debug(node); got != c.Want {
			t.Errorf("%s: tree mismatched!\nwant: %s\ngot:  %s", c.Expr, c.Want, got)
		}
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		Input string
		Want  []string
	}{
		{
			Input: "1 + 2\n1 + 2 + 3",
			Want:  []string{"(1 + 2)", "((1 + 2) + 3)"},
		},
		{
			Input: "\n\n1\n\n;\r\n2\n",
			Want:  []string{"1", "2"},
		},
		{
			Input: "a = 1; b = a * 2",
			Want:  []string{"(a = 1)", "(b = (a * 2))"},
		},
		{
			Input: "# only a comment\n",
		},
		{
			Input: "",
		},
		{
			Input: "1 2",
			Want:  []string{"1", "2"},
		},
	}
	lang := grammar.Default()
	for _, c := range tests {
		list, err := lang.Parse(c.Input)
		if err != nil {
			t.Errorf("%q: fail to parse statements: %s", c.Input, err)
			continue
		}
		if len(list) != len(c.Want) {
			t.Errorf("%q: number of statements mismatched! want %d, got %d", c.Input, len(c.Want), len(list))
			continue
		}
		for i := range list {
			if got := list[i].String(); got != c.Want[i] {
				t.Errorf("%q: statement %d mismatched! want %s, got %s", c.Input, i, c.Want[i], got)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Input    string
		Err      error
		Expected string
		Actual   string
		Line     int
		Column   int
	}{
		{
			Input:    "(1 + 2",
			Err:      parser.ErrUnexpected,
			Expected: ")",
			Actual:   "end of input",
			Line:     1,
			Column:   7,
		},
		{
			Input:    "(1 + 2]",
			Err:      parser.ErrUnexpected,
			Expected: ")",
			Actual:   "]",
			Line:     1,
			Column:   7,
		},
		{
			Input:    "x[1",
			Err:      parser.ErrUnexpected,
			Expected: "]",
			Actual:   "end of input",
			Line:     1,
			Column:   4,
		},
		{
			Input:    "1 +",
			Err:      parser.ErrUnexpected,
			Expected: "expression",
			Actual:   "end of input",
			Line:     1,
			Column:   4,
		},
		{
			Input:    "1 +\n2",
			Err:      parser.ErrUnexpected,
			Expected: "expression",
			Actual:   `"\n"`,
			Line:     1,
			Column:   4,
		},
		{
			Input:  "1 + 2 )",
			Err:    parser.ErrTrailing,
			Actual: ")",
			Line:   1,
			Column: 7,
		},
		{
			Input:  "a = 1\nb = $",
			Err:    parser.ErrLex,
			Actual: "'$'",
			Line:   2,
			Column: 5,
		},
		{
			Input:  "1 @ 2",
			Err:    parser.ErrLex,
			Actual: "'@'",
			Line:   1,
			Column: 3,
		},
	}
	lang := grammar.Default()
	for _, c := range tests {
		_, err := lang.Parse(c.Input)
		if !errors.Is(err, c.Err) {
			t.Errorf("%q: error mismatched! want %v, got %v", c.Input, c.Err, err)
			continue
		}
		var serr parser.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q: expected a syntax error, got %T", c.Input, err)
			continue
		}
		if serr.Expected != c.Expected || serr.Actual != c.Actual {
			t.Errorf("%q: want expected %q/actual %q, got %q/%q", c.Input, c.Expected, c.Actual, serr.Expected, serr.Actual)
		}
		if serr.Line != c.Line || serr.Column != c.Column {
			t.Errorf("%q: position mismatched! want %d:%d, got %s", c.Input, c.Line, c.Column, serr.Position)
		}
	}
}

func TestParsePartial(t *testing.T) {
	list, err := grammar.Default().Parse("1\n2 * 3\n(4")
	if !errors.Is(err, parser.ErrUnexpected) {
		t.Fatalf("expected unexpected token error, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("statements parsed before the fault should be kept, got %d", len(list))
	}
	if list[1].String() != "(2 * 3)" {
		t.Errorf("second statement mismatched: %s", list[1])
	}
}

func TestParseExprEmpty(t *testing.T) {
	_, err := grammar.Default().ParseExpr("  ")
	var serr parser.SyntaxError
	if !errors.As(err, &serr) || serr.Expected != "expression" {
		t.Errorf("empty input should fail with missing expression, got %v", err)
	}
}

func TestParseExprTerminators(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "\n1", Want: "1"},
		{Expr: "\n\n1 + 2;\n", Want: "(1 + 2)"},
		{Expr: "; # comment\r\nx[0]", Want: "x[0]"},
	}
	lang := grammar.Default()
	for _, c := range tests {
		node, err := lang.ParseExpr(c.Expr)
		if err != nil {
			t.Errorf("%q: fail to parse expression: %s", c.Expr, err)
			continue
		}
		if got := node.String(); got != c.Want {
			t.Errorf("%q: tree mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
	if _, err := lang.ParseExpr("\n;\n"); !errors.Is(err, parser.ErrUnexpected) {
		t.Errorf("input made of terminators should fail with missing expression, got %v", err)
	}
}

func TestUnicodeOperator(t *testing.T) {
	lang := grammar.Default().Extend("lambda")
	if err := lang.DefinePrefix(50, "λ"); err != nil {
		t.Fatalf("fail to define prefix operator: %s", err)
	}
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "λ x", Want: "(λ x)"},
		{Expr: "λ x + 1", Want: "(λ (x + 1))"},
		{Expr: "λ(x)", Want: "(λ (x))"},
	}
	for _, c := range tests {
		node, err := lang.ParseExpr(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse expression: %s", c.Expr, err)
			continue
		}
		if got := node.String(); got != c.Want {
			t.Errorf("%s: tree mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
	if _, err := lang.ParseExpr("λx"); !errors.Is(err, parser.ErrLex) {
		t.Errorf("operator glued to a word should not be split, got %v", err)
	}
}

func TestEmptyPattern(t *testing.T) {
	lang := parser.NewLanguage("blank")
	if err := lang.DefineWhitespace(`[ ]*`); err == nil {
		t.Errorf("whitespace pattern matching the empty string accepted")
	}
	if err := lang.DefineTerminator(``); err == nil {
		t.Errorf("empty terminator pattern accepted")
	}
	if err := lang.DefineLiteral("number", lex.Number, `\d*`); err == nil {
		t.Errorf("literal pattern matching the empty string accepted")
	}
	if err := lang.DefineLiteral("number", lex.Number, `\d+`); err != nil {
		t.Errorf("valid literal pattern rejected: %s", err)
	}
}

func TestMaxDepth(t *testing.T) {
	lang := grammar.Default()
	if _, err := lang.Parse("((((((1))))))", parser.WithMaxDepth(5)); !errors.Is(err, parser.ErrDepth) {
		t.Errorf("nesting limit not enforced: %v", err)
	}
	if _, err := lang.Parse("a = b = c = d = e = f", parser.WithMaxDepth(3)); !errors.Is(err, parser.ErrDepth) {
		t.Errorf("nesting limit not enforced on right associative chain: %v", err)
	}
	if _, err := lang.Parse("1 + 2 + 3 + 4 + 5 + 6 + 7 + 8", parser.WithMaxDepth(3)); err != nil {
		t.Errorf("left associative chain should not nest: %v", err)
	}
	if _, err := lang.Parse("((1))", parser.WithMaxDepth(5)); err != nil {
		t.Errorf("shallow expression rejected: %v", err)
	}
}

func TestCursorReplay(t *testing.T) {
	c, err := grammar.Default().Cursor("1 + 2 * 3")
	if err != nil {
		t.Fatalf("fail to create cursor: %s", err)
	}
	first, next, err := c.ParseExpr(parser.Everything)
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	second, _, err := c.ParseExpr(parser.Everything)
	if err != nil {
		t.Fatalf("fail to replay: %s", err)
	}
	if first.String() != second.String() {
		t.Errorf("replay gives different trees: %s != %s", first, second)
	}
	if c.Offset() != 0 {
		t.Errorf("parsing moved the original cursor to %d", c.Offset())
	}
	if !next.Done() {
		t.Errorf("cursor not at end of input after parsing")
	}

	tok, rest := c.Pop()
	if tok.Literal != "1" || rest.Peek().Literal != "+" {
		t.Errorf("pop mismatched: %s then %s", tok, rest.Peek())
	}
	if _, err := rest.Accept("*"); !errors.Is(err, parser.ErrUnexpected) {
		t.Errorf("accept should reject unexpected token, got %v", err)
	}
}

func TestExtend(t *testing.T) {
	base := grammar.Default()
	child := base.Extend("factorial")
	if err := child.DefinePostfix(650, "!"); err != nil {
		t.Fatalf("fail to define postfix operator: %s", err)
	}
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "n!", Want: "(n !)"},
		{Expr: "-n!", Want: "(- (n !))"},
		{Expr: "2 ** n!", Want: "((2 ** n) !)"},
		{Expr: "n! * 2", Want: "((n !) * 2)"},
		{Expr: "!n", Want: "(! n)"},
	}
	for _, c := range tests {
		node, err := child.ParseExpr(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse expression: %s", c.Expr, err)
			continue
		}
		if got := node.String(); got != c.Want {
			t.Errorf("%s: tree mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
	if _, err := base.ParseExpr("n!"); !errors.Is(err, parser.ErrTrailing) {
		t.Errorf("postfix rule leaked into parent language: %v", err)
	}
}

func TestDefineTwice(t *testing.T) {
	lang := grammar.Arith()
	if err := lang.DefineInfix(100, "+"); err == nil {
		t.Errorf("infix operator defined twice")
	}
	if err := lang.DefinePrefix(100, "+"); err != nil {
		t.Errorf("prefix and infix rules should not collide: %s", err)
	}
	if err := lang.DefineInfix(100, ""); err == nil {
		t.Errorf("empty operator accepted")
	}
}

func TestSchemeInvalidated(t *testing.T) {
	lang := grammar.Arith()
	before, err := lang.Scheme()
	if err != nil {
		t.Fatalf("fail to build scheme: %s", err)
	}
	if again, _ := lang.Scheme(); again != before {
		t.Errorf("scheme rebuilt without new fragment")
	}
	if err := lang.DefineInfix(300, "%"); err != nil {
		t.Fatalf("fail to define operator: %s", err)
	}
	after, err := lang.Scheme()
	if err != nil {
		t.Fatalf("fail to rebuild scheme: %s", err)
	}
	if after == before {
		t.Errorf("scheme not rebuilt after new fragment")
	}
	node, err := lang.ParseExpr("a % b + c")
	if err != nil {
		t.Fatalf("new operator not usable: %s", err)
	}
	if node.String() != "(a % (b + c))" {
		t.Errorf("tree mismatched: %s", node)
	}
}

func TestTokens(t *testing.T) {
	lang := grammar.Default()
	toks, err := lang.Tokens("a+ 1", false)
	if err != nil {
		t.Fatalf("fail to scan: %s", err)
	}
	if len(toks) != 4 {
		t.Fatalf("number of tokens mismatched! want 4, got %d", len(toks))
	}
	all, _ := lang.Tokens("a+ 1", true)
	if len(all) != 5 {
		t.Errorf("whitespace tokens should be kept, got %d tokens", len(all))
	}
}

func TestCapturedBy(t *testing.T) {
	var (
		add   = parser.InfixRule{Prec: 400, Op: "+"}
		pow   = parser.InfixRule{Prec: 700, Op: "**", Assoc: parser.Right}
		fact  = parser.PostfixRule{Prec: 650, Op: "!"}
		term  = parser.TerminatorRule{Prec: parser.PrecHighest}
		minus = parser.UnaryRule{Prec: 600, Op: "-"}
	)
	tests := []struct {
		Rule  parser.Context
		Outer parser.Context
		Want  bool
	}{
		{Rule: add, Outer: parser.Everything, Want: true},
		{Rule: add, Outer: add, Want: false},
		{Rule: add, Outer: minus, Want: false},
		{Rule: pow, Outer: pow, Want: true},
		{Rule: pow, Outer: minus, Want: true},
		{Rule: fact, Outer: minus, Want: true},
		{Rule: fact, Outer: pow, Want: false},
		{Rule: term, Outer: parser.Everything, Want: true},
		{Rule: minus, Outer: pow, Want: true},
		{Rule: parser.Everything, Outer: parser.Everything, Want: false},
	}
	for _, c := range tests {
		if got := c.Rule.CapturedBy(c.Outer); got != c.Want {
			t.Errorf("%s captured by %s: want %t, got %t", c.Rule, c.Outer, c.Want, got)
		}
	}
}

func TestConcurrentParse(t *testing.T) {
	var (
		lang  = grammar.Default()
		wg    sync.WaitGroup
		exprs = []string{"1 + 2 * 3", "f(x)[0] ** 2", "a = b or not c", "(1 + 2) * -3"}
	)
	want := make([]string, len(exprs))
	for i, e := range exprs {
		node, err := lang.ParseExpr(e)
		if err != nil {
			t.Fatalf("%s: fail to parse: %s", e, err)
		}
		want[i] = node.String()
	}
	errs := make(chan error, 8*len(exprs))
	for range 8 {
		for i, e := range exprs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				node, err := lang.ParseExpr(e)
				if err == nil && node.String() != want[i] {
					err = errors.New(e + ": concurrent parse gives " + node.String())
				}
				if err != nil {
					errs <- err
				}
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestTraceLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tracer := parser.TraceLogger(zap.New(core))

	if _, err := grammar.Default().Parse("1 + 2", parser.WithTracer(tracer)); err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	var (
		enter = logs.FilterMessage("start parse expr").Len()
		leave = logs.FilterMessage("done parse expr").Len()
	)
	if enter == 0 || enter != leave {
		t.Errorf("unbalanced trace: %d enter, %d leave", enter, leave)
	}

	grammar.Default().Parse("(1", parser.WithTracer(tracer))
	if logs.FilterMessage("parse expr failed").Len() == 0 {
		t.Errorf("failure not traced")
	}
}
