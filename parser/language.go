package parser

import (
	"fmt"
	"slices"
	"sync"

	"github.com/midbel/climb/environ"
	"github.com/midbel/climb/lex"
)

// Language is the rule table driving the parser. Rules are registered with
// the Define methods, then the Language is shared read only between parses.
// No rule may be defined while a parse is in flight.
type Language struct {
	Name string

	prefix *environ.Env[PrefixRule]
	suffix *environ.Env[SuffixRule]
	frags  lex.Fragments

	mu     sync.Mutex
	scheme *lex.Scheme
}

func NewLanguage(name string) *Language {
	return &Language{
		Name:   name,
		prefix: environ.Empty[PrefixRule](),
		suffix: environ.Empty[SuffixRule](),
	}
}

// Extend creates a dialect of l. The dialect sees every rule and pattern of
// l and may define or shadow rules without modifying l.
func (l *Language) Extend(name string) *Language {
	x := Language{
		Name:   name,
		prefix: environ.Enclosed(l.prefix),
		suffix: environ.Enclosed(l.suffix),
		frags: lex.Fragments{
			Terminators: slices.Clone(l.frags.Terminators),
			Whitespace:  slices.Clone(l.frags.Whitespace),
			Ignored:     slices.Clone(l.frags.Ignored),
			Operators:   slices.Clone(l.frags.Operators),
			Literals:    slices.Clone(l.frags.Literals),
		},
	}
	return &x
}

func (l *Language) DefineBlock(prec int, open, close string) error {
	if err := checkOperator(open, close); err != nil {
		return err
	}
	rule := BlockRule{
		Prec:  prec,
		Open:  open,
		Close: close,
	}
	return l.definePrefix(open, rule, open, close)
}

func (l *Language) DefinePrefix(prec int, op string) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	rule := UnaryRule{
		Prec: prec,
		Op:   op,
	}
	return l.definePrefix(op, rule, op)
}

func (l *Language) DefineInfix(prec int, op string) error {
	return l.defineInfix(prec, op, Left)
}

func (l *Language) DefineRightInfix(prec int, op string) error {
	return l.defineInfix(prec, op, Right)
}

func (l *Language) defineInfix(prec int, op string, assoc Assoc) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	rule := InfixRule{
		Prec:  prec,
		Op:    op,
		Assoc: assoc,
	}
	return l.defineSuffix(op, rule, op)
}

func (l *Language) DefinePostfix(prec int, op string) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	rule := PostfixRule{
		Prec: prec,
		Op:   op,
	}
	return l.defineSuffix(op, rule, op)
}

func (l *Language) DefinePostfixBlock(prec int, open, close string) error {
	if err := checkOperator(open, close); err != nil {
		return err
	}
	rule := PostfixBlockRule{
		Prec:  prec,
		Open:  open,
		Close: close,
	}
	return l.defineSuffix(open, rule, open, close)
}

func (l *Language) DefineTerminator(pattern string) error {
	if err := lex.CheckPattern("terminator", pattern); err != nil {
		return err
	}
	l.update(func() {
		l.frags.Terminators = append(l.frags.Terminators, pattern)
	})
	return nil
}

func (l *Language) DefineWhitespace(pattern string) error {
	if err := lex.CheckPattern("whitespace", pattern); err != nil {
		return err
	}
	l.update(func() {
		l.frags.Whitespace = append(l.frags.Whitespace, pattern)
	})
	return nil
}

// DefineIgnored registers a pattern consumed silently around tokens, such
// as comments.
func (l *Language) DefineIgnored(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty ignored pattern")
	}
	l.update(func() {
		l.frags.Ignored = append(l.frags.Ignored, pattern)
	})
	return nil
}

// DefineLiteral registers a literal pattern. Literal patterns are tried in
// registration order, after every operator.
func (l *Language) DefineLiteral(name string, kind lex.Kind, pattern string) error {
	if !kind.IsLiteral() {
		return fmt.Errorf("%s: %s is not a literal kind", name, kind)
	}
	if err := lex.CheckPattern(name, pattern); err != nil {
		return err
	}
	for _, lit := range l.frags.Literals {
		if lit.Name == name {
			return fmt.Errorf("literal %s: %w", name, environ.ErrDefined)
		}
	}
	lit := lex.Literal{
		Name:    name,
		Kind:    kind,
		Pattern: pattern,
	}
	l.update(func() {
		l.frags.Literals = append(l.frags.Literals, lit)
	})
	return nil
}

func (l *Language) definePrefix(key string, rule PrefixRule, ops ...string) error {
	if err := l.prefix.Define(key, rule); err != nil {
		return fmt.Errorf("prefix %w", err)
	}
	l.registerOperators(ops...)
	return nil
}

func (l *Language) defineSuffix(key string, rule SuffixRule, ops ...string) error {
	if err := l.suffix.Define(key, rule); err != nil {
		return fmt.Errorf("suffix %w", err)
	}
	l.registerOperators(ops...)
	return nil
}

func (l *Language) registerOperators(ops ...string) {
	l.update(func() {
		for _, op := range ops {
			if !slices.Contains(l.frags.Operators, op) {
				l.frags.Operators = append(l.frags.Operators, op)
			}
		}
	})
}

func (l *Language) update(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
	l.scheme = nil
}

// Scheme returns the composite pattern built from the registered fragments.
// It is built once and rebuilt only after a new fragment is registered.
func (l *Language) Scheme() (*lex.Scheme, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.scheme != nil {
		return l.scheme, nil
	}
	s, err := lex.Compile(l.frags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Name, err)
	}
	l.scheme = s
	return s, nil
}

// PrefixRuleFor finds the rule for a token starting an expression. Literal
// tokens without an explicit rule become leaves.
func (l *Language) PrefixRuleFor(tok lex.Token) (PrefixRule, bool) {
	switch {
	case tok.Kind == lex.Terminator:
		return TerminatorRule{Prec: PrecHighest}, true
	case tok.Kind == lex.Operator:
		return l.prefix.Resolve(tok.Literal)
	case tok.Kind.IsLiteral():
		if rule, ok := l.prefix.Resolve(tok.Literal); ok {
			return rule, true
		}
		return LiteralRule{}, true
	default:
		return nil, false
	}
}

func (l *Language) SuffixRuleFor(tok lex.Token) (SuffixRule, bool) {
	if tok.Kind != lex.Operator {
		return nil, false
	}
	return l.suffix.Resolve(tok.Literal)
}

// Definition pairs the text of an operator with its rule.
type Definition struct {
	Text string
	Rule Context
}

func (l *Language) Prefixes() []Definition {
	var list []Definition
	for _, n := range l.prefix.Names() {
		r, _ := l.prefix.Resolve(n)
		list = append(list, Definition{Text: n, Rule: r})
	}
	return list
}

func (l *Language) Suffixes() []Definition {
	var list []Definition
	for _, n := range l.suffix.Names() {
		r, _ := l.suffix.Resolve(n)
		list = append(list, Definition{Text: n, Rule: r})
	}
	return list
}

func (l *Language) Fragments() lex.Fragments {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frags
}

// Tokens returns the tokens of src. Whitespace tokens are kept when all is
// true. The last token is either EOF or the first invalid token.
func (l *Language) Tokens(src string, all bool) ([]lex.Token, error) {
	scheme, err := l.Scheme()
	if err != nil {
		return nil, err
	}
	x := lex.New(scheme, src)
	if all {
		return x.All(), nil
	}
	return lex.NewFilter(x, lex.Whitespace).All(), nil
}

func checkOperator(ops ...string) error {
	for _, op := range ops {
		if op == "" {
			return fmt.Errorf("empty operator")
		}
	}
	return nil
}
