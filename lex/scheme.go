package lex

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Literal is a named pattern producing leaves of the given kind.
type Literal struct {
	Name    string
	Kind    Kind
	Pattern string
}

// Fragments are the pieces a Scheme is composed from. Alternatives are tried
// in this order: terminators, whitespace, operators, literals. Ignored
// patterns are consumed as padding around every token.
type Fragments struct {
	Terminators []string
	Whitespace  []string
	Ignored     []string
	Operators   []string
	Literals    []Literal
}

// Scheme is the compiled composite pattern used by a Lexer. It is immutable
// and can be shared between goroutines.
type Scheme struct {
	pad    *regexp.Regexp
	re     *regexp.Regexp
	groups []group

	// literals only, for operators glued to a word
	lits      *regexp.Regexp
	litGroups []group
}

type group struct {
	index int
	kind  Kind
}

const (
	groupTerminator = "climb_term"
	groupWhitespace = "climb_blank"
	groupOperator   = "climb_op"
	groupLiteral    = "climb_lit"
)

func Compile(frags Fragments) (*Scheme, error) {
	var (
		alts []alternative
		lits []alternative
	)
	add := func(list []alternative, name string, kind Kind, patterns []string) []alternative {
		if len(patterns) == 0 {
			return list
		}
		return append(list, alternative{name: name, kind: kind, pattern: alternate(patterns)})
	}
	for _, p := range frags.Terminators {
		if err := CheckPattern(Terminator.String(), p); err != nil {
			return nil, err
		}
	}
	for _, p := range frags.Whitespace {
		if err := CheckPattern(Whitespace.String(), p); err != nil {
			return nil, err
		}
	}
	alts = add(alts, groupTerminator, Terminator, frags.Terminators)
	alts = add(alts, groupWhitespace, Whitespace, frags.Whitespace)
	alts = add(alts, groupOperator, Operator, quoteOperators(frags.Operators))
	for i, lit := range frags.Literals {
		if err := CheckPattern(lit.Name, lit.Pattern); err != nil {
			return nil, err
		}
		lits = add(lits, fmt.Sprintf("%s%d", groupLiteral, i), lit.Kind, []string{lit.Pattern})
	}
	alts = append(alts, lits...)
	if len(alts) == 0 {
		return nil, fmt.Errorf("no pattern registered")
	}

	padding := ""
	if len(frags.Ignored) > 0 {
		padding = fmt.Sprintf("(?:%s)*", alternate(frags.Ignored))
	}
	pad, err := regexp.Compile(`\A` + padding)
	if err != nil {
		return nil, fmt.Errorf("ignored pattern: %w", err)
	}
	var s Scheme
	s.pad = pad
	if s.re, s.groups, err = compileAlternatives(alts, padding); err != nil {
		return nil, err
	}
	if len(lits) > 0 {
		if s.lits, s.litGroups, err = compileAlternatives(lits, padding); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type alternative struct {
	name    string
	kind    Kind
	pattern string
}

func compileAlternatives(alts []alternative, padding string) (*regexp.Regexp, []group, error) {
	list := make([]string, 0, len(alts))
	for _, a := range alts {
		list = append(list, fmt.Sprintf("(?P<%s>%s)", a.name, a.pattern))
	}
	re, err := regexp.Compile(fmt.Sprintf(`\A(?:%s)%s`, strings.Join(list, "|"), padding))
	if err != nil {
		return nil, nil, err
	}
	groups := make([]group, 0, len(alts))
	for _, a := range alts {
		g := group{
			index: re.SubexpIndex(a.name),
			kind:  a.kind,
		}
		groups = append(groups, g)
	}
	return re, groups, nil
}

// CheckPattern reports an error when pattern is not a valid regular
// expression or when it matches the empty string.
func CheckPattern(name, pattern string) error {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return fmt.Errorf("%s pattern %q: %w", name, pattern, err)
	}
	if re.MatchString("") {
		return fmt.Errorf("%s pattern %q matches the empty string", name, pattern)
	}
	return nil
}

// Match classifies the token found at pos. Invalid and EOF tokens do not
// advance the returned position.
func (s *Scheme) Match(src string, pos Position) (Token, Position) {
	if ix := s.pad.FindStringIndex(src[pos.Offset:]); ix != nil && ix[1] > 0 {
		pos = pos.Advance(src, pos.Offset+ix[1])
	}
	if pos.Offset >= len(src) {
		tok := Token{
			Kind:     EOF,
			Position: pos,
		}
		return tok, pos
	}
	tok, next, ok := scan(s.re, s.groups, src, pos)
	if ok && tok.Kind == Operator && glued(src, tok) {
		ok = false
		if s.lits != nil {
			tok, next, ok = scan(s.lits, s.litGroups, src, pos)
		}
	}
	if !ok {
		tok = Token{
			Kind:     Invalid,
			Literal:  UnknownText,
			Position: pos,
		}
		return tok, pos
	}
	return tok, next
}

func scan(re *regexp.Regexp, groups []group, src string, pos Position) (Token, Position, bool) {
	match := re.FindStringSubmatchIndex(src[pos.Offset:])
	if match == nil {
		return Token{}, pos, false
	}
	for _, g := range groups {
		beg, end := match[2*g.index], match[2*g.index+1]
		if beg < 0 {
			continue
		}
		if beg == end {
			break
		}
		tok := Token{
			Kind:     g.kind,
			Literal:  src[pos.Offset+beg : pos.Offset+end],
			Position: pos,
		}
		return tok, pos.Advance(src, pos.Offset+match[1]), true
	}
	return Token{}, pos, false
}

// glued reports whether an operator ending with a non ascii letter runs
// into the word that follows it, as in "λx". Such operators can not rely on
// \b which only knows ascii word characters.
func glued(src string, tok Token) bool {
	last, _ := utf8.DecodeLastRuneInString(tok.Literal)
	if last < utf8.RuneSelf || !isWord(last) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(src[tok.Offset+len(tok.Literal):])
	return isWord(next)
}

func alternate(patterns []string) string {
	list := make([]string, 0, len(patterns))
	for _, p := range patterns {
		list = append(list, "(?:"+p+")")
	}
	return strings.Join(list, "|")
}

// quoteOperators orders operators longest first so that "**" is never
// split into two "*". Operators ending with a letter must end on a word
// boundary so "or" does not match the beginning of "order". The boundary
// only applies to ascii letters, see glued for the others.
func quoteOperators(ops []string) []string {
	ops = slices.Clone(ops)
	slices.SortFunc(ops, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	ops = slices.Compact(ops)

	list := make([]string, 0, len(ops))
	for _, op := range ops {
		if op == "" {
			continue
		}
		q := regexp.QuoteMeta(op)
		if r, _ := utf8.DecodeLastRuneInString(op); r < utf8.RuneSelf && isWord(r) {
			q += `\b`
		}
		list = append(list, q)
	}
	return list
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
