package grammar

import (
	"fmt"
	"maps"
	"slices"

	"github.com/midbel/distance"

	"github.com/midbel/climb/parser"
)

const (
	DefaultName = "default"
	ArithName   = "arith"
)

var (
	newlines   = `\r\n|\n|\r`
	semicolon  = `;`
	blanks     = `[ \t]+`
	comment    = `#[^\r\n]*`
	numbers    = `\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`
	keywords   = `(?:true|false|nil)\b`
	identifier = `[A-Za-z_][A-Za-z0-9_]*`
)

var defaultConfig = Config{
	Name:        DefaultName,
	Terminators: []string{newlines, semicolon},
	Whitespace:  []string{blanks},
	Ignored:     []string{comment},
	Literals: []LiteralConfig{
		{Name: "number", Kind: "number", Pattern: numbers},
		{Name: "keyword", Kind: "keyword", Pattern: keywords},
		{Name: "identifier", Kind: "identifier", Pattern: identifier},
	},
	Rules: []RuleConfig{
		{Type: RuleBlock, Precedence: 900, Open: "(", Close: ")"},
		{Type: RuleBlock, Precedence: 900, Open: "{", Close: "}"},
		{Type: RuleBlock, Precedence: 900, Open: "[", Close: "]"},
		{Type: RulePostfixBlock, Precedence: 800, Open: "(", Close: ")"},
		{Type: RulePostfixBlock, Precedence: 800, Open: "{", Close: "}"},
		{Type: RulePostfixBlock, Precedence: 800, Open: "[", Close: "]"},
		{Type: RuleInfix, Precedence: 700, Op: "**", Assoc: "right"},
		{Type: RulePrefix, Precedence: 600, Ops: []string{"+", "-", "~", "!"}},
		{Type: RuleInfix, Precedence: 500, Ops: []string{"*", "/", "//", "%"}},
		{Type: RuleInfix, Precedence: 400, Ops: []string{"+", "-"}},
		{Type: RuleInfix, Precedence: 300, Ops: []string{"<<", ">>"}},
		{Type: RuleInfix, Precedence: 220, Op: "&"},
		{Type: RuleInfix, Precedence: 210, Op: "^"},
		{Type: RuleInfix, Precedence: 200, Op: "|"},
		{
			Type:       RuleInfix,
			Precedence: 130,
			Ops:        []string{"in", "not in", "is", "is not", "<", "<=", ">", ">=", "<>", "!=", "=="},
		},
		{Type: RulePrefix, Precedence: 120, Op: "not"},
		{Type: RuleInfix, Precedence: 110, Op: "and"},
		{Type: RuleInfix, Precedence: 100, Op: "or"},
		{Type: RuleInfix, Precedence: 0, Op: "=", Assoc: "right"},
	},
}

var arithConfig = Config{
	Name:        ArithName,
	Terminators: []string{newlines, semicolon},
	Whitespace:  []string{blanks},
	Literals: []LiteralConfig{
		{Name: "number", Kind: "number", Pattern: numbers},
		{Name: "identifier", Kind: "identifier", Pattern: identifier},
	},
	Rules: []RuleConfig{
		{Type: RuleBlock, Precedence: 900, Open: "(", Close: ")"},
		{Type: RuleInfix, Precedence: 700, Op: "**", Assoc: "right"},
		{Type: RulePrefix, Precedence: 600, Op: "-"},
		{Type: RuleInfix, Precedence: 500, Ops: []string{"*", "/"}},
		{Type: RuleInfix, Precedence: 400, Ops: []string{"+", "-"}},
	},
}

var presets = map[string]Config{
	DefaultName: defaultConfig,
	ArithName:   arithConfig,
}

// UnknownError is returned for a grammar that is neither a preset nor a
// readable file. Others lists the presets with a similar name.
type UnknownError struct {
	Name   string
	Others []string
}

func (e UnknownError) Error() string {
	return fmt.Sprintf("%s: unknown grammar", e.Name)
}

func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Lookup builds a new Language from the preset name.
func Lookup(name string) (*parser.Language, error) {
	cfg, ok := presets[name]
	if !ok {
		return nil, UnknownError{
			Name:   name,
			Others: distance.Levenshtein(name, Names()),
		}
	}
	return cfg.Build()
}

func Default() *parser.Language {
	return mustBuild(defaultConfig)
}

func Arith() *parser.Language {
	return mustBuild(arithConfig)
}

func mustBuild(cfg Config) *parser.Language {
	lang, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("grammar %s: %s", cfg.Name, err))
	}
	return lang
}
