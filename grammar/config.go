package grammar

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/midbel/climb/lex"
	"github.com/midbel/climb/parser"
)

var ErrRule = errors.New("invalid rule")

const (
	RuleBlock        = "block"
	RulePostfixBlock = "postfix-block"
	RulePrefix       = "prefix"
	RuleInfix        = "infix"
	RulePostfix      = "postfix"
)

// Config is the declarative form of a Language, as read from a grammar
// file.
type Config struct {
	Name        string          `mapstructure:"name"`
	Extends     string          `mapstructure:"extends"`
	Terminators []string        `mapstructure:"terminators"`
	Whitespace  []string        `mapstructure:"whitespace"`
	Ignored     []string        `mapstructure:"ignored"`
	Literals    []LiteralConfig `mapstructure:"literals"`
	Rules       []RuleConfig    `mapstructure:"rules"`
}

type LiteralConfig struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"`
	Pattern string `mapstructure:"pattern"`
}

// RuleConfig declares one or more rules sharing a type and a precedence.
// Blocks use Open and Close, operators use Op and Ops.
type RuleConfig struct {
	Type       string   `mapstructure:"type"`
	Precedence int      `mapstructure:"precedence"`
	Op         string   `mapstructure:"op"`
	Ops        []string `mapstructure:"ops"`
	Assoc      string   `mapstructure:"assoc"`
	Open       string   `mapstructure:"open"`
	Close      string   `mapstructure:"close"`
}

func (r RuleConfig) operators() []string {
	var list []string
	if r.Op != "" {
		list = append(list, r.Op)
	}
	return append(list, r.Ops...)
}

// Load reads a grammar file. The format is deduced from the extension of
// the file (yaml, json, toml...).
func Load(file string) (*parser.Language, error) {
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return decode(v)
}

func Read(r io.Reader, format string) (*parser.Language, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (*parser.Language, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func (c Config) Build() (*parser.Language, error) {
	lang := parser.NewLanguage(c.Name)
	if c.Extends != "" {
		base, err := Lookup(c.Extends)
		if err != nil {
			return nil, err
		}
		lang = base.Extend(c.Name)
	}
	for _, p := range c.Terminators {
		if err := lang.DefineTerminator(p); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Whitespace {
		if err := lang.DefineWhitespace(p); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Ignored {
		if err := lang.DefineIgnored(p); err != nil {
			return nil, err
		}
	}
	for _, lit := range c.Literals {
		kind, err := lex.ParseKind(lit.Kind)
		if err != nil {
			return nil, err
		}
		if err := lang.DefineLiteral(lit.Name, kind, lit.Pattern); err != nil {
			return nil, err
		}
	}
	for i, r := range c.Rules {
		if err := define(lang, r); err != nil {
			return nil, fmt.Errorf("rule #%d (%s): %w", i+1, r.Type, err)
		}
	}
	return lang, nil
}

func define(lang *parser.Language, rule RuleConfig) error {
	switch rule.Type {
	case RuleBlock:
		return lang.DefineBlock(rule.Precedence, rule.Open, rule.Close)
	case RulePostfixBlock:
		return lang.DefinePostfixBlock(rule.Precedence, rule.Open, rule.Close)
	case RulePrefix, RuleInfix, RulePostfix:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrRule, rule.Type)
	}
	ops := rule.operators()
	if len(ops) == 0 {
		return fmt.Errorf("%w: no operator given", ErrRule)
	}
	assoc, err := parser.ParseAssoc(rule.Assoc)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRule, err)
	}
	for _, op := range ops {
		switch {
		case rule.Type == RulePrefix:
			err = lang.DefinePrefix(rule.Precedence, op)
		case rule.Type == RulePostfix:
			err = lang.DefinePostfix(rule.Precedence, op)
		case assoc == parser.Right:
			err = lang.DefineRightInfix(rule.Precedence, op)
		default:
			err = lang.DefineInfix(rule.Precedence, op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
