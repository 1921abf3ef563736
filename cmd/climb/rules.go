package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/midbel/cli"

	"github.com/midbel/climb/parser"
)

var rulesCmd = cli.Command{
	Name:    "rules",
	Summary: "print the rule table of a grammar",
	Handler: &RulesCmd{},
}

type RulesCmd struct {
	Patterns bool
	ParserOptions
}

func (c *RulesCmd) Run(args []string) error {
	set := cli.NewFlagSet("rules")
	set.StringVar(&c.Grammar, "g", "", "grammar preset or grammar file")
	set.BoolVar(&c.Patterns, "patterns", false, "print the lexical patterns of the grammar")

	if err := set.Parse(args); err != nil {
		return err
	}
	lang, err := c.language()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, ruleTable(lang))
	if c.Patterns {
		fmt.Fprintln(os.Stdout, patternTable(lang))
	}
	return nil
}

func ruleTable(lang *parser.Language) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("position", "text", "precedence", "rule")
	for _, d := range lang.Prefixes() {
		t.Row("prefix", d.Text, fmt.Sprint(d.Rule.Precedence()), d.Rule.String())
	}
	for _, d := range lang.Suffixes() {
		t.Row("suffix", d.Text, fmt.Sprint(d.Rule.Precedence()), d.Rule.String())
	}
	return t.String()
}

func patternTable(lang *parser.Language) string {
	var (
		frags = lang.Fragments()
		t     = table.New().Border(lipgloss.RoundedBorder()).Headers("kind", "pattern")
	)
	for _, p := range frags.Terminators {
		t.Row("terminator", p)
	}
	for _, p := range frags.Whitespace {
		t.Row("whitespace", p)
	}
	for _, p := range frags.Ignored {
		t.Row("ignored", p)
	}
	for _, lit := range frags.Literals {
		t.Row(lit.Kind.String()+" ("+lit.Name+")", lit.Pattern)
	}
	return t.String()
}
