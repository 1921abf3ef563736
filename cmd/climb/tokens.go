package main

import (
	"fmt"
	"os"

	"github.com/midbel/cli"

	"github.com/midbel/climb/lex"
)

var tokensCmd = cli.Command{
	Name:    "tokens",
	Alias:   []string{"scan"},
	Summary: "print the tokens of the input",
	Handler: &TokensCmd{},
}

type TokensCmd struct {
	Expr string
	All  bool
	ParserOptions
}

func (c *TokensCmd) Run(args []string) error {
	set := cli.NewFlagSet("tokens")
	set.StringVar(&c.Expr, "e", "", "scan the given expression instead of reading a file")
	set.StringVar(&c.Grammar, "g", "", "grammar preset or grammar file")
	set.BoolVar(&c.All, "all", false, "print whitespace tokens")

	if err := set.Parse(args); err != nil {
		return err
	}
	lang, err := c.language()
	if err != nil {
		return err
	}
	src, err := readInput(c.Expr, set.Arg(0))
	if err != nil {
		return err
	}
	list, err := lang.Tokens(src, c.All)
	if err != nil {
		return err
	}
	for _, tok := range list {
		fmt.Fprintf(os.Stdout, "%-8s %-12s %q\n", tok.Position, tok.Kind, tok.Literal)
	}
	if n := len(list); n > 0 && list[n-1].Kind == lex.Invalid {
		return errFail
	}
	return nil
}
