package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"

	"github.com/midbel/climb/grammar"
)

var errFail = errors.New("fail")

var (
	summary = "climb parses expressions with configurable operator precedence"
	help    = `climb reads expressions written for a grammar and prints their tree.

The grammar is either a preset (default, arith) or a grammar file (yaml, json
or toml). Settings are read from climb.yml in the current directory or in
$HOME/.config/climb and can be overridden by the CLIMB_GRAMMAR,
CLIMB_MAXDEPTH, CLIMB_LOG_LEVEL and CLIMB_LOG_FILE environment variables.`
)

var (
	config   Settings
	grammars = grammar.NewCache(8)
)

func main() {
	var (
		set  = cli.NewFlagSet("climb")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	var err error
	if config, err = loadSettings(); err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		os.Exit(1)
	}
	err = root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		var unknown grammar.UnknownError
		if errors.As(err, &unknown) && len(unknown.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar grammar(s)")
			for _, n := range unknown.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"parse"}, &parseCmd)
	root.Register([]string{"parse", "expr"}, &exprCmd)
	root.Register([]string{"tokens"}, &tokensCmd)
	root.Register([]string{"rules"}, &rulesCmd)
	root.Register([]string{"repl"}, &replCmd)

	return root
}
