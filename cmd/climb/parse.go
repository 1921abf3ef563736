package main

import (
	"fmt"
	"io"
	"os"

	"github.com/midbel/cli"

	"github.com/midbel/climb/syntax"
)

const (
	formatText  = "text"
	formatDebug = "debug"
	formatJSON  = "json"
	formatCBOR  = "cbor"
	formatTree  = "tree"
)

var parseCmd = cli.Command{
	Name:    "parse",
	Summary: "parse statements and print their trees",
	Handler: &ParseCmd{},
}

var exprCmd = cli.Command{
	Name:    "expr",
	Summary: "parse a single expression and print its tree",
	Handler: &ParseCmd{Single: true},
}

type ParseCmd struct {
	Expr   string
	Format string
	Single bool
	ParserOptions
}

func (c *ParseCmd) Run(args []string) error {
	set := cli.NewFlagSet("parse")
	set.StringVar(&c.Expr, "e", "", "parse the given expression instead of reading a file")
	set.StringVar(&c.Format, "format", formatText, "output format: text, debug, json, cbor or tree")
	set.StringVar(&c.Grammar, "g", "", "grammar preset or grammar file")
	set.IntVar(&c.MaxDepth, "max-depth", 0, "maximum nesting of expressions")
	set.BoolVar(&c.Trace, "trace", false, "trace the parser")

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
	options, log := c.options()
	defer log.Sync()

	var list []syntax.Node
	if c.Single {
		var node syntax.Node
		if node, err = lang.ParseExpr(src, options...); node != nil {
			list = append(list, node)
		}
	} else {
		list, err = lang.Parse(src, options...)
	}
	if err != nil {
		return err
	}
	return printNodes(os.Stdout, list, c.Format)
}

func printNodes(w io.Writer, list []syntax.Node, format string) error {
	switch format {
	case formatText, "":
		for _, n := range list {
			fmt.Fprintln(w, n)
		}
	case formatDebug:
		for _, n := range list {
			fmt.Fprintln(w, syntax.Debug(n))
		}
	case formatTree:
		styles := syntax.DefaultStyles()
		for _, n := range list {
			fmt.Fprintln(w, syntax.Render(n, styles))
		}
	case formatJSON:
		return syntax.EncodeJSON(w, list)
	case formatCBOR:
		buf, err := syntax.MarshalCBOR(list)
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	default:
		return fmt.Errorf("%s: unsupported format", format)
	}
	return nil
}
