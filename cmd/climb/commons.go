package main

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/midbel/climb/logger"
	"github.com/midbel/climb/parser"
)

type ParserOptions struct {
	Grammar  string
	MaxDepth int
	Trace    bool
}

// language returns the grammar selected on the command line or, by
// default, the one of the settings.
func (o ParserOptions) language() (*parser.Language, error) {
	name := o.Grammar
	if name == "" {
		name = config.Grammar
	}
	return grammars.Get(name)
}

func (o ParserOptions) options() ([]parser.Option, *zap.Logger) {
	cfg := config.Log
	if o.Trace {
		cfg.Level = "debug"
	}
	var (
		log     = logger.Must(cfg)
		depth   = o.MaxDepth
		options []parser.Option
	)
	if depth == 0 {
		depth = config.MaxDepth
	}
	options = append(options, parser.WithMaxDepth(depth))
	if o.Trace {
		options = append(options, parser.WithTracer(parser.TraceLogger(log)))
	}
	return options, log
}

func readInput(expr, file string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	var (
		buf []byte
		err error
	)
	if file == "" || file == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(file)
	}
	return string(buf), err
}
