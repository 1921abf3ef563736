package parser

import (
	"go.uber.org/zap"

	"github.com/midbel/climb/lex"
)

type Tracer interface {
	Enter(string, lex.Token)
	Leave(string)
	Error(string, error)
}

type discardTracer struct{}

func (_ discardTracer) Enter(_ string, _ lex.Token) {}
func (_ discardTracer) Leave(_ string)              {}
func (_ discardTracer) Error(_ string, _ error)     {}

// logTracer keeps track of the nesting depth. It must not be shared between
// concurrent parses.
type logTracer struct {
	logger *zap.Logger
	depth  int
}

func TraceLogger(logger *zap.Logger) Tracer {
	tracer := logTracer{
		logger: logger,
	}
	return &tracer
}

func (t *logTracer) Enter(rule string, tok lex.Token) {
	t.depth++
	t.logger.Debug("start parse expr",
		zap.String("rule", rule),
		zap.Stringer("token", tok),
		zap.Stringer("position", tok.Position),
		zap.Int("depth", t.depth),
	)
}

func (t *logTracer) Leave(rule string) {
	t.depth--
	t.logger.Debug("done parse expr",
		zap.String("rule", rule),
		zap.Int("depth", t.depth),
	)
}

func (t *logTracer) Error(rule string, err error) {
	t.logger.Warn("parse expr failed",
		zap.String("rule", rule),
		zap.Int("depth", t.depth),
		zap.Error(err),
	)
}
