// Package driver wires the front end (internal/parser) and the lowerer
// (internal/lower, internal/codegen) together into the single entry point
// spec.md §4.7 describes: source text in, rendered Brainfuck text out.
package driver

import (
	"github.com/golang/glog"

	"github.com/gobrainfuck/bfgen/internal/codegen"
	"github.com/gobrainfuck/bfgen/internal/lower"
	"github.com/gobrainfuck/bfgen/internal/parser"
)

// config holds the options a Compile call can be tuned with.
type config struct {
	debug             bool
	squaringThreshold uint64
}

// Option configures a Compile call.
type Option func(*config)

// WithDebugOutput selects annotated rendering (one row per line: move
// prefix, indented operators, comment) instead of the minimal, wrapped
// Brainfuck text a real interpreter consumes (spec.md §4.2, §6).
func WithDebugOutput(debug bool) Option {
	return func(c *config) { c.debug = debug }
}

// WithSquaringThreshold overrides the constant magnitude above which
// Set/Add/Subtract switch to the square-decomposition idiom (spec.md §4.3).
// Zero means "use the generator's default".
func WithSquaringThreshold(n uint64) Option {
	return func(c *config) { c.squaringThreshold = n }
}

func newConfig(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) genOptions() []codegen.Option {
	if c.squaringThreshold == 0 {
		return nil
	}
	return []codegen.Option{codegen.WithSquaringThreshold(c.squaringThreshold)}
}

// Compile parses src, lowers it, and renders the result, either as minimal
// wrapped Brainfuck text or as an annotated row dump, per opts.
func Compile(src []byte, opts ...Option) (string, error) {
	cfg := newConfig(opts...)

	glog.V(1).Infof("driver: lex/parse %d bytes", len(src))
	prog, err := parser.Parse(src)
	if err != nil {
		return "", err
	}
	glog.V(1).Infof("driver: parsed %d functions", len(prog.Functions))

	gen := codegen.New(cfg.genOptions()...)
	l, err := lower.New(gen, prog)
	if err != nil {
		return "", err
	}
	glog.V(1).Infof("driver: lowering from %q", "main")
	retVar, err := l.LowerProgram()
	if err != nil {
		return "", err
	}
	gen.Release(retVar)

	glog.V(1).Infof("driver: rendering (debug=%v)", cfg.debug)
	return gen.Emitter().Render(cfg.debug), nil
}
