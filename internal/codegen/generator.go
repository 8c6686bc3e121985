// Package codegen implements the emitter, variable handle, and control
// constructs spec.md §4.2-§4.4 describe: the layer that turns "increment
// this variable" or "open a while loop on this condition" into rows of
// Brainfuck text, tracking the simulated data pointer so every move prefix
// is correct by construction.
//
// Earlier drafts gave the variable handle a back-reference to its owning
// generator. That made handles non-reusable across generators and hid the
// generator dependency inside method bodies. Every operation here instead
// takes the generator as an explicit receiver and the variable(s) it
// operates on as parameters: a Var is a plain address descriptor, nothing
// more.
package codegen

import (
	"fmt"

	"github.com/gobrainfuck/bfgen/internal/tape"
)

// defaultSquaringThreshold is the constant magnitude above which Set/Add/
// Subtract switch from a flat run of +/- to the square-decomposition idiom
// (spec.md §4.3).
const defaultSquaringThreshold = 32

// Var is a handle to a single tape cell. It carries no operations of its
// own; every primitive and compound operation is a Generator method that
// takes the Var(s) it acts on as arguments.
type Var struct {
	Name string
	Addr int
}

// Generator owns the tape and emitter for one function-lowering pass and
// exposes every primitive and compound Brainfuck-emitting operation.
type Generator struct {
	tape              *tape.Tape
	em                *Emitter
	frames            []*ifFrame
	anonSeq           int
	squaringThreshold uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSquaringThreshold overrides the constant magnitude above which
// Set/Add/Subtract switch to the square-decomposition idiom.
func WithSquaringThreshold(n uint64) Option {
	return func(g *Generator) { g.squaringThreshold = n }
}

// New creates a Generator over a fresh tape and emitter.
func New(opts ...Option) *Generator {
	g := &Generator{
		tape:              tape.New(),
		em:                NewEmitter(),
		squaringThreshold: defaultSquaringThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Emitter exposes the underlying emitter for rendering once lowering is
// done.
func (g *Generator) Emitter() *Emitter { return g.em }

// Tape exposes the underlying tape for diagnostics (e.g. leak checks at the
// end of a function lowering pass).
func (g *Generator) Tape() *tape.Tape { return g.tape }

// NewVar allocates a fresh cell for name and zeroes it.
func (g *Generator) NewVar(name string) *Var {
	v := &Var{Name: name, Addr: g.tape.Alloc(0, name)}
	g.Set(v, 0)
	return v
}

// NewVarInit allocates a fresh cell for name and sets it to k.
func (g *Generator) NewVarInit(name string, k uint64) *Var {
	v := &Var{Name: name, Addr: g.tape.Alloc(0, name)}
	g.Set(v, k)
	return v
}

// newScratch allocates an anonymous, pre-zeroed working cell not visible to
// the surface program.
func (g *Generator) newScratch() *Var {
	g.anonSeq++
	name := fmt.Sprintf("$t%d", g.anonSeq)
	return g.NewVar(name)
}

// newScratchRun allocates n contiguous anonymous cells and zeroes each one.
// Its only caller is IfBegin, for the if-construct's three private cells;
// the comparison and boolean operations allocate single scratch cells.
func (g *Generator) newScratchRun(n int) []*Var {
	g.anonSeq++
	owner := fmt.Sprintf("$r%d", g.anonSeq)
	start := g.tape.AllocRun(n, 0, owner)
	vs := make([]*Var, n)
	for i := 0; i < n; i++ {
		vs[i] = &Var{Name: fmt.Sprintf("%s.%d", owner, i), Addr: start + i}
		g.Set(vs[i], 0)
	}
	return vs
}

// Release frees v's cell. The cell's Brainfuck-level value is left
// unspecified; callers must not read through a released handle.
func (g *Generator) Release(v *Var) {
	g.tape.Release(v.Addr)
}

func (g *Generator) releaseAll(vs ...*Var) {
	for _, v := range vs {
		g.Release(v)
	}
}

func (g *Generator) comment(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
