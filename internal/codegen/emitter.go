package codegen

import (
	"fmt"
	"strings"

	"github.com/gobrainfuck/bfgen/pkg/bftext"
)

// row is one accumulated unit of output: the pointer-move prefix needed to
// reach the target cell, the operator characters to run there, a
// human-readable comment, and the indentation level at emission time
// (spec.md §3 "emitter row buffer").
type row struct {
	moves   string
	ops     string
	comment string
	indent  int
}

// Emitter accumulates emitter rows and tracks the simulated data-pointer
// position so each row's move prefix is exactly right (spec.md Invariant 3).
type Emitter struct {
	rows    []row
	pos     int
	indent  int
}

// NewEmitter creates an empty Emitter with the simulated pointer at 0.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Pos returns the simulated data-pointer position.
func (e *Emitter) Pos() int { return e.pos }

// moveTo computes the ">"/"<" prefix needed to step from the current
// simulated position to target, and updates that position (spec.md §4.2's
// single "helper function").
func (e *Emitter) moveTo(target int) string {
	dist := target - e.pos
	e.pos = target
	if dist >= 0 {
		return strings.Repeat(">", dist)
	}
	return strings.Repeat("<", -dist)
}

// Emit appends a row that moves to target, runs ops there, annotated with
// comment, at the current indentation.
func (e *Emitter) Emit(target int, ops, comment string) {
	e.rows = append(e.rows, row{moves: e.moveTo(target), ops: ops, comment: comment, indent: e.indent})
}

// Note appends a comment-only row with no data-pointer effect, matching the
// teacher's NOP-row convention. None of the generator's own operations call
// it.
func (e *Emitter) Note(comment string) {
	e.rows = append(e.rows, row{comment: comment, indent: e.indent})
}

// Indent increases the indentation level for subsequently emitted rows.
func (e *Emitter) Indent() { e.indent++ }

// Dedent decreases the indentation level for subsequently emitted rows.
func (e *Emitter) Dedent() {
	if e.indent > 0 {
		e.indent--
	}
}

// IndentLevel returns the current indentation depth (for invariant checks).
func (e *Emitter) IndentLevel() int { return e.indent }

const indentWidth = 4

// RenderAnnotated renders every row as three width-padded columns: moves,
// indent-prefixed ops, comment (spec.md §4.2 "Annotated" mode, §6).
func (e *Emitter) RenderAnnotated() string {
	var movesW, opsW int
	for _, r := range e.rows {
		if len(r.moves) > movesW {
			movesW = len(r.moves)
		}
		indented := len(r.ops) + r.indent*indentWidth
		if indented > opsW {
			opsW = indented
		}
	}

	var sb strings.Builder
	for _, r := range e.rows {
		indented := strings.Repeat(" ", r.indent*indentWidth) + r.ops
		fmt.Fprintf(&sb, "%-*s %-*s %s\n", movesW, r.moves, opsW, indented, r.comment)
	}
	return sb.String()
}

// rawOps concatenates every row's moves and ops, ignoring comments and
// indentation, i.e. the program as it would literally execute.
func (e *Emitter) rawOps() string {
	var sb strings.Builder
	for _, r := range e.rows {
		sb.WriteString(r.moves)
		sb.WriteString(r.ops)
	}
	return sb.String()
}

// RenderMinimal strips everything but the eight Brainfuck operators, wraps
// at 80 columns, and pads the final line to a multiple of 80 characters
// (spec.md §4.2 "Minimal" mode). Delegates to pkg/bftext so the emitter and
// the test suite share one implementation of this logic.
func (e *Emitter) RenderMinimal() string {
	return bftext.Render(e.rawOps())
}

// Render renders in annotated mode if debug is true, else minimal mode
// (spec.md §4.7, §6).
func (e *Emitter) Render(debug bool) string {
	if debug {
		return e.RenderAnnotated()
	}
	return e.RenderMinimal()
}
