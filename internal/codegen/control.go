package codegen

// ifFrame tracks one open if/else construct's private cells and which
// bracket (then or else) is currently open, so IfEnd knows which flag to
// zero before closing (spec.md §4.4).
type ifFrame struct {
	thenFlag *Var
	elseFlag *Var
	active   *Var // the flag whose bracket is currently open
}

// WhileBegin opens a while loop keyed on cond: emits "[" at cond's cell and
// raises the indentation level. The loop body is expected to leave cond's
// value such that the loop terminates (spec.md §4.4).
func (g *Generator) WhileBegin(cond *Var, comment string) {
	g.em.Emit(cond.Addr, "[", g.comment("while %s: %s", cond.Name, comment))
	g.em.Indent()
}

// WhileEnd closes the innermost while loop keyed on cond: emits "]" at
// cond's cell and lowers the indentation level.
func (g *Generator) WhileEnd(cond *Var) {
	g.em.Dedent()
	g.em.Emit(cond.Addr, "]", g.comment("end while %s", cond.Name))
}

// IfBegin opens an if construct on v. It allocates a private copy of v and a
// then/else flag pair, normalizes the copy to a single-shot guard so the
// then-branch runs at most once regardless of v's magnitude, and opens "["
// on the then-flag.
//
// The then-flag starts at 0 and the else-flag starts at 1; the
// normalization pass flips both together the first (and only) time the
// copy is found nonzero, which makes the else-flag exactly the complement
// of "v was truthy" for free, without a second pass over v.
func (g *Generator) IfBegin(v *Var) {
	cells := g.newScratchRun(3)
	thenFlag, elseFlag, copyOfV := cells[0], cells[1], cells[2]
	g.Set(elseFlag, 1)
	g.Copy(copyOfV, v)

	g.WhileBegin(copyOfV, "normalize if-condition")
	g.Set(thenFlag, 1)
	g.Set(elseFlag, 0)
	g.Set(copyOfV, 0)
	g.WhileEnd(copyOfV)
	g.Release(copyOfV)

	g.frames = append(g.frames, &ifFrame{thenFlag: thenFlag, elseFlag: elseFlag, active: thenFlag})
	g.em.Emit(thenFlag.Addr, "[", g.comment("if %s", v.Name))
	g.em.Indent()
}

// ElseBegin closes the then-branch and opens the else-branch of the
// innermost open if construct. Panics if there is no open if frame, which
// would be an internal consistency failure in the lowerer, not a surface
// program error.
func (g *Generator) ElseBegin() {
	f := g.topFrame()
	g.Set(f.thenFlag, 0)
	g.em.Dedent()
	g.em.Emit(f.thenFlag.Addr, "]", "end if, begin else")
	f.active = f.elseFlag
	g.em.Emit(f.elseFlag.Addr, "[", "else")
	g.em.Indent()
}

// IfEnd closes the innermost open if/else construct, zeroing whichever flag
// is currently active before emitting the closing bracket, and releases its
// private cells.
func (g *Generator) IfEnd() {
	f := g.topFrame()
	g.Set(f.active, 0)
	g.em.Dedent()
	g.em.Emit(f.active.Addr, "]", "end if")
	g.releaseAll(f.thenFlag, f.elseFlag)
	g.frames = g.frames[:len(g.frames)-1]
}

func (g *Generator) topFrame() *ifFrame {
	if len(g.frames) == 0 {
		panic("codegen: IfEnd/ElseBegin with no open if frame")
	}
	return g.frames[len(g.frames)-1]
}
