package codegen

// BoolNot sets dst to the logical negation of src (1 if src's cell is 0,
// else 0), without disturbing src. Built from the generator's own IfBegin:
// set a private cell to 1, then visit it down to 0 if a preserved copy of
// src is found nonzero (spec.md §4.3's bool_not, realized through the
// control construct in §4.4 rather than a literal bracket pattern, which
// the two give the same functional contract).
func (g *Generator) BoolNot(dst, src *Var) {
	copyOfSrc := g.newScratch()
	g.Copy(copyOfSrc, src)

	result := g.newScratch()
	g.Set(result, 1)
	g.IfBegin(copyOfSrc)
	g.Set(result, 0)
	g.IfEnd()

	g.Move(dst, result)
	g.Release(copyOfSrc)
	g.Release(result)
}

// boolNormalize sets dst to 1 if v's cell is nonzero, else 0, without
// disturbing v. Shared by BoolAnd/BoolOr and the comparison family below.
func (g *Generator) boolNormalize(dst, v *Var) {
	copyOfV := g.newScratch()
	g.Copy(copyOfV, v)
	g.Set(dst, 0)
	g.IfBegin(copyOfV)
	g.Set(dst, 1)
	g.IfEnd()
	g.Release(copyOfV)
}

// BoolAnd sets dst to 1 if both a and b's cells are nonzero, else 0,
// without disturbing a or b.
func (g *Generator) BoolAnd(dst, a, b *Var) {
	na, nb := g.newScratch(), g.newScratch()
	g.boolNormalize(na, a)
	g.boolNormalize(nb, b)

	g.Set(dst, 0)
	g.IfBegin(na)
	g.IfBegin(nb)
	g.Set(dst, 1)
	g.IfEnd()
	g.IfEnd()

	g.releaseAll(na, nb)
}

// BoolOr sets dst to 1 if either a or b's cell is nonzero, else 0, without
// disturbing a or b. Implemented via De Morgan (!(!a && !b)) rather than a
// third raw bracket pattern: the original generator this module is modeled
// on left bool_or unimplemented; its own negate and bool_and are enough to
// build it.
func (g *Generator) BoolOr(dst, a, b *Var) {
	na, nb := g.newScratch(), g.newScratch()
	g.BoolNot(na, a)
	g.BoolNot(nb, b)

	nandResult := g.newScratch()
	g.BoolAnd(nandResult, na, nb)
	g.BoolNot(dst, nandResult)

	g.releaseAll(na, nb, nandResult)
}

// compareCore runs the bounded-subtraction comparison loop shared by
// LowerThan and Equal: decrement preserved copies of a and b in lockstep
// until one reaches 0, forcing early termination (and recording it in
// forced) the first time b reaches 0 while a still has iterations left.
// After the loop:
//   - b != 0            => a0 < b0
//   - b == 0 && !forced => a0 == b0
//   - b == 0 && forced  => a0 > b0
//
// This realizes the same "a < b" / "a == b" contract spec.md §4.3 describes
// via a cited fixed-layout bracket pattern, but built entirely from this
// package's own primitives, so its pointer bookkeeping is exactly as
// trustworthy as every other operation in this file (spec.md explicitly
// allows substituting any pattern with the same functional contract for
// this family).
func (g *Generator) compareCore(a0, b0 *Var) (bFinal, forced *Var) {
	a := g.newScratch()
	b := g.newScratch()
	g.Copy(a, a0)
	g.Copy(b, b0)
	forced = g.newScratch()

	g.WhileBegin(a, "compare")
	g.IfBegin(b)
	g.Decrement(a)
	g.Decrement(b)
	g.ElseBegin()
	g.Set(forced, 1)
	g.Set(a, 0)
	g.IfEnd()
	g.WhileEnd(a)

	g.Release(a)
	return b, forced
}

// LowerThan sets dst to 1 if a0 < b0, else 0, without disturbing a0 or b0.
func (g *Generator) LowerThan(dst, a0, b0 *Var) {
	b, forced := g.compareCore(a0, b0)
	g.boolNormalize(dst, b)
	g.releaseAll(b, forced)
}

// Equal sets dst to 1 if a0 == b0, else 0, without disturbing a0 or b0.
func (g *Generator) Equal(dst, a0, b0 *Var) {
	b, forced := g.compareCore(a0, b0)
	isLower := g.newScratch()
	g.boolNormalize(isLower, b)
	isForced := g.newScratch()
	g.boolNormalize(isForced, forced)

	g.Set(dst, 1)
	g.IfBegin(isLower)
	g.Set(dst, 0)
	g.IfEnd()
	g.IfBegin(isForced)
	g.Set(dst, 0)
	g.IfEnd()

	g.releaseAll(b, forced, isLower, isForced)
}

// LowerEqual sets dst to 1 if a0 <= b0, else 0: a0 <= b0 iff !(b0 < a0).
func (g *Generator) LowerEqual(dst, a0, b0 *Var) {
	gt := g.newScratch()
	g.LowerThan(gt, b0, a0)
	g.BoolNot(dst, gt)
	g.Release(gt)
}

// GreaterThan sets dst to 1 if a0 > b0, else 0: a0 > b0 iff b0 < a0.
func (g *Generator) GreaterThan(dst, a0, b0 *Var) {
	g.LowerThan(dst, b0, a0)
}

// GreaterEqual sets dst to 1 if a0 >= b0, else 0: a0 >= b0 iff !(a0 < b0).
func (g *Generator) GreaterEqual(dst, a0, b0 *Var) {
	lt := g.newScratch()
	g.LowerThan(lt, a0, b0)
	g.BoolNot(dst, lt)
	g.Release(lt)
}

// NotEqual sets dst to 1 if a0 != b0, else 0.
func (g *Generator) NotEqual(dst, a0, b0 *Var) {
	eq := g.newScratch()
	g.Equal(eq, a0, b0)
	g.BoolNot(dst, eq)
	g.Release(eq)
}
