package codegen

import (
	"strings"

	"github.com/golang/glog"
)

// --- primitive operations (spec.md §4.3) -----------------------------------

// Increment emits a single "+" on v's cell.
func (g *Generator) Increment(v *Var) {
	g.em.Emit(v.Addr, "+", g.comment("%s++", v.Name))
}

// Decrement emits a single "-" on v's cell.
func (g *Generator) Decrement(v *Var) {
	g.em.Emit(v.Addr, "-", g.comment("%s--", v.Name))
}

// squareDecompose emits k copies of op on v's cell: a flat run, or, once k
// exceeds the generator's squaring threshold, the shorter "p times q plus a
// remainder" decomposition rendered through the same op (spec.md §4.3). op
// must be "+" or "-".
func (g *Generator) squareDecompose(v *Var, k uint64, op string) {
	if k == 0 {
		return
	}
	if k <= g.squaringThreshold {
		g.em.Emit(v.Addr, strings.Repeat(op, int(k)), g.comment("%s %s= %d", v.Name, op, k))
		return
	}
	glog.V(1).Infof("codegen: squaring decomposition for %s (k=%d, threshold=%d)", v.Name, k, g.squaringThreshold)
	q := isqrt(k)
	p := k / q
	r := k % q
	scratch := g.newScratch()
	g.Set(scratch, p)
	g.WhileBegin(scratch, "squaring loop")
	g.em.Emit(v.Addr, strings.Repeat(op, int(q)), g.comment("%s %s= %d (squared block)", v.Name, op, q))
	g.Decrement(scratch)
	g.WhileEnd(scratch)
	g.Release(scratch)
	if r > 0 {
		g.em.Emit(v.Addr, strings.Repeat(op, int(r)), g.comment("%s %s= %d (remainder)", v.Name, op, r))
	}
}

func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := n
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// Set drives v's cell to exactly k: zero it, then add k (spec.md §4.3).
func (g *Generator) Set(v *Var, k uint64) {
	g.em.Emit(v.Addr, "[-]", g.comment("%s = 0", v.Name))
	g.squareDecompose(v, k, "+")
}

// Add adds the constant k to v's cell.
func (g *Generator) Add(v *Var, k uint64) {
	g.squareDecompose(v, k, "+")
}

// Subtract subtracts the constant k from v's cell.
func (g *Generator) Subtract(v *Var, k uint64) {
	g.squareDecompose(v, k, "-")
}

// ReadInput reads one byte of program input into v's cell.
func (g *Generator) ReadInput(v *Var) {
	g.em.Emit(v.Addr, ",", g.comment("read %s", v.Name))
}

// WriteOutput writes v's cell as one byte of program output.
func (g *Generator) WriteOutput(v *Var) {
	g.em.Emit(v.Addr, ".", g.comment("write %s", v.Name))
}

// --- compound operations (spec.md §4.3) ------------------------------------

// Move sets dst to src's value and drains src to 0. dst and src must not be
// the same cell: moving a cell into itself would observe its own drain and
// always yield 0, which is never the intended effect of any lowering rule,
// so this logs at warning level and is a no-op in that case.
func (g *Generator) Move(dst, src *Var) {
	if dst.Addr == src.Addr {
		glog.Warningf("codegen: Move(%s, %s) with equal addresses, ignoring", dst.Name, src.Name)
		return
	}
	g.Set(dst, 0)
	g.WhileBegin(src, "move")
	g.Increment(dst)
	g.Decrement(src)
	g.WhileEnd(src)
}

// moveToBoth drains src into both dst1 and dst2, leaving src at 0. It is the
// shared primitive copy_to is built from: copy = move_to_both(target,
// scratch) followed by restoring src from the scratch.
func (g *Generator) moveToBoth(dst1, dst2, src *Var) {
	g.WhileBegin(src, "move to both")
	g.Increment(dst1)
	g.Increment(dst2)
	g.Decrement(src)
	g.WhileEnd(src)
}

// Copy sets dst to src's value without disturbing src: drain src into both
// dst and a scratch cell via moveToBoth, then move the scratch back into
// src. Copy(v, v) is special-cased to emit nothing at all, so copying a
// cell onto itself is indistinguishable from omitting the copy.
func (g *Generator) Copy(dst, src *Var) {
	if dst.Addr == src.Addr {
		return
	}
	scratch := g.newScratch()
	g.Set(dst, 0)
	g.moveToBoth(dst, scratch, src)
	g.Move(src, scratch)
	g.Release(scratch)
}

// AddVar adds src's value into dst without disturbing src. If dst and src
// are the same cell, the addend is read from a preserved copy first so the
// self-addition doesn't grow unboundedly against its own moving target.
func (g *Generator) AddVar(dst, src *Var) {
	if dst.Addr == src.Addr {
		addend := g.newScratch()
		g.Copy(addend, src)
		g.addDistinct(dst, addend)
		g.Release(addend)
		return
	}
	g.addDistinct(dst, src)
}

// addDistinct assumes dst and src are different cells.
func (g *Generator) addDistinct(dst, src *Var) {
	scratch := g.newScratch()
	g.WhileBegin(src, "add")
	g.Increment(dst)
	g.Increment(scratch)
	g.Decrement(src)
	g.WhileEnd(src)
	g.Move(src, scratch)
	g.Release(scratch)
}

// SubtractVar subtracts src's value from dst without disturbing src, with
// the same self-aliasing treatment as AddVar.
func (g *Generator) SubtractVar(dst, src *Var) {
	if dst.Addr == src.Addr {
		subtrahend := g.newScratch()
		g.Copy(subtrahend, src)
		g.subtractDistinct(dst, subtrahend)
		g.Release(subtrahend)
		return
	}
	g.subtractDistinct(dst, src)
}

func (g *Generator) subtractDistinct(dst, src *Var) {
	scratch := g.newScratch()
	g.WhileBegin(src, "subtract")
	g.Decrement(dst)
	g.Increment(scratch)
	g.Decrement(src)
	g.WhileEnd(src)
	g.Move(src, scratch)
	g.Release(scratch)
}

// Multiply multiplies dst by src's value without disturbing src: copy dst's
// original value to a count scratch, zero dst, then add src into dst count
// times. If src is dst itself, a second scratch preserves the original
// value so the repeated add doesn't read a growing target.
func (g *Generator) Multiply(dst, src *Var) {
	count := g.newScratch()
	g.Copy(count, dst)

	if dst.Addr == src.Addr {
		addend := g.newScratch()
		g.Copy(addend, dst)
		g.Set(dst, 0)
		g.WhileBegin(count, "multiply (self)")
		g.AddVar(dst, addend)
		g.Decrement(count)
		g.WhileEnd(count)
		g.Release(addend)
		g.Release(count)
		return
	}

	g.Set(dst, 0)
	g.WhileBegin(count, "multiply")
	g.AddVar(dst, src)
	g.Decrement(count)
	g.WhileEnd(count)
	g.Release(count)
}
