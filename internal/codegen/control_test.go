package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIfBeginRunsThenOnlyWhenTruthy(t *testing.T) {
	for _, cond := range []uint64{0, 1, 7} {
		gen := New()
		v := gen.NewVarInit("v", cond)
		out := gen.NewVarInit("out", 0)
		gen.IfBegin(v)
		gen.Set(out, 9)
		gen.IfEnd()
		gen.WriteOutput(out)
		want := byte(0)
		if cond != 0 {
			want = 9
		}
		assert.Equal(t, []byte{want}, run(t, gen), "cond=%d", cond)
	}
}

func TestIfElseRunsExactlyOneBranch(t *testing.T) {
	for _, cond := range []uint64{0, 1, 200} {
		gen := New()
		v := gen.NewVarInit("v", cond)
		out := gen.NewVar("out")
		gen.IfBegin(v)
		gen.Set(out, 1)
		gen.ElseBegin()
		gen.Set(out, 2)
		gen.IfEnd()
		gen.WriteOutput(out)
		want := byte(2)
		if cond != 0 {
			want = 1
		}
		assert.Equal(t, []byte{want}, run(t, gen), "cond=%d", cond)
	}
}

func TestIfConditionIsNotDisturbedByMagnitude(t *testing.T) {
	// The if-construct must normalize a condition holding a value > 1
	// exactly as if it held 1: the then-branch still runs once, not n times.
	gen := New()
	v := gen.NewVarInit("v", 250)
	counter := gen.NewVarInit("counter", 0)
	gen.IfBegin(v)
	gen.Increment(counter)
	gen.IfEnd()
	gen.WriteOutput(counter)
	assert.Equal(t, []byte{1}, run(t, gen))
}

func TestWhileLoopCountsDown(t *testing.T) {
	gen := New()
	counter := gen.NewVarInit("counter", 5)
	total := gen.NewVarInit("total", 0)
	gen.WhileBegin(counter, "count down")
	gen.Increment(total)
	gen.Decrement(counter)
	gen.WhileEnd(counter)
	gen.WriteOutput(total)
	assert.Equal(t, []byte{5}, run(t, gen))
}

func TestNestedIfInsideWhile(t *testing.T) {
	// Counts how many of 6,5,4,3,2,1 are even by toggling a parity flag each
	// iteration (decrementing by 1 always flips evenness), exercising an
	// if-construct nested inside a while loop.
	gen := New()
	counter := gen.NewVarInit("counter", 6)
	evens := gen.NewVarInit("evens", 0)
	parity := gen.NewVarInit("parity", 1) // 6 is even

	gen.WhileBegin(counter, "loop")
	gen.IfBegin(parity)
	gen.Increment(evens)
	gen.IfEnd()
	gen.Decrement(counter)
	gen.BoolNot(parity, parity)
	gen.WhileEnd(counter)

	gen.WriteOutput(evens)
	assert.Equal(t, []byte{3}, run(t, gen))
}
