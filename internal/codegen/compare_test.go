package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolNot(t *testing.T) {
	for _, tc := range []struct {
		in, want uint64
	}{{0, 1}, {1, 0}, {5, 0}} {
		gen := New()
		v := gen.NewVarInit("v", tc.in)
		gen.BoolNot(v, v)
		gen.WriteOutput(v)
		assert.Equal(t, []byte{byte(tc.want)}, run(t, gen), "BoolNot(%d)", tc.in)
	}
}

func TestBoolAnd(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 1}, {3, 5, 1},
	}
	for _, tc := range cases {
		gen := New()
		a := gen.NewVarInit("a", tc.a)
		b := gen.NewVarInit("b", tc.b)
		dst := gen.NewVar("dst")
		gen.BoolAnd(dst, a, b)
		gen.WriteOutput(dst)
		gen.WriteOutput(a)
		gen.WriteOutput(b)
		got := run(t, gen)
		assert.Equal(t, []byte{byte(tc.want), byte(tc.a), byte(tc.b)}, got, "BoolAnd(%d,%d)", tc.a, tc.b)
	}
}

func TestBoolOr(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{0, 0, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}, {3, 0, 1},
	}
	for _, tc := range cases {
		gen := New()
		a := gen.NewVarInit("a", tc.a)
		b := gen.NewVarInit("b", tc.b)
		dst := gen.NewVar("dst")
		gen.BoolOr(dst, a, b)
		gen.WriteOutput(dst)
		got := run(t, gen)
		assert.Equal(t, []byte{byte(tc.want)}, got, "BoolOr(%d,%d)", tc.a, tc.b)
	}
}

func TestLowerThan(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{2, 5, 1}, {5, 2, 0}, {5, 5, 0}, {0, 1, 1}, {1, 0, 0},
	}
	for _, tc := range cases {
		gen := New()
		a := gen.NewVarInit("a", tc.a)
		b := gen.NewVarInit("b", tc.b)
		dst := gen.NewVar("dst")
		gen.LowerThan(dst, a, b)
		gen.WriteOutput(dst)
		gen.WriteOutput(a)
		gen.WriteOutput(b)
		got := run(t, gen)
		assert.Equal(t, []byte{byte(tc.want), byte(tc.a), byte(tc.b)}, got, "LowerThan(%d,%d)", tc.a, tc.b)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{5, 5, 1}, {5, 6, 0}, {0, 0, 1}, {6, 5, 0},
	}
	for _, tc := range cases {
		gen := New()
		a := gen.NewVarInit("a", tc.a)
		b := gen.NewVarInit("b", tc.b)
		dst := gen.NewVar("dst")
		gen.Equal(dst, a, b)
		gen.WriteOutput(dst)
		got := run(t, gen)
		assert.Equal(t, []byte{byte(tc.want)}, got, "Equal(%d,%d)", tc.a, tc.b)
	}
}

func TestLowerThanSelfIsAlwaysFalse(t *testing.T) {
	gen := New()
	a := gen.NewVarInit("a", 9)
	dst := gen.NewVar("dst")
	gen.LowerThan(dst, a, a)
	gen.WriteOutput(dst)
	assert.Equal(t, []byte{0}, run(t, gen))
}

func TestLowerEqualGreaterThanGreaterEqualNotEqual(t *testing.T) {
	type result struct{ leq, gt, geq, neq uint64 }
	cases := []struct {
		a, b uint64
		want result
	}{
		{3, 5, result{1, 0, 0, 1}},
		{5, 3, result{0, 1, 1, 1}},
		{4, 4, result{1, 0, 1, 0}},
	}
	for _, tc := range cases {
		gen := New()
		a := gen.NewVarInit("a", tc.a)
		b := gen.NewVarInit("b", tc.b)

		leq := gen.NewVar("leq")
		gen.LowerEqual(leq, a, b)
		gt := gen.NewVar("gt")
		gen.GreaterThan(gt, a, b)
		geq := gen.NewVar("geq")
		gen.GreaterEqual(geq, a, b)
		neq := gen.NewVar("neq")
		gen.NotEqual(neq, a, b)

		gen.WriteOutput(leq)
		gen.WriteOutput(gt)
		gen.WriteOutput(geq)
		gen.WriteOutput(neq)
		gen.WriteOutput(a)
		gen.WriteOutput(b)

		got := run(t, gen)
		want := []byte{byte(tc.want.leq), byte(tc.want.gt), byte(tc.want.geq), byte(tc.want.neq), byte(tc.a), byte(tc.b)}
		assert.Equal(t, want, got, "a=%d b=%d", tc.a, tc.b)
	}
}
