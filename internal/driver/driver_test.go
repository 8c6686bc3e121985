package driver_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobrainfuck/bfgen/internal/bfvm"
	"github.com/gobrainfuck/bfgen/internal/driver"
	"github.com/gobrainfuck/bfgen/internal/lower"
	"github.com/gobrainfuck/bfgen/internal/parser"
	"github.com/gobrainfuck/bfgen/pkg/bftext"
)

// compileAndRun compiles src and feeds the result through the reference
// interpreter, optionally supplying stdin as input, and returns the bytes
// the program wrote.
func compileAndRun(t *testing.T, src string, input string) []byte {
	t.Helper()
	text, err := driver.Compile([]byte(src))
	require.NoError(t, err)
	require.True(t, bftext.CharsetOnly(text), "rendered text must contain only brainfuck operators and newlines")
	require.True(t, bftext.BalancedBrackets(bftext.Strip(text)), "rendered text must have balanced brackets")

	var out bytes.Buffer
	vm := bfvm.New(bfvm.WithInput(strings.NewReader(input)), bfvm.WithOutput(&out), bfvm.WithTapeWidth(4000))
	require.NoError(t, vm.Run(text))
	return out.Bytes()
}

func TestHelloWorld(t *testing.T) {
	src := `
function main() {
	print "Hi";
	return 0;
}
`
	assert.Equal(t, "Hi", string(compileAndRun(t, src, "")))
}

func TestScanAndPrintArithmetic(t *testing.T) {
	src := `
function main() {
	var x;
	scan x;
	var y = x + 1;
	print y;
	return 0;
}
`
	out := compileAndRun(t, src, string([]byte{10}))
	assert.Equal(t, []byte{11}, out)
}

func TestArithmeticExpressionPrecedence(t *testing.T) {
	src := `
function main() {
	var x = 2 + 3 * 4;
	print x;
	return 0;
}
`
	// * binds tighter than +: 2 + (3*4) = 14
	assert.Equal(t, []byte{14}, compileAndRun(t, src, ""))
}

func TestFourConstantExpressionPrinting(t *testing.T) {
	src := `
function main() {
	print 65;
	print 66;
	print 67;
	print 68;
	return 0;
}
`
	assert.Equal(t, "ABCD", string(compileAndRun(t, src, "")))
}

func TestGCDBySubtraction(t *testing.T) {
	src := `
function gcd(a, b) {
	while (a != b) {
		if (a > b) {
			a = a - b;
		} else {
			b = b - a;
		}
	}
	return a;
}

function main() {
	var x;
	var y;
	scan x;
	scan y;
	var result = gcd(x, y);
	print result;
	return 0;
}
`
	cases := []struct {
		a, b, want byte
	}{
		{48, 18, 6},
		{17, 5, 1},
		{100, 75, 25},
	}
	for _, tc := range cases {
		out := compileAndRun(t, src, string([]byte{tc.a, tc.b}))
		assert.Equal(t, []byte{tc.want}, out, "gcd(%d,%d)", tc.a, tc.b)
	}
}

func TestLiteralRHSBooleanIdentitiesPassRawLHSThrough(t *testing.T) {
	// x || 0 = x and x && k(k!=0) = x must pass the raw, unnormalized value
	// through rather than collapsing it to a 0/1 boolean.
	src := `
function main() {
	var x = 5;
	print x || 0;
	var y = 5;
	print y && 3;
	return 0;
}
`
	assert.Equal(t, []byte{5, 5}, compileAndRun(t, src, ""))
}

func TestForLoopPrintsRepeatedCharacter(t *testing.T) {
	src := `
function main() {
	for (var i = 0; i < 5; i = i + 1) {
		print 120;
	}
	return 0;
}
`
	assert.Equal(t, "xxxxx", string(compileAndRun(t, src, "")))
}

// --- negative scenarios (spec.md §8) ---------------------------------------

func TestDuplicateFunctionNameIsCompileError(t *testing.T) {
	src := `
function main() { return 0; }
function main() { return 1; }
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var dupErr *lower.DuplicateFunctionError
	require.ErrorAs(t, err, &dupErr)
}

func TestMissingMainIsCompileError(t *testing.T) {
	src := `
function notMain() { return 0; }
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var missingErr *lower.MissingMainError
	require.ErrorAs(t, err, &missingErr)
}

func TestUndeclaredVariableIsCompileError(t *testing.T) {
	src := `
function main() {
	print y;
	return 0;
}
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var undeclErr *lower.UndeclaredVariableError
	require.ErrorAs(t, err, &undeclErr)
}

func TestCallCycleIsCompileError(t *testing.T) {
	src := `
function a() { return b(); }
function b() { return a(); }
function main() { return a(); }
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var recErr *lower.RecursionError
	require.ErrorAs(t, err, &recErr)
}

func TestBlockLocalRedeclarationIsCompileError(t *testing.T) {
	src := `
function main() {
	var x = 1;
	{
		var x = 2;
	}
	return 0;
}
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var redeclErr *lower.RedeclaredVariableError
	require.ErrorAs(t, err, &redeclErr)
}

func TestUnknownEscapeInTextLiteralIsCompileError(t *testing.T) {
	src := `
function main() {
	print "\q";
	return 0;
}
`
	_, err := driver.Compile([]byte(src))
	require.Error(t, err)
	var encErr *parser.EncodingError
	require.ErrorAs(t, err, &encErr)
}
