package codegen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gobrainfuck/bfgen/internal/bfvm"
)

// run executes everything gen has emitted so far through the reference
// interpreter and returns its output bytes. Every test in this package
// verifies generated Brainfuck by actually running it; TestCopySelfIsNoOp
// additionally compares the length of the emitted text.
func run(t *testing.T, gen *Generator) []byte {
	t.Helper()
	var out bytes.Buffer
	vm := bfvm.New(bfvm.WithOutput(&out), bfvm.WithTapeWidth(2000))
	require.NoError(t, vm.Run(gen.Emitter().RenderMinimal()))
	return out.Bytes()
}
