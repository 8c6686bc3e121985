package bfvm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelloWorld(t *testing.T) {
	// a minimal known-good program: writes 'A' (65) then halts.
	program := strings.Repeat("+", 65) + "."
	var out bytes.Buffer
	vm := New(WithOutput(&out))
	require.NoError(t, vm.Run(program))
	assert.Equal(t, "A", out.String())
}

func TestLoopZeroesCell(t *testing.T) {
	program := strings.Repeat("+", 5) + "[-]" + "."
	var out bytes.Buffer
	vm := New(WithOutput(&out))
	require.NoError(t, vm.Run(program))
	assert.Equal(t, []byte{0}, out.Bytes())
}

func TestEchoesInput(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithInput(strings.NewReader("Z")), WithOutput(&out))
	require.NoError(t, vm.Run(",."))
	assert.Equal(t, "Z", out.String())
}

func TestEOFZeroDefault(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithInput(strings.NewReader("")), WithOutput(&out))
	require.NoError(t, vm.Run(",."))
	assert.Equal(t, []byte{0}, out.Bytes())
}

func TestEOFMinusOne(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithInput(strings.NewReader("")), WithOutput(&out), WithEOFBehavior(EOFMinusOne))
	require.NoError(t, vm.Run(",."))
	assert.Equal(t, []byte{255}, out.Bytes())
}

func TestUnmatchedBracketIsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithOutput(&out))
	err := vm.Run("[+")
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestDataPointerUnderflowIsRuntimeError(t *testing.T) {
	vm := New()
	err := vm.Run("<")
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestNonOperatorBytesAreIgnored(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithOutput(&out))
	require.NoError(t, vm.Run("hello ++ world ."))
	// the stray characters are simply skipped; only "++." runs.
	assert.Equal(t, []byte{2}, out.Bytes())
}
