// Package bfvm provides a Brainfuck interpreter used as the reference
// execution engine for generated programs (spec.md §1, §8): it is the
// external collaborator the test suite and the "run" front-end command
// drive compiled output through, not part of the compiler itself.
package bfvm

import (
	"fmt"
	"io"
	"os"
)

// RuntimeError represents an error during VM execution. Generated Brainfuck
// carries no source position of its own (that information lives upstream,
// in internal/lexer and internal/parser), so only the offending program
// counter is reported.
type RuntimeError struct {
	Msg string
	PC  int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at PC %d: %s", e.PC, e.Msg)
}

// EOFBehavior specifies how the VM handles end of input on a "," operator.
type EOFBehavior int

const (
	EOFZero     EOFBehavior = iota // set cell to 0 (default)
	EOFMinusOne                    // set cell to 255
	EOFNoChange                    // leave the cell unchanged
)

// VM executes Brainfuck program text.
type VM struct {
	tapeWidth   int
	input       io.Reader
	output      io.Writer
	eofBehavior EOFBehavior
	tape        []byte
	dp          int
	pc          int
	ioBuf       [1]byte
}

// Option is a functional option for configuring a VM.
type Option func(*VM)

// WithTapeWidth sets the tape size in cells (default 30000).
func WithTapeWidth(n int) Option {
	return func(v *VM) { v.tapeWidth = n }
}

// WithInput sets the input reader (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(v *VM) { v.input = r }
}

// WithOutput sets the output writer (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(v *VM) { v.output = w }
}

// WithEOFBehavior sets the end-of-input handling behavior (default EOFZero).
func WithEOFBehavior(b EOFBehavior) Option {
	return func(v *VM) { v.eofBehavior = b }
}

// New creates a VM with the given options.
func New(opts ...Option) *VM {
	v := &VM{
		tapeWidth:   30000,
		input:       os.Stdin,
		output:      os.Stdout,
		eofBehavior: EOFZero,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// jumpTable maps every '[' to the index of its matching ']' and back, or
// returns an error if program's brackets aren't perfectly balanced
// (spec.md Invariant 5 is supposed to guarantee this for compiler output,
// but the VM is also handed hand-written or third-party Brainfuck via the
// "run" front-end command, so it must check rather than assume).
func jumpTable(program string) (map[int]int, error) {
	jumps := make(map[int]int)
	var stack []int
	for i := 0; i < len(program); i++ {
		switch program[i] {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				return nil, &RuntimeError{Msg: "unmatched ']'", PC: i}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[open] = i
			jumps[i] = open
		}
	}
	if len(stack) > 0 {
		return nil, &RuntimeError{Msg: "unmatched '['", PC: stack[len(stack)-1]}
	}
	return jumps, nil
}

// Run executes program, a string containing only the eight Brainfuck
// operator characters (any other byte is simply skipped, so annotated or
// newline-wrapped text runs unmodified).
func (v *VM) Run(program string) error {
	jumps, err := jumpTable(program)
	if err != nil {
		return err
	}

	v.tape = make([]byte, v.tapeWidth)
	v.dp = 0
	v.pc = 0

	tape := v.tape
	width := v.tapeWidth
	n := len(program)

	for v.pc < n {
		switch program[v.pc] {
		case '>':
			v.dp++
			if v.dp >= width {
				return &RuntimeError{Msg: fmt.Sprintf("data pointer out of bounds: %d (valid range 0-%d)", v.dp, width-1), PC: v.pc}
			}
		case '<':
			v.dp--
			if v.dp < 0 {
				return &RuntimeError{Msg: fmt.Sprintf("data pointer out of bounds: %d (valid range 0-%d)", v.dp, width-1), PC: v.pc}
			}
		case '+':
			tape[v.dp]++
		case '-':
			tape[v.dp]--
		case '.':
			v.ioBuf[0] = tape[v.dp]
			if _, err := v.output.Write(v.ioBuf[:]); err != nil {
				return &RuntimeError{Msg: fmt.Sprintf("output error: %v", err), PC: v.pc}
			}
		case ',':
			nRead, err := v.input.Read(v.ioBuf[:])
			if err == io.EOF || nRead == 0 {
				switch v.eofBehavior {
				case EOFZero:
					tape[v.dp] = 0
				case EOFMinusOne:
					tape[v.dp] = 255
				case EOFNoChange:
				}
			} else if err != nil {
				return &RuntimeError{Msg: fmt.Sprintf("input error: %v", err), PC: v.pc}
			} else {
				tape[v.dp] = v.ioBuf[0]
			}
		case '[':
			if tape[v.dp] == 0 {
				v.pc = jumps[v.pc]
			}
		case ']':
			if tape[v.dp] != 0 {
				v.pc = jumps[v.pc]
			}
		}
		v.pc++
	}

	return nil
}
