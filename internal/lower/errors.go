// Package lower implements the expression and statement lowerer (spec.md
// §4.5-§4.6): it walks the AST and drives internal/codegen to emit
// Brainfuck, maintaining a scope chain of surface-language variable names
// to tape handles and a call stack that forbids recursion by fully inlining
// every call.
package lower

import (
	"fmt"

	"github.com/gobrainfuck/bfgen/internal/lexer"
)

// DuplicateFunctionError reports two functions sharing a name.
type DuplicateFunctionError struct {
	Name string
	Pos  lexer.Position
}

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("duplicate function %q at %s", e.Name, e.Pos)
}

// MissingMainError reports a program with no "main" function.
type MissingMainError struct{}

func (e *MissingMainError) Error() string { return "no function named \"main\"" }

// UndefinedFunctionError reports a call to a function that was never
// declared.
type UndefinedFunctionError struct {
	Name string
	Pos  lexer.Position
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function %q at %s", e.Name, e.Pos)
}

// ArityError reports a call whose argument count doesn't match the callee's
// parameter count.
type ArityError struct {
	Name string
	Want int
	Got  int
	Pos  lexer.Position
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("function %q wants %d argument(s), got %d at %s", e.Name, e.Want, e.Got, e.Pos)
}

// RecursionError reports a call cycle: a function calling itself, directly
// or transitively, which this compiler forbids outright (spec.md §4.6).
type RecursionError struct {
	Name string
	Pos  lexer.Position
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursive call to %q at %s (recursion is not supported)", e.Name, e.Pos)
}

// UndeclaredVariableError reports a reference to a name with no declaration
// visible in scope.
type UndeclaredVariableError struct {
	Name string
	Pos  lexer.Position
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable %q at %s", e.Name, e.Pos)
}

// RedeclaredVariableError reports a variable name declared more than once
// within the same function activation, including across nested blocks: each
// surface name is bound to exactly one tape cell for the activation's
// lifetime, so there is no shadowing to fall back on.
type RedeclaredVariableError struct {
	Name string
	Pos  lexer.Position
}

func (e *RedeclaredVariableError) Error() string {
	return fmt.Sprintf("variable %q already declared in this function at %s", e.Name, e.Pos)
}
