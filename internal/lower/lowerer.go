package lower

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gobrainfuck/bfgen/internal/ast"
	"github.com/gobrainfuck/bfgen/internal/codegen"
	"github.com/gobrainfuck/bfgen/internal/lexer"
)

// Lowerer drives codegen.Generator over a parsed Program. Create one with
// New, then call LowerProgram once.
type Lowerer struct {
	gen       *codegen.Generator
	functions map[string]*ast.Function
	callStack map[string]bool
	returns   []*codegen.Var // stack of the current call's return-value cell
	anonSeq   int
}

// New validates prog's function table (no duplicate names) and returns a
// Lowerer ready to lower it through gen.
func New(gen *codegen.Generator, prog *ast.Program) (*Lowerer, error) {
	fns := make(map[string]*ast.Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		if _, dup := fns[fn.Name]; dup {
			return nil, &DuplicateFunctionError{Name: fn.Name, Pos: fn.Pos}
		}
		fns[fn.Name] = fn
	}
	return &Lowerer{gen: gen, functions: fns, callStack: make(map[string]bool)}, nil
}

// LowerProgram resolves "main" and lowers the whole program by inlining a
// synthetic, argument-less call to it, returning the cell holding main's
// return value (spec.md §4.7).
func (l *Lowerer) LowerProgram() (*codegen.Var, error) {
	main, ok := l.functions["main"]
	if !ok {
		return nil, &MissingMainError{}
	}
	return l.lowerCall(main.Name, nil, nil, main.Pos)
}

func (l *Lowerer) anonName(prefix string) string {
	l.anonSeq++
	return fmt.Sprintf("$%s%d", prefix, l.anonSeq)
}

// lowerCall evaluates argExprs in callerScope (nil callerScope is only used
// for the synthetic main entry call, which takes no arguments), binds them
// by name into a fresh single-frame scope for the callee (no parent: the
// callee sees only its own parameters and locals, never the caller's), and
// lowers its body, returning the callee's return-value cell. The caller
// owns that cell and must release it once done.
//
// Every statement in the callee's body is lowered, including any that
// follow a return statement: this compiler has no control-flow jump, so
// "return" only overwrites the return-value cell, it does not skip the
// remainder of the body. A surface program relying on early return to skip
// side effects will observe those side effects anyway; this is a deliberate
// limitation of whole-body inlining, not an oversight.
func (l *Lowerer) lowerCall(name string, argExprs []ast.Expression, callerScope *scope, pos lexer.Position) (*codegen.Var, error) {
	fn, ok := l.functions[name]
	if !ok {
		return nil, &UndefinedFunctionError{Name: name, Pos: pos}
	}
	if len(argExprs) != len(fn.Params) {
		return nil, &ArityError{Name: name, Want: len(fn.Params), Got: len(argExprs), Pos: pos}
	}
	if l.callStack[name] {
		return nil, &RecursionError{Name: name, Pos: pos}
	}

	argVars := make([]*codegen.Var, len(argExprs))
	for i, argExpr := range argExprs {
		v, err := l.lowerExpr(callerScope, argExpr)
		if err != nil {
			return nil, err
		}
		argVars[i] = v
	}

	callee := newScope(nil)
	for i, pname := range fn.Params {
		bound := l.gen.NewVar(pname)
		l.gen.Move(bound, argVars[i])
		l.gen.Release(argVars[i])
		callee.declare(pname, bound)
	}

	l.callStack[name] = true
	retVar := l.gen.NewVar(l.anonName("ret:" + name))
	l.returns = append(l.returns, retVar)

	for _, stmt := range fn.Body {
		if err := l.lowerStmt(callee, stmt); err != nil {
			delete(l.callStack, name)
			l.returns = l.returns[:len(l.returns)-1]
			return nil, errors.Wrapf(err, "lowering call to %q", name)
		}
	}

	delete(l.callStack, name)
	l.returns = l.returns[:len(l.returns)-1]
	return retVar, nil
}

func (l *Lowerer) currentReturn() *codegen.Var {
	return l.returns[len(l.returns)-1]
}
