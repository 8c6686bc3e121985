package lower

import (
	"github.com/gobrainfuck/bfgen/internal/ast"
	"github.com/gobrainfuck/bfgen/internal/codegen"
)

// lowerStmt lowers a single statement in scope. Errors abort immediately
// (a lowering failure is a compile-time diagnostic, unlike a surface-level
// return statement, which never skips remaining statements — see lowerCall).
func (l *Lowerer) lowerStmt(scope *scope, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		child := newScope(scope)
		for _, inner := range s.Stmts {
			if err := l.lowerStmt(child, inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.VarDecl:
		return l.lowerVarDecl(scope, s)

	case *ast.Assign:
		target, ok := scope.resolve(s.Name)
		if !ok {
			return &UndeclaredVariableError{Name: s.Name, Pos: s.Pos}
		}
		val, err := l.lowerExpr(scope, s.Expr)
		if err != nil {
			return err
		}
		l.gen.Move(target, val)
		l.gen.Release(val)
		return nil

	case *ast.PrintExpr:
		val, err := l.lowerExpr(scope, s.Expr)
		if err != nil {
			return err
		}
		l.gen.WriteOutput(val)
		l.gen.Release(val)
		return nil

	case *ast.PrintText:
		return l.lowerPrintText(s)

	case *ast.Scan:
		target, ok := scope.resolve(s.Name)
		if !ok {
			return &UndeclaredVariableError{Name: s.Name, Pos: s.Pos}
		}
		l.gen.ReadInput(target)
		return nil

	case *ast.Return:
		val, err := l.lowerExpr(scope, s.Expr)
		if err != nil {
			return err
		}
		l.gen.Move(l.currentReturn(), val)
		l.gen.Release(val)
		return nil

	case *ast.CallStmt:
		ret, err := l.lowerCall(s.FunctionName, s.Args, scope, s.Pos)
		if err != nil {
			return err
		}
		l.gen.Release(ret)
		return nil

	case *ast.If:
		return l.lowerIf(scope, s)

	case *ast.While:
		return l.lowerWhile(scope, s)

	case *ast.For:
		return l.lowerFor(scope, s)
	}
	panic("lower: unhandled statement type")
}

func (l *Lowerer) lowerVarDecl(scope *scope, s *ast.VarDecl) error {
	if s.Init == nil {
		v := l.gen.NewVar(s.Name)
		if !scope.declare(s.Name, v) {
			return &RedeclaredVariableError{Name: s.Name, Pos: s.Pos}
		}
		return nil
	}
	val, err := l.lowerExpr(scope, s.Init)
	if err != nil {
		return err
	}
	v := l.gen.NewVar(s.Name)
	l.gen.Move(v, val)
	l.gen.Release(val)
	if !scope.declare(s.Name, v) {
		return &RedeclaredVariableError{Name: s.Name, Pos: s.Pos}
	}
	return nil
}

func (l *Lowerer) lowerPrintText(s *ast.PrintText) error {
	if len(s.Text) == 0 {
		return nil
	}
	cell := l.gen.NewVar(l.anonName("text"))
	for i := 0; i < len(s.Text); i++ {
		l.gen.Set(cell, uint64(s.Text[i]))
		l.gen.WriteOutput(cell)
	}
	l.gen.Release(cell)
	return nil
}

func (l *Lowerer) lowerIf(scope *scope, s *ast.If) error {
	cond, err := l.lowerExpr(scope, s.Cond)
	if err != nil {
		return err
	}
	l.gen.IfBegin(cond)
	l.gen.Release(cond) // IfBegin already captured a private copy of cond's value

	thenScope := newScope(scope)
	if err := l.lowerStmt(thenScope, s.Then); err != nil {
		return err
	}

	if s.Else != nil {
		l.gen.ElseBegin()
		elseScope := newScope(scope)
		if err := l.lowerStmt(elseScope, s.Else); err != nil {
			return err
		}
	}

	l.gen.IfEnd()
	return nil
}

func (l *Lowerer) lowerWhile(scope *scope, s *ast.While) error {
	cond, err := l.lowerExpr(scope, s.Cond)
	if err != nil {
		return err
	}
	l.gen.WhileBegin(cond, "while")

	bodyScope := newScope(scope)
	if err := l.lowerStmt(bodyScope, s.Body); err != nil {
		return err
	}

	fresh, err := l.lowerExpr(scope, s.Cond)
	if err != nil {
		return err
	}
	l.gen.Move(cond, fresh)
	l.gen.Release(fresh)

	l.gen.WhileEnd(cond)
	l.gen.Release(cond)
	return nil
}

func (l *Lowerer) lowerFor(scope *scope, s *ast.For) error {
	loopScope := newScope(scope)
	if s.Init != nil {
		if err := l.lowerStmt(loopScope, s.Init); err != nil {
			return err
		}
	}

	evalCond := func() (*codegen.Var, error) {
		if s.Cond == nil {
			return l.gen.NewVarInit(l.anonName("true"), 1), nil
		}
		return l.lowerExpr(loopScope, s.Cond)
	}

	cond, err := evalCond()
	if err != nil {
		return err
	}
	l.gen.WhileBegin(cond, "for")

	bodyScope := newScope(loopScope)
	if err := l.lowerStmt(bodyScope, s.Body); err != nil {
		return err
	}
	if s.Post != nil {
		if err := l.lowerStmt(loopScope, s.Post); err != nil {
			return err
		}
	}

	fresh, err := evalCond()
	if err != nil {
		return err
	}
	l.gen.Move(cond, fresh)
	l.gen.Release(fresh)

	l.gen.WhileEnd(cond)
	l.gen.Release(cond)
	return nil
}
