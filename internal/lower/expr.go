package lower

import (
	"github.com/gobrainfuck/bfgen/internal/ast"
	"github.com/gobrainfuck/bfgen/internal/codegen"
)

// lowerExpr evaluates expr in scope and returns a fresh tape cell holding
// its value. The caller owns the returned Var and must release it once
// done; lowerExpr never returns a direct handle to a named variable, so
// evaluating an expression never mutates anything the surface program can
// see (spec.md §4.5).
func (l *Lowerer) lowerExpr(scope *scope, expr ast.Expression) (*codegen.Var, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return l.gen.NewVarInit(l.anonName("lit"), e.Value), nil

	case *ast.VarRef:
		src, ok := scope.resolve(e.Name)
		if !ok {
			return nil, &UndeclaredVariableError{Name: e.Name, Pos: e.Pos}
		}
		tmp := l.gen.NewVar(l.anonName("ref"))
		l.gen.Copy(tmp, src)
		return tmp, nil

	case *ast.Call:
		return l.lowerCall(e.FunctionName, e.Args, scope, e.Pos)

	case *ast.Paren:
		return l.lowerExpr(scope, e.Inner)

	case *ast.Unary:
		operand, err := l.lowerExpr(scope, e.Expr)
		if err != nil {
			return nil, err
		}
		// e.Op is always Not: it is the only UnaryOp the grammar produces.
		l.gen.BoolNot(operand, operand)
		return operand, nil

	case *ast.Binary:
		return l.lowerBinary(scope, e)
	}
	panic("lower: unhandled expression type")
}

// literalValue unwraps parens around a literal and reports whether expr is,
// underneath them, an integer literal.
func literalValue(expr ast.Expression) (uint64, bool) {
	for {
		switch e := expr.(type) {
		case *ast.IntLit:
			return e.Value, true
		case *ast.Paren:
			expr = e.Inner
		default:
			return 0, false
		}
	}
}

func (l *Lowerer) lowerBinary(scope *scope, e *ast.Binary) (*codegen.Var, error) {
	lhs, err := l.lowerExpr(scope, e.LHS)
	if err != nil {
		return nil, err
	}

	// If the RHS is a literal, fold into the literal-form operation instead
	// of lowering it into a throwaway var: add/subtract/multiply have a
	// dedicated constant-operand primitive, and || / && admit a short-circuit
	// identity that never even needs to inspect the literal's own value
	// beyond "is it zero". Folding also preserves the raw (unnormalized) LHS
	// for the boolean identities: `x || 0` yields `x` itself, not `bool(x)`.
	if k, ok := literalValue(e.RHS); ok {
		switch e.Op {
		case ast.Add:
			l.gen.Add(lhs, k)
			return lhs, nil
		case ast.Sub:
			l.gen.Subtract(lhs, k)
			return lhs, nil
		case ast.Mul:
			switch k {
			case 0:
				l.gen.Set(lhs, 0)
			case 1:
				// x * 1 = x: no-op.
			default:
				rhs := l.gen.NewVarInit(l.anonName("lit"), k)
				l.gen.Multiply(lhs, rhs)
				l.gen.Release(rhs)
			}
			return lhs, nil
		case ast.OrOr:
			if k != 0 {
				l.gen.Set(lhs, 1)
			}
			// x || 0 = x: no-op.
			return lhs, nil
		case ast.AndAnd:
			if k == 0 {
				l.gen.Set(lhs, 0)
			}
			// x && k (k != 0) = x: no-op.
			return lhs, nil
		}
		// Every other operator (comparisons) has no literal-form primitive;
		// fall through to the general var-var path below.
	}

	rhs, err := l.lowerExpr(scope, e.RHS)
	if err != nil {
		l.gen.Release(lhs)
		return nil, err
	}
	defer l.gen.Release(rhs)

	switch e.Op {
	case ast.Add:
		l.gen.AddVar(lhs, rhs)
	case ast.Sub:
		l.gen.SubtractVar(lhs, rhs)
	case ast.Mul:
		l.gen.Multiply(lhs, rhs)
	case ast.OrOr:
		l.gen.BoolOr(lhs, lhs, rhs)
	case ast.AndAnd:
		l.gen.BoolAnd(lhs, lhs, rhs)
	case ast.Eq:
		l.gen.Equal(lhs, lhs, rhs)
	case ast.Neq:
		l.gen.NotEqual(lhs, lhs, rhs)
	case ast.Lt:
		l.gen.LowerThan(lhs, lhs, rhs)
	case ast.Leq:
		l.gen.LowerEqual(lhs, lhs, rhs)
	case ast.Gt:
		l.gen.GreaterThan(lhs, lhs, rhs)
	case ast.Geq:
		l.gen.GreaterEqual(lhs, lhs, rhs)
	default:
		panic("lower: unhandled binary operator")
	}
	return lhs, nil
}
