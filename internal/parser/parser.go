// Package parser implements a recursive-descent, precedence-climbing parser
// from lexer tokens to the AST defined in internal/ast. This is the "external
// collaborator" spec.md treats as a given input to the compiler core; it
// exists here so the module is runnable end to end (see SPEC_FULL.md §2).
package parser

import (
	"fmt"

	"github.com/gobrainfuck/bfgen/internal/ast"
	"github.com/gobrainfuck/bfgen/internal/lexer"
)

// SyntaxError reports a parse failure, naming the expected construct and the
// position within the offending source line (spec.md §7 taxonomy item 1).
type SyntaxError struct {
	Expected string
	Pos      lexer.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s at %s", e.Expected, e.Pos)
}

// Parse tokenizes and parses src into a Program.
func Parse(src []byte) (*ast.Program, error) {
	toks, lexErr := lexer.TokenizeAll(src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []lexer.Token
	i    int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.i] }
func (p *parser) peekNext() lexer.Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() lexer.Token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur().Kind != k {
		return lexer.Token{}, &SyntaxError{Expected: what, Pos: p.cur().Pos}
	}
	return p.advance(), nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur().Kind != lexer.EOF {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func (p *parser) parseFunction() (*ast.Function, error) {
	pos := p.cur().Pos
	if _, err := p.expect(lexer.KwFunction, "'function'"); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Ident, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Kind != lexer.RParen {
		if len(params) > 0 {
			if _, err := p.expect(lexer.Comma, "','"); err != nil {
				return nil, err
			}
		}
		pname, err := p.expect(lexer.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, pname.Text)
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for p.cur().Kind != lexer.RBrace {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Function{Name: name.Text, Params: params, Body: body, Pos: pos}, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Kind {
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.KwVar:
		return p.parseVarDecl()
	case lexer.KwPrint:
		return p.parsePrint()
	case lexer.KwScan:
		return p.parseScan()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.Ident:
		return p.parseIdentStatement()
	default:
		return nil, &SyntaxError{Expected: "statement", Pos: p.cur().Pos}
	}
}

func (p *parser) parseBlock() (ast.Statement, error) {
	pos := p.cur().Pos
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.cur().Kind != lexer.RBrace {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Pos: pos}, nil
}

func (p *parser) parseVarDecl() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'var'
	name, err := p.expect(lexer.Ident, "variable name")
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: name.Text, Pos: pos}
	if p.cur().Kind == lexer.Assign {
		p.advance()
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		decl.Init = expr
	}
	if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parsePrint disambiguates "print EXPR;" from "print TEXT;" by the first
// token: spec.md §9 notes the ambiguity the original parser resolved by
// trying alternatives in order; this grammar instead makes string-literal
// print a distinct syntactic form, resolved with a single token of lookahead.
func (p *parser) parsePrint() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'print'
	if p.cur().Kind == lexer.String {
		text, rerr := resolveEscapes(p.cur().Text, p.cur().Pos)
		if rerr != nil {
			return nil, rerr
		}
		p.advance()
		if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.PrintText{Text: text, Pos: pos}, nil
	}
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.PrintExpr{Expr: expr, Pos: pos}, nil
}

// EncodingError reports a §7-taxonomy "encoding failure": an unknown escape
// sequence in a text literal.
type EncodingError struct {
	Msg string
	Pos lexer.Position
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

func resolveEscapes(raw string, pos lexer.Position) (string, error) {
	var out []byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", &EncodingError{Msg: "trailing backslash in text literal", Pos: pos}
		}
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		default:
			return "", &EncodingError{Msg: fmt.Sprintf("unknown escape '\\%c'", raw[i]), Pos: pos}
		}
	}
	return string(out), nil
}

func (p *parser) parseScan() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'scan'
	name, err := p.expect(lexer.Ident, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.Scan{Name: name.Text, Pos: pos}, nil
}

func (p *parser) parseReturn() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'return'
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr, Pos: pos}, nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'if'
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	ifNode := &ast.If{Cond: cond, Then: thenStmt, Pos: pos}
	if p.cur().Kind == lexer.KwElse {
		p.advance()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		ifNode.Else = elseStmt
	}
	return ifNode, nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'while'
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Pos: pos}, nil
}

func (p *parser) parseFor() (ast.Statement, error) {
	pos := p.cur().Pos
	p.advance() // 'for'
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	forNode := &ast.For{Pos: pos}
	if p.cur().Kind != lexer.Semicolon {
		init, err := p.parseForClause()
		if err != nil {
			return nil, err
		}
		forNode.Init = init
	} else {
		p.advance()
	}
	if p.cur().Kind != lexer.Semicolon {
		cond, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		forNode.Cond = cond
	}
	if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.RParen {
		post, err := p.parseForPost()
		if err != nil {
			return nil, err
		}
		forNode.Post = post
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	forNode.Body = body
	return forNode, nil
}

// parseForClause parses the for-loop initializer, which is a var-decl or
// assignment without consuming its own leading ';' already consumed by the
// caller context (the trailing ';' belongs to the for-header, matched here).
func (p *parser) parseForClause() (ast.Statement, error) {
	if p.cur().Kind == lexer.KwVar {
		return p.parseVarDecl()
	}
	stmt, err := p.parseIdentStatement()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseForPost parses the for-loop post-step, an assignment with no
// trailing ';' (the header's ')' follows directly).
func (p *parser) parseForPost() (ast.Statement, error) {
	pos := p.cur().Pos
	name, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name.Text, Expr: expr, Pos: pos}, nil
}

// parseIdentStatement parses a statement starting with an identifier: either
// a function-call statement "name(...);" or an assignment "name = expr;".
// When used from a for-header, the trailing ';' is still consumed (for-init
// follows the same "expression-form statements end with ;" rule as top level).
func (p *parser) parseIdentStatement() (ast.Statement, error) {
	pos := p.cur().Pos
	name, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case lexer.LParen:
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.CallStmt{FunctionName: name.Text, Args: args, Pos: pos}, nil
	case lexer.Assign:
		p.advance()
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.Assign{Name: name.Text, Expr: expr, Pos: pos}, nil
	default:
		return nil, &SyntaxError{Expected: "'(' or '=' after identifier", Pos: p.cur().Pos}
	}
}

func (p *parser) parseCallArgs() ([]ast.Expression, error) {
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for p.cur().Kind != lexer.RParen {
		if len(args) > 0 {
			if _, err := p.expect(lexer.Comma, "','"); err != nil {
				return nil, err
			}
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// --- Expression grammar: precedence-climbing --------------------------
//
// spec.md §4.5 gives precedence where LOWER number binds TIGHTER:
//   || 12, && 11, ==/!= 7, </<=/>/>= 6, +/- 4, * 3, ! 2, atoms 1
// binding below is expressed the conventional way (higher number binds
// tighter); the relative ordering is identical, only the numbering
// direction differs, since precedence-climbing only needs a total order.

var binaryPrec = map[lexer.Kind]int{
	lexer.OrOr:   1,
	lexer.AndAnd: 2,
	lexer.Eq:     3,
	lexer.Neq:    3,
	lexer.Lt:     4,
	lexer.Leq:    4,
	lexer.Gt:     4,
	lexer.Geq:    4,
	lexer.Plus:   5,
	lexer.Minus:  5,
	lexer.Star:   6,
}

var binaryOps = map[lexer.Kind]ast.BinaryOp{
	lexer.OrOr:   ast.OrOr,
	lexer.AndAnd: ast.AndAnd,
	lexer.Eq:     ast.Eq,
	lexer.Neq:    ast.Neq,
	lexer.Lt:     ast.Lt,
	lexer.Leq:    ast.Leq,
	lexer.Gt:     ast.Gt,
	lexer.Geq:    ast.Geq,
	lexer.Plus:   ast.Add,
	lexer.Minus:  ast.Sub,
	lexer.Star:   ast.Mul,
}

// parseExpression parses a binary-operator chain with minimum precedence
// minPrec, building a left-associative (LHS-deep) tree for equal-precedence
// operators: "a - b - c" parses as "(a - b) - c", never the reverse.
func (p *parser) parseExpression(minPrec int) (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrec[p.cur().Kind]
		if !ok || prec < minPrec {
			return lhs, nil
		}
		opTok := p.advance()
		// +1 so that climbing a higher-precedence RHS still leaves
		// equal-precedence operators grouping left-associatively.
		rhs, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: binaryOps[opTok.Kind], LHS: lhs, RHS: rhs, Pos: opTok.Pos}
	}
}

func (p *parser) parseUnary() (ast.Expression, error) {
	if p.cur().Kind == lexer.Bang {
		pos := p.cur().Pos
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Not, Expr: inner, Pos: pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Int:
		p.advance()
		return &ast.IntLit{Value: uint64(tok.Int), Pos: tok.Pos}, nil
	case lexer.Char:
		p.advance()
		return &ast.IntLit{Value: uint64(tok.Int), Pos: tok.Pos}, nil
	case lexer.LParen:
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.Paren{Inner: inner, Pos: tok.Pos}, nil
	case lexer.Ident:
		p.advance()
		if p.cur().Kind == lexer.LParen {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return &ast.Call{FunctionName: tok.Text, Args: args, Pos: tok.Pos}, nil
		}
		return &ast.VarRef{Name: tok.Text, Pos: tok.Pos}, nil
	default:
		return nil, &SyntaxError{Expected: "expression", Pos: tok.Pos}
	}
}
