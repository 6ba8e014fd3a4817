package parser

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/token"
)

// parseBlock parses a brace-delimited statement list.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.LBRACE)
	stmts := p.parseStmtList()
	p.expect(token.RBRACE)
	return stmts
}

func (p *Parser) parseStmtList() []ast.Stmt {
	var out []ast.Stmt
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		out = append(out, p.parseStmt())
	}
	return out
}

// parseStmt dispatches on the leading token (spec.md §4.2.4).
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.RETURN:
		return p.parseReturnStmt()
	case token.FAIL:
		return p.parseFailStmt()
	case token.CONTINUE:
		line := p.advance().Line
		p.expect(token.SEMICOLON)
		return &ast.ContinueStmt{Base: ast.NewBase(line)}
	case token.BREAK:
		line := p.advance().Line
		p.expect(token.SEMICOLON)
		return &ast.BreakStmt{Base: ast.NewBase(line)}
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.SELECT:
		return p.parseSelectStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.GO:
		return p.parseGoStmt()
	case token.CONST:
		return p.parseLocalConstStmt()
	case token.IDENT, token.SELF:
		return p.parseIdentLedStmt()
	case token.AWAIT:
		expr := p.parseExpr()
		p.expect(token.SEMICOLON)
		return &ast.ExprStmt{Base: ast.NewBase(expr.Line()), X: expr}
	default:
		p.fail("unexpected token %q at start of statement", p.cur().Lexeme)
		return nil
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	line := p.advance().Line
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &ast.ReturnStmt{Base: ast.NewBase(line), Value: value}
}

// parseFailStmt implements the bare-error disambiguation rule: `fail
// Name;` where Name is a known error type and is not followed by "{"
// produces a StructLiteral with no field values (spec.md §4.2's
// disambiguation note).
func (p *Parser) parseFailStmt() ast.Stmt {
	line := p.advance().Line
	if p.check(token.IDENT) && p.typeNames[p.cur().Lexeme] && p.peek(1).Kind != token.LBRACE {
		nameTok := p.advance()
		p.expect(token.SEMICOLON)
		return &ast.FailStmt{
			Base: ast.NewBase(line),
			Value: &ast.StructLiteral{
				Base: ast.NewBase(nameTok.Line), StructName: nameTok.Lexeme,
			},
		}
	}
	value := p.parseExpr()
	p.expect(token.SEMICOLON)
	return &ast.FailStmt{Base: ast.NewBase(line), Value: value}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	line := p.advance().Line
	cond := p.parseExpr()
	thenBody := p.parseThenOrSingleStmt()

	var elseBody []ast.Stmt
	if p.match(token.ELSE) {
		switch {
		case p.check(token.IF):
			elseBody = []ast.Stmt{p.parseIfStmt()}
		default:
			elseBody = p.parseThenOrSingleStmt()
		}
	}
	return &ast.IfStmt{Base: ast.NewBase(line), Cond: cond, Then: thenBody, Else: elseBody}
}

// parseThenOrSingleStmt handles both the braced and single-statement forms
// of an if/else body (spec.md §4.2.4).
func (p *Parser) parseThenOrSingleStmt() []ast.Stmt {
	if p.check(token.LBRACE) {
		return p.parseBlock()
	}
	return []ast.Stmt{p.parseStmt()}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	line := p.advance().Line
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{Base: ast.NewBase(line), Cond: cond, Body: body}
}

// parseForStmt parses both `for i in a..b { body }` (ForRange) and
// `for x in expr { body }` (ForEach), per spec.md §4.2.4.
func (p *Parser) parseForStmt() *ast.ForStmt {
	line := p.advance().Line
	loopVar := p.expect(token.IDENT).Lexeme
	p.expect(token.IN)
	first := p.parseComparison()

	if p.match(token.DOTDOT) {
		end := p.parseComparison()
		body := p.parseBlock()
		return &ast.ForStmt{
			Base: ast.NewBase(line), Kind: ast.ForRange, LoopVar: loopVar,
			RangeStart: first, RangeEnd: end, Body: body,
		}
	}

	body := p.parseBlock()
	return &ast.ForStmt{
		Base: ast.NewBase(line), Kind: ast.ForEach, LoopVar: loopVar,
		Iterable: first, Body: body,
	}
}

// parseSelectStmt parses `select { <recv-expr> { body } ... }`. Selecting
// on a channel marks the enclosing function/method async (spec.md §5).
func (p *Parser) parseSelectStmt() *ast.SelectStmt {
	line := p.advance().Line
	p.asyncSeen = true
	p.expect(token.LBRACE)
	var arms []ast.SelectArm
	for !p.check(token.RBRACE) {
		recv := p.parseExpr()
		body := p.parseBlock()
		arms = append(arms, ast.SelectArm{Receive: recv, Body: body})
	}
	p.expect(token.RBRACE)
	return &ast.SelectStmt{Base: ast.NewBase(line), Arms: arms}
}

func (p *Parser) parseWithStmt() *ast.WithStmt {
	line := p.advance().Line
	resource := p.parseExpr()
	p.expect(token.AS)
	name := p.expect(token.IDENT).Lexeme
	body := p.parseBlock()
	return &ast.WithStmt{Base: ast.NewBase(line), Resource: resource, BindingName: name, Body: body}
}

func (p *Parser) parseGoStmt() *ast.GoSpawn {
	line := p.advance().Line
	p.asyncSeen = true
	call := p.parseExpr()
	p.expect(token.SEMICOLON)
	return &ast.GoSpawn{Base: ast.NewBase(line), Call: call}
}

func (p *Parser) parseLocalConstStmt() *ast.VariableDecl {
	p.advance() // 'const'
	decl := p.parseVarDeclBody(true, ast.Private, "")
	p.expect(token.SEMICOLON)
	return decl
}

// parseVarDeclBody parses the three declared-variable forms spec.md's
// ast.go documents: `name := value`, `name : type := value`, and
// `name type = value`.
func (p *Parser) parseVarDeclBody(isConst bool, vis ast.Visibility, doc string) *ast.VariableDecl {
	line := p.cur().Line
	name := p.expect(token.IDENT).Lexeme

	var typ string
	var value ast.Expr
	switch {
	case p.check(token.WALRUS):
		p.advance()
		value = p.parseExpr()
	case p.check(token.COLON):
		p.advance()
		typ = p.parseTypeString()
		p.expect(token.WALRUS)
		value = p.parseExpr()
	default:
		typ = p.parseTypeString()
		p.expect(token.ASSIGN)
		value = p.parseExpr()
	}

	isOptional := false
	if strings.HasSuffix(typ, "?") {
		isOptional = true
		typ = strings.TrimSuffix(typ, "?")
	}

	return &ast.VariableDecl{
		Base: ast.NewBase(line), Name: name, Type: typ, Value: value,
		IsOptional: isOptional, IsConst: isConst, Visibility: vis, Doc: doc,
	}
}

// parseIdentLedStmt discriminates the statement forms that start with an
// identifier (or `self`): variable declarations, plain assignment, field
// assignment, qualified/method calls, and bare or-expression statements
// (spec.md §4.2.4's "bounded lookahead" rule).
func (p *Parser) parseIdentLedStmt() ast.Stmt {
	line := p.cur().Line

	if p.check(token.IDENT) {
		switch {
		case p.peek(1).Kind == token.WALRUS || p.peek(1).Kind == token.COLON:
			decl := p.parseVarDeclBody(false, ast.Private, "")
			p.expect(token.SEMICOLON)
			return decl
		case p.peek(1).Kind == token.ASSIGN:
			name := p.advance().Lexeme
			p.advance() // '='
			value := p.parseExpr()
			p.expect(token.SEMICOLON)
			return &ast.Assignment{Base: ast.NewBase(line), Name: name, Value: value}
		case isTypeStartKind(p.peek(1).Kind):
			decl := p.parseVarDeclBody(false, ast.Private, "")
			p.expect(token.SEMICOLON)
			return decl
		}
	}

	expr := p.parseExpr()
	if fa, ok := expr.(*ast.FieldAccess); ok && p.check(token.ASSIGN) {
		p.advance()
		value := p.parseExpr()
		p.expect(token.SEMICOLON)
		return &ast.FieldAssignment{Base: ast.NewBase(fa.Line()), Object: fa.Object, Field: fa.Field, Value: value}
	}
	p.expect(token.SEMICOLON)
	return &ast.ExprStmt{Base: ast.NewBase(expr.Line()), X: expr}
}
