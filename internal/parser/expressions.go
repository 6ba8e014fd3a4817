package parser

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/token"
)

// parseExpr is the top-level expression entry point: a comparison-level
// expression optionally followed by an `or`-handler or a `default`
// fallback, both of which bind loosest of all (spec.md §4.2.5,
// disambiguation note: "`or` after an expression introduces an OrExpr").
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseComparison()
	switch {
	case p.check(token.OR):
		return p.parseOrExpr(left)
	case p.check(token.DEFAULT):
		line := p.advance().Line
		fallback := p.parseComparison()
		return &ast.DefaultExpr{Base: ast.NewBase(line), Value: left, Fallback: fallback}
	}
	return left
}

// parseComparison handles the relational operators plus the trailing `is
// none` test, the loosest-binding level besides or/default.
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		switch p.cur().Kind {
		case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
			op := p.advance()
			right := p.parseAdditive()
			left = &ast.BinaryExpr{Base: ast.NewBase(op.Line), Op: op.Lexeme, Left: left, Right: right}
			continue
		}
		break
	}
	if p.check(token.IS) {
		line := p.advance().Line
		p.expect(token.NONE)
		left = &ast.IsNone{Base: ast.NewBase(line), Operand: left}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur().Kind == token.PLUS || p.cur().Kind == token.MINUS {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Base: ast.NewBase(op.Line), Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.cur().Kind == token.STAR || p.cur().Kind == token.SLASH || p.cur().Kind == token.PERCENT {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Base: ast.NewBase(op.Line), Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

// parseUnary covers the prefix forms spec.md §4.2.5 groups under
// "Primary": `not`, unary `-`, `&`, and `await`.
func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.MINUS:
		line := p.advance().Line
		return &ast.NegateExpr{Base: ast.NewBase(line), Operand: p.parseUnary()}
	case token.NOT:
		line := p.advance().Line
		return &ast.NotExpr{Base: ast.NewBase(line), Operand: p.parseUnary()}
	case token.AMP:
		line := p.advance().Line
		return &ast.AddressOf{Base: ast.NewBase(line), Operand: p.parseUnary()}
	case token.AWAIT:
		line := p.advance().Line
		p.asyncSeen = true
		return &ast.AwaitExpr{Base: ast.NewBase(line), Operand: p.parseUnary()}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix chains `.field`, `.method(args)`, and immediate invocation
// `expr(args)` in one loop (spec.md §4.2.5).
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			name := p.expect(token.IDENT).Lexeme
			if p.check(token.LPAREN) {
				args := p.parseArgList()
				expr = &ast.MethodCall{Base: ast.NewBase(expr.Line()), Object: expr, Method: name, Args: args}
			} else {
				expr = &ast.FieldAccess{Base: ast.NewBase(expr.Line()), Object: expr, Field: name}
			}
		case token.LPAREN:
			args := p.parseArgList()
			expr = &ast.LambdaCall{Base: ast.NewBase(expr.Line()), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.check(token.RPAREN) {
		args = append(args, p.parseExpr())
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parsePrimary covers every expression-starting form spec.md §4.2.5 lists:
// literals, container constructors, parens, lambdas, and identifier-headed
// forms.
func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Base: ast.NewBase(t.Line), Text: t.Lexeme}
	case token.FLOAT:
		p.advance()
		return &ast.FloatLiteral{Base: ast.NewBase(t.Line), Text: t.Lexeme}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Base: ast.NewBase(t.Line), Value: t.Lexeme}
	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(t.Line), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.NewBase(t.Line), Value: false}
	case token.NONE:
		p.advance()
		return &ast.NoneLiteral{Base: ast.NewBase(t.Line)}
	case token.SELF:
		p.advance()
		return &ast.VariableRef{Base: ast.NewBase(t.Line), Name: "self"}
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.LBRACE:
		return p.parseMapOrSetLiteral()
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.ParenExpr{Base: ast.NewBase(t.Line), Inner: inner}
	case token.FN:
		return p.parseLambdaExpr()
	case token.IDENT:
		return p.parseIdentPrimary()
	}
	if isContainerKeyword(t.Kind) {
		return p.parseContainerCreate()
	}
	p.fail("unexpected token %q in expression", t.Lexeme)
	return nil
}

func (p *Parser) parseListLiteral() *ast.ListLiteral {
	line := p.advance().Line // '['
	var elems []ast.Expr
	for !p.check(token.RBRACKET) {
		elems = append(elems, p.parseExpr())
		if !p.check(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ListLiteral{Base: ast.NewBase(line), Elements: elems}
}

// parseMapOrSetLiteral parses "{...}" expressions, distinguishing
// MapLiteral from SetLiteral by whether a ":" follows the first element
// (spec.md §3.2's MapLiteral/SetLiteral note). An empty "{}" parses as an
// empty SetLiteral.
func (p *Parser) parseMapOrSetLiteral() ast.Expr {
	line := p.advance().Line // '{'
	if p.check(token.RBRACE) {
		p.advance()
		return &ast.SetLiteral{Base: ast.NewBase(line)}
	}

	first := p.parseExpr()
	if p.check(token.COLON) {
		p.advance()
		firstVal := p.parseExpr()
		keys := []ast.Expr{first}
		vals := []ast.Expr{firstVal}
		for p.match(token.COMMA) {
			k := p.parseExpr()
			p.expect(token.COLON)
			v := p.parseExpr()
			keys = append(keys, k)
			vals = append(vals, v)
		}
		p.expect(token.RBRACE)
		return &ast.MapLiteral{Base: ast.NewBase(line), Keys: keys, Values: vals}
	}

	elems := []ast.Expr{first}
	for p.match(token.COMMA) {
		elems = append(elems, p.parseExpr())
	}
	p.expect(token.RBRACE)
	return &ast.SetLiteral{Base: ast.NewBase(line), Elements: elems}
}

func (p *Parser) parseLambdaExpr() *ast.LambdaExpr {
	line := p.advance().Line // 'fn'
	p.expect(token.LPAREN)
	params, _ := p.parseParams(false)
	p.expect(token.RPAREN)
	retType := ""
	if p.match(token.ARROW) {
		retType = p.parseTypeString()
	}
	body := p.parseBlock()
	return &ast.LambdaExpr{Base: ast.NewBase(line), Params: params, ReturnType: retType, Body: body}
}

// parseContainerCreate parses `Kind<T>()` / `Map<K, V>()` /
// `PriorityQueue<T>(true|false)` container-constructor expressions.
func (p *Parser) parseContainerCreate() ast.Expr {
	kindTok := p.advance()
	p.expect(token.LT)

	if kindTok.Kind == token.MAP {
		keyType := p.parseTypeString()
		p.expect(token.COMMA)
		valType := p.parseTypeString()
		p.expect(token.GT)
		p.expect(token.LPAREN)
		p.expect(token.RPAREN)
		return &ast.MapCreate{Base: ast.NewBase(kindTok.Line), KeyType: keyType, ValueType: valType}
	}

	elemType := p.parseTypeString()
	p.expect(token.GT)
	p.expect(token.LPAREN)

	if kindTok.Kind == token.PRIORITY_QUEUE {
		isMin := false
		if !p.check(token.RPAREN) {
			switch {
			case p.match(token.TRUE):
				isMin = true
			case p.match(token.FALSE):
				isMin = false
			default:
				p.fail("expected true or false in PriorityQueue constructor, found %q", p.cur().Lexeme)
			}
		}
		p.expect(token.RPAREN)
		return &ast.PriorityQueueCreate{Base: ast.NewBase(kindTok.Line), ElementType: elemType, IsMinHeap: isMin}
	}

	p.expect(token.RPAREN)
	base := ast.NewBase(kindTok.Line)
	switch kindTok.Kind {
	case token.LIST:
		return &ast.ListCreate{Base: base, ElementType: elemType}
	case token.SET:
		return &ast.SetCreate{Base: base, ElementType: elemType}
	case token.PAIR:
		return &ast.PairCreate{Base: base, ElementType: elemType}
	case token.TUPLE:
		return &ast.TupleCreate{Base: base, ElementType: elemType}
	case token.DEQUE:
		return &ast.DequeCreate{Base: base, ElementType: elemType}
	case token.STACK:
		return &ast.StackCreate{Base: base, ElementType: elemType}
	case token.QUEUE:
		return &ast.QueueCreate{Base: base, ElementType: elemType}
	case token.CHANNEL:
		return &ast.ChannelCreate{Base: base, ElementType: elemType}
	}
	p.fail("unreachable container kind %s", kindTok.Kind)
	return nil
}

// parseIdentPrimary parses every identifier-headed primary form: plain
// variable/function references, struct literals, and module-qualified
// references or calls (spec.md §4.2.5-6).
func (p *Parser) parseIdentPrimary() ast.Expr {
	nameTok := p.advance()
	name := nameTok.Lexeme
	line := nameTok.Line

	if p.check(token.LBRACE) && p.looksLikeStructLiteral(name) {
		return p.parseStructLiteralBody(name, line)
	}

	if p.check(token.LPAREN) {
		args := p.parseArgList()
		return &ast.FunctionCall{Base: ast.NewBase(line), Name: name, Args: args}
	}

	if p.check(token.DOT) && p.importAliases[name] {
		p.advance()
		member := p.expect(token.IDENT).Lexeme
		if p.check(token.LPAREN) {
			args := p.parseArgList()
			return &ast.FunctionCall{Base: ast.NewBase(line), Name: name + "." + member, Args: args}
		}
		return &ast.QualifiedRef{Base: ast.NewBase(line), Module: name, Name: member}
	}

	if p.funcNames[name] {
		return &ast.FunctionRef{Base: ast.NewBase(line), Name: name}
	}
	return &ast.VariableRef{Base: ast.NewBase(line), Name: name}
}

func (p *Parser) parseStructLiteralBody(name string, line int) *ast.StructLiteral {
	p.expect(token.LBRACE)
	var fields []ast.FieldValue
	for !p.check(token.RBRACE) {
		fname := p.expect(token.IDENT).Lexeme
		p.expect(token.COLON)
		val := p.parseExpr()
		fields = append(fields, ast.FieldValue{Name: fname, Value: val})
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return &ast.StructLiteral{Base: ast.NewBase(line), StructName: name, FieldValues: fields}
}

// atHandlerEnd reports whether the current token can only be a statement
// or argument terminator, meaning a preceding `or return`/`or fail` form
// is the bare (valueless) variant.
func (p *Parser) atHandlerEnd() bool {
	switch p.cur().Kind {
	case token.SEMICOLON, token.RPAREN, token.RBRACE, token.COMMA, token.EOF:
		return true
	}
	return false
}

// parseOrExpr parses the six `or`-handler forms spec.md §3.2/§4.4
// describes, given the already-parsed value expression.
func (p *Parser) parseOrExpr(value ast.Expr) *ast.OrExpr {
	line := p.advance().Line // 'or'
	var handler ast.OrHandler

	switch {
	case p.check(token.RETURN):
		p.advance()
		var rv ast.Expr
		if !p.atHandlerEnd() {
			rv = p.parseComparison()
		}
		handler = ast.OrHandler{Kind: ast.OrReturn, ReturnValue: rv}

	case p.check(token.FAIL):
		p.advance()
		switch {
		case p.check(token.ERR):
			p.advance()
			handler = ast.OrHandler{Kind: ast.OrFail, FailTarget: "err"}
		case p.check(token.IDENT) && p.typeNames[p.cur().Lexeme]:
			name := p.advance().Lexeme
			handler = ast.OrHandler{Kind: ast.OrFail, FailTarget: name}
		default:
			v := p.parseComparison()
			handler = ast.OrHandler{Kind: ast.OrFail, FailValue: v}
		}

	case p.check(token.CONTINUE):
		p.advance()
		handler = ast.OrHandler{Kind: ast.OrContinue}

	case p.check(token.BREAK):
		p.advance()
		handler = ast.OrHandler{Kind: ast.OrBreak}

	case p.check(token.LBRACE):
		handler = ast.OrHandler{Kind: ast.OrBlock, Body: p.parseBlock()}

	case p.check(token.MATCH):
		p.advance()
		// conventionally "err" (a keyword token); the bound name itself isn't stored on OrHandler
		if !p.match(token.ERR) {
			p.expect(token.IDENT)
		}
		p.expect(token.LBRACE)
		var arms []ast.OrMatchArm
		for !p.check(token.RBRACE) {
			errType := p.expect(token.IDENT).Lexeme
			p.expect(token.FATARROW)
			var body []ast.Stmt
			switch p.cur().Kind {
			case token.LBRACE:
				body = p.parseBlock()
			case token.RETURN:
				retLine := p.advance().Line
				var rv ast.Expr
				if !p.atHandlerEnd() {
					rv = p.parseComparison()
				}
				body = []ast.Stmt{&ast.ReturnStmt{Base: ast.NewBase(retLine), Value: rv}}
			case token.FAIL, token.BREAK, token.CONTINUE:
				body = []ast.Stmt{p.parseStmt()}
			default:
				armExpr := p.parseExpr()
				body = []ast.Stmt{&ast.ExprStmt{Base: ast.NewBase(armExpr.Line()), X: armExpr}}
			}
			arms = append(arms, ast.OrMatchArm{ErrorType: errType, Body: body})
			if !p.check(token.RBRACE) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RBRACE)
		handler = ast.OrHandler{Kind: ast.OrMatch, Arms: arms}

	default:
		p.fail("expected an or-handler (return/fail/continue/break/{/match), found %q", p.cur().Lexeme)
	}

	return &ast.OrExpr{Base: ast.NewBase(line), Value: value, Handler: handler}
}

// --- Type strings (spec.md §3.3) ---

// parseTypeString consumes one type and returns its canonical textual
// form: primitives and struct names verbatim, `Kind<params>` for
// containers, `fn(params) -> ret` for function types, `module.Name` for
// qualified names, with trailing "*" (pointer) and "?" (optional) suffixes
// preserved in the returned string.
func (p *Parser) parseTypeString() string {
	if p.check(token.FN) {
		return p.parseFunctionTypeString()
	}
	if isContainerKeyword(p.cur().Kind) {
		return p.parseContainerTypeString()
	}
	return p.parseNameTypeString()
}

func (p *Parser) parseFunctionTypeString() string {
	p.advance() // 'fn'
	var sb strings.Builder
	sb.WriteString("fn(")
	p.expect(token.LPAREN)
	first := true
	for !p.check(token.RPAREN) {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(p.parseTypeString())
		first = false
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	sb.WriteString(")")
	if p.match(token.ARROW) {
		sb.WriteString(" -> ")
		sb.WriteString(p.parseTypeString())
	}
	return p.appendSuffixes(sb.String())
}

func (p *Parser) parseContainerTypeString() string {
	kindTok := p.advance()
	var sb strings.Builder
	sb.WriteString(kindTok.Lexeme)
	p.expect(token.LT)
	sb.WriteString("<")
	sb.WriteString(p.parseTypeString())
	for p.match(token.COMMA) {
		sb.WriteString(", ")
		sb.WriteString(p.parseTypeString())
	}
	p.expect(token.GT)
	sb.WriteString(">")
	return p.appendSuffixes(sb.String())
}

// parseNameTypeString parses a primitive keyword or a (possibly
// module-qualified) identifier type name.
func (p *Parser) parseNameTypeString() string {
	t := p.cur()
	switch t.Kind {
	case token.INT_T, token.STR_T, token.BOOL_T, token.F32_T, token.F64_T,
		token.U32_T, token.U64_T, token.CINT_T, token.CSTR_T, token.VOID_T:
		p.advance()
		return p.appendSuffixes(t.Lexeme)
	}
	name := p.expect(token.IDENT).Lexeme
	for p.match(token.DOT) {
		name += "." + p.expect(token.IDENT).Lexeme
	}
	return p.appendSuffixes(name)
}

// appendSuffixes consumes any trailing "*" (pointer) and "?" (optional)
// markers and appends them to s.
func (p *Parser) appendSuffixes(s string) string {
	for {
		switch {
		case p.check(token.STAR):
			p.advance()
			s += "*"
		case p.check(token.QUESTION):
			p.advance()
			s += "?"
		default:
			return s
		}
	}
}
