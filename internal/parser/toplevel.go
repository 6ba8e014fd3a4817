package parser

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/token"
)

// parseProgram implements spec.md §4.2.2: imports, then usings, then a
// free mixture of constants, functions, structs, errors, and methods.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.check(token.IMPORT) {
		prog.Imports = append(prog.Imports, p.parseImport())
	}
	for p.check(token.USING) {
		prog.Usings = append(prog.Usings, p.parseUsing())
	}

	for !p.check(token.EOF) {
		doc := p.takeDoc()
		isStatic, externLib := p.parseAnnotations()
		vis := ast.Private
		if p.match(token.PUB) {
			vis = ast.Public
		}

		switch {
		case p.check(token.CONST):
			p.advance()
			decl := p.parseVarDeclBody(true, vis, doc)
			p.expect(token.SEMICOLON)
			prog.Constants = append(prog.Constants, decl)

		case p.check(token.FN):
			decl := p.parseFunctionOrExtern(vis, doc, externLib)
			switch d := decl.(type) {
			case *ast.FunctionDef:
				prog.Functions = append(prog.Functions, d)
			case *ast.ExternFunctionDef:
				prog.Externs = append(prog.Externs, d)
			}

		case p.check(token.IDENT) && p.peek(1).Kind == token.DOUBLE_COLON:
			p.parseDoubleColonDecl(prog, vis, doc, isStatic)

		default:
			p.fail("unexpected token %s at top level", p.cur().Kind)
		}
	}

	return prog
}

// parseAnnotations consumes any run of "@extern(\"lib\")" / "@static"
// annotations preceding a declaration (spec.md §4.2.2: "parsed before
// visibility").
func (p *Parser) parseAnnotations() (isStatic bool, externLib string) {
	for p.check(token.AT) {
		p.advance()
		if p.match(token.STATIC_ANNOT) {
			isStatic = true
			continue
		}
		name := p.expect(token.IDENT).Lexeme
		if name != "extern" {
			p.fail("unknown annotation @%s", name)
		}
		p.expect(token.LPAREN)
		externLib = p.expect(token.STRING).Lexeme
		p.expect(token.RPAREN)
	}
	return isStatic, externLib
}

func (p *Parser) parseDottedPath() string {
	name := p.expect(token.IDENT).Lexeme
	for p.check(token.DOT) {
		p.advance()
		name += "." + p.expect(token.IDENT).Lexeme
	}
	return name
}

func lastSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			last = path[i+1:]
			break
		}
	}
	return last
}

func (p *Parser) parseImport() *ast.ImportStmt {
	line := p.cur().Line
	p.expect(token.IMPORT)
	path := p.parseDottedPath()
	alias := lastSegment(path)
	if p.match(token.AS) {
		alias = p.expect(token.IDENT).Lexeme
	}
	p.expect(token.SEMICOLON)
	p.importAliases[alias] = true
	return &ast.ImportStmt{ModulePath: path, Alias: alias, Base: ast.NewBase(line)}
}

func (p *Parser) parseUsing() *ast.UsingStmt {
	line := p.cur().Line
	p.expect(token.USING)

	var members []ast.UsingMember
	var wildcard string

	modAlias := p.expect(token.IDENT).Lexeme
	p.expect(token.DOT)
	if p.match(token.STAR) {
		// `using module.*;` — a wildcard using is always the sole entry
		// (spec.md §4.2.6's conservative PascalCase-plus-"{" rule only
		// makes sense once no member list is also being tracked).
		wildcard = modAlias
		p.wildcardUsed = true
	} else {
		member := p.expect(token.IDENT).Lexeme
		members = append(members, ast.UsingMember{Module: modAlias, Member: member})
		p.usingAliases[member] = true
		for p.match(token.COMMA) {
			modAlias := p.expect(token.IDENT).Lexeme
			p.expect(token.DOT)
			member := p.expect(token.IDENT).Lexeme
			members = append(members, ast.UsingMember{Module: modAlias, Member: member})
			p.usingAliases[member] = true
		}
	}
	p.expect(token.SEMICOLON)

	return &ast.UsingStmt{Members: members, WildcardModule: wildcard, Base: ast.NewBase(line)}
}

func (p *Parser) parseFieldList() []ast.Field {
	p.expect(token.LBRACE)
	var fields []ast.Field
	for !p.check(token.RBRACE) {
		name := p.expect(token.IDENT).Lexeme
		typ := p.parseTypeString()
		fields = append(fields, ast.Field{Name: name, Type: typ})
		if !p.check(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return fields
}

// parseFunctionOrExtern parses `fn name(params) [-> T] [or err] { body }`
// or, when externLib is set, the bodiless `fn name(params) -> T;` form.
func (p *Parser) parseFunctionOrExtern(vis ast.Visibility, doc, externLib string) ast.Decl {
	line := p.cur().Line
	p.expect(token.FN)
	name := p.expect(token.IDENT).Lexeme
	p.expect(token.LPAREN)
	params, _ := p.parseParams(false)
	p.expect(token.RPAREN)

	retType := ""
	if p.match(token.ARROW) {
		retType = p.parseTypeString()
	}

	if externLib != "" {
		p.expect(token.SEMICOLON)
		return &ast.ExternFunctionDef{
			Base: ast.NewBase(line), Name: name, Params: params,
			ReturnType: retType, Library: externLib, Visibility: vis,
		}
	}

	errType := ""
	if p.match(token.OR) {
		p.expect(token.ERR)
		errType = "err"
	}

	p.expect(token.LBRACE)
	savedAsync := p.asyncSeen
	p.asyncSeen = false
	body := p.parseStmtList()
	isAsync := p.asyncSeen
	p.asyncSeen = savedAsync
	p.expect(token.RBRACE)

	return &ast.FunctionDef{
		Base: ast.NewBase(line), Name: name, Params: params, ReturnType: retType,
		ErrorType: errType, IsAsync: isAsync, Visibility: vis, Body: body, Doc: doc,
	}
}

// parseDoubleColonDecl handles the three `Name :: ...` forms: struct, err,
// and method definitions (spec.md §4.2.3).
func (p *Parser) parseDoubleColonDecl(prog *ast.Program, vis ast.Visibility, doc string, isStatic bool) {
	line := p.cur().Line
	name := p.expect(token.IDENT).Lexeme
	p.expect(token.DOUBLE_COLON)

	switch {
	case p.check(token.STRUCT):
		p.advance()
		fields := p.parseFieldList()
		prog.Structs = append(prog.Structs, &ast.StructDef{
			Base: ast.NewBase(line), Name: name, Fields: fields, Visibility: vis, Doc: doc,
		})

	case p.check(token.ERR):
		p.advance()
		fields := p.parseFieldList()
		prog.Errors = append(prog.Errors, &ast.ErrorDef{
			Base: ast.NewBase(line), Name: name, Fields: fields, Visibility: vis, Doc: doc,
		})

	default:
		methodName := p.expect(token.IDENT).Lexeme
		p.expect(token.LPAREN)
		params, _ := p.parseParams(true)
		p.expect(token.RPAREN)

		retType := ""
		if p.match(token.ARROW) {
			retType = p.parseTypeString()
		}
		errType := ""
		if p.match(token.OR) {
			p.expect(token.ERR)
			errType = "err"
		}

		p.expect(token.LBRACE)
		savedAsync := p.asyncSeen
		p.asyncSeen = false
		body := p.parseStmtList()
		isAsync := p.asyncSeen
		p.asyncSeen = savedAsync
		p.expect(token.RBRACE)

		prog.Methods = append(prog.Methods, &ast.MethodDef{
			Base: ast.NewBase(line), StructName: name, Name: methodName, Params: params,
			ReturnType: retType, ErrorType: errType, IsStatic: isStatic, IsAsync: isAsync,
			Visibility: vis, Body: body, Doc: doc,
		})
	}
}

// parseParams parses a parameter list in `type name` order (spec.md
// §6.1's `fn divide(int a, int b)`). When allowSelf is true, a leading
// bare `self` (methods only, omitted on @static methods) is consumed and
// not added to the returned slice.
func (p *Parser) parseParams(allowSelf bool) (params []ast.Param, hasSelf bool) {
	if allowSelf && p.check(token.SELF) {
		p.advance()
		hasSelf = true
		if p.check(token.COMMA) {
			p.advance()
		}
	}
	for !p.check(token.RPAREN) {
		typ := p.parseTypeString()
		name := p.expect(token.IDENT).Lexeme
		params = append(params, ast.Param{Name: name, Type: typ})
		if !p.check(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	return params, hasSelf
}
