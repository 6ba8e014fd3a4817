// Package parser implements Bishop's hand-written recursive-descent parser
// (spec.md §4.2): a pre-scan pass for forward references followed by a
// single forward pass that builds the AST directly, aborting on the first
// unexpected token rather than attempting error recovery.
//
// The token-buffering design (rawNext/fill/cur/peek) is grounded on the
// teacher's own curToken/peekToken parser pattern (internal/parser/parser.go
// in the source repo), adapted here to also thread doc-comment text through
// the buffer since Bishop's lexer only exposes doc comments via an explicit
// PeekIsDocComment/ScanDocComment pair rather than as ordinary tokens.
package parser

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/diag"
	"github.com/bishop-lang/bishopc/internal/lexer"
	"github.com/bishop-lang/bishopc/internal/token"
)

// bufTok pairs a token with whatever doc-comment run immediately preceded
// it (empty if none).
type bufTok struct {
	tok token.Token
	doc string
}

// Parser holds all state for parsing a single file: the lazily buffered
// token stream, the pre-scanned forward-reference name sets, and the
// running sets of import aliases and using-aliases that accumulate as
// earlier top-level declarations are parsed.
type Parser struct {
	file string
	src  string
	lex  *lexer.Lexer
	buf  []bufTok

	funcNames map[string]bool // pre-scanned top-level fn names
	typeNames map[string]bool // pre-scanned struct/err names

	importAliases map[string]bool
	usingAliases  map[string]bool
	wildcardUsed  bool

	asyncSeen bool // set by await/go/select while parsing the current function/method body
}

// parseAbort unwinds the recursive descent to Parse's recover on the first
// unexpected token (spec.md §4.2.7: "the parser does not recover").
type parseAbort struct{ d diag.Diagnostic }

// Parse lexes and parses a complete source file into a Program.
func Parse(file, src string) (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pa, ok := r.(parseAbort); ok {
				err = pa.d
				return
			}
			panic(r)
		}
	}()

	funcNames, typeNames := prescan(file, src)
	p := &Parser{
		file:          file,
		src:           src,
		lex:           lexer.New(file, src),
		funcNames:     funcNames,
		typeNames:     typeNames,
		importAliases: map[string]bool{},
		usingAliases:  map[string]bool{},
	}
	prog = p.parseProgram()
	return prog, nil
}

// prescan walks a fresh, doc-comment-draining token stream to collect the
// names of every top-level `fn` and `Name :: struct`/`Name :: err`
// definition, enabling forward references (spec.md §4.2.1).
func prescan(file, src string) (funcNames, typeNames map[string]bool) {
	funcNames = map[string]bool{}
	typeNames = map[string]bool{}

	toks := scanAllSkippingDocs(file, src)
	for i, t := range toks {
		switch t.Kind {
		case token.FN:
			if i+1 < len(toks) && toks[i+1].Kind == token.IDENT {
				funcNames[toks[i+1].Lexeme] = true
			}
		case token.IDENT:
			if i+2 < len(toks) && toks[i+1].Kind == token.DOUBLE_COLON &&
				(toks[i+2].Kind == token.STRUCT || toks[i+2].Kind == token.ERR) {
				typeNames[t.Lexeme] = true
			}
		}
	}
	return funcNames, typeNames
}

// scanAllSkippingDocs runs a throwaway Lexer to completion, discarding doc
// comment runs the same way the parser's own buffering does, so prescan
// never misinterprets a "///" line as stray slash tokens.
func scanAllSkippingDocs(file, src string) []token.Token {
	l := lexer.New(file, src)
	var toks []token.Token
	for {
		for l.PeekIsDocComment() {
			l.ScanDocComment()
		}
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

func (p *Parser) rawNext() bufTok {
	doc := ""
	if p.lex.PeekIsDocComment() {
		doc = p.lex.ScanDocComment()
	}
	return bufTok{tok: p.lex.Next(), doc: doc}
}

func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.rawNext())
	}
}

func (p *Parser) cur() token.Token {
	p.fill(0)
	return p.buf[0].tok
}

func (p *Parser) curDoc() string {
	p.fill(0)
	return p.buf[0].doc
}

func (p *Parser) peek(n int) token.Token {
	p.fill(n)
	return p.buf[n].tok
}

func (p *Parser) advance() token.Token {
	p.fill(0)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t.tok
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

// match consumes the current token and returns true if it has kind k,
// otherwise leaves the parser state untouched.
func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token, aborting the parse if it is not of
// kind k.
func (p *Parser) expect(k token.Kind) token.Token {
	if !p.check(k) {
		p.fail("expected %s, found %q", k, p.cur().Lexeme)
	}
	return p.advance()
}

// takeDoc returns the doc-comment text attached to the current token, for
// the top-level definition about to consume it.
func (p *Parser) takeDoc() string { return p.curDoc() }

func (p *Parser) fail(format string, args ...any) {
	panic(parseAbort{diag.New(p.file, p.cur().Line, format, args...)})
}

// isTypeStartKind reports whether k can begin a type string: a primitive
// keyword, a container keyword, `fn`, or a plain identifier (a struct
// name). Used to disambiguate `name type = value` declarations from plain
// assignment at statement level (spec.md §4.2.4).
func isTypeStartKind(k token.Kind) bool {
	switch k {
	case token.INT_T, token.STR_T, token.BOOL_T, token.F32_T, token.F64_T,
		token.U32_T, token.U64_T, token.CINT_T, token.CSTR_T, token.VOID_T,
		token.FN,
		token.CHANNEL, token.LIST, token.MAP, token.SET, token.PAIR, token.TUPLE,
		token.DEQUE, token.STACK, token.QUEUE, token.PRIORITY_QUEUE,
		token.IDENT:
		return true
	}
	return false
}

func isContainerKeyword(k token.Kind) bool {
	switch k {
	case token.CHANNEL, token.LIST, token.MAP, token.SET, token.PAIR, token.TUPLE,
		token.DEQUE, token.STACK, token.QUEUE, token.PRIORITY_QUEUE:
		return true
	}
	return false
}

func isPascalCase(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// looksLikeStructLiteral reports whether an identifier immediately
// followed by "{" should be parsed as a StructLiteral rather than leaving
// the brace for an enclosing block (spec.md §4.2.6).
func (p *Parser) looksLikeStructLiteral(name string) bool {
	if p.typeNames[name] || p.usingAliases[name] {
		return true
	}
	return p.wildcardUsed && isPascalCase(name)
}
