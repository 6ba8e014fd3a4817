// Package lexer turns Bishop source text into a token stream.
//
// The lexer is a single forward pass over the byte slice: it skips
// whitespace, recognizes the small set of multi-character punctuators with
// maximal munch, and tokenizes literals, identifiers, keywords, and doc
// comments. Lexical errors (an unrecognized byte) are not reported here —
// an ILLEGAL token is emitted and the parser surfaces it as an
// unexpected-token error, per spec.md §4.1.
package lexer

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/token"
)

// docMarker is the run-of-lines doc-comment prefix, analogous to "///" in
// many C-family languages.
const docMarker = "///"

// Lexer scans one source file into a token slice.
type Lexer struct {
	file string
	src  []byte
	pos  int // index of the next unread byte
	line int
}

// New creates a Lexer over src, tagging every token's position with file.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: []byte(src), pos: 0, line: 1}
}

// ScanAll runs the lexer to completion and returns the full token stream,
// terminated by a single EOF token.
func ScanAll(file, src string) []token.Token {
	l := New(file, src)
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
	}
	return c
}

func (l *Lexer) make(kind token.Kind, lexeme string, line int) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// Next returns the next token in the stream, advancing past it.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.src) {
		return l.make(token.EOF, "", l.line)
	}

	line := l.line
	c := l.advance()

	switch c {
	case '(':
		return l.make(token.LPAREN, "(", line)
	case ')':
		return l.make(token.RPAREN, ")", line)
	case '{':
		return l.make(token.LBRACE, "{", line)
	case '}':
		return l.make(token.RBRACE, "}", line)
	case '[':
		return l.make(token.LBRACKET, "[", line)
	case ']':
		return l.make(token.RBRACKET, "]", line)
	case ',':
		return l.make(token.COMMA, ",", line)
	case ';':
		return l.make(token.SEMICOLON, ";", line)
	case '@':
		return l.make(token.AT, "@", line)
	case '&':
		return l.make(token.AMP, "&", line)
	case '?':
		return l.make(token.QUESTION, "?", line)
	case '%':
		return l.make(token.PERCENT, "%", line)
	case '+':
		return l.make(token.PLUS, "+", line)
	case '*':
		return l.make(token.STAR, "*", line)
	case '/':
		return l.make(token.SLASH, "/", line)
	case '.':
		if l.peekByte() == '.' {
			l.advance()
			return l.make(token.DOTDOT, "..", line)
		}
		return l.make(token.DOT, ".", line)
	case '-':
		if l.peekByte() == '>' {
			l.advance()
			return l.make(token.ARROW, "->", line)
		}
		return l.make(token.MINUS, "-", line)
	case ':':
		switch l.peekByte() {
		case '=':
			l.advance()
			return l.make(token.WALRUS, ":=", line)
		case ':':
			l.advance()
			return l.make(token.DOUBLE_COLON, "::", line)
		}
		return l.make(token.COLON, ":", line)
	case '=':
		switch l.peekByte() {
		case '=':
			l.advance()
			return l.make(token.EQ, "==", line)
		case '>':
			l.advance()
			return l.make(token.FATARROW, "=>", line)
		}
		return l.make(token.ASSIGN, "=", line)
	case '!':
		if l.peekByte() == '=' {
			l.advance()
			return l.make(token.NEQ, "!=", line)
		}
		return l.make(token.ILLEGAL, "!", line)
	case '<':
		if l.peekByte() == '=' {
			l.advance()
			return l.make(token.LTE, "<=", line)
		}
		return l.make(token.LT, "<", line)
	case '>':
		if l.peekByte() == '=' {
			l.advance()
			return l.make(token.GTE, ">=", line)
		}
		return l.make(token.GT, ">", line)
	case '"':
		return l.scanString(line)
	}

	if isDigit(c) {
		return l.scanNumber(c, line)
	}
	if isAlpha(c) {
		return l.scanIdentifier(c, line)
	}

	return l.make(token.ILLEGAL, string(c), line)
}

// skipWhitespaceAndComments consumes runs of whitespace and "//" line
// comments that are not doc comments. A doc-comment run is left in place and
// returned as text by ScanDocComment, which the parser calls before Next when
// PeekIsDocComment reports one is next.
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.peekByte()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByteAt(1) == '/' && !strings.HasPrefix(string(l.src[l.pos:]), docMarker):
			l.skipLineComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peekByte() != '\n' {
		l.advance()
	}
}

// ScanDocComment consumes a run of consecutive "///"-prefixed lines
// starting at the lexer's current position and returns their joined text.
// Call PeekIsDocComment first; ScanDocComment assumes one is present.
func (l *Lexer) ScanDocComment() string {
	var lines []string
	for strings.HasPrefix(string(l.src[l.pos:]), docMarker) {
		l.pos += len(docMarker)
		start := l.pos
		for l.pos < len(l.src) && l.peekByte() != '\n' {
			l.advance()
		}
		lines = append(lines, strings.TrimSpace(string(l.src[start:l.pos])))
		l.skipWhitespaceAndComments()
		l.skipBlankAndPeekDoc()
	}
	return strings.Join(lines, "\n")
}

// skipBlankAndPeekDoc is a no-op hook kept separate from
// skipWhitespaceAndComments so a future "blank line breaks a doc-comment
// run" rule can be added without touching the general whitespace skipper.
func (l *Lexer) skipBlankAndPeekDoc() {}

// PeekIsDocComment reports, without consuming input beyond plain
// whitespace, whether the lexer is sitting on a doc-comment run.
func (l *Lexer) PeekIsDocComment() bool {
	for l.pos < len(l.src) {
		c := l.peekByte()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		if c == '/' && l.peekByteAt(1) == '/' && !strings.HasPrefix(string(l.src[l.pos:]), docMarker) {
			l.skipLineComment()
			continue
		}
		break
	}
	return strings.HasPrefix(string(l.src[l.pos:]), docMarker)
}

func (l *Lexer) scanString(line int) token.Token {
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.advance()
		if c == '"' {
			return l.make(token.STRING, sb.String(), line)
		}
		if c == '\\' && l.pos < len(l.src) {
			e := l.advance()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteByte('\\')
				sb.WriteByte(e)
			}
			continue
		}
		sb.WriteByte(c)
	}
	// Unterminated string: return what we have as ILLEGAL so the parser
	// surfaces a clear unexpected-token error at EOF.
	return l.make(token.ILLEGAL, sb.String(), line)
}

func (l *Lexer) scanNumber(first byte, line int) token.Token {
	var sb strings.Builder
	sb.WriteByte(first)
	for isDigit(l.peekByte()) {
		sb.WriteByte(l.advance())
	}
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		sb.WriteByte(l.advance()) // '.'
		for isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
		return l.make(token.FLOAT, sb.String(), line)
	}
	return l.make(token.NUMBER, sb.String(), line)
}

func (l *Lexer) scanIdentifier(first byte, line int) token.Token {
	var sb strings.Builder
	sb.WriteByte(first)
	for isAlphaNumeric(l.peekByte()) {
		sb.WriteByte(l.advance())
	}
	ident := sb.String()
	if kind, ok := token.Keywords[ident]; ok {
		return l.make(kind, ident, line)
	}
	return l.make(token.IDENT, ident, line)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
