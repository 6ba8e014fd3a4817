package lexer

import (
	"testing"

	"github.com/bishop-lang/bishopc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	want = append(want, token.EOF)
	got := kinds(ScanAll("t.bishop", src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d: got %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestPunctuationMaximalMunch(t *testing.T) {
	assertKinds(t, ":=", token.WALRUS)
	assertKinds(t, "::", token.DOUBLE_COLON)
	assertKinds(t, "->", token.ARROW)
	assertKinds(t, "==", token.EQ)
	assertKinds(t, "!=", token.NEQ)
	assertKinds(t, "<=", token.LTE)
	assertKinds(t, ">=", token.GTE)
	assertKinds(t, ":", token.COLON)
	assertKinds(t, "=", token.ASSIGN)
}

func TestRangeDotDotVsFloat(t *testing.T) {
	assertKinds(t, "1..5", token.NUMBER, token.DOTDOT, token.NUMBER)
	assertKinds(t, "3.14", token.FLOAT)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	assertKinds(t, "fn divide int", token.FN, token.IDENT, token.INT_T)
	assertKinds(t, "List Map PriorityQueue", token.LIST, token.MAP, token.PRIORITY_QUEUE)
}

func TestStringEscapes(t *testing.T) {
	toks := ScanAll("t.bishop", `"hi\nthere"`)
	if toks[0].Lexeme != "hi\nthere" {
		t.Fatalf("got %q", toks[0].Lexeme)
	}
}

func TestLineNumbersAdvance(t *testing.T) {
	toks := ScanAll("t.bishop", "a\nb\nc")
	if toks[0].Line != 1 || toks[1].Line != 2 || toks[2].Line != 3 {
		t.Fatalf("lines: %d %d %d", toks[0].Line, toks[1].Line, toks[2].Line)
	}
}

func TestDocCommentAccumulation(t *testing.T) {
	l := New("t.bishop", "/// first line\n/// second line\nfn f() {}")
	if !l.PeekIsDocComment() {
		t.Fatal("expected doc comment to be detected")
	}
	doc := l.ScanDocComment()
	if doc != "first line\nsecond line" {
		t.Fatalf("got %q", doc)
	}
	tok := l.Next()
	if tok.Kind != token.FN {
		t.Fatalf("got %s", tok.Kind)
	}
}

func TestUnknownCharacterSkippedAsIllegal(t *testing.T) {
	toks := ScanAll("t.bishop", "a ~ b")
	if toks[1].Kind != token.ILLEGAL {
		t.Fatalf("got %s", toks[1].Kind)
	}
}
