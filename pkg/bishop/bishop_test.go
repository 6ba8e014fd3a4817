package bishop

import (
	"strings"
	"testing"
)

func TestCompileSource_Valid(t *testing.T) {
	src := `
fn add(int a, int b) -> int {
    return a + b;
}
`
	result, err := CompileSource("add.bishop", src, Options{})
	if err != nil {
		t.Fatalf("CompileSource returned unexpected error: %v", err)
	}
	if !strings.Contains(result.Output, "add(") {
		t.Errorf("expected emitted function %q in output, got:\n%s", "add", result.Output)
	}
}

func TestCompileSource_ParseError(t *testing.T) {
	_, err := CompileSource("bad.bishop", "fn (", Options{})
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}

func TestCompileSource_CheckerError(t *testing.T) {
	src := `
fn bad() -> int {
    return "not an int";
}
`
	_, err := CompileSource("bad.bishop", src, Options{})
	if err == nil {
		t.Fatal("expected a checker diagnostic, got nil")
	}
}

func TestCompile_MissingFile(t *testing.T) {
	if _, err := Compile("does-not-exist.bishop", Options{}); err == nil {
		t.Fatal("expected a file-read error, got nil")
	}
}
