package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/bishop-lang/bishopc/internal/checker"
	"github.com/bishop-lang/bishopc/internal/module"
	"github.com/bishop-lang/bishopc/internal/parser"
)

// TestFixtures emits every testdata/fixtures/<Category>/*.bishop program and
// snapshots the generated target-language text, one `go-snaps` snapshot per
// fixture — grounded on the teacher's internal/interp/fixture_test.go, which
// snapshots its VM output the same way over its own .pas corpus.
func TestFixtures(t *testing.T) {
	categories, err := os.ReadDir("testdata/fixtures")
	if err != nil {
		t.Fatalf("reading testdata/fixtures: %v", err)
	}

	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		cat := cat
		t.Run(cat.Name(), func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join("testdata/fixtures", cat.Name(), "*.bishop"))
			if err != nil {
				t.Fatalf("globbing fixtures: %v", err)
			}
			if len(files) == 0 {
				t.Skipf("no fixtures under %s", cat.Name())
			}
			for _, f := range files {
				f := f
				t.Run(filepath.Base(f), func(t *testing.T) {
					src, err := os.ReadFile(f)
					if err != nil {
						t.Fatalf("reading %s: %v", f, err)
					}
					prog, err := parser.Parse(f, string(src))
					if err != nil {
						t.Fatalf("parse error in %s: %v", f, err)
					}
					chk, diags := checker.Check(f, string(src), prog, module.NewRegistry())
					if len(diags) != 0 {
						t.Fatalf("unexpected checker diagnostics in %s: %v", f, diags)
					}
					// the TestHarness category exercises the test_*-mode
					// harness itself, so it has to be emitted with TestMode
					// on rather than as an ordinary program.
					out := Emit(prog, chk, Options{TestMode: cat.Name() == "TestHarness"})
					snaps.MatchSnapshot(t, out)
				})
			}
		})
	}
}

// TestMainRenaming checks the user's main is renamed so it never collides
// with the generated harness main().
func TestMainRenaming(t *testing.T) {
	src := `
fn main() -> void {
	print("hello");
}
`
	prog, err := parser.Parse("main.bishop", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	chk, diags := checker.Check("main.bishop", src, prog, module.NewRegistry())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	out := Emit(prog, chk, Options{})
	if !strings.Contains(out, userMainName+"(") {
		t.Fatalf("expected renamed main %q in output, got:\n%s", userMainName, out)
	}
	if !strings.Contains(out, "int main(int argc") {
		t.Fatalf("expected generated harness main in output, got:\n%s", out)
	}
}
