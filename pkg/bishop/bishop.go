// Package bishop is the small public facade over the compiler's internal
// stages — lex, parse, module-resolve, check, emit — grounded on the
// teacher's pkg/dwscript Engine: package-level entry points callers drive
// with whole source files, never reaching into internal/ directly.
//
// Bishop has no bytecode VM, so unlike the teacher's Engine there is no
// Run/Eval here: Compile is the only operation, taking a single source file
// to a single generated target-language file (spec.md's Non-goals exclude
// multi-file project discovery; that remains an external driver's job).
package bishop

import (
	"os"

	"github.com/bishop-lang/bishopc/internal/checker"
	"github.com/bishop-lang/bishopc/internal/diag"
	"github.com/bishop-lang/bishopc/internal/emit"
	"github.com/bishop-lang/bishopc/internal/module"
	"github.com/bishop-lang/bishopc/internal/parser"
)

// Options configures one Compile call.
type Options struct {
	// TestMode emits a harness that runs every test_*-prefixed function and
	// reports an aggregate failure count, instead of the program's main.
	TestMode bool

	// Resolver lets an embedder supply its own module lookup (e.g. a
	// multi-file project driver); nil uses the registry's builtins only.
	Resolver module.ImportResolver
}

// Result is the outcome of a successful Compile: the generated
// target-language source plus any non-fatal diagnostics (always empty: the
// checker collects every error it finds, and any error at all makes
// CompileSource return the whole list as its error instead of a Result).
type Result struct {
	Output      string
	Diagnostics diag.List
}

// Compile reads filename, runs it through every stage, and returns the
// generated target-language source. A parse error or any checker
// diagnostic aborts the compile; the returned error's message is already
// formatted as "<file>:<line>: <message>" lines (diag.Diagnostic.String /
// diag.List.String), without source-line context.
func Compile(filename string, opts Options) (Result, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Result{}, err
	}
	return CompileSource(filename, string(src), opts)
}

// CompileSource is Compile without the filesystem read, for callers that
// already hold the source text (e.g. an editor integration, or a test).
func CompileSource(filename, src string, opts Options) (Result, error) {
	prog, err := parser.Parse(filename, src)
	if err != nil {
		return Result{}, err
	}

	reg := module.NewRegistry()
	if opts.Resolver != nil {
		reg.SetUserResolver(opts.Resolver)
	}

	chk, diags := checker.Check(filename, src, prog, reg)
	if diags.HasErrors() {
		return Result{}, diags
	}

	out := emit.Emit(prog, chk, emit.Options{TestMode: opts.TestMode})
	return Result{Output: out, Diagnostics: diags}, nil
}
