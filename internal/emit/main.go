package emit

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
)

// hasUserMain reports whether the program declares a top-level `main`.
func hasUserMain(prog *ast.Program) bool {
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			return true
		}
	}
	return false
}

// testFunctions returns every test_*-prefixed function definition, in
// source order (spec.md §4.4's test-mode harness: "every test_*-prefixed
// function is collected").
func testFunctions(prog *ast.Program) []*ast.FunctionDef {
	var out []*ast.FunctionDef
	for _, fn := range prog.Functions {
		if strings.HasPrefix(fn.Name, "test_") {
			out = append(out, fn)
		}
	}
	return out
}

// emitMainHarness writes the real target main(): in normal mode it
// initializes the runtime and schedules the renamed user main as the first
// task; in test mode it instead dispatches every collected test_* function
// as its own task and returns the accumulated bishop_test::failure_count
// (spec.md §4.4). A fallible test function's returned Result is checked
// after it runs (dispatching each test into a task "with special-case
// error reporting for fallible tests", spec.md §4.4) so a propagated
// failure is counted the same way an assertion mismatch is, rather than
// being silently discarded.
func (s *State) emitMainHarness(prog *ast.Program) string {
	var sb strings.Builder
	w := func(ss ...string) {
		for _, x := range ss {
			sb.WriteString(x)
		}
	}
	wl := func(ss ...string) { w(ss...); sb.WriteByte('\n') }

	wl("int main(int argc, char** argv) {")
	wl("  bishop::Runtime rt;")
	if s.Opts.TestMode {
		for _, fn := range testFunctions(prog) {
			name := escapeIdent(fn.Name)
			if fn.IsFallible() {
				wl("  rt.schedule([]() -> bishop::Task<void> {")
				wl("    auto bishop_test_result = co_await ", name, "();")
				wl("    if (bishop::is_or_falsy(bishop_test_result)) {")
				wl("      ++bishop_test::failure_count;")
				wl(`      bishop::report_failure("`, fn.Name, `");`)
				wl("    }")
				wl("  });")
				continue
			}
			wl("  rt.schedule([]() -> bishop::Task<void> { co_await ", name, "(); });")
		}
		wl("  rt.run_to_completion();")
		wl("  return bishop_test::failure_count;")
	} else if hasUserMain(prog) {
		wl("  rt.schedule([]() -> bishop::Task<void> { co_await ", userMainName, "(); });")
		wl("  rt.run_to_completion();")
		wl("  return 0;")
	} else {
		wl("  return 0;")
	}
	wl("}")
	return sb.String()
}
