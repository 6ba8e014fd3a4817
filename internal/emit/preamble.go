package emit

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
)

const baseRuntimeInclude = `#include "bishop_rt/runtime.h"`
const channelRuntimeInclude = `#include "bishop_rt/channel.h"`

// detectChannelAndAsyncUsage scans the program's declared signatures and
// field types for the literal "Channel<" substring, and its function/method
// defs for the IsAsync flag the parser already computed — a type-string
// grep stands in for a full expression walk here since ast intentionally
// has no generic Walk (every node-kind dispatch in this package is a hand
// written switch, per internal/ast's package doc), and every occurrence of
// a channel operation that matters to codegen shows up in a declared type
// somewhere on the path to it (a parameter, a field, or a return type).
func detectChannelAndAsyncUsage(prog *ast.Program) (needsChannel, needsAsync bool) {
	checkType := func(t string) {
		if strings.Contains(t, "Channel<") {
			needsChannel = true
		}
	}
	for _, fn := range prog.Functions {
		if fn.IsAsync {
			needsAsync = true
		}
		for _, p := range fn.Params {
			checkType(p.Type)
		}
		checkType(fn.ReturnType)
	}
	for _, m := range prog.Methods {
		if m.IsAsync {
			needsAsync = true
		}
		for _, p := range m.Params {
			checkType(p.Type)
		}
		checkType(m.ReturnType)
	}
	for _, st := range prog.Structs {
		for _, f := range st.Fields {
			checkType(f.Type)
		}
	}
	if needsAsync {
		needsChannel = true
	}
	return needsChannel, needsAsync
}

// emitPreamble writes every #include the translation unit needs (spec.md
// §4.4's Preamble), followed by the test-mode assertion-helper block when
// Opts.TestMode is set. Must run after the body pass has populated
// s.needsChannelHeader/s.needsAsync so the decision is based on
// what was actually emitted, but the preamble text itself is prepended to
// the final output in Emit.
func (s *State) emitPreamble(prog *ast.Program) string {
	var sb strings.Builder
	for _, imp := range prog.Imports {
		mod, ok := s.resolveModule(imp.Alias)
		if !ok || mod.RuntimeInclude == "" {
			continue
		}
		sb.WriteString(mod.RuntimeInclude)
		sb.WriteByte('\n')
	}
	sb.WriteString(baseRuntimeInclude)
	sb.WriteByte('\n')
	if s.needsChannelHeader {
		sb.WriteString(channelRuntimeInclude)
		sb.WriteByte('\n')
	}
	if s.Opts.TestMode {
		sb.WriteString(assertionHelpersBlock)
	}
	return sb.String()
}

// assertionHelpersBlock defines one helper per spec.md §6.3 assertion
// kind, plus the file-local failure counter every helper increments on
// mismatch.
const assertionHelpersBlock = `
namespace bishop_test {
inline int failure_count = 0;
template <typename A, typename B>
inline void assert_eq(const A& a, const B& b, const char* expr) {
  if (!(a == b)) { ++failure_count; bishop::report_failure(expr); }
}
template <typename A, typename B>
inline void assert_ne(const A& a, const B& b, const char* expr) {
  if (!(a != b)) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_true(bool v, const char* expr) {
  if (!v) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_false(bool v, const char* expr) {
  if (v) { ++failure_count; bishop::report_failure(expr); }
}
template <typename A, typename B>
inline void assert_gt(const A& a, const B& b, const char* expr) {
  if (!(a > b)) { ++failure_count; bishop::report_failure(expr); }
}
template <typename A, typename B>
inline void assert_gte(const A& a, const B& b, const char* expr) {
  if (!(a >= b)) { ++failure_count; bishop::report_failure(expr); }
}
template <typename A, typename B>
inline void assert_lt(const A& a, const B& b, const char* expr) {
  if (!(a < b)) { ++failure_count; bishop::report_failure(expr); }
}
template <typename A, typename B>
inline void assert_lte(const A& a, const B& b, const char* expr) {
  if (!(a <= b)) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_contains(const bishop::Str& hay, const bishop::Str& needle, const char* expr) {
  if (!hay.contains(needle)) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_starts_with(const bishop::Str& s, const bishop::Str& prefix, const char* expr) {
  if (!s.starts_with(prefix)) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_ends_with(const bishop::Str& s, const bishop::Str& suffix, const char* expr) {
  if (!s.ends_with(suffix)) { ++failure_count; bishop::report_failure(expr); }
}
inline void assert_near(double a, double b, double eps, const char* expr) {
  if (std::abs(a - b) > eps) { ++failure_count; bishop::report_failure(expr); }
}
}  // namespace bishop_test
`
