package emit

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/checker"
)

// Emit runs the full code-generation pass over a type-checked program:
// declarations and bodies first (so channel/async usage discovered mid-body
// can still influence which headers the preamble pulls in), then the
// preamble, then the target main()/test-harness wrapper, concatenated in
// source-file order (spec.md §4.4).
func Emit(prog *ast.Program, chk *checker.State, opts Options) string {
	s := NewState(chk, opts)
	seedChannel, seedAsync := detectChannelAndAsyncUsage(prog)
	s.needsChannelHeader = seedChannel
	s.needsAsync = seedAsync

	for _, st := range prog.Structs {
		s.emitStruct(st)
	}
	for _, e := range prog.Errors {
		s.emitError(e)
	}
	for _, ext := range prog.Externs {
		s.emitExtern(ext)
	}
	for _, fn := range prog.Functions {
		s.emitFunction(fn)
	}
	for _, m := range prog.Methods {
		s.emitMethod(m)
	}
	body := s.sb.String()
	s.sb.Reset()

	preamble := s.emitPreamble(prog)
	harness := s.emitMainHarness(prog)

	return preamble + "\n" + body + harness + "\n"
}
