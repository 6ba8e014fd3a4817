package emit

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/bishop-lang/bishopc/internal/ast"
)

// emitStruct writes a target-language record with fields in declaration
// order (spec.md §4.4).
func (s *State) emitStruct(st *ast.StructDef) {
	s.writeLine("struct ", escapeIdent(st.Name), " {")
	for _, f := range st.Fields {
		s.writeLine("  ", MapType(f.Type, false), " ", escapeIdent(f.Name), ";")
	}
	s.writeLine("};")
	s.sb.WriteByte('\n')
}

// emitError writes an error record extending the runtime error base, plus
// a full constructor and (if the error has fields) a message-only
// convenience constructor that default-initializes every field (spec.md
// §4.4).
func (s *State) emitError(e *ast.ErrorDef) {
	name := escapeIdent(e.Name)
	s.writeLine("struct ", name, " : public bishop::ErrorBase {")
	for _, f := range e.Fields {
		s.writeLine("  ", MapType(f.Type, false), " ", escapeIdent(f.Name), ";")
	}

	var fullParams []string
	var fullInits []string
	fullParams = append(fullParams, "bishop::Str message")
	fullInits = append(fullInits, "bishop::ErrorBase(message)")
	for _, f := range e.Fields {
		fullParams = append(fullParams, MapType(f.Type, true)+" "+escapeIdent(f.Name)+"_")
		fullInits = append(fullInits, escapeIdent(f.Name)+"("+escapeIdent(f.Name)+"_)")
	}
	fullParams = append(fullParams, "const bishop::ErrorBase* cause = nullptr")

	s.writeLine("  ", name, "(", strings.Join(fullParams, ", "), ")")
	s.writeLine("    : ", strings.Join(fullInits, ", "), " { set_cause(cause); }")

	if len(e.Fields) > 0 {
		s.writeLine("  explicit ", name, "(bishop::Str message)")
		var defaultInits []string
		defaultInits = append(defaultInits, "bishop::ErrorBase(message)")
		for _, f := range e.Fields {
			defaultInits = append(defaultInits, escapeIdent(f.Name)+"("+defaultValueFor(f.Type)+")")
		}
		s.writeLine("    : ", strings.Join(defaultInits, ", "), " {}")
	}

	s.writeLine("};")
	s.sb.WriteByte('\n')
}

// defaultValueFor produces the zero/empty/default-construct literal for a
// field type (spec.md §4.4: "numeric -> zero, bool -> false, string ->
// empty, composite -> default-construct"), coercing through spf13/cast
// rather than hand-rolled per-kind string branching for the numeric cases.
func defaultValueFor(fieldType string) string {
	switch fieldType {
	case "int":
		return fmt.Sprintf("%d", cast.ToInt64(0))
	case "u32", "u64":
		return fmt.Sprintf("%d", cast.ToUint64(0))
	case "f32", "f64":
		return fmt.Sprintf("%g", cast.ToFloat64(0))
	case "bool":
		return "false"
	case "str", "cstr":
		return "bishop::Str()"
	default:
		return MapType(fieldType, false) + "{}"
	}
}

// emitFunction writes a free function, or (for a fallible one) a
// Result<T>-returning function whose body gets an implicit empty success
// return appended if it doesn't already end in return/fail.
// userMainName is the user's `main` renamed so it never collides with the
// real target main this package's harness generates (spec.md §4.4).
const userMainName = "_nog_main"

func (s *State) emitFunction(fn *ast.FunctionDef) {
	retType := MapType(fn.ReturnType, false)
	if fn.IsFallible() {
		retType = ResultType(fn.ReturnType)
	}
	name := fn.Name
	if name == "main" {
		name = userMainName
	}
	s.writeLine(retType, " ", escapeIdent(name), "(", s.paramList(fn.Params), ") {")
	s.inFn = &fnEmitCtx{Fallible: fn.IsFallible(), ReturnType: fn.ReturnType}
	s.emitStmts(fn.Body, 1)
	if fn.IsFallible() && !bodyEndsInControlTransfer(fn.Body) {
		s.writeLine("  return ", ResultType(fn.ReturnType), "::ok();")
	}
	s.inFn = nil
	s.writeLine("}")
	s.sb.WriteByte('\n')
}

// emitMethod writes a struct method as a free function taking an explicit
// receiver parameter (instance methods) or none (static methods), the
// teacher's interp package dispatches methods the analogous way: looked up
// by (struct name, method name) rather than emitted as nested members,
// which keeps self-rewriting (spec.md §4.4) a single, local concern.
func (s *State) emitMethod(m *ast.MethodDef) {
	retType := MapType(m.ReturnType, false)
	if m.IsFallible() {
		retType = ResultType(m.ReturnType)
	}
	params := s.paramList(m.Params)
	if !m.IsStatic {
		recv := escapeIdent(m.StructName) + "& self"
		if params == "" {
			params = recv
		} else {
			params = recv + ", " + params
		}
	}
	s.writeLine(retType, " ", escapeIdent(m.StructName), "_", escapeIdent(m.Name), "(", params, ") {")
	s.inFn = &fnEmitCtx{Fallible: m.IsFallible(), ReturnType: m.ReturnType}
	s.emitStmts(m.Body, 1)
	if m.IsFallible() && !bodyEndsInControlTransfer(m.Body) {
		s.writeLine("  return ", ResultType(m.ReturnType), "::ok();")
	}
	s.inFn = nil
	s.writeLine("}")
	s.sb.WriteByte('\n')
}

func (s *State) emitExtern(ext *ast.ExternFunctionDef) {
	s.writeLine(`extern "C" {`)
	s.writeLine(MapType(ext.ReturnType, false), " ", escapeIdent(ext.Name), "(", s.paramList(ext.Params), ");  // ", ext.Library)
	s.writeLine("}")
}

func (s *State) paramList(params []ast.Param) string {
	var parts []string
	for _, p := range params {
		parts = append(parts, MapType(p.Type, true)+" "+escapeIdent(p.Name))
	}
	return strings.Join(parts, ", ")
}

// bodyEndsInControlTransfer reports whether the last statement of body is
// itself a control transfer (return/fail), the condition spec.md §4.4 uses
// to decide whether to synthesize the implicit empty-result return.
func bodyEndsInControlTransfer(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ast.ReturnStmt, *ast.FailStmt:
		return true
	}
	return false
}
