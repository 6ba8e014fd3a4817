// Package module implements Bishop's module public-surface model and
// resolver (spec.md §4.5): each import resolves to either a built-in
// standard module (manufactured here) or a user module handed in by the
// external driver. Only the Public declarations of either are exposed.
package module

import (
	"github.com/bishop-lang/bishopc/internal/ast"
)

// FunctionSig is a public function's surface: name, params, return type,
// error type, and async flag (spec.md §6.2).
type FunctionSig struct {
	Name       string
	Params     []ast.Param
	ReturnType string
	ErrorType  string
	IsAsync    bool
}

// IsFallible reports whether the function declares an `or err` clause.
func (f FunctionSig) IsFallible() bool { return f.ErrorType != "" }

// MethodSig is a public method's surface, attached to a struct by name.
type MethodSig struct {
	StructName string
	Name       string
	Params     []ast.Param
	ReturnType string
	ErrorType  string
	IsStatic   bool
	IsAsync    bool
}

// StructSig is a public struct's surface: its name and fields.
type StructSig struct {
	Name   string
	Fields []ast.Field
}

// ConstSig is a public constant's surface: its name and type.
type ConstSig struct {
	Name string
	Type string
}

// ExternSig is a public extern function's surface.
type ExternSig struct {
	Name       string
	Params     []ast.Param
	ReturnType string
	Library    string
}

// Module is the public surface of one importable unit, built-in or
// user-authored (spec.md §6.2). RuntimeInclude is the target-language
// include/import line the emitter writes whenever this module is used by
// a compiled file (empty for user modules, which have no runtime
// counterpart to include).
type Module struct {
	Path           string
	Functions      []FunctionSig
	Structs        []StructSig
	Methods        []MethodSig
	Constants      []ConstSig
	Externs        []ExternSig
	RuntimeInclude string
}

// FunctionNames returns every public function name the module exposes, for
// wildcard-using expansion (spec.md §4.5: "wildcard usings expand to the
// module's full public surface").
func (m *Module) FunctionNames() []string {
	names := make([]string, len(m.Functions))
	for i, f := range m.Functions {
		names[i] = f.Name
	}
	return names
}

// PublicSurfaceFromProgram builds a Module's declaration lists from a
// parsed user file's Program, keeping only Public declarations (spec.md
// §4.5's "the Module exposes only the Public declarations").
func PublicSurfaceFromProgram(path string, prog *ast.Program) *Module {
	m := &Module{Path: path}
	for _, fn := range prog.Functions {
		if fn.Visibility != ast.Public {
			continue
		}
		m.Functions = append(m.Functions, FunctionSig{
			Name: fn.Name, Params: fn.Params, ReturnType: fn.ReturnType,
			ErrorType: fn.ErrorType, IsAsync: fn.IsAsync,
		})
	}
	for _, s := range prog.Structs {
		if s.Visibility != ast.Public {
			continue
		}
		m.Structs = append(m.Structs, StructSig{Name: s.Name, Fields: s.Fields})
	}
	for _, meth := range prog.Methods {
		if meth.Visibility != ast.Public {
			continue
		}
		m.Methods = append(m.Methods, MethodSig{
			StructName: meth.StructName, Name: meth.Name, Params: meth.Params,
			ReturnType: meth.ReturnType, ErrorType: meth.ErrorType,
			IsStatic: meth.IsStatic, IsAsync: meth.IsAsync,
		})
	}
	for _, c := range prog.Constants {
		if c.Visibility != ast.Public {
			continue
		}
		m.Constants = append(m.Constants, ConstSig{Name: c.Name, Type: c.Type})
	}
	for _, e := range prog.Externs {
		if e.Visibility != ast.Public {
			continue
		}
		m.Externs = append(m.Externs, ExternSig{
			Name: e.Name, Params: e.Params, ReturnType: e.ReturnType, Library: e.Library,
		})
	}
	return m
}
