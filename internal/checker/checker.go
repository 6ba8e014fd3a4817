package checker

// Check's driver logic: global symbol-table registration, import/using
// resolution against a module.Registry, and the per-function/method body
// walk. The package doc lives in state.go.

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/diag"
	"github.com/bishop-lang/bishopc/internal/module"
)

// Check type-checks prog and returns the resulting State (useful to the
// emitter for its own lookups) alongside any diagnostics collected.
func Check(file, src string, prog *ast.Program, reg *module.Registry) (*State, diag.List) {
	s := NewState(file, src)
	s.registerGlobals(prog)
	s.resolveImports(prog, reg)
	s.checkBodies(prog)
	return s, s.Diags
}

func (s *State) registerGlobals(prog *ast.Program) {
	for _, st := range prog.Structs {
		s.Structs[st.Name] = st
		s.Methods[st.Name] = map[string]*ast.MethodDef{}
	}
	for _, e := range prog.Errors {
		s.Errors[e.Name] = e
	}
	for _, fn := range prog.Functions {
		s.Functions[fn.Name] = fn
	}
	for _, m := range prog.Methods {
		if _, ok := s.Methods[m.StructName]; !ok {
			s.Methods[m.StructName] = map[string]*ast.MethodDef{}
		}
		s.Methods[m.StructName][m.Name] = m
	}
	for _, ext := range prog.Externs {
		s.Externs[ext.Name] = ext
	}
	for _, c := range prog.Constants {
		s.Constants[c.Name] = c
	}
}

func (s *State) resolveImports(prog *ast.Program, reg *module.Registry) {
	if reg == nil {
		return
	}
	for _, imp := range prog.Imports {
		mod, err := reg.Resolve(imp.ModulePath)
		if err != nil {
			s.errorf(imp.Line(), "import %q: %v", imp.ModulePath, err)
			continue
		}
		alias := imp.Alias
		if alias == "" {
			alias = module.DefaultAlias(imp.ModulePath)
		}
		s.Modules[alias] = mod
	}
	// Usings are resolved after every import so a using can reference any
	// imported module regardless of source order.
	for _, u := range prog.Usings {
		s.resolveUsing(u)
	}
}

func (s *State) resolveUsing(u *ast.UsingStmt) {
	if u.WildcardModule != "" {
		mod, ok := s.Modules[u.WildcardModule]
		if !ok {
			s.errorf(u.Line(), "using %s.*: unknown module alias", u.WildcardModule)
			return
		}
		for _, f := range mod.Functions {
			s.bindUsing(f.Name, u.WildcardModule, MemberFunction, TypeInfo{Type: f.ReturnType, Fallible: f.IsFallible()})
		}
		for _, st := range mod.Structs {
			s.bindUsing(st.Name, u.WildcardModule, MemberStruct, TypeInfo{Type: st.Name})
		}
		for _, c := range mod.Constants {
			s.bindUsing(c.Name, u.WildcardModule, MemberConst, TypeInfo{Type: c.Type})
		}
		return
	}
	for _, mem := range u.Members {
		mod, ok := s.Modules[mem.Module]
		if !ok {
			s.errorf(u.Line(), "using %s.%s: unknown module alias", mem.Module, mem.Member)
			continue
		}
		t, ok := s.resolveQualified(mem.Module, mem.Member, u.Line())
		if !ok {
			continue
		}
		kind := MemberFunction
		for _, st := range mod.Structs {
			if st.Name == mem.Member {
				kind = MemberStruct
			}
		}
		for _, c := range mod.Constants {
			if c.Name == mem.Member {
				kind = MemberConst
			}
		}
		s.bindUsing(mem.Member, mem.Module, kind, t)
	}
}

// bindUsing keeps the earliest binding for name: the first using to
// introduce a local name wins and later usings that collide with it are
// no-ops, matching the original's get_using_alias (a linear scan of
// aliases appended in declaration order, returning the first match) rather
// than last-write-wins.
func (s *State) bindUsing(name, moduleAlias string, kind MemberKind, t TypeInfo) {
	if _, exists := s.UsingAliases[name]; exists {
		return
	}
	s.UsingAliases[name] = UsingBinding{ModuleAlias: moduleAlias, Member: name, Kind: kind, Type: t}
}

func (s *State) checkBodies(prog *ast.Program) {
	for _, fn := range prog.Functions {
		s.checkFunctionBody(fn)
	}
	for _, m := range prog.Methods {
		s.checkMethodBody(m)
	}
}

func (s *State) checkFunctionBody(fn *ast.FunctionDef) {
	s.pushScope()
	for _, p := range fn.Params {
		s.declareLocal(p.Name, TypeInfo{Type: p.Type})
	}
	prev := s.curFn
	s.curFn = &funcContext{ReturnType: fn.ReturnType, Fallible: fn.IsFallible(), Async: fn.IsAsync}
	s.checkStmts(fn.Body)
	s.curFn = prev
	s.popScope()
}

func (s *State) checkMethodBody(m *ast.MethodDef) {
	s.pushScope()
	if !m.IsStatic {
		s.declareLocal("self", TypeInfo{Type: m.StructName + "*"})
	}
	for _, p := range m.Params {
		s.declareLocal(p.Name, TypeInfo{Type: p.Type})
	}
	prev := s.curFn
	s.curFn = &funcContext{ReturnType: m.ReturnType, Fallible: m.IsFallible(), Async: m.IsAsync}
	s.checkStmts(m.Body)
	s.curFn = prev
	s.popScope()
}
