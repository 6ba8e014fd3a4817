package checker

// builtinTopLevel are the always-available top-level names (spec.md §4.3's
// resolution order tail: "built-in top-level names (print, sleep, and the
// assertion functions in test mode)"). Only the result type is recorded
// here; FunctionCall argument checking for these is permissive (print is
// variadic over any type; the assertions are fixed-arity but polymorphic).
var builtinTopLevel = map[string]TypeInfo{
	"print": Void,
	"sleep": Void,
}

// assertionFunctions are the test-mode-only assertion built-ins spec.md
// §6.3 names: assert_true/assert_false take one argument, assert_near three
// (a, b, eps) and the rest two; all return void (the emitter generates calls
// into harness helpers).
var assertionFunctions = map[string]bool{
	"assert_eq": true, "assert_ne": true, "assert_true": true, "assert_false": true,
	"assert_gt": true, "assert_gte": true, "assert_lt": true, "assert_lte": true,
	"assert_contains": true, "assert_starts_with": true, "assert_ends_with": true,
	"assert_near": true,
}

// resolveIdent implements spec.md §4.3's identifier resolution order for a
// bare (non-qualified) name: local stack, then module constants declared in
// this file, then the using-alias table, then built-in top-level names.
// Imported-module qualified lookups (`module.name`) are handled separately
// by resolveQualified, since they never reach resolveIdent as a bare name.
func (s *State) resolveIdent(name string) (TypeInfo, bool) {
	if t, ok := s.lookupLocal(name); ok {
		return t, true
	}
	if c, ok := s.Constants[name]; ok {
		return TypeInfo{Type: c.Type}, true
	}
	if ub, ok := s.UsingAliases[name]; ok {
		return ub.Type, true
	}
	if t, ok := builtinTopLevel[name]; ok {
		return t, true
	}
	if assertionFunctions[name] {
		return Void, true
	}
	return TypeInfo{}, false
}

// resolveQualified resolves `moduleAlias.member`, the imported-modules tail
// of spec.md §4.3's resolution order.
func (s *State) resolveQualified(moduleAlias, member string, line int) (TypeInfo, bool) {
	mod, ok := s.Modules[moduleAlias]
	if !ok {
		s.errorf(line, "unknown module %q", moduleAlias)
		return TypeInfo{}, false
	}
	for _, f := range mod.Functions {
		if f.Name == member {
			return TypeInfo{Type: f.ReturnType, Fallible: f.IsFallible()}, true
		}
	}
	for _, c := range mod.Constants {
		if c.Name == member {
			return TypeInfo{Type: c.Type}, true
		}
	}
	for _, st := range mod.Structs {
		if st.Name == member {
			return TypeInfo{Type: st.Name}, true
		}
	}
	s.errorf(line, "module %q has no public member %q", moduleAlias, member)
	return TypeInfo{}, false
}
