package emit

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/types"
)

// methodRewrite writes one MethodCall's target-language spelling given its
// already-resolved object and args.
type methodRewrite func(s *State, m *ast.MethodCall)

// containerRewrites maps (container kind, Bishop method name) to the
// rewrite that reaches the chosen std:: container or bishop:: adapter's
// actual surface (spec.md §4.4's per-container "dedicated rewrite
// routines"). List/Map/Set/Deque target real std:: containers whose method
// names don't line up with Bishop's, so those get helper-function or
// operator rewrites; Pair/Tuple/Stack/Queue/PriorityQueue/Channel target
// bishop:: adapters this project owns the surface of, so their Bishop
// method names are kept verbatim.
var containerRewrites = map[string]map[string]methodRewrite{
	"List": {
		"append":    simpleCall("push_back"),
		"get":       helperCall("bishop::vec_get"),
		"set":       indexAssign(),
		"len":       sizeCall(),
		"remove_at": vecRemoveAt(),
		"contains":  helperCall("bishop::vec_contains"),
		"clear":     simpleCall("clear"),
		"reverse":   reverseCall(),
	},
	"Map": {
		"get":          helperCall("bishop::map_get"),
		"set":          indexAssign(),
		"delete":       simpleCall("erase"),
		"contains_key": simpleCall("contains"),
		"len":          sizeCall(),
		"items":        freeHelper("bishop::map_items"),
		"keys":         freeHelper("bishop::map_keys"),
		"values":       freeHelper("bishop::map_values"),
	},
	"Set": {
		"add":       simpleCall("insert"),
		"remove":    simpleCall("erase"),
		"contains":  simpleCall("contains"),
		"len":       sizeCall(),
		"union":     freeHelper("bishop::set_union"),
		"intersect": freeHelper("bishop::set_intersect"),
	},
	"Deque": {
		"push_front": simpleCall("push_front"),
		"push_back":  simpleCall("push_back"),
		"pop_front":  helperCall("bishop::deque_pop_front"),
		"pop_back":   helperCall("bishop::deque_pop_back"),
		"len":        sizeCall(),
	},
}

func simpleCall(target string) methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.emitExpr(m.Object)
		s.write(".", target, "(")
		s.emitExprList(m.Args)
		s.write(")")
	}
}

// helperCall routes through a free function taking the object as its first
// argument — used for operations (optional-returning get, membership test
// over a linear scan) the chosen std:: container doesn't expose directly.
func helperCall(fn string) methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.write(fn, "(")
		s.emitExpr(m.Object)
		for _, a := range m.Args {
			s.write(", ")
			s.emitExpr(a)
		}
		s.write(")")
	}
}

// freeHelper is helperCall under another name, used for the set/map helpers
// (items/keys/values take no args beyond the receiver; union/intersect take
// the other set).
func freeHelper(fn string) methodRewrite { return helperCall(fn) }

func indexAssign() methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.write("(")
		s.emitExpr(m.Object)
		s.write("[")
		s.emitExpr(m.Args[0])
		s.write("] = ")
		s.emitExpr(m.Args[1])
		s.write(")")
	}
}

func sizeCall() methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.write("static_cast<int64_t>(")
		s.emitExpr(m.Object)
		s.write(".size())")
	}
}

func vecRemoveAt() methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.emitExpr(m.Object)
		s.write(".erase(")
		s.emitExpr(m.Object)
		s.write(".begin() + ")
		s.emitExpr(m.Args[0])
		s.write(")")
	}
}

func reverseCall() methodRewrite {
	return func(s *State, m *ast.MethodCall) {
		s.write("std::reverse(")
		s.emitExpr(m.Object)
		s.write(".begin(), ")
		s.emitExpr(m.Object)
		s.write(".end())")
	}
}

// containerMethodRewrite resolves a MethodCall against the base type's
// container kind. Pair/Tuple/Stack/Queue/PriorityQueue/Channel (the
// bishop:: adapters this project defines itself) fall through to the
// generic member-call rewrite since their Bishop method names are kept as
// their actual C++ method names.
func containerMethodRewrite(base, method string) (methodRewrite, bool) {
	kind, _, ok := types.ParseContainer(base)
	if !ok || !types.IsContainerKind(kind) {
		return nil, false
	}
	if table, ok := containerRewrites[kind]; ok {
		if rw, ok := table[method]; ok {
			return rw, true
		}
	}
	return simpleCall(method), true
}

// stringMethodRewrite always succeeds: bishop::Str (the target type for
// Bishop's str) is this project's own runtime type, so every string
// method keeps its Bishop name as its actual C++ member name (spec.md
// §4.4 lists ~30 str methods; none need a rewrite since the adapter is
// purpose-built to match).
func stringMethodRewrite(method string) (methodRewrite, bool) {
	return simpleCall(method), true
}
