package emit

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/types"
)

// primitiveTargetNames is the fixed source-primitive to target-type table
// (spec.md §4.4: "Primitives map directly").
var primitiveTargetNames = map[string]string{
	"int": "int64_t", "f32": "float", "f64": "double",
	"u32": "uint32_t", "u64": "uint64_t", "cint": "int", "cstr": "const char*",
	"bool": "bool", "str": "bishop::Str", "void": "void",
}

// containerTargetNames maps a built-in container kind to its target
// adapter template name (spec.md §4.4: "ordered sequence -> vector-like,
// map -> unordered_map-like, set -> unordered_set-like, etc.").
var containerTargetNames = map[string]string{
	"List": "std::vector", "Map": "std::unordered_map", "Set": "std::unordered_set",
	"Pair": "bishop::Pair", "Tuple": "bishop::Tuple", "Deque": "std::deque",
	"Stack": "bishop::Stack", "Queue": "bishop::Queue",
	"PriorityQueue": "bishop::PriorityQueue", "Channel": "bishop::Channel",
	"MapItem": "bishop::MapItem",
}

// MapType translates a source type string (spec.md §3.3's bracket-depth
// structured strings) to its target spelling. isParam distinguishes a
// Channel<T> parameter (emitted by reference, since channels are
// non-copyable) from a Channel<T> local (a value type).
func MapType(t string, isParam bool) string {
	if t == "" {
		return "void"
	}
	if strings.HasSuffix(t, "?") {
		return "std::optional<" + MapType(strings.TrimSuffix(t, "?"), isParam) + ">"
	}
	if types.IsPointer(t) {
		return MapType(types.Deref(t), isParam) + "*"
	}
	if ft, ok := types.ParseFunctionType(t); ok {
		return mapFunctionType(ft, isParam)
	}
	if kind, params, ok := types.ParseContainer(t); ok {
		return mapContainer(kind, params, isParam)
	}
	if mod, bare, ok := types.ParseQualified(t); ok {
		return remapModuleName(mod) + "::" + bare
	}
	if name, ok := primitiveTargetNames[t]; ok {
		return name
	}
	// a user struct or error name emits verbatim (the emitter never
	// renames struct names, only identifiers that collide with keywords).
	return t
}

func mapFunctionType(ft *types.FunctionType, isParam bool) string {
	ret := "void"
	if !types.IsVoid(ft.Return) {
		ret = MapType(ft.Return, false)
	}
	var params []string
	for _, p := range ft.Params {
		params = append(params, MapType(p, true))
	}
	return "std::function<" + ret + "(" + strings.Join(params, ", ") + ")>"
}

func mapContainer(kind string, params []string, isParam bool) string {
	target, ok := containerTargetNames[kind]
	if !ok {
		return kind
	}
	var mapped []string
	for _, p := range params {
		mapped = append(mapped, MapType(p, false))
	}
	full := target + "<" + strings.Join(mapped, ", ") + ">"
	if kind == "Channel" && isParam {
		return full + "&"
	}
	return full
}

// ResultType wraps a fallible function's return type (spec.md §4.4:
// "Their return type becomes Result<T>").
func ResultType(ret string) string {
	target := "void"
	if !types.IsVoid(ret) {
		target = MapType(ret, false)
	}
	return "bishop::Result<" + target + ">"
}
