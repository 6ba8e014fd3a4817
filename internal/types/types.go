// Package types implements the shared type-string utilities described in
// spec.md §3.3: Bishop represents every type as a structured string, and
// both the checker and the emitter need to parse and rebuild those strings.
// All parsing here is bracket-depth aware so that nested parametric types
// (List<Map<str, List<int>>>) and module-qualified names (net.TcpStream)
// split correctly.
package types

import "strings"

// Primitive type names, the closed set from spec.md §3.1.
var Primitives = map[string]bool{
	"int": true, "str": true, "bool": true, "f32": true, "f64": true,
	"u32": true, "u64": true, "cint": true, "cstr": true, "void": true,
}

// ContainerArity gives the number of type parameters each built-in
// parametric container takes. Map (and MapItem, below) are binary; everything else
// (including Pair and Tuple, which are homogeneous fixed-arity containers
// of a single element type per spec.md §3.3's "Pair<Tuple<f64>>" example)
// is unary.
var ContainerArity = map[string]int{
	"Channel": 1, "List": 1, "Set": 1, "Pair": 1, "Tuple": 1,
	"Deque": 1, "Stack": 1, "Queue": 1, "PriorityQueue": 1,
	"Map": 2,
	// MapItem isn't one of the ten container keywords spec.md enumerates —
	// it's the key/value carrier Map.items() yields while iterating — but it
	// shares their bracket-depth-parsed, arity-checked shape, so it lives in
	// the same table rather than a one-off parser.
	"MapItem": 2,
}

// IsPointer reports whether name denotes a pointer to a struct (a trailing
// "*" — the only pointer form Bishop allows).
func IsPointer(name string) bool {
	return strings.HasSuffix(name, "*")
}

// Deref strips a trailing pointer "*", if present.
func Deref(name string) string {
	return strings.TrimSuffix(name, "*")
}

// IsPrimitive reports whether name is exactly one of the closed primitive
// names.
func IsPrimitive(name string) bool {
	return Primitives[name]
}

// IsVoid reports whether name is the empty-return-type marker.
func IsVoid(name string) bool {
	return name == "" || name == "void"
}

// SplitTypeParams splits the comma-separated parameter list inside a
// generic type's angle brackets, respecting nested <...> so that
// "Map<str, List<int>>"'s inner params split as ["str", "List<int>"] and
// not ["str", "List<int", ">"].
func SplitTypeParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// ParseContainer recognizes "Name<params>" and returns the bare name plus
// its bracket-depth-aware-split parameters. ok is false if name has no
// top-level "<...>" suffix (a non-generic type, or a malformed one).
func ParseContainer(name string) (kind string, params []string, ok bool) {
	open := strings.IndexByte(name, '<')
	if open < 0 || !strings.HasSuffix(name, ">") {
		return "", nil, false
	}
	kind = name[:open]
	inner := name[open+1 : len(name)-1]
	return kind, SplitTypeParams(inner), true
}

// IsContainerKind reports whether kind is one of the ten built-in
// parametric container keywords or MapItem (any key of ContainerArity).
func IsContainerKind(kind string) bool {
	_, ok := ContainerArity[kind]
	return ok
}

// ParseQualified splits a module-qualified type name ("net.TcpStream") into
// its module alias and bare name. A dot that appears after the first "<"
// (i.e. inside a generic parameter) does not count — module qualification
// only applies to the outermost name, so this only looks at the prefix of
// name up to the first "<" if present.
func ParseQualified(name string) (module, bare string, ok bool) {
	head := name
	if i := strings.IndexByte(name, '<'); i >= 0 {
		head = name[:i]
	}
	dot := strings.LastIndexByte(head, '.')
	if dot < 0 {
		return "", "", false
	}
	rest := name[dot+1:]
	return head[:dot], rest, true
}

// FunctionType is the parsed form of "fn(T1, T2, ...) -> R", with Return
// empty meaning void.
type FunctionType struct {
	Params []string
	Return string
}

// ParseFunctionType parses a "fn(...)" or "fn(...) -> R" type string.
func ParseFunctionType(name string) (*FunctionType, bool) {
	if !strings.HasPrefix(name, "fn(") {
		return nil, false
	}
	rest := name[len("fn("):]
	depth := 1
	closeIdx := -1
	for i, r := range rest {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return nil, false
	}
	paramsStr := rest[:closeIdx]
	tail := strings.TrimSpace(rest[closeIdx+1:])

	ft := &FunctionType{}
	if paramsStr != "" {
		ft.Params = SplitTypeParams(paramsStr)
	}
	if tail == "" {
		return ft, true
	}
	tail = strings.TrimPrefix(tail, "->")
	ft.Return = strings.TrimSpace(tail)
	return ft, true
}

// FormatFunctionType rebuilds a function type string from its parts.
func FormatFunctionType(params []string, ret string) string {
	var sb strings.Builder
	sb.WriteString("fn(")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')
	if !IsVoid(ret) {
		sb.WriteString(" -> ")
		sb.WriteString(ret)
	}
	return sb.String()
}

// FormatContainer rebuilds a generic container type string from its parts.
func FormatContainer(kind string, params []string) string {
	return kind + "<" + strings.Join(params, ", ") + ">"
}
