package checker

import (
	"regexp"

	"github.com/samber/lo"
)

// MethodSchema is a built-in method's parameter and return type template,
// with "T"/"K"/"V" standing for the receiver container's actual type
// parameters (spec.md §4.3: "T, K, V are replaced by the container's actual
// parameters").
type MethodSchema struct {
	Params []string
	Return string
}

type methodEntry struct {
	Kind   string
	Name   string
	Schema MethodSchema
}

// rawContainerMethods is the closed table spec.md §4.3 describes: one entry
// per (container kind, method name). Not exhaustive of every conceivable
// container operation, but covers the representative methods spec.md names
// explicitly (List.append, Map.get, Map.items) plus the natural remainder
// of each container's surface.
var rawContainerMethods = []methodEntry{
	{"List", "append", MethodSchema{[]string{"T"}, "void"}},
	{"List", "get", MethodSchema{[]string{"int"}, "T?"}},
	{"List", "set", MethodSchema{[]string{"int", "T"}, "void"}},
	{"List", "len", MethodSchema{nil, "int"}},
	{"List", "remove_at", MethodSchema{[]string{"int"}, "void"}},
	{"List", "contains", MethodSchema{[]string{"T"}, "bool"}},
	{"List", "clear", MethodSchema{nil, "void"}},
	{"List", "reverse", MethodSchema{nil, "void"}},

	{"Map", "get", MethodSchema{[]string{"K"}, "V?"}},
	{"Map", "set", MethodSchema{[]string{"K", "V"}, "void"}},
	{"Map", "delete", MethodSchema{[]string{"K"}, "void"}},
	{"Map", "contains_key", MethodSchema{[]string{"K"}, "bool"}},
	{"Map", "len", MethodSchema{nil, "int"}},
	{"Map", "items", MethodSchema{nil, "List<MapItem<K, V>>"}},
	{"Map", "keys", MethodSchema{nil, "List<K>"}},
	{"Map", "values", MethodSchema{nil, "List<V>"}},

	{"Set", "add", MethodSchema{[]string{"T"}, "void"}},
	{"Set", "remove", MethodSchema{[]string{"T"}, "void"}},
	{"Set", "contains", MethodSchema{[]string{"T"}, "bool"}},
	{"Set", "len", MethodSchema{nil, "int"}},
	{"Set", "union", MethodSchema{[]string{"Set<T>"}, "Set<T>"}},
	{"Set", "intersect", MethodSchema{[]string{"Set<T>"}, "Set<T>"}},

	{"Pair", "first", MethodSchema{nil, "T"}},
	{"Pair", "second", MethodSchema{nil, "T"}},
	{"Pair", "get", MethodSchema{[]string{"int"}, "T?"}},

	{"Tuple", "get", MethodSchema{[]string{"int"}, "T?"}},
	{"Tuple", "len", MethodSchema{nil, "int"}},

	{"Deque", "push_front", MethodSchema{[]string{"T"}, "void"}},
	{"Deque", "push_back", MethodSchema{[]string{"T"}, "void"}},
	{"Deque", "pop_front", MethodSchema{nil, "T?"}},
	{"Deque", "pop_back", MethodSchema{nil, "T?"}},
	{"Deque", "len", MethodSchema{nil, "int"}},

	{"Stack", "push", MethodSchema{[]string{"T"}, "void"}},
	{"Stack", "pop", MethodSchema{nil, "T?"}},
	{"Stack", "peek", MethodSchema{nil, "T?"}},
	{"Stack", "len", MethodSchema{nil, "int"}},

	{"Queue", "enqueue", MethodSchema{[]string{"T"}, "void"}},
	{"Queue", "dequeue", MethodSchema{nil, "T?"}},
	{"Queue", "len", MethodSchema{nil, "int"}},

	{"PriorityQueue", "push", MethodSchema{[]string{"T"}, "void"}},
	{"PriorityQueue", "pop", MethodSchema{nil, "T?"}},
	{"PriorityQueue", "peek", MethodSchema{nil, "T?"}},
	{"PriorityQueue", "len", MethodSchema{nil, "int"}},

	{"Channel", "send", MethodSchema{[]string{"T"}, "void"}},
	{"Channel", "recv", MethodSchema{nil, "T"}},
}

// containerMethods is rawContainerMethods grouped by container kind, built
// with samber/lo the way the pack's (Tangerg-lynx/ai) registries are built
// from flat entry lists rather than hand-rolled nested map literals.
var containerMethods = buildContainerMethods()

func buildContainerMethods() map[string]map[string]MethodSchema {
	out := map[string]map[string]MethodSchema{}
	for _, kind := range lo.Uniq(lo.Map(rawContainerMethods, func(e methodEntry, _ int) string { return e.Kind })) {
		out[kind] = map[string]MethodSchema{}
	}
	for _, e := range rawContainerMethods {
		out[e.Kind][e.Name] = e.Schema
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`\b[TKV]\b`)

// substituteSchema replaces T/K/V placeholders in a method schema with the
// receiver container's actual type parameters.
func substituteSchema(schema MethodSchema, t, k, v string) (params []string, ret string) {
	subst := func(s string) string {
		return placeholderPattern.ReplaceAllStringFunc(s, func(tok string) string {
			switch tok {
			case "T":
				return t
			case "K":
				return k
			case "V":
				return v
			}
			return tok
		})
	}
	for _, p := range schema.Params {
		params = append(params, subst(p))
	}
	return params, subst(schema.Return)
}

// containerTypeParams extracts (T, K, V) from a container's already-split
// type parameters, e.g. ["int"] for List<int> or ["str", "int"] for
// Map<str, int> (K/V only meaningful for Map).
func containerTypeParams(typeParams []string) (t, k, v string) {
	switch len(typeParams) {
	case 1:
		return typeParams[0], "", ""
	case 2:
		return "", typeParams[0], typeParams[1]
	}
	return "", "", ""
}

// padMethods are the string/container methods where an optional second
// argument is tolerated (spec.md §4.3: "the padding string methods ... are
// the one place where an optional second argument is tolerated").
var padMethods = map[string]bool{"pad_left": true, "pad_right": true, "center": true}

func isPadMethod(name string) bool { return padMethods[name] }
