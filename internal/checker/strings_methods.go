package checker

import "github.com/samber/lo"

// rawStringMethods is the `str` primitive's method table (spec.md §4.3: "a
// similar table for the str primitive (≈30 methods)"), including every
// runtime-library-free string operation spec.md §4.4 names by name (title,
// trim, pad_*, replace_all, split, split_lines, repeat, center, to_int,
// to_float, upper, lower).
var rawStringMethods = []methodEntry{
	{"str", "len", MethodSchema{nil, "int"}},
	{"str", "upper", MethodSchema{nil, "str"}},
	{"str", "lower", MethodSchema{nil, "str"}},
	{"str", "title", MethodSchema{nil, "str"}},
	{"str", "trim", MethodSchema{nil, "str"}},
	{"str", "trim_left", MethodSchema{nil, "str"}},
	{"str", "trim_right", MethodSchema{nil, "str"}},
	{"str", "pad_left", MethodSchema{[]string{"int"}, "str"}},
	{"str", "pad_right", MethodSchema{[]string{"int"}, "str"}},
	{"str", "center", MethodSchema{[]string{"int"}, "str"}},
	{"str", "contains", MethodSchema{[]string{"str"}, "bool"}},
	{"str", "starts_with", MethodSchema{[]string{"str"}, "bool"}},
	{"str", "ends_with", MethodSchema{[]string{"str"}, "bool"}},
	{"str", "index_of", MethodSchema{[]string{"str"}, "int"}},
	{"str", "substring", MethodSchema{[]string{"int", "int"}, "str"}},
	{"str", "replace", MethodSchema{[]string{"str", "str"}, "str"}},
	{"str", "replace_all", MethodSchema{[]string{"str", "str"}, "str"}},
	{"str", "split", MethodSchema{[]string{"str"}, "List<str>"}},
	{"str", "split_lines", MethodSchema{nil, "List<str>"}},
	{"str", "repeat", MethodSchema{[]string{"int"}, "str"}},
	{"str", "reverse", MethodSchema{nil, "str"}},
	{"str", "is_empty", MethodSchema{nil, "bool"}},
	{"str", "to_int", MethodSchema{nil, "int?"}},
	{"str", "to_float", MethodSchema{nil, "f64?"}},
	{"str", "char_at", MethodSchema{[]string{"int"}, "str?"}},
	{"str", "bytes", MethodSchema{nil, "List<int>"}},
	{"str", "join", MethodSchema{[]string{"List<str>"}, "str"}},
	{"str", "concat", MethodSchema{[]string{"str"}, "str"}},
	{"str", "equals_ignore_case", MethodSchema{[]string{"str"}, "bool"}},
	{"str", "count", MethodSchema{[]string{"str"}, "int"}},
}

var stringMethods = buildStringMethods()

func buildStringMethods() map[string]MethodSchema {
	out := map[string]MethodSchema{}
	for _, e := range lo.Filter(rawStringMethods, func(e methodEntry, _ int) bool { return e.Kind == "str" }) {
		out[e.Name] = e.Schema
	}
	return out
}
