package emit

// reservedWords is the target language's keyword set. Any identifier that
// collides gets a trailing underscore appended at emission time only
// (spec.md §4.4: "the AST continues to hold the original names").
var reservedWords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true,
	"bool": true, "break": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"delete": true, "do": true, "double": true, "else": true, "enum": true,
	"explicit": true, "export": true, "extern": true, "false": true,
	"float": true, "for": true, "friend": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "mutable": true,
	"namespace": true, "new": true, "noexcept": true, "nullptr": true,
	"operator": true, "private": true, "protected": true, "public": true,
	"register": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"template": true, "this": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typename": true, "union": true, "unsigned": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

// escapeIdent appends a trailing underscore if name collides with a
// reserved target-language keyword.
func escapeIdent(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// collidingModuleNames are imported-module aliases that shadow a
// target-language stdlib identifier (spec.md §4.4: "a small known set");
// a qualified call through one of these is remapped to a non-colliding
// alias so `std::time(...)` isn't accidentally generated.
var collidingModuleNames = map[string]string{
	"time":   "bishop_time",
	"random": "bishop_random",
	"regex":  "bishop_regex",
}

// remapModuleName returns the non-colliding spelling for a module alias
// used in a qualified call, or alias unchanged if it doesn't collide.
func remapModuleName(alias string) string {
	if remapped, ok := collidingModuleNames[alias]; ok {
		return remapped
	}
	return alias
}
