package module

import "github.com/bishop-lang/bishopc/internal/ast"

// allBuiltins returns the 15 standard-library modules spec.md §1 names.
// Each factory hand-builds a public surface (spec.md §6.2) plus the
// target-language runtime-include string the emitter writes whenever a
// compiled file imports it — grounded on how the teacher's internal/builtins
// organizes one file per built-in concern, except here each "concern" is a
// declaration list rather than an executable Go function, since the actual
// bodies of these modules are an external runtime collaborator (spec.md §1:
// "the concrete bodies of standard-library module factories remain external
// collaborators; only their surface is modeled here").
func allBuiltins() []*Module {
	return []*Module{
		builtinCrypto(), builtinFS(), builtinHTTP(), builtinNet(), builtinProcess(),
		builtinRegex(), builtinTime(), builtinMath(), builtinRandom(), builtinJSON(),
		builtinYAML(), builtinMarkdown(), builtinLog(), builtinSync(), builtinAlgo(),
	}
}

func fn(name string, ret string, errType string, params ...ast.Param) FunctionSig {
	return FunctionSig{Name: name, Params: params, ReturnType: ret, ErrorType: errType}
}

func asyncFn(name string, ret string, errType string, params ...ast.Param) FunctionSig {
	f := fn(name, ret, errType, params...)
	f.IsAsync = true
	return f
}

func p(typ, name string) ast.Param { return ast.Param{Name: name, Type: typ} }

func builtinCrypto() *Module {
	return &Module{
		Path: BuiltinPath("crypto"),
		Functions: []FunctionSig{
			fn("sha256", "str", "", p("str", "data")),
			fn("md5", "str", "", p("str", "data")),
			fn("hmac_sha256", "str", "", p("str", "key"), p("str", "data")),
			fn("random_bytes", "List<int>", "err", p("int", "n")),
		},
		RuntimeInclude: `#include "bishop_rt/crypto.h"`,
	}
}

func builtinFS() *Module {
	return &Module{
		Path: BuiltinPath("fs"),
		Structs: []StructSig{
			{Name: "File", Fields: []ast.Field{{Name: "path", Type: "str"}}},
		},
		Functions: []FunctionSig{
			fn("read_file", "str", "err", p("str", "path")),
			fn("write_file", "void", "err", p("str", "path"), p("str", "contents")),
			fn("exists", "bool", "", p("str", "path")),
			fn("remove", "void", "err", p("str", "path")),
			fn("open", "File", "err", p("str", "path")),
		},
		Methods: []MethodSig{
			{StructName: "File", Name: "close", ReturnType: "void"},
			{StructName: "File", Name: "read_all", ReturnType: "str", ErrorType: "err"},
		},
		RuntimeInclude: `#include "bishop_rt/fs.h"`,
	}
}

func builtinHTTP() *Module {
	return &Module{
		Path: BuiltinPath("http"),
		Structs: []StructSig{
			{Name: "Response", Fields: []ast.Field{
				{Name: "status", Type: "int"}, {Name: "body", Type: "str"},
			}},
		},
		Functions: []FunctionSig{
			asyncFn("get", "Response", "err", p("str", "url")),
			asyncFn("post", "Response", "err", p("str", "url"), p("str", "body")),
			fn("serve", "void", "err", p("int", "port"), p("fn(Response) -> Response", "handler")),
		},
		RuntimeInclude: `#include "bishop_rt/http.h"`,
	}
}

func builtinNet() *Module {
	return &Module{
		Path: BuiltinPath("net"),
		Structs: []StructSig{
			{Name: "TcpStream", Fields: []ast.Field{{Name: "addr", Type: "str"}}},
		},
		Functions: []FunctionSig{
			asyncFn("dial", "TcpStream", "err", p("str", "addr")),
			asyncFn("listen", "Channel<TcpStream>", "err", p("int", "port")),
		},
		Methods: []MethodSig{
			{StructName: "TcpStream", Name: "send", Params: []ast.Param{p("str", "data")}, ReturnType: "void", ErrorType: "err", IsAsync: true},
			{StructName: "TcpStream", Name: "recv", ReturnType: "str", ErrorType: "err", IsAsync: true},
			{StructName: "TcpStream", Name: "close", ReturnType: "void"},
		},
		RuntimeInclude: `#include "bishop_rt/net.h"`,
	}
}

func builtinProcess() *Module {
	return &Module{
		Path: BuiltinPath("process"),
		Functions: []FunctionSig{
			fn("args", "List<str>", ""),
			fn("env", "str?", "", p("str", "name")),
			fn("exit", "void", "", p("int", "code")),
			asyncFn("run", "int", "err", p("str", "cmd"), p("List<str>", "args")),
		},
		RuntimeInclude: `#include "bishop_rt/process.h"`,
	}
}

func builtinRegex() *Module {
	return &Module{
		Path: BuiltinPath("regex"),
		Functions: []FunctionSig{
			fn("matches", "bool", "err", p("str", "pattern"), p("str", "input")),
			fn("find", "str?", "err", p("str", "pattern"), p("str", "input")),
			fn("find_all", "List<str>", "err", p("str", "pattern"), p("str", "input")),
			fn("replace", "str", "err", p("str", "pattern"), p("str", "input"), p("str", "repl")),
		},
		RuntimeInclude: `#include "bishop_rt/regex.h"`,
	}
}

func builtinTime() *Module {
	return &Module{
		Path: BuiltinPath("time"),
		Functions: []FunctionSig{
			fn("now", "int", ""),
			fn("sleep_ms", "void", "", p("int", "ms")),
			asyncFn("after_ms", "void", "", p("int", "ms")),
			fn("format", "str", "", p("int", "epoch_ms"), p("str", "layout")),
		},
		RuntimeInclude: `#include "bishop_rt/time.h"`,
	}
}

func builtinMath() *Module {
	return &Module{
		Path: BuiltinPath("math"),
		Constants: []ConstSig{
			{Name: "PI", Type: "f64"},
			{Name: "E", Type: "f64"},
		},
		Functions: []FunctionSig{
			fn("sqrt", "f64", "", p("f64", "x")),
			fn("pow", "f64", "", p("f64", "base"), p("f64", "exp")),
			fn("abs", "f64", "", p("f64", "x")),
			fn("floor", "f64", "", p("f64", "x")),
			fn("ceil", "f64", "", p("f64", "x")),
			fn("min", "f64", "", p("f64", "a"), p("f64", "b")),
			fn("max", "f64", "", p("f64", "a"), p("f64", "b")),
		},
		RuntimeInclude: `#include "bishop_rt/math.h"`,
	}
}

func builtinRandom() *Module {
	return &Module{
		Path: BuiltinPath("random"),
		Functions: []FunctionSig{
			fn("seed", "void", "", p("int", "value")),
			fn("int_range", "int", "", p("int", "lo"), p("int", "hi")),
			fn("float01", "f64", ""),
			fn("choice", "int?", "", p("List<int>", "items")),
		},
		RuntimeInclude: `#include "bishop_rt/random.h"`,
	}
}

func builtinJSON() *Module {
	return &Module{
		Path: BuiltinPath("json"),
		Functions: []FunctionSig{
			fn("parse", "str", "err", p("str", "text")),
			fn("stringify", "str", "", p("str", "value")),
		},
		RuntimeInclude: `#include "bishop_rt/json.h"`,
	}
}

func builtinYAML() *Module {
	return &Module{
		Path: BuiltinPath("yaml"),
		Functions: []FunctionSig{
			fn("parse", "str", "err", p("str", "text")),
			fn("dump", "str", "", p("str", "value")),
		},
		RuntimeInclude: `#include "bishop_rt/yaml.h"`,
	}
}

func builtinMarkdown() *Module {
	return &Module{
		Path: BuiltinPath("markdown"),
		Functions: []FunctionSig{
			fn("render_html", "str", "", p("str", "markdown")),
			fn("strip", "str", "", p("str", "markdown")),
		},
		RuntimeInclude: `#include "bishop_rt/markdown.h"`,
	}
}

func builtinLog() *Module {
	return &Module{
		Path: BuiltinPath("log"),
		Functions: []FunctionSig{
			fn("info", "void", "", p("str", "msg")),
			fn("warn", "void", "", p("str", "msg")),
			fn("error", "void", "", p("str", "msg")),
			fn("debug", "void", "", p("str", "msg")),
		},
		RuntimeInclude: `#include "bishop_rt/log.h"`,
	}
}

func builtinSync() *Module {
	return &Module{
		Path: BuiltinPath("sync"),
		Structs: []StructSig{
			{Name: "Mutex", Fields: nil},
			{Name: "WaitGroup", Fields: nil},
		},
		Functions: []FunctionSig{
			fn("new_mutex", "Mutex", ""),
			fn("new_wait_group", "WaitGroup", ""),
		},
		Methods: []MethodSig{
			{StructName: "Mutex", Name: "lock", ReturnType: "void", IsAsync: true},
			{StructName: "Mutex", Name: "unlock", ReturnType: "void"},
			{StructName: "WaitGroup", Name: "add", Params: []ast.Param{p("int", "delta")}, ReturnType: "void"},
			{StructName: "WaitGroup", Name: "done", ReturnType: "void"},
			{StructName: "WaitGroup", Name: "wait", ReturnType: "void", IsAsync: true},
		},
		RuntimeInclude: `#include "bishop_rt/sync.h"`,
	}
}

func builtinAlgo() *Module {
	return &Module{
		Path: BuiltinPath("algo"),
		Functions: []FunctionSig{
			fn("sort_ints", "List<int>", "", p("List<int>", "items")),
			fn("binary_search", "int", "", p("List<int>", "items"), p("int", "target")),
			fn("reverse", "List<int>", "", p("List<int>", "items")),
		},
		RuntimeInclude: `#include "bishop_rt/algo.h"`,
	}
}
