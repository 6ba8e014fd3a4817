package checker

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/types"
)

// checkExpr is the bidirectional checker's expression dispatch (spec.md
// §4.3), inferring a TypeInfo for every expression node kind.
func (s *State) checkExpr(e ast.Expr) TypeInfo {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return TypeInfo{Type: "int"}
	case *ast.FloatLiteral:
		return TypeInfo{Type: "f64"}
	case *ast.StringLiteral:
		return TypeInfo{Type: "str"}
	case *ast.BoolLiteral:
		return TypeInfo{Type: "bool"}
	case *ast.NoneLiteral:
		return TypeInfo{Type: "none"}

	case *ast.ListLiteral:
		elemType := "void"
		for _, el := range n.Elements {
			elemType = s.checkExpr(el).Type
		}
		return TypeInfo{Type: types.FormatContainer("List", []string{elemType})}

	case *ast.MapLiteral:
		keyType, valType := "void", "void"
		for i := range n.Keys {
			keyType = s.checkExpr(n.Keys[i]).Type
			valType = s.checkExpr(n.Values[i]).Type
		}
		return TypeInfo{Type: types.FormatContainer("Map", []string{keyType, valType})}

	case *ast.SetLiteral:
		elemType := "void"
		for _, el := range n.Elements {
			elemType = s.checkExpr(el).Type
		}
		return TypeInfo{Type: types.FormatContainer("Set", []string{elemType})}

	case *ast.VariableRef:
		return s.checkVariableRef(n)
	case *ast.FunctionRef:
		if fn, ok := s.Functions[n.Name]; ok {
			return TypeInfo{Type: types.FormatFunctionType(paramTypes(fn.Params), fn.ReturnType)}
		}
		s.errorf(n.Line(), "undefined function %q", n.Name)
		return TypeInfo{}
	case *ast.QualifiedRef:
		t, _ := s.resolveQualified(n.Module, n.Name, n.Line())
		return t
	case *ast.FieldAccess:
		return s.checkFieldAccess(n)
	case *ast.AddressOf:
		inner := s.checkExpr(n.Operand)
		return TypeInfo{Type: inner.Type + "*"}

	case *ast.FunctionCall:
		return s.checkFunctionCall(n)
	case *ast.MethodCall:
		return s.checkMethodCall(n)
	case *ast.LambdaCall:
		return s.checkLambdaCall(n)

	case *ast.BinaryExpr:
		left := s.checkExpr(n.Left)
		s.checkExpr(n.Right)
		switch n.Op {
		case "==", "!=", "<", "<=", ">", ">=":
			return TypeInfo{Type: "bool"}
		default:
			return TypeInfo{Type: left.Type}
		}
	case *ast.NotExpr:
		s.checkExpr(n.Operand)
		return TypeInfo{Type: "bool"}
	case *ast.NegateExpr:
		return s.checkExpr(n.Operand)
	case *ast.ParenExpr:
		return s.checkExpr(n.Inner)
	case *ast.IsNone:
		s.checkExpr(n.Operand)
		return TypeInfo{Type: "bool"}

	case *ast.AwaitExpr:
		if !s.curFn.Async {
			s.errorf(n.Line(), "await used outside an async function")
		}
		return s.checkExpr(n.Operand)
	case *ast.ChannelCreate:
		return TypeInfo{Type: types.FormatContainer("Channel", []string{n.ElementType})}

	case *ast.ListCreate:
		return TypeInfo{Type: types.FormatContainer("List", []string{n.ElementType})}
	case *ast.PairCreate:
		return TypeInfo{Type: types.FormatContainer("Pair", []string{n.ElementType})}
	case *ast.TupleCreate:
		return TypeInfo{Type: types.FormatContainer("Tuple", []string{n.ElementType})}
	case *ast.MapCreate:
		return TypeInfo{Type: types.FormatContainer("Map", []string{n.KeyType, n.ValueType})}
	case *ast.SetCreate:
		return TypeInfo{Type: types.FormatContainer("Set", []string{n.ElementType})}
	case *ast.DequeCreate:
		return TypeInfo{Type: types.FormatContainer("Deque", []string{n.ElementType})}
	case *ast.StackCreate:
		return TypeInfo{Type: types.FormatContainer("Stack", []string{n.ElementType})}
	case *ast.QueueCreate:
		return TypeInfo{Type: types.FormatContainer("Queue", []string{n.ElementType})}
	case *ast.PriorityQueueCreate:
		return TypeInfo{Type: types.FormatContainer("PriorityQueue", []string{n.ElementType})}

	case *ast.OrExpr:
		return s.checkOrExpr(n)
	case *ast.DefaultExpr:
		value := s.checkExpr(n.Value)
		s.checkExpr(n.Fallback)
		return TypeInfo{Type: value.Type}

	case *ast.StructLiteral:
		return s.checkStructLiteral(n)
	case *ast.LambdaExpr:
		return s.checkLambdaExpr(n)
	}
	s.errorf(e.Line(), "internal: unhandled expression kind %T", e)
	return TypeInfo{}
}

func (s *State) checkVariableRef(n *ast.VariableRef) TypeInfo {
	if t, ok := s.resolveIdent(n.Name); ok {
		return t
	}
	s.errorf(n.Line(), "undefined name %q", n.Name)
	return TypeInfo{}
}

func (s *State) checkFieldAccess(n *ast.FieldAccess) TypeInfo {
	objType := s.checkExpr(n.Object)
	base := types.Deref(objType.Type)
	// MapItem<K, V> is the anonymous key/value carrier Map.items() yields
	// (emit_map.cpp's MapItem{key, value}); it has no struct definition of
	// its own to look up, so its two fields are resolved structurally.
	if kind, params, ok := types.ParseContainer(base); ok && kind == "MapItem" && len(params) == 2 {
		switch n.Field {
		case "key":
			return TypeInfo{Type: params[0]}
		case "value":
			return TypeInfo{Type: params[1]}
		}
		s.errorf(n.Line(), "MapItem has no field %q", n.Field)
		return TypeInfo{}
	}
	def, ok := s.Structs[base]
	if !ok {
		if _, isErr := s.Errors[base]; isErr {
			def2 := s.Errors[base]
			for _, f := range def2.Fields {
				if f.Name == n.Field {
					return TypeInfo{Type: f.Type}
				}
			}
		}
		s.errorf(n.Line(), "cannot access field %q on unknown type %q", n.Field, base)
		return TypeInfo{}
	}
	for _, f := range def.Fields {
		if f.Name == n.Field {
			return TypeInfo{Type: f.Type}
		}
	}
	s.errorf(n.Line(), "%s has no field %q", base, n.Field)
	return TypeInfo{}
}

func (s *State) checkFunctionCall(n *ast.FunctionCall) TypeInfo {
	if alias, member, ok := strings.Cut(n.Name, "."); ok {
		t, _ := s.resolveQualified(alias, member, n.Line())
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return t
	}

	if fn, ok := s.Functions[n.Name]; ok {
		s.checkArgCountFn(n.Name, paramTypes(fn.Params), len(n.Args), n.Line())
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return TypeInfo{Type: fn.ReturnType, Fallible: fn.IsFallible()}
	}
	if ext, ok := s.Externs[n.Name]; ok {
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return TypeInfo{Type: ext.ReturnType}
	}
	// A bare call can also name a function pulled in by `using` (either a
	// wildcard or an explicit member) — the parser has no way to tell this
	// apart from a local function call at parse time, since both produce
	// an ast.FunctionCall with an unqualified Name.
	if ub, ok := s.UsingAliases[n.Name]; ok && ub.Kind == MemberFunction {
		t, _ := s.resolveQualified(ub.ModuleAlias, n.Name, n.Line())
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return t
	}
	if assertionFunctions[n.Name] {
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return Void
	}
	if n.Name == "print" || n.Name == "sleep" {
		for _, arg := range n.Args {
			s.checkExpr(arg)
		}
		return Void
	}
	s.errorf(n.Line(), "undefined function %q", n.Name)
	return TypeInfo{}
}

func (s *State) checkArgCountFn(name string, expected []string, got int, line int) {
	if len(expected) != got {
		s.errorf(line, "%s expects %d argument(s), got %d", name, len(expected), got)
	}
}

func (s *State) checkLambdaCall(n *ast.LambdaCall) TypeInfo {
	calleeType := s.checkExpr(n.Callee)
	for _, arg := range n.Args {
		s.checkExpr(arg)
	}
	ft, ok := types.ParseFunctionType(calleeType.Type)
	if !ok {
		s.errorf(n.Line(), "cannot call non-function type %q", calleeType.Type)
		return TypeInfo{}
	}
	return TypeInfo{Type: ft.Return}
}

func (s *State) checkStructLiteral(n *ast.StructLiteral) TypeInfo {
	def, isStruct := s.Structs[n.StructName]
	_, isErr := s.Errors[n.StructName]
	if !isStruct && !isErr {
		s.errorf(n.Line(), "unknown type %q in struct literal", n.StructName)
		return TypeInfo{}
	}
	if len(n.FieldValues) == 0 {
		// the bare-error literal form (spec.md §4.2's disambiguation rule);
		// the emitter supplies field defaults.
		return TypeInfo{Type: n.StructName}
	}
	var fields []ast.Field
	if isStruct {
		fields = def.Fields
	} else {
		fields = s.Errors[n.StructName].Fields
	}
	known := map[string]string{}
	for _, f := range fields {
		known[f.Name] = f.Type
	}
	for _, fv := range n.FieldValues {
		if _, ok := known[fv.Name]; !ok {
			s.errorf(n.Line(), "%s has no field %q", n.StructName, fv.Name)
		}
		s.checkExpr(fv.Value)
	}
	return TypeInfo{Type: n.StructName}
}

func (s *State) checkLambdaExpr(n *ast.LambdaExpr) TypeInfo {
	s.pushScope()
	for _, param := range n.Params {
		s.declareLocal(param.Name, TypeInfo{Type: param.Type})
	}
	s.checkStmts(n.Body)
	s.popScope()
	return TypeInfo{Type: types.FormatFunctionType(paramTypes(n.Params), n.ReturnType)}
}
