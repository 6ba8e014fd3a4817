package emit

import (
	"fmt"
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
)

// emitExpr writes one expression's target-language spelling. Dispatch
// mirrors internal/checker/expr.go's exhaustive type switch — same node
// kinds, different job (print instead of type-infer).
func (s *State) emitExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		s.write(n.Text)
	case *ast.FloatLiteral:
		s.write(n.Text)
	case *ast.StringLiteral:
		s.write(`"`, escapeStringLiteral(n.Value), `"`)
	case *ast.BoolLiteral:
		if n.Value {
			s.write("true")
		} else {
			s.write("false")
		}
	case *ast.NoneLiteral:
		s.write("std::nullopt")

	case *ast.ListLiteral:
		s.write("bishop::make_list({")
		s.emitExprList(n.Elements)
		s.write("})")
	case *ast.SetLiteral:
		s.write("bishop::make_set({")
		s.emitExprList(n.Elements)
		s.write("})")
	case *ast.MapLiteral:
		s.write("bishop::make_map({")
		for i := range n.Keys {
			if i > 0 {
				s.write(", ")
			}
			s.write("{")
			s.emitExpr(n.Keys[i])
			s.write(", ")
			s.emitExpr(n.Values[i])
			s.write("}")
		}
		s.write("})")

	case *ast.VariableRef:
		s.write(escapeIdent(n.Name))
	case *ast.FunctionRef:
		s.write(escapeIdent(n.Name))
	case *ast.QualifiedRef:
		s.write(remapModuleName(n.Module), "::", escapeIdent(n.Name))
	case *ast.FieldAccess:
		s.emitFieldAccess(n)
	case *ast.AddressOf:
		s.write("&")
		s.emitExpr(n.Operand)

	case *ast.FunctionCall:
		s.emitFunctionCall(n)
	case *ast.MethodCall:
		s.emitMethodCall(n)
	case *ast.LambdaCall:
		s.emitExpr(n.Callee)
		s.write("(")
		s.emitExprList(n.Args)
		s.write(")")

	case *ast.BinaryExpr:
		s.write("(")
		s.emitExpr(n.Left)
		s.write(" ", binaryOp(n.Op), " ")
		s.emitExpr(n.Right)
		s.write(")")
	case *ast.NotExpr:
		s.write("(!")
		s.emitExpr(n.Operand)
		s.write(")")
	case *ast.NegateExpr:
		s.write("(-")
		s.emitExpr(n.Operand)
		s.write(")")
	case *ast.ParenExpr:
		s.write("(")
		s.emitExpr(n.Inner)
		s.write(")")
	case *ast.IsNone:
		s.write("(!")
		s.emitExpr(n.Operand)
		s.write(".has_value())")

	case *ast.AwaitExpr:
		s.needsAsync = true
		s.write("co_await ")
		s.emitExpr(n.Operand)

	case *ast.ChannelCreate:
		s.needsChannelHeader = true
		s.write("bishop::Channel<", MapType(n.ElementType, false), ">()")
	case *ast.ListCreate:
		s.write("std::vector<", MapType(n.ElementType, false), ">()")
	case *ast.SetCreate:
		s.write("std::unordered_set<", MapType(n.ElementType, false), ">()")
	case *ast.DequeCreate:
		s.write("std::deque<", MapType(n.ElementType, false), ">()")
	case *ast.PairCreate:
		s.write("bishop::Pair<", MapType(n.ElementType, false), ">()")
	case *ast.TupleCreate:
		s.write("bishop::Tuple<", MapType(n.ElementType, false), ">()")
	case *ast.StackCreate:
		s.write("bishop::Stack<", MapType(n.ElementType, false), ">()")
	case *ast.QueueCreate:
		s.write("bishop::Queue<", MapType(n.ElementType, false), ">()")
	case *ast.PriorityQueueCreate:
		minHeap := "false"
		if n.IsMinHeap {
			minHeap = "true"
		}
		s.write("bishop::PriorityQueue<", MapType(n.ElementType, false), ">(", minHeap, ")")
	case *ast.MapCreate:
		s.write("std::unordered_map<", MapType(n.KeyType, false), ", ", MapType(n.ValueType, false), ">()")

	case *ast.OrExpr:
		// Only reachable when an OrExpr is used as a value nested inside a
		// larger expression; the common case — binding the result of a
		// VariableDecl, or a bare `expr or HANDLER;` statement — is lowered
		// statement-wise by emitOrBoundDecl/emitOrUnboundStmt in stmt.go.
		s.emitOrValueFallback(n)
	case *ast.DefaultExpr:
		s.emitDefaultExpr(n)

	case *ast.StructLiteral:
		s.emitStructLiteral(n)
	case *ast.LambdaExpr:
		s.emitLambdaExpr(n)

	default:
		s.write(fmt.Sprintf("/* unhandled expr %T */", n))
	}
}

func (s *State) emitExprList(exprs []ast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			s.write(", ")
		}
		s.emitExpr(e)
	}
}

func escapeStringLiteral(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return r.Replace(v)
}

func binaryOp(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	default:
		return op
	}
}

// emitFieldAccess rewrites `self.field` to the receiver-parameter spelling
// (spec.md §4.4) and auto-dereferences a pointer object with `->`.
func (s *State) emitFieldAccess(n *ast.FieldAccess) {
	if ref, ok := n.Object.(*ast.VariableRef); ok && ref.Name == "self" {
		s.write("self.", escapeIdent(n.Field))
		return
	}
	s.emitExpr(n.Object)
	s.write(".", escapeIdent(n.Field))
}

// emitFunctionCall handles both a plain local-function call and a
// `module.func(args)` dotted call, remapping the module alias if it
// collides with a target identifier.
func (s *State) emitFunctionCall(n *ast.FunctionCall) {
	name := n.Name
	if mod, bare, found := cutQualified(name); found {
		s.write(remapModuleName(mod), "::", escapeIdent(bare), "(")
		s.emitExprList(n.Args)
		s.write(")")
		return
	}
	s.write(escapeIdent(name), "(")
	s.emitExprList(n.Args)
	s.write(")")
}

func cutQualified(name string) (mod, bare string, ok bool) {
	idx := strings.IndexByte(name, '.')
	if idx < 0 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}

// emitMethodCall dispatches on the checker-annotated receiver type:
// container methods and the str primitive's methods get a dedicated
// rewrite (containers.go); everything else is a user-struct method,
// emitted as a free-function call taking the receiver by reference, or a
// static call qualified by struct name.
func (s *State) emitMethodCall(n *ast.MethodCall) {
	base := n.InferredObjectType
	if rewrite, ok := containerMethodRewrite(base, n.Method); ok {
		rewrite(s, n)
		return
	}
	if base == "str" {
		if rewrite, ok := stringMethodRewrite(n.Method); ok {
			rewrite(s, n)
			return
		}
	}
	structName := strings.TrimSuffix(base, "*")
	s.write(escapeIdent(structName), "_", escapeIdent(n.Method), "(")
	if !s.isStaticMethod(structName, n.Method) {
		s.emitExpr(n.Object)
		if len(n.Args) > 0 {
			s.write(", ")
		}
	}
	s.emitExprList(n.Args)
	s.write(")")
}

// isStaticMethod looks up the method's own IsStatic flag via the checker's
// resolved method table — more reliable at emit time than re-deriving the
// TypeName-vs-variable distinction from the call's Object expression, since
// InferredObjectType already collapses both forms to the same struct name.
func (s *State) isStaticMethod(structName, method string) bool {
	def, ok := s.Chk.Methods[structName][method]
	return ok && def.IsStatic
}

func (s *State) emitStructLiteral(n *ast.StructLiteral) {
	if len(n.FieldValues) == 0 {
		// bare error literal: TypeName{} -> TypeName("TypeName")
		s.write(escapeIdent(n.StructName), `("`, n.StructName, `")`)
		return
	}
	s.write(escapeIdent(n.StructName), "{")
	for i, fv := range n.FieldValues {
		if i > 0 {
			s.write(", ")
		}
		s.write(".", escapeIdent(fv.Name), " = ")
		s.emitExpr(fv.Value)
	}
	s.write("}")
}

func (s *State) emitLambdaExpr(n *ast.LambdaExpr) {
	s.write("[=](", s.paramList(n.Params), ") ", "-> ", MapType(n.ReturnType, false), " {")
	s.sb.WriteByte('\n')
	s.emitStmts(n.Body, 1)
	s.write("  }")
}
