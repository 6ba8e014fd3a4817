package emit

import (
	"strconv"
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/types"
)

// assertionFunctions mirrors internal/checker's test-only assertion
// built-ins (spec.md §6.3); a bare call to one of these is rewritten into
// the bishop_test:: harness helper of the same name.
var assertionFunctions = map[string]bool{
	"assert_eq": true, "assert_ne": true, "assert_true": true, "assert_false": true,
	"assert_gt": true, "assert_gte": true, "assert_lt": true, "assert_lte": true,
	"assert_contains": true, "assert_starts_with": true, "assert_ends_with": true,
	"assert_near": true,
}

func indentStr(level int) string { return strings.Repeat("  ", level) }

// emitStmts writes every statement of a block, one per line, at the given
// indent level.
func (s *State) emitStmts(stmts []ast.Stmt, level int) {
	for _, st := range stmts {
		s.emitStmt(st, level)
	}
}

func (s *State) emitStmt(stmt ast.Stmt, level int) {
	ind := indentStr(level)
	switch n := stmt.(type) {
	case *ast.VariableDecl:
		s.emitVariableDecl(n, level)
	case *ast.Assignment:
		s.write(ind, escapeIdent(n.Name), " = ")
		s.emitExpr(n.Value)
		s.writeLine(";")
	case *ast.FieldAssignment:
		s.write(ind)
		s.emitFieldAccess(&ast.FieldAccess{Object: n.Object, Field: n.Field})
		s.write(" = ")
		s.emitExpr(n.Value)
		s.writeLine(";")
	case *ast.ReturnStmt:
		s.emitReturnStmt(n, level)
	case *ast.FailStmt:
		s.emitFailStmt(n, level)
	case *ast.IfStmt:
		s.write(ind, "if (")
		s.emitExpr(n.Cond)
		s.writeLine(") {")
		s.emitStmts(n.Then, level+1)
		if len(n.Else) > 0 {
			s.writeLine(ind, "} else {")
			s.emitStmts(n.Else, level+1)
		}
		s.writeLine(ind, "}")
	case *ast.WhileStmt:
		s.write(ind, "while (")
		s.emitExpr(n.Cond)
		s.writeLine(") {")
		s.emitStmts(n.Body, level+1)
		s.writeLine(ind, "}")
	case *ast.ForStmt:
		s.emitForStmt(n, level)
	case *ast.BreakStmt:
		s.writeLine(ind, "break;")
	case *ast.ContinueStmt:
		s.writeLine(ind, "continue;")
	case *ast.WithStmt:
		s.emitWithStmt(n, level)
	case *ast.GoSpawn:
		s.needsAsync = true
		s.write(ind, "bishop::spawn(")
		s.emitExpr(n.Call)
		s.writeLine(");")
	case *ast.SelectStmt:
		s.emitSelectStmt(n, level)
	case *ast.ExprStmt:
		s.emitExprStmt(n, level)
	}
}

func (s *State) emitVariableDecl(n *ast.VariableDecl, level int) {
	ind := indentStr(level)
	if orExpr, ok := n.Value.(*ast.OrExpr); ok {
		s.emitOrBoundDecl(n, orExpr, level)
		return
	}
	declType := "auto"
	if n.Type != "" {
		declType = MapType(n.Type, false)
		if n.IsOptional {
			declType = "std::optional<" + declType + ">"
		}
	}
	s.write(ind, declType, " ", escapeIdent(n.Name), " = ")
	s.emitExpr(n.Value)
	s.writeLine(";")
}

func (s *State) emitReturnStmt(n *ast.ReturnStmt, level int) {
	ind := indentStr(level)
	if s.inFn != nil && s.inFn.Fallible {
		rt := ResultType(s.inFn.ReturnType)
		if n.Value == nil {
			s.writeLine(ind, "return ", rt, "::ok();")
			return
		}
		s.write(ind, "return ", rt, "::ok(")
		s.emitExpr(n.Value)
		s.writeLine(");")
		return
	}
	if n.Value == nil {
		s.writeLine(ind, "return;")
		return
	}
	s.write(ind, "return ")
	s.emitExpr(n.Value)
	s.writeLine(";")
}

func (s *State) emitFailStmt(n *ast.FailStmt, level int) {
	ind := indentStr(level)
	rt := "bishop::Result<void>"
	if s.inFn != nil {
		rt = ResultType(s.inFn.ReturnType)
	}
	s.write(ind, "return ", rt, "::err(")
	s.emitExpr(n.Value)
	s.writeLine(");")
}

func (s *State) emitForStmt(n *ast.ForStmt, level int) {
	ind := indentStr(level)
	switch n.Kind {
	case ast.ForRange:
		loopVar := escapeIdent(n.LoopVar)
		s.write(ind, "for (int64_t ", loopVar, " = ")
		s.emitExpr(n.RangeStart)
		s.write("; ", loopVar, " < ")
		s.emitExpr(n.RangeEnd)
		s.writeLine("; ++", loopVar, ") {")
	case ast.ForEach:
		s.write(ind, "for (auto& ", escapeIdent(n.LoopVar), " : ")
		s.emitExpr(n.Iterable)
		s.writeLine(") {")
	}
	s.emitStmts(n.Body, level+1)
	s.writeLine(ind, "}")
}

// emitWithStmt binds the resource, runs body, and closes the resource on
// every exit path via RAII: the runtime's scoped-resource guard calls
// close() in its destructor, so normal fall-through, break/continue/return,
// and exceptions are all covered without duplicating a close() call at
// each exit point (spec.md §5).
func (s *State) emitWithStmt(n *ast.WithStmt, level int) {
	ind := indentStr(level)
	s.writeLine(ind, "{")
	s.write(indentStr(level+1), "auto ", escapeIdent(n.BindingName), " = ")
	s.emitExpr(n.Resource)
	s.writeLine(";")
	s.writeLine(indentStr(level+1), "bishop::ScopeGuard ", s.newTemp(), "([&]{ ", escapeIdent(n.BindingName), ".close(); });")
	s.emitStmts(n.Body, level+1)
	s.writeLine(ind, "}")
}

func (s *State) emitSelectStmt(n *ast.SelectStmt, level int) {
	ind := indentStr(level)
	s.writeLine(ind, "co_await bishop::select(")
	for i, arm := range n.Arms {
		s.write(indentStr(level+1), "bishop::select_case([&]{ return ")
		s.emitExpr(arm.Receive)
		s.write("; }, [&]{")
		s.sb.WriteByte('\n')
		s.emitStmts(arm.Body, level+2)
		s.write(indentStr(level+1), "})")
		if i < len(n.Arms)-1 {
			s.write(",")
		}
		s.sb.WriteByte('\n')
	}
	s.writeLine(ind, ");")
}

func (s *State) emitExprStmt(n *ast.ExprStmt, level int) {
	ind := indentStr(level)
	if orExpr, ok := n.X.(*ast.OrExpr); ok {
		s.emitOrUnboundStmt(orExpr, level)
		return
	}
	if call, ok := n.X.(*ast.FunctionCall); ok && assertionFunctions[call.Name] {
		s.write(ind, "bishop_test::", call.Name, "(")
		s.emitExprList(call.Args)
		s.write(", ", strconv.Quote(call.Name), ")")
		s.writeLine(";")
		return
	}
	s.write(ind)
	s.emitExpr(n.X)
	s.writeLine(";")
}

// emitOrBoundDecl lowers `name [:type] := expr or HANDLER;` per spec.md
// §4.4's four-step algorithm: stash expr in a temporary, branch on
// falsy-ness into the handler, and on fall-through initialize the declared
// variable by unwrapping the temporary's held value. `or match` is special-
// cased (matching the original emitter's emit_or_for_decl): its arms assign
// the declared variable directly, so the variable has to exist *before* the
// branch instead of being initialized by a trailing unwrap line.
func (s *State) emitOrBoundDecl(decl *ast.VariableDecl, n *ast.OrExpr, level int) {
	ind := indentStr(level)
	tmp := s.newTemp()
	s.write(ind, "auto ", tmp, " = ")
	s.emitExpr(n.Value)
	s.writeLine(";")

	declType := "auto"
	if decl.Type != "" {
		declType = MapType(decl.Type, false)
	}
	name := escapeIdent(decl.Name)

	if n.Handler.Kind == ast.OrMatch {
		s.writeLine(ind, declType, " ", name, ";")
		s.writeLine(ind, "if (bishop::is_or_falsy(", tmp, ")) {")
		s.emitOrHandlerBody(n.Handler, level+1, tmp)
		s.writeLine(ind, "} else {")
		s.writeLine(indentStr(level+1), name, " = bishop::or_value(", tmp, ");")
		s.writeLine(ind, "}")
		return
	}

	s.writeLine(ind, "if (bishop::is_or_falsy(", tmp, ")) {")
	s.emitOrHandlerBody(n.Handler, level+1, tmp)
	s.writeLine(ind, "}")
	s.writeLine(ind, declType, " ", name, " = bishop::or_value(", tmp, ");")
}

// emitOrUnboundStmt lowers a bare `expr or HANDLER;` statement (no binding):
// same branch, but nothing is extracted on fall-through.
func (s *State) emitOrUnboundStmt(n *ast.OrExpr, level int) {
	ind := indentStr(level)
	tmp := s.newTemp()
	s.write(ind, "auto ", tmp, " = ")
	s.emitExpr(n.Value)
	s.writeLine(";")
	s.writeLine(ind, "if (bishop::is_or_falsy(", tmp, ")) {")
	s.emitOrHandlerBody(n.Handler, level+1, tmp)
	s.writeLine(ind, "}")
}

func (s *State) emitOrHandlerBody(h ast.OrHandler, level int, tmp string) {
	ind := indentStr(level)
	switch h.Kind {
	case ast.OrReturn:
		if h.ReturnValue == nil {
			if s.inFn != nil && s.inFn.Fallible {
				s.writeLine(ind, "return ", ResultType(s.inFn.ReturnType), "::ok();")
			} else {
				s.writeLine(ind, "return;")
			}
			return
		}
		s.write(ind, "return ")
		s.emitExpr(h.ReturnValue)
		s.writeLine(";")
	case ast.OrFail:
		rt := "bishop::Result<void>"
		if s.inFn != nil {
			rt = ResultType(s.inFn.ReturnType)
		}
		switch {
		case h.FailValue != nil:
			// `or fail <expr>`: an arbitrary literal/value fail target,
			// no cause chain to preserve.
			s.write(ind, "return ", rt, "::err(")
			s.emitExpr(h.FailValue)
			s.writeLine(");")
		case h.FailTarget != "" && h.FailTarget != "err":
			// `or fail TypeName`: construct a bare TypeName error with
			// every field defaulted and the inner error passed as cause,
			// preserving the chain (the same full constructor emitError
			// generates for every error struct).
			s.write(ind, "return ", rt, "::err(", escapeIdent(h.FailTarget), "(\"", h.FailTarget, "\"")
			if e, ok := s.Chk.Errors[h.FailTarget]; ok {
				for _, f := range e.Fields {
					s.write(", ", defaultValueFor(f.Type))
				}
			}
			s.writeLine(", bishop::or_error(", tmp, ")));")
		default:
			// `or fail err`: forward the inner error as-is.
			s.writeLine(ind, "return ", rt, "::err(bishop::or_error(", tmp, "));")
		}
	case ast.OrContinue:
		s.writeLine(ind, "continue;")
	case ast.OrBreak:
		s.writeLine(ind, "break;")
	case ast.OrBlock:
		s.writeLine(ind, "auto err = bishop::or_error(", tmp, ");")
		s.emitStmts(h.Body, level)
	case ast.OrMatch:
		for i, arm := range h.Arms {
			kw := "else if"
			if i == 0 {
				kw = "if"
			}
			if arm.ErrorType == "_" {
				s.writeLine(ind, "else {")
			} else {
				s.write(ind, kw, " (auto err = bishop::or_error_as<", escapeIdent(arm.ErrorType), ">(", tmp, ")) {")
				s.sb.WriteByte('\n')
			}
			s.emitStmts(arm.Body, level+1)
			s.writeLine(ind, "}")
		}
	}
}

// emitOrValueFallback handles an OrExpr nested inside a larger expression
// (rather than bound by a VariableDecl or used as a bare statement): the
// handler runs inside an immediately invoked lambda so it can still short
// circuit the enclosing function via return/fail.
func (s *State) emitOrValueFallback(n *ast.OrExpr) {
	tmp := s.newTemp()
	s.write("([&]{ auto ", tmp, " = ")
	s.emitExpr(n.Value)
	s.write("; if (bishop::is_or_falsy(", tmp, ")) {")
	s.sb.WriteByte('\n')
	s.emitOrHandlerBody(n.Handler, 1, tmp)
	s.write("  } return bishop::or_value(", tmp, "); })()")
}

// emitDefaultExpr lowers `expr default fallback` (spec.md §4.4). `pair.get(i)
// default F` and `tuple.get(i) default F` are special-cased into direct
// bounds-checked conditionals rather than the generic falsy-check lambda,
// mirroring the original emitter's emit_default_expr: everything else
// evaluates expr once, tests falsy-ness, and returns either the unwrapped
// value or the fallback.
func (s *State) emitDefaultExpr(n *ast.DefaultExpr) {
	if s.emitContainerGetDefault(n) {
		return
	}
	s.write("([&]{ auto bishop_default_tmp = ")
	s.emitExpr(n.Value)
	s.write("; return bishop::is_or_falsy(bishop_default_tmp) ? (")
	s.emitExpr(n.Fallback)
	s.write(") : bishop::or_value(bishop_default_tmp); })()")
}

// emitContainerGetDefault handles `Pair<...>.get(idx) default F` and
// `Tuple<...>.get(idx) default F`: Pair.get only ever indexes 0 or 1, so it
// lowers to a ternary over .first/.second; Tuple.get is bounds-checked
// against the vector's actual size. Reports whether it handled n.Value.
func (s *State) emitContainerGetDefault(n *ast.DefaultExpr) bool {
	call, ok := n.Value.(*ast.MethodCall)
	if !ok || call.Method != "get" || len(call.Args) != 1 {
		return false
	}
	kind, _, ok := types.ParseContainer(call.InferredObjectType)
	if !ok {
		return false
	}
	switch kind {
	case "Pair":
		s.write("((")
		s.emitExpr(call.Args[0])
		s.write(") == 0 ? (")
		s.emitExpr(call.Object)
		s.write(").first : (((")
		s.emitExpr(call.Args[0])
		s.write(") == 1) ? (")
		s.emitExpr(call.Object)
		s.write(").second : (")
		s.emitExpr(n.Fallback)
		s.write(")))")
		return true
	case "Tuple":
		s.write("((static_cast<size_t>(")
		s.emitExpr(call.Args[0])
		s.write(") < (")
		s.emitExpr(call.Object)
		s.write(").size() && (")
		s.emitExpr(call.Args[0])
		s.write(") >= 0) ? (")
		s.emitExpr(call.Object)
		s.write(")[")
		s.emitExpr(call.Args[0])
		s.write("] : (")
		s.emitExpr(n.Fallback)
		s.write("))")
		return true
	}
	return false
}
