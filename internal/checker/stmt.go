package checker

import (
	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/types"
)

// checkStmts checks a statement list in the current scope (callers push/pop
// around block-introducing constructs themselves).
func (s *State) checkStmts(stmts []ast.Stmt) {
	for _, st := range stmts {
		s.checkStmt(st)
	}
}

// checkStmt is the bidirectional checker's statement dispatch (spec.md
// §4.3), covering scope management, fail-legality checking against the
// enclosing function context, and loop/with/select bodies. A return value
// is checked as an expression but is not compared with the function's
// declared return type.
func (s *State) checkStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.VariableDecl:
		s.checkVariableDecl(n)
	case *ast.Assignment:
		s.checkAssignment(n)
	case *ast.FieldAssignment:
		s.checkExpr(n.Object)
		s.checkExpr(n.Value)
	case *ast.ReturnStmt:
		s.checkReturnStmt(n)
	case *ast.FailStmt:
		s.checkFailStmt(n)
	case *ast.IfStmt:
		s.checkExpr(n.Cond)
		s.pushScope()
		s.checkStmts(n.Then)
		s.popScope()
		s.pushScope()
		s.checkStmts(n.Else)
		s.popScope()
	case *ast.WhileStmt:
		s.checkExpr(n.Cond)
		s.pushScope()
		s.checkStmts(n.Body)
		s.popScope()
	case *ast.ForStmt:
		s.checkForStmt(n)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no type information to check; neither the parser nor the checker
		// rejects these outside a loop body.
	case *ast.WithStmt:
		s.checkWithStmt(n)
	case *ast.GoSpawn:
		s.checkExpr(n.Call)
	case *ast.SelectStmt:
		s.checkSelectStmt(n)
	case *ast.ExprStmt:
		s.checkExpr(n.X)
	default:
		s.errorf(stmt.Line(), "internal: unhandled statement kind %T", stmt)
	}
}

func (s *State) checkVariableDecl(n *ast.VariableDecl) {
	// `or match`'s arms may assign directly into the variable this
	// declaration introduces (spec.md: "if the outer form is an
	// assignment, each arm either transfers control or assigns to the
	// target"), so it has to already be in scope while the arms are
	// checked rather than only after the whole declaration is processed.
	if orExpr, ok := n.Value.(*ast.OrExpr); ok && orExpr.Handler.Kind == ast.OrMatch {
		s.declareLocal(n.Name, TypeInfo{Type: n.Type})
	}
	valType := s.checkExpr(n.Value)
	declared := n.Type
	if declared == "" {
		declared = valType.Type
	}
	s.declareLocal(n.Name, TypeInfo{Type: declared})
	if n.IsConst {
		s.Constants[n.Name] = n
	}
}

func (s *State) checkAssignment(n *ast.Assignment) {
	if _, ok := s.lookupLocal(n.Name); !ok {
		s.errorf(n.Line(), "assignment to undeclared name %q", n.Name)
	}
	s.checkExpr(n.Value)
}

func (s *State) checkReturnStmt(n *ast.ReturnStmt) {
	if n.Value == nil {
		return
	}
	s.checkExpr(n.Value)
}

func (s *State) checkFailStmt(n *ast.FailStmt) {
	if !s.curFn.Fallible {
		s.errorf(n.Line(), "fail used in a function with no declared error type")
	}
	s.checkExpr(n.Value)
}

func (s *State) checkForStmt(n *ast.ForStmt) {
	s.pushScope()
	switch n.Kind {
	case ast.ForRange:
		s.checkExpr(n.RangeStart)
		s.checkExpr(n.RangeEnd)
		s.declareLocal(n.LoopVar, TypeInfo{Type: "int"})
	case ast.ForEach:
		iterType := s.checkExpr(n.Iterable)
		elemType := "void"
		if _, params, ok := types.ParseContainer(iterType.Type); ok && len(params) > 0 {
			elemType = params[0]
		}
		s.declareLocal(n.LoopVar, TypeInfo{Type: elemType})
	}
	s.checkStmts(n.Body)
	s.popScope()
}

func (s *State) checkWithStmt(n *ast.WithStmt) {
	resType := s.checkExpr(n.Resource)
	s.pushScope()
	s.declareLocal(n.BindingName, resType)
	s.checkStmts(n.Body)
	s.popScope()
}

func (s *State) checkSelectStmt(n *ast.SelectStmt) {
	for _, arm := range n.Arms {
		s.checkExpr(arm.Receive)
		s.pushScope()
		s.checkStmts(arm.Body)
		s.popScope()
	}
}
