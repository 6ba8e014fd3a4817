package checker

import (
	"strings"

	"github.com/bishop-lang/bishopc/internal/ast"
	"github.com/bishop-lang/bishopc/internal/types"
)

func isOptionalType(t string) bool {
	return strings.HasSuffix(t, "?")
}

func stripOptional(t string) string {
	return strings.TrimSuffix(t, "?")
}

// checkOrExpr implements spec.md §4.3's or-expression typing: a value of
// type T with fallibility F (or an optional T?) combined with a handler
// yields a plain T with no fallibility and no optionality — the handler is
// the only place the failure/none case can go.
func (s *State) checkOrExpr(n *ast.OrExpr) TypeInfo {
	value := s.checkExpr(n.Value)

	if !value.Fallible && !isOptionalType(value.Type) {
		s.errorf(n.Line(), "or has nothing to handle: expression is neither fallible nor optional")
	}

	resultType := value.Type
	if isOptionalType(resultType) {
		resultType = stripOptional(resultType)
	}

	switch n.Handler.Kind {
	case ast.OrReturn:
		if n.Handler.ReturnValue != nil {
			s.checkExpr(n.Handler.ReturnValue)
		} else if !types.IsVoid(s.curFn.ReturnType) {
			s.errorf(n.Line(), "bare or return requires the enclosing function to return void")
		}

	case ast.OrFail:
		if !s.curFn.Fallible {
			s.errorf(n.Line(), "or fail used in a function with no declared error type")
		}
		if n.Handler.FailTarget == "err" && !value.Fallible {
			s.errorf(n.Line(), "or fail err is legal only when the inner value is fallible; err is otherwise unbound")
		}
		if n.Handler.FailValue != nil {
			s.checkExpr(n.Handler.FailValue)
		}

	case ast.OrContinue, ast.OrBreak:
		// nothing to check; appearing outside a loop is not rejected here or by the parser.

	case ast.OrBlock:
		s.pushScope()
		s.checkStmts(n.Handler.Body)
		s.popScope()

	case ast.OrMatch:
		hasDefault := false
		allTransferControl := true
		for _, arm := range n.Handler.Arms {
			s.pushScope()
			errType := arm.ErrorType
			if errType == "_" {
				hasDefault = true
				errType = "err"
			}
			s.declareLocal("err", TypeInfo{Type: errType})
			s.checkStmts(arm.Body)
			s.popScope()
			if !armEndsInControlTransfer(arm.Body) {
				allTransferControl = false
			}
		}
		if !hasDefault && !allTransferControl {
			s.errorf(n.Line(), "or match without a _ arm must have every arm transfer control (return/fail/continue/break)")
		}
	}

	return TypeInfo{Type: resultType}
}

// armEndsInControlTransfer reports whether an or-match arm's last statement
// transfers control out of the arm, the condition spec.md's testable
// properties use to decide whether a missing `_` arm is legal.
func armEndsInControlTransfer(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ast.ReturnStmt, *ast.FailStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	}
	return false
}
