package ast

// BinaryExpr is any binary arithmetic or comparison operator.
// Op is the lexeme ("+", "-", "*", "/", "%", "==", "<", ...).
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// NotExpr is `not expr`.
type NotExpr struct {
	Base
	Operand Expr
}

func (*NotExpr) exprNode() {}

// NegateExpr is unary `-expr`. The parser only ever produces this at the
// start of a primary (spec.md §4.2's disambiguation rule); `a - b` always
// parses as a BinaryExpr.
type NegateExpr struct {
	Base
	Operand Expr
}

func (*NegateExpr) exprNode() {}

// ParenExpr is `(expr)`, kept as its own node (rather than discarded) so
// the emitter can decide whether target-language parens are still needed.
type ParenExpr struct {
	Base
	Inner Expr
}

func (*ParenExpr) exprNode() {}

// IsNone is `expr is none`, testing an optional for emptiness.
type IsNone struct {
	Base
	Operand Expr
}

func (*IsNone) exprNode() {}
