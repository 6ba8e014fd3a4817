package ast

// NumberLiteral is a decimal integer literal. The text is kept as written
// (not parsed to an int64 here) so the emitter can reproduce it verbatim.
type NumberLiteral struct {
	Base
	Text string
}

func (*NumberLiteral) exprNode() {}

// FloatLiteral is a floating-point literal, text preserved verbatim.
type FloatLiteral struct {
	Base
	Text string
}

func (*FloatLiteral) exprNode() {}

// StringLiteral holds the raw (already-unescaped-by-the-lexer) characters
// of a string literal; the emitter re-escapes for the target language.
type StringLiteral struct {
	Base
	Value string
}

func (*StringLiteral) exprNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Base
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NoneLiteral is the `none` literal for optional types.
type NoneLiteral struct {
	Base
}

func (*NoneLiteral) exprNode() {}

// ListLiteral is a `[e1, e2, ...]` list literal.
type ListLiteral struct {
	Base
	Elements []Expr
}

func (*ListLiteral) exprNode() {}

// MapLiteral is a `{k1: v1, k2: v2, ...}` map literal.
type MapLiteral struct {
	Base
	Keys   []Expr
	Values []Expr
}

func (*MapLiteral) exprNode() {}

// SetLiteral is a `{e1, e2, ...}` set literal (distinguished from
// MapLiteral by the parser on whether a ":" follows the first element).
type SetLiteral struct {
	Base
	Elements []Expr
}

func (*SetLiteral) exprNode() {}
