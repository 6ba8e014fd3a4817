// Package ast defines the Abstract Syntax Tree node types for Bishop.
//
// Each node kind from spec.md §3.2 is its own Go struct carrying a source
// line. The tree is a closed sum of variants dispatched by type switch
// (spec.md §9's "Recursion over AST variants" note): there is no generic
// Walk, because the checker and emitter each need different per-kind
// behavior and a hand-written switch keeps that dispatch exhaustive and
// readable, the way the teacher's own ast/semantic/bytecode packages use
// type assertions rather than a visitor for the cases that matter.
package ast

// Node is the base interface every AST node implements.
type Node interface {
	// Line returns the 1-based source line the node started on.
	Line() int
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any top-level definition: a struct, error, function, method,
// extern function, or constant.
type Decl interface {
	Node
	declNode()
}

// Base is embedded by every concrete node to provide Line() without
// repeating the field and accessor on each type. It is exported only so
// other packages can populate it by name in a struct literal; callers
// should otherwise treat it as opaque.
type Base struct {
	line int
}

func (b Base) Line() int { return b.line }

// NewBase is used by the parser to stamp a node with the line of the token
// that introduced it.
func NewBase(line int) Base { return Base{line: line} }

// Program is the root node: everything a single source file declares,
// grouped by kind per spec.md §3.2's Program variant.
type Program struct {
	Imports   []*ImportStmt
	Usings    []*UsingStmt
	Structs   []*StructDef
	Errors    []*ErrorDef
	Functions []*FunctionDef
	Methods   []*MethodDef
	Externs   []*ExternFunctionDef
	Constants []*VariableDecl
}

func (p *Program) Line() int { return 0 }

// Visibility is Public or Private (spec.md §3.4).
type Visibility int

const (
	Private Visibility = iota
	Public
)
