package ast

// Field is one `name type` entry in a struct or error field list.
type Field struct {
	Name string
	Type string
}

// StructDef is `Name :: struct { field type, ... }`.
type StructDef struct {
	Base
	Name       string
	Fields     []Field
	Visibility Visibility
	Doc        string
}

func (*StructDef) declNode() {}

// ErrorDef is `Name :: err { field type, ... }` — semantically a struct
// that extends the target runtime's error base (spec.md §3.2).
type ErrorDef struct {
	Base
	Name       string
	Fields     []Field
	Visibility Visibility
	Doc        string
}

func (*ErrorDef) declNode() {}

// MethodDef is `StructName :: name(params) [-> T] [or err] { body }`.
// Instance methods take `self` as their implicit first parameter (not
// present in Params); IsStatic methods take no self and are invoked as
// `TypeName.m(args)`.
type MethodDef struct {
	Base
	StructName string
	Name       string
	Params     []Param
	ReturnType string
	ErrorType  string
	IsStatic   bool
	IsAsync    bool
	Visibility Visibility
	Body       []Stmt
	Doc        string
}

func (*MethodDef) declNode() {}

// IsFallible reports whether the method's signature declares an `or err`
// clause (spec.md §3.4's fallibility invariant).
func (m *MethodDef) IsFallible() bool { return m.ErrorType != "" }

// FunctionDef is `fn name(params) [-> T] [or err] { body }`.
type FunctionDef struct {
	Base
	Name       string
	Params     []Param
	ReturnType string
	ErrorType  string
	IsAsync    bool
	Visibility Visibility
	Body       []Stmt
	Doc        string
}

func (*FunctionDef) declNode() {}

// IsFallible reports whether the function's signature declares an
// `or err` clause.
func (f *FunctionDef) IsFallible() bool { return f.ErrorType != "" }

// ExternFunctionDef is `@extern("lib") fn name(params) -> T;`, a foreign
// function declared but not defined in Bishop.
type ExternFunctionDef struct {
	Base
	Name       string
	Params     []Param
	ReturnType string
	Library    string
	Visibility Visibility
}

func (*ExternFunctionDef) declNode() {}

// FieldValue is one `name: value` entry in a struct literal.
type FieldValue struct {
	Name  string
	Value Expr
}

// StructLiteral is `TypeName { field: value, ... }`, or the bare-error form
// `TypeName` with an empty FieldValues list (spec.md §4.2's "bare error
// literal" disambiguation rule).
type StructLiteral struct {
	Base
	StructName  string
	FieldValues []FieldValue
}

func (*StructLiteral) exprNode() {}
