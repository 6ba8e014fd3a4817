package ast

// FunctionCall is a call to a name that may be `module.func` (the dotted
// form is parsed into Name verbatim; the checker splits it when resolving).
type FunctionCall struct {
	Base
	Name string
	Args []Expr
}

func (*FunctionCall) exprNode() {}

// MethodCall is `object.method(args)`. InferredObjectType is written
// exactly once by the checker (spec.md §3.4's single-write-annotation
// invariant) and read by the emitter to choose a rewrite; it starts empty.
type MethodCall struct {
	Base
	Object             Expr
	Method             string
	Args               []Expr
	InferredObjectType string
}

func (*MethodCall) exprNode() {}

// SetInferredObjectType stamps the receiver's base type. It must be called
// at most once per node; callers that call it twice have a checker bug.
func (m *MethodCall) SetInferredObjectType(t string) {
	if m.InferredObjectType != "" && m.InferredObjectType != t {
		panic("ast: MethodCall.InferredObjectType written twice with different types")
	}
	m.InferredObjectType = t
}

// LambdaCall is the immediate invocation of an expression-valued callee,
// `expr(args)`, as opposed to FunctionCall's named form.
type LambdaCall struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*LambdaCall) exprNode() {}
