package parser

import (
	"testing"

	"github.com/bishop-lang/bishopc/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("test.bishop", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestPrescanAllowsForwardReferences(t *testing.T) {
	src := `
fn caller() -> int {
	return helper();
}

fn helper() -> int {
	return 1;
}
`
	prog := mustParse(t, src)
	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
	body := prog.Functions[0].Body
	ret, ok := body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", body[0])
	}
	if _, ok := ret.Value.(*ast.FunctionCall); !ok {
		t.Fatalf("expected forward-referenced helper() to parse as FunctionCall, got %T", ret.Value)
	}
}

func TestStructAndMethodDef(t *testing.T) {
	src := `
Person :: struct {
	name str,
	age int,
}

Person :: greet(self) -> str {
	return self.name;
}
`
	prog := mustParse(t, src)
	if len(prog.Structs) != 1 || prog.Structs[0].Name != "Person" {
		t.Fatalf("expected Person struct, got %+v", prog.Structs)
	}
	if len(prog.Structs[0].Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(prog.Structs[0].Fields))
	}
	if len(prog.Methods) != 1 || prog.Methods[0].Name != "greet" {
		t.Fatalf("expected greet method, got %+v", prog.Methods)
	}
}

func TestErrDefAndFallibleFunction(t *testing.T) {
	src := `
DivideByZero :: err {
	message str,
}

fn divide(int a, int b) -> int or err {
	if b == 0 {
		fail DivideByZero;
	}
	return a / b;
}
`
	prog := mustParse(t, src)
	if len(prog.Errors) != 1 || prog.Errors[0].Name != "DivideByZero" {
		t.Fatalf("expected DivideByZero err def, got %+v", prog.Errors)
	}
	fn := prog.Functions[0]
	if !fn.IsFallible() {
		t.Fatalf("expected divide to be fallible")
	}
	ifStmt := fn.Body[0].(*ast.IfStmt)
	failStmt := ifStmt.Then[0].(*ast.FailStmt)
	lit, ok := failStmt.Value.(*ast.StructLiteral)
	if !ok {
		t.Fatalf("expected bare-error StructLiteral, got %T", failStmt.Value)
	}
	if lit.StructName != "DivideByZero" || len(lit.FieldValues) != 0 {
		t.Fatalf("expected bare DivideByZero literal, got %+v", lit)
	}
}

func TestExternAnnotation(t *testing.T) {
	src := `
@extern("libc")
fn sqrt(f64 x) -> f64;
`
	prog := mustParse(t, src)
	if len(prog.Externs) != 1 {
		t.Fatalf("expected 1 extern, got %d", len(prog.Externs))
	}
	ext := prog.Externs[0]
	if ext.Library != "libc" || ext.Name != "sqrt" {
		t.Fatalf("unexpected extern: %+v", ext)
	}
}

func TestPubVisibility(t *testing.T) {
	src := `
pub fn exported() -> int {
	return 1;
}

fn hidden() -> int {
	return 2;
}
`
	prog := mustParse(t, src)
	if prog.Functions[0].Visibility != ast.Public {
		t.Fatalf("expected exported() to be Public")
	}
	if prog.Functions[1].Visibility != ast.Private {
		t.Fatalf("expected hidden() to be Private")
	}
}

func TestImportAndUsing(t *testing.T) {
	src := `
import bishop.json;
import bishop.http as web;
using json.Parse, web.Get;

fn run() {
	x := json.Parse("{}");
}
`
	prog := mustParse(t, src)
	if len(prog.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(prog.Imports))
	}
	if prog.Imports[1].Alias != "web" {
		t.Fatalf("expected alias web, got %q", prog.Imports[1].Alias)
	}
	if len(prog.Usings) != 1 || len(prog.Usings[0].Members) != 2 {
		t.Fatalf("expected 1 using stmt with 2 members, got %+v", prog.Usings)
	}
}

func TestWildcardUsingEnablesBareStructLiteral(t *testing.T) {
	src := `
import widgets.shapes;
using shapes.*;

fn make() {
	c := Circle{radius: 1};
}
`
	prog := mustParse(t, src)
	decl := prog.Functions[0].Body[0].(*ast.VariableDecl)
	if _, ok := decl.Value.(*ast.StructLiteral); !ok {
		t.Fatalf("expected wildcard-using to enable StructLiteral parse, got %T", decl.Value)
	}
}

func TestVariableDeclForms(t *testing.T) {
	src := `
fn run() {
	a := 1;
	b : int := 2;
	c int = 3;
	d str? = none;
}
`
	prog := mustParse(t, src)
	body := prog.Functions[0].Body
	a := body[0].(*ast.VariableDecl)
	if a.Type != "" {
		t.Fatalf("expected inferred type for a, got %q", a.Type)
	}
	b := body[1].(*ast.VariableDecl)
	if b.Type != "int" {
		t.Fatalf("expected int type for b, got %q", b.Type)
	}
	c := body[2].(*ast.VariableDecl)
	if c.Type != "int" {
		t.Fatalf("expected int type for c, got %q", c.Type)
	}
	d := body[3].(*ast.VariableDecl)
	if !d.IsOptional || d.Type != "str" {
		t.Fatalf("expected optional str type for d, got %+v", d)
	}
}

func TestIfWhileForLoops(t *testing.T) {
	src := `
fn run() {
	if true {
		x := 1;
	} else if false {
		y := 2;
	} else {
		z := 3;
	}

	while true {
		break;
	}

	for i in 0..10 {
		continue;
	}

	for item in items {
		x := item;
	}
}
`
	prog := mustParse(t, src)
	body := prog.Functions[0].Body
	ifStmt := body[0].(*ast.IfStmt)
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected single else-if statement, got %d", len(ifStmt.Else))
	}
	if _, ok := ifStmt.Else[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected chained IfStmt for else-if, got %T", ifStmt.Else[0])
	}

	forRange := body[2].(*ast.ForStmt)
	if forRange.Kind != ast.ForRange {
		t.Fatalf("expected ForRange kind")
	}
	forEach := body[3].(*ast.ForStmt)
	if forEach.Kind != ast.ForEach {
		t.Fatalf("expected ForEach kind")
	}
}

func TestAsyncInferenceFromAwaitGoSelect(t *testing.T) {
	src := `
fn withAwait() {
	x := await fetch();
}

fn withGo() {
	go work();
}

fn withSelect() {
	ch := Channel<int>();
	select {
		ch.recv() {
			x := 1;
		}
	}
}

fn plain() {
	x := 1;
}
`
	prog := mustParse(t, src)
	byName := map[string]*ast.FunctionDef{}
	for _, fn := range prog.Functions {
		byName[fn.Name] = fn
	}
	if !byName["withAwait"].IsAsync {
		t.Fatalf("expected withAwait to be async")
	}
	if !byName["withGo"].IsAsync {
		t.Fatalf("expected withGo to be async")
	}
	if !byName["withSelect"].IsAsync {
		t.Fatalf("expected withSelect to be async")
	}
	if byName["plain"].IsAsync {
		t.Fatalf("expected plain to not be async")
	}
}

func TestOrHandlerForms(t *testing.T) {
	src := `
fn useReturn() -> int {
	x := mayFail() or return 0;
	return x;
}

fn useFailErr() -> int or err {
	x := mayFail() or fail err;
	return x;
}

fn useFailValue() -> int or err {
	x := mayFail() or fail "boom";
	return x;
}

fn useContinue() {
	for i in 0..10 {
		x := mayFail() or continue;
	}
}

fn useBreak() {
	for i in 0..10 {
		x := mayFail() or break;
	}
}

fn useBlock() -> int {
	x := mayFail() or {
		return -1;
	};
	return x;
}

fn useMatch() -> int {
	x := mayFail() or match err {
		DivideByZero => return -1,
		_ => return -2,
	};
	return x;
}
`
	prog := mustParse(t, src)
	byName := map[string]*ast.FunctionDef{}
	for _, fn := range prog.Functions {
		byName[fn.Name] = fn
	}

	getOr := func(name string) *ast.OrExpr {
		decl := byName[name].Body[0].(*ast.VariableDecl)
		return decl.Value.(*ast.OrExpr)
	}

	if getOr("useReturn").Handler.Kind != ast.OrReturn {
		t.Fatalf("expected OrReturn")
	}
	if getOr("useFailErr").Handler.Kind != ast.OrFail || getOr("useFailErr").Handler.FailTarget != "err" {
		t.Fatalf("expected OrFail targeting err")
	}
	if getOr("useFailValue").Handler.Kind != ast.OrFail || getOr("useFailValue").Handler.FailValue == nil {
		t.Fatalf("expected OrFail with a value")
	}

	continueFor := byName["useContinue"].Body[0].(*ast.ForStmt)
	continueDecl := continueFor.Body[0].(*ast.VariableDecl)
	if continueDecl.Value.(*ast.OrExpr).Handler.Kind != ast.OrContinue {
		t.Fatalf("expected OrContinue")
	}

	breakFor := byName["useBreak"].Body[0].(*ast.ForStmt)
	breakDecl := breakFor.Body[0].(*ast.VariableDecl)
	if breakDecl.Value.(*ast.OrExpr).Handler.Kind != ast.OrBreak {
		t.Fatalf("expected OrBreak")
	}

	if getOr("useBlock").Handler.Kind != ast.OrBlock || len(getOr("useBlock").Handler.Body) != 1 {
		t.Fatalf("expected OrBlock with one statement")
	}

	matchHandler := getOr("useMatch").Handler
	if matchHandler.Kind != ast.OrMatch || len(matchHandler.Arms) != 2 {
		t.Fatalf("expected OrMatch with 2 arms, got %+v", matchHandler)
	}
	if matchHandler.Arms[0].ErrorType != "DivideByZero" || matchHandler.Arms[1].ErrorType != "_" {
		t.Fatalf("unexpected arm error types: %+v", matchHandler.Arms)
	}
}

func TestPrecedenceClimbing(t *testing.T) {
	src := `
fn run() -> int {
	return 1 + 2 * 3 - 4 / 2;
}
`
	prog := mustParse(t, src)
	ret := prog.Functions[0].Body[0].(*ast.ReturnStmt)
	top := ret.Value.(*ast.BinaryExpr)
	if top.Op != "-" {
		t.Fatalf("expected top-level '-' operator, got %q", top.Op)
	}
	left := top.Left.(*ast.BinaryExpr)
	if left.Op != "+" {
		t.Fatalf("expected '+' below '-', got %q", left.Op)
	}
	mul := left.Right.(*ast.BinaryExpr)
	if mul.Op != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %q", mul.Op)
	}
	div := top.Right.(*ast.BinaryExpr)
	if div.Op != "/" {
		t.Fatalf("expected '/' to bind tighter than '-', got %q", div.Op)
	}
}

func TestContainerConstruction(t *testing.T) {
	src := `
fn run() {
	a := List<int>();
	b := Map<str, int>();
	c := PriorityQueue<int>(true);
	d := Channel<int>();
}
`
	prog := mustParse(t, src)
	body := prog.Functions[0].Body

	aDecl := body[0].(*ast.VariableDecl)
	if lc, ok := aDecl.Value.(*ast.ListCreate); !ok || lc.ElementType != "int" {
		t.Fatalf("expected ListCreate<int>, got %+v", aDecl.Value)
	}

	bDecl := body[1].(*ast.VariableDecl)
	mc, ok := bDecl.Value.(*ast.MapCreate)
	if !ok || mc.KeyType != "str" || mc.ValueType != "int" {
		t.Fatalf("expected MapCreate<str,int>, got %+v", bDecl.Value)
	}

	cDecl := body[2].(*ast.VariableDecl)
	pq, ok := cDecl.Value.(*ast.PriorityQueueCreate)
	if !ok || !pq.IsMinHeap {
		t.Fatalf("expected min-heap PriorityQueueCreate, got %+v", cDecl.Value)
	}

	dDecl := body[3].(*ast.VariableDecl)
	if ch, ok := dDecl.Value.(*ast.ChannelCreate); !ok || ch.ElementType != "int" {
		t.Fatalf("expected ChannelCreate<int>, got %+v", dDecl.Value)
	}
}

func TestMapVsSetLiteralDisambiguation(t *testing.T) {
	src := `
fn run() {
	m := {"a": 1, "b": 2};
	s := {1, 2, 3};
	e := {};
}
`
	prog := mustParse(t, src)
	body := prog.Functions[0].Body

	mDecl := body[0].(*ast.VariableDecl)
	if ml, ok := mDecl.Value.(*ast.MapLiteral); !ok || len(ml.Keys) != 2 {
		t.Fatalf("expected 2-entry MapLiteral, got %+v", mDecl.Value)
	}

	sDecl := body[1].(*ast.VariableDecl)
	if sl, ok := sDecl.Value.(*ast.SetLiteral); !ok || len(sl.Elements) != 3 {
		t.Fatalf("expected 3-element SetLiteral, got %+v", sDecl.Value)
	}

	eDecl := body[2].(*ast.VariableDecl)
	if sl, ok := eDecl.Value.(*ast.SetLiteral); !ok || len(sl.Elements) != 0 {
		t.Fatalf("expected empty SetLiteral for {}, got %+v", eDecl.Value)
	}
}

func TestMethodChainAndQualifiedCall(t *testing.T) {
	src := `
import bishop.json;

fn run() {
	a := obj.field.method(1, 2);
	b := json.Parse("{}");
}
`
	prog := mustParse(t, src)
	body := prog.Functions[0].Body

	aDecl := body[0].(*ast.VariableDecl)
	mc, ok := aDecl.Value.(*ast.MethodCall)
	if !ok || mc.Method != "method" {
		t.Fatalf("expected trailing MethodCall, got %+v", aDecl.Value)
	}
	if _, ok := mc.Object.(*ast.FieldAccess); !ok {
		t.Fatalf("expected FieldAccess receiver, got %T", mc.Object)
	}

	bDecl := body[1].(*ast.VariableDecl)
	call, ok := bDecl.Value.(*ast.FunctionCall)
	if !ok || call.Name != "json.Parse" {
		t.Fatalf("expected dotted FunctionCall json.Parse, got %+v", bDecl.Value)
	}
}

func TestWithAndGoStmt(t *testing.T) {
	src := `
fn run() {
	with openFile("x") as f {
		x := f;
	}
	go backgroundTask();
}
`
	prog := mustParse(t, src)
	with := prog.Functions[0].Body[0].(*ast.WithStmt)
	if with.BindingName != "f" {
		t.Fatalf("expected binding name f, got %q", with.BindingName)
	}
	if _, ok := prog.Functions[0].Body[1].(*ast.GoSpawn); !ok {
		t.Fatalf("expected GoSpawn statement")
	}
}

func TestFieldAssignment(t *testing.T) {
	src := `
fn run() {
	obj.field = 5;
}
`
	prog := mustParse(t, src)
	fa, ok := prog.Functions[0].Body[0].(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected FieldAssignment, got %T", prog.Functions[0].Body[0])
	}
	if fa.Field != "field" {
		t.Fatalf("expected field name 'field', got %q", fa.Field)
	}
}

func TestParseAbortsOnUnexpectedToken(t *testing.T) {
	_, err := Parse("test.bishop", "fn broken( { }")
	if err == nil {
		t.Fatalf("expected a parse error for malformed function signature")
	}
}

func TestDocCommentAttachment(t *testing.T) {
	src := `
/// Computes the square of a number.
fn square(int x) -> int {
	return x * x;
}
`
	prog := mustParse(t, src)
	if prog.Functions[0].Doc == "" {
		t.Fatalf("expected doc comment to be attached to square()")
	}
}
