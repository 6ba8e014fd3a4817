package ast

import "testing"

func TestMethodCallSingleWriteAnnotation(t *testing.T) {
	mc := &MethodCall{Method: "append"}
	mc.SetInferredObjectType("List<int>")
	if mc.InferredObjectType != "List<int>" {
		t.Fatalf("got %q", mc.InferredObjectType)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on conflicting second write")
		}
	}()
	mc.SetInferredObjectType("Map<str, int>")
}

func TestMethodCallAnnotationIdempotent(t *testing.T) {
	mc := &MethodCall{Method: "size"}
	mc.SetInferredObjectType("List<int>")
	mc.SetInferredObjectType("List<int>") // same value twice must not panic
}

func TestFallibilityFlags(t *testing.T) {
	fn := &FunctionDef{Name: "divide", ErrorType: "err"}
	if !fn.IsFallible() {
		t.Fatal("expected fallible function")
	}
	fn2 := &FunctionDef{Name: "add"}
	if fn2.IsFallible() {
		t.Fatal("expected non-fallible function")
	}
}
