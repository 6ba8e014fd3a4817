package types

import (
	"reflect"
	"testing"
)

func TestSplitTypeParamsNested(t *testing.T) {
	got := SplitTypeParams("str, List<int>")
	want := []string{"str", "List<int>"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseContainerNested(t *testing.T) {
	kind, params, ok := ParseContainer("Map<str, List<int>>")
	if !ok || kind != "Map" || !reflect.DeepEqual(params, []string{"str", "List<int>"}) {
		t.Fatalf("kind=%s params=%v ok=%v", kind, params, ok)
	}
}

func TestParseContainerNonGeneric(t *testing.T) {
	if _, _, ok := ParseContainer("int"); ok {
		t.Fatal("expected non-generic type to not parse as container")
	}
}

func TestParseQualified(t *testing.T) {
	mod, bare, ok := ParseQualified("net.TcpStream")
	if !ok || mod != "net" || bare != "TcpStream" {
		t.Fatalf("mod=%s bare=%s ok=%v", mod, bare, ok)
	}
	if _, _, ok := ParseQualified("List<int>"); ok {
		t.Fatal("unqualified generic type should not parse as qualified")
	}
}

func TestParseFunctionTypeVoid(t *testing.T) {
	ft, ok := ParseFunctionType("fn(int, str)")
	if !ok || !reflect.DeepEqual(ft.Params, []string{"int", "str"}) || ft.Return != "" {
		t.Fatalf("ft=%+v ok=%v", ft, ok)
	}
}

func TestParseFunctionTypeWithReturn(t *testing.T) {
	ft, ok := ParseFunctionType("fn(int, int) -> int")
	if !ok || ft.Return != "int" {
		t.Fatalf("ft=%+v ok=%v", ft, ok)
	}
}

func TestPointerHelpers(t *testing.T) {
	if !IsPointer("Person*") {
		t.Fatal("expected pointer")
	}
	if Deref("Person*") != "Person" {
		t.Fatal("expected deref to strip trailing *")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	if got := FormatContainer("Map", []string{"str", "int"}); got != "Map<str, int>" {
		t.Fatalf("got %q", got)
	}
	if got := FormatFunctionType([]string{"int"}, "int"); got != "fn(int) -> int" {
		t.Fatalf("got %q", got)
	}
	if got := FormatFunctionType(nil, ""); got != "fn()" {
		t.Fatalf("got %q", got)
	}
}
