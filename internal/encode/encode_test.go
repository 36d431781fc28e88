package encode

import (
	"strings"
	"testing"

	"github.com/datatoon/toon/internal/value"
)

func defaultOpts() Options {
	return Options{Indent: "  ", Delimiter: ',', LengthMarker: true}
}

func TestEncodeScalarRoot(t *testing.T) {
	got, err := Encode(value.Str("hello"), defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Encode(str) = %q, want %q", got, "hello")
	}
}

func TestEncodeObjectRootAlwaysBraced(t *testing.T) {
	obj := value.Obj(
		value.Field{Key: "b", Value: value.Int(2)},
		value.Field{Key: "a", Value: value.Int(1)},
	)
	got, err := Encode(obj, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "{\n  a: 1\n  b: 2\n}"
	if got != want {
		t.Fatalf("Encode(object root) = %q, want %q", got, want)
	}
}

func TestEncodeEmptyListField(t *testing.T) {
	obj := value.Obj(value.Field{Key: "items", Value: value.ListOf(nil)})
	got, err := Encode(obj, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(got, "items: [0]") {
		t.Fatalf("Encode(empty list field) = %q, want to contain %q", got, "items: [0]")
	}
}

func TestEncodeRegularList(t *testing.T) {
	list := value.ListOf([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	got, err := Encode(list, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "[3]:\n  1\n  2\n  3"
	if got != want {
		t.Fatalf("Encode(regular list) = %q, want %q", got, want)
	}
}

func TestEncodeTabularListField(t *testing.T) {
	rows := value.ListOf([]value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}, value.Field{Key: "role", Value: value.Str("eng")}),
		value.Obj(value.Field{Key: "name", Value: value.Str("Grace")}, value.Field{Key: "role", Value: value.Str("admiral")}),
	})
	obj := value.Obj(value.Field{Key: "employees", Value: rows})
	got, err := Encode(obj, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "{\n  employees[2]{name,role}:\n    Ada,eng\n    Grace,admiral\n}"
	if got != want {
		t.Fatalf("Encode(tabular field) = %q, want %q", got, want)
	}
}

func TestEncodeNoLengthMarker(t *testing.T) {
	opts := defaultOpts()
	opts.LengthMarker = false
	list := value.ListOf([]value.Value{value.Int(1)})
	got, err := Encode(list, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "[1]\n  1"
	if got != want {
		t.Fatalf("Encode(no length marker) = %q, want %q", got, want)
	}
}

func TestEncodeNaNAndInfAsNull(t *testing.T) {
	obj := value.Obj(value.Field{Key: "n", Value: value.Float(nanFloat())})
	got, err := Encode(obj, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(got, "n: null") {
		t.Fatalf("Encode(NaN) = %q, want to contain %q", got, "n: null")
	}
}

func nanFloat() float64 {
	var zero float64
	return zero / zero
}

func TestEncodeDeterministicKeyOrder(t *testing.T) {
	obj := value.Obj(
		value.Field{Key: "z", Value: value.Int(1)},
		value.Field{Key: "a", Value: value.Int(2)},
		value.Field{Key: "m", Value: value.Int(3)},
	)
	got, err := Encode(obj, defaultOpts())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "{\n  a: 2\n  m: 3\n  z: 1\n}"
	if got != want {
		t.Fatalf("Encode(key order) = %q, want %q", got, want)
	}
}
