package toon_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/datatoon/toon"
	"github.com/datatoon/toon/internal/value"
)

func roundTrip(t *testing.T, v toon.Value) toon.Value {
	t.Helper()
	doc, err := toon.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := toon.DecodeString(doc)
	if err != nil {
		t.Fatalf("DecodeString(%q): %v", doc, err)
	}
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []toon.Value{
		toon.Null(),
		toon.Bool(true),
		toon.Bool(false),
		toon.Int(42),
		toon.Int(-7),
		toon.Str("hello world"),
		toon.Str("needs, quoting"),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		if !got.Equal(v) {
			t.Errorf("round trip %#v => %#v", v, got)
		}
	}
}

func TestRoundTripNestedObject(t *testing.T) {
	v := toon.Obj(
		toon.Field{Key: "name", Value: toon.Str("Ada Lovelace")},
		toon.Field{Key: "age", Value: toon.Int(36)},
		toon.Field{Key: "tags", Value: toon.List(toon.Str("math"), toon.Str("computing"))},
		toon.Field{Key: "address", Value: toon.Obj(
			toon.Field{Key: "city", Value: toon.Str("London")},
		)},
	)
	got := roundTrip(t, v)
	if diff := cmp.Diff(toon.ToAny(v), toon.ToAny(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripTabularList(t *testing.T) {
	employees := toon.List(
		toon.Obj(toon.Field{Key: "name", Value: toon.Str("Ada")}, toon.Field{Key: "role", Value: toon.Str("eng")}),
		toon.Obj(toon.Field{Key: "name", Value: toon.Str("Grace")}, toon.Field{Key: "role", Value: toon.Str("admiral")}),
	)
	v := toon.Obj(toon.Field{Key: "employees", Value: employees})
	got := roundTrip(t, v)
	if diff := cmp.Diff(toon.ToAny(v), toon.ToAny(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEmptyContainers(t *testing.T) {
	v := toon.Obj(
		toon.Field{Key: "list", Value: toon.ListOf(nil)},
		toon.Field{Key: "obj", Value: toon.ObjValue(toon.NewObject())},
	)
	got := roundTrip(t, v)
	if diff := cmp.Diff(toon.ToAny(v), toon.ToAny(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type person struct {
	Name string `toon:"name"`
	Age  int    `toon:"age"`
	Note string `toon:"note,omitempty"`
}

func TestMarshalUnmarshalStruct(t *testing.T) {
	in := person{Name: "Ada", Age: 36}
	doc, err := toon.MarshalString(in)
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	var out person
	if err := toon.UnmarshalString(doc, &out); err != nil {
		t.Fatalf("UnmarshalString(%q): %v", doc, err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("struct round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLenientRecoversDocumentMissingBraces(t *testing.T) {
	v, diags := toon.DecodeLenientString("name: Ada\nage: 36")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for the missing braces")
	}
	name, ok := v.AsObject().Get("name")
	if !ok || name.AsStr() != "Ada" {
		t.Fatalf("name = %#v", name)
	}
}

func TestValueEqualIgnoresObjectFieldOrder(t *testing.T) {
	a := value.Obj(value.Field{Key: "x", Value: value.Int(1)}, value.Field{Key: "y", Value: value.Int(2)})
	b := value.Obj(value.Field{Key: "y", Value: value.Int(2)}, value.Field{Key: "x", Value: value.Int(1)})
	if !a.Equal(b) {
		t.Fatal("Equal should ignore object field order")
	}
}
