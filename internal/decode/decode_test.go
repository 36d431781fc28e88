package decode

import (
	"testing"

	"github.com/datatoon/toon/internal/value"
)

func defaultOpts() Options { return Options{Delimiter: ','} }

func TestDecodeScalarRoot(t *testing.T) {
	v, err := Decode([]byte("hello"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind() != value.KindStr || v.AsStr() != "hello" {
		t.Fatalf("Decode(hello) = %#v", v)
	}
}

func TestDecodeEmptyInputFails(t *testing.T) {
	_, err := Decode([]byte("   \n"), defaultOpts())
	if err == nil {
		t.Fatal("Decode(whitespace-only) should fail")
	}
	de, ok := err.(*value.DecodeError)
	if !ok {
		t.Fatalf("error is %T, want *value.DecodeError", err)
	}
	if de.Kind != value.ErrEmptyInput {
		t.Fatalf("Kind = %v, want ErrEmptyInput", de.Kind)
	}
}

func TestDecodeObject(t *testing.T) {
	v, err := Decode([]byte("{\n  a: 1\n  b: hello\n}"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Kind() != value.KindObject {
		t.Fatalf("Kind = %v, want object", v.Kind())
	}
	a, ok := v.AsObject().Get("a")
	if !ok || a.AsInt() != 1 {
		t.Fatalf("a = %#v", a)
	}
	b, ok := v.AsObject().Get("b")
	if !ok || b.AsStr() != "hello" {
		t.Fatalf("b = %#v", b)
	}
}

func TestDecodeDuplicateKeyLastWins(t *testing.T) {
	v, err := Decode([]byte("{a: 1\na: 2}"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, _ := v.AsObject().Get("a")
	if a.AsInt() != 2 {
		t.Fatalf("a = %d, want 2 (last wins)", a.AsInt())
	}
	if v.AsObject().Len() != 1 {
		t.Fatalf("object has %d fields, want 1", v.AsObject().Len())
	}
}

func TestDecodeRegularList(t *testing.T) {
	v, err := Decode([]byte("[3]:\n  1\n  2\n  3"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	elems := v.AsList()
	if len(elems) != 3 {
		t.Fatalf("len(elems) = %d, want 3", len(elems))
	}
	for i, want := range []int64{1, 2, 3} {
		if elems[i].AsInt() != want {
			t.Errorf("elems[%d] = %d, want %d", i, elems[i].AsInt(), want)
		}
	}
}

func TestDecodeTabularList(t *testing.T) {
	text := "employees[2]{name,role}:\n  Ada,eng\n  Grace,admiral"
	v, err := Decode([]byte("{"+text+"\n}"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rows, _ := v.AsObject().Get("employees")
	elems := rows.AsList()
	if len(elems) != 2 {
		t.Fatalf("len(elems) = %d, want 2", len(elems))
	}
	name, _ := elems[0].AsObject().Get("name")
	if name.AsStr() != "Ada" {
		t.Fatalf("elems[0].name = %q, want Ada", name.AsStr())
	}
}

func TestDecodeQuotedString(t *testing.T) {
	v, err := Decode([]byte(`"hello, world"`), defaultOpts())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.AsStr() != "hello, world" {
		t.Fatalf("v = %q", v.AsStr())
	}
}

func TestDecodeUnterminatedStringFails(t *testing.T) {
	_, err := Decode([]byte(`"unterminated`), defaultOpts())
	if err == nil {
		t.Fatal("expected an error for an unterminated quoted string")
	}
	de := err.(*value.DecodeError)
	if de.Kind != value.ErrUnterminatedString {
		t.Fatalf("Kind = %v, want ErrUnterminatedString", de.Kind)
	}
}

func TestDecodeSpaceInsideScalarIsNotTrailingContent(t *testing.T) {
	_, err := Decode([]byte("1 2"), defaultOpts())
	// "1 2" is a single unquoted scalar token (space is not a terminator),
	// so this must succeed as the string "1 2" rather than fail.
	if err != nil {
		t.Fatalf("Decode(\"1 2\"): %v", err)
	}
}

func TestDecodeRowArityMismatchFails(t *testing.T) {
	text := "[2]{a,b}:\n  1,2,3\n  4,5"
	_, err := Decode([]byte(text), defaultOpts())
	if err == nil {
		t.Fatal("expected an error for a row with too many cells")
	}
}

func TestDecodeEmptyObjectAndList(t *testing.T) {
	v, err := Decode([]byte("{}"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode({}): %v", err)
	}
	if !v.AsObject().IsEmpty() {
		t.Fatalf("expected empty object")
	}

	v, err = Decode([]byte("[0]"), defaultOpts())
	if err != nil {
		t.Fatalf("Decode([0]): %v", err)
	}
	if len(v.AsList()) != 0 {
		t.Fatalf("expected empty list")
	}
}
