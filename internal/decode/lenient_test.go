package decode

import (
	"testing"

	"github.com/datatoon/toon/internal/value"
)

func TestDecodeLenientRecoversMissingBrace(t *testing.T) {
	v, diags := DecodeLenient([]byte("a: 1\nb: 2"), defaultOpts())
	if v.Kind() != value.KindObject {
		t.Fatalf("Kind = %v, want object", v.Kind())
	}
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for the missing braces")
	}
	a, ok := v.AsObject().Get("a")
	if !ok || a.AsInt() != 1 {
		t.Fatalf("a = %#v", a)
	}
}

func TestDecodeLenientRowArityMismatchFillsNull(t *testing.T) {
	text := "[2]{a,b}:\n  1,2\n  3"
	v, diags := DecodeLenient([]byte(text), defaultOpts())
	elems := v.AsList()
	if len(elems) != 2 {
		t.Fatalf("len(elems) = %d, want 2", len(elems))
	}
	b, ok := elems[1].AsObject().Get("b")
	if !ok || b.Kind() != value.KindNull {
		t.Fatalf("elems[1].b = %#v, want Null", b)
	}
	foundArityDiag := false
	for _, d := range diags {
		if d.Kind == value.ErrRowArityMismatch {
			foundArityDiag = true
		}
	}
	if !foundArityDiag {
		t.Fatalf("expected a RowArityMismatch diagnostic, got %v", diags)
	}
}

func TestDecodeLenientArrayLengthMismatchAcceptsActual(t *testing.T) {
	text := "[5]:\n  1\n  2"
	v, diags := DecodeLenient([]byte(text), defaultOpts())
	if len(v.AsList()) != 2 {
		t.Fatalf("len(elems) = %d, want 2 (actual count)", len(v.AsList()))
	}
	foundMismatch := false
	for _, d := range diags {
		if d.Kind == value.ErrLengthMismatch {
			foundMismatch = true
		}
	}
	if !foundMismatch {
		t.Fatalf("expected a LengthMismatch diagnostic, got %v", diags)
	}
}

func TestDecodeLenientUnterminatedStringTerminatesAtLine(t *testing.T) {
	v, diags := DecodeLenient([]byte("\"unterminated\nrest: 1"), defaultOpts())
	if v.Kind() != value.KindStr {
		t.Fatalf("Kind = %v, want string", v.Kind())
	}
	if len(diags) == 0 {
		t.Fatal("expected an UnterminatedString diagnostic")
	}
}

func TestDecodeLenientNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"{{{{",
		"[1]:",
		"[2]{a,b}:\nnot,cells,extra",
		"}}}",
	}
	for _, in := range inputs {
		// DecodeLenient has no error return; this test documents that
		// every input, however malformed, produces a Value plus diagnostics.
		_, _ = DecodeLenient([]byte(in), defaultOpts())
	}
}
