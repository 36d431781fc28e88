package stream

import (
	"strings"
	"testing"

	"github.com/datatoon/toon/internal/value"
)

func collect(seq func(func(string) bool)) string {
	var b strings.Builder
	seq(func(s string) bool {
		b.WriteString(s)
		return true
	})
	return b.String()
}

func defaultOpts() Options { return Options{Indent: "  ", Delimiter: ','} }

func TestEncodeEmptySequence(t *testing.T) {
	var items []value.Value
	seq := Encode(func(yield func(value.Value) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}, defaultOpts())
	got := collect(seq)
	if got != "[0]:\n" {
		t.Fatalf("Encode(empty) = %q, want %q", got, "[0]:\n")
	}
}

func TestEncodeTabularShapeFromUniformObjects(t *testing.T) {
	rows := []value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}, value.Field{Key: "age", Value: value.Int(36)}),
		value.Obj(value.Field{Key: "name", Value: value.Str("Grace")}, value.Field{Key: "age", Value: value.Int(41)}),
	}
	seq := Encode(func(yield func(value.Value) bool) {
		for _, v := range rows {
			if !yield(v) {
				return
			}
		}
	}, defaultOpts())
	got := collect(seq)
	want := "[-]{age,name}:\n" + "  36,Ada\n" + "  41,Grace\n"
	if got != want {
		t.Fatalf("Encode(tabular) = %q, want %q", got, want)
	}
}

func TestEncodeRegularShapeFromScalars(t *testing.T) {
	elems := []value.Value{value.Int(1), value.Int(2), value.Int(3)}
	seq := Encode(func(yield func(value.Value) bool) {
		for _, v := range elems {
			if !yield(v) {
				return
			}
		}
	}, defaultOpts())
	got := collect(seq)
	want := "[-]:\n" + "  1\n" + "  2\n" + "  3\n"
	if got != want {
		t.Fatalf("Encode(regular) = %q, want %q", got, want)
	}
}

func TestEncodeRegularShapeWhenObjectsDiffer(t *testing.T) {
	elems := []value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}),
		value.Obj(value.Field{Key: "name", Value: value.Str("Grace")}, value.Field{Key: "age", Value: value.Int(41)}),
	}
	seq := Encode(func(yield func(value.Value) bool) {
		for _, v := range elems {
			if !yield(v) {
				return
			}
		}
	}, defaultOpts())
	got := collect(seq)
	if !strings.HasPrefix(got, "[-]:\n") {
		t.Fatalf("Encode(mismatched objects) = %q, want regular-shape header", got)
	}
	if strings.Contains(got, "{age") || strings.Contains(got, "{name") {
		t.Fatalf("Encode(mismatched objects) = %q, should not use a tabular header", got)
	}
}

func TestEncodeStopsWhenYieldReturnsFalse(t *testing.T) {
	elems := []value.Value{value.Int(1), value.Int(2), value.Int(3)}
	seq := Encode(func(yield func(value.Value) bool) {
		for _, v := range elems {
			if !yield(v) {
				return
			}
		}
	}, defaultOpts())
	var lines []string
	seq(func(s string) bool {
		lines = append(lines, s)
		return len(lines) < 2
	})
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want exactly 2 (stopped early)", len(lines))
	}
}
