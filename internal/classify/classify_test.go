package classify

import (
	"testing"

	"github.com/datatoon/toon/internal/value"
)

func TestListEmptyIsRegular(t *testing.T) {
	shape, cols := List(nil)
	if shape != RegularShape || cols != nil {
		t.Fatalf("List(nil) = (%v, %v), want RegularShape, nil", shape, cols)
	}
}

func TestListTabularUniformObjects(t *testing.T) {
	rows := []value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}, value.Field{Key: "age", Value: value.Int(36)}),
		value.Obj(value.Field{Key: "age", Value: value.Int(41)}, value.Field{Key: "name", Value: value.Str("Grace")}),
	}
	shape, cols := List(rows)
	if shape != TabularShape {
		t.Fatalf("List() shape = %v, want TabularShape", shape)
	}
	want := []string{"age", "name"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("columns[%d] = %q, want %q", i, cols[i], want[i])
		}
	}
}

func TestListRegularWhenFieldsDiffer(t *testing.T) {
	rows := []value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}),
		value.Obj(value.Field{Key: "name", Value: value.Str("Grace")}, value.Field{Key: "age", Value: value.Int(41)}),
	}
	shape, _ := List(rows)
	if shape != RegularShape {
		t.Fatalf("List() shape = %v, want RegularShape", shape)
	}
}

func TestListRegularWhenNestedValue(t *testing.T) {
	rows := []value.Value{
		value.Obj(value.Field{Key: "meta", Value: value.Obj()}),
		value.Obj(value.Field{Key: "meta", Value: value.Obj()}),
	}
	shape, _ := List(rows)
	if shape != RegularShape {
		t.Fatalf("List() shape = %v, want RegularShape for non-scalar fields", shape)
	}
}

func TestListRegularWhenNotAllObjects(t *testing.T) {
	rows := []value.Value{
		value.Obj(value.Field{Key: "name", Value: value.Str("Ada")}),
		value.Int(1),
	}
	shape, _ := List(rows)
	if shape != RegularShape {
		t.Fatalf("List() shape = %v, want RegularShape when not all elements are objects", shape)
	}
}

func TestSortedKeys(t *testing.T) {
	obj := value.NewObject(
		value.Field{Key: "zeta", Value: value.Int(1)},
		value.Field{Key: "alpha", Value: value.Int(2)},
	)
	keys := SortedKeys(obj)
	if keys[0] != "alpha" || keys[1] != "zeta" {
		t.Fatalf("SortedKeys = %v, want [alpha zeta]", keys)
	}
}

func TestCellValueMissingKeyIsNull(t *testing.T) {
	obj := value.NewObject(value.Field{Key: "present", Value: value.Int(1)})
	v := CellValue(obj, "absent")
	if v.Kind() != value.KindNull {
		t.Fatalf("CellValue(missing) kind = %v, want null", v.Kind())
	}
}
