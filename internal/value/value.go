// Package value implements the §3 Value data model: the tagged union of
// decoded values (Null, Bool, Int, Float, Str, List, Object) shared by the
// classifier, encoder, decoder, and streaming adapters. It is kept
// independent of the root package so every other internal package can
// depend on it without creating an import cycle; the root package
// re-exports these types as public aliases.
package value

import "fmt"

// Kind tags the variant held by a Value. Visitors should switch on Kind
// rather than type-asserting the zero value directly.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the tagged union described by the data model: Null, Bool, Int,
// Float, Str, List, or Object. Only the field matching Kind is meaningful.
// Values are immutable from the codec's perspective; nothing in this
// package mutates a Value once constructed.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	obj  Object
}

// Field is a single key/value pair of an Object, in encounter order.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered mapping from string keys to Value. Order is
// preserved for the host's convenience (e.g. round-tripping a decoded
// document through FromAny/ToAny) but carries no semantic weight: the
// encoder always imposes a lexicographic key order on emission, per the
// data model's note that Object order is not semantically meaningful.
type Object struct {
	Fields []Field
}

// NewObject builds an ordered Object from the supplied fields. Duplicate
// keys are permitted at construction time; callers that need last-wins
// semantics should dedupe before calling NewObject.
func NewObject(fields ...Field) Object {
	return Object{Fields: append([]Field(nil), fields...)}
}

// Len reports the number of fields in the object.
func (o Object) Len() int { return len(o.Fields) }

// IsEmpty reports whether the object has no fields.
func (o Object) IsEmpty() bool { return len(o.Fields) == 0 }

// Get returns the value stored under key and whether it was present. If
// key occurs more than once, the first occurrence wins.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the object's keys in encounter order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a Float value. NaN and +/-Inf are accepted at the model
// level (per the data model) but the encoder renders them as null.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str returns a Str value.
func Str(s string) Value { return Value{kind: KindStr, s: s} }

// List returns a List value wrapping the given elements in order.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), elems...)}
}

// ListOf wraps an existing slice as a List value without copying the
// caller's backing array ownership semantics into account; callers should
// not mutate elems afterwards.
func ListOf(elems []Value) Value {
	return Value{kind: KindList, list: elems}
}

// Obj returns an Object value built from the given fields.
func Obj(fields ...Field) Value {
	return Value{kind: KindObject, obj: NewObject(fields...)}
}

// ObjValue wraps an existing Object as a Value.
func ObjValue(o Object) Value { return Value{kind: KindObject, obj: o} }

// Kind reports the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload. Only meaningful when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload. Only meaningful when Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsStr returns the string payload. Only meaningful when Kind() == KindStr.
func (v Value) AsStr() string { return v.s }

// AsList returns the list payload. Only meaningful when Kind() == KindList.
func (v Value) AsList() []Value { return v.list }

// AsObject returns the object payload. Only meaningful when Kind() == KindObject.
func (v Value) AsObject() Object { return v.obj }

// IsScalar reports whether v is one of Null, Bool, Int, Float, Str.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat, KindStr:
		return true
	default:
		return false
	}
}

// Equal reports deep, order-sensitive equality for List and field-set
// equality (ignoring order) for Object, matching the round-trip property
// in spec §8 ("up to object key re-ordering").
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindStr:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj.Fields) != len(other.obj.Fields) {
			return false
		}
		for _, f := range v.obj.Fields {
			ov, ok := other.obj.Get(f.Key)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
