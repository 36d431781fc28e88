package toon

import "github.com/datatoon/toon/internal/value"

// Kind tags the variant held by a Value.
type Kind = value.Kind

const (
	KindNull   = value.KindNull
	KindBool   = value.KindBool
	KindInt    = value.KindInt
	KindFloat  = value.KindFloat
	KindStr    = value.KindStr
	KindList   = value.KindList
	KindObject = value.KindObject
)

// Value is the tagged union described by data model §3: Null, Bool, Int,
// Float, Str, List, or Object. Values are immutable from the codec's
// perspective.
type Value = value.Value

// Field is a single key/value pair of an Object, in encounter order.
type Field = value.Field

// Object is an ordered mapping from string keys to Value. See §3: order is
// preserved for the host's convenience but carries no semantic weight —
// the encoder always imposes a lexicographic key order on emission.
type Object = value.Object

// NewObject builds an ordered Object from the supplied fields.
func NewObject(fields ...Field) Object { return value.NewObject(fields...) }

// Null returns the Null value.
func Null() Value { return value.Null() }

// Bool returns a Bool value.
func Bool(b bool) Value { return value.Bool(b) }

// Int returns an Int value.
func Int(i int64) Value { return value.Int(i) }

// Float returns a Float value. NaN and +/-Inf are legal at the model level
// but the encoder renders them as null (§4.1).
func Float(f float64) Value { return value.Float(f) }

// Str returns a Str value.
func Str(s string) Value { return value.Str(s) }

// List returns a List value wrapping the given elements in order.
func List(elems ...Value) Value { return value.List(elems...) }

// ListOf wraps an existing slice as a List value.
func ListOf(elems []Value) Value { return value.ListOf(elems) }

// Obj returns an Object value built from the given fields.
func Obj(fields ...Field) Value { return value.Obj(fields...) }

// ObjValue wraps an existing Object as a Value.
func ObjValue(o Object) Value { return value.ObjValue(o) }
