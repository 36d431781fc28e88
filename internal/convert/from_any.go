// FromAny projects an arbitrary Go value onto the Value data model,
// generalizing the teacher's (toon-format-toon-go) internal/codec/normalize.go
// from that codec's "normalizedValue" (nil/bool/string/float64/Object/slice)
// projection onto this model's closed Kind union.
package convert

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/datatoon/toon/internal/value"
)

// maxSafeInteger is the largest integer magnitude representable exactly as
// a float64, mirroring the teacher's JSON-number-safety boundary.
const maxSafeInteger = 1 << 53

// UnsupportedTypeError reports a Go value with no Value projection.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("toon: unsupported value of type %s", e.Type)
}

// TimeFormatter renders a time.Time as its TOON string representation.
// Defaults to RFC 3339.
type TimeFormatter func(time.Time) string

// DefaultTimeFormatter formats with time.RFC3339Nano.
func DefaultTimeFormatter(t time.Time) string { return t.Format(time.RFC3339Nano) }

// FromAny converts v into a Value, generalizing the teacher's normalize().
func FromAny(v any, timeFmt TimeFormatter) (value.Value, error) {
	if timeFmt == nil {
		timeFmt = DefaultTimeFormatter
	}
	return fromAny(v, timeFmt)
}

func fromAny(v any, timeFmt TimeFormatter) (value.Value, error) {
	if v == nil {
		return value.Null(), nil
	}

	switch val := v.(type) {
	case value.Value:
		return val, nil
	case string:
		return value.Str(val), nil
	case bool:
		return value.Bool(val), nil
	case float32:
		return fromFloat(float64(val)), nil
	case float64:
		return fromFloat(val), nil
	case int:
		return fromSignedInt(int64(val)), nil
	case int8:
		return fromSignedInt(int64(val)), nil
	case int16:
		return fromSignedInt(int64(val)), nil
	case int32:
		return fromSignedInt(int64(val)), nil
	case int64:
		return fromSignedInt(val), nil
	case uint:
		return fromUnsignedInt(uint64(val)), nil
	case uint8:
		return fromUnsignedInt(uint64(val)), nil
	case uint16:
		return fromUnsignedInt(uint64(val)), nil
	case uint32:
		return fromUnsignedInt(uint64(val)), nil
	case uint64:
		return fromUnsignedInt(val), nil
	case *big.Int:
		if val == nil {
			return value.Null(), nil
		}
		if val.IsInt64() {
			return fromSignedInt(val.Int64()), nil
		}
		return value.Str(val.String()), nil
	case big.Int:
		return fromAny(&val, timeFmt)
	case time.Time:
		return value.Str(timeFmt(val)), nil
	case fmt.Stringer:
		return value.Str(val.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return fromAny(rv.Elem().Interface(), timeFmt)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return value.Str(string(rv.Bytes())), nil // []byte renders as a string
		}
		n := rv.Len()
		elems := make([]value.Value, n)
		for i := 0; i < n; i++ {
			ev, err := fromAny(rv.Index(i).Interface(), timeFmt)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = ev
		}
		return value.ListOf(elems), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value.Value{}, &UnsupportedTypeError{Type: rv.Type().String()}
		}
		fields := make([]value.Field, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fv, err := fromAny(iter.Value().Interface(), timeFmt)
			if err != nil {
				return value.Value{}, err
			}
			fields = append(fields, value.Field{Key: iter.Key().String(), Value: fv})
		}
		slices.SortFunc(fields, func(a, b value.Field) int {
			switch {
			case a.Key < b.Key:
				return -1
			case a.Key > b.Key:
				return 1
			default:
				return 0
			}
		})
		return value.Obj(fields...), nil
	case reflect.Struct:
		return fromStruct(rv, timeFmt)
	}

	return value.Value{}, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
}

func fromStruct(rv reflect.Value, timeFmt TimeFormatter) (value.Value, error) {
	meta := cachedStructMeta(rv.Type())
	fields := make([]value.Field, 0, len(meta.fields))
	for _, fm := range meta.fields {
		child := fieldValueByIndex(rv, fm.index)
		if fm.omitEmpty && isEmptyValue(child) {
			continue
		}
		fv, ok := fromKnownScalar(fm.hint, child)
		if !ok {
			var err error
			fv, err = fromAny(child.Interface(), timeFmt)
			if err != nil {
				return value.Value{}, fmt.Errorf("%s: %w", fm.name, err)
			}
		}
		fields = append(fields, value.Field{Key: fm.name, Value: fv})
	}
	return value.Obj(fields...), nil
}

// fromKnownScalar projects child directly when its field carries a
// statically-known scalar kindHint, skipping fromAny's interface-boxing type
// switch for the common case of plain string/bool/int/float struct fields.
// It reports false for anything it does not handle itself (lists, objects,
// pointers, and fields whose Kind can only be known at the value, such as
// interface{} or time.Time), leaving those to fromAny's full dispatch.
func fromKnownScalar(hint kindHint, child reflect.Value) (value.Value, bool) {
	if !hint.known {
		return value.Value{}, false
	}
	// hint.kind is derived from the field's static type with pointers
	// unwrapped, but child itself may still be a live pointer (e.g. a *int
	// field) — defer those to fromAny's nil-check-then-recurse handling.
	switch child.Kind() {
	case reflect.String:
		if hint.kind == value.KindStr {
			return value.Str(child.String()), true
		}
	case reflect.Bool:
		if hint.kind == value.KindBool {
			return value.Bool(child.Bool()), true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if hint.kind == value.KindInt {
			return fromSignedInt(child.Int()), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if hint.kind == value.KindInt {
			return fromUnsignedInt(child.Uint()), true
		}
	case reflect.Float32, reflect.Float64:
		if hint.kind == value.KindFloat {
			return fromFloat(child.Float()), true
		}
	}
	return value.Value{}, false
}

func fromFloat(f float64) value.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value.Null()
	}
	if f == math.Trunc(f) && math.Abs(f) <= maxSafeInteger {
		return value.Int(int64(f))
	}
	return value.Float(f)
}

func fromSignedInt(i int64) value.Value {
	if i > maxSafeInteger || i < -maxSafeInteger {
		return value.Str(strconv.FormatInt(i, 10))
	}
	return value.Int(i)
}

func fromUnsignedInt(u uint64) value.Value {
	if u > maxSafeInteger {
		return value.Str(strconv.FormatUint(u, 10))
	}
	return value.Int(int64(u))
}
