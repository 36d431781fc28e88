// ToAny and Assign generalize the teacher's (toon-format-toon-go)
// internal/codec/unmarshal.go assignValue, retargeted from that codec's
// "decoded any" shape onto this model's Value tagged union.
package convert

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/datatoon/toon/internal/value"
)

// ToAny converts v into the JSON-friendly shape encoding/json expects:
// nil, bool, int64, float64, string, []any, map[string]any.
func ToAny(v value.Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.AsBool()
	case value.KindInt:
		return v.AsInt()
	case value.KindFloat:
		return v.AsFloat()
	case value.KindStr:
		return v.AsStr()
	case value.KindList:
		elems := v.AsList()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = ToAny(e)
		}
		return out
	case value.KindObject:
		obj := v.AsObject()
		out := make(map[string]any, obj.Len())
		for _, f := range obj.Fields {
			out[f.Key] = ToAny(f.Value)
		}
		return out
	default:
		return nil
	}
}

// Assign decodes v into dst, which must be an addressable, settable
// reflect.Value (typically obtained via reflect.ValueOf(ptr).Elem()).
func Assign(dst reflect.Value, v value.Value) error {
	if !dst.CanSet() {
		return errors.New("toon: cannot set destination value")
	}

	switch dst.Kind() {
	case reflect.Interface:
		dst.Set(reflect.ValueOf(ToAny(v)))
		return nil
	case reflect.Pointer:
		if v.IsNull() {
			dst.SetZero()
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return Assign(dst.Elem(), v)
	case reflect.Struct:
		if v.Kind() != value.KindObject {
			return fmt.Errorf("toon: expected object for struct, got %s", v.Kind())
		}
		obj := v.AsObject()
		meta := cachedStructMeta(dst.Type())
		for _, fm := range meta.fields {
			fv, ok := obj.Get(fm.name)
			if !ok {
				continue
			}
			if fm.hint.known && !fv.IsNull() && fv.Kind() != fm.hint.kind {
				return fmt.Errorf("%s: expected %s, got %s", fm.name, fm.hint.kind, fv.Kind())
			}
			if err := Assign(dst.FieldByIndex(fm.index), fv); err != nil {
				return fmt.Errorf("%s: %w", fm.name, err)
			}
		}
		return nil
	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toon: map key type must be string, got %s", dst.Type().Key())
		}
		if v.Kind() != value.KindObject {
			return fmt.Errorf("toon: expected object for map, got %s", v.Kind())
		}
		obj := v.AsObject()
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		for _, f := range obj.Fields {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := Assign(elem, f.Value); err != nil {
				return fmt.Errorf("%s: %w", f.Key, err)
			}
			dst.SetMapIndex(reflect.ValueOf(f.Key), elem)
		}
		return nil
	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == value.KindStr {
			dst.SetBytes([]byte(v.AsStr()))
			return nil
		}
		if v.IsNull() {
			dst.SetZero()
			return nil
		}
		if v.Kind() != value.KindList {
			return fmt.Errorf("toon: expected array for slice, got %s", v.Kind())
		}
		elems := v.AsList()
		slice := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := Assign(slice.Index(i), e); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(slice)
		return nil
	case reflect.Array:
		if v.Kind() != value.KindList {
			return fmt.Errorf("toon: expected array for fixed array, got %s", v.Kind())
		}
		elems := v.AsList()
		if len(elems) != dst.Len() {
			return fmt.Errorf("toon: array length mismatch: expected %d, got %d", dst.Len(), len(elems))
		}
		for i := 0; i < dst.Len(); i++ {
			if err := Assign(dst.Index(i), elems[i]); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	case reflect.String:
		if v.Kind() != value.KindStr {
			return fmt.Errorf("toon: cannot assign %s to string", v.Kind())
		}
		dst.SetString(v.AsStr())
		return nil
	case reflect.Bool:
		if v.Kind() != value.KindBool {
			return fmt.Errorf("toon: cannot assign %s to bool", v.Kind())
		}
		dst.SetBool(v.AsBool())
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("toon: cannot assign %s to float", v.Kind())
		}
		dst.SetFloat(f)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("toon: cannot assign %s to int", v.Kind())
		}
		i := int64(f)
		if dst.OverflowInt(i) {
			return fmt.Errorf("toon: integer %v overflows %s", f, dst.Type())
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f, ok := toFloat(v)
		if !ok || f < 0 {
			return fmt.Errorf("toon: cannot assign %s to uint", v.Kind())
		}
		u := uint64(f)
		if dst.OverflowUint(u) {
			return fmt.Errorf("toon: integer %v overflows %s", f, dst.Type())
		}
		dst.SetUint(u)
		return nil
	default:
		return fmt.Errorf("toon: unsupported destination kind %s", dst.Kind())
	}
}

func toFloat(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindInt:
		return float64(v.AsInt()), true
	case value.KindFloat:
		return v.AsFloat(), true
	default:
		return 0, false
	}
}
