// fieldMeta describes one exported struct field's TOON projection. Unlike a
// plain encoding/json-style field cache, each entry also carries a kindHint:
// the value.Kind its Go type projects onto under FromAny, so both directions
// of the reflective conversion can reason in terms of the Value model's own
// tagged union instead of raw reflect.Kind. Grounded on the teacher's
// (toon-format-toon-go) internal/codec/structmeta.go field cache, generalized
// from a json-shaped cache into one that speaks the Value model's Kind.
package convert

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/datatoon/toon/internal/value"
)

// kindHint records the value.Kind a struct field's Go type projects onto,
// when that projection is knowable from the type alone (it is not, for
// interface{} fields or types implementing fmt.Stringer/time.Time, whose
// projected Kind depends on the runtime value or a time formatter).
type kindHint struct {
	kind  value.Kind
	known bool
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// inferKind derives the kindHint for a Go type by the same rules fromAny
// applies at conversion time, unwrapping pointers to their element type.
func inferKind(t reflect.Type) kindHint {
	if t == timeType || t.Implements(stringerType) {
		return kindHint{known: false}
	}
	switch t.Kind() {
	case reflect.String:
		return kindHint{kind: value.KindStr, known: true}
	case reflect.Bool:
		return kindHint{kind: value.KindBool, known: true}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindHint{kind: value.KindInt, known: true}
	case reflect.Float32, reflect.Float64:
		return kindHint{kind: value.KindFloat, known: true}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return kindHint{kind: value.KindStr, known: true} // []byte renders as a string
		}
		return kindHint{kind: value.KindList, known: true}
	case reflect.Array:
		return kindHint{kind: value.KindList, known: true}
	case reflect.Map, reflect.Struct:
		return kindHint{kind: value.KindObject, known: true}
	case reflect.Pointer:
		return inferKind(t.Elem())
	default:
		return kindHint{known: false}
	}
}

type fieldMeta struct {
	name      string
	omitEmpty bool
	index     []int
	hint      kindHint
}

type structMeta struct {
	fields []fieldMeta
	lookup map[string]fieldMeta
}

var structCache sync.Map // map[reflect.Type]structMeta

func cachedStructMeta(t reflect.Type) structMeta {
	if meta, ok := structCache.Load(t); ok {
		return meta.(structMeta)
	}
	meta := buildStructMeta(t)
	structCache.Store(t, meta)
	return meta
}

func buildStructMeta(t reflect.Type) structMeta {
	fields := make([]fieldMeta, 0, t.NumField())
	lookup := make(map[string]fieldMeta, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("toon")
		if tag == "-" {
			continue
		}
		name, opts := parseStructTag(tag)
		if name == "" {
			name = sf.Name
		}
		meta := fieldMeta{
			name:      name,
			omitEmpty: opts["omitempty"],
			index:     sf.Index,
			hint:      inferKind(sf.Type),
		}
		fields = append(fields, meta)
		lookup[name] = meta
	}
	return structMeta{fields: fields, lookup: lookup}
}

func parseStructTag(tag string) (string, map[string]bool) {
	options := map[string]bool{}
	if tag == "" {
		return "", options
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	for _, opt := range parts[1:] {
		if opt == "" {
			continue
		}
		options[opt] = true
	}
	return name, options
}

func fieldValueByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Zero(v.Type().Elem())
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Struct:
		return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
	}
	return false
}
