// Package classify implements the §4.2 Structural Classifier: given a
// composite Value it decides whether the value is an object, a uniform
// tabular list, or a plain sequential ("regular") list, and computes the
// canonical (sorted) column key set for the tabular case.
//
// The teacher implementation (toon-format-toon-go) folds this decision
// directly into its encoder as the unexported detectTabular helper. This
// package pulls the same decision out on its own, matching spec.md's
// treatment of the classifier as an independent component (§2 lists it
// as its own leaf, shared by both the batch encoder and the streaming
// encoder's two-item peek).
package classify

import (
	"sort"

	"github.com/datatoon/toon/internal/value"
)

// Shape is the result of classifying a composite Value.
type Shape int

const (
	// ObjectShape: the value is a mapping (Object), emitted as "{...}".
	ObjectShape Shape = iota
	// TabularShape: a non-empty list of objects sharing the same scalar
	// field set, emitted as a header-plus-rows table.
	TabularShape
	// RegularShape: any other sequential list, emitted element-per-line.
	RegularShape
)

// List classifies a List value's elements, returning TabularShape plus the
// sorted column keys when every element is an object sharing the same
// scalar-only field set (§4.2), or RegularShape otherwise. Classifying an
// empty list is the caller's responsibility (§4.2: "Empty list -> literal
// [0], not classified further"); List on an empty slice reports
// RegularShape with no columns and callers must special-case length 0
// before consulting the classifier.
func List(elems []value.Value) (Shape, []string) {
	if len(elems) == 0 {
		return RegularShape, nil
	}
	columns, ok := tabularColumns(elems)
	if !ok {
		return RegularShape, nil
	}
	return TabularShape, columns
}

// tabularColumns reports the sorted column set shared by every element of
// elems, or ok=false if elems is not tabular per §4.2's tie-break rules:
//   - every element must be an Object
//   - every element's fields must all be scalars
//   - every element must declare exactly the same key set (order-independent)
//   - a single-element list of one conforming object is still tabular
//   - one element missing a key the others have falls back to RegularShape
func tabularColumns(elems []value.Value) ([]string, bool) {
	first := elems[0]
	if first.Kind() != value.KindObject {
		return nil, false
	}
	keySet := map[string]struct{}{}
	for _, f := range first.AsObject().Fields {
		if !f.Value.IsScalar() {
			return nil, false
		}
		if _, dup := keySet[f.Key]; dup {
			return nil, false
		}
		keySet[f.Key] = struct{}{}
	}

	for _, elem := range elems[1:] {
		if elem.Kind() != value.KindObject {
			return nil, false
		}
		obj := elem.AsObject()
		if obj.Len() != len(keySet) {
			return nil, false
		}
		seen := make(map[string]struct{}, len(keySet))
		for _, f := range obj.Fields {
			if _, ok := keySet[f.Key]; !ok {
				return nil, false
			}
			if !f.Value.IsScalar() {
				return nil, false
			}
			seen[f.Key] = struct{}{}
		}
		if len(seen) != len(keySet) {
			return nil, false
		}
	}

	columns := make([]string, 0, len(keySet))
	for k := range keySet {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns, true
}

// SortedKeys returns an object's keys sorted lexicographically, the
// canonical order the encoder uses for field emission (§4.3). The scratch
// slice is allocated fresh per call and owned by the caller, matching the
// "scoped acquisition, released at the end of the object's emission
// scope" discipline from DESIGN NOTES §9.
func SortedKeys(obj value.Object) []string {
	keys := obj.Keys()
	sort.Strings(keys)
	return keys
}

// CellValue returns the value stored at column key within a tabular row
// object. §4.2 guarantees (via the classifier safety property) that every
// declared column is present and scalar for every row, so this is called
// only after List has reported TabularShape.
func CellValue(row value.Object, key string) value.Value {
	v, ok := row.Get(key)
	if !ok {
		return value.Null()
	}
	return v
}
