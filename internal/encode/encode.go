// Package encode implements the §4.3 Encoder: it walks a Value, driven by
// the classifier's shape decisions, and emits a TOON document with
// deterministic key order. Grounded in the teacher's (toon-format-toon-go)
// internal/codec/encoder.go line-accumulation style — a flat []string of
// already-indented lines joined with "\n" at the end — generalized from
// the teacher's dash-prefixed/inline-array grammar to this spec's simpler
// grammar: every list element occupies its own line(s), with no "- "
// marker, and composite values are told apart from scalars purely by
// their leading character (per the §4.4 Value production), which is what
// makes the decoder side symmetric.
package encode

import (
	"math"
	"strconv"
	"strings"

	"github.com/datatoon/toon/internal/classify"
	"github.com/datatoon/toon/internal/scalar"
	"github.com/datatoon/toon/internal/value"
)

// Options mirrors the root package's EncodeOptions without importing it
// (avoiding the cycle); the root package translates its public
// EncodeOptions into this struct before calling Encode.
type Options struct {
	Indent       string
	Delimiter    rune
	LengthMarker bool
}

// Encode renders v as a TOON document per §4.3. The returned string never
// ends in a trailing newline (root scalars emit a single bare token).
func Encode(v value.Value, opts Options) (string, error) {
	e := &encoder{opts: opts}
	lines, err := e.renderElement(v, 0)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

type encoder struct {
	opts Options
}

func (e *encoder) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(e.opts.Indent, depth)
}

// renderElement renders v with no preceding key, at the given depth —
// used for the document root and for elements of a regular (non-tabular)
// list.
func (e *encoder) renderElement(v value.Value, depth int) ([]string, error) {
	switch v.Kind() {
	case value.KindObject:
		obj := v.AsObject()
		if obj.IsEmpty() {
			return []string{e.indent(depth) + "{}"}, nil
		}
		return e.renderObjectBody(obj, depth)
	case value.KindList:
		return e.renderList("", v.AsList(), depth)
	default:
		tok, err := e.formatScalar(v)
		if err != nil {
			return nil, err
		}
		return []string{e.indent(depth) + tok}, nil
	}
}

// renderObjectBody renders a non-empty object's "{" / fields / "}" lines,
// with the braces at depth and the fields at depth+1 (§4.3 "Object").
func (e *encoder) renderObjectBody(obj value.Object, depth int) ([]string, error) {
	lines := make([]string, 0, obj.Len()+2)
	lines = append(lines, e.indent(depth)+"{")
	fieldLines, err := e.renderFields(obj, depth+1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, fieldLines...)
	lines = append(lines, e.indent(depth)+"}")
	return lines, nil
}

// renderFields renders every field of obj in lexicographic key order
// (§4.3's determinism requirement), at the given field depth.
func (e *encoder) renderFields(obj value.Object, fieldDepth int) ([]string, error) {
	keys := classify.SortedKeys(obj)
	var lines []string
	for _, key := range keys {
		fv, _ := obj.Get(key)
		flines, err := e.renderField(key, fv, fieldDepth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, flines...)
	}
	return lines, nil
}

// renderField renders one "<key>: <value>" field per §4.3's object rule,
// dispatching to the single-line or multi-line form depending on the
// field's value kind.
func (e *encoder) renderField(key string, v value.Value, fieldDepth int) ([]string, error) {
	keyLit := scalar.EncodeKey(key)
	prefix := e.indent(fieldDepth) + keyLit

	switch v.Kind() {
	case value.KindObject:
		obj := v.AsObject()
		if obj.IsEmpty() {
			return []string{prefix + ": {}"}, nil
		}
		lines := []string{prefix + ":"}
		body, err := e.renderObjectBody(obj, fieldDepth)
		if err != nil {
			return nil, err
		}
		return append(lines, body...), nil
	case value.KindList:
		elems := v.AsList()
		if len(elems) == 0 {
			return []string{prefix + ": [0]"}, nil
		}
		return e.renderList(keyLit, elems, fieldDepth)
	default:
		tok, err := e.formatScalar(v)
		if err != nil {
			return nil, err
		}
		return []string{prefix + ": " + tok}, nil
	}
}

// renderList renders a (possibly key-prefixed) list header followed by
// its rows, per §4.3's "Regular list" / "Tabular list" rules. keyLit is
// "" for unkeyed occurrences (document root, or elements of an enclosing
// regular list); otherwise it is prefixed directly onto the header, with
// no intervening space, per the merged "<key>[N]{...}:" form.
func (e *encoder) renderList(keyLit string, elems []value.Value, headerDepth int) ([]string, error) {
	if len(elems) == 0 {
		return []string{e.indent(headerDepth) + keyLit + "[0]"}, nil
	}

	shape, columns := classify.List(elems)
	rowDepth := headerDepth + 1

	var header strings.Builder
	header.WriteString(keyLit)
	header.WriteByte('[')
	header.WriteString(strconv.Itoa(len(elems)))
	header.WriteByte(']')
	if shape == classify.TabularShape {
		header.WriteByte('{')
		for i, col := range columns {
			if i > 0 {
				header.WriteRune(e.opts.Delimiter)
			}
			header.WriteString(scalar.EncodeKey(col))
		}
		header.WriteByte('}')
	}
	if e.opts.LengthMarker || shape == classify.TabularShape {
		header.WriteByte(':')
	}

	lines := make([]string, 0, len(elems)+1)
	lines = append(lines, e.indent(headerDepth)+header.String())

	if shape == classify.TabularShape {
		for _, elem := range elems {
			row := elem.AsObject()
			cells := make([]string, len(columns))
			for i, col := range columns {
				tok, err := e.formatScalar(classify.CellValue(row, col))
				if err != nil {
					return nil, err
				}
				cells[i] = tok
			}
			lines = append(lines, e.indent(rowDepth)+strings.Join(cells, string(e.opts.Delimiter)))
		}
		return lines, nil
	}

	for _, elem := range elems {
		elemLines, err := e.renderElement(elem, rowDepth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, elemLines...)
	}
	return lines, nil
}

// formatScalar renders v's scalar textual form. A string's quoting
// decision always runs against the active delimiter: the decoder's
// UnquotedScalar token is terminator-bounded at every value position, not
// only inside tabular rows (§4.4 production 2), so a root or object-field
// string must be quoted exactly as defensively as a tabular cell.
func (e *encoder) formatScalar(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return scalar.FormatNull(), nil
	case value.KindBool:
		return scalar.FormatBool(v.AsBool()), nil
	case value.KindInt:
		return scalar.FormatInt(v.AsInt()), nil
	case value.KindFloat:
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return scalar.FormatNull(), nil
		}
		if f == 0 {
			f = 0 // normalize negative zero to "0"
		}
		return scalar.FormatFloat(f), nil
	case value.KindStr:
		return scalar.FormatString(v.AsStr(), e.opts.Delimiter), nil
	default:
		return "", &unsupportedKindError{kind: v.Kind()}
	}
}

type unsupportedKindError struct {
	kind value.Kind
}

func (e *unsupportedKindError) Error() string {
	return "toon: unsupported scalar kind " + e.kind.String()
}
