// Package stream implements the §4.6 Streaming Encoder and §4.7 Streaming
// Decoder: chunk-at-a-time adapters over iter.Seq that never materialise a
// whole document. Grounded in the teacher's (toon-format-toon-go)
// internal/codec/encoder.go line-emission helpers (reused here a line at a
// time instead of accumulated into one slice) and in the classifier's
// two-item peek, generalized from batch peeking of the whole slice to
// peeking only as many elements as the shape decision needs.
package stream

import (
	"iter"
	"math"
	"strings"

	"github.com/datatoon/toon/internal/classify"
	"github.com/datatoon/toon/internal/encode"
	"github.com/datatoon/toon/internal/scalar"
	"github.com/datatoon/toon/internal/value"
)

// Options mirrors encode.Options; streaming has no LengthMarker, since the
// header of a non-empty stream always carries the unknown-length token "-"
// (§4.6) and an empty stream is written as "[0]:".
type Options struct {
	Indent    string
	Delimiter rune
}

// Encode renders items as a sequence of text chunks (one per emitted
// line, each ending in "\n"), peeking at most two items to decide between
// tabular and regular-list shape before emitting the header.
func Encode(items iter.Seq[value.Value], opts Options) iter.Seq[string] {
	return func(yield func(string) bool) {
		next, stop := iter.Pull(items)
		defer stop()

		first, ok := next()
		if !ok {
			yield("[0]:\n")
			return
		}
		second, hasSecond := next()

		peeked := []value.Value{first}
		if hasSecond {
			peeked = append(peeked, second)
		}
		shape, columns := classify.List(peeked)

		e := rowEncoder{opts: opts}
		if shape == classify.TabularShape {
			if !yield(e.tabularHeader(columns)) {
				return
			}
			for _, v := range peeked {
				if !yield(e.tabularRow(v, columns) + "\n") {
					return
				}
			}
			for {
				v, ok := next()
				if !ok {
					return
				}
				if !yield(e.tabularRow(v, columns) + "\n") {
					return
				}
			}
		}

		if !yield("[-]:\n") {
			return
		}
		for _, v := range peeked {
			if !emitElement(yield, e, v) {
				return
			}
		}
		for {
			v, ok := next()
			if !ok {
				return
			}
			if !emitElement(yield, e, v) {
				return
			}
		}
	}
}

func emitElement(yield func(string) bool, e rowEncoder, v value.Value) bool {
	lines, err := encode.Encode(v, encode.Options{Indent: e.opts.Indent, Delimiter: e.opts.Delimiter, LengthMarker: true})
	if err != nil {
		return true
	}
	for _, ln := range strings.Split(lines, "\n") {
		if !yield(e.opts.Indent + ln + "\n") {
			return false
		}
	}
	return true
}

type rowEncoder struct {
	opts Options
}

func (e rowEncoder) tabularHeader(columns []string) string {
	var b strings.Builder
	b.WriteString("[-]{")
	for i, col := range columns {
		if i > 0 {
			b.WriteRune(e.opts.Delimiter)
		}
		b.WriteString(scalar.EncodeKey(col))
	}
	b.WriteString("}:\n")
	return b.String()
}

func (e rowEncoder) tabularRow(v value.Value, columns []string) string {
	obj := v.AsObject()
	cells := make([]string, len(columns))
	for i, col := range columns {
		cellVal := classify.CellValue(obj, col)
		cells[i] = formatScalarCell(cellVal, e.opts.Delimiter)
	}
	return e.opts.Indent + strings.Join(cells, string(e.opts.Delimiter))
}

func formatScalarCell(v value.Value, delimiter rune) string {
	switch v.Kind() {
	case value.KindNull:
		return scalar.FormatNull()
	case value.KindBool:
		return scalar.FormatBool(v.AsBool())
	case value.KindInt:
		return scalar.FormatInt(v.AsInt())
	case value.KindFloat:
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return scalar.FormatNull()
		}
		return scalar.FormatFloat(f)
	case value.KindStr:
		return scalar.FormatString(v.AsStr(), delimiter)
	default:
		return scalar.FormatNull()
	}
}
