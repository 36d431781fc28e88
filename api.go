// Package toon implements the Token-Oriented Object Notation (TOON) codec:
// a compact, indentation-sensitive, human-readable serialization format
// targeting LLM workflows where predictable structure and low token counts
// matter. The package exposes a small public surface — Encode/Decode plus
// streaming and reflective convenience wrappers — while keeping the
// grammar, classifier, and scalar rules inside internal packages.
package toon

import (
	"errors"
	"io"
	"iter"
	"reflect"

	"github.com/datatoon/toon/internal/convert"
	"github.com/datatoon/toon/internal/decode"
	"github.com/datatoon/toon/internal/encode"
	"github.com/datatoon/toon/internal/stream"
	"github.com/datatoon/toon/internal/value"
)

// Encode renders v as a TOON document. The returned string never ends in a
// trailing newline.
func Encode(v Value, opts ...EncodeOption) (string, error) {
	cfg := resolveEncodeOptions(opts)
	return encode.Encode(v, encode.Options{
		Indent:       cfg.Indent,
		Delimiter:    cfg.Delimiter,
		LengthMarker: cfg.LengthMarker,
	})
}

// Decode parses data with the strict decoder (§4.4), returning the first
// grammar violation as a *DecodeError.
func Decode(data []byte, opts ...DecodeOption) (Value, error) {
	cfg := resolveDecodeOptions(opts)
	return decode.Decode(data, decode.Options{Delimiter: cfg.Delimiter})
}

// DecodeString parses s with the strict decoder.
func DecodeString(s string, opts ...DecodeOption) (Value, error) {
	return Decode([]byte(s), opts...)
}

// DecodeLenient parses data with the error-recovering decoder (§4.5),
// returning a best-effort Value plus the diagnostics collected along the
// way. It never returns an error.
func DecodeLenient(data []byte, opts ...DecodeOption) (Value, []Diagnostic) {
	cfg := resolveDecodeOptions(opts)
	return decode.DecodeLenient(data, decode.Options{Delimiter: cfg.Delimiter})
}

// DecodeLenientString parses s with the lenient decoder.
func DecodeLenientString(s string, opts ...DecodeOption) (Value, []Diagnostic) {
	return DecodeLenient([]byte(s), opts...)
}

// StreamEncode renders items as a sequence of text chunks without
// buffering the whole sequence (§4.6). Each yielded chunk ends in "\n".
func StreamEncode(items iter.Seq[Value], opts ...EncodeOption) iter.Seq[string] {
	cfg := resolveEncodeOptions(opts)
	return stream.Encode(items, stream.Options{Indent: cfg.Indent, Delimiter: cfg.Delimiter})
}

// StreamDecodeRows reads a tabular or regular-list document from src one
// line at a time, yielding one Value per row without materialising the
// enclosing list (§4.7).
func StreamDecodeRows(src io.Reader, opts ...DecodeOption) iter.Seq2[Value, error] {
	cfg := resolveDecodeOptions(opts)
	return stream.DecodeRows(src, cfg.Delimiter)
}

// Marshal projects v onto the Value model via reflection (struct fields
// use `toon` tags for naming and omitempty, mirroring encoding/json) and
// renders it as a TOON document.
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	s, err := MarshalString(v, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any, opts ...EncodeOption) (string, error) {
	projected, err := convert.FromAny(v, convert.DefaultTimeFormatter)
	if err != nil {
		var ute *convert.UnsupportedTypeError
		if errors.As(err, &ute) {
			return "", &UnsupportedValueError{Type: ute.Type}
		}
		return "", err
	}
	return Encode(projected, opts...)
}

// Unmarshal decodes the TOON document in data into v, which must be a
// non-nil pointer. Struct fields use `toon` struct tags for naming and
// omitempty semantics, mirroring Marshal.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	if v == nil {
		return errors.New("toon: Unmarshal nil target")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("toon: Unmarshal target must be a non-nil pointer")
	}
	decoded, err := Decode(data, opts...)
	if err != nil {
		return err
	}
	return convert.Assign(rv.Elem(), decoded)
}

// UnmarshalString decodes the TOON document in s into v.
func UnmarshalString(s string, v any, opts ...DecodeOption) error {
	return Unmarshal([]byte(s), v, opts...)
}

// ToAny converts a decoded Value into the plain Go shape
// (nil/bool/int64/float64/string/[]any/map[string]any) encoding/json
// expects, for interop with the standard library.
func ToAny(v Value) any { return convert.ToAny(v) }

// FromAny projects an arbitrary Go value onto the Value model using the
// same reflection rules as Marshal, without also rendering it to text.
func FromAny(v any) (Value, error) {
	projected, err := convert.FromAny(v, convert.DefaultTimeFormatter)
	if err != nil {
		var ute *convert.UnsupportedTypeError
		if errors.As(err, &ute) {
			return Value{}, &UnsupportedValueError{Type: ute.Type}
		}
		return Value{}, err
	}
	return projected, nil
}
