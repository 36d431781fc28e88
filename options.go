package toon

import "fmt"

// defaultIndent and defaultDelimiter mirror the defaults from §3.
const (
	defaultIndent    = "  "
	defaultDelimiter = ','
)

// EncodeOptions controls encoder behaviour. The zero value is not valid;
// use DefaultEncodeOptions or the EncodeOption functions.
type EncodeOptions struct {
	Indent        string
	Delimiter     rune
	LengthMarker  bool
}

// DefaultEncodeOptions returns the §3 defaults: two-space indent, comma
// delimiter, length markers enabled.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:       defaultIndent,
		Delimiter:    defaultDelimiter,
		LengthMarker: true,
	}
}

// EncodeOption mutates an EncodeOptions value.
type EncodeOption func(*EncodeOptions)

// WithIndent overrides the per-level indentation string. Per §6.1 it must
// consist only of spaces and tabs; invalid values are ignored.
func WithIndent(indent string) EncodeOption {
	return func(o *EncodeOptions) {
		for _, r := range indent {
			if r != ' ' && r != '\t' {
				return
			}
		}
		o.Indent = indent
	}
}

// WithDelimiter overrides the field delimiter used in tabular rows and
// tabular headers. Per §6.1 it must not be one of the reserved characters.
func WithDelimiter(delim rune) EncodeOption {
	return func(o *EncodeOptions) {
		if isReservedDelimiter(delim) {
			return
		}
		o.Delimiter = delim
	}
}

// WithLengthMarker toggles the ':' that follows the [N] header of a
// non-tabular list ("[N]:" when enabled, "[N]" when disabled). The [N]
// itself is always written, and tabular headers always end in ':'.
func WithLengthMarker(enabled bool) EncodeOption {
	return func(o *EncodeOptions) {
		o.LengthMarker = enabled
	}
}

func isReservedDelimiter(r rune) bool {
	switch r {
	case ':', '"', '\\', '{', '}', '[', ']', '\n', '\r':
		return true
	default:
		return false
	}
}

func resolveEncodeOptions(opts []EncodeOption) EncodeOptions {
	cfg := DefaultEncodeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DecodeOptions controls decoder behaviour shared by the strict and
// lenient decoders.
type DecodeOptions struct {
	// Delimiter is the field delimiter used to split tabular rows and
	// tabular header column lists. Array headers carry no delimiter of
	// their own.
	Delimiter rune
}

// DefaultDecodeOptions returns the default decode configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Delimiter: defaultDelimiter}
}

// DecodeOption mutates a DecodeOptions value.
type DecodeOption func(*DecodeOptions)

// WithDecodeDelimiter overrides the default field delimiter used to split
// tabular rows and tabular header column lists.
func WithDecodeDelimiter(delim rune) DecodeOption {
	return func(o *DecodeOptions) {
		if isReservedDelimiter(delim) {
			return
		}
		o.Delimiter = delim
	}
}

func resolveDecodeOptions(opts []DecodeOption) DecodeOptions {
	cfg := DefaultDecodeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// UnsupportedValueError is returned by the encoder when a host-provided
// value does not map to any Value variant (§4.3, §7).
type UnsupportedValueError struct {
	Type string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("toon: unsupported value of type %s", e.Type)
}
