package toon

import "github.com/datatoon/toon/internal/value"

// ErrorKind classifies a decode failure or lenient diagnostic per the §7
// taxonomy.
type ErrorKind = value.ErrorKind

const (
	ErrEmptyInput         = value.ErrEmptyInput
	ErrUnexpectedEnd      = value.ErrUnexpectedEnd
	ErrExpectedCharacter  = value.ErrExpectedCharacter
	ErrUnterminatedString = value.ErrUnterminatedString
	ErrInvalidArrayLength = value.ErrInvalidArrayLength
	ErrUnexpectedTrailing = value.ErrUnexpectedTrailing
	ErrLengthMismatch     = value.ErrLengthMismatch
	ErrRowArityMismatch   = value.ErrRowArityMismatch
	ErrUnsupportedValue   = value.ErrUnsupportedValue
)

// DecodeError is the strict decoder's single fatal error: one message plus
// a 1-based line/column position (§7).
type DecodeError = value.DecodeError

// Diagnostic is one entry in the lenient decoder's accumulated diagnostic
// list (§4.5, §7).
type Diagnostic = value.Diagnostic
