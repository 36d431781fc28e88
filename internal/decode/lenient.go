// Lenient decoding (§4.5): the same grammar as the strict decoder, but
// instead of failing on the first violation, each recovery rule below
// patches the cursor and records a Diagnostic, guaranteeing the decoder
// always terminates and never returns an error to the caller.
package decode

import (
	"strconv"
	"strings"

	"github.com/datatoon/toon/internal/scalar"
	"github.com/datatoon/toon/internal/value"
)

// DecodeLenient parses data per §4.5, recovering from grammar violations
// instead of failing. It always returns a Value (Null for a wholly empty
// or unrecoverable document) plus the diagnostics collected along the way.
func DecodeLenient(data []byte, opts Options) (value.Value, []value.Diagnostic) {
	p := &lenientParser{cur: newCursor(data), opts: opts}
	if p.cur.remainderIsWhitespace() {
		p.diag(value.ErrEmptyInput, "document contains no value")
		return value.Null(), p.diags
	}
	p.cur.skipWS()
	v := p.parseValue()
	p.cur.skipWS()
	if !p.cur.eof() {
		p.diag(value.ErrUnexpectedTrailing, "discarding unexpected content after root value")
	}
	return v, p.diags
}

type lenientParser struct {
	cur   *cursor
	opts  Options
	diags []value.Diagnostic
}

func (p *lenientParser) diag(kind value.ErrorKind, format string, args ...any) {
	p.diags = append(p.diags, value.NewDiagnostic(kind, p.cur.line, p.cur.col, format, args...))
}

// skipToRecoveryPoint discards bytes until the next LF, CR, ',', '}', ']',
// or EOF — the recovery boundary for an unparseable element (§4.5's
// "unparseable element: skip to the next LF, comma, or closing
// delimiter").
func (p *lenientParser) skipToRecoveryPoint() {
	for !p.cur.eof() {
		switch p.cur.peek() {
		case '\n', '\r', ',', '}', ']':
			return
		}
		p.cur.advance()
	}
}

func (p *lenientParser) parseValue() value.Value {
	if p.cur.eof() {
		p.diag(value.ErrUnexpectedEnd, "expected a value, found end of input")
		return value.Null()
	}
	switch p.cur.peek() {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseList()
	case '"':
		s, ok := p.parseQuotedToken()
		if !ok {
			return value.Null()
		}
		return value.Str(s)
	default:
		return p.parseUnquotedScalarOrImplicitObject()
	}
}

// parseUnquotedScalarOrImplicitObject scans an unquoted token the same way
// the strict decoder does, but recognises the case where the token is
// actually an object key missing its leading '{' — detectable because a
// bare scalar Value is never followed by ':' in well-formed input, so a
// token immediately followed by ':' can only be a Field's Key (§4.5
// "missing {: synthesize the missing delimiter and continue").
func (p *lenientParser) parseUnquotedScalarOrImplicitObject() value.Value {
	start := p.cur.pos
	for !p.cur.eof() && !isScalarTerminator(p.cur.peek()) {
		p.cur.advance()
	}
	token := strings.TrimSpace(string(p.cur.data[start:p.cur.pos]))
	if !p.cur.eof() && p.cur.peek() == ':' {
		p.diag(value.ErrExpectedCharacter, "missing '{' at start of object, assuming one")
		return p.parseObjectBody(token, false)
	}
	return scalarToValue(scalar.ParseUnquoted(token))
}

// parseQuotedToken recovers from a missing closing quote by terminating
// the string at the next LF/CR or EOF (§4.5's "unterminated string:
// terminate the string at the line boundary instead of failing").
func (p *lenientParser) parseQuotedToken() (string, bool) {
	startLine, startCol := p.cur.line, p.cur.col
	var raw strings.Builder
	raw.WriteByte(p.cur.advance()) // opening quote
	escaped := false
	closed := false
	for !p.cur.eof() {
		b := p.cur.peek()
		if !escaped && (b == '\n' || b == '\r') {
			break
		}
		raw.WriteByte(p.cur.advance())
		if escaped {
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		if b == '"' {
			closed = true
			break
		}
	}
	if !closed {
		p.diags = append(p.diags, value.NewDiagnostic(value.ErrUnterminatedString, startLine, startCol, "unterminated quoted string, closing at end of line"))
		raw.WriteByte('"')
	}
	s, err := scalar.UnquoteString(raw.String())
	if err != nil {
		p.diag(value.ErrUnterminatedString, "%s", err)
		return "", false
	}
	return s, true
}

func (p *lenientParser) parseKey() string {
	if p.cur.eof() {
		p.diag(value.ErrUnexpectedEnd, "expected a key, found end of input")
		return ""
	}
	if p.cur.peek() == '"' {
		s, _ := p.parseQuotedToken()
		return s
	}
	start := p.cur.pos
	for !p.cur.eof() {
		b := p.cur.peek()
		if b == ':' || b == '[' || b == '\n' || b == '\r' {
			break
		}
		p.cur.advance()
	}
	return strings.TrimSpace(string(p.cur.data[start:p.cur.pos]))
}

// parseObject handles the well-formed '{'-initiated object: the cursor is
// at '{' on entry (parseValue only dispatches here after checking that).
func (p *lenientParser) parseObject() value.Value {
	p.cur.advance() // '{'
	p.cur.skipWS()
	return p.parseObjectBody("", true)
}

// parseObjectBody implements the shared field loop for both the
// well-formed '{'-initiated object and the missing-brace recovery path
// from parseUnquotedScalarOrImplicitObject, which has already consumed
// one key (firstKey) before discovering it belongs to an object.
func (p *lenientParser) parseObjectBody(firstKey string, hadBrace bool) value.Value {
	var fields []value.Field
	index := map[string]int{}

	consumeField := func(key string) {
		var fv value.Value
		if !p.cur.eof() && p.cur.peek() == '[' {
			// Merged "key[N]{cols}:" list-field form (§8 scenario 6).
			fv = p.parseList()
		} else {
			if p.cur.eof() || p.cur.peek() != ':' {
				p.diag(value.ErrExpectedCharacter, "missing ':' after key %q, assuming one", key)
			} else {
				p.cur.advance()
			}
			p.cur.skipWS()
			fv = p.parseValue()
		}
		if i, ok := index[key]; ok {
			fields[i].Value = fv
		} else {
			index[key] = len(fields)
			fields = append(fields, value.Field{Key: key, Value: fv})
		}
		p.cur.skipWS()
	}

	if firstKey != "" {
		consumeField(firstKey)
	}

	for {
		if p.cur.eof() {
			if hadBrace {
				p.diag(value.ErrUnexpectedEnd, "missing '}' to close object, closing at end of input")
			}
			break
		}
		if p.cur.peek() == '}' {
			p.cur.advance()
			break
		}
		consumeField(p.parseKey())
	}
	return value.Obj(fields...)
}

// parseHeader mirrors the strict decoder's parseHeader but recovers from a
// missing or unparseable length with "accept the actual element count"
// (applied by the caller, since the header alone does not know the actual
// count yet) and from a missing ']'/'}' by synthesizing it.
func (p *lenientParser) parseHeader() header {
	p.cur.advance() // '['
	digitsStart := p.cur.pos
	for !p.cur.eof() && isDigit(p.cur.peek()) {
		p.cur.advance()
	}
	digits := string(p.cur.data[digitsStart:p.cur.pos])
	declared := -1
	if digits == "" {
		p.diag(value.ErrInvalidArrayLength, "array header is missing its declared length, inferring from content")
	} else if n, err := strconv.Atoi(digits); err == nil {
		declared = n
	} else {
		p.diag(value.ErrInvalidArrayLength, "array length %q is not a valid integer, inferring from content", digits)
	}

	if !p.cur.eof() && p.cur.peek() == ']' {
		p.cur.advance()
	} else {
		p.diag(value.ErrExpectedCharacter, "missing ']' to close array header, assuming one")
	}
	p.cur.skipWS()

	h := header{length: declared, delimiter: p.opts.Delimiter}
	if !p.cur.eof() && p.cur.peek() == '{' {
		p.cur.advance()
		start := p.cur.pos
		for !p.cur.eof() && p.cur.peek() != '}' {
			if p.cur.peek() == '\n' || p.cur.peek() == '\r' {
				break
			}
			p.cur.advance()
		}
		segment := string(p.cur.data[start:p.cur.pos])
		if !p.cur.eof() && p.cur.peek() == '}' {
			p.cur.advance()
		} else {
			p.diag(value.ErrExpectedCharacter, "missing '}' to close tabular header, assuming one")
		}

		rawCols, err := scalar.SplitCells(segment, h.delimiter)
		if err != nil {
			p.diag(value.ErrInvalidArrayLength, "%s", err)
		}
		cols := make([]string, 0, len(rawCols))
		for _, tok := range rawCols {
			tok = strings.TrimSpace(tok)
			if strings.HasPrefix(tok, `"`) {
				if unq, err := scalar.UnquoteString(tok); err == nil {
					tok = unq
				}
			}
			cols = append(cols, tok)
		}
		h.columns = cols
		h.tabular = true
		p.cur.skipWS()
	}

	if !p.cur.eof() && p.cur.peek() == ':' {
		p.cur.advance()
	}
	p.cur.skipWS()
	return h
}

// parseList implements §4.4 production 4 with recovery: an array-length
// mismatch is accepted at the actual count rather than failing (§4.5).
func (p *lenientParser) parseList() value.Value {
	h := p.parseHeader()

	if h.tabular {
		var rows []value.Value
		for i := 0; h.length < 0 || i < h.length; i++ {
			if p.cur.eof() || p.atListEnd() {
				break
			}
			rows = append(rows, p.parseTabularRow(h.columns, h.delimiter))
			p.cur.skipWS()
		}
		if h.length >= 0 && len(rows) != h.length {
			p.diag(value.ErrLengthMismatch, "declared array length %d, found %d elements", h.length, len(rows))
		}
		return value.ListOf(rows)
	}

	var elems []value.Value
	for i := 0; h.length < 0 || i < h.length; i++ {
		if p.cur.eof() || p.atListEnd() {
			break
		}
		before := p.cur.pos
		elem := p.parseValue()
		if p.cur.pos == before {
			// Nothing was consumed (e.g. a stray ','): skip the element.
			p.diag(value.ErrExpectedCharacter, "unparseable list element, skipping")
			p.cur.advance()
			p.skipToRecoveryPoint()
			p.cur.skipWS()
			continue
		}
		elems = append(elems, elem)
		p.cur.skipWS()
	}
	if h.length >= 0 && len(elems) != h.length {
		p.diag(value.ErrLengthMismatch, "declared array length %d, found %d elements", h.length, len(elems))
	}
	return value.ListOf(elems)
}

// atListEnd is a heuristic used only in lenient mode, where a missing or
// untrustworthy length means the parser must decide for itself when a
// list's elements have run out: end of input, or a closing delimiter that
// belongs to an enclosing object/list, ends the list.
func (p *lenientParser) atListEnd() bool {
	if p.cur.eof() {
		return true
	}
	switch p.cur.peek() {
	case '}', ']':
		return true
	default:
		return false
	}
}

// parseTabularRow mirrors the strict decoder's row parser but fills
// missing cells with Null and discards extra cells instead of failing
// (§4.5's "row arity mismatch" rule).
func (p *lenientParser) parseTabularRow(columns []string, delimiter rune) value.Value {
	start := p.cur.pos
	inQuotes := false
	escaped := false
	for !p.cur.eof() {
		b := p.cur.peek()
		switch {
		case escaped:
			escaped = false
		case b == '\\' && inQuotes:
			escaped = true
		case b == '"':
			inQuotes = !inQuotes
		case !inQuotes && (b == '\n' || b == '\r'):
			goto rowDone
		}
		p.cur.advance()
	}
rowDone:
	line := string(p.cur.data[start:p.cur.pos])

	cells, err := scalar.SplitCells(line, delimiter)
	if err != nil {
		p.diag(value.ErrUnterminatedString, "%s", err)
		cells = strings.Split(line, string(delimiter))
	}
	if len(cells) != len(columns) {
		p.diag(value.ErrRowArityMismatch, "tabular row has %d cells, expected %d", len(cells), len(columns))
	}

	fields := make([]value.Field, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			fields[i] = value.Field{Key: col, Value: p.parseCell(cells[i])}
		} else {
			fields[i] = value.Field{Key: col, Value: value.Null()}
		}
	}
	return value.Obj(fields...)
}

func (p *lenientParser) parseCell(raw string) value.Value {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, `"`) {
		if s, err := scalar.UnquoteString(trimmed); err == nil {
			return value.Str(s)
		}
		return value.Str(strings.Trim(trimmed, `"`))
	}
	return scalarToValue(scalar.ParseUnquoted(trimmed))
}
