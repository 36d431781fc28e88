package decode

import (
	"strconv"
	"strings"

	"github.com/datatoon/toon/internal/scalar"
	"github.com/datatoon/toon/internal/value"
)

// Options mirrors the root package's DecodeOptions, kept separate to
// avoid an import cycle.
type Options struct {
	Delimiter rune
}

// Decode parses data as a single TOON document per §4.4, failing fast on
// the first grammar violation with a positioned *value.DecodeError.
func Decode(data []byte, opts Options) (value.Value, error) {
	p := &parser{cur: newCursor(data), opts: opts}
	return p.parseDocument()
}

type parser struct {
	cur  *cursor
	opts Options
}

func (p *parser) errf(kind value.ErrorKind, format string, args ...any) error {
	return value.NewDecodeError(kind, p.cur.line, p.cur.col, format, args...)
}

func (p *parser) parseDocument() (value.Value, error) {
	if p.cur.remainderIsWhitespace() {
		return value.Value{}, p.errf(value.ErrEmptyInput, "document contains no value")
	}
	p.cur.skipWS()
	v, err := p.parseValue()
	if err != nil {
		return value.Value{}, err
	}
	p.cur.skipWS()
	if !p.cur.eof() {
		return value.Value{}, p.errf(value.ErrUnexpectedTrailing, "unexpected content after root value")
	}
	return v, nil
}

// parseValue implements §4.4 production 2: dispatch on the current byte.
func (p *parser) parseValue() (value.Value, error) {
	if p.cur.eof() {
		return value.Value{}, p.errf(value.ErrUnexpectedEnd, "expected a value")
	}
	switch p.cur.peek() {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseList()
	case '"':
		s, err := p.parseQuotedToken()
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(s), nil
	default:
		return p.parseUnquotedScalar()
	}
}

// parseUnquotedScalar scans up to the first of LF, CR, ',', ':', '}', ']',
// or EOF and classifies the token per the §4.1 precedence.
func (p *parser) parseUnquotedScalar() (value.Value, error) {
	start := p.cur.pos
	for !p.cur.eof() && !isScalarTerminator(p.cur.peek()) {
		p.cur.advance()
	}
	token := strings.TrimSpace(string(p.cur.data[start:p.cur.pos]))
	return scalarToValue(scalar.ParseUnquoted(token)), nil
}

func scalarToValue(parsed scalar.Parsed) value.Value {
	switch parsed.Kind {
	case scalar.KindNull:
		return value.Null()
	case scalar.KindBool:
		return value.Bool(parsed.Bool)
	case scalar.KindInt:
		return value.Int(parsed.Int)
	case scalar.KindFloat:
		return value.Float(parsed.Flt)
	default:
		return value.Str(parsed.Str)
	}
}

// parseQuotedToken consumes a quoted string starting at the current '"'
// and returns its unescaped content. A literal (unescaped) LF/CR or EOF
// before the closing quote is UnterminatedString.
func (p *parser) parseQuotedToken() (string, error) {
	startLine, startCol := p.cur.line, p.cur.col
	var raw strings.Builder
	raw.WriteByte(p.cur.advance()) // opening quote
	escaped := false
	for {
		if p.cur.eof() {
			return "", value.NewDecodeError(value.ErrUnterminatedString, startLine, startCol, "unterminated quoted string")
		}
		b := p.cur.peek()
		if !escaped && (b == '\n' || b == '\r') {
			return "", value.NewDecodeError(value.ErrUnterminatedString, startLine, startCol, "unterminated quoted string")
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
			break
		}
	}
	s, err := scalar.UnquoteString(raw.String())
	if err != nil {
		return "", value.NewDecodeError(value.ErrUnterminatedString, startLine, startCol, "%s", err)
	}
	return s, nil
}

// parseKey implements the Key production: read up to the next ':', '[', or
// LF/CR outside quotes, then trim; or, when quoted, consume a full quoted
// token and unescape it. Stopping at '[' lets the caller recognise the
// merged "key[N]{cols}:" list-field form from §8 scenario 6, where the
// list header is written directly onto the key with no separating ':'.
func (p *parser) parseKey() (string, error) {
	if p.cur.eof() {
		return "", p.errf(value.ErrUnexpectedEnd, "expected a key")
	}
	if p.cur.peek() == '"' {
		return p.parseQuotedToken()
	}
	start := p.cur.pos
	for !p.cur.eof() {
		b := p.cur.peek()
		if b == ':' || b == '[' || b == '\n' || b == '\r' {
			break
		}
		p.cur.advance()
	}
	return strings.TrimSpace(string(p.cur.data[start:p.cur.pos])), nil
}

// parseObject implements §4.4 production 3: '{' (ws) (Field (ws))* '}'.
func (p *parser) parseObject() (value.Value, error) {
	p.cur.advance() // '{'
	p.cur.skipWS()

	var fields []value.Field
	index := map[string]int{}

	for {
		if p.cur.eof() {
			return value.Value{}, p.errf(value.ErrUnexpectedEnd, "unterminated object, expected '}'")
		}
		if p.cur.peek() == '}' {
			p.cur.advance()
			break
		}
		key, err := p.parseKey()
		if err != nil {
			return value.Value{}, err
		}

		var fv value.Value
		if !p.cur.eof() && p.cur.peek() == '[' {
			// Merged "key[N]{cols}:" list-field form (§8 scenario 6): the
			// list header follows the key directly, with no ':' between.
			fv, err = p.parseList()
		} else {
			if p.cur.eof() || p.cur.peek() != ':' {
				return value.Value{}, p.errf(value.ErrExpectedCharacter, "expected ':' after key %q", key)
			}
			p.cur.advance() // ':'
			p.cur.skipWS()
			fv, err = p.parseValue()
		}
		if err != nil {
			return value.Value{}, err
		}
		if i, ok := index[key]; ok {
			fields[i].Value = fv
		} else {
			index[key] = len(fields)
			fields = append(fields, value.Field{Key: key, Value: fv})
		}
		p.cur.skipWS()
	}
	return value.Obj(fields...), nil
}

// header captures a parsed array header: "[" Integer "]" ("{" fields "}")? (":")?
type header struct {
	length    int
	delimiter rune
	columns   []string
	tabular   bool
}

// parseHeader implements the "[" Integer "]" ("{" TabularHeader "}")? (":")?
// portion of production 4, without consuming elements.
func (p *parser) parseHeader() (header, error) {
	p.cur.advance() // '['
	digitsStart := p.cur.pos
	for !p.cur.eof() && isDigit(p.cur.peek()) {
		p.cur.advance()
	}
	digits := string(p.cur.data[digitsStart:p.cur.pos])
	if digits == "" {
		return header{}, p.errf(value.ErrInvalidArrayLength, "array header is missing its declared length")
	}
	length, err := strconv.Atoi(digits)
	if err != nil {
		return header{}, p.errf(value.ErrInvalidArrayLength, "array length %q is not a valid integer", digits)
	}
	if p.cur.eof() || p.cur.peek() != ']' {
		return header{}, p.errf(value.ErrExpectedCharacter, "expected ']' to close array header")
	}
	p.cur.advance() // ']'
	p.cur.skipWS()

	h := header{length: length, delimiter: p.opts.Delimiter}
	if !p.cur.eof() && p.cur.peek() == '{' {
		p.cur.advance()
		start := p.cur.pos
		for !p.cur.eof() && p.cur.peek() != '}' {
			p.cur.advance()
		}
		if p.cur.eof() {
			return header{}, p.errf(value.ErrExpectedCharacter, "expected '}' to close tabular header")
		}
		segment := string(p.cur.data[start:p.cur.pos])
		p.cur.advance() // '}'

		rawCols, err := scalar.SplitCells(segment, h.delimiter)
		if err != nil {
			return header{}, p.errf(value.ErrInvalidArrayLength, "%s", err)
		}
		cols := make([]string, 0, len(rawCols))
		for _, tok := range rawCols {
			tok = strings.TrimSpace(tok)
			if strings.HasPrefix(tok, `"`) {
				unq, err := scalar.UnquoteString(tok)
				if err != nil {
					return header{}, p.errf(value.ErrInvalidArrayLength, "%s", err)
				}
				tok = unq
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
	return h, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseList implements §4.4 production 4.
func (p *parser) parseList() (value.Value, error) {
	h, err := p.parseHeader()
	if err != nil {
		return value.Value{}, err
	}

	if h.tabular {
		rows := make([]value.Value, 0, h.length)
		for i := 0; i < h.length; i++ {
			row, err := p.parseTabularRow(h.columns, h.delimiter)
			if err != nil {
				return value.Value{}, err
			}
			rows = append(rows, row)
			p.cur.skipWS()
		}
		return value.ListOf(rows), nil
	}

	elems := make([]value.Value, 0, h.length)
	for i := 0; i < h.length; i++ {
		if p.cur.eof() {
			return value.Value{}, p.errf(value.ErrUnexpectedEnd, "expected %d list elements, found %d", h.length, i)
		}
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, v)
		p.cur.skipWS()
	}
	return value.ListOf(elems), nil
}

// parseTabularRow implements §4.4 production 5: a line-bounded cell list.
func (p *parser) parseTabularRow(columns []string, delimiter rune) (value.Value, error) {
	if p.cur.eof() {
		return value.Value{}, p.errf(value.ErrUnexpectedEnd, "expected a tabular row")
	}
	startLine := p.cur.line
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
	if inQuotes {
		return value.Value{}, value.NewDecodeError(value.ErrUnterminatedString, startLine, 1, "unterminated quoted cell in tabular row")
	}
	line := string(p.cur.data[start:p.cur.pos])

	cells, err := scalar.SplitCells(line, delimiter)
	if err != nil {
		return value.Value{}, p.errf(value.ErrUnterminatedString, "%s", err)
	}
	if len(cells) != len(columns) {
		return value.Value{}, p.errf(value.ErrExpectedCharacter, "tabular row has %d cells, expected %d", len(cells), len(columns))
	}

	fields := make([]value.Field, len(columns))
	for i, col := range columns {
		cellVal, err := p.parseCell(cells[i])
		if err != nil {
			return value.Value{}, err
		}
		fields[i] = value.Field{Key: col, Value: cellVal}
	}
	return value.Obj(fields...), nil
}

// parseCell classifies a single already-split tabular cell, which may be a
// quoted string, an unquoted string, or any scalar literal (§4.4
// production 5).
func (p *parser) parseCell(raw string) (value.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, `"`) {
		s, err := scalar.UnquoteString(trimmed)
		if err != nil {
			return value.Value{}, p.errf(value.ErrUnterminatedString, "%s", err)
		}
		return value.Str(s), nil
	}
	return scalarToValue(scalar.ParseUnquoted(trimmed)), nil
}
