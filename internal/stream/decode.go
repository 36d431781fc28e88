package stream

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/datatoon/toon/internal/scalar"
	"github.com/datatoon/toon/internal/value"
)

// DecodeRows implements the §4.7 Streaming Decoder: it reads the header
// line from src to learn the shape and column schema, then yields one
// Value per subsequent line, holding only the current line and the column
// schema in memory (never the enclosing list).
//
// Grounded in the teacher's (toon-format-toon-go) line-oriented scanning
// style, generalized here from "split the whole document into lines up
// front" to "pull one line at a time from a bufio.Scanner" so the adapter
// never buffers the full text.
func DecodeRows(src io.Reader, delimiter rune) iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		scanner := bufio.NewScanner(src)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		if !scanner.Scan() {
			return
		}
		h, err := parseHeaderLine(strings.TrimRight(scanner.Text(), "\r"), delimiter)
		if err != nil {
			yield(value.Value{}, err)
			return
		}

		rowsEmitted := 0
		for {
			if h.length >= 0 && rowsEmitted >= h.length {
				return
			}
			if !scanner.Scan() {
				return
			}
			line := strings.TrimRight(scanner.Text(), "\r")
			if h.length < 0 && strings.TrimSpace(line) == "" {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			var row value.Value
			if h.tabular {
				row, err = parseTabularLine(line, h.columns, delimiter)
			} else {
				row, err = parseScalarLine(line)
			}
			if !yield(row, err) {
				return
			}
			if err != nil {
				return
			}
			rowsEmitted++
		}
	}
}

type streamHeader struct {
	length  int
	tabular bool
	columns []string
}

// parseHeaderLine parses "[N]{k1,k2,...}:"  / "[N]:" / "[-]{...}:" / "[-]:",
// the forms the streaming encoder emits (§4.6). "-" means unknown length.
func parseHeaderLine(line string, delimiter rune) (streamHeader, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") {
		return streamHeader{}, value.NewDecodeError(value.ErrExpectedCharacter, 1, 1, "streaming document must start with an array header")
	}
	closeIdx := strings.IndexByte(line, ']')
	if closeIdx < 0 {
		return streamHeader{}, value.NewDecodeError(value.ErrInvalidArrayLength, 1, 1, "array header is missing ']'")
	}
	lenTok := line[1:closeIdx]
	h := streamHeader{length: -1}
	if lenTok != "-" {
		n, err := strconv.Atoi(lenTok)
		if err != nil {
			return streamHeader{}, value.NewDecodeError(value.ErrInvalidArrayLength, 1, 1, "invalid array length %q", lenTok)
		}
		h.length = n
	}

	rest := line[closeIdx+1:]
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return streamHeader{}, value.NewDecodeError(value.ErrExpectedCharacter, 1, 1, "tabular header is missing '}'")
		}
		cols, err := scalar.SplitCells(rest[1:end], delimiter)
		if err != nil {
			return streamHeader{}, value.NewDecodeError(value.ErrInvalidArrayLength, 1, 1, "%s", err)
		}
		for i, c := range cols {
			cols[i] = strings.TrimSpace(c)
		}
		h.columns = cols
		h.tabular = true
	}
	return h, nil
}

func parseTabularLine(line string, columns []string, delimiter rune) (value.Value, error) {
	cells, err := scalar.SplitCells(line, delimiter)
	if err != nil {
		return value.Value{}, value.NewDecodeError(value.ErrUnterminatedString, 1, 1, "%s", err)
	}
	if len(cells) != len(columns) {
		return value.Value{}, value.NewDecodeError(value.ErrExpectedCharacter, 1, 1, "tabular row has %d cells, expected %d", len(cells), len(columns))
	}
	fields := make([]value.Field, len(columns))
	for i, col := range columns {
		fields[i] = value.Field{Key: col, Value: parseStreamCell(cells[i])}
	}
	return value.Obj(fields...), nil
}

func parseScalarLine(line string) (value.Value, error) {
	trimmed := strings.TrimSpace(line)
	return parseStreamCell(trimmed), nil
}

func parseStreamCell(raw string) value.Value {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, `"`) {
		if s, err := scalar.UnquoteString(trimmed); err == nil {
			return value.Str(s)
		}
	}
	parsed := scalar.ParseUnquoted(trimmed)
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
