package json

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrTrailingData is returned when a document is followed by more data.
var ErrTrailingData = errors.New("trailing data after document")

// Parser implements config.Codec for JSON documents.
type Parser struct {
	indent string
}

// NewParser creates a new JSON parser instance that indents its output with
// two spaces.
func NewParser() *Parser {
	return &Parser{indent: "  "}
}

// Decode parses a JSON document into raw container values. Integral numbers
// decode to int64, others to float64.
func (p *Parser) Decode(src []byte) (any, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, ErrEmptyData
	}

	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()

	var out any

	if err := dec.Decode(&out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, errors.Wrapf(err, "syntax error at offset %d", syntaxErr.Offset)
		}

		return nil, errors.Wrap(err, "unmarshal error")
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return numbers(out), nil
}

// Encode renders v as an indented JSON document.
func (p *Parser) Encode(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", p.indent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal error")
	}

	return append(out, '\n'), nil
}

// numbers replaces json.Number values before normalizing.
func numbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}

		f, _ := x.Float64()

		return f
	case map[string]any:
		for k, e := range x {
			x[k] = numbers(e)
		}

		return x
	case []any:
		for i, e := range x {
			x[i] = numbers(e)
		}

		return x
	default:
		return data.Normalize(v)
	}
}
