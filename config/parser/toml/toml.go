package toml

import (
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrNotTable is returned when Encode is given something other than a
// mapping; a TOML document is always a table.
var ErrNotTable = errors.New("toml document must be a table")

// Parser implements config.Codec for TOML documents.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Decode parses a TOML document into raw container values. Dates and times
// are kept as the go-toml types.
func (p *Parser) Decode(src []byte) (any, error) {
	if len(src) == 0 {
		return nil, ErrEmptyData
	}

	var out map[string]any

	err := toml.Unmarshal(src, &out)
	if err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()

			return nil, errors.Wrapf(err, "syntax error at line %d, column %d", row, col)
		}

		return nil, errors.Wrap(err, "unmarshal error")
	}

	return data.Normalize(out), nil
}

// Encode renders a mapping as a TOML document.
func (p *Parser) Encode(v any) ([]byte, error) {
	if _, ok := v.(map[string]any); !ok {
		return nil, errors.Wrapf(ErrNotTable, "got %T", v)
	}

	out, err := toml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal error")
	}

	return out, nil
}
