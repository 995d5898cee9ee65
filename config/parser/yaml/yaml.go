package yaml

import (
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// Parser implements config.Codec for YAML documents.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Decode parses a YAML document into raw container values.
func (p *Parser) Decode(src []byte) (any, error) {
	if len(src) == 0 {
		return nil, ErrEmptyData
	}

	var out any

	err := yaml.Unmarshal(src, &out)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal error")
	}

	return data.Normalize(out), nil
}

// Encode renders v as a YAML document. Mapping keys are sorted.
func (p *Parser) Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, errors.Wrap(err, "marshal error")
	}

	return out, nil
}
