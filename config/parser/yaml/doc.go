// Package yaml provides a YAML codec for the config package.
//
// This package uses github.com/goccy/go-yaml. Decoded documents are
// normalized to the raw shapes the data package wraps: map[string]any,
// []any, int64, float64, string, bool and nil.
//
// Usage:
//
//	parser := yaml.NewParser()
//	raw, err := parser.Decode(src)
//	out, err := parser.Encode(raw)
package yaml
