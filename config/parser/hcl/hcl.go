package hcl

import (
	"math/big"
	"slices"

	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrNotBody is returned when Encode is given something other than a
// mapping; an HCL file is always a body.
var ErrNotBody = errors.New("hcl document must be a mapping")

// ErrUnsupportedValue is returned for values HCL cannot represent.
var ErrUnsupportedValue = errors.New("unsupported value")

// Parser implements config.Codec for native HCL syntax.
//
// Attributes map to keys. A block maps to a nested mapping under its type,
// one more level per label. Unlabelled blocks of a type that occurs more
// than once become a list of mappings. Expressions are evaluated without
// variables or functions.
type Parser struct {
	filename string
}

// NewParser creates a new HCL parser instance.
func NewParser() *Parser {
	return &Parser{filename: "config.hcl"}
}

// Decode parses an HCL document into raw container values.
func (p *Parser) Decode(src []byte) (any, error) {
	if len(src) == 0 {
		return nil, ErrEmptyData
	}

	file, diags := hclparse.NewParser().ParseHCL(src, p.filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "parse error")
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Newf("unexpected body type %T", file.Body)
	}

	return decodeBody(body)
}

func decodeBody(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "attribute %s", name)
		}

		v, err := fromCty(val)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", name)
		}

		out[name] = v
	}

	for _, block := range body.Blocks {
		inner, err := decodeBody(block.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "block %s", block.Type)
		}

		if err := placeBlock(out, block.Type, block.Labels, inner); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func placeBlock(out map[string]any, typ string, labels []string, inner map[string]any) error {
	if len(labels) == 0 {
		switch existing := out[typ].(type) {
		case nil:
			out[typ] = inner
		case map[string]any:
			out[typ] = []any{existing, inner}
		case []any:
			out[typ] = append(existing, inner)
		default:
			return errors.Newf("block %s conflicts with an attribute", typ)
		}

		return nil
	}

	next, exists := out[typ]
	if !exists {
		next = map[string]any{}
		out[typ] = next
	}

	nested, ok := next.(map[string]any)
	if !ok {
		return errors.Newf("labelled block %s conflicts with %T", typ, next)
	}

	return placeBlock(nested, labels[0], labels[1:], inner)
}

func fromCty(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()

	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}

		f, _ := bf.Float64()

		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)

		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()

			converted, err := fromCty(v)
			if err != nil {
				return nil, err
			}

			out[k.AsString()] = converted
		}

		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0)

		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()

			converted, err := fromCty(v)
			if err != nil {
				return nil, err
			}

			out = append(out, converted)
		}

		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedValue, "cty type %s", ty.FriendlyName())
	}
}

// Encode renders a mapping as an HCL document. Nested mappings become
// blocks; everything else becomes an attribute.
func (p *Parser) Encode(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrNotBody, "got %T", v)
	}

	file := hclwrite.NewEmptyFile()
	if err := encodeBody(file.Body(), m); err != nil {
		return nil, err
	}

	return file.Bytes(), nil
}

func encodeBody(body *hclwrite.Body, m map[string]any) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if nested, ok := m[name].(map[string]any); ok && hclsyntax.ValidIdentifier(name) {
			if err := encodeBody(body.AppendNewBlock(name, nil).Body(), nested); err != nil {
				return err
			}

			continue
		}

		val, err := toCty(m[name])
		if err != nil {
			return errors.Wrapf(err, "attribute %s", name)
		}

		body.SetAttributeValue(name, val)
	}

	return nil
}

func toCty(v any) (cty.Value, error) {
	switch x := data.Normalize(v).(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(x))

		for k, e := range x {
			val, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			attrs[k] = val
		}

		return cty.ObjectVal(attrs), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}

		items := make([]cty.Value, len(x))

		for i, e := range x {
			val, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			items[i] = val
		}

		return cty.TupleVal(items), nil
	default:
		return cty.NilVal, errors.Wrapf(ErrUnsupportedValue, "%T", v)
	}
}
