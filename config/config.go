package config

import (
	"log/slog"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

// ErrNotIndexed is returned when a path is applied to a document that is not
// a mapping or a sequence.
var ErrNotIndexed = errors.New("document is not a mapping or a sequence")

// Codec converts between serialized documents and raw container values.
//
// Decode produces map[string]any, []any and scalars; see data.Normalize.
// Encode accepts the same shapes, typically a container snapshot.
// See config/parser/yaml for an implementation.
type Codec interface {
	Decode(src []byte) (any, error)
	Encode(v any) ([]byte, error)
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Opener reads a named document, such as a component member file.
type Opener func(name string) ([]byte, error)

// Validator checks loaded configuration data.
type Validator interface {
	Validate(d data.IndexedData) error
}

// Defaulter fills in missing configuration values.
type Defaulter interface {
	SetDefaults(d data.IndexedData) (changed bool, err error)
}

// ProviderOption configures Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	defaulters []Defaulter
	validators []Validator
	readOnly   bool
}

// WithDefaulter adds a Defaulter run after the document is loaded.
func WithDefaulter(d Defaulter) ProviderOption {
	return func(o *providerOptions) { o.defaulters = append(o.defaulters, d) }
}

// WithValidator adds a Validator run after the defaults are applied.
func WithValidator(v Validator) ProviderOption {
	return func(o *providerOptions) { o.validators = append(o.validators, v) }
}

// WithReadOnly freezes the result.
func WithReadOnly() ProviderOption {
	return func(o *providerOptions) { o.readOnly = true }
}

// Provider returns a function that reads, decodes, narrows to path, sets
// defaults and validates configuration data. path uses the keypath syntax;
// an empty path keeps the whole document.
func Provider(path string, opts ...ProviderOption) func(Codec, DataFetcher) (data.ConfigData, error) {
	var o providerOptions

	for _, apply := range opts {
		apply(&o)
	}

	return func(codec Codec, fetcher DataFetcher) (data.ConfigData, error) {
		src, err := fetcher.Fetch()
		if err != nil {
			return nil, errors.Wrap(err, "reading data error")
		}

		raw, err := codec.Decode(src)
		if err != nil {
			return nil, errors.Wrap(err, "parsing error")
		}

		d, err := narrow(data.New(raw), path)
		if err != nil {
			return nil, err
		}

		indexed, isIndexed := d.(data.IndexedData)

		for _, defaulter := range o.defaulters {
			if !isIndexed {
				break
			}

			changed, err := defaulter.SetDefaults(indexed)
			if err != nil {
				return nil, errors.Wrap(err, "defaults error")
			}

			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		for _, validator := range o.validators {
			if !isIndexed {
				return nil, errors.Wrapf(ErrNotIndexed, "validating %q", path)
			}

			if err := validator.Validate(indexed); err != nil {
				return nil, errors.Wrap(err, "validating error")
			}
		}

		if o.readOnly {
			if err := d.SetReadOnly(true); err != nil {
				return nil, errors.Wrap(err, "freezing data")
			}
		}

		return d, nil
	}
}

func narrow(d data.ConfigData, path string) (data.ConfigData, error) {
	if path == "" {
		return d, nil
	}

	p, err := keypath.Parse(path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid path")
	}

	indexed, ok := d.(data.IndexedData)
	if !ok {
		return nil, errors.Wrapf(ErrNotIndexed, "path %q", path)
	}

	v, err := indexed.Retrieve(p)
	if err != nil {
		return nil, errors.Wrapf(err, "path %q", path)
	}

	return data.New(v), nil
}

// Encode serializes a snapshot of d with codec.
func Encode(codec Codec, d data.ConfigData) ([]byte, error) {
	out, err := codec.Encode(d.Data())
	if err != nil {
		return nil, errors.Wrap(err, "encoding error")
	}

	return out, nil
}
