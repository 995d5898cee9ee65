package source

import (
	"context"
	"log/slog"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/fetcher/file"
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
)

// Source manages a configuration document loaded from a file.
type Source struct {
	name   string
	config Config
	codec  config.Codec
	data   data.ConfigData
}

// NewSource creates a Source with the given name and config and loads the
// document. It sets config defaults and validates the config first.
func NewSource(name string, cfg Config, codecs *config.Codecs) (*Source, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if codecs == nil {
		codecs = config.DefaultCodecs()
	}

	cfg.SetDefaults()

	err := cfg.Validate(codecs)
	if err != nil {
		return nil, err
	}

	codec, err := codecs.Resolve(cfg.Format, cfg.File)
	if err != nil {
		return nil, err
	}

	s := &Source{
		name:   name,
		config: cfg,
		codec:  codec,
		data:   nil,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Source) load() error {
	fetcher, err := file.NewFetcher(s.config.File)()
	if err != nil {
		return err
	}

	var opts []config.ProviderOption
	if s.config.ReadOnly {
		opts = append(opts, config.WithReadOnly())
	}

	d, err := config.Provider(s.config.Path, opts...)(s.codec, fetcher)
	if err != nil {
		return errors.Wrapf(err, "source %q", s.name)
	}

	s.data = d

	slog.Info("configuration loaded", "name", s.name, "file", s.config.File, "path", s.config.Path)

	return nil
}

// Name returns the source name.
func (s *Source) Name() string { return s.name }

// Data returns the loaded document.
//
//nolint:ireturn // the container type depends on the document
func (s *Source) Data() data.ConfigData { return s.data }

// Save writes the document back to its file through the source codec.
func (s *Source) Save(_ context.Context) error {
	if s.config.Path != "" {
		return errors.Wrapf(ErrWriteBackPath, "source %q", s.name)
	}

	out, err := config.Encode(s.codec, s.data)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "source %q", s.name), ErrSaveFailed)
	}

	if err := file.Write(s.config.File, out); err != nil {
		slog.Error("save failed", "name", s.name, "file", s.config.File, "error", err)

		return errors.Mark(errors.Wrapf(err, "source %q", s.name), ErrSaveFailed)
	}

	slog.Info("configuration saved", "name", s.name, "file", s.config.File)

	return nil
}

// Stop saves the document when write-back is enabled.
func (s *Source) Stop(ctx context.Context) error {
	if !s.config.WriteBack {
		return nil
	}

	return s.Save(ctx)
}
