package config

import (
	"log/slog"

	"github.com/0xalexb/hjarta-config/component"
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
)

// ComponentProvider loads a component. It reads the meta document metaFile
// with open, then every member it lists, decoding each with the codec named
// by the member format or its file extension. A nil codecs uses
// DefaultCodecs.
func ComponentProvider(open Opener, metaFile string, codecs *Codecs) (*component.ConfigData, error) {
	if codecs == nil {
		codecs = DefaultCodecs()
	}

	raw, err := load(open, codecs, metaFile, "")
	if err != nil {
		return nil, errors.Wrap(err, "component meta")
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(component.ErrInvalidMeta, "%s must be a mapping, not %T", metaFile, raw)
	}

	meta, err := component.NewMeta(data.NewMapping(doc), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "component meta %s", metaFile)
	}

	members := make(map[string]data.IndexedData, len(meta.Members))

	for _, member := range meta.Members {
		raw, err := load(open, codecs, member.Filename, member.Format)
		if err != nil {
			return nil, errors.Wrapf(err, "component member %s", member.Filename)
		}

		d, ok := data.NewIndexed(raw)
		if !ok {
			return nil, errors.Wrapf(ErrNotIndexed, "component member %s", member.Filename)
		}

		members[member.Filename] = d
	}

	slog.Debug("component loaded",
		slog.String("meta", metaFile),
		slog.Int("members", len(members)))

	return component.New(meta, members)
}

func load(open Opener, codecs *Codecs, name, format string) (any, error) {
	codec, err := codecs.Resolve(format, name)
	if err != nil {
		return nil, err
	}

	src, err := open(name)
	if err != nil {
		return nil, errors.Wrap(err, "reading data error")
	}

	raw, err := codec.Decode(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing error")
	}

	return raw, nil
}
