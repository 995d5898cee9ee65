package commands

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/0xalexb/hjarta-config/component"
	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/viper"
)

// ErrNotMapping is returned when keys are listed below a non-mapping value.
var ErrNotMapping = errors.New("value is not a mapping")

// ErrUnknownMember is returned when --member names no component member.
var ErrUnknownMember = errors.New("unknown component member")

// document is a file or a component opened for a command.
type document struct {
	data  data.IndexedData
	codec config.Codec
	files []*memberFile
	meta  *component.Meta
}

// memberFile is one file backing a document.
type memberFile struct {
	name     string
	path     string
	codec    config.Codec
	data     data.ConfigData
	original []byte
}

func openDocument(v *viper.Viper, target string) (*document, error) {
	codecs := config.DefaultCodecs()

	if meta := v.GetString("meta"); meta != "" {
		return openComponent(codecs, target, meta)
	}

	codec, err := codecs.Resolve(v.GetString("format"), target)
	if err != nil {
		return nil, err
	}

	fetcher, err := file.NewFetcher(target)()
	if err != nil {
		return nil, err
	}

	loaded, err := config.Provider("")(codec, fetcher)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", target)
	}

	indexed, ok := loaded.(data.IndexedData)
	if !ok {
		return nil, errors.Wrapf(config.ErrNotIndexed, "%s", target)
	}

	doc := &document{data: indexed, codec: codec}
	if err := doc.track(target, fetcher.Path(), codec, indexed); err != nil {
		return nil, err
	}

	return doc, nil
}

func openComponent(codecs *config.Codecs, dir, meta string) (*document, error) {
	members := file.NewDir(dir)

	comp, err := config.ComponentProvider(members.Read, meta, codecs)
	if err != nil {
		return nil, errors.Wrapf(err, "loading component %s", dir)
	}

	doc := &document{data: comp, codec: yamlparser.NewParser(), meta: comp.Meta()}

	for _, member := range comp.Meta().Members {
		codec, err := codecs.Resolve(member.Format, member.Filename)
		if err != nil {
			return nil, err
		}

		d, _ := comp.Member(member.Filename)

		if err := doc.track(member.Filename, filepath.Join(members.Root(), member.Filename), codec, d); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (d *document) track(name, path string, codec config.Codec, cfg data.ConfigData) error {
	original, err := config.Encode(codec, cfg)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}

	d.files = append(d.files, &memberFile{name: name, path: path, codec: codec, data: cfg, original: original})

	return nil
}

// member returns the file named by name, a member filename or alias. An
// empty name selects the only file of a plain document.
func (d *document) member(name string) (*memberFile, error) {
	if name == "" {
		if d.meta != nil {
			return nil, errors.Wrap(ErrUnknownMember, "a component needs --member")
		}

		return d.files[0], nil
	}

	if d.meta != nil {
		if filename, ok := d.meta.Resolve(name); ok {
			name = filename
		}
	}

	for _, f := range d.files {
		if f.name == name {
			return f, nil
		}
	}

	return nil, errors.Wrapf(ErrUnknownMember, "%q", name)
}

// commit writes every changed file, or prints the changes when dryRun is set.
func (d *document) commit(out io.Writer, dryRun bool) error {
	for _, f := range d.files {
		updated, err := config.Encode(f.codec, f.data)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", f.name)
		}

		if bytes.Equal(updated, f.original) {
			continue
		}

		if dryRun {
			writeDiff(out, f.path, f.original, updated)

			continue
		}

		if err := file.Write(f.path, updated); err != nil {
			return err
		}

		f.original = updated
	}

	return nil
}

func parsePath(arg string) (keypath.Path, error) {
	p, err := keypath.Parse(arg)
	if err != nil {
		return keypath.Path{}, errors.Wrapf(err, "path %q", arg)
	}

	return p, nil
}

// printValue writes scalars as text and containers through codec.
func printValue(out io.Writer, codec config.Codec, v any) error {
	switch value := v.(type) {
	case nil:
		_, err := fmt.Fprintln(out, color.HiBlackString("null"))

		return err
	case string:
		_, err := fmt.Fprintln(out, value)

		return err
	case map[string]any, []any:
		encoded, err := codec.Encode(value)
		if err != nil {
			return errors.Wrap(err, "encoding value")
		}

		_, err = out.Write(encoded)

		return err
	default:
		_, err := fmt.Fprintln(out, value)

		return err
	}
}

// parseValue reads a command-line value as a YAML scalar or flow document.
func parseValue(arg string, literal bool) (any, error) {
	if literal || arg == "" {
		return arg, nil
	}

	v, err := yamlparser.NewParser().Decode([]byte(arg))
	if err != nil {
		return nil, errors.Wrapf(err, "value %q", arg)
	}

	return v, nil
}
