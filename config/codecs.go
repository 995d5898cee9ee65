package config

import (
	"path/filepath"
	"slices"
	"strings"

	hclparser "github.com/0xalexb/hjarta-config/config/parser/hcl"
	jsonparser "github.com/0xalexb/hjarta-config/config/parser/json"
	tomlparser "github.com/0xalexb/hjarta-config/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"

	"github.com/cockroachdb/errors"
)

// ErrUnknownFormat is returned when no codec is registered for a format or
// file extension.
var ErrUnknownFormat = errors.New("unknown config format")

// Codecs maps format names and file extensions to codecs.
type Codecs struct {
	byName map[string]Codec
	byExt  map[string]string
}

// NewCodecs returns an empty registry.
func NewCodecs() *Codecs {
	return &Codecs{
		byName: make(map[string]Codec),
		byExt:  make(map[string]string),
	}
}

// DefaultCodecs returns a registry with the bundled yaml, json, toml and hcl
// codecs.
func DefaultCodecs() *Codecs {
	c := NewCodecs()
	c.Register("yaml", yamlparser.NewParser(), "yaml", "yml")
	c.Register("json", jsonparser.NewParser(), "json")
	c.Register("toml", tomlparser.NewParser(), "toml")
	c.Register("hcl", hclparser.NewParser(), "hcl")

	return c
}

// Register adds codec under name and the given file extensions, without
// the leading dot. Later registrations replace earlier ones.
func (c *Codecs) Register(name string, codec Codec, extensions ...string) {
	name = strings.ToLower(name)
	c.byName[name] = codec

	for _, ext := range extensions {
		c.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))] = name
	}
}

// Lookup returns the codec registered under name.
func (c *Codecs) Lookup(name string) (Codec, error) {
	codec, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}

	return codec, nil
}

// ForFile returns the codec registered for the extension of filename.
func (c *Codecs) ForFile(filename string) (Codec, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	name, ok := c.byExt[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "extension of %q", filename)
	}

	return c.byName[name], nil
}

// Resolve returns the codec named by format, or the one for the extension
// of filename when format is empty.
func (c *Codecs) Resolve(format, filename string) (Codec, error) {
	if format != "" {
		return c.Lookup(format)
	}

	return c.ForFile(filename)
}

// Formats returns the registered format names, sorted.
func (c *Codecs) Formats() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
