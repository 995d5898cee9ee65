// Package source provides Fx modules that load configuration documents and
// components into the DI container under a name.
package source

import (
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/cockroachdb/errors"
)

// ErrEmptyFile is returned when the source has no file to read.
var ErrEmptyFile = errors.New("file must not be empty")

// ErrEmptyName is returned when the source name is empty.
var ErrEmptyName = errors.New("source name must not be empty")

// ErrWriteBackPath is returned when write-back is requested for a narrowed
// document.
var ErrWriteBackPath = errors.New("write-back needs the whole document")

// ErrSaveFailed is returned when the document cannot be written back.
var ErrSaveFailed = errors.New("failed to save")

// Config holds the configuration for a file source.
type Config struct {
	// File is the document to load.
	File string
	// Format names the codec; empty means the file extension decides.
	Format string
	// Path narrows the document, in the keypath syntax.
	Path string
	// ReadOnly freezes the loaded data.
	ReadOnly bool
	// WriteBack saves the document to File when the app stops.
	WriteBack bool
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() {
	if c.Format == "" && c.File != "" {
		c.Format = strings.ToLower(strings.TrimPrefix(filepath.Ext(c.File), "."))
	}
}

// Validate validates the Config against the registered codecs.
func (c *Config) Validate(codecs *config.Codecs) error {
	if c.File == "" {
		return ErrEmptyFile
	}

	if _, err := codecs.Resolve(c.Format, c.File); err != nil {
		return err
	}

	if c.WriteBack && c.Path != "" {
		return errors.Wrapf(ErrWriteBackPath, "path %q", c.Path)
	}

	return nil
}
