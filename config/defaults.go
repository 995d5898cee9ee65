package config

import (
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

// ErrRequiredPath is returned by RequiredPaths when paths are missing.
var ErrRequiredPath = errors.New("required configuration missing")

// DefaultValues is a Defaulter that stores each value at its path unless the
// path already resolves. Keys are keypath strings.
type DefaultValues map[string]any

// SetDefaults implements Defaulter.
func (dv DefaultValues) SetDefaults(d data.IndexedData) (bool, error) {
	paths := make([]string, 0, len(dv))
	for path := range dv {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	changed := false

	for _, path := range paths {
		p, err := keypath.Parse(path)
		if err != nil {
			return changed, errors.Wrapf(err, "default %q", path)
		}

		exists, err := d.Exists(p)
		if err != nil {
			return changed, errors.Wrapf(err, "default %q", path)
		}

		if exists {
			continue
		}

		// Modify does not copy, and the same defaults may be applied to
		// several documents.
		if err := d.Modify(p, data.New(dv[path]).Data()); err != nil {
			return changed, errors.Wrapf(err, "default %q", path)
		}

		changed = true
	}

	return changed, nil
}

// RequiredPaths is a Validator that fails unless every path resolves.
type RequiredPaths []string

// Validate implements Validator.
func (rp RequiredPaths) Validate(d data.IndexedData) error {
	var missing []string

	for _, path := range rp {
		p, err := keypath.Parse(path)
		if err != nil {
			return errors.Wrapf(err, "required %q", path)
		}

		exists, err := d.Exists(p, data.IgnoreWrongType())
		if err != nil {
			return errors.Wrapf(err, "required %q", path)
		}

		if !exists {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return errors.Wrapf(ErrRequiredPath, "%s", strings.Join(missing, ", "))
	}

	return nil
}
