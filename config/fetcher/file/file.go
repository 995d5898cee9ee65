package file

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrOutsideRoot is returned by Dir when a member name escapes the directory.
var ErrOutsideRoot = errors.New("path escapes the component directory")

// Fetcher implements config.DataFetcher for file-based configuration.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, errors.Wrapf(err, "stat file %q", cleanPath)
		}

		if stat.IsDir() {
			return nil, errors.Wrapf(ErrPathIsDirectory, "path %q", cleanPath)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, errors.Wrapf(err, "reading file %q", cleanPath)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	return slices.Clone(f.data), nil
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string { return f.filepath }

// Dir reads the member files of a component directory.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: filepath.Clean(root)}
}

// Read returns the contents of the file name, relative to the root. Names
// that would leave the root are rejected.
func (d *Dir) Read(name string) ([]byte, error) {
	if !filepath.IsLocal(name) {
		return nil, errors.Wrapf(ErrOutsideRoot, "%q", name)
	}

	fetcher, err := NewFetcher(filepath.Join(d.root, name))()
	if err != nil {
		return nil, err
	}

	return fetcher.Fetch()
}

// Root returns the directory member names are resolved against.
func (d *Dir) Root() string { return d.root }

// Write replaces the file at fpath with data. The data is written to a
// temporary file in the same directory first and renamed over fpath, so
// readers never see a partial file. An existing file keeps its permissions.
func Write(fpath string, data []byte) error {
	cleanPath := filepath.Clean(fpath)
	perm := os.FileMode(0o600)

	if stat, err := os.Stat(cleanPath); err == nil {
		if stat.IsDir() {
			return errors.Wrapf(ErrPathIsDirectory, "path %q", cleanPath)
		}

		perm = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(cleanPath), "."+filepath.Base(cleanPath)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %q", cleanPath)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return errors.Wrapf(err, "writing %q", tmp.Name())
	}

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()

		return errors.Wrapf(err, "chmod %q", tmp.Name())
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), cleanPath); err != nil {
		return errors.Wrapf(err, "replacing %q", cleanPath)
	}

	return nil
}
