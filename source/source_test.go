package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewSource_Loads(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.toml", "[api]\nport = 8080\n")

	src, err := NewSource("app", Config{File: path, Path: `\.api`}, nil)
	require.NoError(t, err)

	assert.Equal(t, "app", src.Name())
	assert.Equal(t, "toml", src.config.Format)
	assert.Equal(t, map[string]any{"port": int64(8080)}, src.Data().Data())
}

func TestNewSource_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: 1\n")

	_, err := NewSource("", Config{File: path}, nil)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewSource("app", Config{}, nil)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = NewSource("app", Config{File: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewSource("app", Config{File: path, Path: `\.b`}, nil)
	require.ErrorIs(t, err, data.ErrNotFound)
}

func TestSource_ReadOnly(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: 1\n")

	src, err := NewSource("app", Config{File: path, ReadOnly: true}, nil)
	require.NoError(t, err)

	indexed, ok := src.Data().(data.IndexedData)
	require.True(t, ok)

	err = indexed.Modify(keypath.MustParse(`\.a`), 2)
	require.ErrorIs(t, err, data.ErrReadOnly)
}

func TestSource_StopWritesBack(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.json", `{"a": 1}`)

	src, err := NewSource("app", Config{File: path, WriteBack: true}, nil)
	require.NoError(t, err)

	indexed, ok := src.Data().(data.IndexedData)
	require.True(t, ok)
	require.NoError(t, indexed.Modify(keypath.MustParse(`\.b`), "two"))

	require.NoError(t, src.Stop(context.Background()))

	reloaded, err := NewSource("app", Config{File: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": "two"}, reloaded.Data().Data())
}

func TestSource_StopWithoutWriteBack(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: 1\n")

	src, err := NewSource("app", Config{File: path}, nil)
	require.NoError(t, err)

	indexed, ok := src.Data().(data.IndexedData)
	require.True(t, ok)
	require.NoError(t, indexed.Modify(keypath.MustParse(`\.a`), 2))

	require.NoError(t, src.Stop(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(content))
}

func TestSource_SaveNarrowed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "api:\n  port: 1\n")

	src, err := NewSource("app", Config{File: path, Path: `\.api`}, nil)
	require.NoError(t, err)

	require.ErrorIs(t, src.Save(context.Background()), ErrWriteBackPath)
}
