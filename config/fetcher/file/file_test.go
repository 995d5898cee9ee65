package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	large := make([]byte, 1024*1024)
	for i := range large {
		large[i] = byte('a' + (i % 26))
	}

	testCases := []struct {
		name    string
		content []byte
	}{
		{name: "document", content: []byte("name: test-app\nversion: \"1.0\"\n")},
		{name: "empty", content: []byte{}},
		{name: "large", content: large},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "config.yaml", testCase.content)

			fetcher, err := NewFetcher(path)()
			require.NoError(t, err)
			assert.Equal(t, path, fetcher.Path())

			data, err := fetcher.Fetch()

			require.NoError(t, err)
			assert.Equal(t, testCase.content, data)
		})
	}
}

func TestFetcher_Errors(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher("/nonexistent/path/config.yaml")()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")

	fetcher, err = NewFetcher(t.TempDir())()

	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, ErrPathIsDirectory)
}

func TestFetcher_Fetch_CachedAndMutationSafe(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", []byte(`version: "1.0"`))

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`version: "2.0"`), 0o600))

	first, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte(`version: "1.0"`), first, "Fetch returns the data read at construction")

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte(`version: "1.0"`), second)
}

func TestDir_Read(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o700))
	writeFile(t, root, "meta.yaml", []byte("members: []"))
	writeFile(t, filepath.Join(root, "nested"), "a.toml", []byte("a = 1"))

	dir := NewDir(root)
	assert.Equal(t, filepath.Clean(root), dir.Root())

	data, err := dir.Read("meta.yaml")
	require.NoError(t, err)
	assert.Equal(t, []byte("members: []"), data)

	data, err = dir.Read("nested/a.toml")
	require.NoError(t, err)
	assert.Equal(t, []byte("a = 1"), data)

	_, err = dir.Read("../outside.yaml")
	require.ErrorIs(t, err, ErrOutsideRoot)

	_, err = dir.Read("missing.yaml")
	require.Error(t, err)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, Write(path, []byte("a: 1\n")))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o640))
	require.NoError(t, Write(path, []byte("a: 2\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("a: 2\n"), data)

	stat, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	require.ErrorIs(t, Write(dir, []byte("x")), ErrPathIsDirectory)
}
