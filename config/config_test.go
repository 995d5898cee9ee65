package config

import (
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCodec struct {
	decodeFunc func(src []byte) (any, error)
}

func (m *mockCodec) Decode(src []byte) (any, error) {
	return m.decodeFunc(src)
}

func (m *mockCodec) Encode(v any) ([]byte, error) {
	return []byte("encoded"), nil
}

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

type defaulterFunc func(d data.IndexedData) (bool, error)

func (f defaulterFunc) SetDefaults(d data.IndexedData) (bool, error) { return f(d) }

type validatorFunc func(d data.IndexedData) error

func (f validatorFunc) Validate(d data.IndexedData) error { return f(d) }

func staticCodec(value any) *mockCodec {
	return &mockCodec{decodeFunc: func([]byte) (any, error) { return value, nil }}
}

func staticFetcher() *mockDataFetcher {
	return &mockDataFetcher{fetchFunc: func() ([]byte, error) { return []byte("data"), nil }}
}

func document() map[string]any {
	return map[string]any{
		"server": map[string]any{"host": "localhost"},
		"name":   "app",
	}
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	result, err := Provider("")(staticCodec(document()), staticFetcher())

	require.NoError(t, err)
	assert.IsType(t, &data.MappingData{}, result)
	assert.Equal(t, document(), result.Data())
	assert.False(t, result.ReadOnly())
}

func TestProvider_Path(t *testing.T) {
	t.Parallel()

	result, err := Provider(`\.server`)(staticCodec(document()), staticFetcher())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "localhost"}, result.Data())

	result, err = Provider(`\.name`)(staticCodec(document()), staticFetcher())
	require.NoError(t, err)
	assert.IsType(t, &data.StringData{}, result)

	_, err = Provider(`\.missing`)(staticCodec(document()), staticFetcher())
	require.ErrorIs(t, err, data.ErrNotFound)

	_, err = Provider(`\.a\]`)(staticCodec(document()), staticFetcher())
	require.ErrorIs(t, err, keypath.ErrPathSyntax)

	_, err = Provider(`\.a`)(staticCodec("scalar"), staticFetcher())
	require.ErrorIs(t, err, ErrNotIndexed)
}

func TestProvider_FetchAndDecodeErrors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")
	failing := &mockDataFetcher{fetchFunc: func() ([]byte, error) { return nil, fetchErr }}

	_, err := Provider("")(staticCodec(document()), failing)
	require.ErrorIs(t, err, fetchErr)
	assert.Contains(t, err.Error(), "reading data error")

	decodeErr := errors.New("decode failed")
	codec := &mockCodec{decodeFunc: func([]byte) (any, error) { return nil, decodeErr }}

	_, err = Provider("")(codec, staticFetcher())
	require.ErrorIs(t, err, decodeErr)
	assert.Contains(t, err.Error(), "parsing error")
}

func TestProvider_DefaultsThenValidate(t *testing.T) {
	t.Parallel()

	var calls []string

	defaulter := defaulterFunc(func(d data.IndexedData) (bool, error) {
		calls = append(calls, "defaults")

		return true, d.Modify(keypath.MustParse(`\.port`), 8080)
	})
	validator := validatorFunc(func(d data.IndexedData) error {
		calls = append(calls, "validate")

		ok, err := d.Exists(keypath.MustParse(`\.port`))
		require.NoError(t, err)
		assert.True(t, ok, "validation sees the defaults")

		return nil
	})

	result, err := Provider("", WithValidator(validator), WithDefaulter(defaulter), WithReadOnly())(
		staticCodec(document()), staticFetcher())

	require.NoError(t, err)
	assert.Equal(t, []string{"defaults", "validate"}, calls)
	assert.True(t, result.ReadOnly())
}

func TestProvider_ValidationError(t *testing.T) {
	t.Parallel()

	validationErr := errors.New("invalid")
	validator := validatorFunc(func(data.IndexedData) error { return validationErr })

	_, err := Provider("", WithValidator(validator))(staticCodec(document()), staticFetcher())

	require.ErrorIs(t, err, validationErr)
	assert.Contains(t, err.Error(), "validating error")

	_, err = Provider(`\.name`, WithValidator(validator))(staticCodec(document()), staticFetcher())
	require.ErrorIs(t, err, ErrNotIndexed)
}

func TestDefaultValues(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(document())
	defaults := DefaultValues{
		`\.name`:          "other",
		`\.server\.port`:  8080,
		`\.server\.tls`:   map[string]any{"enabled": false},
		`\.limits\.burst`: 10,
	}

	changed, err := defaults.SetDefaults(d)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, map[string]any{
		"name": "app",
		"server": map[string]any{
			"host": "localhost",
			"port": int64(8080),
			"tls":  map[string]any{"enabled": false},
		},
		"limits": map[string]any{"burst": int64(10)},
	}, d.Data())

	changed, err = defaults.SetDefaults(d)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = DefaultValues{`\.name\.x`: 1}.SetDefaults(d)
	require.ErrorIs(t, err, data.ErrType)
}

func TestRequiredPaths(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(document())

	require.NoError(t, RequiredPaths{`\.name`, `\.server\.host`}.Validate(d))

	err := RequiredPaths{`\.name`, `\.server\.port`, `\.name\.x`}.Validate(d)
	require.ErrorIs(t, err, ErrRequiredPath)
	assert.Contains(t, err.Error(), `\.server\.port`)
	assert.Contains(t, err.Error(), `\.name\.x`)
}

func TestCodecs(t *testing.T) {
	t.Parallel()

	codecs := DefaultCodecs()

	assert.Equal(t, []string{"hcl", "json", "toml", "yaml"}, codecs.Formats())

	yml, err := codecs.ForFile("dir/app.YML")
	require.NoError(t, err)

	yaml, err := codecs.Lookup("yaml")
	require.NoError(t, err)
	assert.Same(t, yaml, yml)

	_, err = codecs.ForFile("app.ini")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = codecs.Lookup("ini")
	require.ErrorIs(t, err, ErrUnknownFormat)

	custom := staticCodec(nil)
	codecs.Register("ini", custom, ".ini")

	ini, err := codecs.Resolve("", "app.ini")
	require.NoError(t, err)
	assert.Same(t, custom, ini)

	toml, err := codecs.Resolve("toml", "app.ini")
	require.NoError(t, err)
	assert.NotSame(t, custom, toml)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := Encode(staticCodec(nil), data.NewMapping(nil))

	require.NoError(t, err)
	assert.Equal(t, []byte("encoded"), out)
}
