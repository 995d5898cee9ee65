package data_test

import (
	"testing"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nested() *data.MappingData {
	return data.NewMapping(map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"tls":  map[string]any{"enabled": true},
		},
		"a.b":  1,
		"list": []any{map[string]any{"x": 1}},
	})
}

func TestKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		opts     []data.Option
		expected []string
	}{
		{
			name:     "top level",
			expected: []string{"a.b", "list", "server"},
		},
		{
			name: "recursive",
			opts: []data.Option{data.Recursive()},
			expected: []string{
				`\.a.b`,
				`\.list`,
				`\.server`,
				`\.server\.host`,
				`\.server\.tls`,
				`\.server\.tls\.enabled`,
			},
		},
		{
			name: "end points",
			opts: []data.Option{data.Recursive(), data.EndPointOnly()},
			expected: []string{
				`\.a.b`,
				`\.list`,
				`\.server\.host`,
				`\.server\.tls\.enabled`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			keys, err := nested().Keys(tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, keys)
		})
	}
}

func TestKeys_ParseBack(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(map[string]any{`back\slash`: map[string]any{"x": 1}})

	keys, err := d.Keys(data.Recursive(), data.EndPointOnly())
	require.NoError(t, err)
	require.Len(t, keys, 1)

	v, err := d.Retrieve(keypath.MustParse(keys[0]))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func cyclic() map[string]any {
	a := map[string]any{}
	c := map[string]any{"A": a, "leaf": 1}
	a["B"] = map[string]any{"C": c}

	return a
}

func TestKeys_Cycle(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(cyclic())

	_, err := d.Keys(data.Recursive())

	var ce *data.CyclicReferenceError

	require.ErrorAs(t, err, &ce)
	require.ErrorIs(t, err, data.ErrCyclicReference)
	assert.Equal(t, `\.B\.C\.A`, ce.Path.String())
	assert.Equal(t, 2, ce.Index)
	assert.True(t, ce.Current.Is("A"))

	keys, err := d.Keys(data.Recursive(), data.NonStrict())
	require.NoError(t, err)
	assert.Equal(t, []string{`\.B`, `\.B\.C`, `\.B\.C\.A`, `\.B\.C\.leaf`}, keys)
}

func TestKeys_SharedIsNotCycle(t *testing.T) {
	t.Parallel()

	shared := map[string]any{"v": 1}
	d := data.NewMapping(map[string]any{"x": shared, "y": shared})

	keys, err := d.Keys(data.Recursive(), data.EndPointOnly())
	require.NoError(t, err)
	assert.Equal(t, []string{`\.x\.v`, `\.y\.v`}, keys)
}

func TestDeepCopy_PreservesCycles(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(cyclic())

	v, err := d.Retrieve(keypath.MustParse(`\.B\.C\.A\.B\.C\.leaf`))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	snapshot, ok := d.Data().(map[string]any)
	require.True(t, ok)

	inner := snapshot["B"].(map[string]any)["C"].(map[string]any) //nolint:forcetypeassert // test data
	inner["leaf"] = 2

	again := inner["A"].(map[string]any)["B"].(map[string]any)["C"].(map[string]any) //nolint:forcetypeassert // test data
	assert.Equal(t, 2, again["leaf"], "the copy keeps its own cycle")

	v, err = d.Retrieve(keypath.MustParse(`\.B\.C\.leaf`))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMappingData_Accessors(t *testing.T) {
	t.Parallel()

	d := data.NewMapping(map[string]any{"b": []any{1}, "a": "x"})

	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Has("a"))
	assert.False(t, d.Has("c"))
	assert.Equal(t, []any{"x", []any{1}}, d.Values())
	assert.Equal(t, []data.Item{{Key: "a", Value: "x"}, {Key: "b", Value: []any{1}}}, d.Items())

	items := d.Items()
	items[1].Value.([]any)[0] = 9 //nolint:forcetypeassert // test data

	v, err := d.Retrieve(keypath.MustParse(`\.b\[0\]`))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSequenceData_Accessors(t *testing.T) {
	t.Parallel()

	d := data.NewSequence([]any{"a", map[string]any{"b": 1}})

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []any{"a", map[string]any{"b": 1}}, d.Values())

	v, err := d.Retrieve(keypath.MustParse(`\[1\]\.b`))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	tuple := data.NewSequenceOf(data.Tuple{"x"})
	assert.Equal(t, 1, tuple.Len())
	assert.Equal(t, data.Tuple{"x"}, tuple.Data())
}

// settings is a mutable mapping that is not a native map.
type settings struct {
	values map[string]any
}

func (s *settings) Lookup(name string) (any, bool) {
	v, ok := s.values[name]

	return v, ok
}

func (s *settings) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}

	return names
}

func (s *settings) Len() int                     { return len(s.values) }
func (s *settings) Store(name string, value any) { s.values[name] = value }
func (s *settings) Remove(name string)           { delete(s.values, name) }

// ports is a read-only sequence that is not a native slice.
type ports []int

func (p ports) At(position int) any { return p[position] }
func (p ports) Len() int            { return len(p) }

func TestNewMappingOf_CopiesCustomMapping(t *testing.T) {
	t.Parallel()

	src := &settings{values: map[string]any{"server": map[string]any{"port": 80}}}

	d := data.NewMappingOf(src)
	assert.False(t, d.DataReadOnly())

	snapshot, ok := d.Data().(map[string]any)
	require.True(t, ok)

	snapshot["server"].(map[string]any)["port"] = 81
	snapshot["extra"] = true

	assert.Equal(t, map[string]any{"server": map[string]any{"port": 80}}, src.values)
	assert.Equal(t, map[string]any{"server": map[string]any{"port": 80}}, d.Data())

	require.NoError(t, d.Modify(keypath.MustParse(`\.server\.port`), 82))
	assert.Equal(t, 80, src.values["server"].(map[string]any)["port"])
}

func TestNewSequenceOf_CopiesCustomSequence(t *testing.T) {
	t.Parallel()

	d := data.NewSequenceOf(ports{80, 443})
	assert.True(t, d.DataReadOnly())
	assert.Equal(t, data.Tuple{80, 443}, d.Data())
}
