package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Decode(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	result, err := parser.Decode([]byte(`{"port": 8080, "ratio": 0.5, "big": 1e3, "tags": ["a", null, true]}`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"port":  int64(8080),
		"ratio": 0.5,
		"big":   1000.0,
		"tags":  []any{"a", nil, true},
	}, result)
}

func TestParser_Decode_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		src      string
		expected error
	}{
		{name: "empty", src: "", expected: ErrEmptyData},
		{name: "blank", src: " \n", expected: ErrEmptyData},
		{name: "trailing", src: `{} {}`, expected: ErrTrailingData},
	}

	parser := NewParser()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.Decode([]byte(testCase.src))
			require.ErrorIs(t, err, testCase.expected)
		})
	}

	_, err := parser.Decode([]byte(`{"a": }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error at offset")
}

func TestParser_Encode(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	out, err := parser.Encode(map[string]any{"b": int64(1), "a": []any{"x"}})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    \"x\"\n  ],\n  \"b\": 1\n}\n", string(out))
}
