package keypath_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want keypath.Path
	}{
		{
			name: "empty",
			in:   "",
			want: keypath.NewPath(),
		},
		{
			name: "escaped names and indexes",
			in:   `\.a.a\\.a\.b\[18\]\[07\]\.e`,
			want: keypath.NewPath(
				keypath.Attr(`a.a\.a`),
				keypath.Attr("b"),
				keypath.Index(18),
				keypath.Index(7),
				keypath.Attr("e"),
			),
		},
		{
			name: "meta on attr and index",
			in:   `\{meta\}\.aaa\{meta\}\[0\]`,
			want: keypath.NewPath(
				keypath.Attr("aaa").WithMeta("meta"),
				keypath.Index(0).WithMeta("meta"),
			),
		},
		{
			name: "implicit first attribute",
			in:   `foo\.bar`,
			want: keypath.NewPath(keypath.Attr("foo"), keypath.Attr("bar")),
		},
		{
			name: "plain syntax characters are literal",
			in:   `\.a[0]{x}.b`,
			want: keypath.NewPath(keypath.Attr("a[0]{x}.b")),
		},
		{
			name: "unknown escape kept verbatim",
			in:   `\.a\nb`,
			want: keypath.NewPath(keypath.Attr(`a\nb`)),
		},
		{
			name: "empty attribute names",
			in:   `\.\.`,
			want: keypath.NewPath(keypath.Attr(""), keypath.Attr("")),
		},
		{
			name: "empty meta",
			in:   `\{\}\.a`,
			want: keypath.NewPath(keypath.Attr("a").WithMeta("")),
		},
		{
			name: "trailing backslash",
			in:   `\.a\`,
			want: keypath.NewPath(keypath.Attr(`a\`)),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := keypath.Parse(testCase.in)
			require.NoError(t, err)

			if diff := cmp.Diff(testCase.want.Keys(), got.Keys(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", testCase.in, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      string
		unknown bool
		index   int
	}{
		{name: "unclosed index", in: `\.a\[1`, index: 2},
		{name: "empty index", in: `\[\]`, index: 0},
		{name: "negative index", in: `\[-1\]`, index: 1},
		{name: "non integer index", in: `\[1a\]`, index: 1},
		{name: "stray close bracket", in: `\.a\]`, index: 2},
		{name: "stray close brace", in: `\}\.a`, index: 0},
		{name: "unclosed meta", in: `\{m\.a`, index: 0},
		{name: "meta at end", in: `\.a\{m\}`, index: 4},
		{name: "meta before text", in: `\{m\}abc`, index: 2},
		{name: "double meta", in: `\{a\}\{b\}\.c`, index: 2},
		{name: "misordered brackets", in: `\]\[0`, index: 0},
		{name: "text after index", in: `\[0\]abc`, unknown: true, index: 3},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := keypath.Parse(testCase.in)
			require.Error(t, err)
			require.ErrorIs(t, err, keypath.ErrPathSyntax)
			assert.Equal(t, testCase.unknown, errors.Is(err, keypath.ErrUnknownTokenType))

			var syntaxErr *keypath.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, testCase.index, syntaxErr.Index)
			assert.NotEmpty(t, syntaxErr.Current())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`\.a.a\\.a\.b\[18\]\[07\]\.e`,
		`\{meta\}\.aaa\{meta\}\[0\]`,
		`\.a\\\.b`,
		`\{a\\b\}\.c\\`,
		`\.with space\.ünïcode\[3\]`,
		`\.`,
		`\.a\x`,
	}

	for _, in := range inputs {
		first, err := keypath.Parse(in)
		require.NoError(t, err, in)

		second, err := keypath.Parse(keypath.Unparse(first))
		require.NoError(t, err, in)
		require.True(t, first.Equal(second), "round trip of %q gave %q", in, second)
	}
}

func TestParse_CachedResultsAreStable(t *testing.T) {
	t.Parallel()

	const in = `\.cache\[1\]\.me`

	first := keypath.MustParse(in)
	second := keypath.MustParse(in)

	require.True(t, first.Equal(second))
	require.Equal(t, in, second.String())
}

func TestUnparse(t *testing.T) {
	t.Parallel()

	p := keypath.NewPath(
		keypath.Attr(`a\b`).WithMeta("m"),
		keypath.Index(2),
		keypath.Attr("c.d"),
	)

	require.Equal(t, `\{m\}\.a\\b\[2\]\.c.d`, keypath.Unparse(p))
	require.Equal(t, keypath.Unparse(p), p.String())
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { keypath.MustParse(`\[x\]`) })
}

//nolint:paralleltest // replaces the default logger
func TestParse_ImplicitAttributeWarning(t *testing.T) {
	var buf bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	_, err := keypath.Parse(`\.explicit\.bar`)
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = keypath.Parse(`implicit\.bar`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "path segment without leading separator is deprecated")
	assert.Contains(t, buf.String(), `"suggest":"\\.implicit"`)
}
