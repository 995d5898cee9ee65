package hjarta_test

import (
	"testing"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/logging"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestWithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expected string
	}{
		{
			name:     "debug level",
			level:    "debug",
			expected: "debug",
		},
		{
			name:     "info level",
			level:    "info",
			expected: "info",
		},
		{
			name:     "warn level",
			level:    "warn",
			expected: "warn",
		},
		{
			name:     "error level",
			level:    "error",
			expected: "error",
		},
		{
			name:     "empty level",
			level:    "",
			expected: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var opts hjarta.Options

			hjarta.WithLogLevel(testCase.level)(&opts)

			require.Equal(t, testCase.expected, opts.LogLevel)
		})
	}
}

func TestWithLogLevelDefault(t *testing.T) {
	t.Parallel()

	var opts hjarta.Options
	// Without calling WithLogLevel, LogLevel should be empty string (zero value)
	require.Empty(t, opts.LogLevel)
}

func TestWithModules(t *testing.T) {
	t.Parallel()

	module1 := fx.Module("test1")
	module2 := fx.Module("test2")

	var opts hjarta.Options

	hjarta.WithModules(module1)(&opts)
	require.Len(t, opts.Modules, 1)

	hjarta.WithModules(module2)(&opts)
	require.Len(t, opts.Modules, 2)
}

func TestWithModulesMultiple(t *testing.T) {
	t.Parallel()

	module1 := fx.Module("test1")
	module2 := fx.Module("test2")

	var opts hjarta.Options

	hjarta.WithModules(module1, module2)(&opts)
	require.Len(t, opts.Modules, 2)
}

func TestWithLogFormat(t *testing.T) {
	t.Parallel()

	var opts hjarta.Options

	hjarta.WithLogFormat("TEXT")(&opts)
	require.Equal(t, logging.FormatText, opts.LogFormat)

	hjarta.WithLogFormat("yaml")(&opts)
	require.Equal(t, logging.FormatJSON, opts.LogFormat)
}

func TestWithSourceAndComponent(t *testing.T) {
	t.Parallel()

	var opts hjarta.Options

	hjarta.WithSource("app")(&opts)
	hjarta.WithComponent("service", "testdata/service", "meta.yaml")(&opts)

	require.Len(t, opts.Modules, 2)
}
