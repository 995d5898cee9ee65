package hjarta

import (
	"github.com/0xalexb/hjarta-config/logging"
	"github.com/0xalexb/hjarta-config/source"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat logging.Format
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithSource adds a named configuration file source to the application.
// The name is used as both the Fx module name and the DI named tag for
// data.ConfigData, *source.Source and source.Config.
// When options are provided (e.g., WithFile), Config is supplied to DI automatically.
// Call multiple times with different names to load several documents.
func WithSource(name string, opts ...source.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, source.NewModule(name, opts...))
	}
}

// WithComponent adds a named component, loaded from dir and described by
// metaFile, to the application. It is provided as *component.ConfigData.
func WithComponent(name, dir, metaFile string) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, source.NewComponentModule(name, dir, metaFile))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log format for the application, "json" or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = logging.ParseFormat(format)
	}
}
