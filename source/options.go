package source

// Option defines a function type for configuring a file source.
type Option func(*Config)

// WithFile sets the document to load.
func WithFile(file string) Option {
	return func(cfg *Config) {
		cfg.File = file
	}
}

// WithFormat names the codec, overriding the file extension.
func WithFormat(format string) Option {
	return func(cfg *Config) {
		cfg.Format = format
	}
}

// WithPath narrows the loaded document to path.
func WithPath(path string) Option {
	return func(cfg *Config) {
		cfg.Path = path
	}
}

// WithReadOnly freezes the loaded data.
func WithReadOnly() Option {
	return func(cfg *Config) {
		cfg.ReadOnly = true
	}
}

// WithWriteBack saves the document when the app stops.
func WithWriteBack() Option {
	return func(cfg *Config) {
		cfg.WriteBack = true
	}
}
