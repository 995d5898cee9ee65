package data

// Option adjusts a single container operation.
type Option func(*options)

type options struct {
	rawValue        bool
	noCreate        bool
	ignoreWrongType bool
	recursive       bool
	endPointOnly    bool
	nonStrict       bool
}

func collect(opts []Option) options {
	var o options

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithRawValue makes read operations return a deep copy of the raw value
// instead of wrapping mappings and sequences in containers.
func WithRawValue() Option {
	return func(o *options) { o.rawValue = true }
}

// WithoutCreate makes Modify fail with a NotFoundError instead of creating
// missing keys.
func WithoutCreate() Option {
	return func(o *options) { o.noCreate = true }
}

// IgnoreWrongType makes Exists report false instead of a TypeError.
func IgnoreWrongType() Option {
	return func(o *options) { o.ignoreWrongType = true }
}

// Recursive makes Keys descend into nested mappings.
func Recursive() Option {
	return func(o *options) { o.recursive = true }
}

// EndPointOnly makes recursive Keys skip keys whose value is a mapping.
func EndPointOnly() Option {
	return func(o *options) { o.endPointOnly = true }
}

// NonStrict makes recursive Keys stop at a cyclic reference instead of
// failing with a CyclicReferenceError.
func NonStrict() Option {
	return func(o *options) { o.nonStrict = true }
}
