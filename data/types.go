package data

import (
	"github.com/0xalexb/hjarta-config/keypath"
)

// ConfigData is implemented by every container.
type ConfigData interface {
	// Data returns a deep copy of the wrapped value.
	Data() any
	// DataReadOnly reports whether the wrapped value is immutable.
	DataReadOnly() bool
	// ReadOnly reports DataReadOnly or the instance freeze flag.
	ReadOnly() bool
	// SetReadOnly sets the freeze flag. Clearing it fails when DataReadOnly.
	SetReadOnly(readOnly bool) error
}

// IndexedData is implemented by containers addressable by path.
type IndexedData interface {
	ConfigData

	Retrieve(p keypath.Path, opts ...Option) (any, error)
	Modify(p keypath.Path, value any, opts ...Option) error
	Delete(p keypath.Path) error
	Unset(p keypath.Path) error
	Exists(p keypath.Path, opts ...Option) (bool, error)
	Get(p keypath.Path, def any, opts ...Option) (any, error)
	SetDefault(p keypath.Path, def any, opts ...Option) (any, error)
}

// rawer exposes the live wrapped value to the operator table.
type rawer interface {
	raw() any
	rebind(v any) error
}

// freeze holds the instance level read-only flag of scalar containers.
type freeze struct {
	readOnly bool
}

func (f *freeze) DataReadOnly() bool { return false }

func (f *freeze) ReadOnly() bool { return f.readOnly }

func (f *freeze) SetReadOnly(readOnly bool) error {
	f.readOnly = readOnly

	return nil
}

func (f *freeze) guard(op string) error {
	if f.readOnly {
		return &ReadOnlyError{Msg: op}
	}

	return nil
}

// FrozenMap is an immutable mapping. Containers built from it are
// intrinsically read-only.
type FrozenMap map[string]any

// Lookup implements keypath.Mapping.
func (m FrozenMap) Lookup(name string) (any, bool) {
	v, ok := m[name]

	return v, ok
}

// Names implements keypath.Mapping.
func (m FrozenMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	return names
}

// Len implements keypath.Mapping.
func (m FrozenMap) Len() int { return len(m) }

// Tuple is an immutable sequence. Containers built from it are
// intrinsically read-only.
type Tuple []any

// At implements keypath.Sequence.
func (t Tuple) At(position int) any { return t[position] }

// Len implements keypath.Sequence.
func (t Tuple) Len() int { return len(t) }

func isMapping(v any) bool {
	switch v.(type) {
	case map[string]any, keypath.Mapping:
		return true
	default:
		return false
	}
}

func isSequence(v any) bool {
	switch v.(type) {
	case string, []byte:
		return false
	case []any, keypath.Sequence:
		return true
	default:
		return false
	}
}

func isMutable(v any) bool {
	switch v.(type) {
	case map[string]any, []any, keypath.MutableMapping, keypath.MutableSequence:
		return true
	default:
		return false
	}
}

// emptyLike returns a new empty container with the backing type of root.
func emptyLike(root any) any {
	switch r := root.(type) {
	case []any:
		return []any{}
	case interface{ NewEmpty() any }:
		return r.NewEmpty()
	default:
		return map[string]any{}
	}
}

func mappingNames(m any) []string {
	switch c := m.(type) {
	case map[string]any:
		names := make([]string, 0, len(c))
		for name := range c {
			names = append(names, name)
		}

		return names
	case keypath.Mapping:
		return c.Names()
	default:
		return nil
	}
}

func mappingLookup(m any, name string) (any, bool) {
	switch c := m.(type) {
	case map[string]any:
		v, ok := c[name]

		return v, ok
	case keypath.Mapping:
		return c.Lookup(name)
	default:
		return nil, false
	}
}

func sequenceValues(s any) []any {
	switch c := s.(type) {
	case []any:
		return c
	case keypath.Sequence:
		out := make([]any, c.Len())
		for i := range out {
			out[i] = c.At(i)
		}

		return out
	default:
		return nil
	}
}
