package data

import (
	"github.com/0xalexb/hjarta-config/keypath"
)

// New wraps value in the matching container. The checks run in order:
// existing containers are returned as is, then nil, mappings, strings, byte
// slices, sequences, bools and numbers. Anything else becomes ObjectData.
func New(value any) ConfigData {
	switch v := value.(type) {
	case ConfigData:
		return v
	case nil:
		return NewNone()
	case map[string]any:
		return NewMapping(v)
	case keypath.Mapping:
		return NewMappingOf(v)
	case string:
		return NewString(v)
	case []byte:
		return NewBytes(v)
	case []any:
		return NewSequence(v)
	case keypath.Sequence:
		return NewSequenceOf(v)
	case bool:
		return NewBool(v)
	}

	if n, ok := NewNumber(value); ok {
		return n
	}

	return NewObject(value)
}

// NewIndexed wraps a mapping or a sequence. ok is false for other values.
func NewIndexed(value any) (IndexedData, bool) {
	if isMapping(value) || isSequence(value) {
		d, ok := New(value).(IndexedData)

		return d, ok
	}

	return nil, false
}

// wrap is the Retrieve finalizer: it copies node into a new container when
// it is a mapping or a sequence, and returns a deep copy of it otherwise.
func wrap(node any) any {
	if isMapping(node) || isSequence(node) {
		return New(node)
	}

	return deepCopy(node)
}
