package data

import (
	"github.com/0xalexb/hjarta-config/keypath"
)

// SequenceData wraps a positional list of values.
type SequenceData struct {
	indexed
}

// NewSequence wraps a deep copy of s. A nil slice is treated as empty.
func NewSequence(s []any) *SequenceData {
	if s == nil {
		s = []any{}
	}

	return &SequenceData{indexed: indexed{root: deepCopy(s)}}
}

// NewSequenceOf wraps a deep copy of a custom sequence. Unless s implements
// Copier, the copy is a Tuple, or a []any when s implements
// keypath.MutableSequence. The result is read-only in the first case.
func NewSequenceOf(s keypath.Sequence) *SequenceData {
	return &SequenceData{indexed: indexed{root: deepCopy(s)}}
}

// Len returns the number of elements.
func (d *SequenceData) Len() int {
	return len(sequenceValues(d.root))
}

// Values returns deep copies of the elements.
func (d *SequenceData) Values() []any {
	values := sequenceValues(d.root)
	out := make([]any, len(values))

	for i, v := range values {
		out[i] = deepCopy(v)
	}

	return out
}
