package keypath

import (
	"iter"
	"slices"
	"strings"
)

// Path is an immutable, ordered sequence of keys.
type Path struct {
	keys []Key
}

// NewPath builds a Path from keys. The slice is copied.
func NewPath(keys ...Key) Path {
	return Path{keys: slices.Clone(keys)}
}

// Len returns the number of keys.
func (p Path) Len() int { return len(p.keys) }

// At returns the key at position i. It panics when i is out of range, like
// slice indexing.
func (p Path) At(i int) Key { return p.keys[i] }

// Slice returns the sub-path p[i:j].
func (p Path) Slice(i, j int) Path {
	return Path{keys: slices.Clone(p.keys[i:j])}
}

// Keys returns a copy of the keys.
func (p Path) Keys() []Key { return slices.Clone(p.keys) }

// All iterates over the keys with their positions.
func (p Path) All() iter.Seq2[int, Key] {
	return func(yield func(int, Key) bool) {
		for i, k := range p.keys {
			if !yield(i, k) {
				return
			}
		}
	}
}

// Contains reports whether key is in p, comparing meta as well.
func (p Path) Contains(key Key) bool {
	return slices.ContainsFunc(p.keys, key.Equal)
}

// Equal reports whether both paths hold equal keys in the same order.
func (p Path) Equal(other Path) bool {
	return slices.EqualFunc(p.keys, other.keys, Key.Equal)
}

// Replace returns a copy of p with the key at position i replaced.
func (p Path) Replace(i int, key Key) Path {
	keys := slices.Clone(p.keys)
	keys[i] = key

	return Path{keys: keys}
}

// Append returns a copy of p extended by keys.
func (p Path) Append(keys ...Key) Path {
	out := make([]Key, 0, len(p.keys)+len(keys))
	out = append(out, p.keys...)

	return Path{keys: append(out, keys...)}
}

// String returns the canonical escaped form; see Unparse.
func (p Path) String() string { return Unparse(p) }

// Unparse renders p in canonical escaped form. Parse(Unparse(p)) yields a path
// equal to p for every p returned by Parse.
func Unparse(p Path) string {
	var b strings.Builder

	for _, k := range p.keys {
		k.appendTo(&b)
	}

	return b.String()
}
