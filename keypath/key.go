package keypath

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Key.
type Kind uint8

const (
	// KindAttr addresses a mapping entry by name.
	KindAttr Kind = iota + 1
	// KindIndex addresses a sequence element by position.
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindAttr:
		return "attr"
	case KindIndex:
		return "index"
	default:
		return "invalid"
	}
}

// Key is a single path segment: either an attribute name or a sequence
// index, optionally tagged with meta text.
//
// The zero Key is invalid; build keys with Attr or Index.
type Key struct {
	kind     Kind
	name     string
	position int
	meta     string
	hasMeta  bool
}

// Attr returns an attribute key for name.
func Attr(name string) Key {
	return Key{kind: KindAttr, name: name}
}

// Index returns an index key for position.
func Index(position int) Key {
	return Key{kind: KindIndex, position: position}
}

// WithMeta returns a copy of k tagged with meta.
func (k Key) WithMeta(meta string) Key {
	k.meta = meta
	k.hasMeta = true

	return k
}

// WithoutMeta returns a copy of k with its meta tag removed.
func (k Key) WithoutMeta() Key {
	k.meta = ""
	k.hasMeta = false

	return k
}

// Kind returns the variant of k.
func (k Key) Kind() Kind { return k.kind }

// Name returns the attribute name. It is empty for index keys.
func (k Key) Name() string { return k.name }

// Position returns the sequence index. It is zero for attribute keys.
func (k Key) Position() int { return k.position }

// Meta returns the meta tag and whether one is set.
func (k Key) Meta() (string, bool) { return k.meta, k.hasMeta }

// Valid reports whether k was built by Attr or Index.
func (k Key) Valid() bool { return k.kind == KindAttr || k.kind == KindIndex }

// Equal compares kind, primary value and meta.
func (k Key) Equal(other Key) bool {
	return k.kind == other.kind &&
		k.name == other.name &&
		k.position == other.position &&
		k.hasMeta == other.hasMeta &&
		k.meta == other.meta
}

// Is compares only the primary value: a string for attribute keys, an int for
// index keys. Meta is ignored.
func (k Key) Is(value any) bool {
	switch v := value.(type) {
	case string:
		return k.kind == KindAttr && k.name == v
	case int:
		return k.kind == KindIndex && k.position == v
	case Key:
		return k.kind == v.kind && k.name == v.name && k.position == v.position
	default:
		return false
	}
}

// Hash hashes the primary value only, so keys that differ only in meta
// collide.
func (k Key) Hash() uint64 {
	h := fnv.New64a()

	switch k.kind {
	case KindAttr:
		_, _ = h.Write([]byte{'a'})
		_, _ = h.Write([]byte(k.name))
	case KindIndex:
		_, _ = h.Write([]byte{'i'})
		_, _ = h.Write(strconv.AppendInt(nil, int64(k.position), 10))
	}

	return h.Sum64()
}

// String returns the canonical escaped form of the single segment.
func (k Key) String() string {
	var b strings.Builder

	k.appendTo(&b)

	return b.String()
}

func (k Key) appendTo(b *strings.Builder) {
	if k.hasMeta {
		b.WriteString(`\{`)
		b.WriteString(Escape(k.meta))
		b.WriteString(`\}`)
	}

	switch k.kind {
	case KindAttr:
		b.WriteString(`\.`)
		b.WriteString(Escape(k.name))
	case KindIndex:
		b.WriteString(`\[`)
		b.WriteString(strconv.Itoa(k.position))
		b.WriteString(`\]`)
	}
}

// Escape escapes a single attribute name or meta text so that it can be
// embedded in a path string.
func Escape(text string) string {
	return strings.ReplaceAll(text, `\`, `\\`)
}
