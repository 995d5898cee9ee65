package keypath

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Capability names what a container must provide for a key to apply.
type Capability string

// Capabilities reported by Key.Supports.
const (
	CapMapping         Capability = "Mapping"
	CapMutableMapping  Capability = "MutableMapping"
	CapSequence        Capability = "Sequence"
	CapMutableSequence Capability = "MutableSequence"
)

// Mapping is a read-only name to value container.
// map[string]any is supported natively and need not implement it.
type Mapping interface {
	Lookup(name string) (any, bool)
	Names() []string
	Len() int
}

// MutableMapping is a Mapping that can be changed in place.
type MutableMapping interface {
	Mapping
	Store(name string, value any)
	Remove(name string)
}

// Sequence is a read-only positional container.
// []any is supported natively and need not implement it.
type Sequence interface {
	At(position int) any
	Len() int
}

// MutableSequence is a Sequence that can be changed in place.
type MutableSequence interface {
	Sequence
	SetAt(position int, value any)
	Append(value any)
	RemoveAt(position int)
}

// Supports reports the capability container lacks for k, or "" when k can
// be applied. write selects the mutable variant of the capability.
func (k Key) Supports(container any, write bool) Capability {
	switch k.kind {
	case KindAttr:
		return supportsAttr(container, write)
	case KindIndex:
		return supportsIndex(container, write)
	default:
		return CapMapping
	}
}

func supportsAttr(container any, write bool) Capability {
	if _, ok := container.(map[string]any); ok {
		return ""
	}

	if write {
		if _, ok := container.(MutableMapping); ok {
			return ""
		}

		return CapMutableMapping
	}

	if _, ok := container.(Mapping); ok {
		return ""
	}

	return CapMapping
}

func supportsIndex(container any, write bool) Capability {
	switch container.(type) {
	case []any:
		return ""
	case string, []byte:
		if write {
			return CapMutableSequence
		}

		return CapSequence
	}

	if write {
		if _, ok := container.(MutableSequence); ok {
			return ""
		}

		return CapMutableSequence
	}

	if _, ok := container.(Sequence); ok {
		return ""
	}

	return CapSequence
}

// Has reports whether k currently resolves to an element of container.
func (k Key) Has(container any) bool {
	switch k.kind {
	case KindAttr:
		switch c := container.(type) {
		case map[string]any:
			_, ok := c[k.name]

			return ok
		case Mapping:
			_, ok := c.Lookup(k.name)

			return ok
		}
	case KindIndex:
		n, ok := sequenceLen(container)

		return ok && k.position >= 0 && k.position < n
	}

	return false
}

// Get returns the element k names in container.
func (k Key) Get(container any) (any, error) {
	if k.Supports(container, false) != "" {
		return nil, errors.Wrapf(ErrUnsupported, "%s on %T", k, container)
	}

	if !k.Has(container) {
		return nil, errors.Wrapf(ErrMissing, "%s", k)
	}

	switch c := container.(type) {
	case map[string]any:
		return c[k.name], nil
	case []any:
		return c[k.position], nil
	case Mapping:
		if k.kind == KindAttr {
			v, _ := c.Lookup(k.name)

			return v, nil
		}
	}

	return container.(Sequence).At(k.position), nil //nolint:forcetypeassert // checked by Supports
}

// Set stores value under k and returns the container, which differs from the
// argument only when a slice had to grow. Setting position len(sequence)
// appends.
func (k Key) Set(container, value any) (any, error) {
	if k.Supports(container, true) != "" {
		return nil, errors.Wrapf(ErrUnsupported, "%s on %T", k, container)
	}

	if k.kind == KindAttr {
		switch c := container.(type) {
		case map[string]any:
			c[k.name] = value
		case MutableMapping:
			c.Store(k.name, value)
		}

		return container, nil
	}

	n, _ := sequenceLen(container)
	if k.position < 0 || k.position > n {
		return nil, errors.Wrapf(ErrMissing, "%s (length %d)", k, n)
	}

	switch c := container.(type) {
	case []any:
		if k.position == n {
			return append(c, value), nil
		}

		c[k.position] = value

		return c, nil
	case MutableSequence:
		if k.position == n {
			c.Append(value)
		} else {
			c.SetAt(k.position, value)
		}
	}

	return container, nil
}

// Delete removes the element k names and returns the container, which
// differs from the argument only when a slice shrank.
func (k Key) Delete(container any) (any, error) {
	if k.Supports(container, true) != "" {
		return nil, errors.Wrapf(ErrUnsupported, "%s on %T", k, container)
	}

	if !k.Has(container) {
		return nil, errors.Wrapf(ErrMissing, "%s", k)
	}

	switch c := container.(type) {
	case map[string]any:
		delete(c, k.name)
	case []any:
		return slices.Delete(c, k.position, k.position+1), nil
	case MutableMapping:
		if k.kind == KindAttr {
			c.Remove(k.name)

			return container, nil
		}

		container.(MutableSequence).RemoveAt(k.position) //nolint:forcetypeassert // checked by Supports
	case MutableSequence:
		c.RemoveAt(k.position)
	}

	return container, nil
}

func sequenceLen(container any) (int, bool) {
	switch c := container.(type) {
	case []any:
		return len(c), true
	case string, []byte:
		return 0, false
	case Sequence:
		return c.Len(), true
	default:
		return 0, false
	}
}
