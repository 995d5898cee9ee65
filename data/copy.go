package data

import (
	"reflect"
	"slices"

	"github.com/0xalexb/hjarta-config/keypath"
)

// Copier lets custom containers control how they are deep-copied.
type Copier interface {
	DeepCopy() any
}

// identity of a reference value: the address of its storage, plus the
// length for slices so that differently sized views of one array differ.
type identity struct {
	ptr uintptr
	n   int
}

func identityOf(v any) (identity, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive // only reference kinds have identity
	case reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return identity{}, false
		}

		return identity{ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}

		return identity{ptr: rv.Pointer(), n: rv.Len()}, true
	default:
		return identity{}, false
	}
}

// deepCopy copies maps, slices, FrozenMap, Tuple and Copier values
// recursively. Other keypath containers are copied into native ones:
// FrozenMap and Tuple when read-only, map[string]any and []any when mutable.
// Shared and cyclic references are preserved in the copy.
func deepCopy(v any) any {
	c := copier{seen: make(map[identity]any)}

	return c.copy(v)
}

type copier struct {
	seen map[identity]any
}

func (c *copier) copy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return x
		}

		return c.memo(x, func() any {
			out := make(map[string]any, len(x))
			c.remember(x, out)

			for k, e := range x {
				out[k] = c.copy(e)
			}

			return out
		})
	case FrozenMap:
		if x == nil {
			return x
		}

		return c.memo(x, func() any {
			out := make(FrozenMap, len(x))
			c.remember(x, out)

			for k, e := range x {
				out[k] = c.copy(e)
			}

			return out
		})
	case []any:
		if x == nil {
			return x
		}

		return c.memo(x, func() any {
			out := make([]any, len(x))
			c.remember(x, out)

			for i, e := range x {
				out[i] = c.copy(e)
			}

			return out
		})
	case Tuple:
		if x == nil {
			return x
		}

		return c.memo(x, func() any {
			out := make(Tuple, len(x))
			c.remember(x, out)

			for i, e := range x {
				out[i] = c.copy(e)
			}

			return out
		})
	case []byte:
		return slices.Clone(x)
	case Copier:
		return x.DeepCopy()
	case keypath.MutableMapping:
		return c.memo(x, func() any {
			out := make(map[string]any, x.Len())
			c.remember(x, out)
			c.copyNames(x, out)

			return out
		})
	case keypath.Mapping:
		return c.memo(x, func() any {
			out := make(FrozenMap, x.Len())
			c.remember(x, out)
			c.copyNames(x, out)

			return out
		})
	case keypath.MutableSequence:
		return c.memo(x, func() any {
			out := make([]any, x.Len())
			c.remember(x, out)
			c.copyPositions(x, out)

			return out
		})
	case keypath.Sequence:
		return c.memo(x, func() any {
			out := make(Tuple, x.Len())
			c.remember(x, out)
			c.copyPositions(x, out)

			return out
		})
	default:
		return v
	}
}

func (c *copier) copyNames(src keypath.Mapping, dst map[string]any) {
	for _, name := range src.Names() {
		if e, ok := src.Lookup(name); ok {
			dst[name] = c.copy(e)
		}
	}
}

func (c *copier) copyPositions(src keypath.Sequence, dst []any) {
	for i := range dst {
		dst[i] = c.copy(src.At(i))
	}
}

func (c *copier) memo(src any, build func() any) any {
	if id, ok := identityOf(src); ok {
		if done, seen := c.seen[id]; seen {
			return done
		}
	}

	return build()
}

func (c *copier) remember(src, dst any) {
	if id, ok := identityOf(src); ok {
		c.seen[id] = dst
	}
}
