package data

import (
	"log/slog"

	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

// indexed holds the backing value of the path addressable containers and
// implements IndexedData on top of walk.
type indexed struct {
	root     any
	readOnly bool
}

// Data returns a deep copy of the backing value.
func (d *indexed) Data() any { return deepCopy(d.root) }

// DataReadOnly reports whether the backing value is immutable.
func (d *indexed) DataReadOnly() bool { return !isMutable(d.root) }

// ReadOnly reports whether writes are refused.
func (d *indexed) ReadOnly() bool { return d.readOnly || d.DataReadOnly() }

// SetReadOnly freezes or unfreezes the container.
func (d *indexed) SetReadOnly(readOnly bool) error {
	if !readOnly && d.DataReadOnly() {
		return &ReadOnlyError{Msg: typeName(d.root) + " cannot be made writable"}
	}

	d.readOnly = readOnly

	return nil
}

func (d *indexed) raw() any { return d.root }

func (d *indexed) rebind(v any) error {
	if d.ReadOnly() {
		return &ReadOnlyError{Msg: "in-place operation"}
	}

	d.root = v

	return nil
}

// cursor is a position in the backing value during a walk. store replaces
// the node and writes it back into the parent, up to the root when a slice
// was reallocated.
type cursor struct {
	node   any
	key    keypath.Key
	parent *cursor
	owner  *indexed
}

func (c *cursor) store(v any) error {
	c.node = v

	if c.parent == nil {
		c.owner.root = v

		return nil
	}

	updated, err := c.key.Set(c.parent.node, v)
	if err != nil {
		return err
	}

	if _, grown := updated.([]any); grown {
		return c.parent.store(updated)
	}

	return nil
}

// checker inspects the node the next key applies to. It may finish the walk
// early by returning done, or fail it.
type checker func(cur *cursor, key keypath.Key, index int) (result any, done bool, err error)

// finalizer produces the walk result from the node the last key resolved to.
type finalizer func(cur *cursor) (any, error)

func (d *indexed) walk(p keypath.Path, check checker, finalize finalizer) (any, error) {
	cur := &cursor{node: d.root, owner: d}

	for i, key := range p.All() {
		result, done, err := check(cur, key, i)
		if err != nil || done {
			return result, err
		}

		child, err := key.Get(cur.node)
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", p)
		}

		cur = &cursor{node: child, key: key, parent: cur, owner: d}
	}

	return finalize(cur)
}

// readable fails unless key can be read from the cursor node.
func readable(p keypath.Path, cur *cursor, key keypath.Key, index int) error {
	if capability := key.Supports(cur.node, false); capability != "" {
		return newTypeError(p, key, index, capability, cur.node)
	}

	if !key.Has(cur.node) {
		return newNotFound(p, key, index, OpRead)
	}

	return nil
}

// Retrieve returns the value at p. Mappings and sequences come back wrapped
// in new containers unless WithRawValue is given. The result never aliases
// the backing value.
func (d *indexed) Retrieve(p keypath.Path, opts ...Option) (any, error) {
	o := collect(opts)

	return d.walk(p,
		func(cur *cursor, key keypath.Key, index int) (any, bool, error) {
			return nil, false, readable(p, cur, key, index)
		},
		func(cur *cursor) (any, error) {
			if o.rawValue {
				return deepCopy(cur.node), nil
			}

			return wrap(cur.node), nil
		},
	)
}

// Modify stores value at p, creating missing intermediate containers unless
// WithoutCreate is given. value is stored without copying. When the write
// fails below a container Modify created, that container is removed again.
func (d *indexed) Modify(p keypath.Path, value any, opts ...Option) error {
	if d.ReadOnly() {
		return &ReadOnlyError{Msg: "modify " + p.String()}
	}

	if p.Len() == 0 {
		return errors.Wrap(ErrEmptyPath, "modify")
	}

	o := collect(opts)
	last := p.Len() - 1

	var (
		created    *cursor
		createdKey keypath.Key
	)

	_, err := d.walk(p,
		func(cur *cursor, key keypath.Key, index int) (any, bool, error) {
			if capability := key.Supports(cur.node, true); capability != "" {
				return nil, false, newTypeError(p, key, index, capability, cur.node)
			}

			present := key.Has(cur.node)
			if !present && o.noCreate {
				return nil, false, newNotFound(p, key, index, OpWrite)
			}

			if index == last {
				updated, err := key.Set(cur.node, value)
				if errors.Is(err, keypath.ErrMissing) {
					return nil, false, newNotFound(p, key, index, OpWrite)
				}

				if err != nil {
					return nil, false, err
				}

				return nil, true, cur.store(updated)
			}

			if present {
				return nil, false, nil
			}

			updated, err := key.Set(cur.node, emptyLike(d.root))
			if errors.Is(err, keypath.ErrMissing) {
				return nil, false, newNotFound(p, key, index, OpWrite)
			}

			if err != nil {
				return nil, false, err
			}

			if created == nil {
				created, createdKey = cur, key
			}

			return nil, false, cur.store(updated)
		},
		func(*cursor) (any, error) { return nil, nil },
	)
	if err != nil && created != nil {
		d.rollback(created, createdKey)
	}

	return err
}

func (d *indexed) rollback(cur *cursor, key keypath.Key) {
	updated, err := key.Delete(cur.node)
	if err == nil {
		err = cur.store(updated)
	}

	if err != nil {
		slog.Debug("rollback failed", slog.String("key", key.String()), slog.String("error", err.Error()))
	}
}

// Delete removes the value at p.
func (d *indexed) Delete(p keypath.Path) error {
	if d.ReadOnly() {
		return &ReadOnlyError{Msg: "delete " + p.String()}
	}

	if p.Len() == 0 {
		return errors.Wrap(ErrEmptyPath, "delete")
	}

	last := p.Len() - 1

	_, err := d.walk(p,
		func(cur *cursor, key keypath.Key, index int) (any, bool, error) {
			if capability := key.Supports(cur.node, true); capability != "" {
				return nil, false, newTypeError(p, key, index, capability, cur.node)
			}

			if !key.Has(cur.node) {
				return nil, false, newNotFound(p, key, index, OpDelete)
			}

			if index < last {
				return nil, false, nil
			}

			updated, err := key.Delete(cur.node)
			if err != nil {
				return nil, false, err
			}

			return nil, true, cur.store(updated)
		},
		func(*cursor) (any, error) { return nil, nil },
	)

	return err
}

// Unset is Delete without the NotFoundError.
func (d *indexed) Unset(p keypath.Path) error {
	err := d.Delete(p)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	return err
}

// Exists reports whether p resolves. A node of the wrong kind on the way is
// a TypeError unless IgnoreWrongType is given.
func (d *indexed) Exists(p keypath.Path, opts ...Option) (bool, error) {
	o := collect(opts)

	result, err := d.walk(p,
		func(cur *cursor, key keypath.Key, index int) (any, bool, error) {
			if capability := key.Supports(cur.node, false); capability != "" {
				if o.ignoreWrongType {
					return false, true, nil
				}

				return nil, false, newTypeError(p, key, index, capability, cur.node)
			}

			if !key.Has(cur.node) {
				return false, true, nil
			}

			return nil, false, nil
		},
		func(*cursor) (any, error) { return true, nil },
	)
	if err != nil {
		return false, err
	}

	found, _ := result.(bool)

	return found, nil
}

// Get is Retrieve returning def when p does not resolve.
func (d *indexed) Get(p keypath.Path, def any, opts ...Option) (any, error) {
	v, err := d.Retrieve(p, opts...)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}

	return v, err
}

// SetDefault returns the value at p, storing def there first when p does
// not resolve. An existing value is never overwritten.
func (d *indexed) SetDefault(p keypath.Path, def any, opts ...Option) (any, error) {
	v, err := d.Retrieve(p, opts...)
	if !errors.Is(err, ErrNotFound) {
		return v, err
	}

	if err := d.Modify(p, def); err != nil {
		return nil, err
	}

	slog.Debug("default stored", slog.String("path", p.String()))

	return def, nil
}
