package component

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/0xalexb/hjarta-config/data"
	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

var _ data.IndexedData = (*ConfigData)(nil)

// ConfigData is a component: one logical configuration over several member
// containers keyed by filename.
type ConfigData struct {
	meta    *Meta
	members map[string]data.IndexedData
	orders  Orders
}

// New builds a component from meta and the loaded members. The member
// filenames must match the ones meta lists exactly.
func New(meta *Meta, members map[string]data.IndexedData) (*ConfigData, error) {
	if meta == nil {
		return nil, errors.Wrap(ErrInvalidMeta, "nil meta")
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	if err := checkMembers(meta, members); err != nil {
		return nil, err
	}

	c := &ConfigData{meta: meta, members: maps.Clone(members)}

	// Validate has already checked every order.
	c.orders.Create, _ = meta.resolveOrder("create", meta.Orders.Create)
	c.orders.Read, _ = meta.resolveOrder("read", meta.Orders.Read)
	c.orders.Update, _ = meta.resolveOrder("update", meta.Orders.Update)
	c.orders.Delete, _ = meta.resolveOrder("delete", meta.Orders.Delete)

	return c, nil
}

func checkMembers(meta *Meta, members map[string]data.IndexedData) error {
	var mismatch MismatchError

	for _, filename := range meta.Filenames() {
		if _, ok := members[filename]; !ok {
			mismatch.Missing = append(mismatch.Missing, filename)
		}
	}

	for filename := range members {
		if !slices.Contains(meta.Filenames(), filename) {
			mismatch.Redundant = append(mismatch.Redundant, filename)
		}
	}

	if len(mismatch.Missing) == 0 && len(mismatch.Redundant) == 0 {
		return nil
	}

	slices.Sort(mismatch.Missing)
	slices.Sort(mismatch.Redundant)

	return &mismatch
}

// Meta returns the component meta.
func (c *ConfigData) Meta() *Meta { return c.meta }

// Members returns the member containers keyed by filename.
func (c *ConfigData) Members() map[string]data.IndexedData { return maps.Clone(c.members) }

// Member returns the container of the member with the given filename or
// alias.
func (c *ConfigData) Member(name string) (data.IndexedData, bool) {
	filename, ok := c.meta.Resolve(name)
	if !ok {
		return nil, false
	}

	return c.members[filename], true
}

// Data returns a snapshot of every member keyed by filename.
func (c *ConfigData) Data() any {
	out := make(map[string]any, len(c.members))
	for filename, member := range c.members {
		out[filename] = member.Data()
	}

	return out
}

// DataReadOnly reports whether no member can ever be written.
func (c *ConfigData) DataReadOnly() bool {
	for _, member := range c.members {
		if !member.DataReadOnly() {
			return false
		}
	}

	return true
}

// ReadOnly reports whether every member refuses writes.
func (c *ConfigData) ReadOnly() bool {
	for _, member := range c.members {
		if !member.ReadOnly() {
			return false
		}
	}

	return true
}

// SetReadOnly applies readOnly to every member. Members that cannot be made
// writable are reported after the others have been updated.
func (c *ConfigData) SetReadOnly(readOnly bool) error {
	var first error

	for _, filename := range c.meta.Filenames() {
		if err := c.members[filename].SetReadOnly(readOnly); err != nil && first == nil {
			first = errors.Wrapf(err, "member %s", filename)
		}
	}

	return first
}

// Keys returns the sorted union of the keys of the members in the read
// order. Members that do not enumerate keys are skipped.
func (c *ConfigData) Keys(opts ...data.Option) ([]string, error) {
	seen := make(map[string]struct{})

	for _, filename := range c.orders.Read {
		lister, ok := c.members[filename].(interface {
			Keys(opts ...data.Option) ([]string, error)
		})
		if !ok {
			continue
		}

		keys, err := lister.Keys(opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", filename)
		}

		for _, key := range keys {
			seen[key] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}

// Retrieve returns the value at p from the first member of the read order
// that has it.
func (c *ConfigData) Retrieve(p keypath.Path, opts ...data.Option) (any, error) {
	var result any

	err := c.resolve(c.orders.Read, data.OpRead, p, func(member data.IndexedData, p keypath.Path) error {
		v, err := member.Retrieve(p, opts...)
		result = v

		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Exists reports whether any member of the read order has p.
func (c *ConfigData) Exists(p keypath.Path, opts ...data.Option) (bool, error) {
	err := c.resolve(c.orders.Read, data.OpRead, p, func(member data.IndexedData, p keypath.Path) error {
		ok, err := member.Exists(p, opts...)
		if err != nil {
			return err
		}

		if !ok {
			return absent(p, data.OpRead)
		}

		return nil
	})
	if errors.Is(err, data.ErrNotFound) {
		return false, nil
	}

	return err == nil, err
}

// Get is Retrieve returning def when no member has p.
func (c *ConfigData) Get(p keypath.Path, def any, opts ...data.Option) (any, error) {
	v, err := c.Retrieve(p, opts...)
	if errors.Is(err, data.ErrNotFound) {
		return def, nil
	}

	return v, err
}

// Modify sets p in the first member of the update order that accepts the
// write. Options, data.WithoutCreate included, are passed to every member.
func (c *ConfigData) Modify(p keypath.Path, value any, opts ...data.Option) error {
	return c.resolve(c.orders.Update, data.OpWrite, p, func(member data.IndexedData, p keypath.Path) error {
		return member.Modify(p, value, opts...)
	})
}

// Delete removes p from the first member of the delete order that has it.
func (c *ConfigData) Delete(p keypath.Path) error {
	return c.resolve(c.orders.Delete, data.OpDelete, p, func(member data.IndexedData, p keypath.Path) error {
		return member.Delete(p)
	})
}

// Unset is Delete without the NotFoundError.
func (c *ConfigData) Unset(p keypath.Path) error {
	err := c.Delete(p)
	if errors.Is(err, data.ErrNotFound) {
		return nil
	}

	return err
}

// SetDefault returns the value at p from the read order. When no member has
// it, SetDefault falls back to the create order, where the first member that
// accepts the path keeps its existing value or stores def.
func (c *ConfigData) SetDefault(p keypath.Path, def any, opts ...data.Option) (any, error) {
	if member, stripped, routed, err := c.route(p, data.OpRead); routed {
		if err != nil {
			return nil, err
		}

		return member.SetDefault(stripped, def, opts...)
	}

	v, err := c.Retrieve(p, opts...)
	if !errors.Is(err, data.ErrNotFound) {
		return v, err
	}

	var result any

	err = c.fallback(c.orders.Create, data.OpWrite, p, func(member data.IndexedData, p keypath.Path) error {
		v, err := member.SetDefault(p, def, opts...)
		result = v

		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type attempt func(member data.IndexedData, p keypath.Path) error

// resolve runs try on the member named by the meta of the first key, or
// falls back through order.
func (c *ConfigData) resolve(order []string, op data.Operation, p keypath.Path, try attempt) error {
	member, stripped, routed, err := c.route(p, op)
	if routed {
		if err != nil {
			return err
		}

		return try(member, stripped)
	}

	return c.fallback(order, op, p, try)
}

// route reports whether the first key of p names a member. The returned
// path has the meta of its first key removed.
func (c *ConfigData) route(p keypath.Path, op data.Operation) (data.IndexedData, keypath.Path, bool, error) {
	if p.Len() == 0 {
		return nil, p, false, nil
	}

	first := p.At(0)

	name, ok := first.Meta()
	if !ok {
		return nil, p, false, nil
	}

	filename, known := c.meta.Resolve(name)
	if !known {
		return nil, p, true, &data.NotFoundError{
			KeyInfo: data.KeyInfo{Path: p, Current: first, Index: 0},
			Op:      op,
		}
	}

	return c.members[filename], p.Replace(0, first.WithoutMeta()), true, nil
}

// fallback tries every member of order until one succeeds. Not-found and
// type errors move on to the next member; the deepest of them is returned
// when all members fail. Other errors end the search.
func (c *ConfigData) fallback(order []string, op data.Operation, p keypath.Path, try attempt) error {
	if len(order) == 0 {
		return absent(p, op)
	}

	var remembered error

	for _, filename := range order {
		err := try(c.members[filename], p)
		if err == nil {
			return nil
		}

		if !recoverable(err) {
			return err
		}

		slog.Debug("component member skipped",
			slog.String("member", filename),
			slog.String("path", p.String()),
			slog.String("error", err.Error()))

		if remembered == nil {
			remembered = err
		} else {
			remembered = deepest(remembered, err)
		}
	}

	return remembered
}

func absent(p keypath.Path, op data.Operation) *data.NotFoundError {
	info := data.KeyInfo{Path: p}
	if p.Len() > 0 {
		info.Current = p.At(0)
	}

	return &data.NotFoundError{KeyInfo: info, Op: op}
}

func recoverable(err error) bool {
	return errors.Is(err, data.ErrNotFound) || errors.Is(err, data.ErrType)
}

// errorIndex returns the key index a not-found or type error refers to.
func errorIndex(err error) int {
	var nf *data.NotFoundError
	if errors.As(err, &nf) {
		return nf.Index
	}

	var te *data.TypeError
	if errors.As(err, &te) {
		return te.Index
	}

	return -1
}

// deepest returns b only when it refers to a later key than a.
func deepest(a, b error) error {
	if errorIndex(b) > errorIndex(a) {
		return b
	}

	return a
}
