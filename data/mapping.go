package data

import (
	"slices"

	"github.com/0xalexb/hjarta-config/keypath"
)

// MappingData wraps a name to value mapping.
type MappingData struct {
	indexed
}

// Item is a name and value pair returned by MappingData.Items.
type Item struct {
	Key   string
	Value any
}

// NewMapping wraps a deep copy of m. A nil map is treated as empty.
func NewMapping(m map[string]any) *MappingData {
	if m == nil {
		m = map[string]any{}
	}

	return &MappingData{indexed: indexed{root: deepCopy(m)}}
}

// NewMappingOf wraps a deep copy of a custom mapping. Unless m implements
// Copier, the copy is a FrozenMap, or a map[string]any when m implements
// keypath.MutableMapping. The result is read-only in the first case.
func NewMappingOf(m keypath.Mapping) *MappingData {
	return &MappingData{indexed: indexed{root: deepCopy(m)}}
}

// Len returns the number of top level keys.
func (d *MappingData) Len() int {
	if m, ok := d.root.(keypath.Mapping); ok {
		return m.Len()
	}

	return len(mappingNames(d.root))
}

// Has reports whether name is a top level key.
func (d *MappingData) Has(name string) bool {
	_, ok := mappingLookup(d.root, name)

	return ok
}

// Keys returns the sorted top level names. With Recursive it returns the
// escaped path of every nested key instead; see the package documentation.
func (d *MappingData) Keys(opts ...Option) ([]string, error) {
	o := collect(opts)

	if !o.recursive {
		names := mappingNames(d.root)
		slices.Sort(names)

		return names, nil
	}

	w := keyWalker{opts: o}

	if id, ok := identityOf(d.root); ok {
		w.ancestors = append(w.ancestors, id)
	}

	if err := w.walk(d.root, nil); err != nil {
		return nil, err
	}

	slices.Sort(w.out)

	return w.out, nil
}

// Values returns deep copies of the top level values ordered by key.
func (d *MappingData) Values() []any {
	items := d.Items()
	out := make([]any, len(items))

	for i, item := range items {
		out[i] = item.Value
	}

	return out
}

// Items returns the top level key and value pairs ordered by key. Values are
// deep copies.
func (d *MappingData) Items() []Item {
	names := mappingNames(d.root)
	slices.Sort(names)

	out := make([]Item, 0, len(names))

	for _, name := range names {
		v, _ := mappingLookup(d.root, name)
		out = append(out, Item{Key: name, Value: deepCopy(v)})
	}

	return out
}

type keyWalker struct {
	opts      options
	ancestors []identity
	out       []string
}

func (w *keyWalker) walk(node any, prefix []keypath.Key) error {
	for _, name := range mappingNames(node) {
		value, _ := mappingLookup(node, name)
		keys := append(slices.Clip(prefix), keypath.Attr(name))

		if !isMapping(value) {
			w.emit(keys)

			continue
		}

		id, hasID := identityOf(value)
		if hasID && slices.Contains(w.ancestors, id) {
			if !w.opts.nonStrict {
				p := keypath.NewPath(keys...)

				return &CyclicReferenceError{KeyInfo: KeyInfo{Path: p, Current: keys[len(keys)-1], Index: len(keys) - 1}}
			}

			w.emit(keys)

			continue
		}

		if !w.opts.endPointOnly {
			w.emit(keys)
		}

		if hasID {
			w.ancestors = append(w.ancestors, id)
		}

		err := w.walk(value, keys)

		if hasID {
			w.ancestors = w.ancestors[:len(w.ancestors)-1]
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (w *keyWalker) emit(keys []keypath.Key) {
	w.out = append(w.out, keypath.NewPath(keys...).String())
}
