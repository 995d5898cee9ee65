// Package data wraps raw nested configuration values in typed containers and
// implements path based access on top of them.
//
// Raw values are what format decoders produce: map[string]any, []any and
// scalars. Custom containers may implement the keypath Mapping and Sequence
// interfaces; FrozenMap and Tuple are the bundled immutable variants.
//
// Every container satisfies ConfigData, which covers snapshots and read-only
// state. MappingData and SequenceData also satisfy IndexedData, which adds
// Retrieve, Modify, Delete, Unset, Exists, Get and SetDefault. All of these
// drive one traversal routine that walks a keypath.Path over the backing
// value.
//
// Containers copy the raw value they are built from. Data always returns a
// deep copy. Modify stores the given value as is, without copying it, so a
// caller that keeps mutating that value after the call also mutates the
// container.
//
// Containers are not safe for concurrent use.
package data
