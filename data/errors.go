package data

import (
	"fmt"

	"github.com/0xalexb/hjarta-config/keypath"

	"github.com/cockroachdb/errors"
)

// ErrType is matched by *TypeError.
var ErrType = errors.New("config data type error")

// ErrNotFound is matched by *NotFoundError.
var ErrNotFound = errors.New("required path not found")

// ErrReadOnly is matched by *ReadOnlyError.
var ErrReadOnly = errors.New("config data is read-only")

// ErrCyclicReference is matched by *CyclicReferenceError.
var ErrCyclicReference = errors.New("cyclic reference")

// ErrEmptyPath is returned when a write operation is given an empty path.
var ErrEmptyPath = errors.New("empty path")

// ErrUnsupportedOperand is returned when an operator does not apply to its
// operands.
var ErrUnsupportedOperand = errors.New("unsupported operand types")

// ErrResultTooLarge is returned when repeating a string or sequence would
// exceed the supported length.
var ErrResultTooLarge = errors.New("operation result too large")

// Operation tags a NotFoundError with the access that triggered it.
type Operation string

// Operations reported by NotFoundError.
const (
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// KeyInfo locates the key an error refers to.
type KeyInfo struct {
	Path    keypath.Path
	Current keypath.Key
	Index   int
}

// Relative returns the prefix of Path ending with Current.
func (ki KeyInfo) Relative() keypath.Path {
	if ki.Index < 0 || ki.Index >= ki.Path.Len() {
		return keypath.NewPath()
	}

	return ki.Path.Slice(0, ki.Index+1)
}

func (ki KeyInfo) String() string {
	return fmt.Sprintf("%s -> %s (%d / %d)", ki.Path, ki.Current, ki.Index+1, ki.Path.Len())
}

// TypeError reports a node that lacks the capability a key needs.
type TypeError struct {
	KeyInfo

	Required keypath.Capability
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s must be %s, not %s", e.KeyInfo, e.Required, e.Actual)
}

// Is matches ErrType.
func (e *TypeError) Is(target error) bool { return target == ErrType }

// NotFoundError reports a key missing from the data.
type NotFoundError struct {
	KeyInfo

	Op Operation
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%s)", e.KeyInfo, e.Op)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReadOnlyError reports a write to read-only data.
type ReadOnlyError struct {
	Msg string
}

func (e *ReadOnlyError) Error() string {
	if e.Msg == "" {
		return ErrReadOnly.Error()
	}

	return ErrReadOnly.Error() + ": " + e.Msg
}

// Is matches ErrReadOnly.
func (e *ReadOnlyError) Is(target error) bool { return target == ErrReadOnly }

// CyclicReferenceError reports a mapping reachable from itself.
type CyclicReferenceError struct {
	KeyInfo
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("%s refers back to one of its ancestors", e.KeyInfo)
}

// Is matches ErrCyclicReference.
func (e *CyclicReferenceError) Is(target error) bool { return target == ErrCyclicReference }

func newTypeError(p keypath.Path, key keypath.Key, index int, required keypath.Capability, node any) *TypeError {
	return &TypeError{
		KeyInfo:  KeyInfo{Path: p, Current: key, Index: index},
		Required: required,
		Actual:   typeName(node),
	}
}

func newNotFound(p keypath.Path, key keypath.Key, index int, op Operation) *NotFoundError {
	return &NotFoundError{
		KeyInfo: KeyInfo{Path: p, Current: key, Index: index},
		Op:      op,
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", v)
}
