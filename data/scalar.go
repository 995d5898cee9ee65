package data

import (
	"slices"
)

// NoneData stands for an absent value.
type NoneData struct {
	freeze
}

// NewNone returns a NoneData.
func NewNone() *NoneData { return &NoneData{} }

// Data returns nil.
func (d *NoneData) Data() any { return nil }

func (d *NoneData) raw() any { return nil }

func (d *NoneData) rebind(any) error {
	return &ReadOnlyError{Msg: "none has no value to update"}
}

// StringData wraps a string.
type StringData struct {
	freeze

	value string
}

// NewString wraps s.
func NewString(s string) *StringData { return &StringData{value: s} }

// Data returns the string.
func (d *StringData) Data() any { return d.value }

// Value returns the string.
func (d *StringData) Value() string { return d.value }

func (d *StringData) raw() any { return d.value }

func (d *StringData) rebind(v any) error {
	if err := d.guard("in-place operation"); err != nil {
		return err
	}

	s, ok := v.(string)
	if !ok {
		return &TypeError{Required: "string", Actual: typeName(v)}
	}

	d.value = s

	return nil
}

// BytesData wraps a byte slice.
type BytesData struct {
	freeze

	value []byte
}

// NewBytes wraps a copy of b.
func NewBytes(b []byte) *BytesData { return &BytesData{value: slices.Clone(b)} }

// Data returns a copy of the bytes.
func (d *BytesData) Data() any { return slices.Clone(d.value) }

func (d *BytesData) raw() any { return d.value }

func (d *BytesData) rebind(v any) error {
	if err := d.guard("in-place operation"); err != nil {
		return err
	}

	b, ok := v.([]byte)
	if !ok {
		return &TypeError{Required: "[]byte", Actual: typeName(v)}
	}

	d.value = b

	return nil
}

// NumberData wraps an int64 or a float64.
type NumberData struct {
	freeze

	value any
}

// NewNumber wraps any Go integer or float. Integers are stored as int64 and
// floats as float64. ok is false for other types.
func NewNumber(v any) (*NumberData, bool) {
	n, ok := toNumber(v)
	if !ok {
		return nil, false
	}

	return &NumberData{value: n}, true
}

// Data returns the int64 or float64.
func (d *NumberData) Data() any { return d.value }

// Int returns the value as an int64 and whether it is an integer.
func (d *NumberData) Int() (int64, bool) {
	i, ok := d.value.(int64)

	return i, ok
}

// Float returns the value converted to float64.
func (d *NumberData) Float() float64 {
	f, _ := asFloat(d.value)

	return f
}

func (d *NumberData) raw() any { return d.value }

func (d *NumberData) rebind(v any) error {
	if err := d.guard("in-place operation"); err != nil {
		return err
	}

	n, ok := toNumber(v)
	if !ok {
		return &TypeError{Required: "number", Actual: typeName(v)}
	}

	d.value = n

	return nil
}

// BoolData wraps a bool.
type BoolData struct {
	freeze

	value bool
}

// NewBool wraps b.
func NewBool(b bool) *BoolData { return &BoolData{value: b} }

// Data returns the bool.
func (d *BoolData) Data() any { return d.value }

// Value returns the bool.
func (d *BoolData) Value() bool { return d.value }

func (d *BoolData) raw() any { return d.value }

func (d *BoolData) rebind(v any) error {
	if err := d.guard("in-place operation"); err != nil {
		return err
	}

	b, ok := v.(bool)
	if !ok {
		return &TypeError{Required: "bool", Actual: typeName(v)}
	}

	d.value = b

	return nil
}

// ObjectData wraps a value no other container accepts.
type ObjectData struct {
	freeze

	value any
}

// NewObject wraps v.
func NewObject(v any) *ObjectData { return &ObjectData{value: v} }

// Data returns a deep copy of the value.
func (d *ObjectData) Data() any { return deepCopy(d.value) }

func (d *ObjectData) raw() any { return d.value }

func (d *ObjectData) rebind(v any) error {
	if err := d.guard("in-place operation"); err != nil {
		return err
	}

	d.value = v

	return nil
}

func toNumber(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true //nolint:gosec // configuration values fit in int64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true //nolint:gosec // configuration values fit in int64
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return nil, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
