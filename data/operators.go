package data

import (
	"math"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrDivisionByZero is returned by the division operators.
var ErrDivisionByZero = errors.New("division by zero")

// Operator is a binary operator applicable to container values. The bitwise
// operators combine two booleans into a boolean; a boolean mixed with an
// integer counts as 0 or 1.
type Operator string

// Supported operators.
const (
	Add      Operator = "+"
	Sub      Operator = "-"
	Mul      Operator = "*"
	TrueDiv  Operator = "/"
	FloorDiv Operator = "//"
	Mod      Operator = "%"
	Pow      Operator = "**"
	And      Operator = "&"
	Or       Operator = "|"
	Xor      Operator = "^"
	LShift   Operator = "<<"
	RShift   Operator = ">>"
)

type binaryFunc func(a, b any) (any, error)

// operatorFuncs are the implementations of one operator. inPlace is nil when
// the in-place form just rebinds the forward result.
type operatorFuncs struct {
	forward binaryFunc
	inPlace binaryFunc
}

//nolint:gochecknoglobals
var operators = map[Operator]operatorFuncs{
	Add:      {forward: add, inPlace: addInPlace},
	Sub:      {forward: arith(func(a, b int64) (any, error) { return a - b, nil }, func(a, b float64) (any, error) { return a - b, nil })},
	Mul:      {forward: mul},
	TrueDiv:  {forward: trueDiv},
	FloorDiv: {forward: arith(floorDivInt, floorDivFloat)},
	Mod:      {forward: arith(modInt, modFloat)},
	Pow:      {forward: arith(powInt, func(a, b float64) (any, error) { return math.Pow(a, b), nil })},
	And:      {forward: bitwise(func(a, b int64) int64 { return a & b }, func(a, b bool) bool { return a && b })},
	Or:       {forward: or, inPlace: orInPlace},
	Xor:      {forward: bitwise(func(a, b int64) int64 { return a ^ b }, func(a, b bool) bool { return a != b })},
	LShift:   {forward: shift(func(a int64, n uint) int64 { return a << n })},
	RShift:   {forward: shift(func(a int64, n uint) int64 { return a >> n })},
}

// Apply computes d op other and wraps the result in a new container. other
// may be a raw value or a ConfigData.
func Apply(op Operator, d ConfigData, other any) (ConfigData, error) {
	funcs, err := lookup(op)
	if err != nil {
		return nil, err
	}

	result, err := funcs.forward(operand(d), operand(other))
	if err != nil {
		return nil, err
	}

	return New(result), nil
}

// ApplyReverse computes other op d, the reflected form of Apply.
func ApplyReverse(op Operator, d ConfigData, other any) (ConfigData, error) {
	funcs, err := lookup(op)
	if err != nil {
		return nil, err
	}

	result, err := funcs.forward(operand(other), operand(d))
	if err != nil {
		return nil, err
	}

	return New(result), nil
}

// ApplyInPlace computes d op other and stores the result in d.
func ApplyInPlace(op Operator, d ConfigData, other any) error {
	funcs, err := lookup(op)
	if err != nil {
		return err
	}

	target, ok := d.(rawer)
	if !ok {
		return errors.Wrapf(ErrUnsupportedOperand, "%T does not support in-place operations", d)
	}

	if d.ReadOnly() {
		return &ReadOnlyError{Msg: "in-place " + string(op)}
	}

	apply := funcs.inPlace
	if apply == nil {
		apply = funcs.forward
	}

	result, err := apply(target.raw(), deepCopy(operand(other)))
	if err != nil {
		return err
	}

	return target.rebind(result)
}

func lookup(op Operator) (operatorFuncs, error) {
	funcs, ok := operators[op]
	if !ok {
		return operatorFuncs{}, errors.Wrapf(ErrUnsupportedOperand, "unknown operator %q", op)
	}

	return funcs, nil
}

// operand returns the live value of a container, or v itself.
func operand(v any) any {
	switch x := v.(type) {
	case rawer:
		return x.raw()
	case ConfigData:
		return x.Data()
	default:
		if n, ok := toNumber(v); ok {
			return n
		}

		return v
	}
}

func unsupported(op string, a, b any) error {
	return errors.Wrapf(ErrUnsupportedOperand, "%s %s %s", typeName(a), op, typeName(b))
}

func arith(ints func(a, b int64) (any, error), floats func(a, b float64) (any, error)) binaryFunc {
	return func(a, b any) (any, error) {
		ai, aInt := a.(int64)
		bi, bInt := b.(int64)

		if aInt && bInt {
			return ints(ai, bi)
		}

		af, aNum := asFloat(a)
		bf, bNum := asFloat(b)

		if aNum && bNum {
			return floats(af, bf)
		}

		return nil, unsupported("arithmetic", a, b)
	}
}

func add(a, b any) (any, error) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return slices.Concat(x, y), nil
		}
	}

	if isSequence(a) && isSequence(b) {
		return slices.Concat(deepCopy(sequenceValues(a)).([]any), deepCopy(sequenceValues(b)).([]any)), nil //nolint:forcetypeassert // copy of []any
	}

	return arith(
		func(a, b int64) (any, error) { return a + b, nil },
		func(a, b float64) (any, error) { return a + b, nil },
	)(a, b)
}

// addInPlace extends a mutable sequence instead of building a new one.
func addInPlace(a, b any) (any, error) {
	if x, ok := a.([]any); ok && isSequence(b) {
		return append(x, sequenceValues(b)...), nil
	}

	return add(a, b)
}

func mul(a, b any) (any, error) {
	if n, ok := b.(int64); ok {
		if r, done, err := repeat(a, n); done {
			return r, err
		}
	}

	if n, ok := a.(int64); ok {
		if r, done, err := repeat(b, n); done {
			return r, err
		}
	}

	return arith(
		func(a, b int64) (any, error) { return a * b, nil },
		func(a, b float64) (any, error) { return a * b, nil },
	)(a, b)
}

// maxRepeatLen bounds the length of a repeated string or sequence.
const maxRepeatLen = 1 << 30

func repeat(v any, n int64) (any, bool, error) {
	var size int

	switch x := v.(type) {
	case string:
		size = len(x)
	case []byte:
		size = len(x)
	default:
		if !isSequence(v) {
			return nil, false, nil
		}

		size = len(sequenceValues(v))
	}

	count := max(n, 0)
	if size == 0 {
		count = 0
	}

	if size > 0 && count > maxRepeatLen/int64(size) {
		return nil, true, errors.Wrapf(ErrResultTooLarge, "%s repeated %d times", typeName(v), n)
	}

	switch x := v.(type) {
	case string:
		return strings.Repeat(x, int(count)), true, nil
	case []byte:
		return slices.Repeat(x, int(count)), true, nil
	}

	values := sequenceValues(v)
	out := make([]any, 0, size*int(count))

	for range count {
		out = append(out, deepCopy(values).([]any)...) //nolint:forcetypeassert // copy of []any
	}

	return out, true, nil
}

func trueDiv(a, b any) (any, error) {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)

	if !aNum || !bNum {
		return nil, unsupported(string(TrueDiv), a, b)
	}

	if bf == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}

	return af / bf, nil
}

func floorDivInt(a, b int64) (any, error) {
	if b == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}

	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q, nil
}

func floorDivFloat(a, b float64) (any, error) {
	if b == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}

	return math.Floor(a / b), nil
}

// modInt and modFloat return a result with the sign of the divisor.
func modInt(a, b int64) (any, error) {
	if b == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}

	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r, nil
}

func modFloat(a, b float64) (any, error) {
	if b == 0 {
		return nil, errors.WithStack(ErrDivisionByZero)
	}

	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r, nil
}

func powInt(a, b int64) (any, error) {
	if b < 0 {
		if a == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}

		return math.Pow(float64(a), float64(b)), nil
	}

	result := int64(1)

	for base := a; b > 0; b >>= 1 {
		if b&1 == 1 {
			result *= base
		}

		base *= base
	}

	return result, nil
}

func bitwise(ints func(a, b int64) int64, bools func(a, b bool) bool) binaryFunc {
	return func(a, b any) (any, error) {
		if x, ok := a.(bool); ok {
			if y, ok := b.(bool); ok {
				return bools(x, y), nil
			}
		}

		x, aInt := asInt(a)
		y, bInt := asInt(b)

		if aInt && bInt {
			return ints(x, y), nil
		}

		return nil, unsupported("bitwise", a, b)
	}
}

// asInt returns integers as is and booleans as 0 or 1.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func or(a, b any) (any, error) {
	if isMapping(a) && isMapping(b) {
		out := make(map[string]any)

		for _, m := range []any{a, b} {
			for _, name := range mappingNames(m) {
				v, _ := mappingLookup(m, name)
				out[name] = deepCopy(v)
			}
		}

		return out, nil
	}

	return bitwise(func(a, b int64) int64 { return a | b }, func(a, b bool) bool { return a || b })(a, b)
}

// orInPlace updates a mutable mapping instead of building a new one.
func orInPlace(a, b any) (any, error) {
	if x, ok := a.(map[string]any); ok && isMapping(b) {
		for _, name := range mappingNames(b) {
			x[name], _ = mappingLookup(b, name)
		}

		return x, nil
	}

	return or(a, b)
}

func shift(f func(a int64, n uint) int64) binaryFunc {
	return func(a, b any) (any, error) {
		x, aInt := a.(int64)
		n, bInt := b.(int64)

		if !aInt || !bInt {
			return nil, unsupported("shift", a, b)
		}

		if n < 0 {
			return nil, errors.Newf("negative shift count %d", n)
		}

		return f(x, uint(n)), nil
	}
}
