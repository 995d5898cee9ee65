package data

import (
	"fmt"
	"reflect"
)

// Normalize converts decoder output to the raw shapes containers expect:
// map[string]any, []any, int64, float64, string, bool, []byte and nil.
// Mappings with non-string keys have their keys formatted with fmt. Other
// values, such as timestamps, are returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int64, float64, []byte:
		return v
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Normalize(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = Normalize(e)
		}

		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Normalize(e)
		}

		return out
	}

	if n, ok := toNumber(v); ok {
		return n
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive // only collections need conversion
	case reflect.Map:
		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}

		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}

		return out
	default:
		return v
	}
}
