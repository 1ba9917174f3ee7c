package simplify

import (
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// cloneValue deep-copies mappings, sequences and nested instances so that a
// value never ends up with two owners.
func cloneValue(v any) any {
	switch t := v.(type) {
	case *Instance:
		if t == nil {
			return t
		}
		out := &Instance{
			typ:    t.typ,
			state:  t.state,
			keys:   append([]string(nil), t.keys...),
			values: make(map[string]any, len(t.values)),
		}
		for k, vv := range t.values {
			out.values[k] = cloneValue(vv)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string{}, t...)
	default:
		return v
	}
}

// valuesEqual compares two primitive values. Numbers compare by value across
// int, float and json.Number representations; bools never equal numbers.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ia, ok := toInt(a); ok {
		if ib, ok := toInt(b); ok {
			return ia.Cmp(ib) == 0
		}
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if _, ok := toFloat(b); ok {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toInt returns integer values exactly; floats and fractional json.Number
// values are left to toFloat.
func toInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return big.NewInt(int64(n)), true
	case uint16:
		return big.NewInt(int64(n)), true
	case uint32:
		return big.NewInt(int64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case json.Number:
		return new(big.Int).SetString(string(n), 10)
	default:
		return nil, false
	}
}
