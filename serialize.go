package simplify

import "github.com/goccy/go-json"

// ToMap converts the instance into a plain tree of map[string]any, []any and
// primitives. Nested instances are converted recursively. When an attribute
// flagged Invisible holds a sequence, the result is that sequence alone.
func (i *Instance) ToMap() any {
	out := make(map[string]any, len(i.keys))
	for _, k := range i.keys {
		v := unwrap(i.values[k])
		if seq, ok := v.([]any); ok {
			if s, ok := i.typ.Attribute(k); ok && s.invisible {
				return seq
			}
		}
		out[k] = v
	}
	return out
}

// ToMap is a nil-safe function form of (*Instance).ToMap.
func ToMap(i *Instance) any {
	if i == nil {
		return nil
	}
	return i.ToMap()
}

func unwrap(v any) any {
	switch t := v.(type) {
	case *Instance:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for idx := range t {
			out[idx] = unwrap(t[idx])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = unwrap(vv)
		}
		return out
	default:
		if seq, ok := asSequence(v); ok {
			return unwrap(seq)
		}
		return v
	}
}

// ToJSON encodes ToMap() as JSON.
func (i *Instance) ToJSON() ([]byte, error) { return json.Marshal(i.ToMap()) }

// MarshalJSON implements json.Marshaler.
func (i *Instance) MarshalJSON() ([]byte, error) { return i.ToJSON() }

// MarshalYAML implements yaml.Marshaler.
func (i *Instance) MarshalYAML() (any, error) { return i.ToMap(), nil }
