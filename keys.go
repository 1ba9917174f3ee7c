package simplify

import (
	"fmt"
	"sort"

	"github.com/reoring/simplify/i18n"
)

// NormalizeKeys converts decoded documents (which may contain map[any]any, as
// produced by YAML decoders) into map[string]any recursively, applying fn to
// every key. Non-string keys are rendered with fmt. Sequences and scalars are
// returned with their mappings normalized; other values are returned as-is.
func NormalizeKeys(v any, fn KeyFunc) any {
	if fn == nil {
		fn = KeysAsIs
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fn(k)] = NormalizeKeys(vv, fn)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[fn(ks)] = NormalizeKeys(vv, fn)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = NormalizeKeys(t[i], fn)
		}
		return arr
	default:
		return v
	}
}

// asMapping reports whether v is a mapping and returns it with string keys.
// Keys are left untouched; canonicalization happens at construction.
func asMapping(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		m, _ := NormalizeKeys(t, nil).(map[string]any)
		return m, true
	default:
		return nil, false
	}
}

// canonicalKeys applies fn to every key of m. Two input keys mapping to the
// same canonical name are rejected with a duplicate_key Issue rather than
// resolved by map iteration order.
func canonicalKeys(m map[string]any, fn KeyFunc) (map[string]any, error) {
	raw := make([]string, 0, len(m))
	for k := range m {
		raw = append(raw, k)
	}
	sort.Strings(raw)
	out := make(map[string]any, len(m))
	from := make(map[string]string, len(m))
	for _, k := range raw {
		ck := fn(k)
		if prev, ok := from[ck]; ok {
			return nil, Issues{Issue{
				Path:    joinPointer("", ck),
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, map[string]string{"attribute": ck}),
				Params:  map[string]any{"keys": []string{prev, k}},
			}}
		}
		from[ck] = k
		out[ck] = m[k]
	}
	return out, nil
}
