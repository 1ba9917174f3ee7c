package simplify

import "reflect"

// coerce turns a raw input value into the stored value for an attribute of
// type tag (nil for ad-hoc values). Mappings become instances when the tag
// names a model; sequences are copied element by element, each element
// coerced against the element tag. Scalars pass through unchecked.
// Instances are copied, so the result is owned by the caller alone.
// Construction errors of nested instances are returned unchanged.
func coerce(tag *TypeTag, raw any, keys KeyFunc) (any, error) {
	if inst, ok := raw.(*Instance); ok {
		if inst == nil {
			return nil, nil
		}
		if tag != nil && tag.Kind == KindModel && tag.Model != nil && inst.typ != tag.Model {
			return FromValue(tag.Model, inst.ToMap())
		}
		return cloneValue(inst), nil
	}
	if m, ok := asMapping(raw); ok {
		if tag != nil && tag.Kind == KindModel && tag.Model != nil {
			return New(tag.Model, m)
		}
		out, err := canonicalKeys(m, keys)
		if err != nil {
			return nil, err
		}
		for k, v := range out {
			cv, err := coerce(nil, v, keys)
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	}
	seq, ok := asSequence(raw)
	if !ok {
		return raw, nil
	}
	var elem *TypeTag
	if tag != nil && tag.IsSequence() {
		elem = tag.Elem
	}
	out := make([]any, len(seq))
	for i, item := range seq {
		cv, err := coerce(elem, item, keys)
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

// asSequence accepts []any and any other slice or array type except []byte.
func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
