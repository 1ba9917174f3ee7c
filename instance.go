package simplify

import (
	"sort"
	"strconv"

	"github.com/reoring/simplify/i18n"
)

// Instance is a value constructed from a Type: an ordered mapping from
// attribute name to stored value. Stored values are primitives, nested
// *Instance values owned by this instance, mappings, or []any sequences.
type Instance struct {
	typ    *Type
	state  State
	keys   []string
	values map[string]any
}

// New constructs an instance of t from a raw mapping. Input keys are
// canonicalized with the type's KeyFunc; raw is not modified.
//
// Declared attributes are filled first, in declaration order, from raw or
// from their defaults. Remaining keys become ad-hoc attributes, in ascending
// key order, and are registered on t. Under PolicyStrict unmet mandatory
// attributes fail construction with *MissingMandatoryAttributeError; under
// PolicyLazy the instance is returned in StateInvalid. Values outside a
// declared value set always fail with *InvalidAttributeValueError.
func New(t *Type, raw map[string]any) (*Instance, error) {
	inst := &Instance{typ: t, values: make(map[string]any, len(raw))}
	opts, err := canonicalKeys(raw, t.keyFunc)
	if err != nil {
		return nil, err
	}

	inst.state = StatePopulatingDeclared
	var missing []string
	for _, s := range t.Attributes() {
		var v any
		if rv, ok := opts[s.name]; ok {
			cv, err := coerce(&s.typ, rv, t.keyFunc)
			if err != nil {
				return nil, err
			}
			v = cv
			delete(opts, s.name)
		} else {
			v, _ = s.Default()
		}
		if s.mandatory && v == nil {
			missing = append(missing, s.name)
		}
		if err := inst.store(s, v); err != nil {
			return nil, err
		}
	}
	if len(missing) > 0 && t.policy == PolicyStrict {
		return nil, &MissingMandatoryAttributeError{Type: t.name, Names: missing}
	}

	inst.state = StatePopulatingAdHoc
	rest := make([]string, 0, len(opts))
	for k := range opts {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		cv, err := coerce(nil, opts[k], t.keyFunc)
		if err != nil {
			return nil, err
		}
		if err := inst.store(t.ensureAdHoc(k, cv), cv); err != nil {
			return nil, err
		}
	}

	if len(inst.collectIssues("")) == 0 {
		inst.state = StateValid
	} else {
		inst.state = StateInvalid
	}
	return inst, nil
}

// MustNew is like New but panics on error.
func MustNew(t *Type, raw map[string]any) *Instance {
	inst, err := New(t, raw)
	if err != nil {
		panic(err)
	}
	return inst
}

// FromValue constructs an instance from a decoded document. Besides mappings
// it accepts a bare sequence when t declares an invisible sequence attribute;
// the sequence becomes that attribute's value, mirroring how ToMap inlines it.
func FromValue(t *Type, v any) (*Instance, error) {
	if m, ok := asMapping(v); ok {
		return New(t, m)
	}
	if seq, ok := asSequence(v); ok {
		if s, ok := t.invisibleSequence(); ok {
			return New(t, map[string]any{s.name: seq})
		}
	}
	return nil, Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    "expected object",
		Params:  map[string]any{"type": t.name},
	}}
}

func (i *Instance) Type() *Type { return i.typ }

// State returns the state construction finished in.
func (i *Instance) State() State { return i.state }

// Keys returns the stored attribute names in storage order.
func (i *Instance) Keys() []string { return append([]string(nil), i.keys...) }

// Has reports whether a value is stored under name.
func (i *Instance) Has(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Get returns the value stored under name. Attributes registered on the type
// but never stored on this instance read as a copy of their default. Unknown
// names read as nil.
func (i *Instance) Get(name string) any {
	v, _ := i.Lookup(name)
	return v
}

// Lookup is like Get but reports whether name is known to the instance or
// its type.
func (i *Instance) Lookup(name string) (any, bool) {
	if v, ok := i.values[name]; ok {
		return v, true
	}
	if s, ok := i.typ.Attribute(name); ok {
		v, _ := s.Default()
		return v, true
	}
	return nil, false
}

// Set stores v under name. The value is coerced like construction input and
// checked against the attribute's allowed values; nil is always accepted.
// An unknown name is registered on the type as an ad-hoc attribute.
func (i *Instance) Set(name string, v any) error {
	s, known := i.typ.Attribute(name)
	var tag *TypeTag
	if known {
		tag = &s.typ
	}
	cv, err := coerce(tag, v, i.typ.keyFunc)
	if err != nil {
		return err
	}
	if !known {
		s = i.typ.ensureAdHoc(name, cv)
	}
	return i.store(s, cv)
}

// GetAs returns the value under name asserted to T.
func GetAs[T any](i *Instance, name string) (T, bool) {
	v, ok := i.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// Valid reports whether every mandatory attribute currently holds a value,
// including those of nested instances.
func (i *Instance) Valid() bool { return i.Validate() == nil }

// Validate returns Issues (code "required") for every unmet mandatory
// attribute in the instance tree, or nil.
func (i *Instance) Validate() error {
	if iss := i.collectIssues(""); len(iss) > 0 {
		return iss
	}
	return nil
}

func (i *Instance) store(s *AttributeSpec, v any) error {
	if !s.allows(v) {
		allowed, _ := s.AllowedValues()
		return &InvalidAttributeValueError{Type: i.typ.name, Name: s.name, Value: v, Allowed: allowed}
	}
	if _, ok := i.values[s.name]; !ok {
		i.keys = append(i.keys, s.name)
	}
	i.values[s.name] = v
	return nil
}

func (i *Instance) collectIssues(base string) Issues {
	var iss Issues
	for _, s := range i.typ.Attributes() {
		if !s.mandatory {
			continue
		}
		if v, _ := i.Lookup(s.name); v == nil {
			iss = AppendIssues(iss, Issue{
				Path:    joinPointer(base, s.name),
				Code:    CodeRequired,
				Message: i18n.T(CodeRequired, map[string]string{"attribute": s.name}),
				Params:  map[string]any{"type": i.typ.name, "attribute": s.name},
			})
		}
	}
	for _, k := range i.keys {
		iss = append(iss, nestedIssues(joinPointer(base, k), i.values[k])...)
	}
	return iss
}

func nestedIssues(path string, v any) Issues {
	switch t := v.(type) {
	case *Instance:
		return t.collectIssues(path)
	case []any:
		var iss Issues
		for idx, el := range t {
			iss = append(iss, nestedIssues(path+"/"+strconv.Itoa(idx), el)...)
		}
		return iss
	case map[string]any:
		ks := make([]string, 0, len(t))
		for k := range t {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		var iss Issues
		for _, k := range ks {
			iss = append(iss, nestedIssues(joinPointer(path, k), t[k])...)
		}
		return iss
	default:
		return nil
	}
}
