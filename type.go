package simplify

import (
	"strings"
	"sync"
)

// KeyFunc canonicalizes input mapping keys before construction.
type KeyFunc func(string) string

// KeysAsIs keeps keys unchanged.
func KeysAsIs(k string) string { return k }

// KeysLower lower-cases keys.
func KeysLower(k string) string { return strings.ToLower(k) }

// Type owns the schema shared by every instance built from it: an ordered
// attribute table that is populated by Declare and grows when instances
// introduce ad-hoc attributes. Entries are never removed or replaced.
type Type struct {
	name        string
	description string
	policy      MandatoryPolicy
	keyFunc     KeyFunc

	mu    sync.RWMutex
	order []string
	attrs map[string]*AttributeSpec
}

// TypeOption configures a Type.
type TypeOption func(*Type)

// WithPolicy selects the mandatory-attribute policy. PolicyStrict is the default.
func WithPolicy(p MandatoryPolicy) TypeOption { return func(t *Type) { t.policy = p } }

// WithKeyFunc sets the key canonicalization applied to construction input.
func WithKeyFunc(fn KeyFunc) TypeOption {
	return func(t *Type) {
		if fn != nil {
			t.keyFunc = fn
		}
	}
}

// WithDescription attaches a human readable description (exported to JSON Schema).
func WithDescription(d string) TypeOption { return func(t *Type) { t.description = d } }

// NewType creates an empty schema.
func NewType(name string, opts ...TypeOption) *Type {
	t := &Type{name: name, keyFunc: KeysAsIs, attrs: map[string]*AttributeSpec{}}
	for _, o := range opts {
		if o != nil {
			o(t)
		}
	}
	return t
}

func (t *Type) Name() string            { return t.name }
func (t *Type) Description() string     { return t.description }
func (t *Type) Policy() MandatoryPolicy { return t.policy }

// Declare registers an attribute. Declaring a name twice fails with
// *DuplicateAttributeError regardless of the second declaration's type or
// options.
func (t *Type) Declare(name string, typ TypeTag, opts ...AttrOption) (*AttributeSpec, error) {
	s := newAttributeSpec(name, typ, opts...)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.attrs[name]; dup {
		return nil, &DuplicateAttributeError{Type: t.name, Name: name}
	}
	t.insertLocked(s)
	return s, nil
}

// MustDeclare is like Declare but panics on error. Intended for package-level
// schema declarations.
func (t *Type) MustDeclare(name string, typ TypeTag, opts ...AttrOption) *AttributeSpec {
	s, err := t.Declare(name, typ, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Attribute looks up the AttributeSpec registered under name.
func (t *Type) Attribute(name string) (*AttributeSpec, bool) {
	t.mu.RLock()
	s, ok := t.attrs[name]
	t.mu.RUnlock()
	return s, ok
}

// Attributes returns a snapshot of the registered specs in registration order.
func (t *Type) Attributes() []*AttributeSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*AttributeSpec, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.attrs[n])
	}
	return out
}

// Len returns the number of registered attributes.
func (t *Type) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// invisibleSequence returns the first invisible sequence-typed attribute.
func (t *Type) invisibleSequence() (*AttributeSpec, bool) {
	for _, s := range t.Attributes() {
		if s.invisible && s.typ.IsSequence() {
			return s, true
		}
	}
	return nil, false
}

// ensureAdHoc returns the AttributeSpec for name, registering a fallback descriptor
// when none exists. The check and insert happen under one lock, so racing
// callers always observe the same descriptor.
func (t *Type) ensureAdHoc(name string, sample any) *AttributeSpec {
	if s, ok := t.Attribute(name); ok {
		return s
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.attrs[name]; ok { // double-check
		return s
	}
	s := adHocSpec(name, sample)
	t.insertLocked(s)
	return s
}

func (t *Type) insertLocked(s *AttributeSpec) {
	t.attrs[s.name] = s
	t.order = append(t.order, s.name)
}
