package simplify

// AttributeSpec describes one attribute of a Type. It is immutable once
// declared.
type AttributeSpec struct {
	name       string
	typ        TypeTag
	mandatory  bool
	hasDefault bool
	def        any
	values     []any
	hasValues  bool
	invisible  bool
	adHoc      bool
}

// AttrOption configures an attribute declaration.
type AttrOption func(*AttributeSpec)

// Mandatory marks the attribute as required to hold a non-nil value.
func Mandatory() AttrOption { return func(s *AttributeSpec) { s.mandatory = true } }

// Default records the value used when construction input omits the attribute.
// Default(nil) is distinct from declaring no default at all.
func Default(v any) AttrOption {
	return func(s *AttributeSpec) {
		s.hasDefault = true
		s.def = cloneValue(v)
	}
}

// Values restricts the attribute to the given set. nil is always accepted.
func Values(vs ...any) AttrOption {
	return func(s *AttributeSpec) {
		s.hasValues = true
		s.values = append([]any(nil), vs...)
	}
}

// Invisible inlines a sequence-valued attribute: serialization replaces the
// enclosing mapping with the bare sequence.
func Invisible() AttrOption { return func(s *AttributeSpec) { s.invisible = true } }

func newAttributeSpec(name string, typ TypeTag, opts ...AttrOption) *AttributeSpec {
	s := &AttributeSpec{name: name, typ: typ}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	if typ.IsSequence() && !s.hasDefault {
		s.hasDefault = true
		s.def = []any{}
	}
	return s
}

// adHocSpec is the fallback descriptor registered for undeclared names.
func adHocSpec(name string, sample any) *AttributeSpec {
	return &AttributeSpec{name: name, typ: inferTag(sample), adHoc: true}
}

func (s *AttributeSpec) Name() string  { return s.name }
func (s *AttributeSpec) Type() TypeTag { return s.typ }

// ElemType returns the element tag of a sequence attribute.
func (s *AttributeSpec) ElemType() (TypeTag, bool) {
	if !s.typ.IsSequence() {
		return TypeTag{}, false
	}
	return *s.typ.Elem, true
}

func (s *AttributeSpec) Mandatory() bool { return s.mandatory }
func (s *AttributeSpec) Invisible() bool { return s.invisible }

// AdHoc reports whether the attribute was registered at run time rather than
// declared.
func (s *AttributeSpec) AdHoc() bool { return s.adHoc }

// Default returns the declared default and whether one was declared.
// The returned value is a fresh copy; callers may mutate it.
func (s *AttributeSpec) Default() (any, bool) {
	if !s.hasDefault {
		return nil, false
	}
	return cloneValue(s.def), true
}

// AllowedValues returns the allowed value set and whether one was declared.
func (s *AttributeSpec) AllowedValues() ([]any, bool) {
	if !s.hasValues {
		return nil, false
	}
	return append([]any(nil), s.values...), true
}

// allows reports whether v may be stored under this attribute.
func (s *AttributeSpec) allows(v any) bool {
	if !s.hasValues || v == nil {
		return true
	}
	for _, a := range s.values {
		if valuesEqual(a, v) {
			return true
		}
	}
	return false
}

func inferTag(v any) TypeTag {
	switch v.(type) {
	case string:
		return String
	case bool:
		return Bool
	case []any:
		return SequenceOf(Any)
	default:
		if _, ok := toFloat(v); ok {
			return Number
		}
		return Any
	}
}
