package simplify

// Kind classifies the declared type of an attribute.
type Kind int

const (
	KindAny      Kind = iota // Accepts any value unchanged.
	KindString               // Declared as string (not enforced).
	KindNumber               // Declared as number (not enforced).
	KindBool                 // Declared as bool (not enforced).
	KindModel                // Mappings are constructed into an Instance of Model.
	KindSequence             // Homogeneous sequence of Elem.
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindModel:
		return "model"
	case KindSequence:
		return "sequence"
	default:
		return "any"
	}
}

// TypeTag is the declared type of an attribute. Scalar kinds are informational
// only: values of the wrong scalar type are accepted as-is.
type TypeTag struct {
	Kind  Kind
	Model *Type    // Set when Kind == KindModel.
	Elem  *TypeTag // Set when Kind == KindSequence.
}

// Predefined scalar tags.
var (
	Any    = TypeTag{Kind: KindAny}
	String = TypeTag{Kind: KindString}
	Number = TypeTag{Kind: KindNumber}
	Bool   = TypeTag{Kind: KindBool}
)

// Model returns a tag whose mapping values are constructed as instances of t.
func Model(t *Type) TypeTag { return TypeTag{Kind: KindModel, Model: t} }

// SequenceOf returns a tag for a homogeneous sequence of elem.
func SequenceOf(elem TypeTag) TypeTag {
	e := elem
	return TypeTag{Kind: KindSequence, Elem: &e}
}

// IsSequence reports whether the tag denotes a sequence.
func (t TypeTag) IsSequence() bool { return t.Kind == KindSequence && t.Elem != nil }

func (t TypeTag) String() string {
	switch t.Kind {
	case KindModel:
		if t.Model != nil {
			return t.Model.Name()
		}
	case KindSequence:
		if t.Elem != nil {
			return "[" + t.Elem.String() + "]"
		}
	}
	return t.Kind.String()
}

// MandatoryPolicy selects when unmet mandatory attributes are reported.
type MandatoryPolicy int

const (
	// PolicyStrict fails construction with *MissingMandatoryAttributeError.
	PolicyStrict MandatoryPolicy = iota
	// PolicyLazy lets construction succeed; the instance reports Valid() == false.
	PolicyLazy
)

func (p MandatoryPolicy) String() string {
	if p == PolicyLazy {
		return "lazy"
	}
	return "strict"
}

// State is the construction state of an Instance.
type State int

const (
	StateUninitialized State = iota
	StatePopulatingDeclared
	StatePopulatingAdHoc
	StateValid
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StatePopulatingDeclared:
		return "populating_declared"
	case StatePopulatingAdHoc:
		return "populating_adhoc"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "uninitialized"
	}
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles options for building instances from encoded documents.
type DecodeOpt struct {
	// OnDuplicateKey controls duplicate JSON object keys. With Warn the
	// issues are handed to Warnings; with Error decoding fails.
	OnDuplicateKey Severity
	// Warnings receives non-fatal issues. Optional.
	Warnings func(Issue)
}
