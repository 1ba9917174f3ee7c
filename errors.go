package simplify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/simplify/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDuplicateAttribute = "duplicate_attribute"
	CodeRequired           = "required"
	CodeInvalidEnum        = "invalid_enum"
	CodeInvalidType        = "invalid_type"
	CodeDuplicateKey       = "duplicate_key"
	CodeParseError         = "parse_error"
	CodeTruncated          = "truncated"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrDuplicateAttribute    = errors.New("simplify: duplicate attribute")
	ErrMissingMandatory      = errors.New("simplify: missing mandatory attribute")
	ErrInvalidAttributeValue = errors.New("simplify: invalid attribute value")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"attribute":"flag", "got":1})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. The typed
// errors of this package are converted to a single-entry Issues.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var ie interface{ Issue() Issue }
	if errors.As(err, &ie) {
		return Issues{ie.Issue()}, true
	}
	return nil, false
}

// DuplicateAttributeError reports a second declaration of the same attribute
// name on one type.
type DuplicateAttributeError struct {
	Type string
	Name string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("simplify: duplicate attribute %q on %s", e.Name, e.Type)
}

func (e *DuplicateAttributeError) Is(target error) bool { return target == ErrDuplicateAttribute }

// Issue converts the error into an Issue rooted at the attribute.
func (e *DuplicateAttributeError) Issue() Issue {
	return Issue{
		Path:    "/" + escapePointer(e.Name),
		Code:    CodeDuplicateAttribute,
		Message: i18n.T(CodeDuplicateAttribute, map[string]string{"attribute": e.Name}),
		Params:  map[string]any{"type": e.Type, "attribute": e.Name},
		Cause:   e,
	}
}

// MissingMandatoryAttributeError lists every mandatory attribute left without
// a value by a construction.
type MissingMandatoryAttributeError struct {
	Type  string
	Names []string
}

func (e *MissingMandatoryAttributeError) Error() string {
	return fmt.Sprintf("simplify: missing mandatory attribute(s) on %s: %s", e.Type, strings.Join(e.Names, ", "))
}

func (e *MissingMandatoryAttributeError) Is(target error) bool { return target == ErrMissingMandatory }

// Issue converts the error into an Issue at the document root.
func (e *MissingMandatoryAttributeError) Issue() Issue {
	return Issue{
		Path:    "/",
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, map[string]string{"attribute": strings.Join(e.Names, ", ")}),
		Params:  map[string]any{"type": e.Type, "attributes": append([]string(nil), e.Names...)},
		Cause:   e,
	}
}

// InvalidAttributeValueError reports a value outside an attribute's allowed
// value set.
type InvalidAttributeValueError struct {
	Type    string
	Name    string
	Value   any
	Allowed []any
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("simplify: invalid value for %s.%s => %v", e.Type, e.Name, e.Value)
}

func (e *InvalidAttributeValueError) Is(target error) bool {
	return target == ErrInvalidAttributeValue
}

// Issue converts the error into an Issue rooted at the attribute.
func (e *InvalidAttributeValueError) Issue() Issue {
	return Issue{
		Path:    "/" + escapePointer(e.Name),
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, map[string]string{"attribute": e.Name}),
		Params:  map[string]any{"type": e.Type, "attribute": e.Name, "got": e.Value, "allowed": e.Allowed},
		Cause:   e,
	}
}
