package simplify_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	simplify "github.com/reoring/simplify"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := simplify.Issues{
		{Path: "/a", Code: simplify.CodeRequired},
		{Path: "/b", Code: simplify.CodeInvalidEnum},
		{Path: "/c", Code: simplify.CodeDuplicateKey},
		{Path: "/d", Code: simplify.CodeParseError},
	}
	s := iss.Error()
	if !strings.HasPrefix(s, "required at /a; invalid_enum at /b") || !strings.HasSuffix(s, "(total 4)") {
		t.Fatalf("unexpected summary %q", s)
	}
	if (simplify.Issues{}).Error() != "" {
		t.Fatalf("empty issues should render empty")
	}
}

func TestAsIssues_TypedErrors(t *testing.T) {
	cases := []struct {
		err  error
		code string
		path string
	}{
		{&simplify.DuplicateAttributeError{Type: "T", Name: "a"}, simplify.CodeDuplicateAttribute, "/a"},
		{&simplify.MissingMandatoryAttributeError{Type: "T", Names: []string{"a", "b"}}, simplify.CodeRequired, "/"},
		{&simplify.InvalidAttributeValueError{Type: "T", Name: "f", Value: 1}, simplify.CodeInvalidEnum, "/f"},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("loading: %w", c.err)
		iss, ok := simplify.AsIssues(wrapped)
		if !ok || len(iss) != 1 {
			t.Fatalf("%T: expected one issue, got %v", c.err, iss)
		}
		if iss[0].Code != c.code || iss[0].Path != c.path {
			t.Fatalf("%T: got code=%s path=%s", c.err, iss[0].Code, iss[0].Path)
		}
		if !errors.Is(iss[0].Cause, c.err) {
			t.Fatalf("%T: cause should be the original error", c.err)
		}
	}
	if _, ok := simplify.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors are not issues")
	}
	if _, ok := simplify.AsIssues(nil); ok {
		t.Fatalf("nil is not issues")
	}
}

func TestTypedErrors_Messages(t *testing.T) {
	e := &simplify.MissingMandatoryAttributeError{Type: "User", Names: []string{"name", "email"}}
	if !strings.Contains(e.Error(), "name, email") {
		t.Fatalf("message should list every name, got %q", e.Error())
	}
	iv := &simplify.InvalidAttributeValueError{Type: "User", Name: "is_admin", Value: 1}
	if !strings.Contains(iv.Error(), "is_admin") || !strings.Contains(iv.Error(), "1") {
		t.Fatalf("message should name attribute and value, got %q", iv.Error())
	}
	if errors.Is(iv, simplify.ErrMissingMandatory) {
		t.Fatalf("sentinels must not cross-match")
	}
}

func TestIssueAt(t *testing.T) {
	it := simplify.IssueAt("/x", simplify.CodeRequired, "msg", map[string]any{"k": 1})
	if it.Path != "/x" || it.Code != simplify.CodeRequired || it.Params["k"] != 1 {
		t.Fatalf("unexpected issue %+v", it)
	}
}
