package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("required", nil); msg != "missing mandatory attribute" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", nil); msg == "missing mandatory attribute" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsAttribute(t *testing.T) {
	if msg := T("invalid_enum", map[string]string{"attribute": "flag"}); msg != "value not allowed: flag" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "missing mandatory attribute" {
		t.Fatalf("nil should restore the default, got %q", msg)
	}
}
