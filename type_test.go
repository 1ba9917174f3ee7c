package simplify_test

import (
	"errors"
	"testing"

	simplify "github.com/reoring/simplify"
)

func TestDeclare_Duplicate(t *testing.T) {
	typ := simplify.NewType("Dup")
	if _, err := typ.Declare("a", simplify.String); err != nil {
		t.Fatalf("first declaration failed: %v", err)
	}
	_, err := typ.Declare("a", simplify.Number, simplify.Mandatory(), simplify.Default(1))
	if !errors.Is(err, simplify.ErrDuplicateAttribute) {
		t.Fatalf("expected ErrDuplicateAttribute, got %v", err)
	}
	var de *simplify.DuplicateAttributeError
	if !errors.As(err, &de) || de.Name != "a" || de.Type != "Dup" {
		t.Fatalf("unexpected error detail %+v", de)
	}
	if s, _ := typ.Attribute("a"); s.Type() != simplify.String {
		t.Fatalf("first declaration must be kept, got %v", s.Type())
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustDeclare should panic on duplicates")
		}
	}()
	typ.MustDeclare("a", simplify.Any)
}

func TestDeclare_SpecDefaults(t *testing.T) {
	typ := simplify.NewType("Specs")
	plain := typ.MustDeclare("plain", simplify.String)
	seq := typ.MustDeclare("seq", simplify.SequenceOf(simplify.String))
	nilDef := typ.MustDeclare("nil_default", simplify.Any, simplify.Default(nil))
	falseDef := typ.MustDeclare("false_default", simplify.Bool, simplify.Default(false))

	if _, ok := plain.Default(); ok {
		t.Fatalf("no default declared, expected absent")
	}
	if plain.Mandatory() || plain.Invisible() || plain.AdHoc() {
		t.Fatalf("unexpected flags on plain attribute")
	}
	if d, ok := seq.Default(); !ok || len(d.([]any)) != 0 {
		t.Fatalf("sequence attributes default to an empty sequence, got %#v ok=%v", d, ok)
	}
	if elem, ok := seq.ElemType(); !ok || elem != simplify.String {
		t.Fatalf("expected string element type, got %v ok=%v", elem, ok)
	}
	if _, ok := plain.ElemType(); ok {
		t.Fatalf("scalar attribute has no element type")
	}
	if d, ok := nilDef.Default(); !ok || d != nil {
		t.Fatalf("explicit nil default must be present, got %v ok=%v", d, ok)
	}
	if d, ok := falseDef.Default(); !ok || d != false {
		t.Fatalf("false default must be kept, got %v ok=%v", d, ok)
	}
	if _, ok := plain.AllowedValues(); ok {
		t.Fatalf("no value set declared")
	}

	names := []string{}
	for _, s := range typ.Attributes() {
		names = append(names, s.Name())
	}
	if len(names) != 4 || names[0] != "plain" || names[3] != "false_default" {
		t.Fatalf("attributes must keep declaration order, got %v", names)
	}
}

func TestTypeTag_String(t *testing.T) {
	group := simplify.NewType("Group")
	cases := map[string]simplify.TypeTag{
		"any":        simplify.Any,
		"string":     simplify.String,
		"Group":      simplify.Model(group),
		"[Group]":    simplify.SequenceOf(simplify.Model(group)),
		"[[number]]": simplify.SequenceOf(simplify.SequenceOf(simplify.Number)),
	}
	for want, tag := range cases {
		if got := tag.String(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

var globalTestType = simplify.NewType("catalog_test_global")

func TestCatalog(t *testing.T) {
	cat := simplify.NewCatalog()
	a := simplify.NewType("A")
	if err := cat.Register(a); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := cat.Register(a); err != nil {
		t.Fatalf("re-registering the same type should be a no-op: %v", err)
	}
	if err := cat.Register(simplify.NewType("A")); err == nil {
		t.Fatalf("expected conflict for a different type under a taken name")
	}
	if err := cat.Register(simplify.NewType("B")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got, ok := cat.Lookup("A"); !ok || got != a {
		t.Fatalf("lookup failed")
	}
	if names := cat.Names(); len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Fatalf("unexpected names %v", names)
	}

	if err := simplify.RegisterType(globalTestType); err != nil {
		t.Fatalf("register global: %v", err)
	}
	if got, ok := simplify.LookupType("catalog_test_global"); !ok || got != globalTestType {
		t.Fatalf("global lookup failed")
	}
}
