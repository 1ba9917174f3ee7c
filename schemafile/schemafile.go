// Package schemafile loads type declarations from YAML or JSON documents.
//
// A document declares types by name; attributes keep their listed order:
//
//	types:
//	  Group:
//	    attributes:
//	      - {name: title, type: string, mandatory: true}
//	  User:
//	    policy: lazy
//	    keys: lower
//	    attributes:
//	      - {name: name, type: string, mandatory: true}
//	      - {name: is_admin, values: [true, false], default: false}
//	      - {name: groups, type: "[Group]"}
//
// Type strings are any, string, number, bool, the name of another type in the
// document or catalog, or a bracketed element type for sequences.
package schemafile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	simplify "github.com/reoring/simplify"
)

// Document is the decoded form of a schema file.
type Document struct {
	Types map[string]TypeDef `yaml:"types"`
}

// TypeDef declares one type.
type TypeDef struct {
	Description string         `yaml:"description"`
	Policy      string         `yaml:"policy"` // strict (default) or lazy
	Keys        string         `yaml:"keys"`   // asis (default) or lower
	Attributes  []AttributeDef `yaml:"attributes"`
}

// AttributeDef declares one attribute. Default is kept as a node so that an
// explicit null can be told apart from an omitted default.
type AttributeDef struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Mandatory bool      `yaml:"mandatory"`
	Default   yaml.Node `yaml:"default"`
	Values    []any     `yaml:"values"`
	Invisible bool      `yaml:"invisible"`
}

// LoadFile reads path and loads it with Load.
func LoadFile(path string, cat *simplify.Catalog) ([]*simplify.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return Load(data, cat)
}

// Load decodes data and registers its types in cat. Types are created before
// any attribute is declared, so definitions may reference each other in any
// order. Nothing is registered in cat unless the whole document loads.
// Returned types are sorted by name.
func Load(data []byte, cat *simplify.Catalog) ([]*simplify.Type, error) {
	if cat == nil {
		cat = simplify.DefaultCatalog
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode: %w", err)
	}

	names := make([]string, 0, len(doc.Types))
	for n := range doc.Types {
		names = append(names, n)
	}
	sort.Strings(names)

	// staged resolves references against the document and the existing
	// catalog while declarations are in progress.
	staged := simplify.NewCatalog()
	for _, n := range cat.Names() {
		if _, ok := doc.Types[n]; ok {
			return nil, fmt.Errorf("schemafile: simplify: type %q already registered", n)
		}
		t, _ := cat.Lookup(n)
		if err := staged.Register(t); err != nil {
			return nil, fmt.Errorf("schemafile: %w", err)
		}
	}

	types := make([]*simplify.Type, 0, len(names))
	for _, n := range names {
		opts, err := typeOptions(doc.Types[n])
		if err != nil {
			return nil, fmt.Errorf("schemafile: type %s: %w", n, err)
		}
		t := simplify.NewType(n, opts...)
		if err := staged.Register(t); err != nil {
			return nil, fmt.Errorf("schemafile: %w", err)
		}
		types = append(types, t)
	}

	for i, n := range names {
		for _, ad := range doc.Types[n].Attributes {
			if err := declare(types[i], ad, staged); err != nil {
				return nil, fmt.Errorf("schemafile: type %s: %w", n, err)
			}
		}
	}

	for _, t := range types {
		if err := cat.Register(t); err != nil {
			return nil, fmt.Errorf("schemafile: %w", err)
		}
	}
	return types, nil
}

func typeOptions(def TypeDef) ([]simplify.TypeOption, error) {
	opts := []simplify.TypeOption{simplify.WithDescription(def.Description)}
	switch strings.ToLower(def.Policy) {
	case "", "strict":
	case "lazy":
		opts = append(opts, simplify.WithPolicy(simplify.PolicyLazy))
	default:
		return nil, fmt.Errorf("unknown policy %q", def.Policy)
	}
	switch strings.ToLower(def.Keys) {
	case "", "asis":
	case "lower":
		opts = append(opts, simplify.WithKeyFunc(simplify.KeysLower))
	default:
		return nil, fmt.Errorf("unknown key mode %q", def.Keys)
	}
	return opts, nil
}

func declare(t *simplify.Type, ad AttributeDef, cat *simplify.Catalog) error {
	if ad.Name == "" {
		return fmt.Errorf("attribute without name")
	}
	tag, err := ParseTag(ad.Type, cat)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", ad.Name, err)
	}
	var opts []simplify.AttrOption
	if ad.Mandatory {
		opts = append(opts, simplify.Mandatory())
	}
	if !ad.Default.IsZero() {
		var dv any
		if err := ad.Default.Decode(&dv); err != nil {
			return fmt.Errorf("attribute %s: default: %w", ad.Name, err)
		}
		opts = append(opts, simplify.Default(simplify.NormalizeKeys(dv, nil)))
	}
	if ad.Values != nil {
		opts = append(opts, simplify.Values(ad.Values...))
	}
	if ad.Invisible {
		opts = append(opts, simplify.Invisible())
	}
	_, err = t.Declare(ad.Name, tag, opts...)
	return err
}

// ParseTag resolves a type string against the scalar names and cat.
func ParseTag(s string, cat *simplify.Catalog) (simplify.TypeTag, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		elem, err := ParseTag(s[1:len(s)-1], cat)
		if err != nil {
			return simplify.TypeTag{}, err
		}
		return simplify.SequenceOf(elem), nil
	}
	switch strings.ToLower(s) {
	case "", "any", "object":
		return simplify.Any, nil
	case "string":
		return simplify.String, nil
	case "number", "integer", "float":
		return simplify.Number, nil
	case "bool", "boolean":
		return simplify.Bool, nil
	}
	if cat != nil {
		if t, ok := cat.Lookup(s); ok {
			return simplify.Model(t), nil
		}
	}
	return simplify.TypeTag{}, fmt.Errorf("unknown type %q", s)
}
