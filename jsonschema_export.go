package simplify

import js "github.com/reoring/simplify/jsonschema"

// JSONSchema projects the type's current attribute table into a JSON Schema
// describing its serialized form. Ad-hoc attributes registered so far are
// included; additional properties are always allowed. A type with an
// invisible sequence attribute serializes as that sequence, so its schema is
// the sequence's schema.
func (t *Type) JSONSchema() (*js.Schema, error) {
	if s, ok := t.invisibleSequence(); ok {
		out := tagSchema(s.typ)
		out.Title = t.name
		out.Description = t.description
		return out, nil
	}
	out := &js.Schema{
		Title:                t.name,
		Description:          t.description,
		Type:                 "object",
		Properties:           map[string]*js.Schema{},
		AdditionalProperties: true,
	}
	for _, s := range t.Attributes() {
		ps := tagSchema(s.typ)
		if d, ok := s.Default(); ok {
			ps.Default = d
		}
		if vs, ok := s.AllowedValues(); ok {
			ps.Enum = vs
		}
		out.Properties[s.name] = ps
		if s.mandatory {
			out.Required = append(out.Required, s.name)
		}
	}
	return out, nil
}

func tagSchema(tag TypeTag) *js.Schema {
	switch tag.Kind {
	case KindString:
		return &js.Schema{Type: "string"}
	case KindNumber:
		return &js.Schema{Type: "number"}
	case KindBool:
		return &js.Schema{Type: "boolean"}
	case KindModel:
		if tag.Model != nil {
			s, _ := tag.Model.JSONSchema()
			return s
		}
	case KindSequence:
		if tag.Elem != nil {
			return &js.Schema{Type: "array", Items: tagSchema(*tag.Elem)}
		}
		return &js.Schema{Type: "array"}
	}
	return &js.Schema{}
}
