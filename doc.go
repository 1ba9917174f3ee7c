// Package simplify provides:
//
// - Run-time object schemas: a Type declares named attributes with a declared
// type, default, mandatory flag, allowed values or a sequence element type
// - Construction of instances from loosely typed decoded documents, with nested
// mappings and sequences coerced into instances of nested types
// - Tolerant acceptance of undeclared fields, which are registered on the Type
// as ad-hoc attributes
// - Serialization back into plain maps, JSON and YAML
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Schema definition files live under schemafile/, the CLI under cmd/simplify.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	group := simplify.NewType("Group")
//	group.MustDeclare("title", simplify.String, simplify.Mandatory())
//
//	user := simplify.NewType("User")
//	user.MustDeclare("name", simplify.String, simplify.Mandatory())
//	user.MustDeclare("country", simplify.String, simplify.Default("Brazil"))
//	user.MustDeclare("is_admin", simplify.Any, simplify.Values(true, false), simplify.Default(false))
//	user.MustDeclare("groups", simplify.SequenceOf(simplify.Model(group)))
//
//	u, err := simplify.FromJSON(user, data, simplify.DecodeOpt{})
//	name, _ := simplify.GetAs[string](u, "name")
//	err = u.Set("email", "a@b.c") // ad-hoc: registers "email" on user
//	wire, err := u.ToJSON()
//
// Mandatory policy:
// PolicyStrict (the default) fails construction when a mandatory attribute is
// left nil and lists every unmet name. PolicyLazy, selected per type with
// WithPolicy, constructs the instance anyway and reports it through
// Instance.Valid and Instance.Validate.
package simplify
