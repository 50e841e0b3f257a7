package generator

import (
	"strings"

	"github.com/erraggy/oafront/internal/naming"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

// Resolver turns schema descriptors into TypeScript type expressions.
//
// $ref pointers are dereferenced eagerly against the document on every visit;
// nothing is cached. A pointer that is reached again while it is still being
// expanded is reported as a circular reference instead of recursing forever.
type Resolver struct {
	doc       *parser.Document
	expanding map[string]bool
}

// NewResolver returns a Resolver that dereferences pointers against doc.
func NewResolver(doc *parser.Document) *Resolver {
	return &Resolver{doc: doc, expanding: make(map[string]bool)}
}

// Resolve returns the type expression for s. The checks run in this order:
// $ref, nested schema, anyOf, allOf, array, object, primitive.
func (r *Resolver) Resolve(s *parser.Schema) (string, error) {
	if s == nil {
		return "any", nil
	}

	if s.Ref != "" {
		var out string
		err := r.withRef(s.Ref, func(target *parser.Schema) error {
			var err error
			out, err = r.Resolve(target)
			return err
		})
		return out, err
	}

	switch {
	case s.Schema != nil:
		return r.Resolve(s.Schema)
	case len(s.AnyOf) > 0:
		return r.join(s.AnyOf, " | ")
	case len(s.AllOf) > 0:
		t, err := r.join(s.AllOf, " & ")
		if err != nil || len(s.Properties) == 0 {
			return t, err
		}
		own, err := r.inlineObject(s)
		if err != nil {
			return "", err
		}
		return own + " & " + t, nil
	case s.Type == "array":
		items, err := r.Resolve(s.Items)
		if err != nil {
			return "", err
		}
		return "Array<" + items + ">", nil
	case isObject(s):
		return r.inlineObject(s)
	}
	return primitive(s.Type), nil
}

func (r *Resolver) join(branches []*parser.Schema, sep string) (string, error) {
	parts := make([]string, 0, len(branches))
	for _, b := range branches {
		t, err := r.Resolve(b)
		if err != nil {
			return "", err
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, sep), nil
}

// inlineObject renders "{ a: T; b: U }". Inline members carry no optional
// markers; only named interfaces distinguish required fields.
func (r *Resolver) inlineObject(s *parser.Schema) (string, error) {
	if len(s.Properties) == 0 {
		return "{}", nil
	}
	members := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		t, err := r.Resolve(p.Schema)
		if err != nil {
			return "", err
		}
		members = append(members, propertyKey(p.Name)+": "+t)
	}
	return "{ " + strings.Join(members, "; ") + " }", nil
}

// withRef dereferences ref and calls fn with the target while ref is marked as
// being expanded.
func (r *Resolver) withRef(ref string, fn func(*parser.Schema) error) error {
	if r.expanding[ref] {
		return &oaserrors.ReferenceError{
			Ref:        ref,
			IsCircular: true,
			Message:    "schema refers back to itself",
		}
	}
	target, err := r.doc.LookupSchema(ref)
	if err != nil {
		return err
	}

	r.expanding[ref] = true
	defer delete(r.expanding, ref)
	return fn(target)
}

// objectField is one entry of a named interface.
type objectField struct {
	name     string
	schema   *parser.Schema
	required bool
}

// objectFields enumerates the properties of an object-rooted schema. $ref and
// nested schema wrappers are followed first. An allOf root contributes its own
// properties and then those of every branch; the first to declare a name wins.
func (r *Resolver) objectFields(s *parser.Schema, location string) ([]objectField, error) {
	if s == nil {
		return nil, nil
	}
	if s.Ref != "" {
		var fields []objectField
		err := r.withRef(s.Ref, func(target *parser.Schema) error {
			var err error
			fields, err = r.objectFields(target, location)
			return err
		})
		return fields, err
	}
	if s.Schema != nil {
		return r.objectFields(s.Schema, location)
	}

	if len(s.AllOf) > 0 && (s.Type == "" || s.Type == "object") {
		var merged []objectField
		seen := make(map[string]bool)
		for _, p := range s.Properties {
			seen[p.Name] = true
			merged = append(merged, objectField{name: p.Name, schema: p.Schema, required: s.IsRequired(p.Name)})
		}
		for _, branch := range s.AllOf {
			fields, err := r.objectFields(branch, location)
			if err != nil {
				return nil, err
			}
			for _, f := range fields {
				if seen[f.name] {
					continue
				}
				seen[f.name] = true
				f.required = f.required || s.IsRequired(f.name)
				merged = append(merged, f)
			}
		}
		return merged, nil
	}

	if !isObject(s) {
		return nil, &oaserrors.UnsupportedTypeError{Type: s.Type, Location: location}
	}
	fields := make([]objectField, 0, len(s.Properties))
	for _, p := range s.Properties {
		fields = append(fields, objectField{name: p.Name, schema: p.Schema, required: s.IsRequired(p.Name)})
	}
	return fields, nil
}

// root follows $ref and nested schema wrappers until it reaches a schema that
// describes a shape.
func (r *Resolver) root(s *parser.Schema) (*parser.Schema, error) {
	visited := make(map[string]bool)
	for s != nil {
		switch {
		case s.Ref != "":
			if visited[s.Ref] {
				return nil, &oaserrors.ReferenceError{Ref: s.Ref, IsCircular: true}
			}
			visited[s.Ref] = true
			target, err := r.doc.LookupSchema(s.Ref)
			if err != nil {
				return nil, err
			}
			s = target
		case s.Schema != nil:
			s = s.Schema
		default:
			return s, nil
		}
	}
	return nil, nil
}

// isShapeless reports whether a schema carries nothing a named interface
// could be built from.
func isShapeless(s *parser.Schema) bool {
	return s == nil || (s.Type == "" && len(s.Properties) == 0 && len(s.AllOf) == 0)
}

// isObject treats a schema with properties but no type as an object.
func isObject(s *parser.Schema) bool {
	return s.Type == "object" || (s.Type == "" && len(s.Properties) > 0)
}

func primitive(t string) string {
	switch t {
	case "string":
		return "string"
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	default:
		return "any"
	}
}

// propertyKey quotes a property name unless it is a plain identifier.
func propertyKey(name string) string {
	if naming.IsIdentifier(name) {
		return name
	}
	return quoteSingle(name)
}

func quoteSingle(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
