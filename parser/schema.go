package parser

import (
	"go.yaml.in/yaml/v4"
)

// Schema is the subset of a JSON Schema object that drives type generation.
//
// A schema either carries a Ref (and nothing else is read) or describes a type
// inline. Properties keep their declaration order.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Description string
	Items       *Schema
	Properties  []*Property
	Required    []string
	AnyOf       []*Schema
	AllOf       []*Schema

	// Schema is a nested schema wrapper. Some documents wrap the real schema one
	// level deeper; it takes precedence over every other field.
	Schema *Schema

	// Line is the 1-based line of the schema in the source document (0 if unknown).
	Line int
}

// Property is one named entry of a schema's properties map.
type Property struct {
	Name   string
	Schema *Schema
}

// IsRequired reports whether name appears in the schema's required list.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Property returns the property with the given name, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeSchema(node)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func decodeSchema(node *yaml.Node) (*Schema, error) {
	node = content(node)
	if node == nil {
		return nil, nil
	}
	s := &Schema{Line: node.Line}
	// Boolean schemas (true/false) carry no shape information.
	if node.Kind == yaml.ScalarNode {
		if isNull(node) || node.ShortTag() == "!!bool" {
			return s, nil
		}
		return nil, nodeError(node, "expected a schema object")
	}

	err := eachPair(node, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			s.Ref, err = scalar(value)
		case "type":
			s.Type, err = schemaType(value)
		case "format":
			s.Format, err = scalar(value)
		case "description":
			s.Description, err = scalar(value)
		case "items":
			s.Items, err = decodeSchema(value)
		case "schema":
			s.Schema, err = decodeSchema(value)
		case "required":
			// Parameters reuse the "required" key as a boolean; only lists apply here.
			if value != nil && value.Kind == yaml.SequenceNode {
				s.Required, err = stringList(value)
			}
		case "anyOf":
			s.AnyOf, err = schemaList(value)
		case "allOf":
			s.AllOf, err = schemaList(value)
		case "properties":
			s.Properties, err = properties(value)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// schemaType reads "type", accepting the 3.1 list form. A list resolves to
// its first non-null entry.
func schemaType(node *yaml.Node) (string, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return scalar(node)
	}
	types, err := stringList(node)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t != "null" {
			return t, nil
		}
	}
	return "", nil
}

func schemaList(node *yaml.Node) ([]*Schema, error) {
	var out []*Schema
	err := eachItem(node, func(item *yaml.Node) error {
		s, err := decodeSchema(item)
		if err != nil {
			return err
		}
		if s != nil {
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

func properties(node *yaml.Node) ([]*Property, error) {
	var out []*Property
	err := eachPair(node, func(name string, value *yaml.Node) error {
		s, err := decodeSchema(value)
		if err != nil {
			return err
		}
		if s == nil {
			s = &Schema{}
		}
		out = append(out, &Property{Name: name, Schema: s})
		return nil
	})
	return out, err
}
