package parser

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oafront/oaserrors"
)

// content unwraps document and alias nodes down to the value node.
func content(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// eachPair calls fn for every key/value pair of a mapping node in document order.
// A nil node is treated as an empty mapping.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	node = content(node)
	if node == nil || isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return nodeError(node, "expected a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, content(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// eachItem calls fn for every entry of a sequence node.
func eachItem(node *yaml.Node, fn func(item *yaml.Node) error) error {
	node = content(node)
	if node == nil || isNull(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return nodeError(node, "expected a sequence")
	}
	for _, item := range node.Content {
		if err := fn(content(item)); err != nil {
			return err
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func scalar(node *yaml.Node) (string, error) {
	node = content(node)
	if node == nil || isNull(node) {
		return "", nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", nodeError(node, "expected a scalar")
	}
	return node.Value, nil
}

func boolean(node *yaml.Node) (bool, error) {
	s, err := scalar(node)
	if err != nil || s == "" {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, nodeError(node, fmt.Sprintf("expected a boolean, got %q", s))
	}
	return b, nil
}

func stringList(node *yaml.Node) ([]string, error) {
	var out []string
	err := eachItem(node, func(item *yaml.Node) error {
		s, err := scalar(item)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// refOf returns the $ref value of a mapping node, if any.
func refOf(node *yaml.Node) string {
	node = content(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "$ref" {
			return node.Content[i+1].Value
		}
	}
	return ""
}

func nodeError(node *yaml.Node, msg string) error {
	return &oaserrors.ParseError{Line: node.Line, Column: node.Column, Message: msg}
}
