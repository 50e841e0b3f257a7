package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oafront/oaserrors"
)

// Lookup walks a local JSON pointer ("#/components/schemas/Pet") over the raw
// document tree and returns the node it addresses.
func (d *Document) Lookup(ref string) (*yaml.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "only local references are supported"}
	}
	pointer := strings.TrimPrefix(ref, "#")
	current := d.root
	if current == nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "document has no content"}
	}
	if pointer == "" || pointer == "/" {
		return current, nil
	}

	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, part := range parts {
		part = unescapePointerToken(part)
		current = content(current)
		if current == nil {
			return nil, missing(ref, parts[:i+1])
		}

		switch current.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for j := 0; j+1 < len(current.Content); j += 2 {
				if current.Content[j].Value == part {
					next = current.Content[j+1]
					break
				}
			}
			if next == nil {
				return nil, missing(ref, parts[:i+1])
			}
			current = next

		case yaml.SequenceNode:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(current.Content) {
				return nil, &oaserrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("invalid array index %q at #/%s", part, strings.Join(parts[:i+1], "/")),
				}
			}
			current = current.Content[index]

		default:
			return nil, &oaserrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("cannot traverse into scalar at #/%s", strings.Join(parts[:i], "/")),
			}
		}
	}
	return content(current), nil
}

// LookupSchema decodes the schema a pointer addresses. The result may itself be
// a $ref; following chains is left to the caller.
func (d *Document) LookupSchema(ref string) (*Schema, error) {
	node, err := d.Lookup(ref)
	if err != nil {
		return nil, err
	}
	s, err := decodeSchema(node)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &Schema{}
	}
	return s, nil
}

// LookupParameter follows a parameter $ref chain to its definition.
func (d *Document) LookupParameter(ref string) (*Parameter, error) {
	node, err := d.follow(ref)
	if err != nil {
		return nil, err
	}
	return decodeParameter(node)
}

// LookupRequestBody follows a request body $ref chain to its definition.
func (d *Document) LookupRequestBody(ref string) (*RequestBody, error) {
	node, err := d.follow(ref)
	if err != nil {
		return nil, err
	}
	return decodeRequestBody(node)
}

// LookupResponse follows a response $ref chain to its definition.
func (d *Document) LookupResponse(ref string) (*Response, error) {
	node, err := d.follow(ref)
	if err != nil {
		return nil, err
	}
	return decodeResponse(node)
}

// follow resolves ref and keeps going while the target is itself a $ref.
func (d *Document) follow(ref string) (*yaml.Node, error) {
	visited := make(map[string]bool)
	for {
		if visited[ref] {
			return nil, &oaserrors.ReferenceError{Ref: ref, IsCircular: true}
		}
		visited[ref] = true

		node, err := d.Lookup(ref)
		if err != nil {
			return nil, err
		}
		next := refOf(node)
		if next == "" {
			return node, nil
		}
		ref = next
	}
}

func missing(ref string, parts []string) error {
	return &oaserrors.ReferenceError{
		Ref:     ref,
		Message: fmt.Sprintf("not found (missing key %q)", parts[len(parts)-1]),
	}
}

// unescapePointerToken decodes one RFC 6901 token as written in a URI fragment.
func unescapePointerToken(token string) string {
	if decoded, err := url.PathUnescape(token); err == nil {
		token = decoded
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
