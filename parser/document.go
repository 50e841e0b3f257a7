package parser

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oafront/internal/httputil"
	"github.com/erraggy/oafront/oaserrors"
)

// Document is an OpenAPI document reduced to what client generation reads.
type Document struct {
	// OpenAPI is the value of the "openapi" field, e.g. "3.0.3".
	OpenAPI string
	// Title is info.title.
	Title string
	// Paths lists path items in document order.
	Paths []*PathItem

	// root is the mapping node of the whole document. Local $ref pointers
	// are resolved against it.
	root *yaml.Node
}

// PathItem groups the operations declared under one path template.
type PathItem struct {
	Path string
	// Parameters are the path-level parameters shared by every operation.
	Parameters []*Parameter
	// Operations holds only HTTP-method entries, in document order.
	Operations []*Operation
}

// Operation is a single path × method entry.
type Operation struct {
	// Method is the lower-case HTTP method key ("get", "post", ...).
	Method      string
	OperationID string
	Summary     string
	Parameters  []*Parameter
	RequestBody *RequestBody
	// Responses are keyed by status code ("200", "404", "default") in document order.
	Responses []*Response
	Line      int
}

// Parameter is a path, query, header or cookie parameter.
type Parameter struct {
	Ref      string
	Name     string
	In       string
	Required bool
	Schema   *Schema
}

// RequestBody is an operation's request body.
type RequestBody struct {
	Ref      string
	Required bool
	Content  []*MediaType
}

// MediaType pairs a content type key with its schema.
type MediaType struct {
	ContentType string
	Schema      *Schema
}

// Response is one entry of an operation's responses map.
type Response struct {
	Ref         string
	StatusCode  string
	Description string
	Content     []*MediaType
}

// JSONContent returns the first media type whose key starts with
// application/json, or nil.
func JSONContent(content []*MediaType) *MediaType {
	for _, mt := range content {
		if httputil.IsJSONMediaType(mt.ContentType) {
			return mt
		}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeDocument(node)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

func decodeDocument(node *yaml.Node) (*Document, error) {
	root := content(node)
	if root == nil || root.Kind == 0 {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "document root must be a mapping")
	}

	doc := &Document{root: root}
	err := eachPair(root, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "openapi":
			doc.OpenAPI, err = scalar(value)
		case "info":
			err = eachPair(value, func(k string, v *yaml.Node) error {
				if k != "title" {
					return nil
				}
				title, err := scalar(v)
				doc.Title = title
				return err
			})
		case "paths":
			doc.Paths, err = decodePaths(value)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc.OpenAPI != "" && !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, nodeError(root, "unsupported OpenAPI version "+doc.OpenAPI+": only 3.x documents are supported")
	}
	return doc, nil
}

func decodePaths(node *yaml.Node) ([]*PathItem, error) {
	var items []*PathItem
	err := eachPair(node, func(path string, value *yaml.Node) error {
		if strings.HasPrefix(path, "x-") {
			return nil
		}
		item, err := decodePathItem(path, value)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	return items, err
}

func decodePathItem(path string, node *yaml.Node) (*PathItem, error) {
	item := &PathItem{Path: path}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch {
		case key == "parameters":
			params, err := decodeParameters(value)
			if err != nil {
				return err
			}
			item.Parameters = params
		case httputil.IsHTTPMethod(key):
			op, err := decodeOperation(strings.ToLower(key), value)
			if err != nil {
				return err
			}
			item.Operations = append(item.Operations, op)
		}
		return nil
	})
	return item, err
}

func decodeOperation(method string, node *yaml.Node) (*Operation, error) {
	op := &Operation{Method: method}
	if node != nil {
		op.Line = node.Line
	}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "operationId":
			op.OperationID, err = scalar(value)
		case "summary":
			op.Summary, err = scalar(value)
		case "parameters":
			op.Parameters, err = decodeParameters(value)
		case "requestBody":
			op.RequestBody, err = decodeRequestBody(value)
		case "responses":
			err = eachPair(value, func(code string, v *yaml.Node) error {
				if strings.HasPrefix(code, "x-") {
					return nil
				}
				resp, err := decodeResponse(v)
				if err != nil {
					return err
				}
				resp.StatusCode = code
				op.Responses = append(op.Responses, resp)
				return nil
			})
		}
		return err
	})
	return op, err
}

func decodeParameters(node *yaml.Node) ([]*Parameter, error) {
	var out []*Parameter
	err := eachItem(node, func(item *yaml.Node) error {
		p, err := decodeParameter(item)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func decodeParameter(node *yaml.Node) (*Parameter, error) {
	p := &Parameter{}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			p.Ref, err = scalar(value)
		case "name":
			p.Name, err = scalar(value)
		case "in":
			p.In, err = scalar(value)
		case "required":
			p.Required, err = boolean(value)
		case "schema":
			p.Schema, err = decodeSchema(value)
		}
		return err
	})
	return p, err
}

func decodeRequestBody(node *yaml.Node) (*RequestBody, error) {
	rb := &RequestBody{}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			rb.Ref, err = scalar(value)
		case "required":
			rb.Required, err = boolean(value)
		case "content":
			rb.Content, err = decodeContent(value)
		}
		return err
	})
	return rb, err
}

func decodeResponse(node *yaml.Node) (*Response, error) {
	resp := &Response{}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		var err error
		switch key {
		case "$ref":
			resp.Ref, err = scalar(value)
		case "description":
			resp.Description, err = scalar(value)
		case "content":
			resp.Content, err = decodeContent(value)
		}
		return err
	})
	return resp, err
}

func decodeContent(node *yaml.Node) ([]*MediaType, error) {
	var out []*MediaType
	err := eachPair(node, func(contentType string, value *yaml.Node) error {
		mt := &MediaType{ContentType: contentType}
		err := eachPair(value, func(key string, v *yaml.Node) error {
			if key != "schema" {
				return nil
			}
			s, err := decodeSchema(v)
			mt.Schema = s
			return err
		})
		if err != nil {
			return err
		}
		out = append(out, mt)
		return nil
	})
	return out, err
}
