package generator

import (
	"fmt"

	"github.com/erraggy/oafront/internal/httputil"
	"github.com/erraggy/oafront/internal/opid"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

// OperationIDFunc assigns the id of one operation. used holds every id handed
// out so far in the current call; the function must return a value not in
// used and record it there.
type OperationIDFunc func(path, method string, op *parser.Operation, used map[string]bool) string

// DefaultOperationID is the OperationIDFunc used when none is configured.
var DefaultOperationID OperationIDFunc = opid.Generate

// Operation is one path × method pair prepared for both emitters.
//
// Definition is a copy of the document's operation with path-level parameters
// merged in and parameter, request body and response references dereferenced.
// The source document is never modified.
type Operation struct {
	OperationID string
	Path        string
	Method      string
	Definition  *parser.Operation

	// SuccessCount is the number of responses whose status starts with '2'.
	SuccessCount int
	// IsFullResponse is true unless exactly one success response exists.
	IsFullResponse bool
	// NoContentSuccess is true when the only success response is 204.
	NoContentSuccess bool
}

// ExtractOperations flattens the document's paths into one record per
// (path, method) in document order and assigns every record a unique id.
// A nil idFunc selects DefaultOperationID.
func ExtractOperations(doc *parser.Document, idFunc OperationIDFunc) ([]*Operation, error) {
	return extractOperations(doc, idFunc, newCollector(nil))
}

func extractOperations(doc *parser.Document, idFunc OperationIDFunc, c *collector) ([]*Operation, error) {
	if idFunc == nil {
		idFunc = DefaultOperationID
	}
	if doc == nil {
		return nil, nil
	}

	used := map[string]bool{
		opid.ConfigBinding:     true,
		opid.SetBaseURLBinding: true,
	}
	seen := make(map[string]bool)
	var ops []*Operation

	for _, item := range doc.Paths {
		for _, src := range item.Operations {
			id := idFunc(item.Path, src.Method, src, used)
			if id == "" || seen[id] {
				return nil, &oaserrors.ConfigError{
					Option:  "operation id func",
					Value:   id,
					Message: fmt.Sprintf("returned an empty or duplicate id for %s %s", src.Method, item.Path),
				}
			}
			if opid.IsTaken(id) {
				return nil, &oaserrors.ConfigError{
					Option:  "operation id func",
					Value:   id,
					Message: fmt.Sprintf("returned %q for %s %s, a name the client module already binds", id, src.Method, item.Path),
				}
			}
			seen[id] = true
			used[id] = true

			def, err := prepareDefinition(doc, item, src)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", src.Method, item.Path, err)
			}

			op := &Operation{
				OperationID: id,
				Path:        item.Path,
				Method:      src.Method,
				Definition:  def,
			}
			var success string
			for _, resp := range def.Responses {
				if httputil.IsSuccessStatus(resp.StatusCode) {
					op.SuccessCount++
					success = resp.StatusCode
				}
			}
			op.IsFullResponse = op.SuccessCount != 1
			op.NoContentSuccess = !op.IsFullResponse && success == "204"
			switch {
			case op.IsFullResponse:
				c.add(op, "responses", SeverityInfo, fmt.Sprintf(
					"%d success responses; the call returns the full response envelope", op.SuccessCount))
			case op.NoContentSuccess:
				c.add(op, "responses.204", SeverityInfo,
					"the only success response is 204; the call still parses the empty body with response.json(), which rejects")
			}

			c.log.Debug("extracted operation",
				"operationId", id,
				"method", src.Method,
				"path", item.Path,
				"fullResponse", op.IsFullResponse,
			)
			ops = append(ops, op)
		}
	}
	return ops, nil
}

// prepareDefinition copies src, merges path-level parameters and resolves
// parameter, request body and response references.
func prepareDefinition(doc *parser.Document, item *parser.PathItem, src *parser.Operation) (*parser.Operation, error) {
	def := *src

	params, err := mergeParameters(doc, item.Parameters, src.Parameters)
	if err != nil {
		return nil, err
	}
	def.Parameters = params

	if src.RequestBody != nil && src.RequestBody.Ref != "" {
		rb, err := doc.LookupRequestBody(src.RequestBody.Ref)
		if err != nil {
			return nil, err
		}
		def.RequestBody = rb
	}

	def.Responses = make([]*parser.Response, 0, len(src.Responses))
	for _, resp := range src.Responses {
		if resp.Ref != "" {
			resolved, err := doc.LookupResponse(resp.Ref)
			if err != nil {
				return nil, err
			}
			resolved.StatusCode = resp.StatusCode
			resp = resolved
		}
		def.Responses = append(def.Responses, resp)
	}
	return &def, nil
}

// mergeParameters returns path-level parameters followed by operation-level
// ones. An operation parameter with the same (name, in) replaces the
// path-level entry in place.
func mergeParameters(doc *parser.Document, pathLevel, opLevel []*parser.Parameter) ([]*parser.Parameter, error) {
	type key struct{ name, in string }

	var merged []*parser.Parameter
	index := make(map[key]int)

	for _, list := range [][]*parser.Parameter{pathLevel, opLevel} {
		for _, p := range list {
			if p.Ref != "" {
				resolved, err := doc.LookupParameter(p.Ref)
				if err != nil {
					return nil, err
				}
				p = resolved
			}
			k := key{p.Name, p.In}
			if i, ok := index[k]; ok {
				merged[i] = p
				continue
			}
			index[k] = len(merged)
			merged = append(merged, p)
		}
	}
	return merged, nil
}
