// Package parser decodes OpenAPI 3.x documents into an order-preserving model.
//
// Import path: github.com/erraggy/oafront/parser
//
// Paths, methods, parameters, responses, content types and schema properties
// keep the order in which the document declares them. Generated code depends on
// that order, so the model is built directly from the go.yaml.in/yaml/v4 node
// tree rather than from Go maps.
//
// # Loading
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range result.Document.Paths {
//		for _, op := range item.Operations {
//			fmt.Println(op.Method, item.Path)
//		}
//	}
//
// WithFilePath accepts local paths, http(s) URLs, and "-" for stdin through
// WithReader in the CLI.
//
// # References
//
// Only local references ("#/components/schemas/Pet") are supported. They are
// resolved on demand against the raw node tree with [Document.LookupSchema],
// [Document.LookupParameter], [Document.LookupRequestBody] and
// [Document.LookupResponse]. Each lookup decodes a fresh value; nothing is cached.
// Cycle detection belongs to the caller walking the schema graph.
package parser
