// Package generator turns OpenAPI 3.x documents into frontend clients.
//
// A generation call produces two modules that always agree with each other:
//
//   - <name>-types.d.ts declares a request interface and one response
//     interface per documented status for every operation, plus an exported
//     aggregate interface (e.g. Api) describing the client.
//   - <name>.ts or <name>.js exports one fetch-based async function per
//     operation, typed against the aggregate interface.
//
// Both modules are built from one operation list produced by
// [ExtractOperations], so operation ids and property names are derived once.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithName("api"),
//	    generator.WithLanguage(generator.LanguageTS),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.WriteFiles("./src/client"); err != nil {
//	    log.Fatal(err)
//	}
//
// For an in-memory document use [ProcessOpenAPI]:
//
//	out, err := generator.ProcessOpenAPI(generator.Request{
//	    Schema:   doc,
//	    Name:     "api",
//	    Language: generator.LanguageJS,
//	})
//
// # Response Shapes
//
// An operation with exactly one 2xx response resolves to that response's body
// and throws when the server answers with a non-2xx status. Any other
// operation resolves to a FullResponse envelope of { statusCode, headers, body }
// for every documented status. A 204 response, and any status without a
// standard reason phrase, is typed as undefined.
//
// # Schemas
//
// Only application/json content is typed. $ref pointers are dereferenced
// against the document on every use. A schema that refers back to itself
// fails with an [oaserrors.ReferenceError] whose IsCircular field is set.
//
// # Issues
//
// Decisions and skipped input are recorded as [GenerateIssue] values on the
// result rather than failing the call. [WithStrictMode] turns warnings into
// an error.
package generator
