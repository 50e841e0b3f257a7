// Package oafront generates frontend HTTP clients from OpenAPI 3.x documents.
//
// Given an OpenAPI document, oafront produces two artifacts that always agree
// with each other:
//
//   - <name>-types.d.ts: TypeScript declarations for every operation's request
//     and response shapes, plus an aggregate client interface
//   - <name>.ts or <name>.js: one fetch-based async function per operation
//
// # Packages
//
//   - parser: order-preserving OpenAPI decoding and local $ref resolution
//   - generator: operation extraction, type resolution and the two emitters
//   - oaserrors: typed errors for errors.Is and errors.As
//
// # Example
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithName("petstore"),
//		generator.WithLanguage(generator.LanguageTS),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./src/api"); err != nil {
//		log.Fatal(err)
//	}
//
// The oafront command wraps the same API; see cmd/oafront.
package oafront
