// Package naming provides the case conversions and identifier checks used to
// turn operation ids, paths and status phrases into TypeScript names.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
