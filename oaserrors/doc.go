// Package oaserrors provides structured error types for oafront.
//
// Import path: github.com/erraggy/oafront/oaserrors
//
// Every error type has a sentinel for use with [errors.Is]:
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrCircularReference]: matches [ReferenceError] with IsCircular=true
//   - [ErrUnsupportedType]: matches any [UnsupportedTypeError]
//   - [ErrConfig]: matches any [ConfigError]
//
// Use [errors.As] to reach the details:
//
//	_, err := generator.GenerateWithOptions(generator.WithFilePath("api.yaml"))
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) && refErr.IsCircular {
//		fmt.Println("cycle through", refErr.Ref)
//	}
package oaserrors
