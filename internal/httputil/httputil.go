// Package httputil provides HTTP method and status code helpers shared by the
// parser and generator.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants, in the order OpenAPI path items list them.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

var methods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
}

// IsHTTPMethod reports whether key names an operation inside a path item.
// Matching is case-insensitive.
func IsHTTPMethod(key string) bool {
	return methods[strings.ToLower(key)]
}

// reasonPhrases is the standard status code to reason phrase table used for
// response interface names. It mirrors the table shipped with Node's http
// module so generated names stay stable across toolchains.
var reasonPhrases = map[string]string{
	// 1xx Informational
	"100": "Continue", "101": "Switching Protocols", "102": "Processing", "103": "Early Hints",
	// 2xx Success
	"200": "OK", "201": "Created", "202": "Accepted", "203": "Non-Authoritative Information",
	"204": "No Content", "205": "Reset Content", "206": "Partial Content", "207": "Multi-Status",
	"208": "Already Reported", "226": "IM Used",
	// 3xx Redirection
	"300": "Multiple Choices", "301": "Moved Permanently", "302": "Found", "303": "See Other",
	"304": "Not Modified", "305": "Use Proxy", "307": "Temporary Redirect", "308": "Permanent Redirect",
	// 4xx Client Error
	"400": "Bad Request", "401": "Unauthorized", "402": "Payment Required", "403": "Forbidden",
	"404": "Not Found", "405": "Method Not Allowed", "406": "Not Acceptable",
	"407": "Proxy Authentication Required", "408": "Request Timeout", "409": "Conflict",
	"410": "Gone", "411": "Length Required", "412": "Precondition Failed",
	"413": "Payload Too Large", "414": "URI Too Long", "415": "Unsupported Media Type",
	"416": "Range Not Satisfiable", "417": "Expectation Failed", "418": "I'm a Teapot",
	"421": "Misdirected Request", "422": "Unprocessable Entity", "423": "Locked",
	"424": "Failed Dependency", "425": "Too Early", "426": "Upgrade Required",
	"428": "Precondition Required", "429": "Too Many Requests",
	"431": "Request Header Fields Too Large", "451": "Unavailable For Legal Reasons",
	// 5xx Server Error
	"500": "Internal Server Error", "501": "Not Implemented", "502": "Bad Gateway",
	"503": "Service Unavailable", "504": "Gateway Timeout", "505": "HTTP Version Not Supported",
	"506": "Variant Also Negotiates", "507": "Insufficient Storage", "508": "Loop Detected",
	"509": "Bandwidth Limit Exceeded", "510": "Not Extended", "511": "Network Authentication Required",
}

// ReasonPhrase returns the standard reason phrase for a status code such as
// "404". The second result is false for codes outside the table, including
// "default" and wildcard patterns.
func ReasonPhrase(code string) (string, bool) {
	phrase, ok := reasonPhrases[code]
	return phrase, ok
}

// IsSuccessStatus reports whether a response key counts as a success entry:
// any key beginning with '2' ("200", "204", "2XX").
func IsSuccessStatus(code string) bool {
	return strings.HasPrefix(code, "2")
}

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// IsJSONMediaType reports whether a content type key is one of the
// application/json family ("application/json", "application/json; charset=utf-8").
func IsJSONMediaType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "application/json")
}
