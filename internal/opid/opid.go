// Package opid assigns every operation a unique identifier that is safe to
// use as a JavaScript binding name.
package opid

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/erraggy/oafront/internal/naming"
	"github.com/erraggy/oafront/parser"
)

// maxSuffix bounds the collision search; a document would need this many
// identical names to reach it.
const maxSuffix = 10000

// Module-level bindings of the generated client module.
const (
	ConfigBinding     = "config"
	SetBaseURLBinding = "setBaseUrl"
)

// taken lists names an exported call must not shadow: the client module's own
// bindings and the globals every call body references.
var taken = map[string]bool{
	ConfigBinding:     true,
	SetBaseURLBinding: true,
	"fetch":           true,
	"URLSearchParams": true,
	"JSON":            true,
	"Object":          true,
	"Error":           true,
}

// IsTaken reports whether name is bound by the client module or referenced as
// a global by a generated call, so no operation may use it.
func IsTaken(name string) bool {
	return taken[name]
}

// Generate returns the id for the operation at path/method and records it in used.
//
// The declared operationId wins when it can be made into a valid identifier
// (runs of invalid runes become camelCase boundaries).
// Otherwise the id is derived from the method and the path segments:
// "get /pets/{petId}" becomes "getPetsPetId". A name already present in used
// gets a numeric suffix starting at 2: "getPets", "getPets2", "getPets3".
// Names for which IsTaken is true are treated as already used.
func Generate(path, method string, op *parser.Operation, used map[string]bool) string {
	base := ""
	if op != nil {
		base = sanitize(op.OperationID)
	}
	if base == "" {
		base = derive(path, method)
	}

	id := unique(base, used)
	used[id] = true
	return id
}

// unique resolves a collision by appending the smallest free suffix n >= 2.
func unique(base string, used map[string]bool) string {
	if !used[base] && !taken[base] {
		return base
	}
	for n := 2; n <= maxSuffix; n++ {
		candidate := fmt.Sprintf("%s%d", base, n)
		if !used[candidate] && !taken[candidate] {
			return candidate
		}
	}
	return fmt.Sprintf("%s%d", base, maxSuffix+1)
}

// sanitize turns an operationId into a usable identifier, or "" when nothing
// usable remains. Runs of characters that cannot appear in an identifier
// become camelCase word boundaries.
func sanitize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if naming.IsIdentifier(id) && !naming.IsReservedWord(id) {
		return id
	}

	words := strings.FieldsFunc(id, func(r rune) bool {
		return r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := strings.TrimLeftFunc(naming.ToCamelCase(strings.Join(words, " ")), unicode.IsDigit)
	if !naming.IsIdentifier(out) || naming.IsReservedWord(out) {
		return ""
	}
	return out
}

// derive builds "<method><Segment><Segment>..." from a path template.
func derive(path, method string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, segment := range strings.Split(path, "/") {
		for _, word := range strings.FieldsFunc(segment, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			b.WriteString(naming.Capitalize(word))
		}
	}
	out := b.String()
	if out == strings.ToLower(method) {
		out += "Root"
	}
	return out
}
