// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/oafront/internal/fileutil"
	"github.com/erraggy/oafront/parser"
)

// PetstoreYAML is a small OpenAPI 3.0 document exercising parameters, a JSON
// request body, component references and several response codes.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        '200':
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/NewPet'
      responses:
        '201':
          description: Created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: string
    get:
      operationId: showPetById
      responses:
        '200':
          description: A pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        '404':
          description: Not found
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
    delete:
      operationId: deletePet
      responses:
        '204':
          description: Deleted
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
        name:
          type: string
        tag:
          type: string
    NewPet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
    Error:
      type: object
      properties:
        code:
          type: integer
        message:
          type: string
`

// ParseDocument decodes an inline YAML/JSON document and fails the test on error.
func ParseDocument(t *testing.T, src string) *parser.Document {
	t.Helper()

	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	require.NoError(t, err, "parse fixture")
	return result.Document
}

// WriteTempFile writes data to name inside a per-test temporary directory and
// returns the full path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, fileutil.OwnerReadWrite))
	return path
}

// Archive is a txtar fixture: an input document plus the outputs expected
// from it, stored side by side in one testdata file.
type Archive struct {
	Comment string
	files   map[string][]byte
	order   []string
}

// LoadArchive parses the txtar file at path.
func LoadArchive(t *testing.T, path string) *Archive {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	require.NoError(t, err, "read archive %s", path)

	a := &Archive{Comment: string(ar.Comment), files: make(map[string][]byte, len(ar.Files))}
	for _, f := range ar.Files {
		a.files[f.Name] = f.Data
		a.order = append(a.order, f.Name)
	}
	return a
}

// File returns the contents of a named section and fails the test when it
// is missing.
func (a *Archive) File(t *testing.T, name string) string {
	t.Helper()

	data, ok := a.files[name]
	require.True(t, ok, "archive has no section %q (have %v)", name, a.order)
	return string(data)
}

// Has reports whether the archive contains a named section.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[name]
	return ok
}
