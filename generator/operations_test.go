package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oafront/internal/testutil"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

func TestExtractOperations_Petstore(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	require.Len(t, ops, 4)

	want := []struct {
		id, method, path string
		full             bool
	}{
		{"listPets", "get", "/pets", false},
		{"createPet", "post", "/pets", false},
		{"showPetById", "get", "/pets/{petId}", false},
		{"deletePet", "delete", "/pets/{petId}", false},
	}
	for i, w := range want {
		assert.Equal(t, w.id, ops[i].OperationID)
		assert.Equal(t, w.method, ops[i].Method)
		assert.Equal(t, w.path, ops[i].Path)
		assert.Equal(t, w.full, ops[i].IsFullResponse, w.id)
		assert.Equal(t, 1, ops[i].SuccessCount, w.id)
	}
}

func TestExtractOperations_EmptyPaths(t *testing.T) {
	doc := testutil.ParseDocument(t, "openapi: 3.0.0\ninfo: {title: t, version: '1'}\npaths: {}\n")

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestExtractOperations_UniqueIDs(t *testing.T) {
	// Every operation here either shares an operationId or derives the same name.
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /users:
    get:
      operationId: getUser
      responses: {'200': {description: ok}}
    post:
      operationId: getUser
      responses: {'200': {description: ok}}
  /users/{id}:
    get:
      operationId: getUser
      responses: {'200': {description: ok}}
  /user-s:
    get:
      responses: {'200': {description: ok}}
  /user_s:
    get:
      responses: {'200': {description: ok}}
`
	doc := testutil.ParseDocument(t, src)

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	require.Len(t, ops, 5)

	seen := make(map[string]bool)
	for _, op := range ops {
		assert.False(t, seen[op.OperationID], "duplicate id %s", op.OperationID)
		seen[op.OperationID] = true
	}
	assert.Equal(t, "getUser", ops[0].OperationID)
	assert.Equal(t, "getUser2", ops[1].OperationID)
	assert.Equal(t, "getUser3", ops[2].OperationID)
}

func TestExtractOperations_FullResponse(t *testing.T) {
	tests := []struct {
		name      string
		responses string
		success   int
		full      bool
		noContent bool
	}{
		{"one success", "{'200': {description: ok}}", 1, false, false},
		{"one success with errors", "{'201': {description: ok}, '400': {description: bad}, default: {description: err}}", 1, false, false},
		{"no success", "{'404': {description: missing}}", 0, true, false},
		{"no responses", "{}", 0, true, false},
		{"two success", "{'200': {description: ok}, '202': {description: later}}", 2, true, false},
		{"wildcard counts", "{'2XX': {description: ok}, '200': {description: ok}}", 2, true, false},
		{"only 204", "{'204': {description: gone}, '404': {description: missing}}", 1, false, true},
		{"204 among others", "{'200': {description: ok}, '204': {description: gone}}", 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "openapi: 3.0.0\ninfo: {title: t, version: '1'}\npaths:\n  /x:\n    get:\n      responses: " + tt.responses + "\n"
			doc := testutil.ParseDocument(t, src)

			ops, err := ExtractOperations(doc, nil)
			require.NoError(t, err)
			require.Len(t, ops, 1)
			assert.Equal(t, tt.success, ops[0].SuccessCount)
			assert.Equal(t, tt.full, ops[0].IsFullResponse)
			assert.Equal(t, tt.noContent, ops[0].NoContentSuccess)
		})
	}
}

func TestExtractOperations_NoContentSuccessIssue(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	c := newCollector(nil)
	ops, err := extractOperations(doc, nil, c)
	require.NoError(t, err)
	require.Len(t, ops, 4)
	assert.True(t, ops[3].NoContentSuccess)

	require.Len(t, c.issues, 1)
	issue := c.issues[0]
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, "deletePet", issue.Operation)
	assert.Equal(t, "paths./pets/{petId}.delete.responses.204", issue.Path)
	assert.Contains(t, issue.Message, "response.json()")
}

func TestExtractOperations_AvoidsClientModuleNames(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /config:
    get:
      operationId: config
      responses: {'200': {description: ok}}
  /base-url:
    put:
      operationId: setBaseUrl
      responses: {'200': {description: ok}}
  /fetch:
    post:
      operationId: fetch
      responses: {'200': {description: ok}}
  /errors:
    get:
      operationId: Error
      responses: {'200': {description: ok}}
  /config2:
    get:
      operationId: config2
      responses: {'200': {description: ok}}
`
	doc := testutil.ParseDocument(t, src)

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)

	var ids []string
	for _, op := range ops {
		ids = append(ids, op.OperationID)
	}
	assert.Equal(t, []string{"config2", "setBaseUrl2", "fetch2", "Error2", "config22"}, ids)

	impl := BuildImplementation(ops, "api", LanguageTS).Render()
	assert.Equal(t, 1, strings.Count(impl, "const config "))
	assert.Equal(t, 1, strings.Count(impl, "export const setBaseUrl:"))
	assert.Contains(t, impl, "export const config2: Api['config2']")
	assert.Contains(t, impl, "export const fetch2: Api['fetch2']")
	assert.NotContains(t, impl, "export const fetch:")
}

func TestExtractOperations_RejectsClientModuleNameFromIDFunc(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	tests := []string{"config", "setBaseUrl", "fetch", "URLSearchParams", "JSON", "Object", "Error"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			idFunc := func(path, method string, op *parser.Operation, used map[string]bool) string {
				return name
			}
			_, err := ExtractOperations(doc, idFunc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
			assert.Contains(t, err.Error(), "already binds")
		})
	}
}

func TestExtractOperations_IDFuncSeesClientModuleNames(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	var seen map[string]bool
	idFunc := func(path, method string, op *parser.Operation, used map[string]bool) string {
		seen = used
		return DefaultOperationID(path, method, op, used)
	}
	_, err := ExtractOperations(doc, idFunc)
	require.NoError(t, err)
	assert.True(t, seen["config"])
	assert.True(t, seen["setBaseUrl"])
}

func TestExtractOperations_MergesPathParameters(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /items/{id}:
    parameters:
      - {name: id, in: path, required: true, schema: {type: string}}
      - {name: verbose, in: query, schema: {type: boolean}}
    get:
      parameters:
        - {name: verbose, in: query, required: true, schema: {type: integer}}
        - {name: id, in: header, schema: {type: string}}
      responses: {'200': {description: ok}}
`
	doc := testutil.ParseDocument(t, src)

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	params := ops[0].Definition.Parameters
	require.Len(t, params, 3)
	assert.Equal(t, "id", params[0].Name)
	assert.Equal(t, "path", params[0].In)
	assert.Equal(t, "verbose", params[1].Name)
	assert.True(t, params[1].Required, "operation-level parameter overrides the path-level one")
	assert.Equal(t, "integer", params[1].Schema.Type)
	assert.Equal(t, "header", params[2].In)

	// The document itself is left untouched.
	assert.Len(t, doc.Paths[0].Operations[0].Parameters, 2)
	assert.Empty(t, doc.Paths[0].Operations[0].OperationID)
}

func TestExtractOperations_DereferencesComponents(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /things:
    post:
      parameters:
        - $ref: '#/components/parameters/Trace'
      requestBody:
        $ref: '#/components/requestBodies/Thing'
      responses:
        '201':
          $ref: '#/components/responses/Created'
components:
  parameters:
    Trace: {name: trace, in: header, schema: {type: string}}
  requestBodies:
    Thing:
      content:
        application/json:
          schema: {type: object, properties: {name: {type: string}}}
  responses:
    Created:
      description: created
`
	doc := testutil.ParseDocument(t, src)

	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	def := ops[0].Definition
	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "trace", def.Parameters[0].Name)
	require.NotNil(t, def.RequestBody)
	require.Len(t, def.RequestBody.Content, 1)
	require.Len(t, def.Responses, 1)
	assert.Equal(t, "201", def.Responses[0].StatusCode)
	assert.Equal(t, "created", def.Responses[0].Description)
	assert.Equal(t, 1, ops[0].SuccessCount)
}

func TestExtractOperations_BrokenParameterRef(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /x:
    get:
      parameters:
        - $ref: '#/components/parameters/Missing'
      responses: {'200': {description: ok}}
`
	doc := testutil.ParseDocument(t, src)

	_, err := ExtractOperations(doc, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))
}

func TestExtractOperations_CustomIDFunc(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	var calls []string
	idFunc := func(path, method string, op *parser.Operation, used map[string]bool) string {
		calls = append(calls, method+" "+path)
		id := method + "Op"
		for n := 2; used[id]; n++ {
			id = method + "Op" + string(rune('0'+n))
		}
		used[id] = true
		return id
	}

	ops, err := ExtractOperations(doc, idFunc)
	require.NoError(t, err)
	assert.Equal(t, []string{"get /pets", "post /pets", "get /pets/{petId}", "delete /pets/{petId}"}, calls)
	assert.Equal(t, "getOp", ops[0].OperationID)
	assert.Equal(t, "getOp2", ops[2].OperationID)
}

func TestExtractOperations_RejectsDuplicateFromIDFunc(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	constant := func(string, string, *parser.Operation, map[string]bool) string { return "same" }

	_, err := ExtractOperations(doc, constant)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}
