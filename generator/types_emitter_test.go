package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oafront/internal/testutil"
	"github.com/erraggy/oafront/oaserrors"
)

func buildTypes(t *testing.T, src string) (*TypesModule, []*Operation) {
	t.Helper()

	doc := testutil.ParseDocument(t, src)
	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)
	m, err := BuildTypes(doc, ops, "api")
	require.NoError(t, err)
	return m, ops
}

func TestBuildTypes_Order(t *testing.T) {
	m, _ := buildTypes(t, testutil.PetstoreYAML)

	var names []string
	for _, decl := range m.Interfaces {
		names = append(names, decl.Name)
	}
	assert.Equal(t, []string{
		"FullResponse",
		"ListPetsRequest", "ListPetsResponseOK",
		"CreatePetRequest", "CreatePetResponseCreated",
		"ShowPetByIdRequest", "ShowPetByIdResponseOK", "ShowPetByIdResponseNotFound",
		"DeletePetRequest",
		"Api",
	}, names)

	client := m.Interface("Api")
	require.NotNil(t, client)
	assert.True(t, client.Exported)
	assert.Equal(t, MethodDecl{Name: "setBaseUrl", Params: "newUrl: string", Returns: "void"}, client.Methods[0])
	assert.Len(t, client.Methods, 5)
}

func TestBuildTypes_ParameterWinsOverBodyProperty(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /orgs/{orgId}/members:
    post:
      operationId: addMember
      parameters:
        - {name: orgId, in: path, required: true, schema: {type: string}}
        - {name: dryRun, in: query, schema: {type: boolean}}
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email, dryRun]
              properties:
                orgId: {type: integer}
                email: {type: string}
                dryRun: {type: string}
      responses:
        '201': {description: created}
`
	m, _ := buildTypes(t, src)

	req := m.Interface("AddMemberRequest")
	require.NotNil(t, req)
	assert.Equal(t, []FieldDecl{
		{Name: "orgId", Type: "string"},
		{Name: "dryRun", Type: "boolean", Optional: true},
		{Name: "email", Type: "string"},
	}, req.Fields)
}

func TestBuildTypes_RepeatedParameterName(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /items/{id}:
    get:
      operationId: getItem
      parameters:
        - {name: id, in: path, required: true, schema: {type: string}}
        - {name: id, in: query, schema: {type: integer}}
        - {name: id, in: header, schema: {type: boolean}}
        - {name: verbose, in: query, schema: {type: boolean}}
      responses:
        '200': {description: ok}
`
	doc := testutil.ParseDocument(t, src)
	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)

	c := newCollector(nil)
	m, err := newTypesBuilder(doc, c).build(ops, "api")
	require.NoError(t, err)

	req := m.Interface("GetItemRequest")
	require.NotNil(t, req)
	assert.Equal(t, []FieldDecl{
		{Name: "id", Type: "string"},
		{Name: "verbose", Type: "boolean", Optional: true},
	}, req.Fields)

	tests := []struct {
		in string
	}{
		{in: "query"},
		{in: "header"},
	}
	require.Len(t, c.issues, len(tests))
	for i, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			issue := c.issues[i]
			assert.Equal(t, SeverityWarning, issue.Severity)
			assert.Equal(t, "paths./items/{id}.get.parameters.id", issue.Path)
			assert.Contains(t, issue.Message, tt.in+` parameter "id"`)
			assert.Contains(t, issue.Message, "GetItemRequest")
		})
	}
}

func TestBuildTypes_ArrayBodyUsesItems(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /tags:
    put:
      requestBody:
        content:
          application/json; charset=utf-8:
            schema:
              type: array
              items:
                type: object
                properties:
                  label: {type: string}
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {type: object, properties: {label: {type: string}}}
`
	m, _ := buildTypes(t, src)

	req := m.Interface("PutTagsRequest")
	require.NotNil(t, req)
	assert.Equal(t, []FieldDecl{{Name: "label", Type: "string", Optional: true}}, req.Fields)

	client := m.Interface("Api")
	assert.Equal(t, "Promise<Array<PutTagsResponseOK>>", client.Methods[1].Returns)
}

func TestBuildTypes_NoContentResponses(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /sessions:
    delete:
      operationId: logout
      responses:
        '204':
          description: gone
          content:
            application/json:
              schema: {type: object, properties: {x: {type: string}}}
        '599':
          description: nonstandard
        default:
          description: error
`
	m, _ := buildTypes(t, src)

	for _, decl := range m.Interfaces {
		assert.False(t, strings.HasPrefix(decl.Name, "LogoutResponse"), "unexpected interface %s", decl.Name)
	}
	client := m.Interface("Api")
	assert.Equal(t, "Promise<undefined | undefined | undefined>", client.Methods[1].Returns)
}

func TestBuildTypes_FullResponseWrapsEveryMember(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /reports:
    post:
      operationId: createReport
      responses:
        '200': {description: ok}
        '202': {description: accepted}
        '400': {description: bad}
  /status:
    get:
      operationId: status
      responses:
        '503': {description: down}
  /noop:
    get:
      operationId: noop
      responses: {}
`
	m, _ := buildTypes(t, src)
	client := m.Interface("Api")

	assert.Equal(t,
		"Promise<FullResponse<CreateReportResponseOK> | FullResponse<CreateReportResponseAccepted> | FullResponse<CreateReportResponseBadRequest>>",
		client.Methods[1].Returns)
	assert.Equal(t, "Promise<FullResponse<StatusResponseServiceUnavailable>>", client.Methods[2].Returns)
	assert.Equal(t, "Promise<FullResponse<undefined>>", client.Methods[3].Returns)
}

func TestBuildTypes_SingleSuccessIsNotWrapped(t *testing.T) {
	m, _ := buildTypes(t, testutil.PetstoreYAML)

	for _, method := range m.Interface("Api").Methods {
		assert.NotContains(t, method.Returns, FullResponseType, method.Name)
	}
}

func TestBuildTypes_ReasonPhraseNames(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /brew:
    post:
      operationId: brew
      responses:
        '203': {description: x}
        '418': {description: x}
`
	m, _ := buildTypes(t, src)

	assert.NotNil(t, m.Interface("BrewResponseNonAuthoritativeInformation"))
	assert.NotNil(t, m.Interface("BrewResponseIMATeapot"))
}

func TestBuildTypes_UnsupportedRoot(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /name:
    get:
      operationId: getName
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema: {type: string}
`
	doc := testutil.ParseDocument(t, src)
	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)

	_, err = BuildTypes(doc, ops, "api")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedType))
	assert.Contains(t, err.Error(), "type string not supported in getName responses 200")
}

func TestBuildTypes_IssuesForSkippedContent(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /upload:
    post:
      operationId: upload
      requestBody:
        content:
          multipart/form-data:
            schema: {type: object, properties: {file: {type: string}}}
      responses:
        '200':
          description: ok
          content:
            text/plain:
              schema: {type: string}
`
	doc := testutil.ParseDocument(t, src)
	ops, err := ExtractOperations(doc, nil)
	require.NoError(t, err)

	c := newCollector(nil)
	m, err := newTypesBuilder(doc, c).build(ops, "api")
	require.NoError(t, err)

	assert.Empty(t, m.Interface("UploadRequest").Fields)
	assert.Empty(t, m.Interface("UploadResponseOK").Fields)

	require.Len(t, c.issues, 2)
	assert.Equal(t, SeverityWarning, c.issues[0].Severity)
	assert.Equal(t, "paths./upload.post.requestBody", c.issues[0].Path)
	assert.Equal(t, "upload", c.issues[0].Operation)
	assert.Contains(t, c.issues[0].Message, "multipart/form-data")
	assert.Equal(t, "paths./upload.post.responses.200", c.issues[1].Path)
}

func TestTypesModule_Render(t *testing.T) {
	m := &TypesModule{
		Header: []string{"// header"},
		Interfaces: []*InterfaceDecl{
			{Name: "Empty"},
			{
				Name:     "Client",
				Exported: true,
				Fields:   []FieldDecl{{Name: "it's", Type: "string", Optional: true}},
				Methods:  []MethodDecl{{Name: "ping", Params: "", Returns: "void"}},
			},
		},
	}

	want := `// header

interface Empty {
}

export interface Client {
  'it\'s'?: string;
  ping(): void;
}
`
	assert.Equal(t, want, m.Render())
}
