package generator

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oafront/internal/testutil"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

func TestNew(t *testing.T) {
	g := New()

	require.NotNil(t, g, "New() should not return nil")
	assert.Equal(t, "api", g.Name)
	assert.Equal(t, LanguageTS, g.Language)
	assert.False(t, g.StrictMode)
	assert.True(t, g.IncludeInfo)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"ts", LanguageTS, false},
		{"TypeScript", LanguageTS, false},
		{" js ", LanguageJS, false},
		{"javascript", LanguageJS, false},
		{"go", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oaserrors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "api-types.d.ts", TypesFileName("api"))
	assert.Equal(t, "api.ts", ImplementationFileName("api", LanguageTS))
	assert.Equal(t, "petstore.js", ImplementationFileName("petstore", LanguageJS))
}

func TestGenerateWithOptions_RequiresInputSource(t *testing.T) {
	_, err := GenerateWithOptions(WithName("test"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source")
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestGenerateWithOptions_OnlyOneInputSource(t *testing.T) {
	_, err := GenerateWithOptions(
		WithFilePath("test.yaml"),
		WithBytes([]byte(testutil.PetstoreYAML)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify exactly one input source")
}

func TestWithOptions(t *testing.T) {
	t.Run("WithName rejects non-identifiers", func(t *testing.T) {
		for _, name := range []string{"", "my-api", "1api", "a b", "$api"} {
			err := WithName(name)(&generateConfig{})
			require.Error(t, err, name)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig), name)
		}
	})

	t.Run("WithName", func(t *testing.T) {
		cfg := &generateConfig{}
		require.NoError(t, WithName("petstore_v2")(cfg))
		assert.Equal(t, "petstore_v2", cfg.name)
	})

	t.Run("WithLanguage", func(t *testing.T) {
		cfg := &generateConfig{}
		require.NoError(t, WithLanguage("javascript")(cfg))
		assert.Equal(t, LanguageJS, cfg.language)
		require.Error(t, WithLanguage("rust")(cfg))
	})

	t.Run("WithReader nil", func(t *testing.T) {
		require.Error(t, WithReader(nil)(&generateConfig{}))
	})

	t.Run("WithOperationIDFunc nil", func(t *testing.T) {
		require.Error(t, WithOperationIDFunc(nil)(&generateConfig{}))
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := applyOptions(WithBytes(nil))
		require.NoError(t, err)
		assert.Equal(t, DefaultName, cfg.name)
		assert.Equal(t, LanguageTS, cfg.language)
		assert.True(t, cfg.includeInfo)
	})
}

func TestGenerateWithOptions_Sources(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))
	parsed, err := parser.ParseWithOptions(parser.WithBytes([]byte(testutil.PetstoreYAML)))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "oafront-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(testutil.PetstoreYAML))
	}))
	defer srv.Close()

	sources := map[string][]Option{
		"file":   {WithFilePath(path)},
		"url":    {WithFilePath(srv.URL + "/openapi.yaml"), WithUserAgent("oafront-test")},
		"bytes":  {WithBytes([]byte(testutil.PetstoreYAML))},
		"reader": {WithReader(bytes.NewReader([]byte(testutil.PetstoreYAML)))},
		"parsed": {WithParsed(*parsed)},
	}
	for name, opts := range sources {
		t.Run(name, func(t *testing.T) {
			result, err := GenerateWithOptions(opts...)
			require.NoError(t, err)

			assert.Equal(t, 4, result.GeneratedOperations)
			assert.True(t, result.Success)
			require.NotNil(t, result.GetFile("api-types.d.ts"))
			require.NotNil(t, result.GetFile("api.ts"))
			assert.Nil(t, result.GetFile("api.js"))
		})
	}
}

func TestGenerateWithOptions_ParseError(t *testing.T) {
	_, err := GenerateWithOptions(WithBytes([]byte("openapi: [unclosed")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestGenerateWithOptions_UnsupportedTypeIsFatal(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /n:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema: {type: integer}
`
	result, err := GenerateWithOptions(WithBytes([]byte(src)))
	require.Error(t, err)
	assert.Nil(t, result, "no partial output")
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedType))
}

const warningYAML = `openapi: 3.0.0
info: {title: t, version: '1'}
paths:
  /upload:
    post:
      requestBody:
        content:
          application/octet-stream: {}
      responses:
        '200': {description: ok}
        '202': {description: queued}
`

func TestGenerateWithOptions_Issues(t *testing.T) {
	result, err := GenerateWithOptions(WithBytes([]byte(warningYAML)))
	require.NoError(t, err)

	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, 1, result.InfoCount)
	assert.True(t, result.HasWarnings())
	assert.False(t, result.HasCriticalIssues())
	assert.True(t, result.Success)
	assert.Len(t, result.Issues, 2)

	filtered, err := GenerateWithOptions(WithBytes([]byte(warningYAML)), WithIncludeInfo(false))
	require.NoError(t, err)
	assert.Len(t, filtered.Issues, 1)
	assert.Equal(t, 0, filtered.InfoCount)
}

func TestGenerateWithOptions_StrictMode(t *testing.T) {
	result, err := GenerateWithOptions(WithBytes([]byte(warningYAML)), WithStrictMode(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
	require.NotNil(t, result, "strict mode still returns the result for inspection")
	assert.Equal(t, 1, result.WarningCount)

	_, err = GenerateWithOptions(WithBytes([]byte(testutil.PetstoreYAML)), WithStrictMode(true))
	assert.NoError(t, err)
}

func TestGenerateWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := GenerateWithOptions(WithBytes([]byte(testutil.PetstoreYAML)), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "extracted operation")
	assert.Contains(t, buf.String(), "generated client")
}

func TestProcessOpenAPI(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	out, err := ProcessOpenAPI(Request{Schema: doc, Name: "pets", URL: "https://example.com/spec", Language: LanguageJS})
	require.NoError(t, err)

	assert.Contains(t, out.Types, "export interface Pets {")
	assert.Contains(t, out.Types, "// Source: https://example.com/spec")
	assert.Contains(t, out.Implementation, "import('./pets-types.d.ts').Pets['listPets']")

	_, err = ProcessOpenAPI(Request{})
	require.Error(t, err)

	_, err = ProcessOpenAPI(Request{Schema: doc, Name: "bad-name"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestProcessOpenAPI_Language(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)

	tests := []struct {
		name     string
		language Language
		wantErr  bool
		wantImpl string
	}{
		{name: "default", language: "", wantImpl: "import type { Api } from './api-types'"},
		{name: "ts", language: LanguageTS, wantImpl: "import type { Api } from './api-types'"},
		{name: "js", language: LanguageJS, wantImpl: "import('./api-types.d.ts').Api['listPets']"},
		{name: "long form", language: "JavaScript", wantImpl: "import('./api-types.d.ts').Api['listPets']"},
		{name: "unknown", language: "python", wantErr: true},
		{name: "typo", language: "tsx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ProcessOpenAPI(Request{Schema: doc, Language: tt.language})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oaserrors.ErrConfig))
				assert.Contains(t, err.Error(), string(tt.language))
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.Implementation, tt.wantImpl)
		})
	}
}

func TestProcessOpenAPI_Deterministic(t *testing.T) {
	doc := testutil.ParseDocument(t, testutil.PetstoreYAML)
	req := Request{Schema: doc, Name: "api", Language: LanguageTS}

	first, err := ProcessOpenAPI(req)
	require.NoError(t, err)
	second, err := ProcessOpenAPI(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
