package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/oafront/internal/naming"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

// DefaultName is the module name used when none is given.
const DefaultName = "api"

// generatedNotice is the first line of every generated file.
const generatedNotice = "// This file was generated by oafront from an OpenAPI document. Do not edit."

// Language selects how the implementation module is written.
type Language string

const (
	// LanguageTS writes TypeScript with typed declarations.
	LanguageTS Language = "ts"
	// LanguageJS writes JavaScript with JSDoc type hints.
	LanguageJS Language = "js"
)

// ParseLanguage accepts "ts", "typescript", "js" and "javascript" in any case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ts", "typescript":
		return LanguageTS, nil
	case "js", "javascript":
		return LanguageJS, nil
	}
	return "", &oaserrors.ConfigError{
		Option:  "language",
		Value:   s,
		Message: "must be one of ts, js",
	}
}

// Extension returns the implementation file extension, including the dot.
func (l Language) Extension() string {
	if l == LanguageJS {
		return ".js"
	}
	return ".ts"
}

// TypesFileName returns the declaration file name for a module name.
func TypesFileName(name string) string {
	return name + "-types.d.ts"
}

// ImplementationFileName returns the implementation file name for a module
// name and language.
func ImplementationFileName(name string, lang Language) string {
	return name + lang.Extension()
}

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "api-types.d.ts", "api.ts")
	Name string
	// Content is the generated source
	Content []byte
}

// GenerateResult contains the results of generating a client from an OpenAPI document
type GenerateResult struct {
	// Files holds the declaration module followed by the implementation module
	Files []GeneratedFile
	// Name is the module name used for file names and the aggregate interface
	Name string
	// Language is the implementation language
	Language Language
	// Types is the declaration module before rendering
	Types *TypesModule
	// Implementation is the client module before rendering
	Implementation *ImplementationModule
	// Operations is the operation list both modules were built from
	Operations []*Operation
	// SourcePath is the path or URL the document was read from
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// GeneratedOperations is the count of operations generated
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator turns OpenAPI documents into frontend clients.
type Generator struct {
	// Name is the module name. If empty, defaults to "api".
	Name string

	// URL is recorded in the generated file headers when set.
	URL string

	// Language selects the implementation module style. Default: ts
	Language Language

	// StrictMode causes generation to fail on warnings
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string

	// Logger receives debug output. Nil means no logging.
	Logger parser.Logger

	// OperationIDFunc assigns operation ids. Nil selects DefaultOperationID.
	OperationIDFunc OperationIDFunc
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		Name:        DefaultName,
		Language:    LanguageTS,
		IncludeInfo: true,
	}
}

func (g *Generator) log() parser.Logger {
	if g.Logger == nil {
		return parser.NopLogger{}
	}
	return g.Logger
}

// Generate parses the document at specPath (a file path or URL) and generates a client.
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}
	p.Logger = g.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates a client from an already-parsed document.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()

	name := g.Name
	if name == "" {
		name = DefaultName
	}
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	lang := LanguageTS
	if g.Language != "" {
		parsed, err := ParseLanguage(string(g.Language))
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		lang = parsed
	}

	result := &GenerateResult{
		Name:         name,
		Language:     lang,
		SourcePath:   parseResult.SourcePath,
		SourceFormat: parseResult.SourceFormat,
		LoadTime:     parseResult.LoadTime,
		SourceSize:   parseResult.SourceSize,
		Issues:       make([]GenerateIssue, 0),
	}

	issues := newCollector(g.log())
	ops, err := extractOperations(parseResult.Document, g.OperationIDFunc, issues)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to extract operations: %w", err)
	}
	result.Operations = ops
	result.GeneratedOperations = len(ops)

	types, err := newTypesBuilder(parseResult.Document, issues).build(ops, name)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to generate types: %w", err)
	}
	impl := BuildImplementation(ops, name, lang)

	header := fileHeader(g.URL)
	types.Header = header
	impl.Header = header
	result.Types = types
	result.Implementation = impl
	result.Files = []GeneratedFile{
		{Name: TypesFileName(name), Content: []byte(types.Render())},
		{Name: ImplementationFileName(name, lang), Content: []byte(impl.Render())},
	}

	result.Issues = issues.issues
	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	g.log().Info("generated client",
		"name", name,
		"language", string(lang),
		"operations", len(ops),
		"warnings", result.WarningCount,
	)

	// In strict mode, fail on any issues
	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount, result.WarningCount, result.CriticalCount = 0, 0, 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

// Request is the direct form of a generation call.
type Request struct {
	Schema   *parser.Document
	Name     string
	URL      string
	Language Language
}

// Output holds the two rendered modules.
type Output struct {
	Types          string
	Implementation string
}

// ProcessOpenAPI renders both modules for an in-memory document. Issues are
// discarded; use GenerateWithOptions to inspect them.
func ProcessOpenAPI(req Request) (*Output, error) {
	if req.Schema == nil {
		return nil, &oaserrors.ConfigError{Option: "schema", Message: "document is required"}
	}
	g := New()
	if req.Name != "" {
		g.Name = req.Name
	}
	g.URL = req.URL
	if req.Language != "" {
		g.Language = req.Language
	}

	result, err := g.GenerateParsed(parser.ParseResult{Document: req.Schema})
	if err != nil {
		return nil, err
	}
	return &Output{
		Types:          string(result.Files[0].Content),
		Implementation: string(result.Files[1].Content),
	}, nil
}

func fileHeader(url string) []string {
	header := []string{generatedNotice}
	if url != "" {
		header = append(header, "// Source: "+url)
	}
	return header
}

// ValidateName requires a name usable both as a file name prefix and, once
// capitalized, as an interface name.
func ValidateName(name string) error {
	if !naming.IsIdentifier(name) || strings.Contains(name, "$") {
		return &oaserrors.ConfigError{
			Option:  "name",
			Value:   name,
			Message: "must be a valid identifier (letters, digits and underscores, not starting with a digit)",
		}
	}
	return nil
}
