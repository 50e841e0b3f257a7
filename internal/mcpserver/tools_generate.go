package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oafront/generator"
)

type generateInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OpenAPI document to generate a client from"`
	Name      string    `json:"name,omitempty"       jsonschema:"Module name used for file names and the client interface (default: api)"`
	Language  string    `json:"language,omitempty"   jsonschema:"Implementation language: ts or js (default: ts)"`
	URL       string    `json:"url,omitempty"        jsonschema:"Source URL recorded in the generated file headers"`
	OutputDir string    `json:"output_dir,omitempty" jsonschema:"Directory to write generated files to; omit to return content inline"`
	Strict    bool      `json:"strict,omitempty"     jsonschema:"Fail when generation produces warnings"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type issueInfo struct {
	Severity  string `json:"severity"`
	Path      string `json:"path"`
	Operation string `json:"operation,omitempty"`
	Message   string `json:"message"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	OutputDir           string              `json:"output_dir,omitempty"`
	Name                string              `json:"name"`
	Language            string              `json:"language"`
	Files               []generatedFileInfo `json:"files"`
	GeneratedOperations int                 `json:"generated_operations"`
	InfoCount           int                 `json:"info_count"`
	WarningCount        int                 `json:"warning_count"`
	Issues              []issueInfo         `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	name := input.Name
	if name == "" {
		name = cfg.DefaultName
	}
	lang := cfg.DefaultLanguage
	if input.Language != "" {
		lang = generator.Language(input.Language)
	}
	url := input.URL
	if url == "" {
		url = input.Spec.source()
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(*parseResult),
		generator.WithName(name),
		generator.WithLanguage(lang),
		generator.WithURL(url),
		generator.WithStrictMode(input.Strict || cfg.Strict),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:             result.Success,
		OutputDir:           input.OutputDir,
		Name:                result.Name,
		Language:            string(result.Language),
		GeneratedOperations: result.GeneratedOperations,
		InfoCount:           result.InfoCount,
		WarningCount:        result.WarningCount,
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	output.Issues = makeSlice[issueInfo](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Severity:  issue.Severity.String(),
			Path:      issue.Path,
			Operation: issue.Operation,
			Message:   issue.Message,
		})
	}

	return nil, output, nil
}
