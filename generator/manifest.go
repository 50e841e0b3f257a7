package generator

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Manifest summarizes a generation run for machine consumers.
type Manifest struct {
	Name       string              `json:"name"`
	Language   Language            `json:"language"`
	Source     string              `json:"source,omitempty"`
	Files      []ManifestFile      `json:"files"`
	Operations []ManifestOperation `json:"operations"`
	Issues     []GenerateIssue     `json:"issues"`
	// GenerateTimeMs is the generation time in milliseconds.
	GenerateTimeMs int64 `json:"generateTimeMs"`
}

// ManifestFile is one generated file.
type ManifestFile struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ManifestOperation is one generated call.
type ManifestOperation struct {
	OperationID  string `json:"operationId"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	FullResponse bool   `json:"fullResponse,omitzero"`
}

// Manifest builds the run summary.
func (r *GenerateResult) Manifest() *Manifest {
	m := &Manifest{
		Name:           r.Name,
		Language:       r.Language,
		Source:         r.SourcePath,
		Files:          make([]ManifestFile, 0, len(r.Files)),
		Operations:     make([]ManifestOperation, 0, len(r.Operations)),
		Issues:         r.Issues,
		GenerateTimeMs: r.GenerateTime.Milliseconds(),
	}
	if m.Issues == nil {
		m.Issues = []GenerateIssue{}
	}
	for _, f := range r.Files {
		m.Files = append(m.Files, ManifestFile{Name: f.Name, Size: len(f.Content)})
	}
	for _, op := range r.Operations {
		m.Operations = append(m.Operations, ManifestOperation{
			OperationID:  op.OperationID,
			Method:       op.Method,
			Path:         op.Path,
			FullResponse: op.IsFullResponse,
		})
	}
	return m
}

// MarshalManifest renders the run summary as indented JSON.
func (r *GenerateResult) MarshalManifest() ([]byte, error) {
	return json.Marshal(r.Manifest(), jsontext.WithIndent("  "))
}
