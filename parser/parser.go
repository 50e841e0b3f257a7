package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oafront"
	"github.com/erraggy/oafront/oaserrors"
)

// SourceFormat is the serialization the document was read from.
type SourceFormat string

const (
	// SourceFormatYAML is a YAML document
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON is a JSON document
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown is used when the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// defaultFetchTimeout bounds URL fetches made with the default client.
const defaultFetchTimeout = 30 * time.Second

// Parser loads OpenAPI documents from files, URLs, readers or bytes.
type Parser struct {
	// UserAgent is sent when fetching URLs. Defaults to oafront.UserAgent().
	UserAgent string
	// HTTPClient is used for URL fetches. A client with a 30s timeout is used when nil.
	HTTPClient *http.Client
	// Logger receives debug output. NopLogger when nil.
	Logger Logger
}

// ParseResult is a decoded document plus facts about where it came from.
type ParseResult struct {
	// SourcePath is the file path, URL, or "ParseReader.yaml"/"ParseBytes.yaml"
	// for in-memory input.
	SourcePath   string
	SourceFormat SourceFormat
	// SourceSize is the size of the raw input in bytes.
	SourceSize int64
	Document   *Document
	LoadTime   time.Duration
	ParseTime  time.Duration
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

// Parse reads a document from a local path or an http(s) URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var (
		data   []byte
		format SourceFormat
		err    error
	)

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = os.ReadFile(specPath) //nolint:gosec // G304 - path is user-provided input
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	result, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	if format != SourceFormatUnknown {
		result.SourceFormat = format
	}
	result.LoadTime = loadTime
	return result, nil
}

// ParseReader reads a document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := p.parseBytes(data, "ParseReader.yaml")
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// ParseBytes decodes a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	return p.parseBytes(data, "ParseBytes.yaml")
}

func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	start := time.Now()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "failed to decode YAML/JSON", Cause: err}
	}
	doc, err := decodeDocument(&root)
	if err != nil {
		return nil, withPath(err, sourcePath)
	}

	result := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		SourceSize:   int64(len(data)),
		Document:     doc,
		ParseTime:    time.Since(start),
	}

	p.log().Debug("parsed document",
		"source", sourcePath,
		"format", result.SourceFormat,
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths),
	)
	return result, nil
}

// withPath fills in the source path of a ParseError raised while decoding nodes.
func withPath(err error, path string) error {
	if pe, ok := err.(*oaserrors.ParseError); ok && pe.Path == "" {
		pe.Path = path
	}
	return err
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' or '[' as JSON.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func detectFormatFromURL(urlStr, contentType string) SourceFormat {
	if parsed, err := url.Parse(urlStr); err == nil && parsed.Path != "" {
		if format := detectFormatFromPath(parsed.Path); format != SourceFormatUnknown {
			return format
		}
	}

	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(contentType) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oafront.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	p.log().Debug("fetching document", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // G107 - URL is user-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
