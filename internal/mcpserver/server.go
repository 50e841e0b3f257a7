// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oafront client generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oafront"
)

const serverInstructions = `oafront MCP server: generates TypeScript/JavaScript fetch clients from OpenAPI 3.x documents.

Configuration: defaults are read from OAFRONT_* environment variables set in your MCP client config.

Key settings:
- OAFRONT_NAME (default: api): module name for generated files
- OAFRONT_LANGUAGE (default: ts): implementation language, ts or js
- OAFRONT_STRICT (default: false): fail generation on warnings
- OAFRONT_CACHE_ENABLED (default: true): disable document caching entirely
- OAFRONT_CACHE_FILE_TTL (default: 15m), OAFRONT_CACHE_URL_TTL (default: 5m)
- OAFRONT_LIST_LIMIT (default: 100): default page size for the operations tool
- OAFRONT_ALLOW_PRIVATE_IPS (default: false): allow fetching documents from private addresses

Caching: parsed documents are cached per session. File entries use path+mtime as key. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oafront", Version: oafront.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a frontend client from an OpenAPI 3.x document: a <name>-types.d.ts declaration module and a <name>.ts or <name>.js implementation with one fetch-based async function per operation. With output_dir the files are written to disk; without it their content is returned inline. Returns generation issues (skipped non-JSON content, full-response decisions).",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations a generated client would expose: operation id, method, path and whether the call returns the full { statusCode, headers, body } envelope. Ids are the exact function names generate produces. Use offset/limit to page through large APIs.",
	}, handleOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths so errors returned to MCP
// clients do not reveal the server's directory layout.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
