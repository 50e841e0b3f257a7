package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oafront/generator"
)

type operationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to inspect"`
	Method string    `json:"method,omitempty" jsonschema:"Only list operations with this HTTP method"`
	Offset int       `json:"offset,omitempty" jsonschema:"Number of operations to skip"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of operations to return"`
}

type operationSummary struct {
	OperationID  string `json:"operation_id"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	SuccessCount int    `json:"success_count"`
	FullResponse bool   `json:"full_response"`
}

type operationsOutput struct {
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func handleOperations(_ context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	ops, err := generator.ExtractOperations(parseResult.Document, nil)
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	var matched []*generator.Operation
	for _, op := range ops {
		if input.Method != "" && !strings.EqualFold(op.Method, input.Method) {
			continue
		}
		matched = append(matched, op)
	}

	page := paginate(matched, input.Offset, input.Limit)
	output := operationsOutput{
		Total:      len(matched),
		Returned:   len(page),
		Operations: makeSlice[operationSummary](len(page)),
	}
	for _, op := range page {
		output.Operations = append(output.Operations, operationSummary{
			OperationID:  op.OperationID,
			Method:       op.Method,
			Path:         op.Path,
			SuccessCount: op.SuccessCount,
			FullResponse: op.IsFullResponse,
		})
	}
	return nil, output, nil
}
