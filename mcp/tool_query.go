package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *DatabaseMCP) toolQueryDatabase() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        ToolQueryDatabase,
		Description: "Execute a SQL query against the database and return results",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The SQL query to execute",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleQueryDatabase
}

func (s *DatabaseMCP) handleQueryDatabase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := getArgs(request.Params.Arguments)
	if !ok {
		return mcp.NewToolResultError(ErrInvalidArguments.Error()), nil
	}

	query, ok := getStringArg(args, "query")
	if !ok || query == "" {
		return mcp.NewToolResultError(ErrQueryRequired.Error()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	result, err := s.store.RunQuery(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("query failed")
		// Database failures are a successful response carrying an error
		// payload, never a transport fault.
		return mcp.NewToolResultText("Database query error: " + err.Error()), nil
	}

	s.log.Debug().Int("rows", len(result.Rows)).Msg("query executed")
	return mcp.NewToolResultText(result.Format()), nil
}
