package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *DatabaseMCP) toolGetSchema() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        ToolGetSchema,
		Description: "Get the database schema information including all tables and columns",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
			Required:   []string{},
		},
	}, s.handleGetSchema
}

func (s *DatabaseMCP) handleGetSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortQueryTimeout)
	defer cancel()

	schema, err := s.store.Schema(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("schema retrieval failed")
		return mcp.NewToolResultText("Schema retrieval error: " + err.Error()), nil
	}

	return mcp.NewToolResultText(schema), nil
}
