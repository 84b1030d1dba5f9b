package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sql-agent-mcp/store"
)

func (s *DatabaseMCP) toolListTables() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        ToolListTables,
		Description: "List all tables in the database",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
			Required:   []string{},
		},
	}, s.handleListTables
}

func (s *DatabaseMCP) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortQueryTimeout)
	defer cancel()

	tables, err := s.store.Tables(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("table listing failed")
		return mcp.NewToolResultText("Table listing error: " + err.Error()), nil
	}

	return mcp.NewToolResultText(store.FormatTables(tables)), nil
}
