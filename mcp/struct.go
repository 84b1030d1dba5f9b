package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"sql-agent-mcp/store"
)

type DatabaseMCP struct {
	server *server.MCPServer
	store  *store.Store
	log    zerolog.Logger
}
