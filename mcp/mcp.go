package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"sql-agent-mcp/store"
)

// NewMcpServer creates the MCP server for the given database file. No
// connection is held between calls; each tool invocation opens and closes
// its own.
func NewMcpServer(dbStore *store.Store, log zerolog.Logger) *DatabaseMCP {
	dbMCPServer := &DatabaseMCP{
		server: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(true),
		),
		store: dbStore,
		log:   log,
	}

	// Register tools
	dbMCPServer.registerTools()

	return dbMCPServer
}

// Start serves the MCP protocol on stdin/stdout until the client closes the
// session.
func (s *DatabaseMCP) Start() error {
	return server.ServeStdio(s.server)
}
