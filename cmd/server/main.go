// The MCP database server. Speaks the protocol on stdin/stdout; everything
// else, logging included, goes to stderr.
package main

import (
	"os"

	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"

	"sql-agent-mcp/mcp"
	"sql-agent-mcp/sampledb"
	"sql-agent-mcp/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dbPath := os.Getenv("SALES_DB_PATH")
	if dbPath == "" {
		dbPath = sampledb.DefaultPath
	}

	// Define MCP Server
	mcpServer := mcp.NewMcpServer(store.New(dbPath), log)

	// Start server in stdio
	if err := mcpServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
