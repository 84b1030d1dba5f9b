package mcp

import "time"

// Server identity reported during the initialize handshake
const (
	ServerName    = "sql-database-server"
	ServerVersion = "0.1.0"
)

// Query timeout constants
const (
	DefaultQueryTimeout = 30 * time.Second
	ShortQueryTimeout   = 10 * time.Second
)

// Tool names
const (
	ToolQueryDatabase = "query_database"
	ToolGetSchema     = "get_schema"
	ToolListTables    = "list_tables"
)
