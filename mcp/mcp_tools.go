package mcp

func (s *DatabaseMCP) registerTools() {
	// Execute Query
	s.server.AddTool(s.toolQueryDatabase())

	// Get Schema
	s.server.AddTool(s.toolGetSchema())

	// List Tables
	s.server.AddTool(s.toolListTables())
}
