// Package client is the caller-facing facade over the MCP database server.
// Every operation spawns a fresh server subprocess, performs the initialize
// handshake, makes exactly one tool call, and tears the session down again.
// The three database operations never return an error: any failure is
// flattened into the returned text, so callers can treat the result as plain
// display text on every path.
package client

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
)

// Fallback texts returned when a response carries no content blocks.
const (
	noQueryResults = "No results returned from database."
	noSchemaInfo   = "No schema information available."
	noTables       = "No tables found."
)

// session is one spawned server process plus its handshake state, scoped to
// a single tool call. Satisfied by the mcp-go stdio client.
type session interface {
	Initialize(ctx context.Context, request mcp.InitializeRequest) (*mcp.InitializeResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	Close() error
}

// DatabaseClient talks to the MCP database server. The server command and
// logger are explicit constructor inputs; nothing is discovered from ambient
// state.
type DatabaseClient struct {
	command string
	args    []string
	log     zerolog.Logger

	// dial is swapped out in tests to avoid spawning a real process.
	dial func() (session, error)
}

// NewDatabaseClient returns a client that launches the server with the given
// command and arguments for every operation.
func NewDatabaseClient(log zerolog.Logger, command string, args ...string) *DatabaseClient {
	c := &DatabaseClient{
		command: command,
		args:    args,
		log:     log,
	}
	c.dial = func() (session, error) {
		return mcpclient.NewStdioMCPClient(c.command, os.Environ(), c.args...)
	}
	return c
}

// Query executes a SQL query against the database.
func (c *DatabaseClient) Query(ctx context.Context, query string) string {
	text, err := c.call(ctx, "query_database", map[string]interface{}{"query": query}, noQueryResults)
	if err != nil {
		return "Error executing query: " + err.Error()
	}
	return text
}

// GetSchema returns the database schema information.
func (c *DatabaseClient) GetSchema(ctx context.Context) string {
	text, err := c.call(ctx, "get_schema", map[string]interface{}{}, noSchemaInfo)
	if err != nil {
		return "Error retrieving schema: " + err.Error()
	}
	return text
}

// ListTables returns the table listing.
func (c *DatabaseClient) ListTables(ctx context.Context) string {
	text, err := c.call(ctx, "list_tables", map[string]interface{}{}, noTables)
	if err != nil {
		return "Error listing tables: " + err.Error()
	}
	return text
}

// ListTools returns the server's tool descriptors. Unlike the database
// operations this surfaces errors structurally, since its consumers are
// programs rather than display text.
func (c *DatabaseClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	sess, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	result, err := sess.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	return result.Tools, nil
}

// call runs the full session lifecycle for one tool invocation: spawn,
// handshake, call, teardown. Teardown is deferred so it runs on every exit
// path, including errors.
func (c *DatabaseClient) call(ctx context.Context, tool string, arguments map[string]interface{}, fallback string) (string, error) {
	sessionID := uuid.NewString()
	log := c.log.With().Str("session_id", sessionID).Str("tool", tool).Logger()

	sess, err := c.open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session setup failed")
		return "", err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn().Err(err).Msg("session close failed")
		}
	}()

	log.Debug().Msg("session established")

	result, err := sess.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: arguments,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("tool call failed")
		return "", err
	}

	text, found := firstText(result.Content)
	if !found {
		log.Debug().Msg("response carried no content")
		return fallback, nil
	}
	if result.IsError {
		return "", fmt.Errorf("tool call failed: %s", text)
	}
	return text, nil
}

// open spawns the server subprocess and performs the capability handshake.
// No tool call is sent until the handshake acknowledgment arrives.
func (c *DatabaseClient) open(ctx context.Context) (session, error) {
	sess, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("starting server process: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "sql-database-client",
		Version: "0.1.0",
	}
	initRequest.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := sess.Initialize(ctx, initRequest); err != nil {
		sess.Close()
		return nil, fmt.Errorf("initializing session: %w", err)
	}
	return sess, nil
}

// firstText returns the first text content block of a tool result. By
// convention the server sends exactly one.
func firstText(content []mcp.Content) (string, bool) {
	for _, item := range content {
		if tc, ok := mcp.AsTextContent(item); ok {
			return tc.Text, true
		}
	}
	return "", false
}
