package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
)

// fakeSession scripts one session's behavior and records the lifecycle so
// tests can assert teardown ran.
type fakeSession struct {
	initErr  error
	callErr  error
	result   *mcp.CallToolResult
	tools    []mcp.Tool
	toolsErr error

	initialized bool
	closed      bool
	calledTool  string
	calledArgs  map[string]interface{}
}

func (f *fakeSession) Initialize(ctx context.Context, request mcp.InitializeRequest) (*mcp.InitializeResult, error) {
	if f.initErr != nil {
		return nil, f.initErr
	}
	f.initialized = true
	return &mcp.InitializeResult{}, nil
}

func (f *fakeSession) CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f.calledTool = request.Params.Name
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		f.calledArgs = args
	}
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.result, nil
}

func (f *fakeSession) ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error) {
	if f.toolsErr != nil {
		return nil, f.toolsErr
	}
	return &mcp.ListToolsResult{Tools: f.tools}, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func newTestClient(sess *fakeSession, dialErr error) *DatabaseClient {
	c := NewDatabaseClient(zerolog.Nop(), "unused")
	c.dial = func() (session, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return sess, nil
	}
	return c
}

func textResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func TestQuery_ReturnsText(t *testing.T) {
	sess := &fakeSession{result: textResult("id | name\n---------\n1 | Laptop")}
	c := newTestClient(sess, nil)

	got := c.Query(context.Background(), "SELECT * FROM products")
	if !strings.Contains(got, "Laptop") {
		t.Errorf("unexpected result: %q", got)
	}
	if sess.calledTool != "query_database" {
		t.Errorf("called tool %q", sess.calledTool)
	}
	if sess.calledArgs["query"] != "SELECT * FROM products" {
		t.Errorf("query argument not forwarded: %v", sess.calledArgs)
	}
	if !sess.initialized {
		t.Error("handshake must precede the tool call")
	}
	if !sess.closed {
		t.Error("session must be torn down after the call")
	}
}

func TestFallbacks_EmptyContent(t *testing.T) {
	tests := []struct {
		name string
		call func(*DatabaseClient, context.Context) string
		want string
	}{
		{"query", func(c *DatabaseClient, ctx context.Context) string { return c.Query(ctx, "SELECT 1") },
			"No results returned from database."},
		{"schema", func(c *DatabaseClient, ctx context.Context) string { return c.GetSchema(ctx) },
			"No schema information available."},
		{"tables", func(c *DatabaseClient, ctx context.Context) string { return c.ListTables(ctx) },
			"No tables found."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := &fakeSession{result: &mcp.CallToolResult{}}
			c := newTestClient(sess, nil)
			if got := tc.call(c, context.Background()); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorFlattening_NoServer(t *testing.T) {
	dialErr := errors.New("fork/exec ./server: no such file or directory")

	tests := []struct {
		name   string
		call   func(*DatabaseClient, context.Context) string
		prefix string
	}{
		{"query", func(c *DatabaseClient, ctx context.Context) string { return c.Query(ctx, "SELECT 1") },
			"Error executing query: "},
		{"schema", func(c *DatabaseClient, ctx context.Context) string { return c.GetSchema(ctx) },
			"Error retrieving schema: "},
		{"tables", func(c *DatabaseClient, ctx context.Context) string { return c.ListTables(ctx) },
			"Error listing tables: "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(nil, dialErr)
			got := tc.call(c, context.Background())
			if !strings.HasPrefix(got, tc.prefix) {
				t.Errorf("got %q, want prefix %q", got, tc.prefix)
			}
			if !strings.Contains(got, "Error") {
				t.Errorf("flattened text must contain Error: %q", got)
			}
		})
	}
}

func TestTeardown_RunsWhenCallFails(t *testing.T) {
	sess := &fakeSession{callErr: errors.New("stream closed unexpectedly")}
	c := newTestClient(sess, nil)

	got := c.Query(context.Background(), "SELECT 1")
	if !strings.HasPrefix(got, "Error executing query: ") {
		t.Errorf("unexpected result: %q", got)
	}
	if !sess.closed {
		t.Error("session must be closed even when the tool call fails")
	}
}

func TestTeardown_RunsWhenHandshakeFails(t *testing.T) {
	sess := &fakeSession{initErr: errors.New("handshake not acknowledged")}
	c := newTestClient(sess, nil)

	got := c.GetSchema(context.Background())
	if !strings.HasPrefix(got, "Error retrieving schema: ") {
		t.Errorf("unexpected result: %q", got)
	}
	if !sess.closed {
		t.Error("session must be closed when the handshake fails")
	}
}

func TestQuery_ToolErrorResultFlattened(t *testing.T) {
	result := mcp.NewToolResultError("query is required")
	sess := &fakeSession{result: result}
	c := newTestClient(sess, nil)

	got := c.Query(context.Background(), "")
	if !strings.HasPrefix(got, "Error executing query: ") {
		t.Errorf("unexpected result: %q", got)
	}
	if !strings.Contains(got, "query is required") {
		t.Errorf("tool error text lost: %q", got)
	}
}

func TestListTools(t *testing.T) {
	sess := &fakeSession{tools: []mcp.Tool{
		{Name: "query_database"},
		{Name: "get_schema"},
		{Name: "list_tables"},
	}}
	c := newTestClient(sess, nil)

	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	if !sess.closed {
		t.Error("session must be torn down after listing tools")
	}
}
