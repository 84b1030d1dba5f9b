package mcp

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"sql-agent-mcp/sampledb"
	"sql-agent-mcp/store"
)

func newTestServer(t *testing.T) *DatabaseMCP {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := sampledb.Setup(context.Background(), db); err != nil {
		t.Fatalf("seeding database: %v", err)
	}
	return NewMcpServer(store.New(path), zerolog.Nop())
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected exactly one content block, got %d", len(result.Content))
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content block is not text: %#v", result.Content[0])
	}
	return text.Text
}

func TestHandleQueryDatabase_Rows(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleQueryDatabase(context.Background(),
		callRequest(ToolQueryDatabase, map[string]interface{}{
			"query": "SELECT product_id, name FROM products WHERE product_id = 1;",
		}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected a successful result")
	}

	text := resultText(t, result)
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), text)
	}
	if !strings.Contains(lines[2], "Laptop") {
		t.Errorf("expected Laptop in row, got %q", lines[2])
	}
}

func TestHandleQueryDatabase_NoRows(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleQueryDatabase(context.Background(),
		callRequest(ToolQueryDatabase, map[string]interface{}{
			"query": "SELECT * FROM sales WHERE region = 'Nowhere'",
		}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, result); got != "No results found." {
		t.Errorf("got %q, want %q", got, "No results found.")
	}
}

func TestHandleQueryDatabase_MalformedSQL(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleQueryDatabase(context.Background(),
		callRequest(ToolQueryDatabase, map[string]interface{}{
			"query": "SELEC broken FROM nowhere",
		}))
	if err != nil {
		t.Fatalf("database failures must not become transport errors: %v", err)
	}
	if result.IsError {
		t.Error("database failures are carried as successful responses")
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "Database query error: ") {
		t.Errorf("expected query error prefix, got %q", got)
	}
}

func TestHandleQueryDatabase_MissingQueryArg(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleQueryDatabase(context.Background(),
		callRequest(ToolQueryDatabase, map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Error("missing required argument should produce a tool error")
	}
	if got := resultText(t, result); !strings.Contains(got, "query is required") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestHandleGetSchema(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetSchema(context.Background(), callRequest(ToolGetSchema, nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	schema := resultText(t, result)
	if got := strings.Count(schema, "Table: "); got != 2 {
		t.Errorf("expected two tables in schema, got %d:\n%s", got, schema)
	}
	for _, want := range []string{"Table: products", "Table: sales", "PRIMARY KEY"} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestHandleListTables(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListTables(context.Background(), callRequest(ToolListTables, nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, result); got != "Tables in database:\n- products\n- sales" {
		t.Errorf("unexpected listing: %q", got)
	}
}

func TestHandleGetSchema_MissingDatabase(t *testing.T) {
	// A directory that cannot exist as a file makes the open fail, which must
	// still come back as a text payload with the schema error prefix.
	s := &DatabaseMCP{store: store.New(filepath.Join(t.TempDir(), "no", "such", "dir", "x.db")), log: zerolog.Nop()}

	result, err := s.handleGetSchema(context.Background(), callRequest(ToolGetSchema, nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "Schema retrieval error: ") {
		t.Errorf("expected schema error prefix, got %q", got)
	}
}
