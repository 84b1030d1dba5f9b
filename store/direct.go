package store

import "context"

// Direct serves the same three operations as the MCP client facade without
// leaving the process. Errors are flattened to the same prefixed text the
// server produces, so callers see an identical contract on either path.
type Direct struct {
	store *Store
}

// NewDirect returns a Direct over the given store.
func NewDirect(s *Store) *Direct {
	return &Direct{store: s}
}

// Query executes the SQL and returns the formatted result text.
func (d *Direct) Query(ctx context.Context, query string) string {
	result, err := d.store.RunQuery(ctx, query)
	if err != nil {
		return "Database query error: " + err.Error()
	}
	return result.Format()
}

// GetSchema returns the schema snapshot text.
func (d *Direct) GetSchema(ctx context.Context) string {
	schema, err := d.store.Schema(ctx)
	if err != nil {
		return "Schema retrieval error: " + err.Error()
	}
	return schema
}

// ListTables returns the table listing text.
func (d *Direct) ListTables(ctx context.Context) string {
	tables, err := d.store.Tables(ctx)
	if err != nil {
		return "Table listing error: " + err.Error()
	}
	return FormatTables(tables)
}
