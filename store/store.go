// Package store holds the database operations behind the MCP tools: run a
// query, render a schema snapshot, list tables. A Store keeps only the file
// path; every operation opens its own connection and closes it before
// returning, so the rendered text always reflects the live database state.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Store reads and writes a single SQLite database file.
type Store struct {
	path string
}

// New returns a Store for the given database file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// Result holds the columns and stringified rows of one executed statement.
type Result struct {
	Columns []string
	Rows    [][]string
}

// RunQuery executes the statement verbatim and fetches all rows. Arbitrary
// SQL is permitted, including DDL and DML; statements that return no rows
// produce an empty Result.
func (s *Store) RunQuery(ctx context.Context, query string) (*Result, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		cells := make([]string, len(columns))
		for i := range values {
			cells[i] = formatValue(values[i])
		}
		result.Rows = append(result.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Format renders the result as a pipe-delimited table: a header of column
// names, a dash rule matching the header's rendered width, then one line per
// row. An empty result renders as "No results found.".
func (r *Result) Format() string {
	if len(r.Rows) == 0 {
		return "No results found."
	}

	var lines []string
	if len(r.Columns) > 0 {
		header := strings.Join(r.Columns, " | ")
		lines = append(lines, header)
		lines = append(lines, strings.Repeat("-", len(header)))
	}
	for _, row := range r.Rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n")
}

// Column describes one column of a table as reported by PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// Schema renders a snapshot of every table and its columns. The text is
// recomputed from the catalog on every call, never cached.
func (s *Store) Schema(ctx context.Context) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	tables, err := tableNames(ctx, db)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, table := range tables {
		lines = append(lines, "\nTable: "+table)

		columns, err := tableColumns(ctx, db, table)
		if err != nil {
			return "", err
		}
		for _, col := range columns {
			nullable := "NULL"
			if col.NotNull {
				nullable = "NOT NULL"
			}
			pk := ""
			if col.PrimaryKey {
				pk = "PRIMARY KEY"
			}
			line := fmt.Sprintf("  - %s (%s) %s %s", col.Name, col.Type, nullable, pk)
			lines = append(lines, strings.TrimRight(line, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Tables returns the table names in catalog order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return tableNames(ctx, db)
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type='table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	// PRAGMA table_info cannot take placeholders, so the name is embedded
	// with quotes escaped.
	quoted := strings.ReplaceAll(table, "'", "''")
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info('%s')", quoted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid          int
			name, ctype  string
			notNull, pk  int
			defaultValue sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, Column{
			Name:       name,
			Type:       ctype,
			NotNull:    notNull == 1,
			PrimaryKey: pk > 0,
		})
	}
	return columns, rows.Err()
}

// FormatTables renders the table listing text.
func FormatTables(names []string) string {
	if len(names) == 0 {
		return "No tables found in database."
	}
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "Tables in database:")
	for _, name := range names {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n")
}

// formatValue converts a scanned database value to its cell text.
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		if utf8.Valid(v) {
			return string(v)
		}
		return fmt.Sprintf("<binary data: %d bytes>", len(v))
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}
