// Package sampledb creates and seeds the demo sales database: a products
// table and a sales table linked by product_id. The same data is used by the
// setupdb command and by tests.
package sampledb

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultPath is the database file the rest of the system expects.
const DefaultPath = "sales.db"

// Product rows inserted by Seed.
var products = []struct {
	ID       int
	Name     string
	Category string
	Price    float64
}{
	{1, "Laptop", "Electronics", 999.99},
	{2, "Mouse", "Electronics", 29.99},
	{3, "Keyboard", "Electronics", 79.99},
	{4, "Monitor", "Electronics", 299.99},
	{5, "Office Chair", "Furniture", 199.99},
	{6, "Desk", "Furniture", 349.99},
	{7, "Notebook", "Stationery", 4.99},
}

// Sale rows inserted by Seed.
var sales = []struct {
	ID        int
	ProductID int
	Quantity  int
	Date      string
	Region    string
}{
	{1, 1, 2, "2023-10-15", "North"},
	{2, 2, 5, "2023-10-16", "South"},
	{3, 3, 3, "2023-10-17", "East"},
	{4, 1, 1, "2023-10-18", "West"},
	{5, 4, 2, "2023-10-19", "North"},
	{6, 5, 1, "2023-10-20", "South"},
	{7, 6, 1, "2023-10-21", "East"},
	{8, 7, 10, "2023-10-22", "West"},
	{9, 2, 3, "2023-10-23", "North"},
	{10, 3, 2, "2023-10-24", "South"},
	{11, 1, 1, "2023-11-01", "East"},
	{12, 4, 3, "2023-11-02", "West"},
}

// CreateTables drops any existing products/sales tables and recreates them.
func CreateTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`DROP TABLE IF EXISTS sales`,
		`DROP TABLE IF EXISTS products`,
		`CREATE TABLE products (
			product_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL
		)`,
		`CREATE TABLE sales (
			sale_id INTEGER PRIMARY KEY,
			product_id INTEGER,
			quantity INTEGER NOT NULL,
			sale_date TEXT NOT NULL,
			region TEXT NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products (product_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// Seed inserts the sample products and sales rows. Tables must exist.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (product_id, name, category, price) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.Price); err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ID, err)
		}
	}
	for _, s := range sales {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sales (sale_id, product_id, quantity, sale_date, region) VALUES (?, ?, ?, ?, ?)`,
			s.ID, s.ProductID, s.Quantity, s.Date, s.Region); err != nil {
			return fmt.Errorf("inserting sale %d: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

// Setup recreates the schema and seeds it in one step.
func Setup(ctx context.Context, db *sql.DB) error {
	if err := CreateTables(ctx, db); err != nil {
		return err
	}
	return Seed(ctx, db)
}

// Counts returns the number of seeded products and sales rows.
func Counts() (int, int) {
	return len(products), len(sales)
}
