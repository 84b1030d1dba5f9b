// Creates sales.db and fills it with the sample products and sales data.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"sql-agent-mcp/sampledb"
)

func main() {
	path := sampledb.DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", path, err)
		os.Exit(1)
	}
	defer db.Close()

	if err := sampledb.Setup(context.Background(), db); err != nil {
		fmt.Fprintf(os.Stderr, "setting up %s: %v\n", path, err)
		os.Exit(1)
	}

	productCount, saleCount := sampledb.Counts()
	fmt.Printf("Database setup complete! Created %s with sample data.\n", path)
	fmt.Println("Tables created: products, sales")
	fmt.Printf("Inserted %d products and %d sales records.\n", productCount, saleCount)
}
