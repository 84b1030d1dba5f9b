// The sql-agent command line: ask natural-language questions against the
// sales database, or talk to the MCP database server directly.
package main

func main() {
	Execute()
}
