package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	_ "github.com/mattn/go-sqlite3"

	"sql-agent-mcp/client"
	"sql-agent-mcp/sampledb"
	"sql-agent-mcp/store"
)

var (
	flagDB        string
	flagServerCmd string
	flagDirect    bool
	flagModel     string
	flagDebug     bool
)

// database is the slice of operations the subcommands need. Satisfied by the
// MCP client facade and by the in-process direct store.
type database interface {
	Query(ctx context.Context, query string) string
	GetSchema(ctx context.Context) string
	ListTables(ctx context.Context) string
}

var rootCmd = &cobra.Command{
	Use:           "sql-agent",
	Short:         "Natural language to SQL over an MCP database server",
	Long:          `sql-agent turns a question into a SQL query, optimizes it through a language model, and executes it against the sample sales database. Database access goes through a spawned MCP server process unless --direct is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", defaultDBPath(), "path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&flagServerCmd, "server-cmd", defaultServerCmd(), "command used to launch the MCP server")
	rootCmd.PersistentFlags().BoolVar(&flagDirect, "direct", false, "access the database in-process instead of via MCP")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", os.Getenv("OPENAI_MODEL"), "language model to use")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func defaultDBPath() string {
	if path := os.Getenv("SALES_DB_PATH"); path != "" {
		return path
	}
	return sampledb.DefaultPath
}

func defaultServerCmd() string {
	if cmd := os.Getenv("MCP_SERVER_COMMAND"); cmd != "" {
		return cmd
	}
	return "go run ./cmd/server"
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// newDatabase picks the MCP path or the direct path based on --direct.
func newDatabase(log zerolog.Logger) database {
	if flagDirect {
		return store.NewDirect(store.New(flagDB))
	}
	return newMCPClient(log)
}

// newMCPClient always returns the MCP facade, for commands that exercise the
// protocol itself. The spawned server inherits this process's environment,
// so the database path is handed over through it.
func newMCPClient(log zerolog.Logger) *client.DatabaseClient {
	os.Setenv("SALES_DB_PATH", flagDB)
	parts := strings.Fields(flagServerCmd)
	return client.NewDatabaseClient(log, parts[0], parts[1:]...)
}
