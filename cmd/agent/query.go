package main

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a SQL statement against the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		db := newDatabase(log)
		pterm.Println(db.Query(context.Background(), strings.Join(args, " ")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
