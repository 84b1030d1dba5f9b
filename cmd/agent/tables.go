package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		db := newDatabase(log)
		pterm.Println(db.ListTables(context.Background()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
