package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		db := newDatabase(log)
		pterm.Println(db.GetSchema(context.Background()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
