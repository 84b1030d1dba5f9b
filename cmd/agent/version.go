package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time with -ldflags.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sql-agent version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sql-agent %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
