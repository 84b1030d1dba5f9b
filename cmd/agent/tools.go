package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the MCP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		c := newMCPClient(log)

		tools, err := c.ListTools(context.Background())
		if err != nil {
			return err
		}

		rows := pterm.TableData{{"Name", "Description"}}
		for _, tool := range tools {
			rows = append(rows, []string{tool.Name, tool.Description})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
