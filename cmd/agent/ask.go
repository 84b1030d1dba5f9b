package main

import (
	"context"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sql-agent-mcp/agent"
	"sql-agent-mcp/llm"
	"sql-agent-mcp/optimizer"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a natural-language question by generating and running SQL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		log := newLogger()

		if flagModel != "" {
			os.Setenv("OPENAI_MODEL", flagModel)
		}
		model, err := llm.NewOpenAIFromEnv()
		if err != nil {
			return err
		}

		db := newDatabase(log)
		pipeline := agent.New(db, model, log)

		spinner, _ := pterm.DefaultSpinner.Start("Processing your question...")
		state := pipeline.Run(context.Background(), question)
		if state.Err != "" {
			spinner.Fail(state.Err)
			return nil
		}
		spinner.Success("Done")

		pterm.DefaultSection.Println("Generated SQL")
		pterm.Println(state.SQLQuery)

		if state.OptimizedQuery != "" && state.OptimizedQuery != state.SQLQuery {
			pterm.DefaultSection.Println("Optimized SQL")
			pterm.Println(state.OptimizedQuery)

			comparison := optimizer.Compare(state.SQLQuery, state.OptimizedQuery)
			pterm.Printf("Complexity: %s  Estimated improvement: %s\n",
				comparison.ComplexityReduction, comparison.EstimatedImprovement)
		}

		if state.OptimizationDetails != "" {
			pterm.DefaultSection.Println("Optimization Details")
			pterm.Println(state.OptimizationDetails)
		}

		if state.QueryAnalysis != "" {
			pterm.DefaultSection.Println("Query Analysis")
			pterm.Println(state.QueryAnalysis)
		}

		pterm.DefaultSection.Println("Result")
		pterm.Println(state.Result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
