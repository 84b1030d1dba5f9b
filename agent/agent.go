// Package agent runs the question-to-result pipeline: fetch the schema,
// have the model write SQL for the question, have the model rewrite it,
// execute the winner. The four steps are strictly sequential; a step that
// records an error makes the remaining steps no-ops, so Run always returns
// a complete State.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sql-agent-mcp/llm"
	"sql-agent-mcp/optimizer"
)

// Database is the slice of the database client the pipeline needs. Both the
// MCP client facade and the in-process direct store satisfy it.
type Database interface {
	Query(ctx context.Context, query string) string
	GetSchema(ctx context.Context) string
}

// State accumulates the intermediate and final outputs of one pipeline run.
type State struct {
	Question            string
	Schema              string
	SQLQuery            string
	OptimizedQuery      string
	OptimizationDetails string
	QueryAnalysis       string
	Result              string
	Err                 string
}

// Pipeline wires the database, the model, and the optimizer together.
type Pipeline struct {
	db  Database
	llm llm.Client
	opt *optimizer.Optimizer
	log zerolog.Logger
}

// New returns a Pipeline over the given collaborators.
func New(db Database, model llm.Client, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		db:  db,
		llm: model,
		opt: optimizer.New(model),
		log: log,
	}
}

// Run executes the four pipeline steps for one question.
func (p *Pipeline) Run(ctx context.Context, question string) *State {
	state := &State{Question: question}

	p.fetchSchema(ctx, state)
	p.generateSQL(ctx, state)
	p.optimizeSQL(ctx, state)
	p.executeSQL(ctx, state)

	return state
}

func (p *Pipeline) fetchSchema(ctx context.Context, state *State) {
	state.Schema = p.db.GetSchema(ctx)
	p.log.Debug().Msg("schema retrieved")
}

func (p *Pipeline) generateSQL(ctx context.Context, state *State) {
	if state.Err != "" {
		return
	}

	system := fmt.Sprintf(generationSystemPrompt, state.Schema)
	reply, err := p.llm.Generate(ctx, system, "Question: "+state.Question)
	if err != nil {
		state.Err = "Error generating SQL: " + err.Error()
		p.log.Error().Err(err).Msg("SQL generation failed")
		return
	}

	state.SQLQuery = stripFences(reply)
	p.log.Debug().Str("sql", state.SQLQuery).Msg("SQL generated")
}

func (p *Pipeline) optimizeSQL(ctx context.Context, state *State) {
	if state.Err != "" || state.SQLQuery == "" {
		return
	}

	result, err := p.opt.Optimize(ctx, state.SQLQuery, state.Schema)
	if err != nil {
		// Optimization failure is not fatal; the original query still runs.
		state.OptimizedQuery = state.SQLQuery
		state.OptimizationDetails = "Error optimizing: " + err.Error()
		p.log.Warn().Err(err).Msg("optimization failed")
		return
	}
	state.OptimizedQuery = result.OptimizedQuery
	state.OptimizationDetails = result.Details

	analysis, err := p.opt.Analyze(ctx, state.SQLQuery, state.Schema)
	if err != nil {
		p.log.Warn().Err(err).Msg("analysis failed")
		return
	}
	state.QueryAnalysis = analysis
}

func (p *Pipeline) executeSQL(ctx context.Context, state *State) {
	if state.Err != "" {
		return
	}

	query := state.OptimizedQuery
	if query == "" {
		query = state.SQLQuery
	}
	state.Result = p.db.Query(ctx, query)
	p.log.Debug().Msg("query executed")
}

// stripFences removes a surrounding markdown code fence from a model reply.
func stripFences(reply string) string {
	sql := strings.TrimSpace(reply)
	if strings.HasPrefix(sql, "```sql") {
		sql = sql[len("```sql"):]
	}
	if strings.HasPrefix(sql, "```") {
		sql = sql[len("```"):]
	}
	if strings.HasSuffix(sql, "```") {
		sql = sql[:len(sql)-len("```")]
	}
	return strings.TrimSpace(sql)
}
