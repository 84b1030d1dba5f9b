// Package optimizer rewrites and analyzes generated SQL through the language
// model. The model does the actual optimization work; this package owns the
// prompts, pulls the rewritten statement out of the reply, and falls back to
// the original query whenever extraction or the model call fails.
package optimizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"sql-agent-mcp/llm"
)

const optimizationSystemPrompt = `You are a SQL optimization expert. Your task is to analyze and optimize SQL queries for better performance.

Given a SQL query and database schema, provide:
1. An optimized version of the query
2. Specific optimizations applied
3. Performance impact assessment
4. Explanation of changes

Optimization techniques to consider:
- Index usage optimization
- JOIN order optimization
- WHERE clause optimization
- SELECT clause optimization (avoid SELECT *)
- Subquery to JOIN conversion
- LIMIT usage for large result sets
- Proper use of DISTINCT
- Date/time filtering optimization

Rules:
- Maintain the same query logic and results
- Only suggest realistic optimizations for SQLite
- Explain each optimization clearly
- If no optimization is needed, say so

Database Schema:
%s

Original Query:
%s`

const analysisSystemPrompt = `You are a SQL performance analyst. Analyze the given SQL query and provide insights.

Provide analysis on:
1. Query complexity (Simple/Medium/Complex)
2. Potential performance bottlenecks
3. Resource usage estimation
4. Scalability concerns
5. Best practices compliance

Database Schema:
%s

Query to analyze:
%s`

var (
	sqlFenceRe = regexp.MustCompile("(?is)```sql\\s*\\n(.*?)\\n```")
	anyFenceRe = regexp.MustCompile("(?s)```\\s*\\n(.*?)\\n```")
)

// Optimizer runs optimization and analysis prompts against the model.
type Optimizer struct {
	model llm.Client
}

// New returns an Optimizer backed by the given model client.
func New(model llm.Client) *Optimizer {
	return &Optimizer{model: model}
}

// Result holds the outcome of one optimization pass.
type Result struct {
	OriginalQuery  string
	OptimizedQuery string
	Details        string
}

// Optimize asks the model to rewrite the query. When no SQL can be extracted
// from the reply the original query is kept, so the result is always
// executable.
func (o *Optimizer) Optimize(ctx context.Context, query, schema string) (Result, error) {
	system := fmt.Sprintf(optimizationSystemPrompt, schema, query)
	reply, err := o.model.Generate(ctx, system, "Please optimize this SQL query and explain your optimizations.")
	if err != nil {
		return Result{OriginalQuery: query, OptimizedQuery: query}, fmt.Errorf("optimizing query: %w", err)
	}

	optimized := ExtractSQL(reply)
	if optimized == "" {
		optimized = query
	}
	return Result{
		OriginalQuery:  query,
		OptimizedQuery: optimized,
		Details:        reply,
	}, nil
}

// Analyze asks the model for a performance assessment of the query.
func (o *Optimizer) Analyze(ctx context.Context, query, schema string) (string, error) {
	system := fmt.Sprintf(analysisSystemPrompt, schema, query)
	reply, err := o.model.Generate(ctx, system, "Please analyze this SQL query for performance characteristics.")
	if err != nil {
		return "", fmt.Errorf("analyzing query: %w", err)
	}
	return reply, nil
}

// ExtractSQL pulls a SQL statement out of a model reply. Tagged code fences
// win; an untagged fence counts only when it looks like SQL.
func ExtractSQL(reply string) string {
	if m := sqlFenceRe.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFenceRe.FindStringSubmatch(reply); m != nil {
		candidate := strings.TrimSpace(m[1])
		upper := strings.ToUpper(candidate)
		for _, keyword := range []string{"SELECT", "FROM", "WHERE", "JOIN"} {
			if strings.Contains(upper, keyword) {
				return candidate
			}
		}
	}
	return ""
}

// Comparison holds rough metrics between an original and optimized query.
type Comparison struct {
	OriginalLength       int
	OptimizedLength      int
	ComplexityReduction  string
	EstimatedImprovement string
}

// Compare produces heuristic metrics for the two queries. Actual execution
// plans are out of scope; this counts structural features only.
func Compare(original, optimized string) Comparison {
	return Comparison{
		OriginalLength:       len(original),
		OptimizedLength:      len(optimized),
		ComplexityReduction:  complexityReduction(original, optimized),
		EstimatedImprovement: estimatedImprovement(original, optimized),
	}
}

func complexityReduction(original, optimized string) string {
	originalUpper := strings.ToUpper(original)
	optimizedUpper := strings.ToUpper(optimized)

	originalJoins := strings.Count(originalUpper, "JOIN")
	optimizedJoins := strings.Count(optimizedUpper, "JOIN")

	// Subtract the main SELECT to count subqueries only.
	originalSubqueries := strings.Count(originalUpper, "SELECT") - 1
	optimizedSubqueries := strings.Count(optimizedUpper, "SELECT") - 1

	switch {
	case optimizedJoins < originalJoins || optimizedSubqueries < originalSubqueries:
		return "Reduced"
	case optimizedJoins > originalJoins || optimizedSubqueries > originalSubqueries:
		return "Increased"
	default:
		return "Similar"
	}
}

func estimatedImprovement(original, optimized string) string {
	originalUpper := strings.ToUpper(original)
	optimizedUpper := strings.ToUpper(optimized)

	var improvements []string
	if strings.Contains(originalUpper, "SELECT *") && !strings.Contains(optimizedUpper, "SELECT *") {
		improvements = append(improvements, "reduced column scan")
	}
	if !strings.Contains(originalUpper, "LIMIT") && strings.Contains(optimizedUpper, "LIMIT") {
		improvements = append(improvements, "bounded result set")
	}
	if strings.Count(originalUpper, "SELECT") > strings.Count(optimizedUpper, "SELECT") {
		improvements = append(improvements, "fewer subqueries")
	}
	if len(improvements) == 0 {
		return "Minimal"
	}
	return strings.Join(improvements, ", ")
}
