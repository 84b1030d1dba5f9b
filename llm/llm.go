// Package llm abstracts the hosted language model as a text-in/text-out
// function. The pipeline and optimizer depend only on the Client interface;
// the OpenAI implementation lives in openai.go.
package llm

import "context"

// Client generates a completion for a system prompt and a user message.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
