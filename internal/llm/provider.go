package llm

import "context"

// Provider is the optional generation capability. The prompt already carries
// all instructions and context; the provider only completes it.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
