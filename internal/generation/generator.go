// Package generation provides text generation via remote OpenAI-compatible
// chat-completion providers.
package generation

import "context"

// Generator produces free text from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
