package ai

import "context"

// LLMProvider sends a prompt to an LLM and returns the raw text response,
// constrained to the given JSON schema. Used only inside this package.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string, schemaName string, schema map[string]any) (string, error)
}
