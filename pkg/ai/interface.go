package ai

import "context"

// ReplyGenerator is the interface for AI reply drafting.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type ReplyGenerator interface {
	// GenerateReplies takes a fixed system instruction plus a user section
	// (conversation context and transcript) and returns the provider's raw
	// text output. Parsing the output into candidates is the caller's job.
	GenerateReplies(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
