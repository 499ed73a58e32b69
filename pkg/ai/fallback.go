package ai

import (
	"context"
	"fmt"
	"log"
)

// FallbackService routes reply drafting across providers:
// Gemini first (better at tone), fallback to Ollama on connection or quota
// errors so the BDC keeps getting suggestions when the hosted API is down.
type FallbackService struct {
	gemini ReplyGenerator
	ollama *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini ReplyGenerator, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// GenerateReplies tries Gemini first, falls back to Ollama on quota or
// connection errors.
func (f *FallbackService) GenerateReplies(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if f.gemini != nil {
		result, err := f.gemini.GenerateReplies(ctx, systemPrompt, userPrompt)
		if err == nil {
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] Gemini quota exhausted: %v, falling back to Ollama", err)
		} else if isConnectionError(err) {
			log.Printf("[AI] Gemini connection failed: %v, falling back to Ollama", err)
		} else {
			// Non-retryable (e.g. invalid key) still gets one shot at Ollama
			log.Printf("[AI] Gemini error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.GenerateReplies(ctx, systemPrompt, userPrompt)
		if err == nil {
			return result, nil
		}
		return "", fmt.Errorf("ollama reply generation failed: %w", err)
	}

	return "", fmt.Errorf("no AI provider available for reply generation")
}
