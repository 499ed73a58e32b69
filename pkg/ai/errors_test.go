package ai

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"rate limit", fmt.Errorf("Gemini API error: too many requests"), CategoryRateLimit},
		{"rate limit phrase", fmt.Errorf("rate limit exceeded for model"), CategoryRateLimit},
		{"quota", fmt.Errorf("RESOURCE_EXHAUSTED: quota exceeded"), CategoryQuota},
		{"quota status", fmt.Errorf("Gemini API error (status 429): exhausted"), CategoryQuota},
		{"invalid key", fmt.Errorf("API_KEY_INVALID: pass a valid api key"), CategoryInvalidKey},
		{"forbidden", fmt.Errorf("Gemini API error (status 403): permission denied"), CategoryInvalidKey},
		{"connection", fmt.Errorf("dial tcp 127.0.0.1:11434: connection refused"), CategoryConnection},
		{"timeout", fmt.Errorf("context deadline exceeded"), CategoryConnection},
		{"generic", fmt.Errorf("model exploded"), CategoryGeneric},
		{"nil", nil, CategoryGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(CategoryRateLimit))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CategoryQuota))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CategoryInvalidKey))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CategoryGeneric))
}
