package ai

import (
	"net"
	"net/http"
	"strings"
)

// ErrorCategory buckets upstream AI failures so handlers can map them to
// HTTP statuses without leaking the raw provider payload to callers.
type ErrorCategory string

const (
	CategoryQuota      ErrorCategory = "quota_exceeded"
	CategoryRateLimit  ErrorCategory = "rate_limited"
	CategoryInvalidKey ErrorCategory = "invalid_key"
	CategoryConnection ErrorCategory = "connection"
	CategoryGeneric    ErrorCategory = "generic"
)

// Classify inspects an upstream error message and assigns a category.
// Providers only expose failure detail through message text, so this is
// string matching by necessity.
func Classify(err error) ErrorCategory {
	if err == nil {
		return CategoryGeneric
	}
	errStr := strings.ToLower(err.Error())

	for _, indicator := range []string{"rate limit", "too many requests"} {
		if strings.Contains(errStr, indicator) {
			return CategoryRateLimit
		}
	}
	for _, indicator := range []string{"quota", "resource exhausted", "resource_exhausted", "429"} {
		if strings.Contains(errStr, indicator) {
			return CategoryQuota
		}
	}
	for _, indicator := range []string{"api key", "api_key_invalid", "invalid key", "unauthenticated", "permission denied", "401", "403"} {
		if strings.Contains(errStr, indicator) {
			return CategoryInvalidKey
		}
	}
	if isConnectionError(err) {
		return CategoryConnection
	}
	return CategoryGeneric
}

// HTTPStatus maps a category to the status returned to the chat UI.
// Rate limiting is the only condition the caller can act on by backing off.
func HTTPStatus(cat ErrorCategory) int {
	if cat == CategoryRateLimit {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// UserMessage is the caller-facing message for a category. The raw upstream
// error never crosses the API boundary.
func UserMessage(cat ErrorCategory) string {
	switch cat {
	case CategoryQuota:
		return "AI provider quota exceeded"
	case CategoryRateLimit:
		return "AI provider rate limited, retry later"
	case CategoryInvalidKey:
		return "AI provider rejected the configured API key"
	case CategoryConnection:
		return "AI provider unreachable"
	default:
		return "AI reply generation failed"
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isQuotaError reports whether the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	cat := Classify(err)
	return cat == CategoryQuota || cat == CategoryRateLimit
}
