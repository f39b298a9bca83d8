// cmd/truthguard/providers.go
package main

import (
	"context"
	"errors"
	"strings"
)

// Provider is a single LLM chat-completion backend. Complete returns the raw
// text of the completion; implementations classify their own failures into
// TruthGuardError kinds via classifyProviderError.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// quotaIndicators in an upstream error message mark quota/billing exhaustion
// regardless of the status code used to deliver it.
var quotaIndicators = []string{"quota", "limit", "billing"}

// classifyProviderError maps an upstream failure to the error taxonomy.
// statusCode is the provider's HTTP status when one was received, 0 otherwise.
func classifyProviderError(provider string, statusCode int, message string, inner error) *TruthGuardError {
	if inner != nil && (errors.Is(inner, context.DeadlineExceeded) || errors.Is(inner, context.Canceled)) {
		return NewTimeoutError(provider+" request timed out", inner)
	}

	lower := strings.ToLower(message)

	if statusCode == 429 || containsAny(lower, quotaIndicators) {
		return NewQuotaError(provider+" API quota exceeded. Please check your API key and usage limits.", inner)
	}

	if statusCode == 401 || strings.Contains(lower, "invalid key") || strings.Contains(lower, "invalid api key") {
		return NewAuthError("Invalid "+provider+" API key. Please check your API key configuration.", inner)
	}

	if statusCode >= 500 {
		return NewUnavailableError(provider+" service temporarily unavailable. Please try again in a few minutes.", inner)
	}

	if message == "" && inner != nil {
		message = inner.Error()
	}
	return NewProviderError(provider+" API error: "+message, inner)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// providersInOrder returns the fallback attempt order. When the client set
// the retry flag the preference is reversed so the provider that was not
// tried on the previous attempt goes first.
func providersInOrder(providers []Provider, retry bool) []Provider {
	ordered := make([]Provider, len(providers))
	copy(ordered, providers)
	if retry {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	return ordered
}
