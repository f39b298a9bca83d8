// cmd/truthguard/providers_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		inner      error
		wantKind   ErrorKind
	}{
		{"deadline exceeded", 0, "", context.DeadlineExceeded, KindProviderTimeout},
		{"canceled", 0, "", context.Canceled, KindProviderTimeout},
		{"status 429", 429, "Too Many Requests", nil, KindQuotaExceeded},
		{"quota in message", 400, "You exceeded your current quota", nil, KindQuotaExceeded},
		{"billing in message", 403, "billing hard limit reached", nil, KindQuotaExceeded},
		{"status 401", 401, "Unauthorized", nil, KindAuthError},
		{"invalid key in message", 400, "Invalid API key provided", nil, KindAuthError},
		{"status 500", 500, "Internal Server Error", nil, KindProviderUnavailable},
		{"status 503", 503, "overloaded", nil, KindProviderUnavailable},
		{"generic 400", 400, "bad request", nil, KindProviderError},
		{"transport error", 0, "", errors.New("connection refused"), KindProviderError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyProviderError("groq", tt.statusCode, tt.message, tt.inner)
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
		})
	}
}

func TestClassifyProviderErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusPaymentRequired,
		classifyProviderError("groq", 429, "", nil).HTTPStatus())
	assert.Equal(t, http.StatusGatewayTimeout,
		classifyProviderError("groq", 0, "", context.DeadlineExceeded).HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized,
		classifyProviderError("groq", 401, "", nil).HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable,
		classifyProviderError("groq", 502, "", nil).HTTPStatus())
	assert.Equal(t, http.StatusBadGateway,
		classifyProviderError("groq", 400, "bad request", nil).HTTPStatus())
}

func TestProvidersInOrder(t *testing.T) {
	a := &stubProvider{name: "a"}
	b := &stubProvider{name: "b"}
	c := &stubProvider{name: "c"}
	providers := []Provider{a, b, c}

	t.Run("default order preserved", func(t *testing.T) {
		ordered := providersInOrder(providers, false)
		require.Len(t, ordered, 3)
		assert.Equal(t, "a", ordered[0].Name())
		assert.Equal(t, "c", ordered[2].Name())
	})

	t.Run("retry reverses order", func(t *testing.T) {
		ordered := providersInOrder(providers, true)
		require.Len(t, ordered, 3)
		assert.Equal(t, "c", ordered[0].Name())
		assert.Equal(t, "a", ordered[2].Name())
	})

	t.Run("input slice untouched", func(t *testing.T) {
		providersInOrder(providers, true)
		assert.Equal(t, "a", providers[0].Name())
	})
}

func TestGeminiProviderComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"status\":\"true\"}"}]}}]}`)
	}))
	defer ts.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash")
	p.baseURL = ts.URL

	text, err := p.Complete(context.Background(), "check this")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"true"}`, text)
}

func TestGeminiProviderCompleteQuota(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota)."}}`)
	}))
	defer ts.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash")
	p.baseURL = ts.URL

	_, err := p.Complete(context.Background(), "check this")
	require.Error(t, err)

	tgErr, ok := AsTruthGuardError(err)
	require.True(t, ok)
	assert.Equal(t, KindQuotaExceeded, tgErr.Kind)
}
