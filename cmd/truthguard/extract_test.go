// cmd/truthguard/extract_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"status":"true"}`,
			want:  `{"status":"true"}`,
			found: true,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"status\":\"fake\"}\n```",
			want:  `{"status":"fake"}`,
			found: true,
		},
		{
			name:  "plain code fence",
			input: "```\n{\"status\":\"fake\"}\n```",
			want:  `{"status":"fake"}`,
			found: true,
		},
		{
			name:  "prose around object",
			input: `Sure, here is the analysis: {"status":"true","confidence":0.9} Hope that helps!`,
			want:  `{"status":"true","confidence":0.9}`,
			found: true,
		},
		{
			name:  "nested objects",
			input: `{"a":{"b":{"c":1}},"d":2}`,
			want:  `{"a":{"b":{"c":1}},"d":2}`,
			found: true,
		},
		{
			name:  "braces inside string values",
			input: `{"reasoning":"uses { and } literally","status":"true"}`,
			want:  `{"reasoning":"uses { and } literally","status":"true"}`,
			found: true,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"reasoning":"she said \"it is {true}\"","status":"true"}`,
			want:  `{"reasoning":"she said \"it is {true}\"","status":"true"}`,
			found: true,
		},
		{
			name:  "no object present",
			input: "The statement appears to be true based on available evidence.",
			found: false,
		},
		{
			name:  "truncated object",
			input: `{"status":"true","confidence":`,
			found: false,
		},
		{
			name:  "empty input",
			input: "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := extractJSONObject(tt.input)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseProviderResponseValid(t *testing.T) {
	raw := `{"status":"fake","confidence":0.95,"reasoning":"Contradicted by satellite imagery.","sources":[{"name":"NASA","url":"https://nasa.gov","credibility":"high","summary":"Earth is an oblate spheroid."}]}`

	result := parseProviderResponse(raw)

	assert.Equal(t, StatusFake, result.Status)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, "Contradicted by satellite imagery.", result.Reasoning)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "NASA", result.Sources[0].Name)
	assert.Equal(t, CredibilityHigh, result.Sources[0].Credibility)
}

func TestParseProviderResponseFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I believe this statement is most likely false."},
		{"truncated braces", `{"status":"fake","confidence":0.9`},
		{"missing status", `{"confidence":0.9,"reasoning":"because"}`},
		{"missing confidence", `{"status":"true","reasoning":"because"}`},
		{"missing reasoning", `{"status":"true","confidence":0.9}`},
		{"empty response", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseProviderResponse(tt.raw)
			assert.Equal(t, StatusQuestionable, result.Status)
			assert.Equal(t, 0.3, result.Confidence)
			assert.Equal(t, DegradedReasoning, result.Reasoning)
			assert.Empty(t, result.Sources)
			assert.NotNil(t, result.Sources)
		})
	}
}

func TestParseProviderResponseCoercions(t *testing.T) {
	t.Run("unknown status coerced to questionable", func(t *testing.T) {
		result := parseProviderResponse(`{"status":"mostly-true","confidence":0.8,"reasoning":"r"}`)
		assert.Equal(t, StatusQuestionable, result.Status)
		assert.Equal(t, 0.8, result.Confidence)
	})

	t.Run("non-numeric confidence coerced to 0.5", func(t *testing.T) {
		result := parseProviderResponse(`{"status":"true","confidence":"high","reasoning":"r"}`)
		assert.Equal(t, StatusTrue, result.Status)
		assert.Equal(t, 0.5, result.Confidence)
	})

	t.Run("out-of-range confidence coerced to 0.5", func(t *testing.T) {
		for _, conf := range []string{"1.7", "-0.2", "42"} {
			result := parseProviderResponse(`{"status":"true","confidence":` + conf + `,"reasoning":"r"}`)
			assert.Equal(t, 0.5, result.Confidence, "confidence %s", conf)
		}
	})

	t.Run("source defaults substituted", func(t *testing.T) {
		result := parseProviderResponse(`{"status":"true","confidence":0.9,"reasoning":"r","sources":[{}]}`)
		require.Len(t, result.Sources, 1)
		assert.Equal(t, DefaultSourceName, result.Sources[0].Name)
		assert.Equal(t, DefaultSourceURL, result.Sources[0].URL)
		assert.Equal(t, CredibilityMedium, result.Sources[0].Credibility)
		assert.Equal(t, DefaultSourceSummary, result.Sources[0].Summary)
	})

	t.Run("invalid credibility coerced to medium", func(t *testing.T) {
		result := parseProviderResponse(`{"status":"true","confidence":0.9,"reasoning":"r","sources":[{"name":"X","url":"https://x.com","credibility":"excellent","summary":"s"}]}`)
		require.Len(t, result.Sources, 1)
		assert.Equal(t, CredibilityMedium, result.Sources[0].Credibility)
	})
}

func TestNormalizeResultIdempotent(t *testing.T) {
	result := &FactCheckResult{
		Status:     "bogus",
		Confidence: 3.5,
		Reasoning:  "r",
		Sources:    []SourceRef{{Credibility: "excellent"}},
	}

	normalizeResult(result)
	first := *result
	firstSources := append([]SourceRef(nil), result.Sources...)

	normalizeResult(result)
	assert.Equal(t, first.Status, result.Status)
	assert.Equal(t, first.Confidence, result.Confidence)
	assert.Equal(t, firstSources, result.Sources)
}

func TestNormalizeResultValidIsNoOp(t *testing.T) {
	result := &FactCheckResult{
		Status:     StatusTrue,
		Confidence: 0.85,
		Reasoning:  "verified",
		Sources: []SourceRef{
			{Name: "Reuters", URL: "https://reuters.com", Credibility: CredibilityHigh, Summary: "confirms"},
		},
	}
	before := *result
	beforeSources := append([]SourceRef(nil), result.Sources...)

	normalizeResult(result)
	assert.Equal(t, before.Status, result.Status)
	assert.Equal(t, before.Confidence, result.Confidence)
	assert.Equal(t, beforeSources, result.Sources)
}
