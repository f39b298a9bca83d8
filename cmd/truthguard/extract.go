// cmd/truthguard/extract.go
//
// Best-effort structured extraction from free-form LLM output. Providers are
// asked for JSON but routinely wrap it in prose or Markdown fences, so the
// orchestrator funnels every raw completion through parseProviderResponse,
// which is guaranteed to produce a well-formed FactCheckResult.
package main

import (
	"encoding/json"
	"math"
	"strings"
)

// stripCodeFences removes a Markdown code-fence wrapper (```json ... ```)
// if one is present.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// extractJSONObject returns the first balanced {...} object in text. The scan
// tracks string literals and escapes so braces inside values do not confuse
// the depth count.
func extractJSONObject(text string) (string, bool) {
	text = stripCodeFences(text)

	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	return "", false
}

// fallbackResult is the deterministic degraded-service verdict substituted
// when a provider response cannot be parsed. The request still succeeds.
func fallbackResult() *FactCheckResult {
	return &FactCheckResult{
		Status:     StatusQuestionable,
		Confidence: 0.3,
		Reasoning:  DegradedReasoning,
		Sources:    []SourceRef{},
	}
}

// parseProviderResponse turns a raw completion into a FactCheckResult. It
// never fails: a response with no JSON object, unparseable JSON, or any of
// status/confidence/reasoning missing yields the fallback result instead.
func parseProviderResponse(raw string) *FactCheckResult {
	jsonText, ok := extractJSONObject(raw)
	if !ok {
		return fallbackResult()
	}

	dec := json.NewDecoder(strings.NewReader(jsonText))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return fallbackResult()
	}

	statusVal, hasStatus := fields["status"]
	confidenceVal, hasConfidence := fields["confidence"]
	reasoningVal, hasReasoning := fields["reasoning"]
	if !hasStatus || !hasConfidence || !hasReasoning {
		return fallbackResult()
	}

	result := &FactCheckResult{Sources: []SourceRef{}}

	if s, ok := statusVal.(string); ok {
		result.Status = s
	}
	if r, ok := reasoningVal.(string); ok {
		result.Reasoning = r
	}

	// Non-numeric confidence is coerced to 0.5 by normalizeResult; NaN is
	// the sentinel for "present but not a number".
	result.Confidence = math.NaN()
	if n, ok := confidenceVal.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			result.Confidence = f
		}
	}

	if rawSources, ok := fields["sources"]; ok {
		result.Sources = parseSources(rawSources)
	}

	normalizeResult(result)
	return result
}

// parseSources converts the provider's sources array, tolerating missing or
// mistyped entries.
func parseSources(raw interface{}) []SourceRef {
	items, ok := raw.([]interface{})
	if !ok {
		return []SourceRef{}
	}

	sources := make([]SourceRef, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		sources = append(sources, SourceRef{
			Name:        stringField(m, "name"),
			URL:         stringField(m, "url"),
			Credibility: stringField(m, "credibility"),
			Summary:     stringField(m, "summary"),
		})
	}
	return sources
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// normalizeResult enforces the output invariants in place: status is one of
// the three known verdicts, confidence is a finite number in [0,1], and every
// source field is non-empty. Applying it to an already-valid result is a
// no-op.
func normalizeResult(r *FactCheckResult) {
	switch r.Status {
	case StatusTrue, StatusQuestionable, StatusFake:
	default:
		r.Status = StatusQuestionable
	}

	if math.IsNaN(r.Confidence) || math.IsInf(r.Confidence, 0) ||
		r.Confidence < 0 || r.Confidence > 1 {
		r.Confidence = 0.5
	}

	if r.Sources == nil {
		r.Sources = []SourceRef{}
	}
	for i := range r.Sources {
		if strings.TrimSpace(r.Sources[i].Name) == "" {
			r.Sources[i].Name = DefaultSourceName
		}
		if strings.TrimSpace(r.Sources[i].URL) == "" {
			r.Sources[i].URL = DefaultSourceURL
		}
		switch r.Sources[i].Credibility {
		case CredibilityHigh, CredibilityMedium, CredibilityLow:
		default:
			r.Sources[i].Credibility = CredibilityMedium
		}
		if strings.TrimSpace(r.Sources[i].Summary) == "" {
			r.Sources[i].Summary = DefaultSourceSummary
		}
	}
}
