// cmd/truthguard/provider_gemini.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Google Gemini generateContent API.
type GeminiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiProvider creates a Gemini provider for the given key and model.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		client:  &http.Client{Timeout: ProviderTimeout},
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

func (p *GeminiProvider) Name() string {
	return "Gemini"
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the fact-check prompt and returns the raw completion text.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: factCheckSystemPrompt + "\n\n" + prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.1,
			MaxOutputTokens: 1500,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", NewProviderError("failed to encode Gemini request", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", NewProviderError("failed to build Gemini request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyProviderError(p.Name(), 0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewProviderError("failed to read Gemini response", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil && resp.StatusCode == http.StatusOK {
		return "", NewProviderError("failed to parse Gemini response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyProviderError(p.Name(), resp.StatusCode, parsed.Error.Message, nil)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", NewProviderError(p.Name()+" returned no candidates", nil)
	}

	GetLogger().Debug("Gemini completion took %s", time.Since(start))
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
