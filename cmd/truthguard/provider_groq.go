// cmd/truthguard/provider_groq.go
package main

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider calls Groq's OpenAI-compatible chat-completion endpoint.
type GroqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider creates a Groq provider for the given key and model.
func NewGroqProvider(apiKey, model string) *GroqProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = groqBaseURL
	return &GroqProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (p *GroqProvider) Name() string {
	return "Groq"
}

// Complete sends the fact-check prompt and returns the raw completion text.
func (p *GroqProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: factCheckSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   1500,
		TopP:        0.9,
	})
	if err != nil {
		return "", classifyOpenAIError(p.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", NewProviderError(p.Name()+" returned no completion choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError maps go-openai client errors (shared by the Groq and
// OpenAI providers) onto the error taxonomy.
func classifyOpenAIError(provider string, err error) *TruthGuardError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyProviderError(provider, apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	return classifyProviderError(provider, 0, "", err)
}
