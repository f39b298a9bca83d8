// cmd/truthguard/provider_openai.go
package main

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls the OpenAI chat-completion API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI provider for the given key and model.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string {
	return "OpenAI"
}

// Complete sends the fact-check prompt and returns the raw completion text.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: factCheckSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", classifyOpenAIError(p.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", NewProviderError(p.Name()+" returned no completion choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
