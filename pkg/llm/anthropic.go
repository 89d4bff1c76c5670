package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(anthropic.ModelClaude3_5HaikuLatest)
	}
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (c *AnthropicClient) Name() string {
	return "anthropic"
}

func (c *AnthropicClient) Estimate(prompt string) (*Estimate, error) {
	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   estimateMaxTokens,
		Temperature: anthropic.Float(estimateTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, wrapAnthropicError(err)
	}

	if len(resp.Content) == 0 {
		return nil, &ProviderError{Provider: "anthropic", Err: errors.New("empty response")}
	}

	content := resp.Content[0].Text
	if est, ok := parseChain(content, parseStrictJSON, parseBareMinutes); ok {
		return est, nil
	}
	return nil, &ParseError{Provider: "anthropic", Content: content}
}

func wrapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: "anthropic", Status: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: "anthropic", Err: err}
}
