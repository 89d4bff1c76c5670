package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Estimate(prompt string) (*Estimate, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(estimateTemperature),
		MaxTokens:   openai.Int(estimateMaxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: "openai", Err: errors.New("empty response")}
	}

	content := resp.Choices[0].Message.Content
	if est, ok := parseChain(content, parseStrictJSON, parseBareMinutes); ok {
		return est, nil
	}
	return nil, &ParseError{Provider: "openai", Content: content}
}

func wrapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: "openai", Status: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: "openai", Err: err}
}
