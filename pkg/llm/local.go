package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultLocalURL   = "http://localhost:11434"
	defaultLocalModel = "llama3"
)

// LocalClient talks to an Ollama-style self-hosted generation server.
type LocalClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewLocalClient(baseURL, model string) *LocalClient {
	if baseURL == "" {
		baseURL = defaultLocalURL
	}
	if model == "" {
		model = defaultLocalModel
	}
	return &LocalClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *LocalClient) Name() string {
	return "local"
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Estimate never returns a ParseError: when no parse stage can read the
// reply, it answers a fixed 60-minute default instead. Local models are the
// least disciplined about output format, so a lenient floor beats failing.
func (c *LocalClient) Estimate(prompt string) (*Estimate, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("local request encode: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: "local", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ProviderError{Provider: "local", Status: resp.StatusCode, Body: string(errBody)}
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("local decode: %w", err)
	}

	if est, ok := parseChain(generated.Response, parseEmbeddedJSON, parseBareMinutes); ok {
		return est, nil
	}
	return &Estimate{Minutes: 60, Reasoning: "could not parse"}, nil
}
