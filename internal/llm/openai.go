package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxImageBytes is the service's JPEG upload limit (20 MB).
const maxImageBytes = 20 * 1024 * 1024

// openAIClient implements the Client interface for the OpenAI chat
// completions API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// CompleteText sends a text-only classification request.
func (c *openAIClient) CompleteText(ctx context.Context, system, user string) (string, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}
	return c.complete(ctx, requestBody)
}

// CompleteImage sends a classification request carrying a JPEG as an inline
// data URL alongside the user text.
func (c *openAIClient) CompleteImage(ctx context.Context, system, user string, jpeg []byte) (string, error) {
	if len(jpeg) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrRequest)
	}
	if len(jpeg) > maxImageBytes {
		return "", fmt.Errorf("%w: image is %d bytes, limit is %d", ErrRequest, len(jpeg), maxImageBytes)
	}

	encoded := base64.StdEncoding.EncodeToString(jpeg)
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": user},
					{
						"type": "image_url",
						"image_url": map[string]any{
							"url": "data:image/jpeg;base64," + encoded,
						},
					},
				},
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}
	return c.complete(ctx, requestBody)
}

// complete performs one round-trip and returns the reply text.
func (c *openAIClient) complete(ctx context.Context, requestBody map[string]any) (string, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequest, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: apiErrorMessage(body)}
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", ErrInvalidResponse)
	}

	return response.Choices[0].Message.Content, nil
}

// apiErrorMessage digs the human-readable message out of an error body,
// falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}

// openAIResponse represents the chat completions response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}
