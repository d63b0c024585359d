// Package openrouter provides the chat-completion client used by the recipe
// generation pipeline. It speaks the OpenAI-compatible wire format served by
// OpenRouter and similar gateways.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aislehq/pantry/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client implements the CompletionService port over HTTP.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	topP        float64
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new completion client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		topP:        cfg.TopP,
		temperature: cfg.Temperature,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("openrouter"),
	}
}

// Wire structures for the chat-completions endpoint
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	TopP        float64   `json:"top_p"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message message `json:"message"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete sends the prompt as a single user-role message and returns the
// first choice's message text. Any response missing the expected fields is a
// protocol error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		TopP:        c.topP,
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion service error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("malformed completion response: no choices")
	}
	if chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("malformed completion response: empty message content")
	}

	c.logger.Info("Completion call successful",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
		zap.Int("total_tokens", chatResp.Usage.TotalTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}
