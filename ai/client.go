package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrEmptyCompletion is returned when the upstream replies successfully
	// but carries no usable choice content.
	ErrEmptyCompletion = errors.New("completion returned no usable content")
	// ErrMissingAPIKey is returned when no API key was configured.
	ErrMissingAPIKey = errors.New("completion API key is required")
)

// ClientConfig holds the network configuration for the completion client.
// The client is stateless beyond this; nothing request-scoped lives on it.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultClientConfig returns the reference generation parameters
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   150,
		Timeout:     30 * time.Second,
	}
}

// Client talks to an OpenAI-compatible chat completion endpoint
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a completion client from the given configuration
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type chatCompletionRequest struct {
	Model       string  `json:"model"`
	Messages    []Turn  `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the assembled context window to the completion service and
// returns the generated text. A single failure (timeout, upstream error,
// empty choice list) is surfaced as-is; there is no retry.
func (c *Client) Complete(ctx context.Context, turns []Turn) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    turns,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling completion request: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling completion service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading completion response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("error decoding completion response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("completion service error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion service returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
