package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/pkg/httpretry"
)

// OpenAIProvider calls the OpenAI chat completions API
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient httpretry.HTTPDoer
}

// chatMessage is a message in the chat completions conversation
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for chat completions
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatResponse is the response from chat completions
type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIProvider creates an OpenAI-backed text provider
func NewOpenAIProvider(cfg config.OpenAIConfig) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 2),
	}
}

// Name identifies this provider in logs
func (p *OpenAIProvider) Name() string { return "openai" }

// Complete sends a single-turn chat completion request
func (p *OpenAIProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("openai: API key not configured")
	}

	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("openai: failed to parse response: %w (body: %s)", err, truncate(string(respBody), 200))
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai: API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
