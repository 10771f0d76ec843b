package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/pkg/httpretry"
)

// AzureProvider calls an Azure OpenAI deployment. The wire format
// matches the OpenAI chat completions API, only the URL scheme and
// auth header differ.
type AzureProvider struct {
	apiKey     string
	endpoint   string
	deployment string
	apiVersion string
	httpClient httpretry.HTTPDoer
}

// NewAzureProvider creates an Azure OpenAI-backed text provider
func NewAzureProvider(cfg config.AzureConfig) *AzureProvider {
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-02-01"
	}
	return &AzureProvider{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		deployment: cfg.Deployment,
		apiVersion: apiVersion,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: 60 * time.Second,
		}, 2),
	}
}

// Name identifies this provider in logs
func (p *AzureProvider) Name() string { return "azure_openai" }

// Complete sends a single-turn chat completion request to the deployment
func (p *AzureProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	if p.apiKey == "" || p.endpoint == "" || p.deployment == "" {
		return "", fmt.Errorf("azure_openai: endpoint, deployment, and API key are required")
	}

	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.deployment,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		p.endpoint, p.deployment, p.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.apiKey)

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
		return "", fmt.Errorf("azure_openai: failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("azure_openai: API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure_openai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("azure_openai: empty response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
