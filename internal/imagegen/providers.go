// Package imagegen generates campaign creative through a provider
// fallback chain, ending at curated stock images so a post is never
// left without artwork.
package imagegen

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

// Provider generates a single image and returns its URL
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// imageResponse is the shared response shape for image generation APIs
type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// RESTProvider posts to a pre-configured image generation endpoint.
// Azure endpoints are detected by hostname and get the api-key header
// and a trimmed payload (no model/quality fields).
type RESTProvider struct {
	endpoint   string
	apiKey     string
	model      string
	size       string
	httpClient httpretry.HTTPDoer
}

// NewRESTProvider creates a provider for a custom image endpoint
func NewRESTProvider(cfg config.ImageConfig) *RESTProvider {
	size := cfg.Size
	if size == "" {
		size = "1024x1024"
	}
	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}
	return &RESTProvider{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    model,
		size:     size,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 1),
	}
}

// Name identifies this provider in logs
func (p *RESTProvider) Name() string { return "image_rest" }

func (p *RESTProvider) isAzure() bool {
	return strings.Contains(strings.ToLower(p.endpoint), "azure.com")
}

// Generate requests one image and returns its URL
func (p *RESTProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.endpoint == "" || p.apiKey == "" {
		return "", fmt.Errorf("image_rest: endpoint and API key are required")
	}

	payload := map[string]interface{}{
		"prompt": prompt,
		"n":      1,
		"size":   p.size,
	}
	if !p.isAzure() {
		payload["model"] = p.model
		payload["quality"] = "standard"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.isAzure() {
		req.Header.Set("api-key", p.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseImageResponse(resp, "image_rest")
}

// OpenAIProvider calls the OpenAI images API, walking down a ladder of
// models when the preferred one is unavailable.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	size       string
	models     []string
	httpClient httpretry.HTTPDoer
}

// NewOpenAIProvider creates an OpenAI images provider
func NewOpenAIProvider(cfg config.OpenAIConfig, size string) *OpenAIProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if size == "" {
		size = "1024x1024"
	}
	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		size:    size,
		models:  []string{"dall-e-3", "gpt-image-1", "dall-e-2"},
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: 90 * time.Second,
		}, 1),
	}
}

// Name identifies this provider in logs
func (p *OpenAIProvider) Name() string { return "openai_images" }

// Generate tries each model in order until one returns an image
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("openai_images: API key not configured")
	}

	var lastErr error
	for _, model := range p.models {
		modelPrompt := prompt
		if model == "dall-e-2" && len(modelPrompt) > 1000 {
			// dall-e-2 has a shorter prompt limit
			modelPrompt = modelPrompt[:1000]
		}

		url, err := p.generateWithModel(ctx, model, modelPrompt)
		if err == nil {
			return url, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("openai_images: all models failed: %w", lastErr)
}

func (p *OpenAIProvider) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"n":      1,
		"size":   p.size,
	}
	if model == "dall-e-3" {
		payload["quality"] = "standard"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewReader(body))
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

	return parseImageResponse(resp, "openai_images")
}

func parseImageResponse(resp *http.Response, provider string) (string, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed imageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s: failed to parse response (status %d)", provider, resp.StatusCode)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%s: API error: %s", provider, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", provider, resp.StatusCode)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("%s: response contained no image URL", provider)
	}
	return parsed.Data[0].URL, nil
}
