package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// bedrockInvoker is the subset of the Bedrock runtime client we use
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider calls Anthropic models through AWS Bedrock.
// All traffic stays inside AWS, which matters for accounts that can't
// send data to third-party APIs.
type BedrockProvider struct {
	client  bedrockInvoker
	modelID string
	region  string
}

// bedrockMessage is a message in Anthropic's Bedrock format
type bedrockMessage struct {
	Role    string                `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// bedrockRequest is the InvokeModel request body for Anthropic models
type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockProvider creates a Bedrock-backed text provider using the
// default AWS credential chain.
func NewBedrockProvider(cfg config.BedrockConfig) (*BedrockProvider, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("bedrock: failed to load AWS config: %w", err)
	}

	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "anthropic.claude-3-haiku-20240307-v1:0"
	}

	logger.Info("textgen: Bedrock provider initialized", "model", modelID, "region", region)
	return &BedrockProvider{
		client:  bedrockruntime.NewFromConfig(awsCfg),
		modelID: modelID,
		region:  region,
	}, nil
}

// Name identifies this provider in logs
func (p *BedrockProvider) Name() string { return "bedrock" }

// Complete sends a single-turn request via InvokeModel
func (p *BedrockProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1500,
		System:           system,
		Temperature:      0.7,
		Messages: []bedrockMessage{
			{
				Role:    "user",
				Content: []bedrockContentBlock{{Type: "text", Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: failed to marshal request: %w", err)
	}

	output, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: API error: %w", err)
	}

	var parsed bedrockResponse
	if err := json.Unmarshal(output.Body, &parsed); err != nil {
		return "", fmt.Errorf("bedrock: failed to parse response: %w", err)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("bedrock: empty response")
	}
	return text, nil
}
