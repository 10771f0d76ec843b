package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreProfile     `yaml:"store"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Azure      AzureConfig      `yaml:"azure"`
	Bedrock    BedrockConfig    `yaml:"bedrock"`
	Image      ImageConfig      `yaml:"image"`
	Redis      RedisConfig      `yaml:"redis"`
	Simulation SimulationConfig `yaml:"simulation"`
	Publisher  PublisherConfig  `yaml:"publisher"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StoreProfile describes the retail business the agent works for
type StoreProfile struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"` // "fashion", "food", "technology", "beauty", "home"
	Location       string `yaml:"location"`
	HasOnlineStore bool   `yaml:"has_online_store"`
}

// OpenAIConfig holds OpenAI API configuration for content generation
type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AzureConfig holds Azure OpenAI configuration
type AzureConfig struct {
	APIKey     string `yaml:"api_key"`
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	Enabled    bool   `yaml:"enabled"`
}

// BedrockConfig holds AWS Bedrock configuration
type BedrockConfig struct {
	Region  string `yaml:"region"`
	ModelID string `yaml:"model_id"`
	Enabled bool   `yaml:"enabled"`
}

// ImageConfig holds image generation provider configuration
type ImageConfig struct {
	Endpoint       string `yaml:"endpoint"` // custom REST endpoint, tried first
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	Size           string `yaml:"size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c ImageConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig holds the optional Redis mirror for campaign overviews
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SimulationConfig holds the mock deployment parameters
type SimulationConfig struct {
	CustomerCount     int   `yaml:"customer_count"`
	Seed              int64 `yaml:"seed"` // 0 means time-seeded
	PersonalizedBatch int   `yaml:"personalized_batch"`
}

// PublisherConfig holds browser automation settings for real posting
type PublisherConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Headless      bool   `yaml:"headless"`
	FacebookEmail string `yaml:"facebook_email"`
	FacebookPass  string `yaml:"facebook_password"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "Bright Threads Boutique"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "fashion"
	}
	if cfg.Store.Location == "" {
		cfg.Store.Location = "Portland, OR"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = 60
	}
	if cfg.Azure.APIVersion == "" {
		cfg.Azure.APIVersion = "2024-02-01"
	}
	if cfg.Bedrock.Region == "" {
		cfg.Bedrock.Region = "us-east-1"
	}
	if cfg.Bedrock.ModelID == "" {
		cfg.Bedrock.ModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	}
	if cfg.Image.Model == "" {
		cfg.Image.Model = "dall-e-3"
	}
	if cfg.Image.Size == "" {
		cfg.Image.Size = "1024x1024"
	}
	if cfg.Image.TimeoutSeconds == 0 {
		cfg.Image.TimeoutSeconds = 90
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Simulation.CustomerCount == 0 {
		cfg.Simulation.CustomerCount = 500
	}
	if cfg.Simulation.PersonalizedBatch == 0 {
		cfg.Simulation.PersonalizedBatch = 3
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in containers.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
		cfg.OpenAI.Enabled = true
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if apiKey := os.Getenv("AZURE_OPENAI_API_KEY"); apiKey != "" {
		cfg.Azure.APIKey = apiKey
		cfg.Azure.Enabled = true
	}
	if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
		cfg.Azure.Endpoint = endpoint
	}
	if deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); deployment != "" {
		cfg.Azure.Deployment = deployment
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Bedrock.Region = region
	}
	if modelID := os.Getenv("BEDROCK_MODEL_ID"); modelID != "" {
		cfg.Bedrock.ModelID = modelID
		cfg.Bedrock.Enabled = true
	}
	if endpoint := os.Getenv("IMAGE_API_ENDPOINT"); endpoint != "" {
		cfg.Image.Endpoint = endpoint
	}
	if apiKey := os.Getenv("IMAGE_API_KEY"); apiKey != "" {
		cfg.Image.APIKey = apiKey
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if seed := os.Getenv("SIMULATION_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Simulation.Seed = v
		}
	}
	if email := os.Getenv("FACEBOOK_EMAIL"); email != "" {
		cfg.Publisher.FacebookEmail = email
	}
	if pass := os.Getenv("FACEBOOK_PASSWORD"); pass != "" {
		cfg.Publisher.FacebookPass = pass
	}

	return cfg, nil
}
