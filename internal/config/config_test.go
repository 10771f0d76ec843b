package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

store:
  name: "Test Emporium"
  type: "technology"
  location: "Austin, TX"
  has_online_store: true

openai:
  api_key: "test-api-key"
  model: "gpt-4o"
  timeout_seconds: 45

image:
  endpoint: "https://images.example.com/generate"
  api_key: "img-key"
  size: "512x512"

simulation:
  customer_count: 250
  seed: 42
  personalized_batch: 5
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Test store profile
	assert.Equal(t, "Test Emporium", cfg.Store.Name)
	assert.Equal(t, "technology", cfg.Store.Type)
	assert.Equal(t, "Austin, TX", cfg.Store.Location)
	assert.True(t, cfg.Store.HasOnlineStore)

	// Test OpenAI config
	assert.Equal(t, "test-api-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 45, cfg.OpenAI.TimeoutSeconds)

	// Test image config
	assert.Equal(t, "https://images.example.com/generate", cfg.Image.Endpoint)
	assert.Equal(t, "512x512", cfg.Image.Size)

	// Test simulation config
	assert.Equal(t, 250, cfg.Simulation.CustomerCount)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 5, cfg.Simulation.PersonalizedBatch)
}

func TestLoadDefaults(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
openai:
  api_key: "test-key"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Verify defaults are applied
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 60, cfg.OpenAI.TimeoutSeconds)
	assert.Equal(t, "dall-e-3", cfg.Image.Model)
	assert.Equal(t, "1024x1024", cfg.Image.Size)
	assert.Equal(t, "fashion", cfg.Store.Type)
	assert.Equal(t, 500, cfg.Simulation.CustomerCount)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.Equal(t, 3, cfg.Simulation.PersonalizedBatch)
}

func TestLoadFromEnv(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
openai:
  api_key: "file-key"
  base_url: "https://file-url.com"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables
	os.Setenv("OPENAI_API_KEY", "env-key")
	os.Setenv("OPENAI_BASE_URL", "https://env-url.com")
	os.Setenv("SIMULATION_SEED", "1234")
	defer func() {
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("OPENAI_BASE_URL")
		os.Unsetenv("SIMULATION_SEED")
	}()

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.True(t, cfg.OpenAI.Enabled)
	assert.Equal(t, "https://env-url.com", cfg.OpenAI.BaseURL)
	assert.Equal(t, int64(1234), cfg.Simulation.Seed)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	cfg := OpenAIConfig{TimeoutSeconds: 45}
	assert.Equal(t, 45*1000000000, int(cfg.Timeout().Nanoseconds()))
}
