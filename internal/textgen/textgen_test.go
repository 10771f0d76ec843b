package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenretail/marketing-agent/internal/config"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "first", text: "from first"}
	second := &fakeProvider{name: "second", text: "from second"}

	chain := NewChain(first, second)
	text, err := chain.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "from first", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later providers must not run after a success")
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "second", text: "from second"}

	chain := NewChain(first, second)
	text, err := chain.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "from second", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainAllFail(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("boom")}
	second := &fakeProvider{name: "second", err: errors.New("also boom")}

	chain := NewChain(first, second)
	_, err := chain.Complete(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	_, err := chain.Complete(context.Background(), "", "prompt")
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestChainProviders(t *testing.T) {
	chain := NewChain(&fakeProvider{name: "a"}, &fakeProvider{name: "b"})
	assert.Equal(t, []string{"a", "b"}, chain.Providers())
}

func TestOpenAIProviderComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  generated copy  "}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(config.OpenAIConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
	})

	text, err := p.Complete(context.Background(), "be helpful", "write copy")
	require.NoError(t, err)
	assert.Equal(t, "generated copy", text)
}

func TestOpenAIProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid key", "type": "auth_error"},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(config.OpenAIConfig{
		APIKey:         "bad-key",
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
	})

	_, err := p.Complete(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestOpenAIProviderMissingKey(t *testing.T) {
	p := NewOpenAIProvider(config.OpenAIConfig{TimeoutSeconds: 5})
	_, err := p.Complete(context.Background(), "", "prompt")
	assert.Error(t, err)
}

func TestAzureProviderComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/copy-gen/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "azure-key", r.Header.Get("api-key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "azure copy"}},
			},
		})
	}))
	defer srv.Close()

	p := NewAzureProvider(config.AzureConfig{
		APIKey:     "azure-key",
		Endpoint:   srv.URL,
		Deployment: "copy-gen",
	})

	text, err := p.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "azure copy", text)
}

func TestAzureProviderRequiresConfig(t *testing.T) {
	p := NewAzureProvider(config.AzureConfig{})
	_, err := p.Complete(context.Background(), "", "prompt")
	assert.Error(t, err)
}
