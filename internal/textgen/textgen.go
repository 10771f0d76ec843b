// Package textgen provides language-model text generation behind a
// provider chain. Providers are tried in order and the first success
// wins; callers are expected to carry their own fallback copy when the
// whole chain fails.
package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// Provider generates text from a system prompt and a user prompt
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrNoProviders is returned by a chain with nothing configured
var ErrNoProviders = errors.New("textgen: no providers configured")

// Chain tries providers in registration order until one succeeds
type Chain struct {
	providers []Provider
}

// NewChain builds a provider chain. Order matters.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the names of configured providers in order
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Complete runs the chain. Each provider failure is logged and the next
// provider is tried; the last error is returned when all fail.
func (c *Chain) Complete(ctx context.Context, system, prompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}

	var lastErr error
	for _, p := range c.providers {
		text, err := p.Complete(ctx, system, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		logger.Warn("textgen: provider failed, trying next",
			"provider", p.Name(),
			"error", err.Error())

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("textgen: all providers failed: %w", lastErr)
}
