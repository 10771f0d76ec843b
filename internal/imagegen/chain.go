package imagegen

import (
	"context"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// Chain tries each configured provider in order and falls back to a
// stock image when all of them fail. Generate never returns an error:
// a campaign post always gets artwork.
type Chain struct {
	providers []Provider
}

// NewChain builds an image provider chain. Order matters; the stock
// library is the implicit terminal step.
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

// Generate produces an image URL for the given platform and campaign
func (c *Chain) Generate(ctx context.Context, platform string, cc campaign.Context) string {
	prompt := BuildPrompt(platform, cc)

	for _, p := range c.providers {
		url, err := p.Generate(ctx, prompt)
		if err == nil && url != "" {
			logger.Info("imagegen: image generated",
				"provider", p.Name(),
				"platform", platform)
			return url
		}
		if err != nil {
			logger.Warn("imagegen: provider failed, trying next",
				"provider", p.Name(),
				"platform", platform,
				"error", err.Error())
		}
		if ctx.Err() != nil {
			break
		}
	}

	url := StockImage(platform, cc)
	logger.Info("imagegen: using stock image", "platform", platform, "url", url)
	return url
}
