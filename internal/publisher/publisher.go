// Package publisher pushes simulated posts to real platforms. The
// simulation core never depends on it; the default implementation only
// pretends to publish, and the browser implementation is best-effort
// and credential-gated.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
	"github.com/lumenretail/marketing-agent/internal/social"
)

// PublishResult reports one publish attempt.
type PublishResult struct {
	PostID      string    `json:"post_id"`
	Platform    string    `json:"platform"`
	Published   bool      `json:"published"`
	Simulated   bool      `json:"simulated"`
	Detail      string    `json:"detail,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Publisher pushes one post to its platform.
type Publisher interface {
	Publish(ctx context.Context, post *social.Post) (PublishResult, error)
}

// Simulated is the default publisher. It records the attempt and
// reports success without touching any external platform.
type Simulated struct{}

// Publish marks the post as published in simulation.
func (Simulated) Publish(_ context.Context, post *social.Post) (PublishResult, error) {
	if post == nil {
		return PublishResult{}, fmt.Errorf("publisher: nil post")
	}

	logger.Info("publisher: simulated publish",
		"post_id", post.ID,
		"platform", post.Platform)

	return PublishResult{
		PostID:      post.ID,
		Platform:    post.Platform,
		Published:   true,
		Simulated:   true,
		Detail:      "post recorded in simulation only",
		PublishedAt: time.Now(),
	}, nil
}
