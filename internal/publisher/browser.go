package publisher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
	"github.com/lumenretail/marketing-agent/internal/social"
)

// Browser publishes Facebook posts through a headless Chrome session.
// It is best-effort: Facebook's DOM changes frequently and there is no
// official API here, so any failure is reported and the post stays
// simulation-only. Only used when explicitly enabled with credentials.
type Browser struct {
	cfg config.PublisherConfig
}

// NewBrowser creates a browser publisher. Returns an error when the
// publisher is disabled or credentials are missing.
func NewBrowser(cfg config.PublisherConfig) (*Browser, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("publisher: browser publishing is disabled")
	}
	if cfg.FacebookEmail == "" || cfg.FacebookPass == "" {
		return nil, fmt.Errorf("publisher: facebook credentials not configured")
	}
	return &Browser{cfg: cfg}, nil
}

// Publish logs into Facebook and submits the post content. Anything
// other than a facebook post falls back to a simulated result.
func (b *Browser) Publish(ctx context.Context, post *social.Post) (PublishResult, error) {
	if post == nil {
		return PublishResult{}, fmt.Errorf("publisher: nil post")
	}
	if post.Platform != string(social.PlatformFacebook) {
		logger.Info("publisher: browser publish only supports facebook, simulating",
			"post_id", post.ID,
			"platform", post.Platform)
		return Simulated{}.Publish(ctx, post)
	}

	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("https://www.facebook.com/login"),
		chromedp.WaitVisible(`#email`, chromedp.ByID),
		chromedp.SendKeys(`#email`, b.cfg.FacebookEmail, chromedp.ByID),
		chromedp.SendKeys(`#pass`, b.cfg.FacebookPass, chromedp.ByID),
		chromedp.Click(`button[name="login"]`, chromedp.ByQuery),
		chromedp.Sleep(5*time.Second),
		chromedp.Navigate("https://www.facebook.com/"),
		chromedp.WaitVisible(`div[role="main"]`, chromedp.ByQuery),
		chromedp.Click(`div[role="main"] div[role="button"]`, chromedp.ByQuery),
		chromedp.WaitVisible(`div[role="dialog"] div[role="textbox"]`, chromedp.ByQuery),
		chromedp.SendKeys(`div[role="dialog"] div[role="textbox"]`, post.Content, chromedp.ByQuery),
		chromedp.Click(`div[role="dialog"] div[aria-label="Post"]`, chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),
	)
	if err != nil {
		logger.Warn("publisher: browser publish failed",
			"post_id", post.ID,
			"error", err.Error())
		return PublishResult{
			PostID:   post.ID,
			Platform: post.Platform,
			Detail:   err.Error(),
		}, fmt.Errorf("publisher: facebook publish: %w", err)
	}

	logger.Info("publisher: post published via browser", "post_id", post.ID)
	return PublishResult{
		PostID:      post.ID,
		Platform:    post.Platform,
		Published:   true,
		Detail:      "published through headless browser session",
		PublishedAt: time.Now(),
	}, nil
}
