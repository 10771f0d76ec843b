package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

const copywriterSystem = "You are a professional email marketing copywriter for retail campaigns."

// personalizeBody asks the text generator for individual copy. When
// generation fails the recipient still gets the base template with a
// personal greeting prepended.
func (s *Service) personalizeBody(ctx context.Context, recipientName string, cc campaign.Context, baseBody string) string {
	if s.text == nil {
		return fallbackBody(recipientName, baseBody)
	}

	base := baseBody
	if len(base) > 500 {
		base = base[:500]
	}

	prompt := fmt.Sprintf(`Create a personalized, engaging email for a retail marketing campaign.

Recipient Name: %s

Campaign Details:
- Campaign Type: %s
- Store Name: %s
- Store Type: %s
- Location: %s
- Goal: %s
- Target Audience: %s
- Special Offers: %s

Base Email Template:
%s

Create a warm, personalized email that:
1. Addresses %s personally
2. Highlights the specific benefits relevant to this campaign
3. Includes a clear call-to-action
4. Matches the campaign goal and store brand
5. Is engaging and conversational
6. Keep it concise (200-300 words)

Write ONLY the email body content, no subject line:`,
		recipientName,
		orDefault(cc.CampaignType, "marketing campaign"),
		orDefault(cc.StoreName, "our store"),
		orDefault(cc.StoreType, "retail"),
		orDefault(cc.Location, "your area"),
		orDefault(cc.Goal, "engage with customers"),
		orDefault(cc.TargetAudience, "valued customers"),
		orDefault(cc.Offers, "special promotions"),
		base,
		recipientName)

	text, err := s.text.Complete(ctx, copywriterSystem, prompt)
	if err != nil {
		logger.Warn("email: personalization failed, using base copy",
			"recipient", recipientName,
			"campaign_id", cc.CampaignType,
			"error", err.Error())
		return fallbackBody(recipientName, baseBody)
	}
	return strings.TrimSpace(text)
}

// personalizeSubject generates an individual subject line, falling back
// to "Name, base subject" on error.
func (s *Service) personalizeSubject(ctx context.Context, recipientName string, cc campaign.Context, baseSubject string) string {
	if s.text == nil {
		return fallbackSubject(recipientName, baseSubject)
	}

	prompt := fmt.Sprintf(`Create a compelling, personalized email subject line for a retail marketing campaign.

Recipient Name: %s
Store Name: %s
Campaign Type: %s
Goal: %s
Base Subject: %s

Create a subject line that:
1. Is attention-grabbing and personalized
2. Includes recipient name if it fits naturally
3. Highlights key benefit or offer
4. Is 6-10 words maximum
5. Creates urgency or curiosity

Write ONLY the subject line, nothing else:`,
		recipientName,
		orDefault(cc.StoreName, "our store"),
		orDefault(cc.CampaignType, "special offer"),
		orDefault(cc.Goal, "exclusive deal"),
		baseSubject)

	text, err := s.text.Complete(ctx, copywriterSystem, prompt)
	if err != nil {
		return fallbackSubject(recipientName, baseSubject)
	}
	return strings.Trim(strings.TrimSpace(text), `"`)
}

func fallbackBody(recipientName, baseBody string) string {
	return fmt.Sprintf("Dear %s,\n\n%s", recipientName, baseBody)
}

func fallbackSubject(recipientName, baseSubject string) string {
	return fmt.Sprintf("%s, %s", recipientName, baseSubject)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
