// Package content generates campaign copy: promotion plans, incentives,
// referral programs, ad copy, win-back campaigns, loyalty programs and
// content calendars. Each operation builds a prompt, asks the text
// provider chain, and falls back to serviceable canned copy when no
// provider is available.
package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// TextGenerator produces copy. The provider chain in internal/textgen
// satisfies this.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Service builds marketing copy for one store.
type Service struct {
	text  TextGenerator
	store config.StoreProfile
}

// NewService creates a content service. gen may be nil; every operation
// then returns its canned fallback copy.
func NewService(gen TextGenerator, store config.StoreProfile) *Service {
	if store.Name == "" {
		store.Name = "Store"
	}
	if store.Type == "" {
		store.Type = "retail"
	}
	if store.Location == "" {
		store.Location = "Local"
	}
	return &Service{text: gen, store: store}
}

// complete runs one generation and falls back on any failure.
func (s *Service) complete(ctx context.Context, operation, system, prompt, fallback string) string {
	if s.text == nil {
		return fallback
	}
	out, err := s.text.Complete(ctx, system, prompt)
	if err != nil {
		logger.Warn("content: generation failed, using fallback",
			"operation", operation,
			"error", err.Error())
		return fallback
	}
	return out
}

// PromotionCampaign is a generated acquisition campaign plan.
type PromotionCampaign struct {
	Plan           string    `json:"campaign_plan"`
	TargetAudience string    `json:"target_audience"`
	CampaignType   string    `json:"campaign_type"`
	Budget         float64   `json:"budget"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreatePromotionCampaign drafts a promotional campaign plan aimed at
// acquiring new customers.
func (s *Service) CreatePromotionCampaign(ctx context.Context, targetAudience, campaignType string, budget float64, durationDays int) PromotionCampaign {
	system := "You are an expert retail marketing strategist specializing in customer acquisition. Create a comprehensive promotional campaign that will attract new customers."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s
Location: %s

Campaign Details:
- Target Audience: %s
- Campaign Type: %s
- Budget: $%.2f
- Duration: %d days

Create a detailed campaign including:
1. Campaign name and tagline
2. Key promotional offers (discounts, bundles, incentives)
3. Marketing channels to use (social media, email, local ads, etc.)
4. Content ideas for each channel
5. Call-to-action strategy
6. Budget allocation across channels
7. Success metrics to track

Format the response as a structured campaign plan.`,
		s.store.Name, s.store.Type, s.store.Location,
		targetAudience, campaignType, budget, durationDays)

	fallback := fmt.Sprintf(
		"%s campaign for %s: promote %s with introductory offers across email and social media, allocate the $%.0f budget evenly, and track signups and first purchases over %d days.",
		titleCase(campaignType), s.store.Name, targetAudience, budget, durationDays)

	now := time.Now()
	return PromotionCampaign{
		Plan:           s.complete(ctx, "promotion_campaign", system, prompt, fallback),
		TargetAudience: targetAudience,
		CampaignType:   campaignType,
		Budget:         budget,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, durationDays),
		Status:         "planned",
		CreatedAt:      now,
	}
}

// Incentive is a first-purchase incentive design.
type Incentive struct {
	Design        string    `json:"incentive_design"`
	IncentiveType string    `json:"incentive_type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DesignFirstPurchaseIncentive designs an offer that converts
// first-time customers.
func (s *Service) DesignFirstPurchaseIncentive(ctx context.Context, incentiveType string) Incentive {
	system := "You are an expert in customer acquisition and loyalty programs. Design an attractive first-purchase incentive that will convert new customers."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s

Incentive Type: %s

Design a first-purchase incentive including:
1. Offer details (percentage off, dollar amount, gift, etc.)
2. Terms and conditions
3. How to communicate it (welcome email, social media, in-store signage)
4. Follow-up strategy after first purchase
5. Expected conversion rate improvement

Make it compelling and easy to understand.`,
		s.store.Name, s.store.Type, incentiveType)

	fallback := fmt.Sprintf(
		"First purchase %s at %s: 15%% off any first order, announced in the welcome email and at the register, followed by a thank-you note one week later.",
		incentiveType, s.store.Name)

	return Incentive{
		Design:        s.complete(ctx, "first_purchase_incentive", system, prompt, fallback),
		IncentiveType: incentiveType,
		Status:        "designed",
		CreatedAt:     time.Now(),
	}
}

// ReferralProgram is a generated customer referral program.
type ReferralProgram struct {
	Program         string    `json:"referral_program"`
	RewardStructure string    `json:"reward_structure"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateReferralProgram drafts a program rewarding customers for
// bringing in new ones.
func (s *Service) CreateReferralProgram(ctx context.Context, rewardStructure string) ReferralProgram {
	system := "You are an expert in referral marketing and viral growth strategies. Create a referral program that incentivizes existing customers to bring in new ones."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s

Reward Structure: %s

Create a complete referral program including:
1. Program name and description
2. Rewards for referrer (existing customer)
3. Rewards for referee (new customer)
4. How the referral process works
5. Tracking mechanism
6. Promotion strategy for the program
7. Terms and conditions
8. Expected virality and growth metrics

Make it simple, attractive, and easy to participate in.`,
		s.store.Name, s.store.Type, rewardStructure)

	fallback := fmt.Sprintf(
		"Refer-a-friend at %s: %s. Each referral earns both customers a reward on their next purchase, tracked by a unique code shared from the receipt.",
		s.store.Name, rewardStructure)

	return ReferralProgram{
		Program:         s.complete(ctx, "referral_program", system, prompt, fallback),
		RewardStructure: rewardStructure,
		Status:          "created",
		CreatedAt:       time.Now(),
	}
}

// AdCopy is platform-targeted advertising copy.
type AdCopy struct {
	Copy            string    `json:"ad_copy"`
	Platform        string    `json:"platform"`
	TargetSegment   string    `json:"target_segment"`
	ProductCategory string    `json:"product_category"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenerateAdCopy writes ad copy variations for one platform and
// customer segment.
func (s *Service) GenerateAdCopy(ctx context.Context, platform, targetSegment, productCategory string) AdCopy {
	system := "You are an expert copywriter specializing in retail advertising. Create compelling ad copy that drives clicks and conversions."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s
Platform: %s
Target Segment: %s
Product Category: %s

Create 3 variations of ad copy including:
1. Headline (attention-grabbing)
2. Body text (benefit-focused)
3. Call-to-action
4. Visual recommendations

Each variation should be optimized for %s and appeal to %s.`,
		s.store.Name, s.store.Type, platform, targetSegment, productCategory,
		platform, targetSegment)

	fallback := fmt.Sprintf(
		"Discover %s at %s. Quality picks for %s, available now. Shop today.",
		productCategory, s.store.Name, targetSegment)

	return AdCopy{
		Copy:            s.complete(ctx, "ad_copy", system, prompt, fallback),
		Platform:        platform,
		TargetSegment:   targetSegment,
		ProductCategory: productCategory,
		CreatedAt:       time.Now(),
	}
}

// WinBackCampaign targets customers who stopped buying.
type WinBackCampaign struct {
	Campaign       string    `json:"winback_campaign"`
	InactivePeriod string    `json:"inactive_period"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateWinBackCampaign drafts a re-engagement campaign for inactive
// customers.
func (s *Service) CreateWinBackCampaign(ctx context.Context, inactivePeriod string) WinBackCampaign {
	system := "You are an expert in customer re-engagement and win-back strategies. Create campaigns that bring inactive customers back."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s
Customer Inactive Period: %s

Create a win-back campaign including:
1. Campaign messaging ("We miss you" approach)
2. Special incentives to return (exclusive offers)
3. Multi-channel approach (email, SMS, direct mail)
4. Personalization based on past purchase history
5. Timeline for the campaign
6. Success metrics and goals

Make the campaign emotionally resonant and valuable.`,
		s.store.Name, s.store.Type, inactivePeriod)

	fallback := fmt.Sprintf(
		"We miss you at %s! Customers inactive for %s get an exclusive welcome-back offer by email, with a reminder two weeks later.",
		s.store.Name, inactivePeriod)

	return WinBackCampaign{
		Campaign:       s.complete(ctx, "win_back_campaign", system, prompt, fallback),
		InactivePeriod: inactivePeriod,
		Status:         "created",
		CreatedAt:      time.Now(),
	}
}

// LoyaltyProgram is a generated loyalty program design.
type LoyaltyProgram struct {
	Program     string    `json:"loyalty_program"`
	ProgramType string    `json:"program_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DesignLoyaltyProgram drafts a loyalty program that keeps customers
// coming back.
func (s *Service) DesignLoyaltyProgram(ctx context.Context, programType string) LoyaltyProgram {
	system := "You are an expert in customer loyalty and retention strategies. Design a loyalty program that keeps customers coming back."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s
Program Type: %s

Design a complete loyalty program including:
1. Program name and branding
2. How customers earn rewards (points, purchases, actions)
3. Reward tiers or levels (if applicable)
4. Redemption options and value proposition
5. Exclusive perks for loyal customers
6. Program communication strategy
7. Technology/tools needed
8. Expected impact on customer lifetime value

Make it engaging and valuable for customers.`,
		s.store.Name, s.store.Type, programType)

	fallback := fmt.Sprintf(
		"%s rewards at %s: earn a point per dollar, unlock a reward every 100 points, with bonus points during launch month.",
		titleCase(programType), s.store.Name)

	return LoyaltyProgram{
		Program:     s.complete(ctx, "loyalty_program", system, prompt, fallback),
		ProgramType: programType,
		Status:      "designed",
		CreatedAt:   time.Now(),
	}
}

// ContentCalendar is a multi-week posting plan across platforms.
type ContentCalendar struct {
	Calendar      string    `json:"content_calendar"`
	DurationWeeks int       `json:"duration_weeks"`
	Platforms     []string  `json:"platforms"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// BuildContentCalendar plans posting themes and ideas across platforms
// for a number of weeks.
func (s *Service) BuildContentCalendar(ctx context.Context, durationWeeks int, platforms []string) ContentCalendar {
	system := "You are an expert social media strategist for retail. Create content calendars that maintain consistent engagement."
	prompt := fmt.Sprintf(`Store: %s
Store Type: %s
Duration: %d weeks
Platforms: %s

Create a content calendar including:
1. Daily content themes for each week
2. Specific post ideas for each day
3. Mix of content types (educational, promotional, engaging)
4. Platform-specific adaptations
5. Seasonal/holiday tie-ins
6. User-generated content opportunities
7. Campaign integration points

Ensure variety and strategic timing.`,
		s.store.Name, s.store.Type, durationWeeks, strings.Join(platforms, ", "))

	fallback := fmt.Sprintf(
		"%d-week calendar for %s on %s: Monday product features, Wednesday behind-the-scenes, Friday offers, weekend community posts.",
		durationWeeks, s.store.Name, strings.Join(platforms, ", "))

	return ContentCalendar{
		Calendar:      s.complete(ctx, "content_calendar", system, prompt, fallback),
		DurationWeeks: durationWeeks,
		Platforms:     platforms,
		Status:        "created",
		CreatedAt:     time.Now(),
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
