// Package deploy orchestrates campaign deployment across the email and
// social channels, targeting customer segments and aggregating the
// results into a single report.
package deploy

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/customers"
	"github.com/lumenretail/marketing-agent/internal/email"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
	"github.com/lumenretail/marketing-agent/internal/snapshot"
	"github.com/lumenretail/marketing-agent/internal/social"
)

// Content is the campaign copy a deployment works from.
type Content struct {
	CampaignType string `json:"campaign_type"`
	Plan         string `json:"campaign_plan"`
}

// EmailResult reports the email leg of a deployment.
type EmailResult struct {
	Sent  int         `json:"sent"`
	Stats email.Stats `json:"stats"`
}

// SocialResult reports the social leg of a deployment.
type SocialResult struct {
	PostsCreated int          `json:"posts_created"`
	Stats        social.Stats `json:"stats"`
}

// Result is the outcome of one deployment call.
type Result struct {
	CampaignID       string       `json:"campaign_id"`
	DeployedAt       time.Time    `json:"deployed_at"`
	ChannelsDeployed []string     `json:"channels_deployed"`
	Email            EmailResult  `json:"email"`
	SocialMedia      SocialResult `json:"social_media"`
	TotalReach       int          `json:"total_reach"`
}

// Overview merges every channel's stats for a campaign into one report.
type Overview struct {
	CampaignID       string                   `json:"campaign_id"`
	TotalReach       int                      `json:"total_reach"`
	TotalEngagement  int                      `json:"total_engagement"`
	Email            email.Stats              `json:"email"`
	SocialMedia      social.Stats             `json:"social_media"`
	Sentiment        social.SentimentAnalysis `json:"sentiment"`
	CustomerDBSize   int                      `json:"customer_database_size"`
}

// Service coordinates the customer database, email service and social
// service for campaign deployments.
type Service struct {
	customers *customers.Database
	email     *email.Service
	social    *social.Service
	snapshots *snapshot.Store

	mu       sync.RWMutex
	contexts map[string]campaign.Context
}

// NewService wires a deployment service. snapshots may be nil to skip
// overview mirroring.
func NewService(db *customers.Database, em *email.Service, soc *social.Service, snapshots *snapshot.Store) *Service {
	return &Service{
		customers: db,
		email:     em,
		social:    soc,
		snapshots: snapshots,
		contexts:  make(map[string]campaign.Context),
	}
}

// Context returns the campaign context recorded by the most recent
// deployment for the campaign, for any channel mix.
func (s *Service) Context(campaignID string) (campaign.Context, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cc, ok := s.contexts[campaignID]
	return cc, ok
}

func (s *Service) recordContext(campaignID string, cc *campaign.Context) {
	if cc == nil {
		return
	}
	s.mu.Lock()
	s.contexts[campaignID] = *cc
	s.mu.Unlock()
}

// DeployAcquisition deploys an acquisition campaign to one segment
// (default "new") over email plus one post per social platform.
func (s *Service) DeployAcquisition(ctx context.Context, campaignID string, content Content, targetSegment customers.Segment, cc *campaign.Context) Result {
	if targetSegment == "" {
		targetSegment = customers.SegmentNew
	}

	targets := optedIn(s.customers.BySegment(targetSegment))
	subject := fmt.Sprintf("Special Offer: %s!", orDefault(content.CampaignType, "Exclusive Deal"))
	body := orDefault(content.Plan, "Special promotion for you!")

	return s.deploy(ctx, campaignID, content, targets, subject, body, 1, cc)
}

// DeployRetention deploys a retention campaign to every returning
// segment (occasional, frequent and vip) plus all social platforms.
func (s *Service) DeployRetention(ctx context.Context, campaignID string, content Content, cc *campaign.Context) Result {
	var targets []*customers.Customer
	for _, seg := range []customers.Segment{customers.SegmentOccasional, customers.SegmentFrequent, customers.SegmentVIP} {
		targets = append(targets, s.customers.BySegment(seg)...)
	}

	body := orDefault(content.Plan, "Come back and save!")
	return s.deploy(ctx, campaignID, content, optedIn(targets), "We Miss You! Special Offer Inside", body, 1, cc)
}

// DeployDigital runs a social-only deployment with a configurable
// number of posts per platform. No email is sent.
func (s *Service) DeployDigital(ctx context.Context, campaignID string, content Content, postsPerPlatform int, cc *campaign.Context) Result {
	if postsPerPlatform < 1 {
		postsPerPlatform = 1
	}
	s.recordContext(campaignID, cc)

	result := Result{
		CampaignID: campaignID,
		DeployedAt: time.Now(),
	}

	socialResult := s.deploySocial(campaignID, content, postsPerPlatform)
	result.SocialMedia = socialResult
	for _, p := range social.Platforms() {
		result.ChannelsDeployed = append(result.ChannelsDeployed, string(p))
	}
	result.TotalReach = socialResult.Stats.TotalImpressions

	s.mirror(ctx, campaignID)
	return result
}

// deploy runs the shared email-then-social flow. The email step is
// skipped entirely when no customer in the selection opted in.
func (s *Service) deploy(ctx context.Context, campaignID string, content Content, targets []*customers.Customer, subject, body string, postsPerPlatform int, cc *campaign.Context) Result {
	s.recordContext(campaignID, cc)

	result := Result{
		CampaignID: campaignID,
		DeployedAt: time.Now(),
	}

	if len(targets) > 0 {
		recipients := make([]email.Recipient, 0, len(targets))
		for _, c := range targets {
			recipients = append(recipients, email.Recipient{Email: c.Email, Name: c.Name})
		}

		emails := s.email.SendBulk(ctx, recipients, subject, body, campaignID, cc)
		result.Email = EmailResult{
			Sent:  len(emails),
			Stats: s.email.CampaignStats(campaignID),
		}
		result.ChannelsDeployed = append(result.ChannelsDeployed, "email")
		result.TotalReach += result.Email.Sent
	}

	result.SocialMedia = s.deploySocial(campaignID, content, postsPerPlatform)
	for _, p := range social.Platforms() {
		result.ChannelsDeployed = append(result.ChannelsDeployed, string(p))
	}
	result.TotalReach += result.SocialMedia.Stats.TotalImpressions

	logger.Info("deploy: campaign deployed",
		"campaign_id", campaignID,
		"channels", strings.Join(result.ChannelsDeployed, ","),
		"total_reach", result.TotalReach)

	s.mirror(ctx, campaignID)
	return result
}

// deploySocial creates posts across every platform. Images are not
// generated here; they are attached on demand per platform.
func (s *Service) deploySocial(campaignID string, content Content, postsPerPlatform int) SocialResult {
	created := 0
	for _, platform := range social.Platforms() {
		for i := 0; i < postsPerPlatform; i++ {
			pc := platformContent(platform, content.CampaignType)
			s.social.CreatePost(platform, pc.Text, campaignID, "", pc.Hashtags)
			created++
		}
	}

	return SocialResult{
		PostsCreated: created,
		Stats:        s.social.CampaignStats(campaignID),
	}
}

// CampaignOverview merges email, social and sentiment stats with the
// customer population size.
func (s *Service) CampaignOverview(campaignID string) Overview {
	emailStats := s.email.CampaignStats(campaignID)
	socialStats := s.social.CampaignStats(campaignID)
	sentiment := s.social.CampaignSentiment(campaignID)

	return Overview{
		CampaignID:      campaignID,
		TotalReach:      emailStats.TotalSent + socialStats.TotalImpressions,
		TotalEngagement: emailStats.Clicked + socialStats.TotalLikes + socialStats.TotalComments + socialStats.TotalShares,
		Email:           emailStats,
		SocialMedia:     socialStats,
		Sentiment:       sentiment,
		CustomerDBSize:  len(s.customers.All()),
	}
}

// CustomerStats exposes the customer database statistics.
func (s *Service) CustomerStats() customers.Stats {
	return s.customers.Statistics()
}

// Emails returns every sent email.
func (s *Service) Emails() []*email.Email {
	return s.email.All()
}

// Posts returns every social post.
func (s *Service) Posts() []*social.Post {
	return s.social.All()
}

func (s *Service) mirror(ctx context.Context, campaignID string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Put(ctx, campaignID, s.CampaignOverview(campaignID)); err != nil {
		logger.Warn("deploy: snapshot mirror failed",
			"campaign_id", campaignID,
			"error", err.Error())
	}
}

func optedIn(list []*customers.Customer) []*customers.Customer {
	out := make([]*customers.Customer, 0, len(list))
	for _, c := range list {
		if c.EmailOptIn {
			out = append(out, c)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
