package social

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lumenretail/marketing-agent/internal/campaign"
	"github.com/lumenretail/marketing-agent/internal/imagegen"
	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// Service tracks posts and comments across platforms and models
// audience engagement per platform.
type Service struct {
	mu             sync.RWMutex
	posts          map[string]*Post
	order          []string
	comments       map[string][]*Comment
	byCampaign     map[string][]string
	campaignImages map[string]map[string]string
	postCounter    int
	commentCounter int
	rng            *rand.Rand
	images         *imagegen.Chain
}

// Option configures a Service.
type Option func(*Service)

// WithSeed makes engagement and comment generation deterministic.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewService creates a social media service. The image chain may be nil,
// in which case GenerateImage always serves stock images.
func NewService(images *imagegen.Chain, opts ...Option) *Service {
	s := &Service{
		posts:          make(map[string]*Post),
		comments:       make(map[string][]*Comment),
		byCampaign:     make(map[string][]string),
		campaignImages: make(map[string]map[string]string),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		images:         images,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// engagement profiles per platform: impression range and expected
// share of impressions that engage.
func (s *Service) drawImpressions(platform Platform) (impressions int, multiplier float64) {
	switch platform {
	case PlatformFacebook:
		return 1000 + s.rng.Intn(4001), 0.05
	case PlatformInstagram:
		return 2000 + s.rng.Intn(6001), 0.08
	default:
		return 500 + s.rng.Intn(2501), 0.03
	}
}

// CreatePost publishes a post and simulates its engagement. Comments
// are generated immediately so sentiment analysis has data to work with.
func (s *Service) CreatePost(platform Platform, content, campaignID, imageURL string, hashtags []string) *Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postCounter++
	id := fmt.Sprintf("%s%06d", strings.ToUpper(string(platform)), s.postCounter)

	impressions, multiplier := s.drawImpressions(platform)
	totalEngagements := int(float64(impressions) * multiplier)

	likes := int(float64(totalEngagements) * (0.6 + s.rng.Float64()*0.15))
	commentCount := int(float64(totalEngagements) * (0.05 + s.rng.Float64()*0.10))
	shares := int(float64(totalEngagements) * (0.05 + s.rng.Float64()*0.10))
	clicks := int(float64(totalEngagements) * (0.10 + s.rng.Float64()*0.15))

	engagementRate := round2(float64(likes+commentCount+shares) / float64(impressions) * 100)

	if hashtags == nil {
		hashtags = []string{}
	}

	post := &Post{
		ID:             id,
		CampaignID:     campaignID,
		Platform:       string(platform),
		Content:        content,
		ImageURL:       imageURL,
		Hashtags:       hashtags,
		PostedAt:       time.Now(),
		Impressions:    impressions,
		Likes:          likes,
		Comments:       commentCount,
		Shares:         shares,
		Clicks:         clicks,
		EngagementRate: engagementRate,
	}

	s.posts[id] = post
	s.order = append(s.order, id)
	s.byCampaign[campaignID] = append(s.byCampaign[campaignID], id)
	s.generateComments(id, commentCount)

	logger.Debug("social: post created",
		"post_id", id,
		"platform", string(platform),
		"campaign_id", campaignID,
		"impressions", impressions)

	return post
}

// generateComments draws comments with a 60/30/10 positive, neutral,
// negative sentiment split. Caller must hold s.mu.
func (s *Service) generateComments(postID string, count int) {
	s.comments[postID] = []*Comment{}

	for i := 0; i < count; i++ {
		s.commentCounter++

		var sentiment, content string
		switch roll := s.rng.Float64(); {
		case roll < 0.6:
			sentiment = "positive"
			content = positiveComments[s.rng.Intn(len(positiveComments))]
		case roll < 0.9:
			sentiment = "neutral"
			content = neutralComments[s.rng.Intn(len(neutralComments))]
		default:
			sentiment = "negative"
			content = negativeComments[s.rng.Intn(len(negativeComments))]
		}

		s.comments[postID] = append(s.comments[postID], &Comment{
			ID:         fmt.Sprintf("COMMENT%06d", s.commentCounter),
			PostID:     postID,
			AuthorName: commentAuthors[s.rng.Intn(len(commentAuthors))],
			Content:    content,
			Sentiment:  sentiment,
			CreatedAt:  time.Now(),
		})
	}
}

// GenerateImage produces an image URL for a campaign post and caches it
// per campaign and platform, so repeated deploys reuse the same visual.
func (s *Service) GenerateImage(ctx context.Context, campaignID string, platform Platform, cc campaign.Context) string {
	s.mu.RLock()
	if cached, ok := s.campaignImages[campaignID][string(platform)]; ok {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	var url string
	if s.images != nil {
		url = s.images.Generate(ctx, string(platform), cc)
	} else {
		url = imagegen.StockImage(string(platform), cc)
	}

	s.mu.Lock()
	if s.campaignImages[campaignID] == nil {
		s.campaignImages[campaignID] = make(map[string]string)
	}
	s.campaignImages[campaignID][string(platform)] = url
	s.mu.Unlock()

	return url
}

// UpdatePostImage replaces the image on an existing post.
func (s *Service) UpdatePostImage(postID, imageURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return false
	}
	post.ImageURL = imageURL
	return true
}

// Get returns a post by ID, or nil if not found.
func (s *Service) Get(id string) *Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts[id]
}

// PostComments returns the comments on a post.
func (s *Service) PostComments(postID string) []*Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Comment(nil), s.comments[postID]...)
}

// CampaignPosts returns all posts for a campaign in publish order.
func (s *Service) CampaignPosts(campaignID string) []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Post, 0, len(s.byCampaign[campaignID]))
	for _, id := range s.byCampaign[campaignID] {
		if p, ok := s.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// All returns every post in publish order.
func (s *Service) All() []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Post, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.posts[id])
	}
	return out
}

// Recent returns the newest posts, most recent first.
func (s *Service) Recent(limit int) []*Post {
	all := s.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PostedAt.After(all[j].PostedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// PlatformStats aggregates posts for a single platform.
type PlatformStats struct {
	Posts          int     `json:"posts"`
	Impressions    int     `json:"impressions"`
	EngagementRate float64 `json:"engagement_rate"`
}

// Stats aggregates social performance for a campaign.
type Stats struct {
	TotalPosts        int                      `json:"total_posts"`
	TotalImpressions  int                      `json:"total_impressions"`
	TotalLikes        int                      `json:"total_likes"`
	TotalComments     int                      `json:"total_comments"`
	TotalShares       int                      `json:"total_shares"`
	TotalClicks       int                      `json:"total_clicks"`
	AvgEngagementRate float64                  `json:"avg_engagement_rate"`
	ByPlatform        map[string]PlatformStats `json:"by_platform"`
}

// CampaignStats aggregates engagement across all of a campaign's posts.
// Platforms with no posts are omitted from the per-platform breakdown.
func (s *Service) CampaignStats(campaignID string) Stats {
	posts := s.CampaignPosts(campaignID)

	stats := Stats{ByPlatform: make(map[string]PlatformStats)}
	if len(posts) == 0 {
		return stats
	}

	var rateSum float64
	for _, p := range posts {
		stats.TotalPosts++
		stats.TotalImpressions += p.Impressions
		stats.TotalLikes += p.Likes
		stats.TotalComments += p.Comments
		stats.TotalShares += p.Shares
		stats.TotalClicks += p.Clicks
		rateSum += p.EngagementRate
	}
	stats.AvgEngagementRate = round2(rateSum / float64(len(posts)))

	for _, platform := range Platforms() {
		var ps PlatformStats
		var platformRate float64
		for _, p := range posts {
			if p.Platform != string(platform) {
				continue
			}
			ps.Posts++
			ps.Impressions += p.Impressions
			platformRate += p.EngagementRate
		}
		if ps.Posts > 0 {
			ps.EngagementRate = round2(platformRate / float64(ps.Posts))
			stats.ByPlatform[string(platform)] = ps
		}
	}

	return stats
}

// SentimentAnalysis summarizes comment sentiment across a campaign.
type SentimentAnalysis struct {
	TotalComments   int     `json:"total_comments"`
	Positive        int     `json:"positive"`
	Neutral         int     `json:"neutral"`
	Negative        int     `json:"negative"`
	PositivePercent float64 `json:"positive_percent"`
	NegativePercent float64 `json:"negative_percent"`
}

// CampaignSentiment analyzes the sentiment of all comments across a
// campaign's posts.
func (s *Service) CampaignSentiment(campaignID string) SentimentAnalysis {
	posts := s.CampaignPosts(campaignID)

	s.mu.RLock()
	var all []*Comment
	for _, p := range posts {
		all = append(all, s.comments[p.ID]...)
	}
	s.mu.RUnlock()

	var sa SentimentAnalysis
	if len(all) == 0 {
		return sa
	}

	for _, c := range all {
		switch c.Sentiment {
		case "positive":
			sa.Positive++
		case "neutral":
			sa.Neutral++
		case "negative":
			sa.Negative++
		}
	}
	sa.TotalComments = len(all)
	sa.PositivePercent = round2(float64(sa.Positive) / float64(sa.TotalComments) * 100)
	sa.NegativePercent = round2(float64(sa.Negative) / float64(sa.TotalComments) * 100)
	return sa
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
