package social

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenretail/marketing-agent/internal/campaign"
)

var testContext = campaign.Context{
	CampaignType:   "acquisition",
	StoreName:      "Bright Threads Boutique",
	StoreType:      "fashion",
	Location:       "Portland, OR",
	Goal:           "attract new customers",
	TargetAudience: "young professionals",
	Offers:         "20% off first purchase",
}

func TestCreatePostIDsAndTracking(t *testing.T) {
	s := NewService(nil, WithSeed(1))

	fb := s.CreatePost(PlatformFacebook, "Check out our sale!", "camp-1", "", []string{"#sale"})
	ig := s.CreatePost(PlatformInstagram, "New arrivals", "camp-1", "", nil)

	assert.Equal(t, "FACEBOOK000001", fb.ID)
	assert.Equal(t, "INSTAGRAM000002", ig.ID)
	assert.Equal(t, []string{"#sale"}, fb.Hashtags)
	assert.NotNil(t, ig.Hashtags)
	assert.Len(t, s.CampaignPosts("camp-1"), 2)
	assert.Len(t, s.All(), 2)
}

func TestEngagementRangesPerPlatform(t *testing.T) {
	tests := []struct {
		platform       Platform
		minImpressions int
		maxImpressions int
		multiplier     float64
	}{
		{PlatformFacebook, 1000, 5000, 0.05},
		{PlatformInstagram, 2000, 8000, 0.08},
		{PlatformTwitter, 500, 3000, 0.03},
	}

	s := NewService(nil, WithSeed(99))
	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			for i := 0; i < 50; i++ {
				p := s.CreatePost(tt.platform, "content", "camp-range", "", nil)

				assert.GreaterOrEqual(t, p.Impressions, tt.minImpressions)
				assert.LessOrEqual(t, p.Impressions, tt.maxImpressions)

				total := int(float64(p.Impressions) * tt.multiplier)
				assert.LessOrEqual(t, p.Likes, total)
				assert.GreaterOrEqual(t, p.Likes, int(float64(total)*0.6)-1)
				assert.LessOrEqual(t, p.Comments, int(float64(total)*0.15)+1)
				assert.LessOrEqual(t, p.Shares, int(float64(total)*0.15)+1)
				assert.LessOrEqual(t, p.Clicks, int(float64(total)*0.25)+1)
				assert.Positive(t, p.EngagementRate)
			}
		})
	}
}

func TestEngagementRateFormula(t *testing.T) {
	s := NewService(nil, WithSeed(5))
	p := s.CreatePost(PlatformFacebook, "content", "camp-rate", "", nil)

	expected := round2(float64(p.Likes+p.Comments+p.Shares) / float64(p.Impressions) * 100)
	assert.Equal(t, expected, p.EngagementRate)
}

func TestCommentsMatchPostCount(t *testing.T) {
	s := NewService(nil, WithSeed(3))
	p := s.CreatePost(PlatformInstagram, "content", "camp-c", "", nil)

	comments := s.PostComments(p.ID)
	assert.Len(t, comments, p.Comments)

	for _, c := range comments {
		assert.Equal(t, p.ID, c.PostID)
		assert.Contains(t, []string{"positive", "neutral", "negative"}, c.Sentiment)
		assert.NotEmpty(t, c.AuthorName)
		assert.NotEmpty(t, c.Content)
	}
}

func TestSentimentDistribution(t *testing.T) {
	s := NewService(nil, WithSeed(11))
	// Instagram posts average ~40 comments each, so 300 posts give a
	// sample north of 10k comments.
	for i := 0; i < 300; i++ {
		s.CreatePost(PlatformInstagram, "content", "camp-s", "", nil)
	}

	sa := s.CampaignSentiment("camp-s")
	require.Greater(t, sa.TotalComments, 10000)

	positiveShare := float64(sa.Positive) / float64(sa.TotalComments)
	neutralShare := float64(sa.Neutral) / float64(sa.TotalComments)
	negativeShare := float64(sa.Negative) / float64(sa.TotalComments)

	assert.InDelta(t, 0.60, positiveShare, 0.03)
	assert.InDelta(t, 0.30, neutralShare, 0.03)
	assert.InDelta(t, 0.10, negativeShare, 0.02)
	assert.Equal(t, sa.TotalComments, sa.Positive+sa.Neutral+sa.Negative)
}

func TestSentimentEmptyCampaign(t *testing.T) {
	s := NewService(nil)
	sa := s.CampaignSentiment("nope")

	assert.Equal(t, 0, sa.TotalComments)
	assert.Equal(t, 0.0, sa.PositivePercent)
	assert.Equal(t, 0.0, sa.NegativePercent)
}

func TestCampaignStats(t *testing.T) {
	s := NewService(nil, WithSeed(8))
	s.CreatePost(PlatformFacebook, "a", "camp-stats", "", nil)
	s.CreatePost(PlatformFacebook, "b", "camp-stats", "", nil)
	s.CreatePost(PlatformTwitter, "c", "camp-stats", "", nil)

	stats := s.CampaignStats("camp-stats")
	assert.Equal(t, 3, stats.TotalPosts)
	assert.Positive(t, stats.TotalImpressions)
	assert.Positive(t, stats.AvgEngagementRate)

	require.Contains(t, stats.ByPlatform, "facebook")
	require.Contains(t, stats.ByPlatform, "twitter")
	assert.NotContains(t, stats.ByPlatform, "instagram")
	assert.Equal(t, 2, stats.ByPlatform["facebook"].Posts)
	assert.Equal(t, 1, stats.ByPlatform["twitter"].Posts)
}

func TestCampaignStatsOnePostPerPlatform(t *testing.T) {
	s := NewService(nil, WithSeed(9))
	for _, platform := range Platforms() {
		s.CreatePost(platform, "launch post", "camp-all", "", nil)
	}

	stats := s.CampaignStats("camp-all")
	assert.Equal(t, 3, stats.TotalPosts)
	for _, platform := range Platforms() {
		require.Contains(t, stats.ByPlatform, string(platform))
		assert.Equal(t, 1, stats.ByPlatform[string(platform)].Posts)
		assert.Positive(t, stats.ByPlatform[string(platform)].Impressions)
	}
}

func TestCampaignStatsEmpty(t *testing.T) {
	s := NewService(nil)
	stats := s.CampaignStats("nope")

	assert.Equal(t, 0, stats.TotalPosts)
	assert.Empty(t, stats.ByPlatform)
}

func TestUpdatePostImage(t *testing.T) {
	s := NewService(nil, WithSeed(2))
	p := s.CreatePost(PlatformTwitter, "content", "camp-img", "", nil)

	assert.True(t, s.UpdatePostImage(p.ID, "https://picsum.photos/id/21/600/400"))
	assert.Equal(t, "https://picsum.photos/id/21/600/400", s.Get(p.ID).ImageURL)
	assert.False(t, s.UpdatePostImage("TWITTER999999", "url"))
}

func TestGenerateImageCachesPerCampaignPlatform(t *testing.T) {
	s := NewService(nil, WithSeed(4))
	ctx := context.Background()

	first := s.GenerateImage(ctx, "camp-cache", PlatformFacebook, testContext)
	second := s.GenerateImage(ctx, "camp-cache", PlatformFacebook, testContext)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "picsum.photos")
}

func TestRecentOrder(t *testing.T) {
	s := NewService(nil, WithSeed(6))
	for i := 0; i < 5; i++ {
		s.CreatePost(PlatformFacebook, fmt.Sprintf("post %d", i), "camp-r", "", nil)
	}

	recent := s.Recent(3)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].PostedAt.After(recent[i-1].PostedAt))
	}
}
