package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenretail/marketing-agent/internal/config"
	"github.com/lumenretail/marketing-agent/internal/social"
)

func TestSimulatedPublish(t *testing.T) {
	svc := social.NewService(nil, social.WithSeed(1))
	post := svc.CreatePost(social.PlatformFacebook, "Sale this weekend!", "camp-1", "", nil)

	result, err := Simulated{}.Publish(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, post.ID, result.PostID)
	assert.True(t, result.Published)
	assert.True(t, result.Simulated)
	assert.False(t, result.PublishedAt.IsZero())
}

func TestSimulatedPublishNilPost(t *testing.T) {
	_, err := Simulated{}.Publish(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewBrowserRequiresCredentials(t *testing.T) {
	_, err := NewBrowser(config.PublisherConfig{Enabled: false})
	assert.Error(t, err)

	_, err = NewBrowser(config.PublisherConfig{Enabled: true})
	assert.Error(t, err)

	b, err := NewBrowser(config.PublisherConfig{
		Enabled:       true,
		FacebookEmail: "owner@example.com",
		FacebookPass:  "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBrowserSimulatesNonFacebookPlatforms(t *testing.T) {
	b, err := NewBrowser(config.PublisherConfig{
		Enabled:       true,
		FacebookEmail: "owner@example.com",
		FacebookPass:  "secret",
	})
	require.NoError(t, err)

	svc := social.NewService(nil, social.WithSeed(1))
	post := svc.CreatePost(social.PlatformTwitter, "content", "camp-1", "", nil)

	result, err := b.Publish(context.Background(), post)
	require.NoError(t, err)
	assert.True(t, result.Simulated)
}
