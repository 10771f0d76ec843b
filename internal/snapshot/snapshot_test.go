package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, func() {
		client.Close()
		mr.Close()
	}
}

type testOverview struct {
	CampaignID string `json:"campaign_id"`
	TotalReach int    `json:"total_reach"`
}

func TestPutGetMemoryOnly(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "camp-1", testOverview{CampaignID: "camp-1", TotalReach: 4200}))

	raw, ok := s.Get(ctx, "camp-1")
	require.True(t, ok)

	var got testOverview
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 4200, got.TotalReach)

	_, ok = s.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestPutMirrorsToRedis(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	s := NewStore(client)
	require.NoError(t, s.Put(ctx, "camp-2", testOverview{CampaignID: "camp-2", TotalReach: 100}))

	val, err := client.Get(ctx, "overview:camp-2").Result()
	require.NoError(t, err)
	assert.Contains(t, val, `"total_reach":100`)
}

func TestGetFallsBackToRedis(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewStore(client)
	require.NoError(t, writer.Put(ctx, "camp-3", testOverview{CampaignID: "camp-3", TotalReach: 7}))

	// Fresh store with empty memory hydrates from the mirror
	reader := NewStore(client)
	raw, ok := reader.Get(ctx, "camp-3")
	require.True(t, ok)

	var got testOverview
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "camp-3", got.CampaignID)

	// Second read is served from memory
	assert.Contains(t, reader.CampaignIDs(), "camp-3")
}

func TestDelete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	s := NewStore(client)
	require.NoError(t, s.Put(ctx, "camp-4", testOverview{CampaignID: "camp-4"}))

	s.Delete(ctx, "camp-4")
	_, ok := s.Get(ctx, "camp-4")
	assert.False(t, ok)
	assert.Empty(t, s.CampaignIDs())
}

func TestPutRejectsUnmarshalable(t *testing.T) {
	s := NewStore(nil)
	err := s.Put(context.Background(), "camp-5", make(chan int))
	assert.Error(t, err)
}
