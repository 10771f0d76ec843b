// Package snapshot stores campaign overview documents so dashboards can
// reload them cheaply. Writes always land in memory; when a Redis client
// is attached they are mirrored through to Redis so snapshots survive
// process restarts.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

const keyPrefix = "overview:"

// retention for mirrored snapshots; in-memory entries never expire.
const mirrorTTL = 24 * time.Hour

// Store is a write-through snapshot store. The zero value is not usable;
// construct with NewStore.
type Store struct {
	mu     sync.RWMutex
	local  map[string]json.RawMessage
	client *redis.Client
}

// NewStore creates a snapshot store. client may be nil for memory-only
// operation.
func NewStore(client *redis.Client) *Store {
	return &Store{
		local:  make(map[string]json.RawMessage),
		client: client,
	}
}

// Put saves a snapshot for a campaign. A Redis mirror failure is logged
// and swallowed; the in-memory copy is authoritative.
func (s *Store) Put(ctx context.Context, campaignID string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("snapshot: marshal %s: %w", campaignID, err)
	}

	s.mu.Lock()
	s.local[campaignID] = raw
	s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Set(ctx, keyPrefix+campaignID, raw, mirrorTTL).Err(); err != nil {
			logger.Warn("snapshot: redis mirror failed",
				"campaign_id", campaignID,
				"error", err.Error())
		}
	}
	return nil
}

// Get returns the stored snapshot for a campaign. Memory is checked
// first, then the Redis mirror.
func (s *Store) Get(ctx context.Context, campaignID string) (json.RawMessage, bool) {
	s.mu.RLock()
	raw, ok := s.local[campaignID]
	s.mu.RUnlock()
	if ok {
		return raw, true
	}

	if s.client != nil {
		val, err := s.client.Get(ctx, keyPrefix+campaignID).Bytes()
		if err == nil {
			s.mu.Lock()
			s.local[campaignID] = val
			s.mu.Unlock()
			return val, true
		}
		if err != redis.Nil {
			logger.Warn("snapshot: redis read failed",
				"campaign_id", campaignID,
				"error", err.Error())
		}
	}
	return nil, false
}

// CampaignIDs returns the IDs with an in-memory snapshot.
func (s *Store) CampaignIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.local))
	for id := range s.local {
		out = append(out, id)
	}
	return out
}

// Delete removes a snapshot from memory and the mirror.
func (s *Store) Delete(ctx context.Context, campaignID string) {
	s.mu.Lock()
	delete(s.local, campaignID)
	s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Del(ctx, keyPrefix+campaignID).Err(); err != nil {
			logger.Warn("snapshot: redis delete failed",
				"campaign_id", campaignID,
				"error", err.Error())
		}
	}
}
