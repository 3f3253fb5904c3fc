package reader

import (
	"context"
	"encoding/json"
	"fmt"

	"namavruksha/pkg/redis"
)

// Progress is the per-devotee, per-document state that survives across
// reading sessions. Everything else (zoom, search results) is
// deliberately session-local.
type Progress struct {
	LastPage  int   `json:"last_page"`
	Bookmarks []int `json:"bookmarks"`
}

// ProgressStore persists reading progress keyed by devotee and document
type ProgressStore interface {
	// Load returns the stored progress, or nil when none exists
	Load(ctx context.Context, userID, documentID string) (*Progress, error)
	Save(ctx context.Context, userID, documentID string, progress *Progress) error
}

// RedisProgressStore keeps reading progress in Redis without expiry
type RedisProgressStore struct {
	cache *redis.Client
}

// NewRedisProgressStore creates a progress store backed by Redis
func NewRedisProgressStore(cache *redis.Client) *RedisProgressStore {
	return &RedisProgressStore{cache: cache}
}

func (s *RedisProgressStore) Load(ctx context.Context, userID, documentID string) (*Progress, error) {
	key := s.cache.KeyBuilder.KeyReadingProgress(userID, documentID)

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reading progress: %w", err)
	}

	var progress Progress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		return nil, fmt.Errorf("failed to decode reading progress: %w", err)
	}
	return &progress, nil
}

func (s *RedisProgressStore) Save(ctx context.Context, userID, documentID string, progress *Progress) error {
	key := s.cache.KeyBuilder.KeyReadingProgress(userID, documentID)

	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode reading progress: %w", err)
	}
	if err := s.cache.Set(ctx, key, data, redis.TTLPersistent); err != nil {
		return fmt.Errorf("failed to save reading progress: %w", err)
	}
	return nil
}
