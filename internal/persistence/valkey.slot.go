package persistence

import (
	"context"

	"gameshelf/internal/database"
)

// ValkeySlot stores the document as a plain string key with no expiry.
type ValkeySlot struct {
	cache database.CacheClient
}

func NewValkeySlot(cache database.CacheClient) *ValkeySlot {
	return &ValkeySlot{cache: cache}
}

func (s *ValkeySlot) Read(ctx context.Context, key string) ([]byte, bool, error) {
	return database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		GetBytes()
}

func (s *ValkeySlot) Write(ctx context.Context, key string, data []byte) error {
	return database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		WithBytes(data).
		WithoutExpiry().
		Set()
}
