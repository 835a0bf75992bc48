package cache

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
)

// defaultExpiry bounds entries stored without an explicit ttl.
const defaultExpiry = 24 * time.Hour

// MemoryStore keeps values in a process-local go-zero cache.
type MemoryStore struct {
	cache *collection.Cache
}

// NewMemoryStore creates a process-local store.
func NewMemoryStore(name string) (*MemoryStore, error) {
	c, err := collection.NewCache(defaultExpiry, collection.WithName(name))
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c}, nil
}

// Remember implements Store.
func (s *MemoryStore) Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error) {
	if value, ok := s.cache.Get(key); ok {
		if data, ok := value.([]byte); ok {
			return data, nil
		}
	}

	data, err := producer(ctx)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = defaultExpiry
	}
	s.cache.SetWithExpire(key, data, ttl)
	return data, nil
}

// Forget implements Store.
func (s *MemoryStore) Forget(_ context.Context, key string) error {
	s.cache.Del(key)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
