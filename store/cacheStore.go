package store

import (
	"SolidarityHospital/cache"
	"context"

	"github.com/pkg/errors"
)

// CacheStore keeps each collection under "<prefix>:<collection>" in a cache without
// expiry. Backed by cache.RedisCache it is the Redis store; backed by cache.MemoryCache
// it is the in-process store.
type CacheStore struct {
	cache  cache.Cache
	prefix string
}

func NewCacheStore(c cache.Cache, prefix string) *CacheStore {
	return &CacheStore{cache: c, prefix: prefix}
}

// NewMemoryStore returns a CacheStore over a fresh in-process cache.
func NewMemoryStore() *CacheStore {
	return NewCacheStore(cache.NewMemoryCache(), "frontdesk")
}

func (s *CacheStore) Load(ctx context.Context, collection Collection) ([]byte, error) {
	val, err := s.cache.Get(ctx, s.key(collection))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", collection)
	}
	if val == "" {
		return nil, nil
	}
	return []byte(val), nil
}

func (s *CacheStore) Save(ctx context.Context, collection Collection, payload []byte) error {
	if err := s.cache.Set(ctx, s.key(collection), payload, 0); err != nil {
		return errors.Wrapf(err, "failed to save %s", collection)
	}
	return nil
}

func (s *CacheStore) Remove(ctx context.Context, collection Collection) error {
	if err := s.cache.Delete(ctx, s.key(collection)); err != nil {
		return errors.Wrapf(err, "failed to remove %s", collection)
	}
	return nil
}

func (s *CacheStore) key(collection Collection) string {
	if s.prefix == "" {
		return string(collection)
	}
	return s.prefix + ":" + string(collection)
}
