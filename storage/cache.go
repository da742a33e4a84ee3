package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/logger"
)

// ErrCacheMiss is returned by Cache.Get for absent keys.
var ErrCacheMiss = errors.New("storage: cache miss")

// Cache is a byte-value cache with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisConfig holds the connection settings for RedisCache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// RedisCache implements Cache with Redis strings.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects and pings the server.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Address, err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedProfileStore serves reads from a cache in front of another
// ProfileStore. Writes go to the store first, then drop the cached entry.
// Cache failures are logged and never fail the call.
type CachedProfileStore struct {
	store ProfileStore
	cache Cache
	ttl   time.Duration
}

var _ ProfileStore = (*CachedProfileStore)(nil)

func NewCachedProfileStore(store ProfileStore, cache Cache, ttl time.Duration) *CachedProfileStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedProfileStore{store: store, cache: cache, ttl: ttl}
}

func cacheKey(collection, userID string) string {
	return fmt.Sprintf("curriculum:%s:%s", collection, userID)
}

func (s *CachedProfileStore) SaveProfile(ctx context.Context, userID string, record dto.ProfileRecord) error {
	if err := s.store.SaveProfile(ctx, userID, record); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKey(collectionProfiles, userID))
	return nil
}

func (s *CachedProfileStore) MergeProfile(ctx context.Context, userID string, fields map[string]json.RawMessage) (dto.ProfileRecord, error) {
	record, err := s.store.MergeProfile(ctx, userID, fields)
	if err != nil {
		return dto.ProfileRecord{}, err
	}
	s.invalidate(ctx, cacheKey(collectionProfiles, userID))
	return record, nil
}

func (s *CachedProfileStore) GetProfile(ctx context.Context, userID string) (dto.ProfileRecord, error) {
	key := cacheKey(collectionProfiles, userID)
	if raw, ok := s.lookup(ctx, key); ok {
		if record, err := decodeProfile(raw); err == nil {
			return record, nil
		}
	}

	record, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return dto.ProfileRecord{}, err
	}
	s.remember(ctx, key, record)
	return record, nil
}

func (s *CachedProfileStore) SaveFileMetadata(ctx context.Context, userID string, meta dto.FilesMetadata) error {
	if err := s.store.SaveFileMetadata(ctx, userID, meta); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKey(collectionFiles, userID))
	return nil
}

func (s *CachedProfileStore) GetFileMetadata(ctx context.Context, userID string) (dto.FilesMetadata, error) {
	key := cacheKey(collectionFiles, userID)
	if raw, ok := s.lookup(ctx, key); ok {
		var meta dto.FilesMetadata
		if err := json.Unmarshal(raw, &meta); err == nil {
			return meta, nil
		}
	}

	meta, err := s.store.GetFileMetadata(ctx, userID)
	if err != nil {
		return dto.FilesMetadata{}, err
	}
	s.remember(ctx, key, meta)
	return meta, nil
}

// Close closes the wrapped store and, when it holds connections, the cache.
func (s *CachedProfileStore) Close() error {
	err := s.store.Close()
	if closer, ok := s.cache.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}

func (s *CachedProfileStore) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	return raw, true
}

func (s *CachedProfileStore) remember(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *CachedProfileStore) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
