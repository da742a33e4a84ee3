package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	gets    int
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func TestCachedProfileStoreReadThrough(t *testing.T) {
	cache := newMemoryCache()
	store := NewCachedProfileStore(newTestSQLiteStore(t), cache, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, "u-1", sampleRecord()))

	first, err := store.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Contains(t, cache.values, cacheKey(collectionProfiles, "u-1"))

	second, err := store.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, first.Profile, second.Profile)
}

func TestCachedProfileStoreInvalidatesOnWrite(t *testing.T) {
	cache := newMemoryCache()
	store := NewCachedProfileStore(newTestSQLiteStore(t), cache, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, "u-1", sampleRecord()))
	_, err := store.GetProfile(ctx, "u-1")
	require.NoError(t, err)

	_, err = store.MergeProfile(ctx, "u-1", map[string]json.RawMessage{"name": json.RawMessage(`"Novo Nome"`)})
	require.NoError(t, err)
	assert.NotContains(t, cache.values, cacheKey(collectionProfiles, "u-1"))

	got, err := store.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Novo Nome", got.Name)
}

func TestCachedProfileStoreToleratesCacheFailure(t *testing.T) {
	cache := newMemoryCache()
	cache.failGet = true
	store := NewCachedProfileStore(newTestSQLiteStore(t), cache, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveFileMetadata(ctx, "u-1", dto.FilesMetadata{OriginalFileName: "cv.pdf"}))

	meta, err := store.GetFileMetadata(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", meta.OriginalFileName)
}

func TestCachedProfileStoreMissingProfile(t *testing.T) {
	cache := newMemoryCache()
	store := NewCachedProfileStore(newTestSQLiteStore(t), cache, time.Minute)

	_, err := store.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, cache.values)
}
