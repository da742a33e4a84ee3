package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests talk to real services and only run when the matching
// environment variable points at one.

func TestMinIOFileStoreIntegration(t *testing.T) {
	endpoint := os.Getenv("MINIO_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_TEST_ENDPOINT not set")
	}
	ctx := context.Background()

	store, err := NewMinIOFileStore(ctx, MinIOConfig{
		Endpoint:        endpoint,
		AccessKeyID:     os.Getenv("MINIO_TEST_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("MINIO_TEST_SECRET_KEY"),
		Bucket:          "curriculum-test",
		PresignExpiry:   time.Hour,
	})
	require.NoError(t, err)

	stored, err := store.Save(ctx, "u-test", uuid.NewString()+".txt", []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.URL)

	assert.NoError(t, store.Delete(ctx, stored))
}

func TestGormProfileStoreIntegration(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	ctx := context.Background()

	store, err := NewGormProfileStore(MySQLConfig{DSN: dsn})
	require.NoError(t, err)
	defer store.Close()

	userID := "test-" + uuid.NewString()
	require.NoError(t, store.SaveProfile(ctx, userID, sampleRecord()))

	got, err := store.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord().Profile, got.Profile)

	_, err = store.GetProfile(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, RedisConfig{Address: addr})
	require.NoError(t, err)
	defer cache.Close()

	key := "curriculum:test:" + uuid.NewString()
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, []byte("v"), time.Minute))
	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, cache.Delete(ctx, key))
}
