package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/dto"
)

func testStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("SAFEALERT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SAFEALERT_TEST_REDIS_ADDR no definido")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	s := newRedisStore(rdb, time.Minute)
	t.Cleanup(func() {
		_ = s.InvalidateActive(context.Background())
		_ = s.Close()
	})
	return s
}

func TestRedisStore_CacheDeAlertas(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.InvalidateActive(ctx))
	_, hit, err := s.GetActive(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	in := []dto.AlertResponse{{ID: "a1", ProductName: "Yogur", PriorityLevel: 4}}
	require.NoError(t, s.SetActive(ctx, in))

	out, hit, err := s.GetActive(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, out, 1)
	assert.Equal(t, "Yogur", out[0].ProductName)

	require.NoError(t, s.InvalidateActive(ctx))
	_, hit, _ = s.GetActive(ctx)
	assert.False(t, hit)
}

func TestRedisStore_TryLock(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	key := "safealert:test:lock:" + uuid.NewString()

	unlock, ok, err := s.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "el segundo intento no debe obtener el lock")

	require.NoError(t, unlock(ctx))

	unlock2, ok, err := s.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, unlock2(ctx))
}

func TestNewRedisStore_TTLPorDefecto(t *testing.T) {
	s := newRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0)
	defer s.Close()
	assert.Equal(t, 30*time.Second, s.ttl)
}
