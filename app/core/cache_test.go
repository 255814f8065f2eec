package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func Test_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(RedisConfig{Addr: mr.Addr()})
	ctx := context.Background()

	val, err := cache.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Equal(t, "", val)

	assert.NoError(t, cache.SetEx(ctx, "user:token:abc", `{"user_id":"u1"}`, time.Minute))

	val, err = cache.Get(ctx, "user:token:abc")
	assert.NoError(t, err)
	assert.Equal(t, `{"user_id":"u1"}`, val)

	mr.FastForward(2 * time.Minute)
	val, err = cache.Get(ctx, "user:token:abc")
	assert.NoError(t, err)
	assert.Equal(t, "", val)

	assert.NoError(t, cache.SetEx(ctx, "k", "v", time.Minute))
	assert.NoError(t, cache.Del(ctx, "k"))
	val, err = cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "", val)
}

func Test_LocalCacheExpiry(t *testing.T) {
	cache := NewLocalCache()
	ctx := context.Background()

	assert.NoError(t, cache.SetEx(ctx, "k", "v", 10*time.Millisecond))

	val, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)
	val, err = cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "", val)
}

func Test_NewCacheFallsBackToLocal(t *testing.T) {
	cache := NewCache(RedisConfig{})
	_, ok := cache.(*LocalCache)
	assert.True(t, ok)
}
