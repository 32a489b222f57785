package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewLikeCacheRepository(rdb)
	ctx := context.Background()

	_, hit, err := repo.GetLikeCountCached(ctx, 7)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, repo.SetLikeCount(ctx, 7, 42))

	cnt, hit, err := repo.GetLikeCountCached(ctx, 7)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.EqualValues(t, 42, cnt)

	// 写后删 Key，下次读回源
	require.NoError(t, repo.DeleteCount(ctx, 7))
	_, hit, err = repo.GetLikeCountCached(ctx, 7)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLikeCacheNilSafe(t *testing.T) {
	repo := NewLikeCacheRepository(nil)
	ctx := context.Background()

	_, hit, err := repo.GetLikeCountCached(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, repo.SetLikeCount(ctx, 1, 3))
	require.NoError(t, repo.DeleteCount(ctx, 1))
}
