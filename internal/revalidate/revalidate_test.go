package revalidate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateDeletesPageKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, mr.Set(PageKeyPrefix+CommunityListPath(), "html"))
	require.NoError(t, mr.Set(PageKeyPrefix+CommunityPath(7), "html"))
	require.NoError(t, mr.Set(PageKeyPrefix+PostPath(7, 3), "html"))

	New(rdb, nil).Invalidate(ctx, CommunityListPath(), CommunityPath(7))

	assert.False(t, mr.Exists(PageKeyPrefix+CommunityListPath()))
	assert.False(t, mr.Exists(PageKeyPrefix+CommunityPath(7)))
	// 未列出的路径不受影响
	assert.True(t, mr.Exists(PageKeyPrefix+PostPath(7, 3)))
}

func TestInvalidateNilSafe(t *testing.T) {
	var inv *Invalidator
	inv.Invalidate(context.Background(), CommunityListPath())

	New(nil, nil).Invalidate(context.Background(), CommunityListPath())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/community", CommunityListPath())
	assert.Equal(t, "/community/12", CommunityPath(12))
	assert.Equal(t, "/hobby/5", HobbyPath(5))
	assert.Equal(t, "/community/12/post/34", PostPath(12, 34))
}
