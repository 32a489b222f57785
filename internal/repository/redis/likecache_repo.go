package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCntTTL       = 24 * time.Hour
	LikeCntKeyPrefix = "like:cnt:post" // 缓存某个帖子的点赞计数
)

// LikeCacheRepository 点赞计数的 cache-aside：写路径删 Key，读路径回源后回填
type LikeCacheRepository struct {
	rdb        *redis.Client
	likeCntTTL time.Duration
}

func NewLikeCacheRepository(rdb *redis.Client) *LikeCacheRepository {
	return &LikeCacheRepository{
		rdb:        rdb,
		likeCntTTL: LikeCntTTL,
	}
}

func (r *LikeCacheRepository) likeCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// GetLikeCountCached 从缓存读取帖子的点赞数量
func (r *LikeCacheRepository) GetLikeCountCached(ctx context.Context, postID uint64) (int64, bool, error) {
	if r == nil || r.rdb == nil {
		return 0, false, nil
	}
	val, err := r.rdb.Get(ctx, r.likeCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetLikeCount 回填帖子点赞数
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, postID uint64, cnt int64) error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Set(ctx, r.likeCntKey(postID), cnt, r.likeCntTTL).Err()
}

// DeleteCount 写后删 Key，读侧重建
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, postID uint64) error {
	if r == nil || r.rdb == nil {
		return nil
	}
	if err := r.rdb.Del(ctx, r.likeCntKey(postID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
