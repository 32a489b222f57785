package revalidate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PageKeyPrefix 渲染层缓存页面的 Key 前缀
const PageKeyPrefix = "page:"

// 渲染层的视图路径，与前端路由一致
func CommunityListPath() string { return "/community" }

func CommunityPath(id uint64) string { return fmt.Sprintf("/community/%d", id) }

func HobbyPath(id uint64) string { return fmt.Sprintf("/hobby/%d", id) }

func PostPath(communityID, postID uint64) string {
	return fmt.Sprintf("/community/%d/post/%d", communityID, postID)
}

// Invalidator 失效信号：删掉 Redis 里的页面缓存 Key。
// Kafka 侧的投递走 outbox，由 notify.Relay 异步完成。
type Invalidator struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(rdb *redis.Client, log *zap.Logger) *Invalidator {
	return &Invalidator{rdb: rdb, log: log}
}

// Invalidate 尽力而为：缓存不可用不影响主流程
func (i *Invalidator) Invalidate(ctx context.Context, paths ...string) {
	if i == nil || i.rdb == nil || len(paths) == 0 {
		return
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, PageKeyPrefix+p)
	}
	if err := i.rdb.Del(ctx, keys...).Err(); err != nil && i.log != nil {
		i.log.Warn("invalidate page cache", zap.Strings("paths", paths), zap.Error(err))
	}
}
