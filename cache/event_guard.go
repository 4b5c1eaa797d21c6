package cache

import (
	"context"
	"fmt"
	"time"

	"EchoMeta/logger"

	"github.com/redis/go-redis/v9"
)

// guardTTL 重复投递抑制标记的保留时间
const guardTTL = 24 * time.Hour

// EventGuard 用 Redis SETNX 做事件去重：同一对象同一版本的重复
// 投递会被跳过。这只是尽力而为的省活手段——Redis 不可用或标记
// 过期时事件照常处理，管道本身的幂等性保证正确性。
type EventGuard struct {
	client *redis.Client
}

// NewEventGuard 创建事件去重器
func NewEventGuard(client *redis.Client) *EventGuard {
	return &EventGuard{client: client}
}

// FirstDelivery 判断 (bucket, key, etag) 是否首次投递。
// Redis 访问失败时返回 true，宁可多处理也不吞事件。
func (g *EventGuard) FirstDelivery(ctx context.Context, bucket, key, etag string) bool {
	mark := fmt.Sprintf("echometa:event:%s:%s:%s", bucket, key, etag)
	ok, err := g.client.SetNX(ctx, mark, "1", guardTTL).Result()
	if err != nil {
		logger.Warn("事件去重检查失败，按首次投递处理",
			logger.String("key", key),
			logger.ErrorField(err))
		return true
	}
	return ok
}
