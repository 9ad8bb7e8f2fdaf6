package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hackagra/mindverse-api/utils/cache"
)

// Notice is a user-facing notification delivered over the SSE stream
type Notice struct {
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Hub fans notifications out to connected SSE clients through Redis pub/sub,
// so delivery works across multiple API instances.
type Hub struct {
	cache *cache.RedisCache
}

// NewHub creates a notification hub backed by the given Redis cache
func NewHub(c *cache.RedisCache) *Hub {
	return &Hub{cache: c}
}

// ChannelForUser returns the Redis channel carrying a user's notifications
func ChannelForUser(userID uint) string {
	return fmt.Sprintf("notify:user:%d", userID)
}

// Publish sends a notice to the owning user's channel. Publishing to a
// channel with no subscribers is not an error; the notice is simply dropped.
func (h *Hub) Publish(ctx context.Context, notice Notice) error {
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	return h.cache.Publish(ctx, ChannelForUser(notice.UserID), payload)
}

// Subscribe opens a subscription on a user's notification channel. The caller
// owns the returned PubSub and must Close it when the client disconnects.
func (h *Hub) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return h.cache.Subscribe(ctx, ChannelForUser(userID))
}
