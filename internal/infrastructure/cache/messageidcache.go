// Package cache provides a Redis fast-path for message deduplication. The
// database unique index on message_id remains the source of truth; the cache
// only saves a round trip for recently seen messages.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// messageKeyPrefix is the prefix for all seen-message keys
	messageKeyPrefix = "helpdesk:seen_message:"
	// DefaultSeenTTL is how long a message ID stays in the fast path
	DefaultSeenTTL = 72 * time.Hour
)

// MessageIDCache remembers recently ingested message IDs. A nil cache is
// valid and reports every message as unseen, so callers never need to guard.
type MessageIDCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMessageIDCache creates a MessageIDCache. ttl <= 0 falls back to
// DefaultSeenTTL.
func NewMessageIDCache(client *redis.Client, ttl time.Duration) *MessageIDCache {
	if ttl <= 0 {
		ttl = DefaultSeenTTL
	}
	return &MessageIDCache{client: client, ttl: ttl}
}

func (c *MessageIDCache) buildKey(messageID string) string {
	return messageKeyPrefix + messageID
}

// Seen reports whether messageID was recently ingested. Cache errors degrade
// to "unseen": the database index catches any miss.
func (c *MessageIDCache) Seen(ctx context.Context, messageID string) bool {
	if c == nil || c.client == nil {
		return false
	}

	exists, err := c.client.Exists(ctx, c.buildKey(messageID)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// MarkSeen records messageID for the cache TTL.
func (c *MessageIDCache) MarkSeen(ctx context.Context, messageID string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Set(ctx, c.buildKey(messageID), "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark message as seen: %w", err)
	}
	return nil
}
