package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NoteCounts holds the engagement tallies shown next to a feed item.
type NoteCounts struct {
	Likes     int64 `json:"likes"`
	Favorites int64 `json:"favorites"`
	Comments  int64 `json:"comments"`
}

const feedCountTTL = 30 * time.Second

// FeedCountCache keeps recently computed engagement counts in Redis so
// feed pages don't re-aggregate on every request. All methods tolerate
// a nil receiver or client: callers fall through to the database.
type FeedCountCache struct {
	rdb *redis.Client
}

func NewFeedCountCache(rdb *redis.Client) *FeedCountCache {
	return &FeedCountCache{rdb: rdb}
}

func feedCountKey(noteId uuid.UUID) string {
	return fmt.Sprintf("feed:counts:%s", noteId)
}

// GetMany returns cached counts for the given notes. Notes without a
// cache entry are simply absent from the result map.
func (c *FeedCountCache) GetMany(ctx context.Context, noteIds []uuid.UUID) map[uuid.UUID]NoteCounts {
	found := make(map[uuid.UUID]NoteCounts)
	if c == nil || c.rdb == nil || len(noteIds) == 0 {
		return found
	}

	keys := make([]string, len(noteIds))
	for i, id := range noteIds {
		keys[i] = feedCountKey(id)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return found
	}

	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var counts NoteCounts
		if err := json.Unmarshal([]byte(str), &counts); err != nil {
			continue
		}
		found[noteIds[i]] = counts
	}
	return found
}

// SetMany stores freshly computed counts with a short TTL.
func (c *FeedCountCache) SetMany(ctx context.Context, counts map[uuid.UUID]NoteCounts) {
	if c == nil || c.rdb == nil || len(counts) == 0 {
		return
	}

	pipe := c.rdb.Pipeline()
	for id, v := range counts {
		data, err := json.Marshal(v)
		if err != nil {
			continue
		}
		pipe.Set(ctx, feedCountKey(id), data, feedCountTTL)
	}
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops the cached counts for a note after its engagement
// or comment set changes.
func (c *FeedCountCache) Invalidate(ctx context.Context, noteId uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, feedCountKey(noteId)).Err()
}
