package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"trip-planner-go/internal/domain/access"
)

type AccessCache struct {
	mu    sync.RWMutex
	items map[string]accessItem
	now   func() time.Time
}

type accessItem struct {
	value     access.Relation
	expiresAt time.Time
}

func NewAccessCache() *AccessCache {
	return &AccessCache{
		items: make(map[string]accessItem),
		now:   time.Now,
	}
}

func accessKey(tripID, userID string) string {
	return tripID + "|" + userID
}

func (c *AccessCache) Get(_ context.Context, tripID, userID string) (access.Relation, bool) {
	key := accessKey(tripID, userID)
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return access.Relation{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return access.Relation{}, false
	}

	return item.value, true
}

func (c *AccessCache) Set(ctx context.Context, tripID, userID string, rel access.Relation, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(ctx, tripID, userID)
		return
	}

	c.mu.Lock()
	c.items[accessKey(tripID, userID)] = accessItem{
		value:     rel,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *AccessCache) Delete(_ context.Context, tripID, userID string) {
	c.mu.Lock()
	delete(c.items, accessKey(tripID, userID))
	c.mu.Unlock()
}

func (c *AccessCache) DeleteTrip(_ context.Context, tripID string) {
	prefix := tripID + "|"
	c.mu.Lock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}

func (c *AccessCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]accessItem)
	c.mu.Unlock()
}
