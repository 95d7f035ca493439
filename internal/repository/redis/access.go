package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"trip-planner-go/internal/domain/access"
	"trip-planner-go/pkg/logger"
)

// AccessCache shares trip relations between API instances. Redis failures
// degrade to cache misses so authorization falls through to the database.
type AccessCache struct {
	rdb *goredis.Client
	log logger.Logger
}

func NewAccessCache(rdb *goredis.Client, log logger.Logger) *AccessCache {
	return &AccessCache{rdb: rdb, log: log}
}

func accessKey(tripID, userID string) string {
	return fmt.Sprintf("trip-access:%s:%s", tripID, userID)
}

func tripPattern(tripID string) string {
	return fmt.Sprintf("trip-access:%s:*", tripID)
}

type cachedRelation struct {
	Owner       bool `json:"owner"`
	Participant bool `json:"participant"`
}

func (c *AccessCache) Get(ctx context.Context, tripID, userID string) (access.Relation, bool) {
	b, err := c.rdb.Get(ctx, accessKey(tripID, userID)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.InternalError("redis access cache get failed", err, "trip_id", tripID)
		}
		return access.Relation{}, false
	}
	return c.decode(ctx, tripID, userID, b)
}

// decode treats an unreadable entry as a miss and removes it.
func (c *AccessCache) decode(ctx context.Context, tripID, userID string, b []byte) (access.Relation, bool) {
	var cached cachedRelation
	if err := json.Unmarshal(b, &cached); err != nil {
		c.log.InternalError("redis access cache entry corrupt", err, "trip_id", tripID, "user_id", userID)
		c.Delete(ctx, tripID, userID)
		return access.Relation{}, false
	}
	return access.Relation{Owner: cached.Owner, Participant: cached.Participant}, true
}

func (c *AccessCache) Set(ctx context.Context, tripID, userID string, rel access.Relation, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(ctx, tripID, userID)
		return
	}
	b, err := json.Marshal(cachedRelation{Owner: rel.Owner, Participant: rel.Participant})
	if err != nil {
		c.log.InternalError("redis access cache encode failed", err, "trip_id", tripID)
		return
	}
	if err := c.rdb.Set(ctx, accessKey(tripID, userID), b, ttl).Err(); err != nil {
		c.log.InternalError("redis access cache set failed", err, "trip_id", tripID)
	}
}

func (c *AccessCache) Delete(ctx context.Context, tripID, userID string) {
	if err := c.rdb.Del(ctx, accessKey(tripID, userID)).Err(); err != nil {
		c.log.InternalError("redis access cache delete failed", err, "trip_id", tripID)
	}
}

func (c *AccessCache) DeleteTrip(ctx context.Context, tripID string) {
	iter := c.rdb.Scan(ctx, 0, tripPattern(tripID), 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.InternalError("redis access cache scan failed", err, "trip_id", tripID)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.InternalError("redis access cache delete failed", err, "trip_id", tripID)
	}
}
