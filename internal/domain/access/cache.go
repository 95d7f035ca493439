package access

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, tripID, userID string) (Relation, bool)
	Set(ctx context.Context, tripID, userID string, rel Relation, ttl time.Duration)
	Delete(ctx context.Context, tripID, userID string)
	DeleteTrip(ctx context.Context, tripID string)
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string, string) (Relation, bool) {
	return Relation{}, false
}

func (NoopCache) Set(context.Context, string, string, Relation, time.Duration) {}

func (NoopCache) Delete(context.Context, string, string) {}

func (NoopCache) DeleteTrip(context.Context, string) {}
