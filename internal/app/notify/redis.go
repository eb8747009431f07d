package notify

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const dedupKeyPrefix = "savingsdesk:notify:"

type dedupStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DedupDispatcher delivers each event id at most once across retries and instances.
// Redis being unavailable does not block delivery.
type DedupDispatcher struct {
	next   Dispatcher
	store  dedupStore
	ttl    time.Duration
	logger zerolog.Logger
}

func NewDedupDispatcher(next Dispatcher, store dedupStore, ttl time.Duration, l zerolog.Logger) *DedupDispatcher {
	return &DedupDispatcher{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: l.With().Str("component", "Notify.Dedup").Logger(),
	}
}

func (d *DedupDispatcher) Send(ctx context.Context, e Event) error {
	key := dedupKeyPrefix + e.ID
	l := d.logger.With().Str("event_id", e.ID).Logger()

	claimed, err := d.store.SetNX(ctx, key, string(e.Type), d.ttl).Result()
	if err != nil {
		l.Warn().Err(err).Msg("Dedup store unavailable, sending anyway")
		return d.next.Send(ctx, e)
	}

	if !claimed {
		l.Debug().Msg("Already delivered, skipping")
		return nil
	}

	if err := d.next.Send(ctx, e); err != nil {
		// release so the next attempt can claim it again
		if delErr := d.store.Del(ctx, key).Err(); delErr != nil {
			l.Warn().Err(delErr).Msg("Dedup release failed")
		}
		return err
	}

	return nil
}
