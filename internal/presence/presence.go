// Package presence tracks which users are online. Redis holds a TTL key per
// user so presence expires on its own; the user document's isOnline flag is
// kept in sync for readers that only see Mongo. Redis is optional: without
// it the Mongo flag is the only record.
package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/repositories"
)

const keyPrefix = "presence:"

// Tracker records user presence transitions and announces them on the bus.
type Tracker struct {
	client *redis.Client // nil when Redis is not configured
	users  repositories.UserRepository
	broker *events.Broker
	log    *zap.Logger
	ttl    time.Duration
}

// NewTracker creates a Tracker. client may be nil.
func NewTracker(client *redis.Client, users repositories.UserRepository, broker *events.Broker, log *zap.Logger) *Tracker {
	return &Tracker{
		client: client,
		users:  users,
		broker: broker,
		log:    log,
		ttl:    60 * time.Second,
	}
}

// MarkOnline records the user as online, refreshing the TTL. The
// IS_USER_ONLINE event fires only on an offline-to-online transition.
func (t *Tracker) MarkOnline(ctx context.Context, userID string) error {
	wasOnline := false
	if t.client != nil {
		n, err := t.client.Exists(ctx, keyPrefix+userID).Result()
		if err != nil {
			t.log.Warn("presence lookup failed", zap.String("user", userID), zap.Error(err))
		}
		wasOnline = n > 0
		if err := t.client.Set(ctx, keyPrefix+userID, "1", t.ttl).Err(); err != nil {
			t.log.Warn("presence set failed", zap.String("user", userID), zap.Error(err))
		}
	}

	if err := t.users.SetOnline(ctx, userID, true); err != nil {
		return err
	}
	if !wasOnline {
		t.broker.Publish(events.TopicIsUserOnline, events.UserOnline{UserID: userID, IsOnline: true})
	}
	return nil
}

// MarkOffline records the user as offline.
func (t *Tracker) MarkOffline(ctx context.Context, userID string) error {
	if t.client != nil {
		if err := t.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
			t.log.Warn("presence del failed", zap.String("user", userID), zap.Error(err))
		}
	}
	if err := t.users.SetOnline(ctx, userID, false); err != nil {
		return err
	}
	t.broker.Publish(events.TopicIsUserOnline, events.UserOnline{UserID: userID, IsOnline: false})
	return nil
}

// IsOnline reports the user's presence. Prefers the Redis TTL key, falling
// back to the Mongo flag.
func (t *Tracker) IsOnline(ctx context.Context, userID string) bool {
	if t.client != nil {
		n, err := t.client.Exists(ctx, keyPrefix+userID).Result()
		if err == nil {
			return n > 0
		}
		t.log.Warn("presence lookup failed", zap.String("user", userID), zap.Error(err))
	}
	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsOnline
}
