// Package presence tracks which users are currently active.
//
// An active heartbeat stores a key with a TTL equal to the inactivity
// timeout. A user whose key has expired is considered inactive even if the
// database still says otherwise.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:"

// Tracker stores presence heartbeats in Redis.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTracker creates a tracker whose heartbeats expire after ttl.
func NewTracker(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

func key(userID string) string {
	return keyPrefix + userID
}

// Touch records a heartbeat for userID.
func (t *Tracker) Touch(ctx context.Context, userID string, at time.Time) error {
	if err := t.client.Set(ctx, key(userID), at.Unix(), t.ttl).Err(); err != nil {
		return fmt.Errorf("presence: failed to touch %s: %w", userID, err)
	}
	return nil
}

// Clear removes the heartbeat for userID.
func (t *Tracker) Clear(ctx context.Context, userID string) error {
	if err := t.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("presence: failed to clear %s: %w", userID, err)
	}
	return nil
}

// Active reports, for each id, whether it has a live heartbeat.
func (t *Tracker) Active(ctx context.Context, userIDs ...string) (map[string]bool, error) {
	active := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return active, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = key(id)
	}

	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("presence: failed to read heartbeats: %w", err)
	}

	for i, v := range values {
		active[userIDs[i]] = v != nil
	}
	return active, nil
}
