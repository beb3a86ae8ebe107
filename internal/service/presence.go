package service

import (
	"context"
	"time"
)

// PresenceTracker records and reports live user heartbeats.
type PresenceTracker interface {
	Touch(ctx context.Context, userID string, at time.Time) error
	Clear(ctx context.Context, userID string) error
	Active(ctx context.Context, userIDs ...string) (map[string]bool, error)
}
