package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donor-finder-api/internal/models"
)

// ActivityRepository interface for dependency injection
type ActivityRepository interface {
	UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error
}

// ActivityService records presence heartbeats
type ActivityService struct {
	repo     ActivityRepository
	presence PresenceTracker
	now      func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(repo ActivityRepository, presence PresenceTracker) *ActivityService {
	return &ActivityService{repo: repo, presence: presence, now: time.Now}
}

// UpdateActivity stores the reported status. An active report refreshes the
// heartbeat; an inactive one drops it.
func (s *ActivityService) UpdateActivity(ctx context.Context, userID string, status models.Status) error {
	if !status.Valid() {
		return models.ErrInvalidStatus
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, userID, status, now); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service: failed to update status: %w", err)
	}

	var err error
	if status == models.StatusActive {
		err = s.presence.Touch(ctx, userID, now)
	} else {
		err = s.presence.Clear(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	return nil
}
