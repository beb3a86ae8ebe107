package service

import (
	"context"
	"errors"
	"fmt"

	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/rs/zerolog/log"
)

// ProfileRepository interface for dependency injection
type ProfileRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error)
}

// ProfileService reads and edits user profiles
type ProfileService struct {
	repo     ProfileRepository
	presence PresenceTracker
}

// NewProfileService creates a new profile service
func NewProfileService(repo ProfileRepository, presence PresenceTracker) *ProfileService {
	return &ProfileService{repo: repo, presence: presence}
}

// GetProfile returns the caller's own profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoErr("failed to load profile", err)
	}
	return user, nil
}

// UpdateProfile edits the caller's profile. Coordinates must be sent
// together and must be valid.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	if (upd.Latitude == nil) != (upd.Longitude == nil) {
		return nil, fmt.Errorf("service: latitude and longitude must be updated together: %w", models.ErrInvalidInput)
	}
	if c, ok := geo.FromNullable(upd.Latitude, upd.Longitude); ok {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}
	if upd.Age != nil && (*upd.Age < 0 || *upd.Age > 150) {
		return nil, fmt.Errorf("service: age out of range: %w", models.ErrInvalidInput)
	}

	user, err := s.repo.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, wrapRepoErr("failed to update profile", err)
	}
	return user, nil
}

// GetPublicProfile returns another user's public profile with live presence.
func (s *ProfileService) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	profile, err := s.repo.GetPublicProfile(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("failed to load public profile", err)
	}

	active, err := s.presence.Active(ctx, profile.ID)
	if err != nil {
		log.Warn().Err(err).Msg("presence lookup failed, using stored status")
		return profile, nil
	}
	if profile.Status == models.StatusActive && !active[profile.ID] {
		profile.Status = models.StatusInactive
	}
	return profile, nil
}

// wrapRepoErr passes ErrNotFound through untouched.
func wrapRepoErr(msg string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("service: %s: %w", msg, err)
}
