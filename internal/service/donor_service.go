package service

import (
	"context"
	"fmt"
	"time"

	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/rs/zerolog/log"
)

// Age bounds applied when the request leaves them out.
const (
	DefaultMinAge = 0
	DefaultMaxAge = 150
)

// DonorRepository interface for dependency injection
type DonorRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.Donor, error)
}

// DonorService finds donors near the requesting user
type DonorService struct {
	repo     DonorRepository
	presence PresenceTracker
	now      func() time.Time
}

// NewDonorService creates a new donor service
func NewDonorService(repo DonorRepository, presence PresenceTracker) *DonorService {
	return &DonorService{repo: repo, presence: presence, now: time.Now}
}

// SearchDonors returns the donors matching f, nearest to the requester first.
// Donors without a usable location are left out. The requester must have a
// valid location, otherwise geo.ErrInvalidCoordinate is returned.
func (s *DonorService) SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.DonorWithDistance, error) {
	if f.MaxAge == 0 {
		f.MaxAge = DefaultMaxAge
	}
	if f.MinAge < 0 || f.MinAge > f.MaxAge {
		return nil, fmt.Errorf("service: invalid age range %d-%d: %w", f.MinAge, f.MaxAge, models.ErrInvalidInput)
	}

	requester, err := s.repo.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, wrapRepoErr("failed to load requester", err)
	}

	ref, ok := requester.Coordinate()
	if !ok {
		return nil, fmt.Errorf("service: requester has no location: %w", geo.ErrInvalidCoordinate)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("service: requester location: %w", err)
	}

	donors, err := s.repo.SearchDonors(ctx, requesterID, f)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search donors: %w", err)
	}

	ranked, err := geo.RankBy(ref, donors, func(d models.Donor) (geo.Coordinate, bool) {
		return geo.FromNullable(d.Latitude, d.Longitude)
	})
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	if f.Limit > 0 && f.Limit < len(ranked) {
		ranked = ranked[:f.Limit]
	}

	results := make([]models.DonorWithDistance, len(ranked))
	ids := make([]string, len(ranked))
	now := s.now()
	for i, r := range ranked {
		results[i] = models.DonorWithDistance{
			Donor:       r.Item,
			DistanceKm:  r.DistanceKm,
			RecentDonor: models.RecentlyDonated(r.Item.LastDonationDate, now),
		}
		ids[i] = r.Item.ID
	}

	s.applyPresence(ctx, results, ids)
	return results, nil
}

// applyPresence downgrades donors whose heartbeat has expired.
func (s *DonorService) applyPresence(ctx context.Context, results []models.DonorWithDistance, ids []string) {
	if len(ids) == 0 {
		return
	}

	active, err := s.presence.Active(ctx, ids...)
	if err != nil {
		log.Warn().Err(err).Msg("presence lookup failed, using stored status")
		return
	}

	for i := range results {
		if results[i].Status == models.StatusActive && !active[results[i].ID] {
			results[i].Status = models.StatusInactive
		}
	}
}
