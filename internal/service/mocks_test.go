package service

import (
	"context"
	"time"

	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of every repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) RecordLogin(ctx context.Context, id string, coord *geo.Coordinate, at time.Time) error {
	args := m.Called(ctx, id, coord, at)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.PublicProfile), args.Error(1)
}

func (m *MockRepository) SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.Donor, error) {
	args := m.Called(ctx, requesterID, f)
	return args.Get(0).([]models.Donor), args.Error(1)
}

func (m *MockRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockRepository) ListConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockRepository) ListInbox(ctx context.Context, userID string) ([]models.InboxEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.InboxEntry), args.Error(1)
}

// MockPresence is a mock implementation of the PresenceTracker interface
type MockPresence struct {
	mock.Mock
}

func (m *MockPresence) Touch(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockPresence) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresence) Active(ctx context.Context, userIDs ...string) (map[string]bool, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockTokenIssuer is a mock implementation of the TokenIssuer interface
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func f64(v float64) *float64 { return &v }

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
