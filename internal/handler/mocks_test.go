package handler

import (
	"context"
	"errors"

	"donor-finder-api/internal/models"
	"donor-finder-api/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAccountService is a mock implementation of the AccountService interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAccountService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, upd)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.PublicProfile), args.Error(1)
}

// MockDonorService is a mock implementation of the DonorService interface
type MockDonorService struct {
	mock.Mock
}

func (m *MockDonorService) SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.DonorWithDistance, error) {
	args := m.Called(ctx, requesterID, f)
	return args.Get(0).([]models.DonorWithDistance), args.Error(1)
}

// MockMessageService is a mock implementation of the MessageService interface
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) Inbox(ctx context.Context, userID string) ([]models.InboxEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.InboxEntry), args.Error(1)
}

// MockActivityService is a mock implementation of the ActivityService interface
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) UpdateActivity(ctx context.Context, userID string, status models.Status) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

// stubTokens accepts exactly one token.
type stubTokens struct {
	token  string
	userID string
}

func (s stubTokens) ValidateToken(token string) (string, error) {
	if token != s.token {
		return "", errors.New("bad token")
	}
	return s.userID, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func f64(v float64) *float64 { return &v }
