package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donor-finder-api/internal/auth"
	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/rs/zerolog/log"
)

// AccountRepository interface for dependency injection
type AccountRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	RecordLogin(ctx context.Context, id string, coord *geo.Coordinate, at time.Time) error
	UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error
}

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	BloodGroup       string
	Age              int
	Gender           string
	PhoneNumber      string
	Profession       string
	PresentAddress   string
	PermanentAddress string
	Latitude         float64
	Longitude        float64
}

// LoginInput carries credentials and, optionally, the client's current location.
type LoginInput struct {
	Email     string
	Password  string
	Latitude  *float64
	Longitude *float64
}

// LoginResult is returned on successful login.
type LoginResult struct {
	User  *models.User
	Token string
}

// AccountService registers users and manages their sessions
type AccountService struct {
	repo     AccountRepository
	tokens   TokenIssuer
	presence PresenceTracker
	now      func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(repo AccountRepository, tokens TokenIssuer, presence PresenceTracker) *AccountService {
	return &AccountService{repo: repo, tokens: tokens, presence: presence, now: time.Now}
}

// Register creates an account with a hashed password.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	coord := geo.Coordinate{Latitude: in.Latitude, Longitude: in.Longitude}
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("service: name, email and password are required: %w", models.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	user := &models.User{
		Name:             strings.TrimSpace(in.Name),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:     hash,
		BloodGroup:       in.BloodGroup,
		Age:              in.Age,
		Gender:           in.Gender,
		PhoneNumber:      in.PhoneNumber,
		Profession:       in.Profession,
		PresentAddress:   in.PresentAddress,
		PermanentAddress: in.PermanentAddress,
		Latitude:         &coord.Latitude,
		Longitude:        &coord.Longitude,
		IsPublic:         true,
		Status:           models.StatusInactive,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials, marks the user active and issues a token.
// A location sent with the login replaces the stored one when it is valid.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service: failed to load user: %w", err)
	}

	if !auth.CheckPassword(in.Password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	var coord *geo.Coordinate
	if c, ok := geo.FromNullable(in.Latitude, in.Longitude); ok && c.Validate() == nil {
		coord = &c
	}

	now := s.now()
	if err := s.repo.RecordLogin(ctx, user.ID, coord, now); err != nil {
		return nil, fmt.Errorf("service: failed to record login: %w", err)
	}
	if err := s.presence.Touch(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("presence heartbeat failed on login")
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	user.Status = models.StatusActive
	user.LastActive = &now
	if coord != nil {
		user.Latitude, user.Longitude = &coord.Latitude, &coord.Longitude
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout marks the user inactive.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.UpdateStatus(ctx, userID, models.StatusInactive, s.now()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service: failed to update status: %w", err)
	}
	if err := s.presence.Clear(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("presence clear failed on logout")
	}
	return nil
}
