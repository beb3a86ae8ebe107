package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"donor-finder-api/internal/models"
)

// MaxMessageLength is the longest message body accepted, in characters.
const MaxMessageLength = 2000

// MessageRepository interface for dependency injection
type MessageRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CreateMessage(ctx context.Context, m *models.Message) error
	ListConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
	ListInbox(ctx context.Context, userID string) ([]models.InboxEntry, error)
}

// MessageService handles direct messages between users
type MessageService struct {
	repo MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(repo MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Send delivers a message from senderID to receiverID.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("service: message cannot be empty: %w", models.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, fmt.Errorf("service: message longer than %d characters: %w", MaxMessageLength, models.ErrInvalidInput)
	}
	if receiverID == "" || receiverID == senderID {
		return nil, fmt.Errorf("service: invalid receiver: %w", models.ErrInvalidInput)
	}

	if _, err := s.repo.GetUserByID(ctx, receiverID); err != nil {
		return nil, wrapRepoErr("failed to load receiver", err)
	}

	msg := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("service: failed to send message: %w", err)
	}
	return msg, nil
}

// Conversation returns the messages between userID and otherID, oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if otherID == "" {
		return nil, fmt.Errorf("service: missing conversation partner: %w", models.ErrInvalidInput)
	}

	messages, err := s.repo.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list conversation: %w", err)
	}
	return messages, nil
}

// Inbox returns the latest message from each sender, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]models.InboxEntry, error) {
	entries, err := s.repo.ListInbox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list inbox: %w", err)
	}
	return entries, nil
}
