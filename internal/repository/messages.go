package repository

import (
	"context"
	"fmt"

	"donor-finder-api/internal/models"

	"github.com/google/uuid"
)

// CreateMessage stores a message and fills in its ID and creation time.
func (r *Repository) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	sql := `
		INSERT INTO messages (id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if err := r.db.QueryRow(ctx, sql, m.ID, m.SenderID, m.ReceiverID, m.Content).Scan(&m.CreatedAt); err != nil {
		return fmt.Errorf("repository: failed to insert message: %w", err)
	}
	return nil
}

// ListConversation returns the messages exchanged between two users, oldest first.
func (r *Repository) ListConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	sql := `
		SELECT id, sender_id, receiver_id, content, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
			OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, sql, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute conversation query: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return messages, nil
}

// ListInbox returns the newest message from each sender to userID, newest first.
func (r *Repository) ListInbox(ctx context.Context, userID string) ([]models.InboxEntry, error) {
	sql := `
		SELECT msg_id, sender_id, receiver_id, content, created_at, sender_name, sender_avatar
		FROM (
			SELECT DISTINCT ON (m.sender_id)
				m.id AS msg_id,
				m.sender_id,
				m.receiver_id,
				m.content,
				m.created_at,
				u.name AS sender_name,
				u.avatar AS sender_avatar
			FROM messages m
			JOIN users u ON u.id = m.sender_id
			WHERE m.receiver_id = $1
			ORDER BY m.sender_id, m.created_at DESC, m.id DESC
		) latest
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute inbox query: %w", err)
	}
	defer rows.Close()

	entries := []models.InboxEntry{}
	for rows.Next() {
		var e models.InboxEntry
		err := rows.Scan(
			&e.ID,
			&e.SenderID,
			&e.ReceiverID,
			&e.Content,
			&e.CreatedAt,
			&e.Sender.Name,
			&e.Sender.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan inbox entry: %w", err)
		}
		e.Sender.ID = e.SenderID
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return entries, nil
}
