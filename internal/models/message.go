package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Sender is the short user card attached to inbox entries.
type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// InboxEntry is the latest message received from one sender.
type InboxEntry struct {
	Message
	Sender Sender `json:"sender"`
}
