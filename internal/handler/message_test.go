package handler

import (
	"net/http"
	"testing"
	"time"

	"donor-finder-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMessageHandler_Conversation(t *testing.T) {
	sent := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		otherID        string
		mockMessages   []models.Message
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing userId",
			target:         "/api/messages",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing required query parameter 'userId'"}`,
		},
		{
			name:    "conversation",
			target:  "/api/messages?userId=u2",
			otherID: "u2",
			mockMessages: []models.Message{
				{ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "hello", CreatedAt: sent},
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"messages":[{"id":"m1","sender_id":"u1","receiver_id":"u2","content":"hello",
				"created_at":"2026-05-01T09:30:00Z"}]}`,
		},
		{
			name:           "service error",
			target:         "/api/messages?userId=u2",
			otherID:        "u2",
			mockMessages:   []models.Message(nil),
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockMessageService)
			h := NewMessageHandler(mockSvc)
			if tt.otherID != "" {
				mockSvc.On("Conversation", mock.Anything, "u1", tt.otherID).Return(tt.mockMessages, tt.mockError)
			}

			w := serve(h.Conversation, http.MethodGet, tt.target, "", "u1")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestMessageHandler_Send(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockError      error
		callsService   bool
		expectedStatus int
	}{
		{
			name:           "sent",
			body:           `{"receiver_id":"u2","content":"can you donate on friday?"}`,
			callsService:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "receiver does not exist",
			body:           `{"receiver_id":"u2","content":"can you donate on friday?"}`,
			mockError:      models.ErrNotFound,
			callsService:   true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "rejected by service",
			body:           `{"receiver_id":"u2","content":"can you donate on friday?"}`,
			mockError:      models.ErrInvalidInput,
			callsService:   true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing content",
			body:           `{"receiver_id":"u2"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockMessageService)
			h := NewMessageHandler(mockSvc)
			if tt.callsService {
				var msg *models.Message
				if tt.mockError == nil {
					msg = &models.Message{ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "can you donate on friday?"}
				}
				mockSvc.On("Send", mock.Anything, "u1", "u2", "can you donate on friday?").Return(msg, tt.mockError)
			}

			w := serve(h.Send, http.MethodPost, "/api/messages", tt.body, "u1")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.callsService {
				mockSvc.AssertExpectations(t)
			} else {
				mockSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMessageHandler_Inbox(t *testing.T) {
	mockSvc := new(MockMessageService)
	h := NewMessageHandler(mockSvc)
	mockSvc.On("Inbox", mock.Anything, "u1").Return([]models.InboxEntry{
		{
			Message: models.Message{ID: "m9", SenderID: "u3", ReceiverID: "u1", Content: "thanks!", CreatedAt: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
			Sender:  models.Sender{ID: "u3", Name: "Nadia"},
		},
	}, nil)

	w := serve(h.Inbox, http.MethodGet, "/api/messages/inbox", "", "u1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"messages":[{"id":"m9","sender_id":"u3","receiver_id":"u1","content":"thanks!",
		"created_at":"2026-05-02T00:00:00Z","sender":{"id":"u3","name":"Nadia"}}]}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}
