package service

import (
	"context"
	"testing"

	"donor-finder-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestActivityService_UpdateActivity(t *testing.T) {
	tests := []struct {
		name        string
		status      models.Status
		repoErr     error
		presenceErr error
		wantErr     error
	}{
		{name: "active heartbeat", status: models.StatusActive},
		{name: "going inactive", status: models.StatusInactive},
		{name: "unknown status", status: "away", wantErr: models.ErrInvalidStatus},
		{name: "unknown user", status: models.StatusActive, repoErr: models.ErrNotFound, wantErr: models.ErrNotFound},
		{name: "presence failure", status: models.StatusActive, presenceErr: assert.AnError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockPresence := new(MockPresence)
			svc := NewActivityService(mockRepo, mockPresence)
			svc.now = fixedClock

			if tt.status.Valid() {
				mockRepo.On("UpdateStatus", mock.Anything, "u1", tt.status, fixedNow).Return(tt.repoErr)
			}
			if tt.status.Valid() && tt.repoErr == nil {
				if tt.status == models.StatusActive {
					mockPresence.On("Touch", mock.Anything, "u1", fixedNow).Return(tt.presenceErr)
				} else {
					mockPresence.On("Clear", mock.Anything, "u1").Return(tt.presenceErr)
				}
			}

			err := svc.UpdateActivity(context.Background(), "u1", tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockPresence.AssertExpectations(t)
		})
	}
}
