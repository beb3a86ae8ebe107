package handler

import (
	"context"
	"net/http"

	"donor-finder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ActivityService interface for dependency injection
type ActivityService interface {
	UpdateActivity(ctx context.Context, userID string, status models.Status) error
}

// ActivityHandler receives presence heartbeats
type ActivityHandler struct {
	service ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

type updateActivityRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// Update handles POST /api/update-activity
func (h *ActivityHandler) Update(c *gin.Context) {
	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.UpdateActivity(c.Request.Context(), currentUserID(c), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity updated successfully"})
}
