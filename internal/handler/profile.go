package handler

import (
	"context"
	"net/http"

	"donor-finder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ProfileService interface for dependency injection
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)
	GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error)
}

// ProfileHandler handles own and public profile requests
type ProfileHandler struct {
	service ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,max=100"`
	BloodGroup *string  `json:"blood_group" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Age        *int     `json:"age" binding:"omitempty,min=1,max=150"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,longitude"`
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), currentUserID(c), models.ProfileUpdate{
		Name:       req.Name,
		BloodGroup: req.BloodGroup,
		Age:        req.Age,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetPublic handles GET /api/donors/:id
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	profile, err := h.service.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}
