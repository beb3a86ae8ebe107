package handler

import (
	"context"
	"net/http"

	"donor-finder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// DonorService interface for dependency injection
type DonorService interface {
	SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.DonorWithDistance, error)
}

// DonorHandler handles donor search requests
type DonorHandler struct {
	service DonorService
}

// NewDonorHandler creates a new donor handler
func NewDonorHandler(svc DonorService) *DonorHandler {
	return &DonorHandler{service: svc}
}

type searchDonorsRequest struct {
	Query      string `form:"query" binding:"max=100"`
	BloodGroup string `form:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MinAge     int    `form:"minAge" binding:"min=0,max=150"`
	MaxAge     int    `form:"maxAge" binding:"min=0,max=150"`
	Limit      int    `form:"limit" binding:"min=0,max=500"`
}

// Search handles GET /api/donors
//
//	@Summary	Search donors nearest to the caller
//	@Tags		donors
//	@Produce	json
//	@Security	BearerAuth
//	@Param		query		query		string	false	"text match on name, address or profession"
//	@Param		bloodGroup	query		string	false	"blood group"
//	@Param		minAge		query		int		false	"minimum age"
//	@Param		maxAge		query		int		false	"maximum age"
//	@Param		limit		query		int		false	"maximum number of results"
//	@Success	200			{object}	map[string]any
//	@Failure	422			{object}	errorResponse
//	@Router		/api/donors [get]
func (h *DonorHandler) Search(c *gin.Context) {
	var req searchDonorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	donors, err := h.service.SearchDonors(c.Request.Context(), currentUserID(c), models.DonorFilter{
		Query:      req.Query,
		BloodGroup: req.BloodGroup,
		MinAge:     req.MinAge,
		MaxAge:     req.MaxAge,
		Limit:      req.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donors": donors})
}
