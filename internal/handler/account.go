package handler

import (
	"context"
	"net/http"
	"time"

	"donor-finder-api/internal/models"
	"donor-finder-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountService interface for dependency injection
type AccountService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, userID string) error
}

// AccountHandler handles registration and sessions
type AccountHandler struct {
	service      AccountService
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAccountHandler creates a new account handler. Session cookies live for
// tokenTTL and are marked Secure when secureCookie is set.
func NewAccountHandler(svc AccountService, tokenTTL time.Duration, secureCookie bool) *AccountHandler {
	return &AccountHandler{service: svc, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

type registerRequest struct {
	Name             string   `json:"name" binding:"required,max=100"`
	Email            string   `json:"email" binding:"required,email"`
	Password         string   `json:"password" binding:"required,min=6,max=72"`
	BloodGroup       string   `json:"blood_group" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Age              int      `json:"age" binding:"required,min=1,max=150"`
	Gender           string   `json:"gender" binding:"max=20"`
	PhoneNumber      string   `json:"phone_number" binding:"max=30"`
	Profession       string   `json:"profession" binding:"max=100"`
	PresentAddress   string   `json:"present_address" binding:"max=255"`
	PermanentAddress string   `json:"permanent_address" binding:"max=255"`
	Latitude         *float64 `json:"latitude" binding:"required,latitude"`
	Longitude        *float64 `json:"longitude" binding:"required,longitude"`
}

// Register handles POST /api/register
//
//	@Summary	Register a new donor
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		body	body		registerRequest	true	"registration"
//	@Success	201		{object}	models.User
//	@Failure	400		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Router		/api/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		BloodGroup:       req.BloodGroup,
		Age:              req.Age,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		Profession:       req.Profession,
		PresentAddress:   req.PresentAddress,
		PermanentAddress: req.PermanentAddress,
		Latitude:         *req.Latitude,
		Longitude:        *req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Login handles POST /api/login
//
//	@Summary	Log in and receive an access token
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"credentials"
//	@Success	200		{object}	map[string]any
//	@Failure	401		{object}	errorResponse
//	@Router		/api/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookie, res.Token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"token": res.Token,
		"user": gin.H{
			"id":    res.User.ID,
			"name":  res.User.Name,
			"email": res.User.Email,
		},
	})
}

// Logout handles POST /api/logout
//
//	@Summary	Log out
//	@Tags		accounts
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]string
//	@Router		/api/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
