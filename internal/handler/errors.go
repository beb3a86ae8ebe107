package handler

import (
	"errors"
	"net/http"

	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		fail(c, http.StatusNotFound, models.ErrNotFound.Error())
	case errors.Is(err, models.ErrEmailTaken):
		fail(c, http.StatusConflict, models.ErrEmailTaken.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
	case errors.Is(err, models.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, models.ErrUnauthorized.Error())
	case errors.Is(err, models.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, models.ErrInvalidStatus.Error())
	case errors.Is(err, models.ErrInvalidInput):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, geo.ErrInvalidCoordinate):
		fail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, err.Error())
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}
