package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/storage"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog/log"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrAlreadySupported),
		errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrInvalidReference),
		errors.Is(err, application.ErrDepthExceeded),
		errors.Is(err, application.ErrSelfSupport),
		errors.Is(err, application.ErrUnsupportedType),
		errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, storage.ErrUnsupportedImage),
		errors.Is(err, storage.ErrImageTooLarge),
		errors.Is(err, storage.ErrEmptyImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("request_id", c.GetString("request_id")).Msg("request failed")
		c.JSON(status, response.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
}

// actor returns the authenticated user's id and admin flag, writing a 401
// when the request carries no claims.
func actor(c *gin.Context) (uint, bool, bool) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized"})
		return 0, false, false
	}
	return claims.UserID, claims.IsAdmin, true
}
