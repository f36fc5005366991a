package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP status and dto.ErrorResponse body.
// Internal failures are logged with detail and answered with a generic message.
func respondError(c *gin.Context, err error, resource string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		kind := dto.ErrorKindValidation
		if errors.Is(verr, apperrors.ErrInvalidRange) {
			kind = dto.ErrorKindInvalidRange
		}
		logger.Warn("Request failed validation", slog.String("error", verr.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: kind, Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(resource+" not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Kind: dto.ErrorKindNotFound, Error: resource + " not found"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent modification", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Kind: dto.ErrorKindConflict, Error: resource + " was modified concurrently, retry the request"})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: dto.ErrorKindInternal, Error: "internal server error"})
	}
}

// badRequest answers a request whose body or query could not be bound.
func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: dto.ErrorKindValidation, Error: "Invalid " + what + ": " + err.Error()})
}

// requireUserID returns the authenticated caller or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: dto.ErrorKindUnauthorized, Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
