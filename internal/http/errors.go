package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-scout/internal/assistant"
	"venue-scout/internal/service"
)

// statusFor traduce errores de servicio a codigos HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest, "message text is required"
	case errors.Is(err, service.ErrVenueInvalidInput):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, service.ErrSessionDisposed):
		return http.StatusConflict, "session disposed"
	case errors.Is(err, assistant.ErrTransportFailure), errors.Is(err, assistant.ErrMalformedReply):
		return http.StatusBadGateway, "assistant unavailable"
	case errors.Is(err, service.ErrVenueServiceNotConfigured), errors.Is(err, service.ErrSessionNotConfigured):
		return http.StatusServiceUnavailable, "service not configured"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "assistant timeout"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Warn(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": body})
}
