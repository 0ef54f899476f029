package handlers

import (
	"errors"
	"net/http"

	"timerange/services/timerange"
	"timerange/timeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service and timeline errors onto HTTP statuses.
func statusFor(err error) int {
	var de *timeline.DomainError
	switch {
	case errors.Is(err, timerange.ErrSessionNotFound), errors.Is(err, timerange.ErrBlockNotFound):
		return http.StatusNotFound
	case errors.Is(err, timerange.ErrInvalidRequest),
		errors.Is(err, timeline.ErrMalformedInterval),
		errors.Is(err, timeline.ErrTooManyTicks),
		errors.As(err, &de):
		return http.StatusBadRequest
	case errors.Is(err, timerange.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, timeline.ErrDisabled),
		errors.Is(err, timeline.ErrNotDragging),
		errors.Is(err, timeline.ErrDragInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the failure body. Server faults are logged at error
// level, client mistakes at debug.
func respondError(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	logger := zap.L()
	if scoped, ok := c.Value("logger").(*zap.Logger); ok {
		logger = scoped
	}
	if status == http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Debug(msg, zap.Error(err), zap.Int("status", status))
	}
	c.JSON(status, gin.H{"error": msg, "message": err.Error()})
}
