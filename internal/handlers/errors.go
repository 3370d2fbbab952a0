package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes. An AppError
// carries its own code. A missing
// resource is reported as notFound, which lets an endpoint present it as a
// failed precondition instead of a 404.
func statusForError(err error, notFound int) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return notFound
	case errors.Is(err, apperrors.ErrPrecondition),
		errors.Is(err, apperrors.ErrReconciliation),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Client errors carry the service message
// as is; server errors are logged at error level and prefixed with fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, notFound int, fallback string) {
	status := statusForError(err, notFound)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback + ": " + err.Error()})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
