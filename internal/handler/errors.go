package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/internal/menu"
	"github.com/bryansgue/scanela-sub001/internal/slug"
	"github.com/bryansgue/scanela-sub001/prometheus"
)

// writeEngineError maps engine error kinds to HTTP responses. Every body
// carries a machine-readable error kind and a human-readable message; errors
// are never converted into false successes.
func writeEngineError(c echo.Context, log *zap.Logger, err error) error {
	var conflict *slug.ConflictError
	switch {
	case errors.As(err, &conflict):
		prometheus.RecordSlugConflict()
		log.Warn("Slug conflict",
			zap.String("slug", conflict.Slug),
			zap.String("suggestion", conflict.Suggestion))
		return c.JSON(http.StatusConflict, echo.Map{
			"success":    false,
			"error":      "slug_conflict",
			"suggestion": conflict.Suggestion,
			"message":    conflict.Error(),
		})
	case errors.Is(err, menu.ErrInvalidBusinessID),
		errors.Is(err, slug.ErrEmpty),
		errors.Is(err, slug.ErrTooLong):
		log.Warn("Invalid input", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "invalid_input",
			"message": err.Error(),
		})
	case errors.Is(err, menu.ErrNotOwner):
		log.Warn("Ownership mismatch", zap.Error(err))
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"error":   "forbidden",
			"message": err.Error(),
		})
	case errors.Is(err, menu.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"error":   "not_found",
			"message": err.Error(),
		})
	default:
		log.Error("Engine operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "internal",
			"message": "internal server error",
		})
	}
}
